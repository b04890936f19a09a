package models

// Column represents a database column as reported by information_schema
type Column struct {
	Name       string
	DataType   string
	IsNullable bool
	ColumnKey  string
}

// ForeignKey represents a foreign key relationship
type ForeignKey struct {
	Table            string
	Column           string
	ReferencedTable  string
	ReferencedColumn string
	ConstraintName   string
}

// TableSchema describes a table of a seeded database
type TableSchema struct {
	Name        string
	Columns     []string
	ForeignKeys []ForeignKey
}

// TableData holds the rows to insert into one table.
// Values in each row follow the order of Schema.Columns.
type TableData struct {
	Schema TableSchema
	Rows   [][]interface{}
}

// Dataset is everything needed to (re)build one sample database
type Dataset struct {
	Domain   string
	Database string
	DDL      []string
	Tables   []TableData
}

// Table returns the table data with the given name, or nil
func (d *Dataset) Table(name string) *TableData {
	for i := range d.Tables {
		if d.Tables[i].Schema.Name == name {
			return &d.Tables[i]
		}
	}
	return nil
}

// Schemas returns the table schemas of the dataset in declaration order
func (d *Dataset) Schemas() []TableSchema {
	schemas := make([]TableSchema, 0, len(d.Tables))
	for _, t := range d.Tables {
		schemas = append(schemas, t.Schema)
	}
	return schemas
}

// SchemaInfo represents a database schema read from a live server
type SchemaInfo struct {
	Database      string
	Tables        []string
	TableColumns  map[string][]Column
	ForeignKeys   map[string][]ForeignKey
	OrderedTables []string
}

// PopulationResult represents the result of seeding one database
type PopulationResult struct {
	Domain       string
	Database     string
	TableOrder   []string
	RowsInserted map[string]int
	DryRun       bool
}

// TotalRows returns the number of rows inserted across all tables
func (r *PopulationResult) TotalRows() int {
	total := 0
	for _, n := range r.RowsInserted {
		total += n
	}
	return total
}

// VerificationResult represents the result of the verification process
type VerificationResult struct {
	Success        bool
	EmptyTables    []string
	MismatchTables map[string][2]int
}
