package analyzer

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vitebski/sample-db-seeder/internal/connector"
	"github.com/vitebski/sample-db-seeder/pkg/models"
	"github.com/yourbasic/graph"
)

// SchemaAnalyzer detects table dependencies and sorts tables for population
type SchemaAnalyzer struct {
	DB              *connector.DatabaseConnector
	Database        string
	Tables          []string
	ForeignKeys     map[string][]models.ForeignKey
	TableColumns    map[string][]models.Column
	DependencyGraph *graph.Mutable
	TableIndexMap   map[string]int
	IndexTableMap   map[int]string
	Logger          *logrus.Logger
}

// NewSchemaAnalyzer creates a new schema analyzer. db may be nil when the
// analyzer only works on a table catalog.
func NewSchemaAnalyzer(db *connector.DatabaseConnector, logger *logrus.Logger) *SchemaAnalyzer {
	return &SchemaAnalyzer{
		DB:            db,
		ForeignKeys:   make(map[string][]models.ForeignKey),
		TableColumns:  make(map[string][]models.Column),
		TableIndexMap: make(map[string]int),
		IndexTableMap: make(map[int]string),
		Logger:        logger,
	}
}

// LoadTables loads a table catalog and builds the dependency graph from it
func (sa *SchemaAnalyzer) LoadTables(tables []models.TableSchema) error {
	sa.reset()
	for _, t := range tables {
		if _, dup := sa.TableIndexMap[t.Name]; dup {
			return fmt.Errorf("duplicate table in catalog: %s", t.Name)
		}
		sa.TableIndexMap[t.Name] = len(sa.Tables)
		sa.IndexTableMap[len(sa.Tables)] = t.Name
		sa.Tables = append(sa.Tables, t.Name)
		for _, col := range t.Columns {
			sa.TableColumns[t.Name] = append(sa.TableColumns[t.Name], models.Column{Name: col})
		}
	}
	for _, t := range tables {
		for _, fk := range t.ForeignKeys {
			fk.Table = t.Name
			sa.ForeignKeys[t.Name] = append(sa.ForeignKeys[t.Name], fk)
		}
	}
	return sa.buildGraph()
}

// AnalyzeSchema reads tables, columns and foreign keys of database from
// information_schema
func (sa *SchemaAnalyzer) AnalyzeSchema(ctx context.Context, database string) error {
	if sa.DB == nil {
		return fmt.Errorf("schema analysis needs a database connection")
	}
	sa.reset()
	sa.Database = database

	tablesQuery := `
		SELECT table_name AS table_name
		FROM information_schema.tables
		WHERE table_schema = ?
		AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`
	tablesResult, err := sa.DB.ExecuteQuery(ctx, tablesQuery, database)
	if err != nil {
		sa.Logger.Errorf("Error getting tables: %v", err)
		return err
	}

	for i, row := range tablesResult {
		name := asString(row["table_name"])
		sa.Tables = append(sa.Tables, name)
		sa.TableIndexMap[name] = i
		sa.IndexTableMap[i] = name
	}

	columnsQuery := `
		SELECT
			table_name AS table_name,
			column_name AS column_name,
			data_type AS data_type,
			is_nullable AS is_nullable,
			column_key AS column_key
		FROM information_schema.columns
		WHERE table_schema = ?
		ORDER BY table_name, ordinal_position
	`
	columnsResult, err := sa.DB.ExecuteQuery(ctx, columnsQuery, database)
	if err != nil {
		sa.Logger.Warningf("Failed to retrieve columns for %s: %v", database, err)
	} else {
		for _, row := range columnsResult {
			table := asString(row["table_name"])
			sa.TableColumns[table] = append(sa.TableColumns[table], models.Column{
				Name:       asString(row["column_name"]),
				DataType:   asString(row["data_type"]),
				IsNullable: asString(row["is_nullable"]) == "YES",
				ColumnKey:  asString(row["column_key"]),
			})
		}
	}

	fkQuery := `
		SELECT
			table_name AS table_name,
			column_name AS column_name,
			referenced_table_name AS referenced_table_name,
			referenced_column_name AS referenced_column_name,
			constraint_name AS constraint_name
		FROM information_schema.key_column_usage
		WHERE table_schema = ?
		AND referenced_table_name IS NOT NULL
		ORDER BY table_name, column_name
	`
	fkResult, err := sa.DB.ExecuteQuery(ctx, fkQuery, database)
	if err != nil {
		sa.Logger.Errorf("Error getting foreign keys: %v", err)
		return err
	}

	for _, row := range fkResult {
		fk := models.ForeignKey{
			Table:            asString(row["table_name"]),
			Column:           asString(row["column_name"]),
			ReferencedTable:  asString(row["referenced_table_name"]),
			ReferencedColumn: asString(row["referenced_column_name"]),
			ConstraintName:   asString(row["constraint_name"]),
		}
		sa.ForeignKeys[fk.Table] = append(sa.ForeignKeys[fk.Table], fk)
	}

	return sa.buildGraph()
}

// SchemaInfo returns what the analyzer has collected so far
func (sa *SchemaAnalyzer) SchemaInfo() (*models.SchemaInfo, error) {
	ordered, err := sa.GetTableInsertionOrder()
	if err != nil {
		return nil, err
	}
	return &models.SchemaInfo{
		Database:      sa.Database,
		Tables:        sa.Tables,
		TableColumns:  sa.TableColumns,
		ForeignKeys:   sa.ForeignKeys,
		OrderedTables: ordered,
	}, nil
}

func (sa *SchemaAnalyzer) reset() {
	sa.Tables = nil
	sa.ForeignKeys = make(map[string][]models.ForeignKey)
	sa.TableColumns = make(map[string][]models.Column)
	sa.TableIndexMap = make(map[string]int)
	sa.IndexTableMap = make(map[int]string)
	sa.DependencyGraph = nil
}

// buildGraph adds an edge referenced -> dependent for every foreign key.
// Self references do not constrain the insertion order and are skipped.
func (sa *SchemaAnalyzer) buildGraph() error {
	sa.DependencyGraph = graph.New(len(sa.Tables))
	for _, table := range sa.Tables {
		for _, fk := range sa.ForeignKeys[table] {
			if fk.ReferencedTable == table {
				continue
			}
			src, ok := sa.TableIndexMap[fk.ReferencedTable]
			if !ok {
				return fmt.Errorf("table %s references unknown table %s", table, fk.ReferencedTable)
			}
			sa.DependencyGraph.Add(src, sa.TableIndexMap[table])
		}
	}
	return nil
}

// GetCircularTables returns the tables involved in circular dependencies,
// sorted by name
func (sa *SchemaAnalyzer) GetCircularTables() []string {
	if sa.DependencyGraph == nil {
		return nil
	}

	var circular []string
	for _, component := range graph.StrongComponents(sa.DependencyGraph) {
		if len(component) < 2 {
			continue
		}
		for _, v := range component {
			circular = append(circular, sa.IndexTableMap[v])
		}
	}
	sort.Strings(circular)
	return circular
}

// GetTableInsertionOrder returns the tables with every referenced table
// ahead of the tables that reference it
func (sa *SchemaAnalyzer) GetTableInsertionOrder() ([]string, error) {
	if sa.DependencyGraph == nil {
		if err := sa.buildGraph(); err != nil {
			return nil, err
		}
	}

	// an immutable copy iterates neighbors in sorted order, which keeps the
	// result stable between runs
	order, ok := graph.TopSort(graph.Sort(sa.DependencyGraph))
	if !ok {
		return nil, fmt.Errorf("circular dependency between tables: %s",
			strings.Join(sa.GetCircularTables(), ", "))
	}

	tables := make([]string, 0, len(order))
	for _, v := range order {
		tables = append(tables, sa.IndexTableMap[v])
	}
	return tables, nil
}

// GetTableDeletionOrder returns the insertion order reversed
func (sa *SchemaAnalyzer) GetTableDeletionOrder() ([]string, error) {
	order, err := sa.GetTableInsertionOrder()
	if err != nil {
		return nil, err
	}
	reversed := make([]string, len(order))
	for i, table := range order {
		reversed[len(order)-1-i] = table
	}
	return reversed, nil
}

func asString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
