package analyzer

import (
	"context"
	"io"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitebski/sample-db-seeder/internal/connector"
	"github.com/vitebski/sample-db-seeder/internal/schema"
	"github.com/vitebski/sample-db-seeder/pkg/models"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func indexOf(tables []string, name string) int {
	for i, t := range tables {
		if t == name {
			return i
		}
	}
	return -1
}

// assertReferencedFirst checks every foreign key target comes before its table
func assertReferencedFirst(t *testing.T, order []string, tables []models.TableSchema) {
	t.Helper()
	require.Len(t, order, len(tables))
	for _, table := range tables {
		for _, fk := range table.ForeignKeys {
			assert.Less(t, indexOf(order, fk.ReferencedTable), indexOf(order, table.Name),
				"%s must be inserted before %s", fk.ReferencedTable, table.Name)
		}
	}
}

func TestNewSchemaAnalyzer(t *testing.T) {
	logger := quietLogger()
	db := connector.NewDatabaseConnector("localhost", 3306, "root", "", logger)

	analyzer := NewSchemaAnalyzer(db, logger)

	require.NotNil(t, analyzer)
	assert.Same(t, db, analyzer.DB)
	assert.Same(t, logger, analyzer.Logger)
	assert.NotNil(t, analyzer.ForeignKeys)
	assert.NotNil(t, analyzer.TableColumns)
	assert.NotNil(t, analyzer.TableIndexMap)
	assert.NotNil(t, analyzer.IndexTableMap)
	assert.Nil(t, analyzer.DependencyGraph)
}

func TestInsertionOrderForDomainCatalogs(t *testing.T) {
	catalogs := map[string][]models.TableSchema{
		schema.Shop:    schema.ShopTables(),
		schema.Library: schema.LibraryTables(),
		schema.Cinema:  schema.CinemaTables(),
		schema.Clinic:  schema.ClinicTables(),
	}

	for domain, tables := range catalogs {
		t.Run(domain, func(t *testing.T) {
			analyzer := NewSchemaAnalyzer(nil, quietLogger())
			require.NoError(t, analyzer.LoadTables(tables))

			order, err := analyzer.GetTableInsertionOrder()
			require.NoError(t, err)
			assertReferencedFirst(t, order, tables)
		})
	}
}

func TestInsertionOrderIsStable(t *testing.T) {
	analyzer := NewSchemaAnalyzer(nil, quietLogger())
	require.NoError(t, analyzer.LoadTables(schema.ShopTables()))

	first, err := analyzer.GetTableInsertionOrder()
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := analyzer.GetTableInsertionOrder()
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestDeletionOrderIsReversed(t *testing.T) {
	analyzer := NewSchemaAnalyzer(nil, quietLogger())
	require.NoError(t, analyzer.LoadTables(schema.ShopTables()))

	insertion, err := analyzer.GetTableInsertionOrder()
	require.NoError(t, err)
	deletion, err := analyzer.GetTableDeletionOrder()
	require.NoError(t, err)

	require.Len(t, deletion, len(insertion))
	for i := range insertion {
		assert.Equal(t, insertion[i], deletion[len(deletion)-1-i])
	}
	assert.Equal(t, "detalhes_venda", deletion[0])
}

func TestSelfReferenceIsIgnored(t *testing.T) {
	tables := []models.TableSchema{
		{Name: "employees", Columns: []string{"id", "manager_id"}, ForeignKeys: []models.ForeignKey{
			{Column: "manager_id", ReferencedTable: "employees", ReferencedColumn: "id"},
		}},
	}
	analyzer := NewSchemaAnalyzer(nil, quietLogger())
	require.NoError(t, analyzer.LoadTables(tables))

	order, err := analyzer.GetTableInsertionOrder()
	require.NoError(t, err)
	assert.Equal(t, []string{"employees"}, order)
}

func TestCircularDependency(t *testing.T) {
	tables := []models.TableSchema{
		{Name: "a", ForeignKeys: []models.ForeignKey{{Column: "b_id", ReferencedTable: "b", ReferencedColumn: "id"}}},
		{Name: "b", ForeignKeys: []models.ForeignKey{{Column: "a_id", ReferencedTable: "a", ReferencedColumn: "id"}}},
		{Name: "c"},
	}
	analyzer := NewSchemaAnalyzer(nil, quietLogger())
	require.NoError(t, analyzer.LoadTables(tables))

	assert.Equal(t, []string{"a", "b"}, analyzer.GetCircularTables())

	_, err := analyzer.GetTableInsertionOrder()
	assert.EqualError(t, err, "circular dependency between tables: a, b")

	_, err = analyzer.GetTableDeletionOrder()
	assert.Error(t, err)
}

func TestLoadTablesErrors(t *testing.T) {
	analyzer := NewSchemaAnalyzer(nil, quietLogger())

	err := analyzer.LoadTables([]models.TableSchema{{Name: "a"}, {Name: "a"}})
	assert.EqualError(t, err, "duplicate table in catalog: a")

	err = analyzer.LoadTables([]models.TableSchema{
		{Name: "a", ForeignKeys: []models.ForeignKey{{Column: "x_id", ReferencedTable: "x"}}},
	})
	assert.EqualError(t, err, "table a references unknown table x")
}

func TestAnalyzeSchemaWithoutConnection(t *testing.T) {
	analyzer := NewSchemaAnalyzer(nil, quietLogger())
	assert.Error(t, analyzer.AnalyzeSchema(context.Background(), "BD"))
}

func TestAnalyzeSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	logger := quietLogger()
	conn := connector.NewDatabaseConnector("localhost", 3306, "root", "", logger)
	conn.DB = db

	mock.ExpectQuery("FROM information_schema.tables").
		WithArgs("BD").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).
			AddRow([]byte("clientes")).
			AddRow([]byte("encomendas")))

	mock.ExpectQuery("FROM information_schema.columns").
		WithArgs("BD").
		WillReturnRows(sqlmock.NewRows([]string{"table_name", "column_name", "data_type", "is_nullable", "column_key"}).
			AddRow("clientes", "email", "varchar", "NO", "PRI").
			AddRow("clientes", "nome", "varchar", "NO", "").
			AddRow("encomendas", "numero", "varchar", "NO", "PRI").
			AddRow("encomendas", "email_cliente", "varchar", "YES", "MUL"))

	mock.ExpectQuery("FROM information_schema.key_column_usage").
		WithArgs("BD").
		WillReturnRows(sqlmock.NewRows([]string{"table_name", "column_name", "referenced_table_name", "referenced_column_name", "constraint_name"}).
			AddRow("encomendas", "email_cliente", "clientes", "email", "fk_encomendas_clientes"))

	analyzer := NewSchemaAnalyzer(conn, logger)
	require.NoError(t, analyzer.AnalyzeSchema(context.Background(), "BD"))
	assert.NoError(t, mock.ExpectationsWereMet())

	assert.Equal(t, []string{"clientes", "encomendas"}, analyzer.Tables)
	require.Len(t, analyzer.TableColumns["encomendas"], 2)
	assert.True(t, analyzer.TableColumns["encomendas"][1].IsNullable)
	assert.Equal(t, "PRI", analyzer.TableColumns["clientes"][0].ColumnKey)

	info, err := analyzer.SchemaInfo()
	require.NoError(t, err)
	assert.Equal(t, "BD", info.Database)
	assert.Equal(t, []string{"clientes", "encomendas"}, info.OrderedTables)
	require.Len(t, info.ForeignKeys["encomendas"], 1)
	assert.Equal(t, "fk_encomendas_clientes", info.ForeignKeys["encomendas"][0].ConstraintName)
}

func TestAnalyzeSchemaQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	logger := quietLogger()
	conn := connector.NewDatabaseConnector("localhost", 3306, "root", "", logger)
	conn.DB = db

	mock.ExpectQuery("FROM information_schema.tables").WillReturnError(assert.AnError)

	analyzer := NewSchemaAnalyzer(conn, logger)
	err = analyzer.AnalyzeSchema(context.Background(), "BD")
	assert.ErrorIs(t, err, assert.AnError)
}

func TestAsString(t *testing.T) {
	assert.Equal(t, "", asString(nil))
	assert.Equal(t, "abc", asString("abc"))
	assert.Equal(t, "abc", asString([]byte("abc")))
	assert.Equal(t, "42", asString(int64(42)))
}
