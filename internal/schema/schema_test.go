package schema

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitebski/sample-db-seeder/internal/generator"
	"github.com/vitebski/sample-db-seeder/pkg/models"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestDatabaseName(t *testing.T) {
	name, err := DatabaseName("  BD ")
	require.NoError(t, err)
	assert.Equal(t, "BD", name)

	_, err = DatabaseName("   ")
	assert.EqualError(t, err, "database must be non-empty")

	for _, bad := range []string{"my-db", "1db", "db; DROP TABLE x", "a.b"} {
		_, err = DatabaseName(bad)
		assert.Error(t, err, "name %q", bad)
	}
}

func TestDDLIsQualified(t *testing.T) {
	builders := map[string]func(string) ([]string, error){
		Shop:    ShopDDL,
		Library: LibraryDDL,
		Cinema:  CinemaDDL,
		Clinic:  ClinicDDL,
	}
	catalogs := map[string][]models.TableSchema{
		Shop:    ShopTables(),
		Library: LibraryTables(),
		Cinema:  CinemaTables(),
		Clinic:  ClinicTables(),
	}

	for domain, build := range builders {
		t.Run(domain, func(t *testing.T) {
			stmts, err := build("Aulas")
			require.NoError(t, err)
			require.Len(t, stmts, len(catalogs[domain])+1)

			assert.True(t, strings.HasPrefix(stmts[0], "CREATE DATABASE IF NOT EXISTS Aulas"))
			assert.Contains(t, stmts[0], "utf8mb4")

			for i, table := range catalogs[domain] {
				stmt := stmts[i+1]
				assert.True(t, strings.HasPrefix(stmt, "CREATE TABLE IF NOT EXISTS Aulas."+table.Name+" ("), stmt)
				assert.Contains(t, stmt, "ENGINE=InnoDB")
				assert.NotContains(t, stmt, "%!")
				for _, col := range table.Columns {
					assert.Contains(t, stmt, col, "column %s of %s", col, table.Name)
				}
				for _, fk := range table.ForeignKeys {
					assert.Contains(t, stmt, "REFERENCES Aulas."+fk.ReferencedTable)
				}
			}

			_, err = build("")
			assert.Error(t, err)
		})
	}
}

func TestCatalogsDeclareParentsFirst(t *testing.T) {
	for _, tables := range [][]models.TableSchema{ShopTables(), LibraryTables(), CinemaTables(), ClinicTables()} {
		seen := make(map[string]bool)
		for _, table := range tables {
			for _, fk := range table.ForeignKeys {
				assert.Equal(t, table.Name, fk.Table)
				assert.True(t, seen[fk.ReferencedTable], "%s references %s before it is declared", table.Name, fk.ReferencedTable)
			}
			seen[table.Name] = true
		}
	}
}

func assertRowShapes(t *testing.T, dataset *models.Dataset) {
	t.Helper()
	for _, table := range dataset.Tables {
		for i, row := range table.Rows {
			require.Len(t, row, len(table.Schema.Columns), "row %d of %s", i, table.Schema.Name)
		}
	}
}

func TestShopDataset(t *testing.T) {
	data, err := generator.GenerateShop(generator.DefaultShopOptions(), quietLogger())
	require.NoError(t, err)

	dataset, err := ShopDataset("BD", data)
	require.NoError(t, err)
	assert.Equal(t, Shop, dataset.Domain)
	assert.Equal(t, "BD", dataset.Database)
	assertRowShapes(t, dataset)

	assert.Len(t, dataset.Table("fornecedores").Rows, 3)
	assert.Len(t, dataset.Table("produtos").Rows, 23)
	assert.Len(t, dataset.Table("encomendas").Rows, 1000)
	assert.Len(t, dataset.Table("detalhes_venda").Rows, len(data.Lines))

	// prices keep both decimals
	assert.Equal(t, "600.00", dataset.Table("produtos").Rows[0][2])

	_, err = ShopDataset("", data)
	assert.Error(t, err)
}

func TestLibraryDataset(t *testing.T) {
	data := generator.GenerateLibrary(generator.DefaultSeed, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

	dataset, err := LibraryDataset("BD", data)
	require.NoError(t, err)
	assertRowShapes(t, dataset)

	loans := dataset.Table("emprestimos").Rows
	require.Len(t, loans, len(data.Loans))
	// fixed open loans carry a NULL return date
	assert.Nil(t, loans[10][4])
	assert.IsType(t, time.Time{}, loans[0][4])
}

func TestCinemaAndClinicDatasets(t *testing.T) {
	cinema, err := CinemaDataset("BD", generator.GenerateCinema(generator.DefaultSeed))
	require.NoError(t, err)
	assert.Equal(t, Cinema, cinema.Domain)
	assertRowShapes(t, cinema)
	assert.Len(t, cinema.Table("filmes").Rows, 6)

	clinic, err := ClinicDataset("BD", generator.GenerateClinic(generator.DefaultSeed))
	require.NoError(t, err)
	assert.Equal(t, Clinic, clinic.Domain)
	assertRowShapes(t, clinic)
	assert.Len(t, clinic.Table("consultas").Rows, 50)
	assert.Nil(t, clinic.Table("nope"))
}
