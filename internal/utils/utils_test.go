package utils

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitebski/sample-db-seeder/internal/connector"
	"github.com/vitebski/sample-db-seeder/pkg/models"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestSetupLogging(t *testing.T) {
	t.Setenv("SEEDER_LOG_LEVEL", "")

	tests := []struct {
		input string
		want  logrus.Level
	}{
		{"", logrus.InfoLevel},
		{"debug", logrus.DebugLevel},
		{"info", logrus.InfoLevel},
		{"warn", logrus.WarnLevel},
		{"error", logrus.ErrorLevel},
		{"invalid", logrus.InfoLevel},
	}

	for _, tt := range tests {
		logger := SetupLogging(tt.input)
		require.NotNil(t, logger)
		assert.Equal(t, tt.want, logger.Level, "level for %q", tt.input)
	}
}

func TestSetupLoggingFromEnv(t *testing.T) {
	t.Setenv("SEEDER_LOG_LEVEL", "warn")
	assert.Equal(t, logrus.WarnLevel, SetupLogging("").Level)

	// explicit level wins
	assert.Equal(t, logrus.ErrorLevel, SetupLogging("error").Level)
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("TEST_ENV_INT", "42")
	assert.Equal(t, 42, GetEnvInt("TEST_ENV_INT", 10))

	t.Setenv("TEST_ENV_INT", "")
	assert.Equal(t, 10, GetEnvInt("TEST_ENV_INT", 10))

	t.Setenv("TEST_ENV_INT", "not-an-int")
	assert.Equal(t, 10, GetEnvInt("TEST_ENV_INT", 10))
}

func TestLoadEnvironmentVariables(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")

	assert.False(t, LoadEnvironmentVariables(envFile, quietLogger()))

	t.Setenv("SEEDER_TEST_VALUE", "")
	os.Unsetenv("SEEDER_TEST_VALUE")
	require.NoError(t, os.WriteFile(envFile, []byte("SEEDER_TEST_VALUE=from-file\n"), 0o600))

	assert.True(t, LoadEnvironmentVariables(envFile, quietLogger()))
	assert.Equal(t, "from-file", os.Getenv("SEEDER_TEST_VALUE"))
}

func sampleResult() *models.PopulationResult {
	return &models.PopulationResult{
		Domain:     "shop",
		Database:   "BD",
		TableOrder: []string{"clientes", "encomendas"},
		RowsInserted: map[string]int{
			"clientes":   10,
			"encomendas": 1000,
		},
	}
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	dry := sampleResult()
	dry.Database = "BD_DRY"
	dry.DryRun = true

	PrintSummary(&buf, []*models.PopulationResult{sampleResult(), dry})

	out := buf.String()
	assert.Contains(t, out, "DATABASE SEED SUMMARY")
	assert.Contains(t, out, "BD (shop)")
	assert.Contains(t, out, "dry run")
	assert.Regexp(t, `encomendas\s+1000`, out)
	assert.Contains(t, out, "Total rows: 2020")
}

func TestPrintSchemaAnalysis(t *testing.T) {
	var buf bytes.Buffer
	info := &models.SchemaInfo{
		Database: "BD",
		Tables:   []string{"clientes", "encomendas"},
		TableColumns: map[string][]models.Column{
			"clientes":   {{Name: "Email_Cliente"}},
			"encomendas": {{Name: "Num_Encomenda"}, {Name: "Email_Cliente"}},
		},
		ForeignKeys: map[string][]models.ForeignKey{
			"encomendas": {{Table: "encomendas", Column: "Email_Cliente", ReferencedTable: "clientes", ReferencedColumn: "Email_Cliente"}},
		},
		OrderedTables: []string{"clientes", "encomendas"},
	}

	PrintSchemaAnalysis(&buf, info)

	out := buf.String()
	assert.Contains(t, out, "Total tables: 2")
	assert.Contains(t, out, "Email_Cliente -> clientes.Email_Cliente")
	assert.Contains(t, out, "1. clientes (Standalone)")
	assert.Contains(t, out, "2. encomendas (Dependent)")
}

func newMockConnector(t *testing.T) (*connector.DatabaseConnector, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	conn := connector.NewDatabaseConnector("localhost", 3306, "root", "", quietLogger())
	conn.DB = db
	return conn, mock
}

func TestVerifyTablePopulation(t *testing.T) {
	conn, mock := newMockConnector(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) AS count FROM BD.clientes")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow([]byte("10")))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) AS count FROM BD.encomendas")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(1000)))

	verification := VerifyTablePopulation(context.Background(), conn, sampleResult(), quietLogger())
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.True(t, verification.Success)
	assert.Empty(t, verification.EmptyTables)
	assert.Empty(t, verification.MismatchTables)
}

func TestVerifyTablePopulationFailures(t *testing.T) {
	conn, mock := newMockConnector(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM BD.clientes")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow([]byte("0")))
	mock.ExpectQuery(regexp.QuoteMeta("FROM BD.encomendas")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow([]byte("999")))

	verification := VerifyTablePopulation(context.Background(), conn, sampleResult(), quietLogger())
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.False(t, verification.Success)
	assert.Equal(t, []string{"clientes"}, verification.EmptyTables)
	assert.Equal(t, [2]int{999, 1000}, verification.MismatchTables["encomendas"])

	var buf bytes.Buffer
	PrintVerificationResults(&buf, "BD", verification)
	assert.Contains(t, buf.String(), "1 tables have no records")
	assert.Contains(t, buf.String(), "encomendas: 999/1000 records")
}

func TestVerifyTablePopulationQueryError(t *testing.T) {
	conn, mock := newMockConnector(t)

	mock.ExpectQuery("FROM BD.clientes").WillReturnError(assert.AnError)
	mock.ExpectQuery("FROM BD.encomendas").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(1000)))

	verification := VerifyTablePopulation(context.Background(), conn, sampleResult(), quietLogger())
	assert.False(t, verification.Success)
	assert.Equal(t, []string{"clientes"}, verification.EmptyTables)
}

func TestPrintVerificationResultsSuccess(t *testing.T) {
	var buf bytes.Buffer
	PrintVerificationResults(&buf, "BD", &models.VerificationResult{Success: true})
	assert.Contains(t, buf.String(), "All tables have the expected number of records")
}
