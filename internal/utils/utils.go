package utils

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/vitebski/sample-db-seeder/internal/connector"
	"github.com/vitebski/sample-db-seeder/pkg/models"
)

// SetupLogging configures the logging system
func SetupLogging(logLevel string) *logrus.Logger {
	logger := logrus.New()

	// Get log level from environment variable or parameter
	levelStr := logLevel
	if levelStr == "" {
		levelStr = os.Getenv("SEEDER_LOG_LEVEL")
		if levelStr == "" {
			levelStr = "info"
		}
	}

	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}

	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	logger.SetOutput(os.Stderr)

	logger.Debugf("Logging configured with level: %s", level)
	return logger
}

// LoadEnvironmentVariables loads environment variables from a .env file if
// it exists. It reports whether a file was loaded.
func LoadEnvironmentVariables(envFile string, logger *logrus.Logger) bool {
	if _, err := os.Stat(envFile); err != nil {
		sampleEnvFile := envFile + ".sample"
		if _, err := os.Stat(sampleEnvFile); err == nil {
			logger.Infof("No %s file found, but %s exists. Consider copying %s to %s and updating it.",
				envFile, sampleEnvFile, sampleEnvFile, envFile)
		} else {
			logger.Debugf("No %s file found, using existing environment variables", envFile)
		}
		return false
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warningf("Error loading %s file: %v", envFile, err)
		return false
	}
	logger.Infof("Loaded environment variables from %s", envFile)

	if logger.IsLevelEnabled(logrus.DebugLevel) {
		for _, env := range os.Environ() {
			if !strings.HasPrefix(env, "MYSQL_") {
				continue
			}
			parts := strings.SplitN(env, "=", 2)
			if len(parts) != 2 {
				continue
			}
			if parts[0] == "MYSQL_PASSWORD" {
				logger.Debugf("%s=********", parts[0])
			} else {
				logger.Debugf("%s=%s", parts[0], parts[1])
			}
		}
	}
	return true
}

// GetEnvInt gets an integer value from environment variable
func GetEnvInt(varName string, defaultValue int) int {
	value := os.Getenv(varName)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intValue
}

// PrintSummary prints the rows inserted per table for every seeded database
func PrintSummary(w io.Writer, results []*models.PopulationResult) {
	title := color.New(color.Bold)
	ok := color.New(color.FgGreen)
	dry := color.New(color.FgYellow)

	fmt.Fprintln(w, "\n"+strings.Repeat("=", 50))
	title.Fprintln(w, "DATABASE SEED SUMMARY")
	fmt.Fprintln(w, strings.Repeat("=", 50))

	grandTotal := 0
	for _, result := range results {
		status := ok.Sprint("seeded")
		if result.DryRun {
			status = dry.Sprint("dry run")
		}
		fmt.Fprintf(w, "\n%s (%s) [%s]\n", result.Database, result.Domain, status)
		for _, table := range result.TableOrder {
			fmt.Fprintf(w, "  %-20s %8d\n", table, result.RowsInserted[table])
		}
		fmt.Fprintf(w, "  %-20s %8d\n", "total", result.TotalRows())
		grandTotal += result.TotalRows()
	}

	fmt.Fprintf(w, "\nTotal rows: %d\n", grandTotal)
	fmt.Fprintln(w, strings.Repeat("=", 50))
}

// PrintSchemaAnalysis prints the tables, foreign keys and insertion order of
// a live schema
func PrintSchemaAnalysis(w io.Writer, info *models.SchemaInfo) {
	heading := color.New(color.Bold)

	fmt.Fprintln(w, "\n"+strings.Repeat("=", 80))
	heading.Fprintf(w, "DATABASE SCHEMA ANALYSIS REPORT: %s\n", info.Database)
	fmt.Fprintln(w, strings.Repeat("=", 80))

	fkCount := 0
	for _, fks := range info.ForeignKeys {
		fkCount += len(fks)
	}

	heading.Fprintln(w, "\n1. BASIC STATISTICS")
	fmt.Fprintf(w, "   Total tables: %d\n", len(info.Tables))
	fmt.Fprintf(w, "   Tables with foreign keys: %d\n", len(info.ForeignKeys))
	fmt.Fprintf(w, "   Foreign keys: %d\n", fkCount)

	heading.Fprintln(w, "\n2. TABLES")
	for _, table := range info.Tables {
		fmt.Fprintf(w, "   %s (%d columns)\n", table, len(info.TableColumns[table]))
		for _, fk := range info.ForeignKeys[table] {
			fmt.Fprintf(w, "     %s -> %s.%s\n", fk.Column, fk.ReferencedTable, fk.ReferencedColumn)
		}
	}

	heading.Fprintln(w, "\n3. TABLE INSERTION ORDER")
	for i, table := range info.OrderedTables {
		category := "Standalone"
		if len(info.ForeignKeys[table]) > 0 {
			category = "Dependent"
		}
		fmt.Fprintf(w, "   %3d. %s (%s)\n", i+1, table, category)
	}

	fmt.Fprintln(w, "\n"+strings.Repeat("=", 80))
}

// VerifyTablePopulation compares the row count of every seeded table with
// the number of rows inserted
func VerifyTablePopulation(ctx context.Context, db *connector.DatabaseConnector, result *models.PopulationResult, logger *logrus.Logger) *models.VerificationResult {
	logger.Infof("Verifying row counts in %s...", result.Database)

	verification := &models.VerificationResult{
		EmptyTables:    []string{},
		MismatchTables: make(map[string][2]int),
	}

	for _, table := range result.TableOrder {
		expected := result.RowsInserted[table]

		query, args, err := sq.Select("COUNT(*) AS count").From(result.Database + "." + table).ToSql()
		if err != nil {
			logger.Warningf("Could not build count query for table %s: %v", table, err)
			verification.EmptyTables = append(verification.EmptyTables, table)
			continue
		}

		rows, err := db.ExecuteQuery(ctx, query, args...)
		if err != nil || len(rows) == 0 {
			logger.Warningf("Could not verify record count for table: %s", table)
			verification.EmptyTables = append(verification.EmptyTables, table)
			continue
		}

		count, err := strconv.Atoi(fmt.Sprintf("%v", rows[0]["count"]))
		if err != nil {
			logger.Warningf("Could not parse count for table %s: %v", table, err)
			verification.EmptyTables = append(verification.EmptyTables, table)
			continue
		}

		switch {
		case count == 0 && expected > 0:
			logger.Warningf("Table %s has no records", table)
			verification.EmptyTables = append(verification.EmptyTables, table)
		case count != expected:
			logger.Warningf("Table %s has %d/%d expected records", table, count, expected)
			verification.MismatchTables[table] = [2]int{count, expected}
		}
	}

	verification.Success = len(verification.EmptyTables) == 0 && len(verification.MismatchTables) == 0
	if verification.Success {
		logger.Info("Verification successful: all tables have the expected number of records")
	} else {
		logger.Errorf("Verification failed: %d empty, %d mismatched tables",
			len(verification.EmptyTables), len(verification.MismatchTables))
	}
	return verification
}

// PrintVerificationResults prints the results of the table population verification
func PrintVerificationResults(w io.Writer, database string, verification *models.VerificationResult) {
	fmt.Fprintln(w, "\n"+strings.Repeat("=", 50))
	fmt.Fprintf(w, "TABLE POPULATION VERIFICATION: %s\n", database)
	fmt.Fprintln(w, strings.Repeat("=", 50))

	if verification.Success {
		color.New(color.FgGreen).Fprintln(w, "✅ All tables have the expected number of records")
		fmt.Fprintln(w, strings.Repeat("=", 50))
		return
	}

	if len(verification.EmptyTables) > 0 {
		color.New(color.FgRed).Fprintf(w, "❌ %d tables have no records:\n", len(verification.EmptyTables))
		for _, table := range verification.EmptyTables {
			fmt.Fprintf(w, "  - %s\n", table)
		}
		fmt.Fprintln(w)
	}

	if len(verification.MismatchTables) > 0 {
		color.New(color.FgYellow).Fprintf(w, "⚠️  %d tables have unexpected counts:\n", len(verification.MismatchTables))
		tables := make([]string, 0, len(verification.MismatchTables))
		for table := range verification.MismatchTables {
			tables = append(tables, table)
		}
		sort.Strings(tables)
		for _, table := range tables {
			counts := verification.MismatchTables[table]
			fmt.Fprintf(w, "  - %s: %d/%d records\n", table, counts[0], counts[1])
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, strings.Repeat("=", 50))
}
