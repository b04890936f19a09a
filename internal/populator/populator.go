package populator

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/sirupsen/logrus"
	"github.com/vitebski/sample-db-seeder/internal/analyzer"
	"github.com/vitebski/sample-db-seeder/internal/connector"
	"github.com/vitebski/sample-db-seeder/pkg/models"
)

// DatabasePopulator recreates a sample database from a dataset
type DatabasePopulator struct {
	DB        *connector.DatabaseConnector
	BatchSize int
	DryRun    bool
	Logger    *logrus.Logger
	qb        sq.StatementBuilderType
}

// NewDatabasePopulator creates a new database populator
func NewDatabasePopulator(db *connector.DatabaseConnector, batchSize int, dryRun bool, logger *logrus.Logger) *DatabasePopulator {
	if batchSize == 0 {
		batchSize = DefaultBatchSize
	}
	return &DatabasePopulator{
		DB:        db,
		BatchSize: batchSize,
		DryRun:    dryRun,
		Logger:    logger,
		qb:        sq.StatementBuilder.PlaceholderFormat(sq.Question),
	}
}

// PopulateDatabase runs the DDL of the dataset, then replaces the content of
// every table inside a single transaction. In dry-run mode nothing is sent
// to the server.
func (dp *DatabasePopulator) PopulateDatabase(ctx context.Context, dataset *models.Dataset) (*models.PopulationResult, error) {
	if dataset == nil {
		return nil, fmt.Errorf("dataset must not be nil")
	}
	if dp.BatchSize <= 0 {
		return nil, fmt.Errorf("batch size must be > 0, got %d", dp.BatchSize)
	}

	schemaAnalyzer := analyzer.NewSchemaAnalyzer(dp.DB, dp.Logger)
	if err := schemaAnalyzer.LoadTables(dataset.Schemas()); err != nil {
		return nil, fmt.Errorf("analyzing %s tables: %w", dataset.Domain, err)
	}
	insertionOrder, err := schemaAnalyzer.GetTableInsertionOrder()
	if err != nil {
		return nil, fmt.Errorf("ordering %s tables: %w", dataset.Domain, err)
	}
	deletionOrder, err := schemaAnalyzer.GetTableDeletionOrder()
	if err != nil {
		return nil, fmt.Errorf("ordering %s tables: %w", dataset.Domain, err)
	}

	result := &models.PopulationResult{
		Domain:       dataset.Domain,
		Database:     dataset.Database,
		TableOrder:   insertionOrder,
		RowsInserted: make(map[string]int, len(insertionOrder)),
		DryRun:       dp.DryRun,
	}

	if dp.DryRun {
		for _, table := range insertionOrder {
			result.RowsInserted[table] = len(dataset.Table(table).Rows)
		}
		dp.Logger.Infof("Dry run: %d rows prepared for %s", result.TotalRows(), dataset.Database)
		return result, nil
	}

	if dp.DB == nil {
		return nil, fmt.Errorf("populating %s needs a database connection", dataset.Database)
	}

	startTime := time.Now()

	// DDL causes an implicit commit in MySQL, so it runs outside the transaction
	for _, stmt := range dataset.DDL {
		if _, err := dp.DB.ExecuteStatement(ctx, stmt); err != nil {
			return nil, fmt.Errorf("creating schema %s: %w", dataset.Database, err)
		}
	}
	dp.Logger.Debugf("Executed %d DDL statements for %s", len(dataset.DDL), dataset.Database)

	tx, err := dp.DB.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("starting transaction: %w", err)
	}

	if err := dp.replaceContent(ctx, tx, dataset, deletionOrder, insertionOrder, result); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			dp.Logger.Errorf("Error rolling back %s: %v", dataset.Database, rbErr)
		}
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing %s: %w", dataset.Database, err)
	}

	dp.Logger.Infof("Seeded %s: %d rows in %v", dataset.Database, result.TotalRows(), time.Since(startTime))
	return result, nil
}

func (dp *DatabasePopulator) replaceContent(
	ctx context.Context,
	tx *sql.Tx,
	dataset *models.Dataset,
	deletionOrder []string,
	insertionOrder []string,
	result *models.PopulationResult,
) error {
	for _, table := range deletionOrder {
		query, args, err := dp.qb.Delete(qualified(dataset.Database, table)).ToSql()
		if err != nil {
			return fmt.Errorf("building delete for %s: %w", table, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
		dp.Logger.Debugf("Cleared table %s", table)
	}

	for _, table := range insertionOrder {
		inserted, err := dp.insertTable(ctx, tx, dataset.Database, dataset.Table(table))
		if err != nil {
			return err
		}
		result.RowsInserted[table] = inserted
		dp.Logger.Infof("Inserted %d rows into %s", inserted, table)
	}
	return nil
}

// insertTable sends the rows of one table as multi-row INSERT statements
func (dp *DatabasePopulator) insertTable(ctx context.Context, tx *sql.Tx, database string, data *models.TableData) (int, error) {
	batches, err := Chunk(data.Rows, dp.BatchSize)
	if err != nil {
		return 0, err
	}

	inserted := 0
	for i, batch := range batches {
		builder := dp.qb.Insert(qualified(database, data.Schema.Name)).Columns(data.Schema.Columns...)
		for _, row := range batch {
			if len(row) != len(data.Schema.Columns) {
				return inserted, fmt.Errorf("row for %s has %d values, expected %d",
					data.Schema.Name, len(row), len(data.Schema.Columns))
			}
			builder = builder.Values(row...)
		}

		query, args, err := builder.ToSql()
		if err != nil {
			return inserted, fmt.Errorf("building insert for %s: %w", data.Schema.Name, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return inserted, fmt.Errorf("inserting batch %d into %s: %w", i+1, data.Schema.Name, err)
		}
		inserted += len(batch)
		dp.Logger.Debugf("Inserted batch %d/%d into %s", i+1, len(batches), data.Schema.Name)
	}
	return inserted, nil
}

func qualified(database, table string) string {
	return database + "." + table
}
