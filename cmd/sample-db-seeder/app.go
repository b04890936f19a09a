package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/vitebski/sample-db-seeder/internal/analyzer"
	"github.com/vitebski/sample-db-seeder/internal/config"
	"github.com/vitebski/sample-db-seeder/internal/connector"
	"github.com/vitebski/sample-db-seeder/internal/generator"
	"github.com/vitebski/sample-db-seeder/internal/populator"
	"github.com/vitebski/sample-db-seeder/internal/schema"
	"github.com/vitebski/sample-db-seeder/internal/utils"
	"github.com/vitebski/sample-db-seeder/pkg/models"
)

type options struct {
	configPath string
	envFile    string
	logLevel   string
	batchSize  int
	dryRun     bool
	verify     bool

	host     string
	port     int
	user     string
	password string
	database string

	orders       int
	shopSeed     int64
	extraClients int
	seed         int64
	asOf         string
}

// settings is the result of merging config file, environment and flags
type settings struct {
	mysql        config.MySQLConfig
	batchSize    int
	orders       int
	shopSeed     int64
	extraClients int
	seed         int64
	asOf         time.Time
}

// resolveSettings applies the precedence flags > environment > config file
func resolveSettings(cmd *cobra.Command, opts *options, logger *logrus.Logger) (*settings, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) || cmd.Flags().Changed("config") {
			return nil, err
		}
		logger.Infof("No %s found, using defaults and environment", opts.configPath)
		cfg = config.Default()
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("host") {
		cfg.MySQL.Host = opts.host
	}
	if flags.Changed("port") {
		cfg.MySQL.Port = opts.port
	}
	if flags.Changed("user") {
		cfg.MySQL.User = opts.user
	}
	if flags.Changed("password") {
		cfg.MySQL.Password = opts.password
	}
	if flags.Changed("database") {
		cfg.MySQL.Database = opts.database
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &settings{
		mysql:        cfg.MySQL,
		batchSize:    pickInt(flags.Changed("batch-size"), opts.batchSize, cfg.Seed.BatchSize, utils.GetEnvInt("SEEDER_BATCH_SIZE", populator.DefaultBatchSize)),
		orders:       pickInt(flags.Changed("orders"), opts.orders, cfg.Seed.Orders, generator.DefaultTotalOrders),
		extraClients: pickInt(flags.Changed("extra-clients"), opts.extraClients, cfg.Seed.ExtraClients, 0),
		shopSeed:     pickInt64(shopSeedChanged(flags), opts.shopSeed, cfg.Seed.ShopSeed, generator.DefaultShopSeed),
		seed:         pickInt64(flags.Changed("seed"), opts.seed, cfg.Seed.Seed, generator.DefaultSeed),
	}
	if s.batchSize <= 0 {
		return nil, fmt.Errorf("batch size must be > 0, got %d", s.batchSize)
	}

	s.asOf = time.Now().UTC().Truncate(24 * time.Hour)
	if opts.asOf != "" {
		asOf, err := time.Parse(time.DateOnly, opts.asOf)
		if err != nil {
			return nil, fmt.Errorf("invalid --as-of date %q: %w", opts.asOf, err)
		}
		s.asOf = asOf
	}
	return s, nil
}

// shopSeedChanged reports an explicit shop seed. The all command takes it
// from --shop-seed and leaves --seed to the other databases.
func shopSeedChanged(flags *pflag.FlagSet) bool {
	if flags.Lookup("shop-seed") != nil {
		return flags.Changed("shop-seed")
	}
	return flags.Changed("seed")
}

func pickInt(changed bool, flagValue, configValue, defaultValue int) int {
	switch {
	case changed:
		return flagValue
	case configValue != 0:
		return configValue
	default:
		return defaultValue
	}
}

func pickInt64(changed bool, flagValue, configValue, defaultValue int64) int64 {
	switch {
	case changed:
		return flagValue
	case configValue != 0:
		return configValue
	default:
		return defaultValue
	}
}

// buildDataset generates the rows of one domain
func buildDataset(domain string, s *settings, logger *logrus.Logger) (*models.Dataset, error) {
	database := s.mysql.Database

	switch domain {
	case schema.Shop:
		data, err := generator.GenerateShop(generator.ShopOptions{
			Seed:         s.shopSeed,
			TotalOrders:  s.orders,
			ExtraClients: s.extraClients,
		}, logger)
		if err != nil {
			return nil, err
		}
		return schema.ShopDataset(database, data)
	case schema.Library:
		return schema.LibraryDataset(database, generator.GenerateLibrary(s.seed, s.asOf))
	case schema.Cinema:
		return schema.CinemaDataset(database, generator.GenerateCinema(s.seed))
	case schema.Clinic:
		return schema.ClinicDataset(database, generator.GenerateClinic(s.seed))
	default:
		return nil, fmt.Errorf("unknown domain: %s", domain)
	}
}

func run(cmd *cobra.Command, opts *options, domains ...string) error {
	logger := utils.SetupLogging(opts.logLevel)
	utils.LoadEnvironmentVariables(opts.envFile, logger)

	s, err := resolveSettings(cmd, opts, logger)
	if err != nil {
		return err
	}

	// generate everything first so a failing generator never touches the server
	datasets := make([]*models.Dataset, 0, len(domains))
	for _, domain := range domains {
		dataset, err := buildDataset(domain, s, logger)
		if err != nil {
			return fmt.Errorf("generating %s data: %w", domain, err)
		}
		datasets = append(datasets, dataset)
	}

	ctx := cmd.Context()

	var db *connector.DatabaseConnector
	if !opts.dryRun {
		db = connector.NewDatabaseConnector(s.mysql.Host, s.mysql.Port, s.mysql.User, s.mysql.Password, logger)
		if err := db.Connect(ctx); err != nil {
			return fmt.Errorf("failed to connect to MySQL: %w", err)
		}
		defer db.Disconnect()
	}

	dbPopulator := populator.NewDatabasePopulator(db, s.batchSize, opts.dryRun, logger)

	var results []*models.PopulationResult
	for _, dataset := range datasets {
		logger.Infof("Seeding %s data into %s...", dataset.Domain, dataset.Database)
		result, err := dbPopulator.PopulateDatabase(ctx, dataset)
		if err != nil {
			return fmt.Errorf("seeding %s: %w", dataset.Domain, err)
		}
		results = append(results, result)
	}

	utils.PrintSummary(os.Stdout, results)

	if opts.verify && !opts.dryRun {
		failed := false
		for _, result := range results {
			verification := utils.VerifyTablePopulation(ctx, db, result, logger)
			utils.PrintVerificationResults(os.Stdout, result.Database, verification)
			failed = failed || !verification.Success
		}
		if failed {
			return fmt.Errorf("verification failed")
		}
	}
	return nil
}

func analyze(cmd *cobra.Command, opts *options) error {
	logger := utils.SetupLogging(opts.logLevel)
	utils.LoadEnvironmentVariables(opts.envFile, logger)

	s, err := resolveSettings(cmd, opts, logger)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	db := connector.NewDatabaseConnector(s.mysql.Host, s.mysql.Port, s.mysql.User, s.mysql.Password, logger)
	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to MySQL: %w", err)
	}
	defer db.Disconnect()

	schemaAnalyzer := analyzer.NewSchemaAnalyzer(db, logger)
	if err := schemaAnalyzer.AnalyzeSchema(ctx, s.mysql.Database); err != nil {
		return fmt.Errorf("failed to analyze schema: %w", err)
	}
	if len(schemaAnalyzer.Tables) == 0 {
		logger.Warningf("No tables found in %s", s.mysql.Database)
	}

	info, err := schemaAnalyzer.SchemaInfo()
	if err != nil {
		return err
	}
	utils.PrintSchemaAnalysis(os.Stdout, info)
	return nil
}
