package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/vitebski/sample-db-seeder/internal/config"
	"github.com/vitebski/sample-db-seeder/internal/generator"
	"github.com/vitebski/sample-db-seeder/internal/schema"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(&options{}).ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(opts *options) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sample-db-seeder",
		Short: "Seed sample MySQL databases for SQL exercises",
		Long: `Sample Database Seeder

Creates and fills the shop, library, cinema and clinic teaching databases
with deterministic, seeded data. Every run replaces the previous content
inside a single transaction.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", config.DefaultPath, "Path to the TOML configuration file")
	pf.StringVarP(&opts.envFile, "env-file", "e", ".env", "Path to .env file")
	pf.StringVarP(&opts.logLevel, "log-level", "l", "", "Log level (debug, info, warn, error)")
	pf.IntVarP(&opts.batchSize, "batch-size", "b", 0, "Rows per INSERT statement (default 1000)")
	pf.BoolVar(&opts.dryRun, "dry-run", false, "Generate and validate the data without touching the database")
	pf.BoolVarP(&opts.verify, "verify", "v", false, "Verify table row counts after seeding")
	pf.StringVarP(&opts.host, "host", "H", "", "MySQL host (overrides config and MYSQL_HOST)")
	pf.IntVarP(&opts.port, "port", "P", 0, "MySQL port (overrides config and MYSQL_PORT)")
	pf.StringVarP(&opts.user, "user", "u", "", "MySQL user (overrides config and MYSQL_USER)")
	pf.StringVarP(&opts.password, "password", "p", "", "MySQL password (overrides config and MYSQL_PASSWORD)")
	pf.StringVarP(&opts.database, "database", "d", "", "Database name (overrides config and MYSQL_DATABASE)")

	shopCmd := &cobra.Command{
		Use:   "shop",
		Short: "Seed the shop database (suppliers, products, clients, orders)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, schema.Shop)
		},
	}
	shopCmd.Flags().IntVarP(&opts.orders, "orders", "n", generator.DefaultTotalOrders, "Total number of orders (>= 50)")
	shopCmd.Flags().Int64VarP(&opts.shopSeed, "seed", "s", generator.DefaultShopSeed, "Random seed")
	shopCmd.Flags().IntVar(&opts.extraClients, "extra-clients", 0, "Additional generated clients")

	libraryCmd := &cobra.Command{
		Use:   "library",
		Short: "Seed the library database (authors, books, readers, loans)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, schema.Library)
		},
	}
	libraryCmd.Flags().Int64VarP(&opts.seed, "seed", "s", generator.DefaultSeed, "Random seed")
	libraryCmd.Flags().StringVar(&opts.asOf, "as-of", "", "Reference date for open loans, YYYY-MM-DD (default today)")

	cinemaCmd := &cobra.Command{
		Use:   "cinema",
		Short: "Seed the cinema database (films, rooms, sessions, tickets)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, schema.Cinema)
		},
	}
	cinemaCmd.Flags().Int64VarP(&opts.seed, "seed", "s", generator.DefaultSeed, "Random seed")

	clinicCmd := &cobra.Command{
		Use:   "clinic",
		Short: "Seed the clinic database (doctors, patients, appointments)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, schema.Clinic)
		},
	}
	clinicCmd.Flags().Int64VarP(&opts.seed, "seed", "s", generator.DefaultSeed, "Random seed")

	allCmd := &cobra.Command{
		Use:   "all",
		Short: "Seed every sample database",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, schema.Domains...)
		},
	}
	allCmd.Flags().IntVarP(&opts.orders, "orders", "n", generator.DefaultTotalOrders, "Total number of shop orders (>= 50)")
	allCmd.Flags().Int64Var(&opts.shopSeed, "shop-seed", generator.DefaultShopSeed, "Random seed for the shop database")
	allCmd.Flags().Int64VarP(&opts.seed, "seed", "s", generator.DefaultSeed, "Random seed for the other databases")
	allCmd.Flags().IntVar(&opts.extraClients, "extra-clients", 0, "Additional generated shop clients")
	allCmd.Flags().StringVar(&opts.asOf, "as-of", "", "Reference date for open loans, YYYY-MM-DD (default today)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "Print the tables, foreign keys and insertion order of the configured database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return analyze(cmd, opts)
		},
	}

	rootCmd.AddCommand(shopCmd, libraryCmd, cinemaCmd, clinicCmd, allCmd, analyzeCmd)
	return rootCmd
}
