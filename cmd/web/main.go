package main

import (
	"database/sql"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/drillops/corecost/pkg/server"
	"github.com/drillops/corecost/pkg/services/analytics"
	"github.com/drillops/corecost/pkg/services/config"
	"github.com/drillops/corecost/pkg/services/costing"
	"github.com/drillops/corecost/pkg/store/postgres"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the costing analytics web server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "corecost.yaml",
		"Path to the store profile file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	profile, err := config.LoadStoreProfile(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load store profile: %w", err)
	}

	db, err := sql.Open("postgres", profile.DSN())
	if err != nil {
		return fmt.Errorf("failed to open store connection: %w", err)
	}
	defer db.Close()

	deps, err := buildDependencies(db)
	if err != nil {
		return err
	}

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")
	if host == "" || port == "" {
		logger.Error().Msg("Missing server configuration from .env file")
		os.Exit(1)
	}

	api := server.NewWebAPI(logger, server.Config{
		Addr:            net.JoinHostPort(host, port),
		ShutdownTimeout: 10 * time.Second,
		Dependencies:    deps,
	})

	return api.Start()
}

func buildDependencies(db *sql.DB) (server.Dependencies, error) {
	jobs, err := postgres.NewJobStore(db)
	if err != nil {
		return server.Dependencies{}, fmt.Errorf("failed to create job store: %w", err)
	}
	expenses, err := postgres.NewExpenseStore(db)
	if err != nil {
		return server.Dependencies{}, fmt.Errorf("failed to create expense store: %w", err)
	}
	inventory, err := postgres.NewInventoryStore(db)
	if err != nil {
		return server.Dependencies{}, fmt.Errorf("failed to create inventory store: %w", err)
	}
	purchases, err := postgres.NewPurchaseOrderStore(db)
	if err != nil {
		return server.Dependencies{}, fmt.Errorf("failed to create purchase order store: %w", err)
	}
	invoices, err := postgres.NewInvoiceStore(db)
	if err != nil {
		return server.Dependencies{}, fmt.Errorf("failed to create invoice store: %w", err)
	}

	builder := costing.NewReportBuilder(jobs, expenses, inventory, purchases, invoices)

	return server.Dependencies{
		ReportBuilder:       builder,
		Profitability:       analytics.NewProfitabilityAnalyzer(jobs, builder, analytics.DefaultMaxConcurrentBuilds),
		Trends:              analytics.NewCostTrendAnalyzer(jobs, expenses, inventory, purchases),
		Comparison:          analytics.NewJobComparisonEngine(builder, analytics.DefaultMaxConcurrentBuilds),
		ClientProfitability: analytics.NewClientProfitabilityAnalyzer(jobs, builder, analytics.DefaultMaxConcurrentBuilds),
	}, nil
}
