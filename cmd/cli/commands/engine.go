// Package commands wires the analytics engine into cobra subcommands.
package commands

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"

	"github.com/drillops/corecost/pkg/services/analytics"
	"github.com/drillops/corecost/pkg/services/config"
	"github.com/drillops/corecost/pkg/services/costing"
	"github.com/drillops/corecost/pkg/store/postgres"
)

const dateFlagLayout = "02-01-2006"

// engine bundles the analyzers a command needs plus the connection to close.
type engine struct {
	db            *sql.DB
	builder       costing.ReportBuilder
	profitability analytics.ProfitabilityAnalyzer
	trends        analytics.CostTrendAnalyzer
	comparison    analytics.JobComparisonEngine
	clients       analytics.ClientProfitabilityAnalyzer
}

func newEngine(profilePath string) (*engine, error) {
	profile, err := config.LoadStoreProfile(profilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load store profile: %w", err)
	}

	db, err := sql.Open("postgres", profile.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open store connection: %w", err)
	}

	jobs, err := postgres.NewJobStore(db)
	if err != nil {
		return nil, err
	}
	expenses, err := postgres.NewExpenseStore(db)
	if err != nil {
		return nil, err
	}
	inventory, err := postgres.NewInventoryStore(db)
	if err != nil {
		return nil, err
	}
	purchases, err := postgres.NewPurchaseOrderStore(db)
	if err != nil {
		return nil, err
	}
	invoices, err := postgres.NewInvoiceStore(db)
	if err != nil {
		return nil, err
	}

	builder := costing.NewReportBuilder(jobs, expenses, inventory, purchases, invoices)

	return &engine{
		db:            db,
		builder:       builder,
		profitability: analytics.NewProfitabilityAnalyzer(jobs, builder, analytics.DefaultMaxConcurrentBuilds),
		trends:        analytics.NewCostTrendAnalyzer(jobs, expenses, inventory, purchases),
		comparison:    analytics.NewJobComparisonEngine(builder, analytics.DefaultMaxConcurrentBuilds),
		clients:       analytics.NewClientProfitabilityAnalyzer(jobs, builder, analytics.DefaultMaxConcurrentBuilds),
	}, nil
}

func (e *engine) Close() error {
	return e.db.Close()
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseDateFlag(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dateFlagLayout, value)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, want DD-MM-YYYY", value)
	}
	return &parsed, nil
}
