package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/drillops/corecost/pkg/models/domain"
	"github.com/drillops/corecost/pkg/services/costing"
	"github.com/drillops/corecost/pkg/store/ledger"
)

// ClientProfitabilityAnalyzer scopes profitability analysis to one client and
// adds per-job averages.
type ClientProfitabilityAnalyzer interface {
	Analyze(ctx context.Context, clientID string, from, to *time.Time) (*domain.ClientProfitabilityReport, error)
}

type clientAnalyzer struct {
	jobs    ledger.JobStore
	builder costing.ReportBuilder
	limit   int
}

func NewClientProfitabilityAnalyzer(jobs ledger.JobStore, builder costing.ReportBuilder, maxConcurrent int) ClientProfitabilityAnalyzer {
	return &clientAnalyzer{jobs: jobs, builder: builder, limit: maxConcurrent}
}

func (a *clientAnalyzer) Analyze(
	ctx context.Context,
	clientID string,
	from, to *time.Time,
) (*domain.ClientProfitabilityReport, error) {
	records, err := a.jobs.Find(ctx, ledger.JobQuery{From: from, To: to, ClientID: clientID})
	if err != nil {
		return nil, fmt.Errorf("resolve client job set: %w", err)
	}

	report := &domain.ClientProfitabilityReport{ClientID: clientID}

	ids := make([]string, 0, len(records))
	for _, rec := range records {
		ids = append(ids, rec.ID)
		if report.ClientName == "" {
			report.ClientName = rec.ClientName
		}
		if rec.CompletedAt != nil {
			report.CompletedJobs++
		}
	}

	outcomes := buildAll(ctx, a.builder, ids, a.limit)
	report.ProfitabilityReport = *foldProfitability(outcomes)

	report.AvgRevenuePerJob = safeDiv(report.TotalRevenue, report.TotalJobs)
	report.AvgCostPerJob = safeDiv(report.TotalCosts, report.TotalJobs)
	report.AvgProfitPerJob = safeDiv(report.TotalProfit, report.TotalJobs)

	return report, nil
}
