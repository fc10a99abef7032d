// Package analytics rolls per-job costing reports up into profitability,
// trend and comparison views. Every analyzer is a pure read-then-compute
// pipeline: batch accumulation is a fold over per-job outcomes, so results do
// not depend on completion order, and one job's failure never aborts a batch.
package analytics

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/drillops/corecost/pkg/models/domain"
	"github.com/drillops/corecost/pkg/services/costing"
	"github.com/drillops/corecost/pkg/store/ledger"
)

type ProfitabilityAnalyzer interface {
	Analyze(ctx context.Context, filter domain.JobFilter) (*domain.ProfitabilityReport, error)
}

type profitabilityAnalyzer struct {
	jobs    ledger.JobStore
	builder costing.ReportBuilder
	limit   int
}

// NewProfitabilityAnalyzer creates the analyzer; maxConcurrent <= 0 falls back
// to DefaultMaxConcurrentBuilds.
func NewProfitabilityAnalyzer(jobs ledger.JobStore, builder costing.ReportBuilder, maxConcurrent int) ProfitabilityAnalyzer {
	return &profitabilityAnalyzer{jobs: jobs, builder: builder, limit: maxConcurrent}
}

func (a *profitabilityAnalyzer) Analyze(ctx context.Context, filter domain.JobFilter) (*domain.ProfitabilityReport, error) {
	records, err := a.jobs.Find(ctx, ledger.JobQuery{
		From:     filter.From,
		To:       filter.To,
		ClientID: filter.ClientID,
		Status:   filter.Status,
	})
	if err != nil {
		return nil, fmt.Errorf("resolve job set: %w", err)
	}

	ids := make([]string, 0, len(records))
	for _, rec := range records {
		ids = append(ids, rec.ID)
	}

	outcomes := buildAll(ctx, a.builder, ids, a.limit)
	report := foldProfitability(outcomes)
	return report, nil
}

// foldProfitability accumulates batch aggregates from per-job outcomes. All
// accumulation is commutative; extrema ties keep the first job seen.
func foldProfitability(outcomes []buildOutcome) *domain.ProfitabilityReport {
	report := &domain.ProfitabilityReport{
		TotalRevenue: decimal.Zero,
		TotalCosts:   decimal.Zero,
		TotalProfit:  decimal.Zero,
		Jobs:         []domain.JobPerformance{},
	}

	for _, o := range outcomes {
		if o.Err != nil {
			report.SkippedJobs++
			continue
		}
		p := performance(o.Report)
		report.TotalJobs++
		report.TotalRevenue = report.TotalRevenue.Add(p.Revenue)
		report.TotalCosts = report.TotalCosts.Add(p.Costs)
		report.TotalProfit = report.TotalProfit.Add(p.GrossProfit)

		switch p.GrossProfit.Sign() {
		case 1:
			report.ProfitableJobs++
		case -1:
			report.LossJobs++
		default:
			report.BreakEvenJobs++
		}

		if report.BestPerformingJob == nil || p.ProfitMargin > report.BestPerformingJob.ProfitMargin {
			best := p
			report.BestPerformingJob = &best
		}
		if report.WorstPerformingJob == nil || p.ProfitMargin < report.WorstPerformingJob.ProfitMargin {
			worst := p
			report.WorstPerformingJob = &worst
		}

		report.Jobs = append(report.Jobs, p)
	}

	report.AverageProfitMargin = percentOf(report.TotalRevenue.Sub(report.TotalCosts), report.TotalRevenue)

	sort.SliceStable(report.Jobs, func(i, j int) bool {
		return report.Jobs[i].ProfitMargin > report.Jobs[j].ProfitMargin
	})

	return report
}
