package analytics

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/drillops/corecost/pkg/models/domain"
	"github.com/drillops/corecost/pkg/services/costing"
)

// JobComparisonEngine compares an explicit list of jobs side by side.
type JobComparisonEngine interface {
	Compare(ctx context.Context, jobIDs []string) (*domain.ComparisonReport, error)
}

type comparisonEngine struct {
	builder costing.ReportBuilder
	limit   int
}

func NewJobComparisonEngine(builder costing.ReportBuilder, maxConcurrent int) JobComparisonEngine {
	return &comparisonEngine{builder: builder, limit: maxConcurrent}
}

func (e *comparisonEngine) Compare(ctx context.Context, jobIDs []string) (*domain.ComparisonReport, error) {
	outcomes := buildAll(ctx, e.builder, jobIDs, e.limit)

	report := &domain.ComparisonReport{
		Jobs: []domain.JobPerformance{},
		Averages: domain.ComparisonAverages{
			Revenue:     decimal.Zero,
			Costs:       decimal.Zero,
			GrossProfit: decimal.Zero,
		},
	}

	var (
		sumRevenue = decimal.Zero
		sumCosts   = decimal.Zero
		sumProfit  = decimal.Zero
		sumMargin  float64
	)

	for _, o := range outcomes {
		if o.Err != nil {
			report.SkippedJobs++
			continue
		}
		p := performance(o.Report)
		report.Jobs = append(report.Jobs, p)

		sumRevenue = sumRevenue.Add(p.Revenue)
		sumCosts = sumCosts.Add(p.Costs)
		sumProfit = sumProfit.Add(p.GrossProfit)
		sumMargin += p.ProfitMargin

		if report.MostProfitable == nil || p.ProfitMargin > report.MostProfitable.ProfitMargin {
			most := p
			report.MostProfitable = &most
		}
		if report.LeastProfitable == nil || p.ProfitMargin < report.LeastProfitable.ProfitMargin {
			least := p
			report.LeastProfitable = &least
		}
		if report.HighestCost == nil || p.Costs.GreaterThan(report.HighestCost.Costs) {
			highest := p
			report.HighestCost = &highest
		}
		if report.LowestCost == nil || p.Costs.LessThan(report.LowestCost.Costs) {
			lowest := p
			report.LowestCost = &lowest
		}
	}

	if n := len(report.Jobs); n > 0 {
		report.Averages = domain.ComparisonAverages{
			Revenue:      safeDiv(sumRevenue, n),
			Costs:        safeDiv(sumCosts, n),
			GrossProfit:  safeDiv(sumProfit, n),
			ProfitMargin: sumMargin / float64(n),
		}
	}

	return report, nil
}
