package analytics

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/drillops/corecost/pkg/models/domain"
	"github.com/drillops/corecost/pkg/services/costing"
)

// DefaultMaxConcurrentBuilds bounds the fan-out of per-job report builds so a
// batch cannot exhaust the collaborator stores' connection capacity.
const DefaultMaxConcurrentBuilds = 4

// buildOutcome is the typed per-job result of a batch build: either a report
// or the reason the job was skipped.
type buildOutcome struct {
	JobID  string
	Report *domain.JobCostingReport
	Err    error
}

// buildAll fans out report builds over jobIDs with bounded concurrency.
// Failures are recorded per job and never cancel sibling builds; outcomes come
// back in input order regardless of completion order.
func buildAll(ctx context.Context, builder costing.ReportBuilder, jobIDs []string, limit int) []buildOutcome {
	if limit <= 0 {
		limit = DefaultMaxConcurrentBuilds
	}

	outcomes := make([]buildOutcome, len(jobIDs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, id := range jobIDs {
		i, id := i, id
		g.Go(func() error {
			report, err := builder.Build(gctx, id)
			outcomes[i] = buildOutcome{JobID: id, Report: report, Err: err}
			return nil // a failed job is a skip, not a batch failure
		})
	}
	_ = g.Wait()

	logger := zerolog.Ctx(ctx)
	for _, o := range outcomes {
		if o.Err != nil {
			logger.Error().Err(o.Err).Str("job_id", o.JobID).Msg("skipping job in batch report")
		}
	}
	return outcomes
}

func performance(r *domain.JobCostingReport) domain.JobPerformance {
	return domain.JobPerformance{
		JobID:        r.JobID,
		JobNumber:    r.JobNumber,
		ClientName:   r.ClientName,
		SiteName:     r.SiteName,
		Status:       r.Status,
		Revenue:      r.InvoicedAmount,
		Costs:        r.TotalCosts,
		GrossProfit:  r.GrossProfit,
		ProfitMargin: r.ProfitMargin,
	}
}

func percentOf(part, whole decimal.Decimal) float64 {
	if whole.Sign() <= 0 {
		return 0
	}
	f, _ := part.Div(whole).Mul(decimal.NewFromInt(100)).Round(4).Float64()
	return f
}

// safeDiv returns numerator/denominator rounded to the currency minor unit,
// or zero when the denominator is zero.
func safeDiv(numerator decimal.Decimal, denominator int) decimal.Decimal {
	if denominator == 0 {
		return decimal.Zero
	}
	return numerator.Div(decimal.NewFromInt(int64(denominator))).Round(2)
}
