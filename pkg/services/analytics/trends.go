package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/drillops/corecost/pkg/adapters"
	"github.com/drillops/corecost/pkg/models/domain"
	"github.com/drillops/corecost/pkg/services/categorize"
	"github.com/drillops/corecost/pkg/store/ledger"
)

// CostTrendAnalyzer buckets raw cost events into time periods, independent of
// per-job boundaries.
type CostTrendAnalyzer interface {
	Analyze(ctx context.Context, period domain.TrendPeriod, from, to time.Time) ([]domain.TrendBucket, error)
}

type trendAnalyzer struct {
	jobs      ledger.JobStore
	expenses  ledger.ExpenseStore
	inventory ledger.InventoryStore
	purchases ledger.PurchaseOrderStore
}

func NewCostTrendAnalyzer(
	jobs ledger.JobStore,
	expenses ledger.ExpenseStore,
	inventory ledger.InventoryStore,
	purchases ledger.PurchaseOrderStore,
) CostTrendAnalyzer {
	return &trendAnalyzer{
		jobs:      jobs,
		expenses:  expenses,
		inventory: inventory,
		purchases: purchases,
	}
}

func (a *trendAnalyzer) Analyze(
	ctx context.Context,
	period domain.TrendPeriod,
	from, to time.Time,
) ([]domain.TrendBucket, error) {
	if _, err := ParsePeriod(string(period)); err != nil {
		return nil, err
	}
	if !from.Before(to) {
		return nil, fmt.Errorf("invalid date range: %s is not before %s",
			from.Format("2006-01-02"), to.Format("2006-01-02"))
	}

	events, err := a.fetchCostEvents(ctx, from, to)
	if err != nil {
		return nil, err
	}

	buckets := make(map[string]*domain.TrendBucket)
	bucket := func(key string) *domain.TrendBucket {
		b, ok := buckets[key]
		if !ok {
			b = &domain.TrendBucket{
				PeriodKey:         key,
				TotalCosts:        decimal.Zero,
				MaterialsCost:     decimal.Zero,
				LaborCost:         decimal.Zero,
				EquipmentCost:     decimal.Zero,
				TransportCost:     decimal.Zero,
				OverheadCost:      decimal.Zero,
				AverageCostPerJob: decimal.Zero,
			}
			buckets[key] = b
		}
		return b
	}

	for _, ev := range events {
		b := bucket(PeriodKey(ev.Date, period))
		b.TotalCosts = b.TotalCosts.Add(ev.Amount)
		switch categorize.CategorizeEvent(ev) {
		case domain.CategoryMaterials:
			b.MaterialsCost = b.MaterialsCost.Add(ev.Amount)
		case domain.CategoryLabor:
			b.LaborCost = b.LaborCost.Add(ev.Amount)
		case domain.CategoryEquipment:
			b.EquipmentCost = b.EquipmentCost.Add(ev.Amount)
		case domain.CategoryTransport:
			b.TransportCost = b.TransportCost.Add(ev.Amount)
		case domain.CategoryOverhead:
			b.OverheadCost = b.OverheadCost.Add(ev.Amount)
		}
	}

	// Jobs contribute a count to the bucket of their creation date.
	jobs, err := a.jobs.Find(ctx, ledger.JobQuery{From: &from, To: &to})
	if err != nil {
		return nil, fmt.Errorf("fetch jobs in range: %w", err)
	}
	for _, rec := range jobs {
		bucket(PeriodKey(rec.CreatedAt, period)).JobCount++
	}

	out := make([]domain.TrendBucket, 0, len(buckets))
	for _, b := range buckets {
		if b.JobCount > 0 {
			b.AverageCostPerJob = safeDiv(b.TotalCosts, b.JobCount)
		}
		out = append(out, *b)
	}

	// Fixed-width keys make the lexicographic order chronological.
	sort.Slice(out, func(i, j int) bool { return out[i].PeriodKey < out[j].PeriodKey })

	return out, nil
}

func (a *trendAnalyzer) fetchCostEvents(ctx context.Context, from, to time.Time) ([]domain.CostEvent, error) {
	var events []domain.CostEvent

	expenses, err := a.expenses.ListByDateRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("fetch expenses in range: %w", err)
	}
	for _, rec := range expenses {
		events = append(events, adapters.MapExpenseToCostEvent(rec))
	}

	movements, err := a.inventory.MovementsByDateRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("fetch stock movements in range: %w", err)
	}
	for _, rec := range movements {
		events = append(events, adapters.MapMovementToCostEvent(rec))
	}

	orders, err := a.purchases.ListByDateRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("fetch purchase orders in range: %w", err)
	}
	for _, rec := range orders {
		events = append(events, adapters.MapPurchaseOrderToCostEvent(rec))
	}

	return events, nil
}
