// Package costing builds the per-job financial report that every batch
// analyzer composes. A report is a pure function of the collaborator stores'
// contents at call time; nothing is persisted.
package costing

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/drillops/corecost/pkg/adapters"
	"github.com/drillops/corecost/pkg/models/domain"
	"github.com/drillops/corecost/pkg/services/categorize"
	"github.com/drillops/corecost/pkg/store/ledger"
)

const (
	// MaxSampleDetails caps the sampled events per breakdown line.
	MaxSampleDetails = 10
	// MaxTimelineEntries caps the report timeline; when exceeded, the oldest
	// entries are dropped and the list stays ascending by date.
	MaxTimelineEntries = 50
)

type ReportBuilder interface {
	Build(ctx context.Context, jobID string) (*domain.JobCostingReport, error)
}

type builder struct {
	jobs      ledger.JobStore
	expenses  ledger.ExpenseStore
	inventory ledger.InventoryStore
	purchases ledger.PurchaseOrderStore
	invoices  ledger.InvoiceStore
}

func NewReportBuilder(
	jobs ledger.JobStore,
	expenses ledger.ExpenseStore,
	inventory ledger.InventoryStore,
	purchases ledger.PurchaseOrderStore,
	invoices ledger.InvoiceStore,
) ReportBuilder {
	return &builder{
		jobs:      jobs,
		expenses:  expenses,
		inventory: inventory,
		purchases: purchases,
		invoices:  invoices,
	}
}

func (b *builder) Build(ctx context.Context, jobID string) (*domain.JobCostingReport, error) {
	rec, err := b.jobs.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	job := adapters.MapJobRecordToDomain(*rec)

	// Cost and revenue reads are independent; run them in parallel.
	var (
		costEvents    []domain.CostEvent
		revenueEvents []domain.RevenueEvent
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		events, err := b.fetchCostEvents(gctx, jobID)
		if err != nil {
			return err
		}
		costEvents = events
		return nil
	})
	g.Go(func() error {
		records, err := b.invoices.ListByJob(gctx, jobID)
		if err != nil {
			return fmt.Errorf("fetch invoices: %w", err)
		}
		for _, inv := range records {
			revenueEvents = append(revenueEvents, adapters.MapInvoiceToRevenueEvents(inv)...)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	currency, err := resolveCurrency(jobID, costEvents, revenueEvents)
	if err != nil {
		return nil, err
	}

	report := &domain.JobCostingReport{
		JobID:          job.ID,
		JobNumber:      job.JobNumber,
		ClientName:     job.ClientName,
		SiteName:       job.SiteName,
		Status:         job.Status,
		Currency:       currency,
		StartDate:      job.CreatedAt,
		CompletedDate:  job.CompletedAt,
		QuotedAmount:   job.QuotedAmount,
		InvoicedAmount: decimal.Zero,
		PaidAmount:     decimal.Zero,
		TotalCosts:     decimal.Zero,
		GrossProfit:    decimal.Zero,
		MaterialsCost:  decimal.Zero,
		LaborCost:      decimal.Zero,
		EquipmentCost:  decimal.Zero,
		TransportCost:  decimal.Zero,
		OverheadCost:   decimal.Zero,
		OtherCosts:     decimal.Zero,
		CostBreakdown:  []domain.CostBreakdownLine{},
		Timeline:       []domain.TimelineEntry{},
	}

	for _, ev := range revenueEvents {
		switch ev.Kind {
		case domain.RevenueInvoiced:
			report.InvoicedAmount = report.InvoicedAmount.Add(ev.Amount)
		case domain.RevenuePaid:
			report.PaidAmount = report.PaidAmount.Add(ev.Amount)
		}
	}

	sums, counts, samples := foldCostEvents(costEvents)
	report.MaterialsCost = sums[domain.CategoryMaterials]
	report.LaborCost = sums[domain.CategoryLabor]
	report.EquipmentCost = sums[domain.CategoryEquipment]
	report.TransportCost = sums[domain.CategoryTransport]
	report.OverheadCost = sums[domain.CategoryOverhead]
	report.OtherCosts = sums[domain.CategoryOther]
	for _, c := range domain.Categories {
		report.TotalCosts = report.TotalCosts.Add(sums[c])
	}

	report.GrossProfit = report.InvoicedAmount.Sub(report.TotalCosts)
	report.ProfitMargin = percentOf(report.GrossProfit, report.InvoicedAmount)

	for _, c := range domain.Categories {
		if sums[c].IsZero() {
			continue
		}
		report.CostBreakdown = append(report.CostBreakdown, domain.CostBreakdownLine{
			Category:          c,
			Amount:            sums[c],
			PercentageOfTotal: percentOf(sums[c], report.TotalCosts),
			ItemCount:         counts[c],
			SampleDetails:     samples[c],
		})
	}

	report.Timeline = buildTimeline(costEvents, revenueEvents)

	return report, nil
}

// fetchCostEvents queries the three cost sources independently and
// concatenates the results; each source holds disjoint records, so no
// deduplication is performed.
func (b *builder) fetchCostEvents(ctx context.Context, jobID string) ([]domain.CostEvent, error) {
	var events []domain.CostEvent

	expenses, err := b.expenses.ListByJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("fetch expenses: %w", err)
	}
	for _, rec := range expenses {
		events = append(events, adapters.MapExpenseToCostEvent(rec))
	}

	movements, err := b.inventory.MovementsByJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("fetch stock movements: %w", err)
	}
	for _, rec := range movements {
		events = append(events, adapters.MapMovementToCostEvent(rec))
	}

	orders, err := b.purchases.ListByJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("fetch purchase orders: %w", err)
	}
	for _, rec := range orders {
		events = append(events, adapters.MapPurchaseOrderToCostEvent(rec))
	}

	return events, nil
}

func foldCostEvents(events []domain.CostEvent) (
	sums map[domain.CanonicalCategory]decimal.Decimal,
	counts map[domain.CanonicalCategory]int,
	samples map[domain.CanonicalCategory][]domain.CostDetail,
) {
	sums = make(map[domain.CanonicalCategory]decimal.Decimal, len(domain.Categories))
	counts = make(map[domain.CanonicalCategory]int, len(domain.Categories))
	samples = make(map[domain.CanonicalCategory][]domain.CostDetail, len(domain.Categories))
	for _, c := range domain.Categories {
		sums[c] = decimal.Zero
	}

	for _, ev := range events {
		c := categorize.CategorizeEvent(ev)
		sums[c] = sums[c].Add(ev.Amount)
		counts[c]++
		if len(samples[c]) < MaxSampleDetails {
			samples[c] = append(samples[c], domain.CostDetail{
				Date:        ev.Date,
				Description: ev.Description,
				Amount:      ev.Amount,
				Reference:   ev.ReferenceID,
			})
		}
	}
	return sums, counts, samples
}

func timelineType(kind domain.CostSourceKind) string {
	switch kind {
	case domain.SourceInventory:
		return "material"
	case domain.SourcePurchaseOrder:
		return "purchase_order"
	default:
		return "expense"
	}
}

func buildTimeline(costEvents []domain.CostEvent, revenueEvents []domain.RevenueEvent) []domain.TimelineEntry {
	entries := make([]domain.TimelineEntry, 0, len(costEvents)+len(revenueEvents))
	for _, ev := range costEvents {
		entries = append(entries, domain.TimelineEntry{
			Date:        ev.Date,
			Type:        timelineType(ev.SourceKind),
			Category:    string(categorize.CategorizeEvent(ev)),
			Description: ev.Description,
			Amount:      ev.Amount,
			Reference:   ev.ReferenceID,
		})
	}
	for _, ev := range revenueEvents {
		entry := domain.TimelineEntry{
			Date:      ev.Date,
			Type:      "invoice",
			Amount:    ev.Amount,
			Reference: ev.InvoiceID,
		}
		if ev.Kind == domain.RevenuePaid {
			entry.Type = "payment"
		}
		entries = append(entries, entry)
	}

	// Stable sort keeps input order for equal dates.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})

	if len(entries) > MaxTimelineEntries {
		entries = entries[len(entries)-MaxTimelineEntries:]
	}
	return entries
}

// resolveCurrency ensures every event on the job shares one currency; events
// with an empty currency code inherit the job's resolved currency.
func resolveCurrency(jobID string, costEvents []domain.CostEvent, revenueEvents []domain.RevenueEvent) (string, error) {
	currency := ""
	check := func(code string) error {
		if code == "" {
			return nil
		}
		if currency == "" {
			currency = code
			return nil
		}
		if code != currency {
			return &domain.CurrencyMismatchError{JobID: jobID, Want: currency, Got: code}
		}
		return nil
	}
	for _, ev := range revenueEvents {
		if err := check(ev.Currency); err != nil {
			return "", err
		}
	}
	for _, ev := range costEvents {
		if err := check(ev.Currency); err != nil {
			return "", err
		}
	}
	return currency, nil
}

// percentOf resolves to 0 when the denominator is zero or negative, never
// NaN or infinity.
func percentOf(part, whole decimal.Decimal) float64 {
	if whole.Sign() <= 0 {
		return 0
	}
	f, _ := part.Div(whole).Mul(decimal.NewFromInt(100)).Round(4).Float64()
	return f
}
