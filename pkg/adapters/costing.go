package adapters

import (
	"fmt"

	"github.com/drillops/corecost/pkg/models/domain"
	"github.com/drillops/corecost/pkg/models/store"
)

func MapExpenseToCostEvent(rec store.ExpenseRecord) domain.CostEvent {
	return domain.CostEvent{
		JobID:       rec.JobID,
		Date:        rec.ExpenseDate,
		Category:    rec.Category,
		Description: rec.Description,
		Amount:      rec.Amount,
		Currency:    rec.Currency,
		SourceKind:  domain.SourceExpense,
		ReferenceID: rec.ID,
	}
}

func MapMovementToCostEvent(rec store.StockMovementRecord) domain.CostEvent {
	return domain.CostEvent{
		JobID:       rec.JobID,
		Date:        rec.MovedAt,
		Category:    rec.MovementType,
		Description: fmt.Sprintf("%s x %s", rec.ItemName, rec.Quantity.String()),
		Amount:      rec.TotalCost,
		Currency:    rec.Currency,
		SourceKind:  domain.SourceInventory,
		ReferenceID: rec.ID,
	}
}

func MapPurchaseOrderToCostEvent(rec store.PurchaseOrderRecord) domain.CostEvent {
	return domain.CostEvent{
		JobID:       rec.JobID,
		Date:        rec.OrderDate,
		Category:    "purchase_order",
		Description: fmt.Sprintf("PO %s (%s)", rec.OrderNumber, rec.SupplierName),
		Amount:      rec.TotalAmount,
		Currency:    rec.Currency,
		SourceKind:  domain.SourcePurchaseOrder,
		ReferenceID: rec.ID,
	}
}

// MapInvoiceToRevenueEvents flattens an invoice into one invoiced event plus
// one paid event per recorded payment.
func MapInvoiceToRevenueEvents(rec store.InvoiceRecord) []domain.RevenueEvent {
	events := make([]domain.RevenueEvent, 0, 1+len(rec.Payments))
	events = append(events, domain.RevenueEvent{
		JobID:     rec.JobID,
		InvoiceID: rec.ID,
		Date:      rec.IssuedAt,
		Kind:      domain.RevenueInvoiced,
		Amount:    rec.TotalAmount,
		Currency:  rec.Currency,
	})
	for _, p := range rec.Payments {
		events = append(events, domain.RevenueEvent{
			JobID:     rec.JobID,
			InvoiceID: rec.ID,
			Date:      p.PaidAt,
			Kind:      domain.RevenuePaid,
			Amount:    p.Amount,
			Currency:  p.Currency,
		})
	}
	return events
}

func MapJobRecordToDomain(rec store.JobRecord) domain.Job {
	return domain.Job{
		ID:           rec.ID,
		JobNumber:    rec.JobNumber,
		ClientID:     rec.ClientID,
		ClientName:   rec.ClientName,
		SiteName:     rec.SiteName,
		Status:       rec.Status,
		QuotedAmount: rec.QuotedAmount,
		CreatedAt:    rec.CreatedAt,
		CompletedAt:  rec.CompletedAt,
	}
}
