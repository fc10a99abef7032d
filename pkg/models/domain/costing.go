package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// CanonicalCategory is the closed taxonomy every cost record is mapped into.
type CanonicalCategory string

const (
	CategoryMaterials CanonicalCategory = "materials"
	CategoryLabor     CanonicalCategory = "labor"
	CategoryEquipment CanonicalCategory = "equipment"
	CategoryTransport CanonicalCategory = "transport"
	CategoryOverhead  CanonicalCategory = "overhead"
	CategoryOther     CanonicalCategory = "other"
)

// Categories lists the canonical buckets in report order.
var Categories = []CanonicalCategory{
	CategoryMaterials,
	CategoryLabor,
	CategoryEquipment,
	CategoryTransport,
	CategoryOverhead,
	CategoryOther,
}

type CostSourceKind string

const (
	SourceExpense       CostSourceKind = "expense"
	SourceInventory     CostSourceKind = "inventory_movement"
	SourcePurchaseOrder CostSourceKind = "purchase_order"
)

// CostEvent is a single dated expenditure attributable to a job. Events are
// sourced externally and never mutated by the engine.
type CostEvent struct {
	JobID       string
	Date        time.Time
	Category    string // raw source tag
	Description string
	Amount      decimal.Decimal
	Currency    string
	SourceKind  CostSourceKind
	ReferenceID string
}

type RevenueKind string

const (
	RevenueInvoiced RevenueKind = "invoiced"
	RevenuePaid     RevenueKind = "paid"
)

// RevenueEvent is a dated invoiced or paid amount attributable to a job.
type RevenueEvent struct {
	JobID     string
	InvoiceID string
	Date      time.Time
	Kind      RevenueKind
	Amount    decimal.Decimal
	Currency  string
}

// Job is a read projection of a drilling job; the engine never writes it.
type Job struct {
	ID           string
	JobNumber    string
	ClientID     string
	ClientName   string
	SiteName     string
	Status       string
	QuotedAmount decimal.Decimal
	CreatedAt    time.Time
	CompletedAt  *time.Time
}

// CurrencyMismatchError signals that a single job carries events in more than
// one currency. Summing them would be meaningless, so the build is rejected
// instead of silently converted.
type CurrencyMismatchError struct {
	JobID string
	Want  string
	Got   string
}

func (e *CurrencyMismatchError) Error() string {
	return fmt.Sprintf("job %s: mixed currencies %s and %s", e.JobID, e.Want, e.Got)
}
