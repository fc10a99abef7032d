package store

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseRecord is a single expense row as persisted by the expense subsystem.
type ExpenseRecord struct {
	ID          string
	JobID       string
	Category    string // free-form tag, e.g. "labor", "fuel", "permits"
	Description string
	Amount      decimal.Decimal
	Currency    string
	ExpenseDate time.Time
}

// StockMovementRecord is an inventory movement already filtered upstream to
// job-allocation/usage kinds; TotalCost is the cost-bearing amount.
type StockMovementRecord struct {
	ID           string
	JobID        string
	ItemName     string
	MovementType string
	Quantity     decimal.Decimal
	UnitCost     decimal.Decimal
	TotalCost    decimal.Decimal
	Currency     string
	MovedAt      time.Time
}

type PurchaseOrderRecord struct {
	ID           string
	JobID        string
	OrderNumber  string
	SupplierName string
	TotalAmount  decimal.Decimal
	Currency     string
	OrderDate    time.Time
}

type PaymentRecord struct {
	ID       string
	Amount   decimal.Decimal
	Currency string
	PaidAt   time.Time
}

type InvoiceRecord struct {
	ID            string
	JobID         string
	InvoiceNumber string
	TotalAmount   decimal.Decimal
	Currency      string
	IssuedAt      time.Time
	Payments      []PaymentRecord
}

type JobRecord struct {
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
