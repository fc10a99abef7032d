// Package ledger defines the read-only collaborator interfaces the costing
// engine consumes. The owning subsystems (invoicing, expenses, inventory,
// purchasing, job management) are responsible for writes; every store here is
// a pure read surface.
package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/drillops/corecost/pkg/models/store"
)

// ErrJobNotFound is returned by JobStore.Get for an unknown job id.
var ErrJobNotFound = errors.New("job not found")

// JobQuery narrows JobStore.Find. Nil/empty fields are unconstrained; From/To
// apply to the job creation date.
type JobQuery struct {
	From     *time.Time
	To       *time.Time
	ClientID string
	Status   string
}

type JobStore interface {
	Get(ctx context.Context, id string) (*store.JobRecord, error)
	Find(ctx context.Context, q JobQuery) ([]store.JobRecord, error)
}

type ExpenseStore interface {
	ListByJob(ctx context.Context, jobID string) ([]store.ExpenseRecord, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]store.ExpenseRecord, error)
}

// InventoryStore exposes stock movements that represent job allocation or
// usage; non-cost-bearing movement kinds are excluded by the implementation.
type InventoryStore interface {
	MovementsByJob(ctx context.Context, jobID string) ([]store.StockMovementRecord, error)
	MovementsByDateRange(ctx context.Context, from, to time.Time) ([]store.StockMovementRecord, error)
}

type PurchaseOrderStore interface {
	ListByJob(ctx context.Context, jobID string) ([]store.PurchaseOrderRecord, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]store.PurchaseOrderRecord, error)
}

// InvoiceStore returns invoices with their payments attached.
type InvoiceStore interface {
	ListByJob(ctx context.Context, jobID string) ([]store.InvoiceRecord, error)
}
