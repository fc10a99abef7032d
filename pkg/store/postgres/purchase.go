package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/drillops/corecost/pkg/models/store"
	"github.com/drillops/corecost/pkg/store/ledger"
)

type purchaseOrderStore struct {
	db *sql.DB
}

func NewPurchaseOrderStore(db *sql.DB) (ledger.PurchaseOrderStore, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &purchaseOrderStore{db: db}, nil
}

const purchaseOrderColumns = `id, job_id, order_number, supplier_name, total_amount, currency, order_date`

func (s *purchaseOrderStore) ListByJob(ctx context.Context, jobID string) ([]store.PurchaseOrderRecord, error) {
	query := `
		SELECT ` + purchaseOrderColumns + `
		FROM purchase_orders
		WHERE job_id = $1
		ORDER BY order_date`

	rows, err := s.db.QueryContext(ctx, query, jobID)
	if err != nil {
		return nil, fmt.Errorf("query purchase orders: %w", err)
	}
	defer rows.Close()
	return scanPurchaseOrders(rows)
}

func (s *purchaseOrderStore) ListByDateRange(ctx context.Context, from, to time.Time) ([]store.PurchaseOrderRecord, error) {
	query := `
		SELECT ` + purchaseOrderColumns + `
		FROM purchase_orders
		WHERE order_date >= $1 AND order_date <= $2
		ORDER BY order_date`

	rows, err := s.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("query purchase orders: %w", err)
	}
	defer rows.Close()
	return scanPurchaseOrders(rows)
}

func scanPurchaseOrders(rows *sql.Rows) ([]store.PurchaseOrderRecord, error) {
	var out []store.PurchaseOrderRecord
	for rows.Next() {
		var rec store.PurchaseOrderRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.JobID,
			&rec.OrderNumber,
			&rec.SupplierName,
			&rec.TotalAmount,
			&rec.Currency,
			&rec.OrderDate,
		); err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
