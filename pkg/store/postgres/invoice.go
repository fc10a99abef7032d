package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/drillops/corecost/pkg/models/store"
	"github.com/drillops/corecost/pkg/store/ledger"
)

type invoiceStore struct {
	db *sql.DB
}

func NewInvoiceStore(db *sql.DB) (ledger.InvoiceStore, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &invoiceStore{db: db}, nil
}

func (s *invoiceStore) ListByJob(ctx context.Context, jobID string) ([]store.InvoiceRecord, error) {
	query := `
		SELECT id, job_id, invoice_number, total_amount, currency, issued_at
		FROM invoices
		WHERE job_id = $1
		ORDER BY issued_at`

	rows, err := s.db.QueryContext(ctx, query, jobID)
	if err != nil {
		return nil, fmt.Errorf("query invoices: %w", err)
	}
	defer rows.Close()

	var (
		out     []store.InvoiceRecord
		byID    = make(map[string]int)
		invoice store.InvoiceRecord
	)
	for rows.Next() {
		if err := rows.Scan(
			&invoice.ID,
			&invoice.JobID,
			&invoice.InvoiceNumber,
			&invoice.TotalAmount,
			&invoice.Currency,
			&invoice.IssuedAt,
		); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		invoice.Payments = nil
		byID[invoice.ID] = len(out)
		out = append(out, invoice)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}

	payments, err := s.paymentsByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	for invoiceID, recs := range payments {
		if idx, ok := byID[invoiceID]; ok {
			out[idx].Payments = recs
		}
	}
	return out, nil
}

func (s *invoiceStore) paymentsByJob(ctx context.Context, jobID string) (map[string][]store.PaymentRecord, error) {
	query := `
		SELECT p.id, p.invoice_id, p.amount, p.currency, p.paid_at
		FROM payments p
		JOIN invoices i ON i.id = p.invoice_id
		WHERE i.job_id = $1
		ORDER BY p.paid_at`

	rows, err := s.db.QueryContext(ctx, query, jobID)
	if err != nil {
		return nil, fmt.Errorf("query payments: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]store.PaymentRecord)
	for rows.Next() {
		var (
			rec       store.PaymentRecord
			invoiceID string
		)
		if err := rows.Scan(&rec.ID, &invoiceID, &rec.Amount, &rec.Currency, &rec.PaidAt); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		out[invoiceID] = append(out[invoiceID], rec)
	}
	return out, rows.Err()
}
