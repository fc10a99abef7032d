package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drillops/corecost/pkg/store/ledger"
)

func TestJobStore_Get(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "job_number", "client_id", "client_name", "site_name", "status",
		"quoted_amount", "created_at", "completed_at",
	}).AddRow("job-1", "BH-2025-001", "c1", "Acme Farms", "North Paddock", "in_progress",
		"1200.00", created, nil)

	mock.ExpectQuery(`SELECT (.+) FROM jobs WHERE id = \$1`).
		WithArgs("job-1").
		WillReturnRows(rows)

	store, err := NewJobStore(db)
	require.NoError(t, err)

	rec, err := store.Get(context.Background(), "job-1")
	require.NoError(t, err)

	assert.Equal(t, "job-1", rec.ID)
	assert.Equal(t, "BH-2025-001", rec.JobNumber)
	assert.True(t, rec.QuotedAmount.Equal(decimal.RequireFromString("1200")))
	assert.Nil(t, rec.CompletedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobStore_Get_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM jobs WHERE id = \$1`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	store, err := NewJobStore(db)
	require.NoError(t, err)

	_, err = store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ledger.ErrJobNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobStore_Find_BuildsFilterClauses(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{
		"id", "job_number", "client_id", "client_name", "site_name", "status",
		"quoted_amount", "created_at", "completed_at",
	}).AddRow("job-1", "BH-2025-001", "c1", "Acme Farms", "North Paddock", "completed",
		"1200.00", from, to)

	mock.ExpectQuery(`SELECT (.+) FROM jobs WHERE 1=1 AND created_at >= \$1 AND created_at <= \$2 AND client_id = \$3 AND status = \$4 ORDER BY created_at`).
		WithArgs(from, to, "c1", "completed").
		WillReturnRows(rows)

	store, err := NewJobStore(db)
	require.NoError(t, err)

	records, err := store.Find(context.Background(), ledger.JobQuery{
		From:     &from,
		To:       &to,
		ClientID: "c1",
		Status:   "completed",
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "completed", records[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseStore_ListByJob(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	day := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "job_id", "category", "description", "amount", "currency", "expense_date",
	}).
		AddRow("exp-1", "job-1", "labor", "drill crew", "200.00", "USD", day).
		AddRow("exp-2", "job-1", "fuel", "diesel", "88.40", "USD", day.Add(24*time.Hour))

	mock.ExpectQuery(`SELECT (.+) FROM expenses WHERE job_id = \$1 ORDER BY expense_date`).
		WithArgs("job-1").
		WillReturnRows(rows)

	store, err := NewExpenseStore(db)
	require.NoError(t, err)

	records, err := store.ListByJob(context.Background(), "job-1")
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, "labor", records[0].Category)
	assert.True(t, records[0].Amount.Equal(decimal.RequireFromString("200")))
	assert.True(t, records[1].Amount.Equal(decimal.RequireFromString("88.40")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInventoryStore_MovementsByJob_FiltersCostBearingKinds(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	day := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "job_id", "name", "movement_type", "quantity", "unit_cost", "total_cost", "currency", "moved_at",
	}).AddRow("mv-1", "job-1", "casing 110mm", "job_usage", "3", "25.00", "75.00", "USD", day)

	mock.ExpectQuery(`SELECT (.+) FROM stock_movements m JOIN inventory_items i ON i.id = m.item_id WHERE m.job_id = \$1 AND m.movement_type IN \('job_allocation', 'job_usage'\) ORDER BY m.moved_at`).
		WithArgs("job-1").
		WillReturnRows(rows)

	store, err := NewInventoryStore(db)
	require.NoError(t, err)

	records, err := store.MovementsByJob(context.Background(), "job-1")
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "casing 110mm", records[0].ItemName)
	assert.True(t, records[0].TotalCost.Equal(decimal.RequireFromString("75")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceStore_ListByJob_AttachesPayments(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	issued := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	paid := issued.Add(7 * 24 * time.Hour)

	invoiceRows := sqlmock.NewRows([]string{
		"id", "job_id", "invoice_number", "total_amount", "currency", "issued_at",
	}).
		AddRow("inv-1", "job-1", "INV-9", "1000.00", "USD", issued).
		AddRow("inv-2", "job-1", "INV-10", "400.00", "USD", issued)

	paymentRows := sqlmock.NewRows([]string{
		"id", "invoice_id", "amount", "currency", "paid_at",
	}).
		AddRow("pay-1", "inv-1", "600.00", "USD", paid).
		AddRow("pay-2", "inv-1", "400.00", "USD", paid)

	mock.ExpectQuery(`SELECT (.+) FROM invoices WHERE job_id = \$1 ORDER BY issued_at`).
		WithArgs("job-1").
		WillReturnRows(invoiceRows)
	mock.ExpectQuery(`SELECT (.+) FROM payments p JOIN invoices i ON i.id = p.invoice_id WHERE i.job_id = \$1 ORDER BY p.paid_at`).
		WithArgs("job-1").
		WillReturnRows(paymentRows)

	store, err := NewInvoiceStore(db)
	require.NoError(t, err)

	records, err := store.ListByJob(context.Background(), "job-1")
	require.NoError(t, err)

	require.Len(t, records, 2)
	require.Len(t, records[0].Payments, 2)
	assert.True(t, records[0].Payments[0].Amount.Equal(decimal.RequireFromString("600")))
	assert.Empty(t, records[1].Payments)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceStore_ListByJob_NoInvoices(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM invoices WHERE job_id = \$1 ORDER BY issued_at`).
		WithArgs("job-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	store, err := NewInvoiceStore(db)
	require.NoError(t, err)

	records, err := store.ListByJob(context.Background(), "job-1")
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewStores_RejectNilDB(t *testing.T) {
	_, err := NewJobStore(nil)
	assert.Error(t, err)
	_, err = NewExpenseStore(nil)
	assert.Error(t, err)
	_, err = NewInventoryStore(nil)
	assert.Error(t, err)
	_, err = NewPurchaseOrderStore(nil)
	assert.Error(t, err)
	_, err = NewInvoiceStore(nil)
	assert.Error(t, err)
}
