package analytics

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/drillops/corecost/pkg/models/domain"
	"github.com/drillops/corecost/pkg/models/store"
	"github.com/drillops/corecost/pkg/store/ledger"
)

type mockJobStore struct {
	mock.Mock
}

func (m *mockJobStore) Get(ctx context.Context, id string) (*store.JobRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.JobRecord), args.Error(1)
}

func (m *mockJobStore) Find(ctx context.Context, q ledger.JobQuery) ([]store.JobRecord, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.JobRecord), args.Error(1)
}

type mockReportBuilder struct {
	mock.Mock
}

func (m *mockReportBuilder) Build(ctx context.Context, jobID string) (*domain.JobCostingReport, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobCostingReport), args.Error(1)
}

type mockExpenseStore struct {
	mock.Mock
}

func (m *mockExpenseStore) ListByJob(ctx context.Context, jobID string) ([]store.ExpenseRecord, error) {
	args := m.Called(ctx, jobID)
	return args.Get(0).([]store.ExpenseRecord), args.Error(1)
}

func (m *mockExpenseStore) ListByDateRange(ctx context.Context, from, to time.Time) ([]store.ExpenseRecord, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]store.ExpenseRecord), args.Error(1)
}

type mockInventoryStore struct {
	mock.Mock
}

func (m *mockInventoryStore) MovementsByJob(ctx context.Context, jobID string) ([]store.StockMovementRecord, error) {
	args := m.Called(ctx, jobID)
	return args.Get(0).([]store.StockMovementRecord), args.Error(1)
}

func (m *mockInventoryStore) MovementsByDateRange(ctx context.Context, from, to time.Time) ([]store.StockMovementRecord, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]store.StockMovementRecord), args.Error(1)
}

type mockPurchaseOrderStore struct {
	mock.Mock
}

func (m *mockPurchaseOrderStore) ListByJob(ctx context.Context, jobID string) ([]store.PurchaseOrderRecord, error) {
	args := m.Called(ctx, jobID)
	return args.Get(0).([]store.PurchaseOrderRecord), args.Error(1)
}

func (m *mockPurchaseOrderStore) ListByDateRange(ctx context.Context, from, to time.Time) ([]store.PurchaseOrderRecord, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]store.PurchaseOrderRecord), args.Error(1)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// jobReport builds a minimal consistent per-job report for aggregate tests.
func jobReport(id string, invoiced, costs string) *domain.JobCostingReport {
	inv := dec(invoiced)
	c := dec(costs)
	profit := inv.Sub(c)
	margin := 0.0
	if inv.Sign() > 0 {
		margin, _ = profit.Div(inv).Mul(decimal.NewFromInt(100)).Round(4).Float64()
	}
	return &domain.JobCostingReport{
		JobID:          id,
		JobNumber:      "BH-" + id,
		InvoicedAmount: inv,
		TotalCosts:     c,
		GrossProfit:    profit,
		ProfitMargin:   margin,
	}
}

func jobRecord(id, clientID string, createdAt time.Time) store.JobRecord {
	return store.JobRecord{
		ID:         id,
		JobNumber:  "BH-" + id,
		ClientID:   clientID,
		ClientName: "Client " + clientID,
		Status:     "in_progress",
		CreatedAt:  createdAt,
	}
}
