package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/drillops/corecost/pkg/models/store"
	"github.com/drillops/corecost/pkg/store/ledger"
)

type expenseStore struct {
	db *sql.DB
}

func NewExpenseStore(db *sql.DB) (ledger.ExpenseStore, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &expenseStore{db: db}, nil
}

const expenseColumns = `id, job_id, category, description, amount, currency, expense_date`

func (s *expenseStore) ListByJob(ctx context.Context, jobID string) ([]store.ExpenseRecord, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE job_id = $1
		ORDER BY expense_date`

	rows, err := s.db.QueryContext(ctx, query, jobID)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()
	return scanExpenses(rows)
}

func (s *expenseStore) ListByDateRange(ctx context.Context, from, to time.Time) ([]store.ExpenseRecord, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE expense_date >= $1 AND expense_date <= $2
		ORDER BY expense_date`

	rows, err := s.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()
	return scanExpenses(rows)
}

func scanExpenses(rows *sql.Rows) ([]store.ExpenseRecord, error) {
	var out []store.ExpenseRecord
	for rows.Next() {
		var rec store.ExpenseRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.JobID,
			&rec.Category,
			&rec.Description,
			&rec.Amount,
			&rec.Currency,
			&rec.ExpenseDate,
		); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
