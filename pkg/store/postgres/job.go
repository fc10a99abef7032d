// Package postgres implements the ledger interfaces on top of the platform's
// relational schema. Every store is read-only; writes belong to the owning
// subsystems.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/drillops/corecost/pkg/models/store"
	"github.com/drillops/corecost/pkg/store/ledger"
)

type jobStore struct {
	db *sql.DB
}

func NewJobStore(db *sql.DB) (ledger.JobStore, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &jobStore{db: db}, nil
}

const jobColumns = `id, job_number, client_id, client_name, site_name, status, quoted_amount, created_at, completed_at`

func (s *jobStore) Get(ctx context.Context, id string) (*store.JobRecord, error) {
	query := `
		SELECT ` + jobColumns + `
		FROM jobs
		WHERE id = $1`

	var rec store.JobRecord
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&rec.ID,
		&rec.JobNumber,
		&rec.ClientID,
		&rec.ClientName,
		&rec.SiteName,
		&rec.Status,
		&rec.QuotedAmount,
		&rec.CreatedAt,
		&rec.CompletedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("job %s: %w", id, ledger.ErrJobNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query job: %w", err)
	}
	return &rec, nil
}

func (s *jobStore) Find(ctx context.Context, q ledger.JobQuery) ([]store.JobRecord, error) {
	query := `
		SELECT ` + jobColumns + `
		FROM jobs
		WHERE 1=1`
	var args []any

	next := func() string { return "$" + strconv.Itoa(len(args)) }
	if q.From != nil {
		args = append(args, *q.From)
		query += " AND created_at >= " + next()
	}
	if q.To != nil {
		args = append(args, *q.To)
		query += " AND created_at <= " + next()
	}
	if q.ClientID != "" {
		args = append(args, q.ClientID)
		query += " AND client_id = " + next()
	}
	if q.Status != "" {
		args = append(args, q.Status)
		query += " AND status = " + next()
	}
	query += " ORDER BY created_at"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query jobs: %w", err)
	}
	defer rows.Close()

	var out []store.JobRecord
	for rows.Next() {
		var rec store.JobRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.JobNumber,
			&rec.ClientID,
			&rec.ClientName,
			&rec.SiteName,
			&rec.Status,
			&rec.QuotedAmount,
			&rec.CreatedAt,
			&rec.CompletedAt,
		); err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
