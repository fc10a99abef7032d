package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/drillops/corecost/pkg/models/store"
	"github.com/drillops/corecost/pkg/store/ledger"
)

type inventoryStore struct {
	db *sql.DB
}

func NewInventoryStore(db *sql.DB) (ledger.InventoryStore, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &inventoryStore{db: db}, nil
}

const movementColumns = `m.id, m.job_id, i.name, m.movement_type, m.quantity, m.unit_cost, m.total_cost, m.currency, m.moved_at`

// Only allocation and usage movements carry cost for a job; returns,
// transfers and adjustments are bookkeeping.
const costBearingKinds = `('job_allocation', 'job_usage')`

func (s *inventoryStore) MovementsByJob(ctx context.Context, jobID string) ([]store.StockMovementRecord, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements m
		JOIN inventory_items i ON i.id = m.item_id
		WHERE m.job_id = $1 AND m.movement_type IN ` + costBearingKinds + `
		ORDER BY m.moved_at`

	rows, err := s.db.QueryContext(ctx, query, jobID)
	if err != nil {
		return nil, fmt.Errorf("query stock movements: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

func (s *inventoryStore) MovementsByDateRange(ctx context.Context, from, to time.Time) ([]store.StockMovementRecord, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements m
		JOIN inventory_items i ON i.id = m.item_id
		WHERE m.moved_at >= $1 AND m.moved_at <= $2 AND m.movement_type IN ` + costBearingKinds + `
		ORDER BY m.moved_at`

	rows, err := s.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("query stock movements: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

func scanMovements(rows *sql.Rows) ([]store.StockMovementRecord, error) {
	var out []store.StockMovementRecord
	for rows.Next() {
		var rec store.StockMovementRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.JobID,
			&rec.ItemName,
			&rec.MovementType,
			&rec.Quantity,
			&rec.UnitCost,
			&rec.TotalCost,
			&rec.Currency,
			&rec.MovedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
