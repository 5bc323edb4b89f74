package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/okendra/retailops-api/internal/domain/entity"
	"github.com/okendra/retailops-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo is the live sellable-stock ledger on PostgreSQL (pool or tx).
// Mutations are single-statement upserts, never select-then-update, so
// concurrent confirms on the same (location, item) key serialize at the row
// without losing an increment.
type StockRepo struct {
	q Querier
}

// NewStockRepository builds the adapter. Pass a pool or a tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Increment adds qty to the (location, item) entry, creating it when absent.
func (r *StockRepo) Increment(locationID, itemID string, qty int64) error {
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO stock_ledger (location_id, item_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (location_id, item_id)
		DO UPDATE SET quantity = stock_ledger.quantity + EXCLUDED.quantity, updated_at = now()`,
		locationID, itemID, qty,
	)
	if err != nil {
		return fmt.Errorf("increment stock: %w", err)
	}
	return nil
}

// Decrement subtracts qty, clamped at zero. A sale is never blocked by ledger
// lag; the ledger under-reports shrinkage instead of going negative.
func (r *StockRepo) Decrement(locationID, itemID string, qty int64) error {
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO stock_ledger (location_id, item_id, quantity, updated_at)
		VALUES ($1, $2, 0, now())
		ON CONFLICT (location_id, item_id)
		DO UPDATE SET quantity = GREATEST(0, stock_ledger.quantity - $3), updated_at = now()`,
		locationID, itemID, qty,
	)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	return nil
}

// Get returns the current entry, a zero entry when none exists.
func (r *StockRepo) Get(locationID, itemID string) (*entity.StockEntry, error) {
	var e entity.StockEntry
	err := r.q.QueryRow(context.Background(), `
		SELECT location_id, item_id, quantity, updated_at
		FROM stock_ledger WHERE location_id = $1 AND item_id = $2`,
		locationID, itemID,
	).Scan(&e.LocationID, &e.ItemID, &e.Quantity, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockEntry{LocationID: locationID, ItemID: itemID}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &e, nil
}

// ListByLocation returns all entries for a location joined with display
// fields. A missing table degrades to an empty result.
func (r *StockRepo) ListByLocation(locationID string) ([]*entity.StockView, error) {
	return listLedgerViews(r.q, "stock_ledger", locationID)
}

func listLedgerViews(q Querier, table, locationID string) ([]*entity.StockView, error) {
	rows, err := q.Query(context.Background(), fmt.Sprintf(`
		SELECT s.location_id, loc.name, s.item_id, i.name, i.stock_number, s.quantity, s.updated_at
		FROM %s s
		JOIN locations loc ON loc.id = s.location_id
		JOIN items i ON i.id = s.item_id
		WHERE s.location_id = $1
		ORDER BY i.stock_number, i.name`, table), locationID)
	if err != nil {
		if isUndefinedTable(err) {
			return []*entity.StockView{}, nil
		}
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	defer rows.Close()

	var out []*entity.StockView
	for rows.Next() {
		var v entity.StockView
		if err := rows.Scan(&v.LocationID, &v.LocationName, &v.ItemID, &v.ItemName, &v.ItemStockNumber, &v.Quantity, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		out = append(out, &v)
	}
	if err := rows.Err(); err != nil {
		if isUndefinedTable(err) {
			return []*entity.StockView{}, nil
		}
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	return out, nil
}
