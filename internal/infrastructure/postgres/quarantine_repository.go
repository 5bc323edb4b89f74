package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/okendra/retailops-api/internal/domain/entity"
	"github.com/okendra/retailops-api/internal/domain/repository"
)

var _ repository.QuarantineRepository = (*QuarantineRepo)(nil)

// QuarantineRepo is the returned-goods ledger on PostgreSQL (pool or tx).
// Same upsert discipline as the live ledger, separate table: nothing here is
// sellable until inspection releases it.
type QuarantineRepo struct {
	q Querier
}

// NewQuarantineRepository builds the adapter. Pass a pool or a tx (Querier).
func NewQuarantineRepository(q Querier) *QuarantineRepo {
	return &QuarantineRepo{q: q}
}

// Increment adds qty to the (location, item) entry, creating it when absent.
func (r *QuarantineRepo) Increment(locationID, itemID string, qty int64) error {
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO quarantine_ledger (location_id, item_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (location_id, item_id)
		DO UPDATE SET quantity = quarantine_ledger.quantity + EXCLUDED.quantity, updated_at = now()`,
		locationID, itemID, qty,
	)
	if err != nil {
		return fmt.Errorf("increment quarantine: %w", err)
	}
	return nil
}

// Get returns the current entry, a zero entry when none exists.
func (r *QuarantineRepo) Get(locationID, itemID string) (*entity.QuarantineEntry, error) {
	var e entity.QuarantineEntry
	err := r.q.QueryRow(context.Background(), `
		SELECT location_id, item_id, quantity, updated_at
		FROM quarantine_ledger WHERE location_id = $1 AND item_id = $2`,
		locationID, itemID,
	).Scan(&e.LocationID, &e.ItemID, &e.Quantity, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.QuarantineEntry{LocationID: locationID, ItemID: itemID}, nil
		}
		return nil, fmt.Errorf("get quarantine: %w", err)
	}
	return &e, nil
}

// ListByLocation returns all quarantined entries for a location.
func (r *QuarantineRepo) ListByLocation(locationID string) ([]*entity.StockView, error) {
	return listLedgerViews(r.q, "quarantine_ledger", locationID)
}
