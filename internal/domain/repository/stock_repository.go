package repository

import "github.com/okendra/retailops-api/internal/domain/entity"

// StockRepository is the live sellable-stock ledger. Both mutators are
// single-statement atomic upserts: concurrent callers on the same
// (location, item) key serialize at the row and never lose an update.
type StockRepository interface {
	// Increment adds qty, creating the row when absent.
	Increment(locationID, itemID string, qty int64) error
	// Decrement subtracts qty, clamped at zero. The clamp trades exactness
	// for never blocking a sale on ledger lag.
	Decrement(locationID, itemID string, qty int64) error
	Get(locationID, itemID string) (*entity.StockEntry, error)
	ListByLocation(locationID string) ([]*entity.StockView, error)
}

// QuarantineRepository is the returned-goods ledger. Same discipline as the
// live ledger but a separate namespace: nothing here is sellable until
// quality inspection releases it.
type QuarantineRepository interface {
	Increment(locationID, itemID string, qty int64) error
	Get(locationID, itemID string) (*entity.QuarantineEntry, error)
	ListByLocation(locationID string) ([]*entity.StockView, error)
}
