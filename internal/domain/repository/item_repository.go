package repository

import "github.com/okendra/retailops-api/internal/domain/entity"

// ItemRef is an external item reference to resolve: internal id, barcode
// code, or the legacy stock number as a last resort.
type ItemRef struct {
	ID          string
	Code        string
	StockNumber string
}

// ItemRepository is the item half of the reference resolver contract.
type ItemRepository interface {
	GetByID(id string) (*entity.Item, error)
	// Resolve tries id, then code, then stock number. Returns nil, nil when
	// nothing matches.
	Resolve(ref ItemRef) (*entity.Item, error)
	List(limit, offset int) ([]*entity.Item, error)
}

// LocationRepository is the location half of the resolver contract.
type LocationRepository interface {
	GetByID(id string) (*entity.Location, error)
	Exists(id string) (bool, error)
	List() ([]*entity.Location, error)
}
