package repository

import "github.com/okendra/retailops-api/internal/domain/entity"

// ExchangeRepository persists exchange records and advisory sale links.
type ExchangeRepository interface {
	// Create writes the record and all its lines as one unit.
	Create(rec *entity.ExchangeRecord) error
	GetByID(id string) (*entity.ExchangeRecord, error)
	// CreateSaleLink writes the advisory audit link. Callers treat failures
	// as best effort.
	CreateSaleLink(link *entity.ExchangeSaleLink) error
}
