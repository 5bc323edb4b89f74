package transfer

import (
	"context"

	"github.com/okendra/retailops-api/internal/domain/entity"
	"github.com/okendra/retailops-api/internal/domain/repository"
)

// QueryUseCase serves the read aggregates: headers joined with lines and
// resolved item/location display fields.
type QueryUseCase struct {
	transferRepo repository.TransferRepository
}

// NewQueryUseCase builds the use case on a pool-bound repository.
func NewQueryUseCase(transferRepo repository.TransferRepository) *QueryUseCase {
	return &QueryUseCase{transferRepo: transferRepo}
}

// List returns transfers matching the filter; empty, not an error, when the
// underlying tables are not provisioned yet.
func (uc *QueryUseCase) List(ctx context.Context, filter repository.TransferFilter) ([]*entity.TransferView, error) {
	return uc.transferRepo.List(filter)
}

// Get resolves a transfer by id or human-readable code. Returns nil when not
// found.
func (uc *QueryUseCase) Get(ctx context.Context, idOrCode string) (*entity.TransferView, error) {
	return uc.transferRepo.GetView(idOrCode)
}

// Inward lists transfers shipping into a location, optionally filtered by
// status. This is the receiving screen of an outlet.
func (uc *QueryUseCase) Inward(ctx context.Context, locationID, status string) ([]*entity.TransferView, error) {
	return uc.transferRepo.List(repository.TransferFilter{
		DestLocationID: locationID,
		Status:         status,
	})
}
