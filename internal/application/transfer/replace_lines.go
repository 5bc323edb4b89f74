package transfer

import (
	"context"

	"github.com/okendra/retailops-api/internal/domain"
	"github.com/okendra/retailops-api/internal/domain/entity"
	"github.com/okendra/retailops-api/internal/domain/repository"
)

// ReplaceLines swaps the entire line set of a Pending transfer. The status
// check runs inside the same transaction as the swap, so a Ship racing in
// between still wins: once the row has advanced past Pending the replacement
// is rejected with ErrNotEditable.
func (uc *CreateUseCase) ReplaceLines(ctx context.Context, transferID string, in []LineInput) (int, error) {
	if transferID == "" || len(in) == 0 {
		return 0, domain.ErrValidation
	}
	lines, err := uc.resolveLines(in)
	if err != nil {
		return 0, err
	}

	err = uc.txRunner.RunTransfer(ctx, func(
		transferRepo repository.TransferRepository,
		_ repository.StockRepository,
	) error {
		t, err := transferRepo.GetByID(transferID)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrNotFound
		}
		if t.Status != entity.TransferPending {
			return domain.ErrNotEditable
		}
		return transferRepo.ReplaceLines(transferID, lines)
	})
	if err != nil {
		return 0, err
	}

	uc.mirror.MirrorTransfer(transferID)

	return len(lines), nil
}
