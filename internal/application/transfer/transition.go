package transfer

import (
	"context"
	"time"

	"github.com/okendra/retailops-api/internal/domain"
	"github.com/okendra/retailops-api/internal/domain/entity"
	"github.com/okendra/retailops-api/internal/domain/repository"
	domtransfer "github.com/okendra/retailops-api/internal/domain/transfer"
	"github.com/okendra/retailops-api/pkg/metrics"
)

// TransitionInput is a requested status change.
type TransitionInput struct {
	TransferID      string
	To              string
	ActorLocationID string
	DiscrepancyNote string // only meaningful on Confirm
}

// TransitionUseCase drives the transfer state machine. The status update is a
// compare-and-swap and the Confirm ledger credit runs in the same
// transaction, so repeated or concurrent Confirm calls apply the increment
// exactly once.
type TransitionUseCase struct {
	txRunner     TxRunner
	transferRepo repository.TransferRepository
	mirror       MirrorWriter
}

// NewTransitionUseCase builds the use case. transferRepo is pool-bound and
// used for the pre-flight read only.
func NewTransitionUseCase(txRunner TxRunner, transferRepo repository.TransferRepository, mirror MirrorWriter) *TransitionUseCase {
	return &TransitionUseCase{txRunner: txRunner, transferRepo: transferRepo, mirror: mirror}
}

// Transition authorizes and applies one status change.
//
// Confirm credits the destination ledger for every line. The source ledger is
// deliberately not debited: source stock is tracked at the distributor/HQ
// level outside this ledger, matching legacy reporting.
func (uc *TransitionUseCase) Transition(ctx context.Context, in TransitionInput) (*entity.TransferTransaction, error) {
	t, err := uc.transferRepo.GetByID(in.TransferID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	if err := domtransfer.Authorize(t, in.To, in.ActorLocationID); err != nil {
		return nil, err
	}

	now := time.Now()
	upd := repository.StatusUpdate{At: now}
	switch in.To {
	case entity.TransferShipped:
		// Idempotent: the SQL only sets dispatched_at when still NULL.
		upd.SetDispatchedAt = true
	case entity.TransferConfirmed:
		upd.SetAcceptedAt = true
		upd.DiscrepancyNote = in.DiscrepancyNote
	}

	err = uc.txRunner.RunTransfer(ctx, func(
		transferRepo repository.TransferRepository,
		stockRepo repository.StockRepository,
	) error {
		swapped, err := transferRepo.CASStatus(in.TransferID, domtransfer.EligibleFrom(in.To), in.To, upd)
		if err != nil {
			return err
		}
		if !swapped {
			// Someone else moved the row first; the pre-flight check passed
			// but the swap lost the race.
			return domain.ErrStateConflict
		}
		if in.To != entity.TransferConfirmed {
			return nil
		}
		lines, err := transferRepo.Lines(in.TransferID)
		if err != nil {
			return err
		}
		for _, l := range lines {
			if err := stockRepo.Increment(t.DestLocationID, l.ItemID, l.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if in.To == entity.TransferConfirmed {
		metrics.TransfersConfirmed.Inc()
	}
	uc.mirror.MirrorStatus(in.TransferID, in.To)

	t.Status = in.To
	switch in.To {
	case entity.TransferShipped:
		if t.DispatchedAt == nil {
			t.DispatchedAt = &now
		}
	case entity.TransferConfirmed:
		t.AcceptedAt = &now
		if in.DiscrepancyNote != "" {
			t.DiscrepancyNote = in.DiscrepancyNote
		}
	}
	return t, nil
}
