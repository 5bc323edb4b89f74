package transfer

import (
	"context"

	"github.com/okendra/retailops-api/internal/domain/repository"
)

// TxRunner executes a function inside one database transaction, passing
// repositories bound to that transaction. It is what makes transfer creation,
// line replacement and the Confirm ledger credit all-or-nothing.
type TxRunner interface {
	RunTransfer(ctx context.Context, fn func(
		transferRepo repository.TransferRepository,
		stockRepo repository.StockRepository,
	) error) error
}

// MirrorWriter is the best-effort legacy duplicate step. Implementations
// swallow their own errors; callers fire and forget.
type MirrorWriter interface {
	MirrorTransfer(transferID string)
	MirrorStatus(transferID, status string)
}
