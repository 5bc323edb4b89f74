package repository

import (
	"time"

	"github.com/okendra/retailops-api/internal/domain/entity"
)

// HeldBillRepository persists suspended sale carts and the append-only audit
// trail of hold/resume/delete actions.
type HeldBillRepository interface {
	Save(bill *entity.HeldBill) error
	// Pop atomically reads and deletes the bill (DELETE ... RETURNING).
	// Returns nil, nil when the token does not exist, so a second resume of
	// the same token fails as not-found.
	Pop(token string) (*entity.HeldBill, error)
	// Delete removes the bill; reports whether a row was deleted.
	Delete(token string) (bool, error)
	List(maxAge time.Duration) ([]*entity.HeldBill, error)
	AppendAudit(a *entity.HeldBillAudit) error
}
