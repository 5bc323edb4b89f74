package repository

import (
	"time"

	"github.com/okendra/retailops-api/internal/domain/entity"
)

// TransferFilter narrows List results. Zero values mean "no filter".
type TransferFilter struct {
	Status         string
	DestLocationID string
	SourceID       string
	Limit          int
	Offset         int
}

// StatusUpdate carries the column changes applied together with a status
// compare-and-swap.
type StatusUpdate struct {
	SetDispatchedAt bool // set dispatched_at = now() only if currently NULL
	SetAcceptedAt   bool
	DiscrepancyNote string
	At              time.Time
}

// TransferRepository persists transfer headers and lines.
type TransferRepository interface {
	// Create writes header and all lines as one unit. The enclosing
	// transaction guarantees all-or-nothing.
	Create(t *entity.TransferTransaction, lines []*entity.TransferLine) error
	// ReplaceLines swaps the whole line set (delete then insert).
	ReplaceLines(transferID string, lines []*entity.TransferLine) error
	GetByID(id string) (*entity.TransferTransaction, error)
	// GetView resolves id or human-readable code and joins display fields.
	// Returns nil, nil when not found.
	GetView(idOrCode string) (*entity.TransferView, error)
	List(filter TransferFilter) ([]*entity.TransferView, error)
	Lines(transferID string) ([]*entity.TransferLine, error)
	// CASStatus updates status only if the row is still in one of the
	// eligible states. Reports whether the swap happened.
	CASStatus(id string, eligibleFrom []string, to string, upd StatusUpdate) (bool, error)
}
