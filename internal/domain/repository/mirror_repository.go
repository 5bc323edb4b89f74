package repository

import (
	"time"

	"github.com/okendra/retailops-api/internal/domain/entity"
)

// MirrorRepository writes the flat legacy reporting table. Callers wrap every
// call so failures here are logged and counted, never propagated.
type MirrorRepository interface {
	// ReplaceRows swaps all rows for a transfer (delete then insert).
	ReplaceRows(transferID string, rows []*entity.LegacyTransferRow) error
	// UpdateStatus mirrors a status/timestamp change onto existing rows.
	UpdateStatus(transferID, status string, at time.Time) error
}
