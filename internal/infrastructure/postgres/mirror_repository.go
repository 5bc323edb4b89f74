package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/okendra/retailops-api/internal/domain/entity"
	"github.com/okendra/retailops-api/internal/domain/repository"
)

var _ repository.MirrorRepository = (*MirrorRepo)(nil)

// MirrorRepo writes the flat legacy reporting table on PostgreSQL. Callers
// wrap every call: errors here are logged and counted, never propagated.
type MirrorRepo struct {
	q Querier
}

// NewMirrorRepository builds the adapter. Pass a pool or a tx (Querier).
func NewMirrorRepository(q Querier) *MirrorRepo {
	return &MirrorRepo{q: q}
}

// ReplaceRows swaps all legacy rows for a transfer.
func (r *MirrorRepo) ReplaceRows(transferID string, rows []*entity.LegacyTransferRow) error {
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM legacy_transfer_rows WHERE transfer_id = $1`, transferID,
	); err != nil {
		return fmt.Errorf("clear legacy rows: %w", err)
	}
	for _, row := range rows {
		_, err := r.q.Exec(context.Background(), `
			INSERT INTO legacy_transfer_rows
				(transfer_id, line_no, code, status, source_name, dest_name,
				 item_stock_number, item_name, quantity, unit_price, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			row.TransferID, row.LineNo, row.Code, row.Status, row.SourceName, row.DestName,
			row.ItemStockNumber, row.ItemName, row.Quantity, row.UnitPrice, row.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert legacy row: %w", err)
		}
	}
	return nil
}

// UpdateStatus mirrors a status change onto the existing rows.
func (r *MirrorRepo) UpdateStatus(transferID, status string, at time.Time) error {
	_, err := r.q.Exec(context.Background(), `
		UPDATE legacy_transfer_rows SET status = $2, updated_at = $3 WHERE transfer_id = $1`,
		transferID, status, at,
	)
	if err != nil {
		return fmt.Errorf("update legacy status: %w", err)
	}
	return nil
}
