// Package mirror keeps the flat legacy reporting table in step with the
// primary transfer records. It is an explicit outbox step: the primary write
// commits first, then the mirror runs synchronously with every error caught,
// logged and counted. A mirror failure never fails, retries or blocks the
// primary operation.
package mirror

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/okendra/retailops-api/internal/domain/entity"
	"github.com/okendra/retailops-api/internal/domain/repository"
	"github.com/okendra/retailops-api/pkg/logger"
	"github.com/okendra/retailops-api/pkg/metrics"
)

// Writer duplicates transfer data into the legacy table, best effort.
type Writer struct {
	transferRepo repository.TransferRepository
	itemRepo     repository.ItemRepository
	mirrorRepo   repository.MirrorRepository
	log          *logger.Logger
}

// NewWriter builds the mirror writer on pool-bound repositories.
func NewWriter(
	transferRepo repository.TransferRepository,
	itemRepo repository.ItemRepository,
	mirrorRepo repository.MirrorRepository,
	log *logger.Logger,
) *Writer {
	return &Writer{transferRepo: transferRepo, itemRepo: itemRepo, mirrorRepo: mirrorRepo, log: log}
}

// MirrorTransfer rebuilds the legacy rows for one transfer from the current
// header and lines, with display fields denormalized in.
func (w *Writer) MirrorTransfer(transferID string) {
	if err := w.mirrorTransfer(transferID); err != nil {
		metrics.MirrorFailures.WithLabelValues("replace").Inc()
		w.log.Warn().Err(err).Str("transfer_id", transferID).Msg("legacy mirror write discarded")
	}
}

// MirrorStatus duplicates a status change onto the legacy rows.
func (w *Writer) MirrorStatus(transferID, status string) {
	if err := w.mirrorRepo.UpdateStatus(transferID, status, time.Now()); err != nil {
		metrics.MirrorFailures.WithLabelValues("status").Inc()
		w.log.Warn().Err(err).Str("transfer_id", transferID).Msg("legacy mirror status discarded")
	}
}

func (w *Writer) mirrorTransfer(transferID string) error {
	view, err := w.transferRepo.GetView(transferID)
	if err != nil {
		return err
	}
	if view == nil {
		return nil // nothing to mirror
	}

	now := time.Now()
	rows := make([]*entity.LegacyTransferRow, 0, len(view.Lines))
	for i, line := range view.Lines {
		price := decimal.Zero
		if item, err := w.itemRepo.GetByID(line.ItemID); err == nil && item != nil {
			price = item.UnitPrice
		}
		rows = append(rows, &entity.LegacyTransferRow{
			TransferID:      view.ID,
			LineNo:          i + 1,
			Code:            view.Code,
			Status:          view.Status,
			SourceName:      view.SourceName,
			DestName:        view.DestName,
			ItemStockNumber: line.ItemStockNumber,
			ItemName:        line.ItemName,
			Quantity:        line.Quantity,
			UnitPrice:       price,
			UpdatedAt:       now,
		})
	}
	return w.mirrorRepo.ReplaceRows(view.ID, rows)
}
