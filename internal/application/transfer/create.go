package transfer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/okendra/retailops-api/internal/domain"
	"github.com/okendra/retailops-api/internal/domain/entity"
	"github.com/okendra/retailops-api/internal/domain/repository"
	"github.com/okendra/retailops-api/pkg/metrics"
)

// maxCodeRetries bounds regeneration after a duplicate-code collision.
const maxCodeRetries = 3

// Actor is the creator identity resolved by the HTTP layer. Missing
// attribution never fails a request: absent fields arrive as "Unknown".
type Actor struct {
	UserID      string
	DisplayName string
	LocationID  string
}

// LineInput is one requested line, referencing the item by internal id,
// external code, or the legacy stock number as a last resort.
type LineInput struct {
	ItemID      string
	ItemCode    string
	StockNumber string
	Quantity    int64
}

// CreateInput is the request to open a transfer transaction.
type CreateInput struct {
	SourceLocationID *string // nil = external supplier / head office
	DestLocationID   string
	Priority         string
	Note             string
	Lines            []LineInput
	Actor            Actor
}

// CreateResult identifies the persisted transaction.
type CreateResult struct {
	ID        string
	Code      string
	ItemCount int
}

// CreateUseCase opens transfer transactions: header plus all lines as one
// atomic unit, with a storage-enforced unique code.
type CreateUseCase struct {
	txRunner     TxRunner
	itemRepo     repository.ItemRepository
	locationRepo repository.LocationRepository
	mirror       MirrorWriter
}

// NewCreateUseCase builds the use case.
func NewCreateUseCase(
	txRunner TxRunner,
	itemRepo repository.ItemRepository,
	locationRepo repository.LocationRepository,
	mirror MirrorWriter,
) *CreateUseCase {
	return &CreateUseCase{txRunner: txRunner, itemRepo: itemRepo, locationRepo: locationRepo, mirror: mirror}
}

// Create validates, resolves references and persists the transfer. Either all
// lines are written or none: one unresolvable item aborts the whole request
// before any write. A code collision regenerates and retries a bounded number
// of times.
func (uc *CreateUseCase) Create(ctx context.Context, in CreateInput) (CreateResult, error) {
	if in.DestLocationID == "" || len(in.Lines) == 0 {
		return CreateResult{}, domain.ErrValidation
	}
	if ok, err := uc.locationRepo.Exists(in.DestLocationID); err != nil {
		return CreateResult{}, err
	} else if !ok {
		return CreateResult{}, domain.ErrValidation
	}
	if in.SourceLocationID != nil {
		if *in.SourceLocationID == in.DestLocationID {
			return CreateResult{}, domain.ErrValidation
		}
		if ok, err := uc.locationRepo.Exists(*in.SourceLocationID); err != nil {
			return CreateResult{}, err
		} else if !ok {
			return CreateResult{}, domain.ErrValidation
		}
	}

	lines, err := uc.resolveLines(in.Lines)
	if err != nil {
		return CreateResult{}, err
	}

	priority := in.Priority
	switch priority {
	case "":
		priority = entity.PriorityNormal
	case entity.PriorityNormal, entity.PriorityHigh, entity.PriorityUrgent:
	default:
		return CreateResult{}, domain.ErrValidation
	}

	actor := in.Actor
	if actor.UserID == "" {
		actor.UserID = "Unknown"
	}
	if actor.DisplayName == "" {
		actor.DisplayName = "Unknown"
	}

	t := &entity.TransferTransaction{
		SourceLocationID: in.SourceLocationID,
		DestLocationID:   in.DestLocationID,
		Priority:         priority,
		Note:             in.Note,
		Status:           entity.TransferPending,
		CreatedBy:        actor.UserID,
		CreatedByName:    actor.DisplayName,
		CreatedAt:        time.Now(),
	}

	for attempt := 0; ; attempt++ {
		t.Code = GenerateCode(time.Now())
		err = uc.txRunner.RunTransfer(ctx, func(
			transferRepo repository.TransferRepository,
			_ repository.StockRepository,
		) error {
			return transferRepo.Create(t, lines)
		})
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrDuplicateCode) {
			return CreateResult{}, err
		}
		if attempt+1 >= maxCodeRetries {
			return CreateResult{}, fmt.Errorf("transfer code collisions exhausted retries: %w", err)
		}
		metrics.CodeCollisionRetries.Inc()
		t.ID = "" // fresh id for the retry
	}

	uc.mirror.MirrorTransfer(t.ID)

	return CreateResult{ID: t.ID, Code: t.Code, ItemCount: len(lines)}, nil
}

// resolveLines maps every input line to a known item. One failure aborts the
// whole request.
func (uc *CreateUseCase) resolveLines(in []LineInput) ([]*entity.TransferLine, error) {
	lines := make([]*entity.TransferLine, 0, len(in))
	for _, l := range in {
		if l.Quantity <= 0 {
			return nil, domain.ErrValidation
		}
		item, err := uc.itemRepo.Resolve(repository.ItemRef{
			ID: l.ItemID, Code: l.ItemCode, StockNumber: l.StockNumber,
		})
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, domain.ErrValidation
		}
		lines = append(lines, &entity.TransferLine{ItemID: item.ID, Quantity: l.Quantity})
	}
	return lines, nil
}
