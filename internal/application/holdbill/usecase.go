// Package holdbill suspends and resumes in-progress sale carts. Holds never
// touch the stock ledger; the cart is opaque JSON the POS terminal round
// trips. Every action leaves one immutable entry in the audit trail.
package holdbill

import (
	"context"
	"encoding/json"
	"time"

	"github.com/okendra/retailops-api/internal/domain"
	"github.com/okendra/retailops-api/internal/domain/entity"
	"github.com/okendra/retailops-api/internal/domain/repository"
)

// TxRunner executes a function inside one database transaction, so the bill
// write and its audit entry land together.
type TxRunner interface {
	RunHoldBill(ctx context.Context, fn func(
		billRepo repository.HeldBillRepository,
	) error) error
}

// HoldInput is a cart to suspend.
type HoldInput struct {
	CustomerName string
	Settings     json.RawMessage // discount/tax snapshot
	Lines        json.RawMessage // cart line items
	ActorID      string
}

// UseCase is the hold-bill manager.
type UseCase struct {
	txRunner TxRunner
	billRepo repository.HeldBillRepository // pool-bound, for List
}

// NewUseCase builds the manager.
func NewUseCase(txRunner TxRunner, billRepo repository.HeldBillRepository) *UseCase {
	return &UseCase{txRunner: txRunner, billRepo: billRepo}
}

// Hold suspends a cart and returns its token. The cart stays opaque, but a
// hold with nothing in it is meaningless: malformed lines, JSON null and the
// empty array are all rejected.
func (uc *UseCase) Hold(ctx context.Context, in HoldInput) (string, error) {
	var cartLines []json.RawMessage
	if err := json.Unmarshal(in.Lines, &cartLines); err != nil || len(cartLines) == 0 {
		return "", domain.ErrValidation
	}
	bill := &entity.HeldBill{
		CreatedAt:    time.Now(),
		CustomerName: in.CustomerName,
		Settings:     in.Settings,
		Lines:        in.Lines,
		HeldBy:       actorOrUnknown(in.ActorID),
	}
	if bill.Settings == nil {
		bill.Settings = json.RawMessage(`{}`)
	}
	err := uc.txRunner.RunHoldBill(ctx, func(billRepo repository.HeldBillRepository) error {
		if err := billRepo.Save(bill); err != nil {
			return err
		}
		return billRepo.AppendAudit(&entity.HeldBillAudit{
			Action:    entity.HoldActionHold,
			BillToken: bill.ID,
			ActorID:   bill.HeldBy,
			At:        bill.CreatedAt,
		})
	})
	if err != nil {
		return "", err
	}
	return bill.ID, nil
}

// Resume pops the bill: read and delete as one unit. A second resume of the
// same token gets ErrNotFound, so a cart can never be restored twice.
func (uc *UseCase) Resume(ctx context.Context, token, actorID string) (*entity.HeldBill, error) {
	if token == "" {
		return nil, domain.ErrValidation
	}
	var bill *entity.HeldBill
	err := uc.txRunner.RunHoldBill(ctx, func(billRepo repository.HeldBillRepository) error {
		b, err := billRepo.Pop(token)
		if err != nil {
			return err
		}
		if b == nil {
			return domain.ErrNotFound
		}
		bill = b
		return billRepo.AppendAudit(&entity.HeldBillAudit{
			Action:    entity.HoldActionResume,
			BillToken: token,
			ActorID:   actorOrUnknown(actorID),
			At:        time.Now(),
		})
	})
	if err != nil {
		return nil, err
	}
	return bill, nil
}

// Delete discards a held bill without resuming it.
func (uc *UseCase) Delete(ctx context.Context, token, actorID string) error {
	if token == "" {
		return domain.ErrValidation
	}
	return uc.txRunner.RunHoldBill(ctx, func(billRepo repository.HeldBillRepository) error {
		deleted, err := billRepo.Delete(token)
		if err != nil {
			return err
		}
		if !deleted {
			return domain.ErrNotFound
		}
		return billRepo.AppendAudit(&entity.HeldBillAudit{
			Action:    entity.HoldActionDelete,
			BillToken: token,
			ActorID:   actorOrUnknown(actorID),
			At:        time.Now(),
		})
	})
}

// List returns bills held within the last maxAgeHours (0 = all), newest
// first.
func (uc *UseCase) List(ctx context.Context, maxAgeHours int) ([]*entity.HeldBill, error) {
	return uc.billRepo.List(time.Duration(maxAgeHours) * time.Hour)
}

func actorOrUnknown(id string) string {
	if id == "" {
		return "Unknown"
	}
	return id
}
