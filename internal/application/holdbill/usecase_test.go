package holdbill_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okendra/retailops-api/internal/application/holdbill"
	"github.com/okendra/retailops-api/internal/domain"
	"github.com/okendra/retailops-api/internal/domain/entity"
	"github.com/okendra/retailops-api/internal/domain/repository"
)

type memBillRepo struct {
	bills map[string]*entity.HeldBill
	audit []*entity.HeldBillAudit
}

func newMemBillRepo() *memBillRepo {
	return &memBillRepo{bills: map[string]*entity.HeldBill{}}
}

func (r *memBillRepo) Save(bill *entity.HeldBill) error {
	if bill.ID == "" {
		bill.ID = uuid.New().String()
	}
	cp := *bill
	r.bills[bill.ID] = &cp
	return nil
}

func (r *memBillRepo) Pop(token string) (*entity.HeldBill, error) {
	b, ok := r.bills[token]
	if !ok {
		return nil, nil
	}
	delete(r.bills, token)
	return b, nil
}

func (r *memBillRepo) Delete(token string) (bool, error) {
	if _, ok := r.bills[token]; !ok {
		return false, nil
	}
	delete(r.bills, token)
	return true, nil
}

func (r *memBillRepo) List(maxAge time.Duration) ([]*entity.HeldBill, error) {
	var out []*entity.HeldBill
	cutoff := time.Now().Add(-maxAge)
	for _, b := range r.bills {
		if maxAge > 0 && b.CreatedAt.Before(cutoff) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *memBillRepo) AppendAudit(a *entity.HeldBillAudit) error {
	r.audit = append(r.audit, a)
	return nil
}

type memTxRunner struct{ bills *memBillRepo }

func (r *memTxRunner) RunHoldBill(_ context.Context, fn func(repository.HeldBillRepository) error) error {
	return fn(r.bills)
}

func newFixture() (*holdbill.UseCase, *memBillRepo) {
	bills := newMemBillRepo()
	return holdbill.NewUseCase(&memTxRunner{bills: bills}, bills), bills
}

func cart() json.RawMessage {
	return json.RawMessage(`[{"itemId":"it-1","qty":2,"price":450}]`)
}

func TestHold_ReturnsTokenAndAudits(t *testing.T) {
	uc, repo := newFixture()

	token, err := uc.Hold(context.Background(), holdbill.HoldInput{
		CustomerName: "Meena",
		Lines:        cart(),
		ActorID:      "u1",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	bill := repo.bills[token]
	require.NotNil(t, bill)
	assert.JSONEq(t, `{}`, string(bill.Settings), "missing settings default to an empty object")
	assert.Equal(t, "u1", bill.HeldBy)

	require.Len(t, repo.audit, 1)
	assert.Equal(t, entity.HoldActionHold, repo.audit[0].Action)
	assert.Equal(t, token, repo.audit[0].BillToken)
}

// The cart is opaque JSON, but it must still be a non-empty array: absent,
// null, empty and malformed payloads are all rejected before anything is
// written.
func TestHold_EmptyCartRejected(t *testing.T) {
	cases := map[string]json.RawMessage{
		"absent":       nil,
		"json null":    json.RawMessage(`null`),
		"empty array":  json.RawMessage(`[]`),
		"not an array": json.RawMessage(`{"itemId":"it-1"}`),
		"malformed":    json.RawMessage(`[{"itemId":`),
	}
	for name, lines := range cases {
		t.Run(name, func(t *testing.T) {
			uc, repo := newFixture()
			_, err := uc.Hold(context.Background(), holdbill.HoldInput{CustomerName: "Meena", Lines: lines})
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Empty(t, repo.bills)
			assert.Empty(t, repo.audit)
		})
	}
}

// Resume pops: the first call returns the cart, the second finds nothing. A
// cart can never be restored onto two terminals.
func TestResume_ExactlyOnce(t *testing.T) {
	uc, repo := newFixture()
	token, err := uc.Hold(context.Background(), holdbill.HoldInput{Lines: cart(), ActorID: "u1"})
	require.NoError(t, err)

	bill, err := uc.Resume(context.Background(), token, "u2")
	require.NoError(t, err)
	require.NotNil(t, bill)
	assert.JSONEq(t, string(cart()), string(bill.Lines))
	assert.Empty(t, repo.bills, "resumed bill is gone")

	_, err = uc.Resume(context.Background(), token, "u2")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.Len(t, repo.audit, 2, "failed resume leaves no audit entry")
	assert.Equal(t, entity.HoldActionResume, repo.audit[1].Action)
	assert.Equal(t, "u2", repo.audit[1].ActorID)
}

func TestResume_EmptyToken(t *testing.T) {
	uc, _ := newFixture()
	_, err := uc.Resume(context.Background(), "", "u1")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDelete_DiscardsWithoutResume(t *testing.T) {
	uc, repo := newFixture()
	token, err := uc.Hold(context.Background(), holdbill.HoldInput{Lines: cart()})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), token, ""))
	assert.Empty(t, repo.bills)
	require.Len(t, repo.audit, 2)
	assert.Equal(t, entity.HoldActionDelete, repo.audit[1].Action)
	assert.Equal(t, "Unknown", repo.audit[1].ActorID, "missing actor recorded as Unknown")

	assert.ErrorIs(t, uc.Delete(context.Background(), token, ""), domain.ErrNotFound)
}

func TestList_FiltersByAge(t *testing.T) {
	uc, repo := newFixture()
	fresh, err := uc.Hold(context.Background(), holdbill.HoldInput{Lines: cart()})
	require.NoError(t, err)
	stale, err := uc.Hold(context.Background(), holdbill.HoldInput{Lines: cart()})
	require.NoError(t, err)
	repo.bills[stale].CreatedAt = time.Now().Add(-48 * time.Hour)

	bills, err := uc.List(context.Background(), 24)
	require.NoError(t, err)
	require.Len(t, bills, 1)
	assert.Equal(t, fresh, bills[0].ID)

	all, err := uc.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
