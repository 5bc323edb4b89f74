package transfer_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okendra/retailops-api/internal/application/transfer"
	"github.com/okendra/retailops-api/internal/domain"
	"github.com/okendra/retailops-api/internal/domain/entity"
)

type transitionFixture struct {
	create     *transfer.CreateUseCase
	transition *transfer.TransitionUseCase
	transfers  *memTransferRepo
	stock      *memStockRepo
	mirror     *recordingMirror
}

func newTransitionFixture(t *testing.T) (*transitionFixture, string) {
	t.Helper()
	transfers := newMemTransferRepo()
	stock := newMemStockRepo()
	mirror := &recordingMirror{}
	runner := &memTxRunner{transfers: transfers, stock: stock}
	items := catalogueOf(
		item("it-1", "BAR-001", "SN-100", "Silk Saree"),
		item("it-2", "BAR-002", "SN-200", "Cotton Shirt"),
	)
	f := &transitionFixture{
		create:     transfer.NewCreateUseCase(runner, items, locationsOf("loc-dist", "loc-outlet"), mirror),
		transition: transfer.NewTransitionUseCase(runner, transfers, mirror),
		transfers:  transfers,
		stock:      stock,
		mirror:     mirror,
	}
	res, err := f.create.Create(context.Background(), validCreateInput())
	require.NoError(t, err)
	return f, res.ID
}

func (f *transitionFixture) move(t *testing.T, id, to, actorLoc string) (*entity.TransferTransaction, error) {
	t.Helper()
	return f.transition.Transition(context.Background(), transfer.TransitionInput{
		TransferID:      id,
		To:              to,
		ActorLocationID: actorLoc,
	})
}

func TestTransition_ShipSetsDispatchedAt(t *testing.T) {
	f, id := newTransitionFixture(t)

	got, err := f.move(t, id, entity.TransferShipped, "loc-dist")
	require.NoError(t, err)
	assert.Equal(t, entity.TransferShipped, got.Status)
	require.NotNil(t, got.DispatchedAt)

	stored := f.transfers.transfers[id]
	assert.Equal(t, entity.TransferShipped, stored.Status)
	assert.NotNil(t, stored.DispatchedAt)
	assert.Contains(t, f.mirror.statusCalls, id+":"+entity.TransferShipped)
}

func TestTransition_ConfirmCreditsDestinationOnce(t *testing.T) {
	f, id := newTransitionFixture(t)
	_, err := f.move(t, id, entity.TransferShipped, "loc-dist")
	require.NoError(t, err)

	got, err := f.move(t, id, entity.TransferConfirmed, "loc-outlet")
	require.NoError(t, err)
	assert.Equal(t, entity.TransferConfirmed, got.Status)
	assert.NotNil(t, got.AcceptedAt)

	// Every line credited at the destination, source ledger untouched.
	assert.EqualValues(t, 5, f.stock.qty[ledgerKey("loc-outlet", "it-1")])
	assert.EqualValues(t, 3, f.stock.qty[ledgerKey("loc-outlet", "it-2")])
	assert.Zero(t, f.stock.qty[ledgerKey("loc-dist", "it-1")])

	// A repeated Confirm loses the compare-and-swap and must not credit again.
	_, err = f.move(t, id, entity.TransferConfirmed, "loc-outlet")
	assert.ErrorIs(t, err, domain.ErrStateConflict)
	assert.EqualValues(t, 5, f.stock.qty[ledgerKey("loc-outlet", "it-1")])
	assert.EqualValues(t, 3, f.stock.qty[ledgerKey("loc-outlet", "it-2")])
}

func TestTransition_ConfirmViaReceived(t *testing.T) {
	f, id := newTransitionFixture(t)
	_, err := f.move(t, id, entity.TransferShipped, "loc-dist")
	require.NoError(t, err)
	_, err = f.move(t, id, entity.TransferReceived, "loc-outlet")
	require.NoError(t, err)

	got, err := f.transition.Transition(context.Background(), transfer.TransitionInput{
		TransferID:      id,
		To:              entity.TransferConfirmed,
		ActorLocationID: "loc-outlet",
		DiscrepancyNote: "one saree water-damaged",
	})
	require.NoError(t, err)
	assert.Equal(t, "one saree water-damaged", got.DiscrepancyNote)
	assert.Equal(t, "one saree water-damaged", f.transfers.transfers[id].DiscrepancyNote)
	assert.EqualValues(t, 5, f.stock.qty[ledgerKey("loc-outlet", "it-1")])
}

func TestTransition_WrongActorLeavesLedgerAlone(t *testing.T) {
	f, id := newTransitionFixture(t)
	_, err := f.move(t, id, entity.TransferShipped, "loc-dist")
	require.NoError(t, err)

	// The sender cannot confirm on the receiver's behalf.
	_, err = f.move(t, id, entity.TransferConfirmed, "loc-dist")
	assert.ErrorIs(t, err, domain.ErrNotAuthorized)
	assert.Equal(t, entity.TransferShipped, f.transfers.transfers[id].Status)
	assert.Empty(t, f.stock.qty)
}

func TestTransition_RejectIsTerminal(t *testing.T) {
	f, id := newTransitionFixture(t)
	_, err := f.move(t, id, entity.TransferRejected, "loc-outlet")
	require.NoError(t, err)

	_, err = f.move(t, id, entity.TransferShipped, "loc-dist")
	assert.ErrorIs(t, err, domain.ErrStateConflict)
	assert.Equal(t, entity.TransferRejected, f.transfers.transfers[id].Status)
	assert.Empty(t, f.stock.qty, "rejected transfers never touch the ledger")
}

func TestTransition_UnknownTransfer(t *testing.T) {
	f, _ := newTransitionFixture(t)
	_, err := f.move(t, "no-such-id", entity.TransferShipped, "loc-dist")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
