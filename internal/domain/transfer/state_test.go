package transfer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okendra/retailops-api/internal/domain"
	"github.com/okendra/retailops-api/internal/domain/entity"
	"github.com/okendra/retailops-api/internal/domain/transfer"
)

const (
	srcLoc   = "loc-src"
	destLoc  = "loc-dest"
	thirdLoc = "loc-third"
)

func transferIn(status string, withSource bool) *entity.TransferTransaction {
	t := &entity.TransferTransaction{
		ID:             "t1",
		DestLocationID: destLoc,
		Status:         status,
	}
	if withSource {
		src := srcLoc
		t.SourceLocationID = &src
	}
	return t
}

func TestAuthorize_LegalTransitions(t *testing.T) {
	cases := []struct {
		name  string
		from  string
		to    string
		actor string
	}{
		{"sender ships pending", entity.TransferPending, entity.TransferShipped, srcLoc},
		{"receiver acknowledges shipped", entity.TransferShipped, entity.TransferReceived, destLoc},
		{"receiver confirms shipped directly", entity.TransferShipped, entity.TransferConfirmed, destLoc},
		{"receiver confirms received", entity.TransferReceived, entity.TransferConfirmed, destLoc},
		{"sender rejects pending", entity.TransferPending, entity.TransferRejected, srcLoc},
		{"receiver rejects shipped", entity.TransferShipped, entity.TransferRejected, destLoc},
		{"sender rejects received", entity.TransferReceived, entity.TransferRejected, srcLoc},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tr := transferIn(tc.from, true)
			assert.NoError(t, transfer.Authorize(tr, tc.to, tc.actor))
		})
	}
}

func TestAuthorize_ExternalSourceShipsWithoutCheck(t *testing.T) {
	tr := transferIn(entity.TransferPending, false)
	// No source on record: anyone may mark it shipped.
	assert.NoError(t, transfer.Authorize(tr, entity.TransferShipped, thirdLoc))
	assert.NoError(t, transfer.Authorize(tr, entity.TransferShipped, ""))
}

// Every (state, transition, actor) triple outside the legal table must be
// rejected without touching the status.
func TestAuthorize_IllegalTriplesRejected(t *testing.T) {
	statuses := []string{
		entity.TransferPending, entity.TransferShipped, entity.TransferReceived,
		entity.TransferConfirmed, entity.TransferRejected,
	}
	targets := []string{
		entity.TransferShipped, entity.TransferReceived,
		entity.TransferConfirmed, entity.TransferRejected,
	}
	actors := []string{srcLoc, destLoc, thirdLoc}

	legal := map[[3]string]bool{
		{entity.TransferPending, entity.TransferShipped, srcLoc}:     true,
		{entity.TransferShipped, entity.TransferReceived, destLoc}:   true,
		{entity.TransferShipped, entity.TransferConfirmed, destLoc}:  true,
		{entity.TransferReceived, entity.TransferConfirmed, destLoc}: true,
		{entity.TransferPending, entity.TransferRejected, srcLoc}:    true,
		{entity.TransferPending, entity.TransferRejected, destLoc}:   true,
		{entity.TransferShipped, entity.TransferRejected, srcLoc}:    true,
		{entity.TransferShipped, entity.TransferRejected, destLoc}:   true,
		{entity.TransferReceived, entity.TransferRejected, srcLoc}:   true,
		{entity.TransferReceived, entity.TransferRejected, destLoc}:  true,
	}

	for _, from := range statuses {
		for _, to := range targets {
			for _, actor := range actors {
				tr := transferIn(from, true)
				err := transfer.Authorize(tr, to, actor)
				if legal[[3]string{from, to, actor}] {
					assert.NoError(t, err, "%s -> %s by %s should be legal", from, to, actor)
					continue
				}
				require.Error(t, err, "%s -> %s by %s should be rejected", from, to, actor)
				assert.True(t,
					err == domain.ErrStateConflict || err == domain.ErrNotAuthorized,
					"%s -> %s by %s: unexpected error %v", from, to, actor, err)
				assert.Equal(t, from, tr.Status, "status must be unchanged on rejection")
			}
		}
	}
}

func TestAuthorize_UnknownTargetIsValidationError(t *testing.T) {
	tr := transferIn(entity.TransferPending, true)
	assert.ErrorIs(t, transfer.Authorize(tr, "Teleported", srcLoc), domain.ErrValidation)
	assert.ErrorIs(t, transfer.Authorize(tr, entity.TransferPending, srcLoc), domain.ErrValidation)
}

func TestEligibleFrom_ConfirmRequiresShippedOrReceived(t *testing.T) {
	assert.ElementsMatch(t,
		[]string{entity.TransferShipped, entity.TransferReceived},
		transfer.EligibleFrom(entity.TransferConfirmed))
	assert.Nil(t, transfer.EligibleFrom("Pending2"))
}
