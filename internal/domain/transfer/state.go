// Package transfer holds the status state machine for transfer transactions.
// The legal transitions and the party allowed to request each one:
//
//	Pending  -> Shipped    source location (no check when source is external)
//	Shipped  -> Received   destination location
//	Shipped  -> Confirmed  destination location (ledger credit, exactly once)
//	Received -> Confirmed  destination location (ledger credit, exactly once)
//	any non-terminal -> Rejected   either party
//
// Anything else is rejected, never silently ignored.
package transfer

import (
	"github.com/okendra/retailops-api/internal/domain"
	"github.com/okendra/retailops-api/internal/domain/entity"
)

// EligibleFrom returns the statuses a transfer may be in for the requested
// target status. Used both for up-front validation and for the
// compare-and-swap WHERE clause that makes Confirm exactly-once.
func EligibleFrom(to string) []string {
	switch to {
	case entity.TransferShipped:
		return []string{entity.TransferPending}
	case entity.TransferReceived:
		return []string{entity.TransferShipped}
	case entity.TransferConfirmed:
		return []string{entity.TransferShipped, entity.TransferReceived}
	case entity.TransferRejected:
		return []string{entity.TransferPending, entity.TransferShipped, entity.TransferReceived}
	default:
		return nil
	}
}

// Authorize checks a requested transition against the transition table.
// Returns ErrValidation for an unknown target status, ErrStateConflict when
// the target is not reachable from the current status, and ErrNotAuthorized
// when it is reachable but the actor is the wrong party.
func Authorize(t *entity.TransferTransaction, to, actorLocationID string) error {
	eligible := EligibleFrom(to)
	if eligible == nil {
		return domain.ErrValidation
	}
	if !contains(eligible, t.Status) {
		return domain.ErrStateConflict
	}

	switch to {
	case entity.TransferShipped:
		// Only the sender ships. External sources carry no location id, so
		// there is nothing to check against.
		if t.SourceLocationID != nil && actorLocationID != *t.SourceLocationID {
			return domain.ErrNotAuthorized
		}
	case entity.TransferReceived, entity.TransferConfirmed:
		if actorLocationID != t.DestLocationID {
			return domain.ErrNotAuthorized
		}
	case entity.TransferRejected:
		if actorLocationID == t.DestLocationID {
			return nil
		}
		if t.SourceLocationID == nil || actorLocationID == *t.SourceLocationID {
			return nil
		}
		return domain.ErrNotAuthorized
	}
	return nil
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
