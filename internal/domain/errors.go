package domain

import "errors"

// Domain errors (no external dependencies). Handlers map these to HTTP codes:
// validation -> 400, authorization -> 403, not found -> 404, state conflicts
// and duplicates -> 409, everything else -> 500.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrValidation         = errors.New("invalid input")
	ErrNotAuthorized      = errors.New("actor not authorized for this transition")
	ErrStateConflict      = errors.New("conflict with current status")
	ErrNotEditable        = errors.New("transfer lines are only editable while pending")
	ErrDuplicateCode      = errors.New("duplicate transaction code")
	ErrSettlementMismatch = errors.New("payments do not match the amount due")
)
