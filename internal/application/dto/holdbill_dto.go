package dto

import (
	"encoding/json"
	"time"
)

// HoldRequest is the body of POST /sales/hold. Settings and lines are opaque
// to the engine: the POS terminal round-trips them untouched.
type HoldRequest struct {
	CustomerName string          `json:"customerName,omitempty"`
	Settings     json.RawMessage `json:"settings,omitempty"`
	Lines        json.RawMessage `json:"lines"`
}

// HeldBillResponse is one suspended cart.
type HeldBillResponse struct {
	ID           string          `json:"id"`
	CreatedAt    time.Time       `json:"createdAt"`
	CustomerName string          `json:"customerName,omitempty"`
	Settings     json.RawMessage `json:"settings"`
	Lines        json.RawMessage `json:"lines"`
	HeldBy       string          `json:"heldBy"`
}
