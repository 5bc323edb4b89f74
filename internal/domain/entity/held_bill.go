package entity

import (
	"encoding/json"
	"time"
)

// Hold-bill audit actions.
const (
	HoldActionHold   = "hold"
	HoldActionResume = "resume"
	HoldActionDelete = "delete"
)

// HeldBill is a suspended in-progress sale cart. Created on hold, deleted
// exactly once on resume or explicit delete; resume is pop-and-return, never
// peek. No ledger interaction.
type HeldBill struct {
	ID           string // token handed back to the POS terminal
	CreatedAt    time.Time
	CustomerName string
	Settings     json.RawMessage // discount/tax snapshot, opaque to the engine
	Lines        json.RawMessage // cart line items, opaque to the engine
	HeldBy       string
}

// HeldBillAudit is one immutable entry in the append-only hold trail.
type HeldBillAudit struct {
	ID        string
	Action    string // see HoldAction* constants
	BillToken string
	ActorID   string
	At        time.Time
}
