package entity

import "time"

// Transfer statuses. Received is optional: Shipped -> Confirmed directly is
// legal when the receiver confirms without a separate acknowledgement.
const (
	TransferPending   = "Pending"
	TransferShipped   = "Shipped"
	TransferReceived  = "Received"
	TransferConfirmed = "Confirmed"
	TransferRejected  = "Rejected"
)

// Transfer priorities.
const (
	PriorityNormal = "Normal"
	PriorityHigh   = "High"
	PriorityUrgent = "Urgent"
)

// TransferTransaction is one request to move a set of item lines between
// locations. SourceLocationID is nil for inbound stock from an external
// supplier or head office outside the ledger.
type TransferTransaction struct {
	ID               string
	Code             string // unique, time+random derived
	SourceLocationID *string
	DestLocationID   string
	Priority         string
	Note             string
	Status           string
	CreatedBy        string
	CreatedByName    string
	CreatedAt        time.Time
	DispatchedAt     *time.Time
	AcceptedAt       *time.Time
	DiscrepancyNote  string
}

// IsTerminal reports whether no further transitions are possible.
func (t *TransferTransaction) IsTerminal() bool {
	return t.Status == TransferConfirmed || t.Status == TransferRejected
}

// TransferLine belongs to exactly one transfer transaction. Lines are
// replaceable as a set only while the parent is Pending.
type TransferLine struct {
	ID         string
	TransferID string
	ItemID     string
	Quantity   int64 // > 0
}

// TransferLineView is a line joined with item display fields for read APIs.
type TransferLineView struct {
	TransferLine
	ItemName        string
	ItemStockNumber string
}

// TransferView is a transfer joined with location names and lines for
// read APIs and the legacy mirror.
type TransferView struct {
	TransferTransaction
	SourceName string // empty when source is external
	DestName   string
	Lines      []TransferLineView
}
