package dto

import "time"

// TransferItemInput references an item by internal id, external code, or the
// legacy stock number as a fallback.
type TransferItemInput struct {
	ItemID      string `json:"itemId,omitempty"`
	ItemCode    string `json:"itemCode,omitempty"`
	StockNumber string `json:"stockNumber,omitempty"`
	Qty         int64  `json:"qty"`
}

// CreateTransferRequest is the body of POST /transfers/requests.
type CreateTransferRequest struct {
	FromLocationID *string             `json:"fromLocationId,omitempty"`
	ToLocationID   string              `json:"toLocationId"`
	Priority       string              `json:"priority,omitempty"`
	Note           string              `json:"note,omitempty"`
	Items          []TransferItemInput `json:"items"`
}

// CreateTransferResponse identifies the created transaction.
type CreateTransferResponse struct {
	ID        string `json:"id"`
	Code      string `json:"code"`
	ItemCount int    `json:"itemCount"`
	Status    string `json:"status"`
}

// ReplaceLinesRequest is the body of PUT /transfers/requests/{id}/lines.
type ReplaceLinesRequest struct {
	Items []TransferItemInput `json:"items"`
}

// TransitionRequest is the body of PUT /transfers/requests/{id}.
type TransitionRequest struct {
	Status          string `json:"status"`
	ActorLocationID string `json:"actorLocationId,omitempty"`
	DiscrepancyNote string `json:"discrepancyNote,omitempty"`
}

// TransferLineResponse is one line with resolved display fields.
type TransferLineResponse struct {
	ItemID          string `json:"itemId"`
	ItemName        string `json:"itemName"`
	ItemStockNumber string `json:"itemStockNumber"`
	Qty             int64  `json:"qty"`
}

// TransferResponse is the full read aggregate.
type TransferResponse struct {
	ID              string                 `json:"id"`
	Code            string                 `json:"code"`
	FromLocationID  *string                `json:"fromLocationId,omitempty"`
	FromName        string                 `json:"fromName,omitempty"`
	ToLocationID    string                 `json:"toLocationId"`
	ToName          string                 `json:"toName"`
	Priority        string                 `json:"priority"`
	Note            string                 `json:"note,omitempty"`
	Status          string                 `json:"status"`
	CreatedBy       string                 `json:"createdBy"`
	CreatedByName   string                 `json:"createdByName"`
	CreatedAt       time.Time              `json:"createdAt"`
	DispatchedAt    *time.Time             `json:"dispatchedAt,omitempty"`
	AcceptedAt      *time.Time             `json:"acceptedAt,omitempty"`
	DiscrepancyNote string                 `json:"discrepancyNote,omitempty"`
	Items           []TransferLineResponse `json:"items"`
}
