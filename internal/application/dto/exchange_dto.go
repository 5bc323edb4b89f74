package dto

import "github.com/shopspring/decimal"

// ExchangeLineInput is one item moving in or out during an exchange.
type ExchangeLineInput struct {
	ItemID      string          `json:"itemId,omitempty"`
	ItemCode    string          `json:"itemCode,omitempty"`
	StockNumber string          `json:"stockNumber,omitempty"`
	Qty         int64           `json:"qty"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

// ExchangeCustomer identifies the customer on the exchange record.
type ExchangeCustomer struct {
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// ExchangeRequest is the body of POST /sales/exchange.
type ExchangeRequest struct {
	OriginalSaleID string              `json:"originalSaleId"`
	LocationID     string              `json:"locationId,omitempty"`
	Customer       ExchangeCustomer    `json:"customer"`
	Reason         string              `json:"reason,omitempty"`
	Returns        []ExchangeLineInput `json:"returns"`
	Issues         []ExchangeLineInput `json:"issues"`
}

// MarkExchangedRequest is the body of POST /sales/mark-exchanged.
type MarkExchangedRequest struct {
	OriginalSaleID string  `json:"originalSaleId"`
	ExchangeID     *string `json:"exchangeId,omitempty"`
	NewSaleID      *string `json:"newSaleId,omitempty"`
	Note           string  `json:"note,omitempty"`
}

// PaymentInput is one tender toward the exchange difference.
type PaymentInput struct {
	Mode   string          `json:"mode"`
	Amount decimal.Decimal `json:"amount"`
}

// SettleRequest is the body of POST /sales/exchange/settle.
type SettleRequest struct {
	OriginalTotal decimal.Decimal `json:"originalTotal"`
	NewTotal      decimal.Decimal `json:"newTotal"`
	Payments      []PaymentInput  `json:"payments"`
	AllowPartial  bool            `json:"allowPartial,omitempty"`
}

// SettleResponse reports the settlement outcome.
type SettleResponse struct {
	Due     decimal.Decimal `json:"due"`
	Paid    decimal.Decimal `json:"paid"`
	Partial bool            `json:"partial"`
}
