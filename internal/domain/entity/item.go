package entity

import "github.com/shopspring/decimal"

// Item represents a sellable SKU. StockNumber is the legacy catalogue number
// still printed on tags; it remains a resolution fallback for callers that
// only know it.
type Item struct {
	ID          string
	Code        string // barcode / external item code
	StockNumber string
	Name        string
	UnitPrice   decimal.Decimal
}
