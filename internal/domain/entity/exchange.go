package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Exchange line directions.
const (
	ExchangeReturn = "return" // customer hands the item back; goes to quarantine
	ExchangeIssue  = "issue"  // customer takes the item; leaves the live ledger
)

// ExchangeRecord is one combined return-and-reissue event tied to an original
// sale. Immutable after creation except through the sale link.
type ExchangeRecord struct {
	ID             string
	OccurredAt     time.Time
	LocationID     string
	CustomerName   string
	CustomerPhone  string
	Reason         string
	OriginalSaleID string
	Lines          []ExchangeLine
}

// ExchangeLine is one item moving in or out during an exchange.
type ExchangeLine struct {
	ID         string
	ExchangeID string
	Direction  string // ExchangeReturn or ExchangeIssue
	ItemID     string
	Quantity   int64
	UnitPrice  decimal.Decimal
}

// ExchangeSaleLink associates an original sale with an exchange and,
// optionally, the new sale created for issued items. Advisory only: never
// required for ledger correctness.
type ExchangeSaleLink struct {
	ID             string
	OriginalSaleID string
	ExchangeID     *string
	NewSaleID      *string
	Note           string
	CreatedAt      time.Time
}
