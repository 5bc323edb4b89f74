package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LegacyTransferRow is one denormalized line in the flat table the legacy
// reporting stack still reads. Kept in sync best effort; never authoritative.
type LegacyTransferRow struct {
	TransferID      string
	LineNo          int
	Code            string
	Status          string
	SourceName      string
	DestName        string
	ItemStockNumber string
	ItemName        string
	Quantity        int64
	UnitPrice       decimal.Decimal
	UpdatedAt       time.Time
}
