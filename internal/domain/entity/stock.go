package entity

import "time"

// StockEntry is the quantity on hand for one (location, item) pair. Quantity
// is never negative: decrements clamp at zero rather than reject, so a sale
// is never blocked by ledger lag. The cost of that choice is that the ledger
// can under-report shrinkage until the next stock take.
//
// Note: confirming a transfer credits the destination only; the source
// location's entry is deliberately left untouched (source stock is tracked at
// the distributor/HQ level outside this ledger).
type StockEntry struct {
	LocationID string
	ItemID     string
	Quantity   int64
	UpdatedAt  time.Time
}

// QuarantineEntry mirrors StockEntry for returned merchandise pending quality
// inspection. It is a separate namespace: goods here are not sellable.
type QuarantineEntry struct {
	LocationID string
	ItemID     string
	Quantity   int64
	UpdatedAt  time.Time
}

// StockView is a ledger entry joined with item and location display fields.
type StockView struct {
	LocationID      string
	LocationName    string
	ItemID          string
	ItemName        string
	ItemStockNumber string
	Quantity        int64
	UpdatedAt       time.Time
}
