package exchange

import (
	"github.com/shopspring/decimal"

	"github.com/okendra/retailops-api/internal/domain"
)

// Payment is one tender toward the exchange difference.
type Payment struct {
	Mode   string // cash, card, upi...
	Amount decimal.Decimal
}

// Settlement is the outcome of SettleDifference.
type Settlement struct {
	Due     decimal.Decimal
	Paid    decimal.Decimal
	Partial bool
}

// SettleDifference computes what the customer owes when the issued items cost
// more than the returned ones: due = max(0, newTotal - originalTotal). A
// new-items-only exchange is the originalTotal = 0 special case.
//
// Payments must sum to exactly the amount due. allowPartial accepts a smaller
// sum, for the flow where the issued items are rung up as an independent sale
// instead of a delta; an overpayment is always rejected.
func SettleDifference(originalTotal, newTotal decimal.Decimal, payments []Payment, allowPartial bool) (Settlement, error) {
	due := newTotal.Sub(originalTotal)
	if due.IsNegative() {
		due = decimal.Zero
	}

	paid := decimal.Zero
	for _, p := range payments {
		if p.Amount.IsNegative() {
			return Settlement{}, domain.ErrValidation
		}
		paid = paid.Add(p.Amount)
	}

	if paid.Equal(due) {
		return Settlement{Due: due, Paid: paid}, nil
	}
	if allowPartial && paid.LessThan(due) {
		return Settlement{Due: due, Paid: paid, Partial: true}, nil
	}
	return Settlement{}, domain.ErrSettlementMismatch
}
