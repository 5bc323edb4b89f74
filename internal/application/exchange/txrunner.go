package exchange

import (
	"context"

	"github.com/okendra/retailops-api/internal/domain/repository"
)

// TxRunner executes a function inside one database transaction with the
// repositories the reconciler mutates: the exchange record, the live ledger
// and the quarantine ledger.
type TxRunner interface {
	RunExchange(ctx context.Context, fn func(
		exchangeRepo repository.ExchangeRepository,
		stockRepo repository.StockRepository,
		quarantineRepo repository.QuarantineRepository,
	) error) error
}
