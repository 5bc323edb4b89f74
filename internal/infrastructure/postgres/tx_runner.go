package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/okendra/retailops-api/internal/application/exchange"
	"github.com/okendra/retailops-api/internal/application/holdbill"
	transferapp "github.com/okendra/retailops-api/internal/application/transfer"
	"github.com/okendra/retailops-api/internal/domain/repository"
)

// Ensure TxRunner satisfies the runner contracts of each use-case family.
var _ transferapp.TxRunner = (*TxRunner)(nil)
var _ exchange.TxRunner = (*TxRunner)(nil)
var _ holdbill.TxRunner = (*TxRunner)(nil)

// TxRunner executes callbacks inside one PostgreSQL transaction, handing the
// callback repositories bound to that transaction. Either every write in the
// callback commits or the whole unit rolls back.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner on the pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunTransfer runs fn with transfer and stock repositories bound to one tx.
func (r *TxRunner) RunTransfer(ctx context.Context, fn func(
	transferRepo repository.TransferRepository,
	stockRepo repository.StockRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewTransferRepository(tx), NewStockRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunExchange runs fn with exchange, stock and quarantine repositories bound
// to one tx.
func (r *TxRunner) RunExchange(ctx context.Context, fn func(
	exchangeRepo repository.ExchangeRepository,
	stockRepo repository.StockRepository,
	quarantineRepo repository.QuarantineRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewExchangeRepository(tx), NewStockRepository(tx), NewQuarantineRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunHoldBill runs fn with the held-bill repository bound to one tx, so the
// bill write and its audit entry land together.
func (r *TxRunner) RunHoldBill(ctx context.Context, fn func(
	billRepo repository.HeldBillRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewHeldBillRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
