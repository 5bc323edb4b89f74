package exchange

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/okendra/retailops-api/internal/domain"
	"github.com/okendra/retailops-api/internal/domain/entity"
	"github.com/okendra/retailops-api/internal/domain/repository"
	"github.com/okendra/retailops-api/pkg/logger"
	"github.com/okendra/retailops-api/pkg/metrics"
)

// LineInput is one item moving during an exchange, referenced the same way
// transfer lines are: id, code, or stock number.
type LineInput struct {
	ItemID      string
	ItemCode    string
	StockNumber string
	Quantity    int64
	UnitPrice   decimal.Decimal
}

// ProcessInput is a combined return-and-reissue request. Policy checks
// (same-location rule, exchange window) belong to the caller; the reconciler
// only enforces structural invariants.
type ProcessInput struct {
	OriginalSaleID string
	LocationID     string // empty = no ledger effects, record only
	CustomerName   string
	CustomerPhone  string
	Reason         string
	Returns        []LineInput
	Issues         []LineInput
}

// UseCase is the exchange/return reconciler: returned goods enter quarantine,
// issued goods leave sellable stock, and the whole event is one atomic write.
type UseCase struct {
	txRunner     TxRunner
	itemRepo     repository.ItemRepository
	locationRepo repository.LocationRepository
	exchangeRepo repository.ExchangeRepository // pool-bound, for reads and advisory links
	log          *logger.Logger
}

// NewUseCase builds the reconciler.
func NewUseCase(
	txRunner TxRunner,
	itemRepo repository.ItemRepository,
	locationRepo repository.LocationRepository,
	exchangeRepo repository.ExchangeRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		itemRepo:     itemRepo,
		locationRepo: locationRepo,
		exchangeRepo: exchangeRepo,
		log:          log,
	}
}

// Process creates the exchange record and applies the ledger effects in one
// transaction. Zero-quantity lines are dropped, not errored. Returns the
// record id.
func (uc *UseCase) Process(ctx context.Context, in ProcessInput) (string, error) {
	if in.OriginalSaleID == "" {
		return "", domain.ErrValidation
	}
	if in.LocationID != "" {
		ok, err := uc.locationRepo.Exists(in.LocationID)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", domain.ErrValidation
		}
	}

	returns, err := uc.resolveLines(in.Returns, entity.ExchangeReturn)
	if err != nil {
		return "", err
	}
	issues, err := uc.resolveLines(in.Issues, entity.ExchangeIssue)
	if err != nil {
		return "", err
	}
	if len(returns)+len(issues) == 0 {
		return "", domain.ErrValidation
	}

	rec := &entity.ExchangeRecord{
		OccurredAt:     time.Now(),
		LocationID:     in.LocationID,
		CustomerName:   in.CustomerName,
		CustomerPhone:  in.CustomerPhone,
		Reason:         in.Reason,
		OriginalSaleID: in.OriginalSaleID,
		Lines:          append(returns, issues...),
	}

	err = uc.txRunner.RunExchange(ctx, func(
		exchangeRepo repository.ExchangeRepository,
		stockRepo repository.StockRepository,
		quarantineRepo repository.QuarantineRepository,
	) error {
		if err := exchangeRepo.Create(rec); err != nil {
			return err
		}
		if in.LocationID == "" {
			return nil
		}
		for _, l := range returns {
			// Returned goods are quarantined for inspection, never straight
			// back into sellable stock.
			if err := quarantineRepo.Increment(in.LocationID, l.ItemID, l.Quantity); err != nil {
				return err
			}
		}
		for _, l := range issues {
			if err := stockRepo.Decrement(in.LocationID, l.ItemID, l.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	metrics.ExchangesProcessed.Inc()
	return rec.ID, nil
}

func (uc *UseCase) resolveLines(in []LineInput, direction string) ([]entity.ExchangeLine, error) {
	out := make([]entity.ExchangeLine, 0, len(in))
	for _, l := range in {
		if l.Quantity == 0 {
			continue // dropped, not errored
		}
		if l.Quantity < 0 {
			return nil, domain.ErrValidation
		}
		item, err := uc.itemRepo.Resolve(repository.ItemRef{
			ID: l.ItemID, Code: l.ItemCode, StockNumber: l.StockNumber,
		})
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, domain.ErrValidation
		}
		price := l.UnitPrice
		if price.IsZero() {
			price = item.UnitPrice
		}
		out = append(out, entity.ExchangeLine{
			Direction: direction,
			ItemID:    item.ID,
			Quantity:  l.Quantity,
			UnitPrice: price,
		})
	}
	return out, nil
}

// MarkExchangedInput writes the advisory audit link back to the original
// sale.
type MarkExchangedInput struct {
	OriginalSaleID string
	ExchangeID     *string
	NewSaleID      *string
	Note           string
}

// MarkExchanged records the sale link. The link is audit-only: a write
// failure is logged and swallowed, never surfaced, and never rolls back the
// exchange it refers to.
func (uc *UseCase) MarkExchanged(ctx context.Context, in MarkExchangedInput) error {
	if in.OriginalSaleID == "" {
		return domain.ErrValidation
	}
	link := &entity.ExchangeSaleLink{
		OriginalSaleID: in.OriginalSaleID,
		ExchangeID:     in.ExchangeID,
		NewSaleID:      in.NewSaleID,
		Note:           in.Note,
		CreatedAt:      time.Now(),
	}
	if err := uc.exchangeRepo.CreateSaleLink(link); err != nil {
		uc.log.Warn().Err(err).Str("original_sale_id", in.OriginalSaleID).Msg("exchange sale link discarded")
	}
	return nil
}

// Get returns an exchange record with lines, nil when not found.
func (uc *UseCase) Get(ctx context.Context, id string) (*entity.ExchangeRecord, error) {
	return uc.exchangeRepo.GetByID(id)
}
