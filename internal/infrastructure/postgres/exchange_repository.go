package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/okendra/retailops-api/internal/domain/entity"
	"github.com/okendra/retailops-api/internal/domain/repository"
)

var _ repository.ExchangeRepository = (*ExchangeRepo)(nil)

// ExchangeRepo persists exchange records on PostgreSQL (pool or tx).
type ExchangeRepo struct {
	q Querier
}

// NewExchangeRepository builds the adapter. Pass a pool or a tx (Querier).
func NewExchangeRepository(q Querier) *ExchangeRepo {
	return &ExchangeRepo{q: q}
}

// Create writes the record and all its lines. Atomicity comes from the
// enclosing transaction.
func (r *ExchangeRepo) Create(rec *entity.ExchangeRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO exchange_records
			(id, occurred_at, location_id, customer_name, customer_phone, reason, original_sale_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rec.ID, rec.OccurredAt, rec.LocationID, rec.CustomerName, rec.CustomerPhone,
		rec.Reason, rec.OriginalSaleID,
	)
	if err != nil {
		return fmt.Errorf("create exchange: %w", err)
	}
	for i := range rec.Lines {
		l := &rec.Lines[i]
		if l.ID == "" {
			l.ID = uuid.New().String()
		}
		l.ExchangeID = rec.ID
		_, err := r.q.Exec(context.Background(), `
			INSERT INTO exchange_lines (id, exchange_id, direction, item_id, quantity, unit_price)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			l.ID, l.ExchangeID, l.Direction, l.ItemID, l.Quantity, l.UnitPrice,
		)
		if err != nil {
			return fmt.Errorf("insert exchange line: %w", err)
		}
	}
	return nil
}

// GetByID fetches the record with its lines. Returns nil, nil when not found.
func (r *ExchangeRepo) GetByID(id string) (*entity.ExchangeRecord, error) {
	var rec entity.ExchangeRecord
	err := r.q.QueryRow(context.Background(), `
		SELECT id, occurred_at, location_id, customer_name, customer_phone, reason, original_sale_id
		FROM exchange_records WHERE id = $1`, id,
	).Scan(&rec.ID, &rec.OccurredAt, &rec.LocationID, &rec.CustomerName, &rec.CustomerPhone,
		&rec.Reason, &rec.OriginalSaleID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get exchange: %w", err)
	}

	rows, err := r.q.Query(context.Background(), `
		SELECT id, exchange_id, direction, item_id, quantity, unit_price
		FROM exchange_lines WHERE exchange_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("get exchange lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var l entity.ExchangeLine
		if err := rows.Scan(&l.ID, &l.ExchangeID, &l.Direction, &l.ItemID, &l.Quantity, &l.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan exchange line: %w", err)
		}
		rec.Lines = append(rec.Lines, l)
	}
	return &rec, rows.Err()
}

// CreateSaleLink writes the advisory audit link.
func (r *ExchangeRepo) CreateSaleLink(link *entity.ExchangeSaleLink) error {
	if link.ID == "" {
		link.ID = uuid.New().String()
	}
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO exchange_sale_links (id, original_sale_id, exchange_id, new_sale_id, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		link.ID, link.OriginalSaleID, link.ExchangeID, link.NewSaleID, link.Note, link.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create sale link: %w", err)
	}
	return nil
}
