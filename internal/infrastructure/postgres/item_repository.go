package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/okendra/retailops-api/internal/domain/entity"
	"github.com/okendra/retailops-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo resolves items on PostgreSQL (pool or tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository builds the adapter. Pass a pool or a tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `id, code, stock_number, name, unit_price`

// GetByID fetches an item. Returns nil, nil when not found.
func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	return r.one(`SELECT `+itemColumns+` FROM items WHERE id = $1`, id)
}

// Resolve tries internal id, then external code, then the legacy stock
// number. Returns nil, nil when nothing matches.
func (r *ItemRepo) Resolve(ref repository.ItemRef) (*entity.Item, error) {
	if ref.ID != "" {
		if it, err := r.GetByID(ref.ID); err != nil || it != nil {
			return it, err
		}
	}
	if ref.Code != "" {
		if it, err := r.one(`SELECT `+itemColumns+` FROM items WHERE code = $1`, ref.Code); err != nil || it != nil {
			return it, err
		}
	}
	if ref.StockNumber != "" {
		return r.one(`SELECT `+itemColumns+` FROM items WHERE stock_number = $1 LIMIT 1`, ref.StockNumber)
	}
	return nil, nil
}

// List returns items ordered by stock number.
func (r *ItemRepo) List(limit, offset int) ([]*entity.Item, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.q.Query(context.Background(),
		`SELECT `+itemColumns+` FROM items ORDER BY stock_number, name LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var out []*entity.Item
	for rows.Next() {
		var it entity.Item
		if err := rows.Scan(&it.ID, &it.Code, &it.StockNumber, &it.Name, &it.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		out = append(out, &it)
	}
	return out, rows.Err()
}

func (r *ItemRepo) one(query string, arg any) (*entity.Item, error) {
	var it entity.Item
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&it.ID, &it.Code, &it.StockNumber, &it.Name, &it.UnitPrice,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &it, nil
}
