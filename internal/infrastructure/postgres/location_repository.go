package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/okendra/retailops-api/internal/domain/entity"
	"github.com/okendra/retailops-api/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo resolves locations on PostgreSQL (pool or tx).
type LocationRepo struct {
	q Querier
}

// NewLocationRepository builds the adapter. Pass a pool or a tx (Querier).
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

// GetByID fetches a location. Returns nil, nil when not found.
func (r *LocationRepo) GetByID(id string) (*entity.Location, error) {
	var l entity.Location
	err := r.q.QueryRow(context.Background(),
		`SELECT id, code, name, kind FROM locations WHERE id = $1`, id,
	).Scan(&l.ID, &l.Code, &l.Name, &l.Kind)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return &l, nil
}

// Exists reports whether the location id resolves.
func (r *LocationRepo) Exists(id string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM locations WHERE id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("location exists: %w", err)
	}
	return exists, nil
}

// List returns all locations ordered by name.
func (r *LocationRepo) List() ([]*entity.Location, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, code, name, kind FROM locations ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	var out []*entity.Location
	for rows.Next() {
		var l entity.Location
		if err := rows.Scan(&l.ID, &l.Code, &l.Name, &l.Kind); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}
