package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/okendra/retailops-api/internal/domain/entity"
	"github.com/okendra/retailops-api/internal/domain/repository"
)

var _ repository.HeldBillRepository = (*HeldBillRepo)(nil)

// HeldBillRepo persists suspended sale carts on PostgreSQL (pool or tx).
type HeldBillRepo struct {
	q Querier
}

// NewHeldBillRepository builds the adapter. Pass a pool or a tx (Querier).
func NewHeldBillRepository(q Querier) *HeldBillRepo {
	return &HeldBillRepo{q: q}
}

// Save writes a held bill.
func (r *HeldBillRepo) Save(bill *entity.HeldBill) error {
	if bill.ID == "" {
		bill.ID = uuid.New().String()
	}
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO held_bills (id, created_at, customer_name, settings, lines, held_by)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		bill.ID, bill.CreatedAt, bill.CustomerName, bill.Settings, bill.Lines, bill.HeldBy,
	)
	if err != nil {
		return fmt.Errorf("save held bill: %w", err)
	}
	return nil
}

// Pop atomically reads and deletes the bill. DELETE ... RETURNING makes a
// second resume of the same token a clean not-found: the first caller takes
// the row, everyone else sees nothing.
func (r *HeldBillRepo) Pop(token string) (*entity.HeldBill, error) {
	var b entity.HeldBill
	err := r.q.QueryRow(context.Background(), `
		DELETE FROM held_bills WHERE id = $1
		RETURNING id, created_at, customer_name, settings, lines, held_by`, token,
	).Scan(&b.ID, &b.CreatedAt, &b.CustomerName, &b.Settings, &b.Lines, &b.HeldBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("pop held bill: %w", err)
	}
	return &b, nil
}

// Delete removes the bill without returning it.
func (r *HeldBillRepo) Delete(token string) (bool, error) {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM held_bills WHERE id = $1`, token)
	if err != nil {
		return false, fmt.Errorf("delete held bill: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// List returns bills held within maxAge, newest first. maxAge <= 0 lists all.
func (r *HeldBillRepo) List(maxAge time.Duration) ([]*entity.HeldBill, error) {
	query := `
		SELECT id, created_at, customer_name, settings, lines, held_by
		FROM held_bills`
	args := []any{}
	if maxAge > 0 {
		query += ` WHERE created_at >= $1`
		args = append(args, time.Now().Add(-maxAge))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		if isUndefinedTable(err) {
			return []*entity.HeldBill{}, nil
		}
		return nil, fmt.Errorf("list held bills: %w", err)
	}
	defer rows.Close()

	var out []*entity.HeldBill
	for rows.Next() {
		var b entity.HeldBill
		if err := rows.Scan(&b.ID, &b.CreatedAt, &b.CustomerName, &b.Settings, &b.Lines, &b.HeldBy); err != nil {
			return nil, fmt.Errorf("scan held bill: %w", err)
		}
		out = append(out, &b)
	}
	if err := rows.Err(); err != nil {
		if isUndefinedTable(err) {
			return []*entity.HeldBill{}, nil
		}
		return nil, fmt.Errorf("list held bills: %w", err)
	}
	return out, nil
}

// AppendAudit writes one immutable trail entry.
func (r *HeldBillRepo) AppendAudit(a *entity.HeldBillAudit) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO held_bill_audit (id, action, bill_token, actor_id, at)
		VALUES ($1, $2, $3, $4, $5)`,
		a.ID, a.Action, a.BillToken, a.ActorID, a.At,
	)
	if err != nil {
		return fmt.Errorf("append held bill audit: %w", err)
	}
	return nil
}
