package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/okendra/retailops-api/internal/domain"
	"github.com/okendra/retailops-api/internal/domain/entity"
	"github.com/okendra/retailops-api/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo persists transfer transactions on PostgreSQL (pool or tx).
type TransferRepo struct {
	q Querier
}

// NewTransferRepository builds the adapter. Pass a pool or a tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

// Create writes the header and all lines. Atomicity comes from the enclosing
// transaction; a duplicate code surfaces as ErrDuplicateCode so the caller
// can regenerate and retry.
func (r *TransferRepo) Create(t *entity.TransferTransaction, lines []*entity.TransferLine) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO transfer_transactions
			(id, code, source_location_id, dest_location_id, priority, note, status,
			 created_by, created_by_name, created_at, discrepancy_note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, '')`,
		t.ID, t.Code, t.SourceLocationID, t.DestLocationID, t.Priority, t.Note,
		t.Status, t.CreatedBy, t.CreatedByName, t.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateCode
		}
		return fmt.Errorf("create transfer: %w", err)
	}
	return r.insertLines(t.ID, lines)
}

// ReplaceLines swaps the whole line set: delete then insert, one unit inside
// the enclosing transaction.
func (r *TransferRepo) ReplaceLines(transferID string, lines []*entity.TransferLine) error {
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM transfer_lines WHERE transfer_id = $1`, transferID,
	); err != nil {
		return fmt.Errorf("delete transfer lines: %w", err)
	}
	return r.insertLines(transferID, lines)
}

func (r *TransferRepo) insertLines(transferID string, lines []*entity.TransferLine) error {
	for _, l := range lines {
		if l.ID == "" {
			l.ID = uuid.New().String()
		}
		l.TransferID = transferID
		_, err := r.q.Exec(context.Background(), `
			INSERT INTO transfer_lines (id, transfer_id, item_id, quantity)
			VALUES ($1, $2, $3, $4)`,
			l.ID, l.TransferID, l.ItemID, l.Quantity,
		)
		if err != nil {
			return fmt.Errorf("insert transfer line: %w", err)
		}
	}
	return nil
}

// GetByID fetches the bare header. Returns nil, nil when not found.
func (r *TransferRepo) GetByID(id string) (*entity.TransferTransaction, error) {
	row := r.q.QueryRow(context.Background(), `
		SELECT id, code, source_location_id, dest_location_id, priority, note, status,
		       created_by, created_by_name, created_at, dispatched_at, accepted_at, discrepancy_note
		FROM transfer_transactions WHERE id = $1`, id)
	return scanTransfer(row)
}

// GetView resolves id or code and joins location names and line display
// fields. Returns nil, nil when not found. The id lookup runs first and the
// human-readable code is only a fallback, so a code that collides with
// another row's id can never shadow it.
func (r *TransferRepo) GetView(idOrCode string) (*entity.TransferView, error) {
	v, err := r.getView(`t.id = $1`, idOrCode)
	if err != nil || v != nil {
		return v, err
	}
	return r.getView(`t.code = $1`, idOrCode)
}

func (r *TransferRepo) getView(predicate, arg string) (*entity.TransferView, error) {
	row := r.q.QueryRow(context.Background(), `
		SELECT t.id, t.code, t.source_location_id, t.dest_location_id, t.priority, t.note, t.status,
		       t.created_by, t.created_by_name, t.created_at, t.dispatched_at, t.accepted_at, t.discrepancy_note,
		       COALESCE(src.name, ''), dst.name
		FROM transfer_transactions t
		LEFT JOIN locations src ON src.id = t.source_location_id
		JOIN locations dst ON dst.id = t.dest_location_id
		WHERE `+predicate, arg)

	var v entity.TransferView
	err := row.Scan(
		&v.ID, &v.Code, &v.SourceLocationID, &v.DestLocationID, &v.Priority, &v.Note, &v.Status,
		&v.CreatedBy, &v.CreatedByName, &v.CreatedAt, &v.DispatchedAt, &v.AcceptedAt, &v.DiscrepancyNote,
		&v.SourceName, &v.DestName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isUndefinedTable(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer view: %w", err)
	}
	lines, err := r.lineViews(v.ID)
	if err != nil {
		return nil, err
	}
	v.Lines = lines
	return &v, nil
}

// List returns transfer views matching the filter, newest first. A missing
// table degrades to an empty result.
func (r *TransferRepo) List(filter repository.TransferFilter) ([]*entity.TransferView, error) {
	query := `
		SELECT t.id, t.code, t.source_location_id, t.dest_location_id, t.priority, t.note, t.status,
		       t.created_by, t.created_by_name, t.created_at, t.dispatched_at, t.accepted_at, t.discrepancy_note,
		       COALESCE(src.name, ''), dst.name
		FROM transfer_transactions t
		LEFT JOIN locations src ON src.id = t.source_location_id
		JOIN locations dst ON dst.id = t.dest_location_id
		WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.Status != "" {
		query += fmt.Sprintf(" AND t.status = $%d", pos)
		args = append(args, filter.Status)
		pos++
	}
	if filter.DestLocationID != "" {
		query += fmt.Sprintf(" AND t.dest_location_id = $%d", pos)
		args = append(args, filter.DestLocationID)
		pos++
	}
	if filter.SourceID != "" {
		query += fmt.Sprintf(" AND t.source_location_id = $%d", pos)
		args = append(args, filter.SourceID)
		pos++
	}
	query += " ORDER BY t.created_at DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", pos)
		args = append(args, filter.Limit)
		pos++
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", pos)
		args = append(args, filter.Offset)
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		if isUndefinedTable(err) {
			return []*entity.TransferView{}, nil
		}
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()

	var out []*entity.TransferView
	for rows.Next() {
		var v entity.TransferView
		if err := rows.Scan(
			&v.ID, &v.Code, &v.SourceLocationID, &v.DestLocationID, &v.Priority, &v.Note, &v.Status,
			&v.CreatedBy, &v.CreatedByName, &v.CreatedAt, &v.DispatchedAt, &v.AcceptedAt, &v.DiscrepancyNote,
			&v.SourceName, &v.DestName,
		); err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		out = append(out, &v)
	}
	if err := rows.Err(); err != nil {
		// Row iteration can be the first round trip to surface a missing
		// table under non-default query exec modes.
		if isUndefinedTable(err) {
			return []*entity.TransferView{}, nil
		}
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	for _, v := range out {
		lines, err := r.lineViews(v.ID)
		if err != nil {
			return nil, err
		}
		v.Lines = lines
	}
	return out, nil
}

// Lines returns the bare lines of a transfer.
func (r *TransferRepo) Lines(transferID string) ([]*entity.TransferLine, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, transfer_id, item_id, quantity
		FROM transfer_lines WHERE transfer_id = $1 ORDER BY id`, transferID)
	if err != nil {
		return nil, fmt.Errorf("get transfer lines: %w", err)
	}
	defer rows.Close()

	var out []*entity.TransferLine
	for rows.Next() {
		var l entity.TransferLine
		if err := rows.Scan(&l.ID, &l.TransferID, &l.ItemID, &l.Quantity); err != nil {
			return nil, fmt.Errorf("scan transfer line: %w", err)
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}

// CASStatus performs the compare-and-swap status update: the row changes only
// if it is still in one of the eligible states. Timestamps and the
// discrepancy note ride along in the same statement, so two concurrent
// Confirm calls can never both win.
func (r *TransferRepo) CASStatus(id string, eligibleFrom []string, to string, upd repository.StatusUpdate) (bool, error) {
	tag, err := r.q.Exec(context.Background(), `
		UPDATE transfer_transactions SET
			status = $2,
			dispatched_at = CASE WHEN $3 AND dispatched_at IS NULL THEN $6 ELSE dispatched_at END,
			accepted_at = CASE WHEN $4 THEN $6 ELSE accepted_at END,
			discrepancy_note = CASE WHEN $5 <> '' THEN $5 ELSE discrepancy_note END
		WHERE id = $1 AND status = ANY($7)`,
		id, to, upd.SetDispatchedAt, upd.SetAcceptedAt, upd.DiscrepancyNote, upd.At, eligibleFrom,
	)
	if err != nil {
		return false, fmt.Errorf("update transfer status: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *TransferRepo) lineViews(transferID string) ([]entity.TransferLineView, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT l.id, l.transfer_id, l.item_id, l.quantity, i.name, i.stock_number
		FROM transfer_lines l
		JOIN items i ON i.id = l.item_id
		WHERE l.transfer_id = $1 ORDER BY l.id`, transferID)
	if err != nil {
		if isUndefinedTable(err) {
			return []entity.TransferLineView{}, nil
		}
		return nil, fmt.Errorf("get transfer line views: %w", err)
	}
	defer rows.Close()

	var out []entity.TransferLineView
	for rows.Next() {
		var v entity.TransferLineView
		if err := rows.Scan(&v.ID, &v.TransferID, &v.ItemID, &v.Quantity, &v.ItemName, &v.ItemStockNumber); err != nil {
			return nil, fmt.Errorf("scan transfer line view: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func scanTransfer(row pgx.Row) (*entity.TransferTransaction, error) {
	var t entity.TransferTransaction
	err := row.Scan(
		&t.ID, &t.Code, &t.SourceLocationID, &t.DestLocationID, &t.Priority, &t.Note, &t.Status,
		&t.CreatedBy, &t.CreatedByName, &t.CreatedAt, &t.DispatchedAt, &t.AcceptedAt, &t.DiscrepancyNote,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	return &t, nil
}
