package transfer_test

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/okendra/retailops-api/internal/domain"
	"github.com/okendra/retailops-api/internal/domain/entity"
	"github.com/okendra/retailops-api/internal/domain/repository"
)

// memTransferRepo is an in-memory TransferRepository for use-case tests.
type memTransferRepo struct {
	transfers map[string]*entity.TransferTransaction
	lines     map[string][]*entity.TransferLine
	codes     map[string]bool

	// failDuplicates makes the next N Create calls fail with ErrDuplicateCode,
	// simulating code collisions.
	failDuplicates int
	createCalls    int
}

func newMemTransferRepo() *memTransferRepo {
	return &memTransferRepo{
		transfers: map[string]*entity.TransferTransaction{},
		lines:     map[string][]*entity.TransferLine{},
		codes:     map[string]bool{},
	}
}

func (r *memTransferRepo) Create(t *entity.TransferTransaction, lines []*entity.TransferLine) error {
	r.createCalls++
	if r.failDuplicates > 0 {
		r.failDuplicates--
		return domain.ErrDuplicateCode
	}
	if r.codes[t.Code] {
		return domain.ErrDuplicateCode
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	cp := *t
	r.transfers[t.ID] = &cp
	r.codes[t.Code] = true
	stored := make([]*entity.TransferLine, 0, len(lines))
	for _, l := range lines {
		lc := *l
		lc.TransferID = t.ID
		stored = append(stored, &lc)
	}
	r.lines[t.ID] = stored
	return nil
}

func (r *memTransferRepo) ReplaceLines(transferID string, lines []*entity.TransferLine) error {
	if _, ok := r.transfers[transferID]; !ok {
		return domain.ErrNotFound
	}
	stored := make([]*entity.TransferLine, 0, len(lines))
	for _, l := range lines {
		lc := *l
		lc.TransferID = transferID
		stored = append(stored, &lc)
	}
	r.lines[transferID] = stored
	return nil
}

func (r *memTransferRepo) GetByID(id string) (*entity.TransferTransaction, error) {
	t, ok := r.transfers[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *memTransferRepo) GetView(idOrCode string) (*entity.TransferView, error) {
	for _, t := range r.transfers {
		if t.ID == idOrCode || t.Code == idOrCode {
			v := &entity.TransferView{TransferTransaction: *t}
			for _, l := range r.lines[t.ID] {
				v.Lines = append(v.Lines, entity.TransferLineView{TransferLine: *l})
			}
			return v, nil
		}
	}
	return nil, nil
}

func (r *memTransferRepo) List(repository.TransferFilter) ([]*entity.TransferView, error) {
	return nil, nil
}

func (r *memTransferRepo) Lines(transferID string) ([]*entity.TransferLine, error) {
	return r.lines[transferID], nil
}

func (r *memTransferRepo) CASStatus(id string, eligibleFrom []string, to string, upd repository.StatusUpdate) (bool, error) {
	t, ok := r.transfers[id]
	if !ok {
		return false, nil
	}
	eligible := false
	for _, s := range eligibleFrom {
		if t.Status == s {
			eligible = true
			break
		}
	}
	if !eligible {
		return false, nil
	}
	t.Status = to
	at := upd.At
	if upd.SetDispatchedAt && t.DispatchedAt == nil {
		t.DispatchedAt = &at
	}
	if upd.SetAcceptedAt {
		t.AcceptedAt = &at
	}
	if upd.DiscrepancyNote != "" {
		t.DiscrepancyNote = upd.DiscrepancyNote
	}
	return true, nil
}

// memStockRepo is an in-memory stock ledger keyed on location|item.
type memStockRepo struct {
	qty map[string]int64
}

func newMemStockRepo() *memStockRepo {
	return &memStockRepo{qty: map[string]int64{}}
}

func ledgerKey(locationID, itemID string) string {
	return fmt.Sprintf("%s|%s", locationID, itemID)
}

func (r *memStockRepo) Increment(locationID, itemID string, qty int64) error {
	r.qty[ledgerKey(locationID, itemID)] += qty
	return nil
}

func (r *memStockRepo) Decrement(locationID, itemID string, qty int64) error {
	k := ledgerKey(locationID, itemID)
	r.qty[k] -= qty
	if r.qty[k] < 0 {
		r.qty[k] = 0
	}
	return nil
}

func (r *memStockRepo) Get(locationID, itemID string) (*entity.StockEntry, error) {
	return &entity.StockEntry{
		LocationID: locationID,
		ItemID:     itemID,
		Quantity:   r.qty[ledgerKey(locationID, itemID)],
	}, nil
}

func (r *memStockRepo) ListByLocation(string) ([]*entity.StockView, error) {
	return nil, nil
}

// memItemRepo resolves against a fixed catalogue.
type memItemRepo struct {
	items []*entity.Item
}

func catalogueOf(items ...*entity.Item) *memItemRepo {
	return &memItemRepo{items: items}
}

func item(id, code, stockNumber, name string) *entity.Item {
	return &entity.Item{
		ID:          id,
		Code:        code,
		StockNumber: stockNumber,
		Name:        name,
		UnitPrice:   decimal.NewFromInt(100),
	}
}

func (r *memItemRepo) GetByID(id string) (*entity.Item, error) {
	for _, it := range r.items {
		if it.ID == id {
			return it, nil
		}
	}
	return nil, nil
}

func (r *memItemRepo) Resolve(ref repository.ItemRef) (*entity.Item, error) {
	for _, it := range r.items {
		if ref.ID != "" && it.ID == ref.ID {
			return it, nil
		}
	}
	for _, it := range r.items {
		if ref.Code != "" && it.Code == ref.Code {
			return it, nil
		}
	}
	for _, it := range r.items {
		if ref.StockNumber != "" && it.StockNumber == ref.StockNumber {
			return it, nil
		}
	}
	return nil, nil
}

func (r *memItemRepo) List(int, int) ([]*entity.Item, error) {
	return r.items, nil
}

// memLocationRepo knows a fixed set of location ids.
type memLocationRepo struct {
	ids map[string]bool
}

func locationsOf(ids ...string) *memLocationRepo {
	m := map[string]bool{}
	for _, id := range ids {
		m[id] = true
	}
	return &memLocationRepo{ids: m}
}

func (r *memLocationRepo) GetByID(id string) (*entity.Location, error) {
	if !r.ids[id] {
		return nil, nil
	}
	return &entity.Location{ID: id, Name: id, Kind: entity.LocationOutlet}, nil
}

func (r *memLocationRepo) Exists(id string) (bool, error) {
	return r.ids[id], nil
}

func (r *memLocationRepo) List() ([]*entity.Location, error) {
	return nil, nil
}

// memTxRunner hands the shared in-memory repos straight to the closure. Tests
// relying on rollback semantics assert on the pre-transaction validation path
// instead.
type memTxRunner struct {
	transfers *memTransferRepo
	stock     *memStockRepo
}

func (r *memTxRunner) RunTransfer(_ context.Context, fn func(
	transferRepo repository.TransferRepository,
	stockRepo repository.StockRepository,
) error) error {
	return fn(r.transfers, r.stock)
}

// recordingMirror counts best-effort mirror calls.
type recordingMirror struct {
	transferCalls []string
	statusCalls   []string
}

func (m *recordingMirror) MirrorTransfer(transferID string) {
	m.transferCalls = append(m.transferCalls, transferID)
}

func (m *recordingMirror) MirrorStatus(transferID, status string) {
	m.statusCalls = append(m.statusCalls, transferID+":"+status)
}
