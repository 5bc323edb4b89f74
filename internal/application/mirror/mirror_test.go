package mirror_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okendra/retailops-api/internal/application/mirror"
	"github.com/okendra/retailops-api/internal/domain/entity"
	"github.com/okendra/retailops-api/internal/domain/repository"
	"github.com/okendra/retailops-api/pkg/logger"
)

type viewOnlyTransferRepo struct {
	view *entity.TransferView
	err  error
}

func (r *viewOnlyTransferRepo) GetView(string) (*entity.TransferView, error) {
	return r.view, r.err
}

func (r *viewOnlyTransferRepo) Create(*entity.TransferTransaction, []*entity.TransferLine) error {
	return nil
}
func (r *viewOnlyTransferRepo) ReplaceLines(string, []*entity.TransferLine) error { return nil }
func (r *viewOnlyTransferRepo) GetByID(string) (*entity.TransferTransaction, error) {
	return nil, nil
}
func (r *viewOnlyTransferRepo) List(repository.TransferFilter) ([]*entity.TransferView, error) {
	return nil, nil
}
func (r *viewOnlyTransferRepo) Lines(string) ([]*entity.TransferLine, error) { return nil, nil }
func (r *viewOnlyTransferRepo) CASStatus(string, []string, string, repository.StatusUpdate) (bool, error) {
	return false, nil
}

type fixedItemRepo struct {
	price decimal.Decimal
}

func (r *fixedItemRepo) GetByID(id string) (*entity.Item, error) {
	return &entity.Item{ID: id, UnitPrice: r.price}, nil
}
func (r *fixedItemRepo) Resolve(repository.ItemRef) (*entity.Item, error) { return nil, nil }
func (r *fixedItemRepo) List(int, int) ([]*entity.Item, error)            { return nil, nil }

type memMirrorRepo struct {
	rows       map[string][]*entity.LegacyTransferRow
	statuses   []string
	replaceErr error
	statusErr  error
}

func (r *memMirrorRepo) ReplaceRows(transferID string, rows []*entity.LegacyTransferRow) error {
	if r.replaceErr != nil {
		return r.replaceErr
	}
	if r.rows == nil {
		r.rows = map[string][]*entity.LegacyTransferRow{}
	}
	r.rows[transferID] = rows
	return nil
}

func (r *memMirrorRepo) UpdateStatus(transferID, status string, _ time.Time) error {
	if r.statusErr != nil {
		return r.statusErr
	}
	r.statuses = append(r.statuses, transferID+":"+status)
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "test", Level: "error"})
}

func sampleView() *entity.TransferView {
	v := &entity.TransferView{
		TransferTransaction: entity.TransferTransaction{
			ID:     "t1",
			Code:   "TR-240815143022-K7Q2M",
			Status: entity.TransferShipped,
		},
		SourceName: "Central Warehouse",
		DestName:   "MG Road Outlet",
	}
	v.Lines = []entity.TransferLineView{
		{TransferLine: entity.TransferLine{ItemID: "it-1", Quantity: 5}, ItemName: "Silk Saree", ItemStockNumber: "SN-100"},
		{TransferLine: entity.TransferLine{ItemID: "it-2", Quantity: 3}, ItemName: "Cotton Shirt", ItemStockNumber: "SN-200"},
	}
	return v
}

func TestMirrorTransfer_DenormalizesRows(t *testing.T) {
	transfers := &viewOnlyTransferRepo{view: sampleView()}
	mirrorRepo := &memMirrorRepo{}
	w := mirror.NewWriter(transfers, &fixedItemRepo{price: decimal.NewFromInt(450)}, mirrorRepo, testLogger())

	w.MirrorTransfer("t1")

	rows := mirrorRepo.rows["t1"]
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].LineNo)
	assert.Equal(t, 2, rows[1].LineNo)
	assert.Equal(t, "TR-240815143022-K7Q2M", rows[0].Code)
	assert.Equal(t, "Central Warehouse", rows[0].SourceName)
	assert.Equal(t, "MG Road Outlet", rows[0].DestName)
	assert.Equal(t, "SN-100", rows[0].ItemStockNumber)
	assert.EqualValues(t, 5, rows[0].Quantity)
	assert.True(t, rows[0].UnitPrice.Equal(decimal.NewFromInt(450)))
}

// Mirror failures are logged and counted, never surfaced: a broken legacy
// table must not break transfers.
func TestMirror_SwallowsFailures(t *testing.T) {
	transfers := &viewOnlyTransferRepo{err: errors.New("legacy db gone")}
	mirrorRepo := &memMirrorRepo{replaceErr: errors.New("nope"), statusErr: errors.New("nope")}
	w := mirror.NewWriter(transfers, &fixedItemRepo{}, mirrorRepo, testLogger())

	assert.NotPanics(t, func() {
		w.MirrorTransfer("t1")
		w.MirrorStatus("t1", entity.TransferConfirmed)
	})
	assert.Empty(t, mirrorRepo.rows)
	assert.Empty(t, mirrorRepo.statuses)
}

func TestMirrorTransfer_MissingTransferIsNoop(t *testing.T) {
	mirrorRepo := &memMirrorRepo{}
	w := mirror.NewWriter(&viewOnlyTransferRepo{}, &fixedItemRepo{}, mirrorRepo, testLogger())
	w.MirrorTransfer("gone")
	assert.Empty(t, mirrorRepo.rows)
}

func TestMirrorStatus_Delegates(t *testing.T) {
	mirrorRepo := &memMirrorRepo{}
	w := mirror.NewWriter(&viewOnlyTransferRepo{}, &fixedItemRepo{}, mirrorRepo, testLogger())
	w.MirrorStatus("t1", entity.TransferConfirmed)
	assert.Equal(t, []string{"t1:Confirmed"}, mirrorRepo.statuses)
}
