package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortytwo/demeter-api/internal/application/analytics"
	"github.com/fortytwo/demeter-api/internal/domain"
	"github.com/fortytwo/demeter-api/internal/domain/entity"
	"github.com/fortytwo/demeter-api/internal/domain/repository"
)

const testCompanyID = "c0000000-0000-0000-0000-000000000001"

// Fakes mínimos: el embedding deja sin implementar lo que el proyector no usa.

type fakeMovRepo struct {
	repository.StockMovementRepository
	movs []*entity.StockMovement
}

func (f *fakeMovRepo) ListForHistory(_ context.Context, companyID string, from, to time.Time) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range f.movs {
		if m.CompanyID == companyID && !m.PerformedAt.Before(from) && !m.PerformedAt.After(to) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMovRepo) ListByBatch(_ context.Context, batchID string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range f.movs {
		for _, l := range m.BatchMovements {
			if l.BatchID == batchID {
				out = append(out, m)
				break
			}
		}
	}
	return out, nil
}

type fakeBatchRepo struct {
	repository.StockBatchRepository
	batches map[string]*entity.StockBatch
}

func (f *fakeBatchRepo) GetByID(_ context.Context, id string) (*entity.StockBatch, error) {
	return f.batches[id], nil
}

func day(d string) time.Time {
	t, _ := time.Parse("2006-01-02", d)
	return t.UTC()
}

func mov(movType string, qty int, performedAt time.Time, lines ...*entity.StockBatchMovement) *entity.StockMovement {
	return &entity.StockMovement{
		CompanyID:      testCompanyID,
		MovementType:   movType,
		Quantity:       qty,
		PerformedAt:    performedAt,
		BatchMovements: lines,
	}
}

func TestDailySeries_AgrupaPorDiaUTC(t *testing.T) {
	movRepo := &fakeMovRepo{movs: []*entity.StockMovement{
		mov(entity.MovementTypePLANTADO, 100, day("2026-03-01").Add(9*time.Hour)),
		mov(entity.MovementTypeMUERTE, -20, day("2026-03-01").Add(15*time.Hour)),
		mov(entity.MovementTypeVENTA, -30, day("2026-03-03")),
		mov(entity.MovementTypeAJUSTE, 5, day("2026-03-03").Add(22*time.Hour)),
		mov(entity.MovementTypeAJUSTE, -2, day("2026-03-03").Add(23*time.Hour)),
	}}
	uc := analytics.NewHistoryUseCase(movRepo, &fakeBatchRepo{})

	resp, err := uc.DailySeries(context.Background(), testCompanyID, day("2026-03-01"), day("2026-03-04"))

	require.NoError(t, err)
	require.Len(t, resp.Points, 2, "solo los días con movimientos aparecen")

	d1 := resp.Points[0]
	assert.Equal(t, "2026-03-01", d1.Date)
	assert.Equal(t, 100, d1.Inbound)
	assert.Equal(t, 20, d1.Outbound)
	assert.Equal(t, 80, d1.NetChange)

	d3 := resp.Points[1]
	assert.Equal(t, "2026-03-03", d3.Date)
	assert.Equal(t, 5, d3.Inbound, "el ajuste positivo cuenta como ingreso")
	assert.Equal(t, 32, d3.Outbound, "venta más ajuste negativo")
	assert.Equal(t, -27, d3.NetChange)
}

func TestDailySeries_TransferenciasAportanCero(t *testing.T) {
	movRepo := &fakeMovRepo{movs: []*entity.StockMovement{
		mov(entity.MovementTypeMOVIMIENTO, -50, day("2026-03-02")),
		mov(entity.MovementTypeMOVIMIENTO, 50, day("2026-03-02")),
		mov(entity.MovementTypeTRASPLANTE, -10, day("2026-03-02")),
		mov(entity.MovementTypeTRASPLANTE, 10, day("2026-03-02")),
	}}
	uc := analytics.NewHistoryUseCase(movRepo, &fakeBatchRepo{})

	resp, err := uc.DailySeries(context.Background(), testCompanyID, day("2026-03-01"), day("2026-03-04"))

	require.NoError(t, err)
	assert.Empty(t, resp.Points, "un día solo de transferencias no aporta cambio neto al sistema")
}

func TestDailySeries_RangoInvertido(t *testing.T) {
	uc := analytics.NewHistoryUseCase(&fakeMovRepo{}, &fakeBatchRepo{})
	_, err := uc.DailySeries(context.Background(), testCompanyID, day("2026-03-04"), day("2026-03-01"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBatchDailySeries_LasPatasDeTransferenciaCuentan(t *testing.T) {
	line := func(batchID string, qty int64) *entity.StockBatchMovement {
		return &entity.StockBatchMovement{BatchID: batchID, Quantity: decimal.NewFromInt(qty)}
	}
	movRepo := &fakeMovRepo{movs: []*entity.StockMovement{
		mov(entity.MovementTypePLANTADO, 100, day("2026-03-01"), line("b1", 100)),
		// Desplazamiento: egreso de b1, ingreso en b2.
		mov(entity.MovementTypeMOVIMIENTO, -40, day("2026-03-02"), line("b1", -40)),
		mov(entity.MovementTypeMOVIMIENTO, 40, day("2026-03-02"), line("b2", 40)),
	}}
	batchRepo := &fakeBatchRepo{batches: map[string]*entity.StockBatch{
		"b1": {ID: "b1", CompanyID: testCompanyID},
	}}
	uc := analytics.NewHistoryUseCase(movRepo, batchRepo)

	resp, err := uc.BatchDailySeries(context.Background(), testCompanyID, "b1", day("2026-03-01"), day("2026-03-04"))

	require.NoError(t, err)
	require.Len(t, resp.Points, 2)
	assert.Equal(t, 100, resp.Points[0].Inbound)
	assert.Equal(t, 40, resp.Points[1].Outbound, "la pata de egreso sí cuenta en la serie del lote")
	assert.Equal(t, -40, resp.Points[1].NetChange)
}

func TestBatchDailySeries_LoteAjeno(t *testing.T) {
	batchRepo := &fakeBatchRepo{batches: map[string]*entity.StockBatch{
		"b1": {ID: "b1", CompanyID: "otra-compania"},
	}}
	uc := analytics.NewHistoryUseCase(&fakeMovRepo{}, batchRepo)

	_, err := uc.BatchDailySeries(context.Background(), testCompanyID, "b1", day("2026-03-01"), day("2026-03-04"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
