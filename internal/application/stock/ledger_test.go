package stock_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortytwo/demeter-api/internal/application/dto"
	"github.com/fortytwo/demeter-api/internal/application/stock"
	"github.com/fortytwo/demeter-api/internal/domain"
	"github.com/fortytwo/demeter-api/internal/domain/entity"
	"github.com/fortytwo/demeter-api/internal/domain/repository"
)

func newLedgerFixture(batches ...*entity.StockBatch) (*stock.LedgerUseCase, *fakeBatchRepo, *fakeMovementRepo) {
	batchRepo := newFakeBatchRepo(batches...)
	movRepo := &fakeMovementRepo{}
	uc := stock.NewLedgerUseCase(&fakeTxRunner{batchRepo: batchRepo, movRepo: movRepo}, movRepo, batchRepo)
	return uc, batchRepo, movRepo
}

func TestCreateMovement_FotoMultiLinea(t *testing.T) {
	uc, batchRepo, _ := newLedgerFixture(
		buildBatch("b1", "LOTE-001", "loc-1", 10),
		buildBatch("b2", "LOTE-002", "loc-2", 0),
	)
	session := "sess-42"

	resp, err := uc.CreateMovement(context.Background(), testCompanyID, testUserID, dto.CreateStockMovementRequest{
		MovementType:        entity.MovementTypeFOTO,
		SourceType:          entity.SourceTypeIA,
		ProcessingSessionID: &session,
		BatchQuantities: []dto.BatchQuantity{
			{BatchID: "b1", Quantity: 30},
			{BatchID: "b2", Quantity: 20},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 50, resp.Quantity, "la cantidad del movimiento es la suma de las líneas")
	assert.True(t, resp.IsInbound)
	require.Len(t, resp.BatchMovements, 2)
	assert.Equal(t, 40, batchRepo.batches["b1"].QuantityCurrent)
	assert.Equal(t, 20, batchRepo.batches["b2"].QuantityCurrent)
	require.NotNil(t, resp.ProcessingSessionID)
	assert.Equal(t, "sess-42", *resp.ProcessingSessionID)
}

func TestCreateMovement_VentaConPrecio(t *testing.T) {
	uc, batchRepo, _ := newLedgerFixture(buildBatch("b1", "LOTE-001", "loc-1", 100))
	price := decimal.NewFromInt(1500)
	ref := "venta-77"

	resp, err := uc.CreateMovement(context.Background(), testCompanyID, testUserID, dto.CreateStockMovementRequest{
		MovementType: entity.MovementTypeVENTA,
		SourceType:   entity.SourceTypeVenta,
		ReferenceID:  &ref,
		UnitPrice:    &price,
		BatchQuantities: []dto.BatchQuantity{
			{BatchID: "b1", Quantity: 10},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, -10, resp.Quantity)
	assert.False(t, resp.IsInbound)
	assert.Equal(t, 90, batchRepo.batches["b1"].QuantityCurrent)
	require.NotNil(t, resp.TotalPrice)
	assert.True(t, resp.TotalPrice.Equal(decimal.NewFromInt(15000)))
}

func TestCreateMovement_VentaSinStock(t *testing.T) {
	uc, _, movRepo := newLedgerFixture(buildBatch("b1", "LOTE-001", "loc-1", 5))

	_, err := uc.CreateMovement(context.Background(), testCompanyID, testUserID, dto.CreateStockMovementRequest{
		MovementType: entity.MovementTypeVENTA,
		SourceType:   entity.SourceTypeVenta,
		BatchQuantities: []dto.BatchQuantity{
			{BatchID: "b1", Quantity: 6},
		},
	})

	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Empty(t, movRepo.movements)
}

func TestCreateMovement_RechazaTransferenciasYAjustes(t *testing.T) {
	uc, _, _ := newLedgerFixture(buildBatch("b1", "LOTE-001", "loc-1", 100))

	for _, movType := range []string{
		entity.MovementTypeMOVIMIENTO,
		entity.MovementTypeTRASPLANTE,
		entity.MovementTypeMOVIMIENTOTRASPLANTE,
		entity.MovementTypeAJUSTE,
		"INVENTADO",
	} {
		_, err := uc.CreateMovement(context.Background(), testCompanyID, testUserID, dto.CreateStockMovementRequest{
			MovementType:    movType,
			SourceType:      entity.SourceTypeManual,
			BatchQuantities: []dto.BatchQuantity{{BatchID: "b1", Quantity: 1}},
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "tipo %s debe rechazarse en el alta genérica", movType)
	}
}

func TestCreateMovement_LoteRepetidoRechazado(t *testing.T) {
	uc, batchRepo, movRepo := newLedgerFixture(buildBatch("b1", "LOTE-001", "loc-1", 10))

	_, err := uc.CreateMovement(context.Background(), testCompanyID, testUserID, dto.CreateStockMovementRequest{
		MovementType: entity.MovementTypeFOTO,
		SourceType:   entity.SourceTypeIA,
		BatchQuantities: []dto.BatchQuantity{
			{BatchID: "b1", Quantity: 5},
			{BatchID: "b1", Quantity: 3},
		},
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput, "un lote repetido en el mismo movimiento duplicaría su movement_order")
	assert.Equal(t, 10, batchRepo.batches["b1"].QuantityCurrent, "nada debe mutar")
	assert.Empty(t, movRepo.movements)
}

func TestGetMovement_DeOtraCompania(t *testing.T) {
	uc, _, movRepo := newLedgerFixture()
	mov := &entity.StockMovement{CompanyID: "otra-compania", MovementType: entity.MovementTypeFOTO}
	require.NoError(t, movRepo.Create(context.Background(), mov, nil))

	_, err := uc.GetMovement(context.Background(), testCompanyID, mov.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListMovements_FiltraPorTipo(t *testing.T) {
	uc, _, _ := newLedgerFixture(buildBatch("b1", "LOTE-001", "loc-1", 100))

	for i := 0; i < 3; i++ {
		_, err := uc.CreateMovement(context.Background(), testCompanyID, testUserID, dto.CreateStockMovementRequest{
			MovementType:    entity.MovementTypePLANTADO,
			SourceType:      entity.SourceTypeManual,
			BatchQuantities: []dto.BatchQuantity{{BatchID: "b1", Quantity: 1}},
		})
		require.NoError(t, err)
	}
	_, err := uc.CreateMovement(context.Background(), testCompanyID, testUserID, dto.CreateStockMovementRequest{
		MovementType:    entity.MovementTypeMUERTE,
		SourceType:      entity.SourceTypeManual,
		BatchQuantities: []dto.BatchQuantity{{BatchID: "b1", Quantity: 1}},
	})
	require.NoError(t, err)

	muertes, err := uc.ListByType(context.Background(), testCompanyID, entity.MovementTypeMUERTE)
	require.NoError(t, err)
	assert.Len(t, muertes, 1)

	page, err := uc.ListMovements(context.Background(), testCompanyID, repository.MovementFilter{MovementType: entity.MovementTypePLANTADO}, dto.PageRequest{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page.Movements, 2)
	assert.Equal(t, 3, page.Page.Total)
}
