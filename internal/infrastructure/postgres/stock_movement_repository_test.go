package postgres_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/fortytwo/demeter-api/internal/domain"
	"github.com/fortytwo/demeter-api/internal/domain/entity"
	"github.com/fortytwo/demeter-api/internal/infrastructure/postgres"
)

// El descuadre se detecta antes de tocar la base, por eso el repo puede
// construirse sin conexión.
func TestCreate_SumaDeLineasDescuadradaRechazada(t *testing.T) {
	repo := postgres.NewStockMovementRepository(nil)

	mov := &entity.StockMovement{
		CompanyID:    "comp-1",
		MovementType: entity.MovementTypeFOTO,
		Quantity:     50,
		IsInbound:    true,
	}
	lines := []*entity.StockBatchMovement{
		{BatchID: "b1", Quantity: decimal.NewFromInt(30), MovementOrder: 1},
		{BatchID: "b2", Quantity: decimal.NewFromInt(10), MovementOrder: 1},
	}

	err := repo.Create(context.Background(), mov, lines)
	assert.ErrorIs(t, err, domain.ErrLedgerImbalance)
}

func TestCreate_DescuadreEnEgresoRechazado(t *testing.T) {
	repo := postgres.NewStockMovementRepository(nil)

	mov := &entity.StockMovement{
		CompanyID:    "comp-1",
		MovementType: entity.MovementTypeVENTA,
		Quantity:     -10,
		IsInbound:    false,
	}
	lines := []*entity.StockBatchMovement{
		{BatchID: "b1", Quantity: decimal.NewFromInt(10), MovementOrder: 1},
	}

	err := repo.Create(context.Background(), mov, lines)
	assert.ErrorIs(t, err, domain.ErrLedgerImbalance, "una línea con signo invertido descuadra el ledger")
}
