// Package stock implementa el motor de operaciones de stock: muerte, plantado,
// ajuste y desplazamiento, todas transaccionales contra lotes y ledger.
package stock

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fortytwo/demeter-api/internal/application/dto"
	"github.com/fortytwo/demeter-api/internal/domain"
	"github.com/fortytwo/demeter-api/internal/domain/entity"
	"github.com/fortytwo/demeter-api/internal/domain/repository"
)

// OperationsUseCase orquesta las operaciones de stock. Cada operación valida el
// lote, aplica el delta con un update condicional atómico y appendea el movimiento
// con sus líneas al ledger dentro de una misma transacción.
type OperationsUseCase struct {
	txRunner TxRunner
}

// NewOperationsUseCase construye el caso de uso.
func NewOperationsUseCase(txRunner TxRunner) *OperationsUseCase {
	return &OperationsUseCase{txRunner: txRunner}
}

// loadOwnedBatch carga un lote y verifica pertenencia a la compañía. La pertenencia
// fallida se reporta como no-encontrado para no filtrar existencia entre tenants.
func loadOwnedBatch(ctx context.Context, batchRepo repository.StockBatchRepository, companyID, batchID string) (*entity.StockBatch, error) {
	batch, err := batchRepo.GetByID(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if batch == nil || batch.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return batch, nil
}

// Muerte registra la muerte de plantas de un lote: egreso MUERTE con una línea
// negativa. Falla con ErrInsufficientStock si el lote no cubre la cantidad y con
// ErrInactiveBatch si el ciclo del lote está cerrado.
func (uc *OperationsUseCase) Muerte(ctx context.Context, companyID, userID string, in dto.MuerteRequest) (*dto.MuerteResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	var resp *dto.MuerteResponse
	err := uc.txRunner.Run(ctx, func(batchRepo repository.StockBatchRepository, movRepo repository.StockMovementRepository) error {
		batch, err := loadOwnedBatch(ctx, batchRepo, companyID, in.BatchID)
		if err != nil {
			return err
		}
		if !batch.IsActive() {
			return domain.ErrInactiveBatch
		}

		newQty, err := batchRepo.ApplyDelta(ctx, batch.ID, -in.Quantity)
		if err != nil {
			return err
		}

		order, err := movRepo.NextMovementOrder(ctx, batch.ID)
		if err != nil {
			return err
		}
		mov := &entity.StockMovement{
			CompanyID:    companyID,
			MovementType: entity.MovementTypeMUERTE,
			Quantity:     -in.Quantity,
			IsInbound:    false,
			UserID:       userID,
			SourceType:   entity.SourceTypeManual,
			Reason:       in.ReasonDescription,
			PerformedAt:  time.Now().UTC(),
		}
		lines := []*entity.StockBatchMovement{{
			BatchID:       batch.ID,
			BatchCode:     batch.BatchCode,
			Quantity:      decimal.NewFromInt(int64(-in.Quantity)),
			MovementOrder: order,
		}}
		if err := movRepo.Create(ctx, mov, lines); err != nil {
			return err
		}

		resp = &dto.MuerteResponse{
			Movement:        dto.MovementFromEntity(mov),
			BatchID:         batch.ID,
			QuantityRemoved: in.Quantity,
			NewQuantity:     newQty,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Plantado registra una plantación sobre un lote existente: ingreso PLANTADO con
// una línea positiva.
func (uc *OperationsUseCase) Plantado(ctx context.Context, companyID, userID string, in dto.PlantadoRequest) (*dto.PlantadoResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	var resp *dto.PlantadoResponse
	err := uc.txRunner.Run(ctx, func(batchRepo repository.StockBatchRepository, movRepo repository.StockMovementRepository) error {
		batch, err := loadOwnedBatch(ctx, batchRepo, companyID, in.BatchID)
		if err != nil {
			return err
		}
		if !batch.IsActive() {
			return domain.ErrInactiveBatch
		}

		newQty, err := batchRepo.ApplyDelta(ctx, batch.ID, in.Quantity)
		if err != nil {
			return err
		}

		order, err := movRepo.NextMovementOrder(ctx, batch.ID)
		if err != nil {
			return err
		}
		mov := &entity.StockMovement{
			CompanyID:    companyID,
			MovementType: entity.MovementTypePLANTADO,
			Quantity:     in.Quantity,
			IsInbound:    true,
			UserID:       userID,
			SourceType:   entity.SourceTypeManual,
			Reason:       in.ReasonDescription,
			PerformedAt:  time.Now().UTC(),
		}
		lines := []*entity.StockBatchMovement{{
			BatchID:       batch.ID,
			BatchCode:     batch.BatchCode,
			Quantity:      decimal.NewFromInt(int64(in.Quantity)),
			MovementOrder: order,
		}}
		if err := movRepo.Create(ctx, mov, lines); err != nil {
			return err
		}

		resp = &dto.PlantadoResponse{
			Movement:    dto.MovementFromEntity(mov),
			BatchID:     batch.ID,
			BatchCode:   batch.BatchCode,
			LocationID:  batch.StorageLocationID,
			NewQuantity: newQty,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Ajuste aplica una corrección manual signada sobre un lote. Cantidad positiva
// suma, negativa resta; cero es inválido. Un ajuste negativo mayor que el stock
// disponible falla con ErrInsufficientStock.
func (uc *OperationsUseCase) Ajuste(ctx context.Context, companyID, userID string, in dto.AjusteRequest) (*dto.AjusteResponse, error) {
	if in.Quantity == 0 {
		return nil, domain.ErrZeroQuantity
	}

	var resp *dto.AjusteResponse
	err := uc.txRunner.Run(ctx, func(batchRepo repository.StockBatchRepository, movRepo repository.StockMovementRepository) error {
		batch, err := loadOwnedBatch(ctx, batchRepo, companyID, in.BatchID)
		if err != nil {
			return err
		}
		if !batch.IsActive() {
			return domain.ErrInactiveBatch
		}

		newQty, err := batchRepo.ApplyDelta(ctx, batch.ID, in.Quantity)
		if err != nil {
			return err
		}

		order, err := movRepo.NextMovementOrder(ctx, batch.ID)
		if err != nil {
			return err
		}
		mov := &entity.StockMovement{
			CompanyID:    companyID,
			MovementType: entity.MovementTypeAJUSTE,
			Quantity:     in.Quantity,
			IsInbound:    in.Quantity > 0,
			UserID:       userID,
			SourceType:   entity.SourceTypeManual,
			Reason:       in.ReasonDescription,
			PerformedAt:  time.Now().UTC(),
		}
		lines := []*entity.StockBatchMovement{{
			BatchID:       batch.ID,
			BatchCode:     batch.BatchCode,
			Quantity:      decimal.NewFromInt(int64(in.Quantity)),
			MovementOrder: order,
		}}
		if err := movRepo.Create(ctx, mov, lines); err != nil {
			return err
		}

		resp = &dto.AjusteResponse{
			Movement:         dto.MovementFromEntity(mov),
			BatchID:          batch.ID,
			QuantityAdjusted: in.Quantity,
			NewQuantity:      newQty,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
