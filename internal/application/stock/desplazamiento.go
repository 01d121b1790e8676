package stock

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fortytwo/demeter-api/internal/application/dto"
	"github.com/fortytwo/demeter-api/internal/domain"
	"github.com/fortytwo/demeter-api/internal/domain/entity"
	"github.com/fortytwo/demeter-api/internal/domain/repository"
	domainstock "github.com/fortytwo/demeter-api/internal/domain/stock"
)

// Desplazamiento mueve cantidad entre dos lotes existentes. El tipo de operación
// no lo elige el caller: se infiere comparando ubicación y configuración de los
// lotes (MOVIMIENTO, TRASPLANTE o MOVIMIENTO_TRASPLANTE). Siempre produce dos
// movimientos enlazados — egreso en origen e ingreso en destino con
// ParentMovementID apuntando al egreso — dentro de una sola transacción, de modo
// que el total del sistema no cambia.
func (uc *OperationsUseCase) Desplazamiento(ctx context.Context, companyID, userID string, in dto.DesplazamientoRequest) (*dto.DesplazamientoResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.SourceBatchID == in.DestinationBatchID {
		return nil, domain.ErrInvalidInput
	}

	var resp *dto.DesplazamientoResponse
	err := uc.txRunner.Run(ctx, func(batchRepo repository.StockBatchRepository, movRepo repository.StockMovementRepository) error {
		source, err := loadOwnedBatch(ctx, batchRepo, companyID, in.SourceBatchID)
		if err != nil {
			return err
		}
		dest, err := loadOwnedBatch(ctx, batchRepo, companyID, in.DestinationBatchID)
		if err != nil {
			return err
		}
		if !source.IsActive() || !dest.IsActive() {
			return domain.ErrInactiveBatch
		}

		// La clasificación usa el estado de los lotes dentro de la tx.
		movType, err := domainstock.Classify(source, dest)
		if err != nil {
			return err
		}

		sourceQty, err := batchRepo.ApplyDelta(ctx, source.ID, -in.Quantity)
		if err != nil {
			return err
		}
		destQty, err := batchRepo.ApplyDelta(ctx, dest.ID, in.Quantity)
		if err != nil {
			return err
		}

		now := time.Now().UTC()

		// Pata de egreso sobre el lote origen.
		sourceOrder, err := movRepo.NextMovementOrder(ctx, source.ID)
		if err != nil {
			return err
		}
		egreso := &entity.StockMovement{
			CompanyID:    companyID,
			MovementType: movType,
			Quantity:     -in.Quantity,
			IsInbound:    false,
			UserID:       userID,
			SourceType:   entity.SourceTypeManual,
			Reason:       in.ReasonDescription,
			PerformedAt:  now,
		}
		egresoLines := []*entity.StockBatchMovement{{
			BatchID:       source.ID,
			BatchCode:     source.BatchCode,
			Quantity:      decimal.NewFromInt(int64(-in.Quantity)),
			MovementOrder: sourceOrder,
		}}
		if err := movRepo.Create(ctx, egreso, egresoLines); err != nil {
			return err
		}

		// Pata de ingreso sobre el lote destino, enlazada al egreso.
		destOrder, err := movRepo.NextMovementOrder(ctx, dest.ID)
		if err != nil {
			return err
		}
		ingreso := &entity.StockMovement{
			CompanyID:        companyID,
			MovementType:     movType,
			Quantity:         in.Quantity,
			IsInbound:        true,
			UserID:           userID,
			SourceType:       entity.SourceTypeManual,
			Reason:           in.ReasonDescription,
			ParentMovementID: &egreso.ID,
			PerformedAt:      now,
		}
		ingresoLines := []*entity.StockBatchMovement{{
			BatchID:       dest.ID,
			BatchCode:     dest.BatchCode,
			Quantity:      decimal.NewFromInt(int64(in.Quantity)),
			MovementOrder: destOrder,
		}}
		if err := movRepo.Create(ctx, ingreso, ingresoLines); err != nil {
			return err
		}

		resp = &dto.DesplazamientoResponse{
			OperationType: strings.ToLower(movType),
			Movements: dto.DesplazamientoMovements{
				Egreso:  dto.MovementFromEntity(egreso),
				Ingreso: dto.MovementFromEntity(ingreso),
			},
			SourceBatch: dto.DesplazamientoBatchInfo{
				BatchID:     source.ID,
				BatchCode:   source.BatchCode,
				LocationID:  source.StorageLocationID,
				NewQuantity: sourceQty,
			},
			DestinationBatch: dto.DesplazamientoBatchInfo{
				BatchID:     dest.ID,
				BatchCode:   dest.BatchCode,
				LocationID:  dest.StorageLocationID,
				NewQuantity: destQty,
			},
			Quantity:  in.Quantity,
			CreatedAt: now,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
