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

// LedgerUseCase cubre el alta genérica de movimientos multi-línea (productores
// externos: pipeline ML, ventas) y las consultas de lectura sobre el ledger.
type LedgerUseCase struct {
	txRunner  TxRunner
	movRepo   repository.StockMovementRepository
	batchRepo repository.StockBatchRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(txRunner TxRunner, movRepo repository.StockMovementRepository, batchRepo repository.StockBatchRepository) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner, movRepo: movRepo, batchRepo: batchRepo}
}

// CreateMovement registra un movimiento genérico con una o más líneas. Solo admite
// tipos de ingreso o egreso puros: las transferencias nacen del desplazamiento y
// los ajustes tienen su propia operación, de modo que la suma de líneas siempre
// coincide con la cantidad del movimiento.
func (uc *LedgerUseCase) CreateMovement(ctx context.Context, companyID, userID string, in dto.CreateStockMovementRequest) (*dto.StockMovementDTO, error) {
	if !entity.ValidMovementType(in.MovementType) {
		return nil, domain.ErrInvalidInput
	}
	if entity.IsTransferType(in.MovementType) || in.MovementType == entity.MovementTypeAJUSTE {
		return nil, domain.ErrInvalidInput
	}
	if len(in.BatchQuantities) == 0 {
		return nil, domain.ErrInvalidInput
	}
	// Un lote no puede repetirse en el mismo movimiento: las líneas duplicadas
	// colisionarían en su secuencia de movement_order.
	seen := make(map[string]struct{}, len(in.BatchQuantities))
	for _, bq := range in.BatchQuantities {
		if _, dup := seen[bq.BatchID]; dup {
			return nil, domain.ErrInvalidInput
		}
		seen[bq.BatchID] = struct{}{}
	}

	sign := 1
	if entity.IsOutboundType(in.MovementType) {
		sign = -1
	}
	performedAt := time.Now().UTC()
	if in.PerformedAt != nil {
		performedAt = in.PerformedAt.UTC()
	}

	var resp *dto.StockMovementDTO
	err := uc.txRunner.Run(ctx, func(batchRepo repository.StockBatchRepository, movRepo repository.StockMovementRepository) error {
		total := 0
		lines := make([]*entity.StockBatchMovement, 0, len(in.BatchQuantities))
		for _, bq := range in.BatchQuantities {
			if bq.Quantity <= 0 {
				return domain.ErrInvalidInput
			}
			batch, err := loadOwnedBatch(ctx, batchRepo, companyID, bq.BatchID)
			if err != nil {
				return err
			}
			if !batch.IsActive() {
				return domain.ErrInactiveBatch
			}
			delta := sign * bq.Quantity
			if _, err := batchRepo.ApplyDelta(ctx, batch.ID, delta); err != nil {
				return err
			}
			order, err := movRepo.NextMovementOrder(ctx, batch.ID)
			if err != nil {
				return err
			}
			lines = append(lines, &entity.StockBatchMovement{
				BatchID:       batch.ID,
				BatchCode:     batch.BatchCode,
				Quantity:      decimal.NewFromInt(int64(delta)),
				MovementOrder: order,
			})
			total += delta
		}

		mov := &entity.StockMovement{
			CompanyID:           companyID,
			MovementType:        in.MovementType,
			Quantity:            total,
			IsInbound:           sign > 0,
			UserID:              userID,
			SourceType:          in.SourceType,
			Reason:              in.ReasonDescription,
			ProcessingSessionID: in.ProcessingSessionID,
			ReferenceID:         in.ReferenceID,
			UnitPrice:           in.UnitPrice,
			PerformedAt:         performedAt,
		}
		if in.UnitPrice != nil {
			abs := total
			if abs < 0 {
				abs = -abs
			}
			totalPrice := in.UnitPrice.Mul(decimal.NewFromInt(int64(abs)))
			mov.TotalPrice = &totalPrice
		}
		if err := movRepo.Create(ctx, mov, lines); err != nil {
			return err
		}

		d := dto.MovementFromEntity(mov)
		resp = &d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// GetMovement devuelve un movimiento con sus líneas.
func (uc *LedgerUseCase) GetMovement(ctx context.Context, companyID, movementID string) (*dto.StockMovementDTO, error) {
	mov, err := uc.movRepo.GetByID(ctx, movementID)
	if err != nil {
		return nil, err
	}
	if mov == nil || mov.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	d := dto.MovementFromEntity(mov)
	return &d, nil
}

// ListMovements devuelve el ledger paginado (descendente por performed_at), con
// filtros opcionales por lote, tipo y rango de fechas.
func (uc *LedgerUseCase) ListMovements(ctx context.Context, companyID string, filter repository.MovementFilter, page dto.PageRequest) (*dto.MovementListResponse, error) {
	page.DefaultPage()
	movs, total, err := uc.movRepo.List(ctx, companyID, filter, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return &dto.MovementListResponse{
		Movements: movementsToDTO(movs),
		Page:      dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// ListByType devuelve los movimientos de un tipo concreto.
func (uc *LedgerUseCase) ListByType(ctx context.Context, companyID, movementType string) ([]dto.StockMovementDTO, error) {
	if !entity.ValidMovementType(movementType) {
		return nil, domain.ErrInvalidInput
	}
	movs, err := uc.movRepo.ListByType(ctx, companyID, movementType)
	if err != nil {
		return nil, err
	}
	return movementsToDTO(movs), nil
}

// ListByDateRange devuelve los movimientos de un rango [from, to].
func (uc *LedgerUseCase) ListByDateRange(ctx context.Context, companyID string, from, to time.Time) ([]dto.StockMovementDTO, error) {
	if to.Before(from) {
		return nil, domain.ErrInvalidInput
	}
	movs, err := uc.movRepo.ListByDateRange(ctx, companyID, from, to)
	if err != nil {
		return nil, err
	}
	return movementsToDTO(movs), nil
}

// ListByReference devuelve los movimientos asociados a una referencia externa
// (p.ej. una venta).
func (uc *LedgerUseCase) ListByReference(ctx context.Context, companyID, referenceID string) ([]dto.StockMovementDTO, error) {
	movs, err := uc.movRepo.ListByReference(ctx, companyID, referenceID)
	if err != nil {
		return nil, err
	}
	return movementsToDTO(movs), nil
}

// ListByBatch devuelve la historia completa de un lote: todos los movimientos con
// al menos una línea sobre él.
func (uc *LedgerUseCase) ListByBatch(ctx context.Context, companyID, batchID string) ([]dto.StockMovementDTO, error) {
	batch, err := uc.batchRepo.GetByID(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if batch == nil || batch.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	movs, err := uc.movRepo.ListByBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}
	return movementsToDTO(movs), nil
}

func movementsToDTO(movs []*entity.StockMovement) []dto.StockMovementDTO {
	out := make([]dto.StockMovementDTO, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.MovementFromEntity(m))
	}
	return out
}
