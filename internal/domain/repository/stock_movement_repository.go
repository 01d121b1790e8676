package repository

import (
	"context"
	"time"

	"github.com/fortytwo/demeter-api/internal/domain/entity"
)

// MovementFilter filtros para el listado paginado del ledger.
type MovementFilter struct {
	BatchID      string
	MovementType string
	StartDate    *time.Time
	EndDate      *time.Time
}

// StockMovementRepository define el puerto de persistencia del ledger de movimientos.
// El ledger es append-only: los movimientos y sus líneas se crean una vez, en la
// misma transacción, y nunca se mutan ni se borran.
type StockMovementRepository interface {
	// Create persiste el movimiento junto con sus líneas por lote.
	Create(ctx context.Context, movement *entity.StockMovement, lines []*entity.StockBatchMovement) error

	GetByID(ctx context.Context, id string) (*entity.StockMovement, error)
	List(ctx context.Context, companyID string, filter MovementFilter, limit, offset int) ([]*entity.StockMovement, int, error)
	ListByType(ctx context.Context, companyID, movementType string) ([]*entity.StockMovement, error)
	ListByDateRange(ctx context.Context, companyID string, from, to time.Time) ([]*entity.StockMovement, error)
	ListByReference(ctx context.Context, companyID, referenceID string) ([]*entity.StockMovement, error)
	ListByBatch(ctx context.Context, batchID string) ([]*entity.StockMovement, error)

	// ListForHistory devuelve los movimientos del rango ordenados por performed_at
	// ascendente, para proyecciones de serie temporal.
	ListForHistory(ctx context.Context, companyID string, from, to time.Time) ([]*entity.StockMovement, error)

	// NextMovementOrder devuelve el siguiente número de secuencia de líneas para un lote.
	NextMovementOrder(ctx context.Context, batchID string) (int, error)
}
