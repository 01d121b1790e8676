package repository

import (
	"context"

	"github.com/fortytwo/demeter-api/internal/domain/entity"
)

// BatchFilter filtros para listados de lotes.
type BatchFilter struct {
	ProductID         string
	StorageLocationID string
	Status            string
	ActiveOnly        bool
}

// StockBatchRepository define el puerto de persistencia para lotes de stock.
//
// ApplyDelta es el único mutador sancionado de QuantityCurrent: aplica el delta
// signado como un único update condicional contra el valor persistido
// (quantity_current + delta >= 0) y devuelve la nueva cantidad. Devuelve
// domain.ErrInsufficientStock si el delta dejaría la cantidad negativa y
// domain.ErrNotFound si el lote no existe. Un delta cero es un error del caller.
type StockBatchRepository interface {
	Create(ctx context.Context, batch *entity.StockBatch) error
	GetByID(ctx context.Context, id string) (*entity.StockBatch, error)
	GetByCode(ctx context.Context, companyID, batchCode string) (*entity.StockBatch, error)
	List(ctx context.Context, companyID string, filter BatchFilter, limit, offset int) ([]*entity.StockBatch, int, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.StockBatch, error)
	ListByLocation(ctx context.Context, locationID string, activeOnly bool) ([]*entity.StockBatch, error)
	Update(ctx context.Context, batch *entity.StockBatch) error
	SoftDelete(ctx context.Context, id string) error

	ApplyDelta(ctx context.Context, id string, delta int) (int, error)
}
