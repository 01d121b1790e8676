package stock

import (
	"context"

	"github.com/fortytwo/demeter-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza que la mutación de lotes y el append al ledger de una
// operación hagan Commit o Rollback como una sola unidad.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		batchRepo repository.StockBatchRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}
