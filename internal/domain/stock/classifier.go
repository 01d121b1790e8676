// Package stock contiene las reglas de dominio del motor de stock que no
// dependen de persistencia.
package stock

import (
	"github.com/fortytwo/demeter-api/internal/domain"
	"github.com/fortytwo/demeter-api/internal/domain/entity"
)

// Classify infiere el tipo de operación de un desplazamiento comparando los dos
// lotes en el momento de la llamada:
//
//	distinta ubicación, misma config     -> MOVIMIENTO
//	distinta ubicación, distinta config  -> MOVIMIENTO_TRASPLANTE
//	misma ubicación, distinta config     -> TRASPLANTE
//	misma ubicación, misma config        -> ErrSameBatchConfig
//
// Mover entre productos distintos no es un desplazamiento válido.
// Es una función pura: mismos lotes, mismo resultado.
func Classify(source, dest *entity.StockBatch) (string, error) {
	if source.ProductID != dest.ProductID {
		return "", domain.ErrDifferentProduct
	}

	sameLocation := source.StorageLocationID == dest.StorageLocationID
	sameConfig := sameBatchConfig(source.Config(), dest.Config())

	switch {
	case !sameLocation && sameConfig:
		return entity.MovementTypeMOVIMIENTO, nil
	case !sameLocation && !sameConfig:
		return entity.MovementTypeMOVIMIENTOTRASPLANTE, nil
	case sameLocation && !sameConfig:
		return entity.MovementTypeTRASPLANTE, nil
	}
	return "", domain.ErrSameBatchConfig
}

func sameBatchConfig(a, b entity.BatchConfig) bool {
	return a.ProductID == b.ProductID &&
		a.ProductState == b.ProductState &&
		equalOptional(a.ProductSizeID, b.ProductSizeID) &&
		equalOptional(a.PackagingCatalogID, b.PackagingCatalogID)
}

func equalOptional(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
