package entity

import "time"

// Estados de un lote de stock.
const (
	BatchStatusActive      = "ACTIVE"
	BatchStatusQuarantined = "QUARANTINED"
	BatchStatusDepleted    = "DEPLETED"
)

// StockBatch representa un lote de plantas en una ubicación, con su configuración
// (producto, estado, tamaño, empaque) y seguimiento de ciclo. La cantidad actual
// solo se muta a través del ledger de movimientos, nunca por edición directa.
type StockBatch struct {
	ID        string
	CompanyID string
	BatchCode string

	ProductID          string
	StorageLocationID  string
	ProductState       string
	ProductSizeID      *string
	PackagingCatalogID *string

	// Ciclo: un lote con CycleEndDate distinto de nil está cerrado y no admite operaciones.
	CycleNumber    int
	CycleStartDate time.Time
	CycleEndDate   *time.Time

	QuantityInitial int
	QuantityCurrent int

	Status    string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive indica si el ciclo del lote sigue abierto.
func (b *StockBatch) IsActive() bool {
	return b.CycleEndDate == nil
}

// BatchConfig es la tupla de configuración (producto, tamaño, estado, empaque)
// que identifica qué contiene un lote. Se compara en el clasificador de desplazamientos.
type BatchConfig struct {
	ProductID          string
	ProductState       string
	ProductSizeID      *string
	PackagingCatalogID *string
}

// Config devuelve la tupla de configuración del lote.
func (b *StockBatch) Config() BatchConfig {
	return BatchConfig{
		ProductID:          b.ProductID,
		ProductState:       b.ProductState,
		ProductSizeID:      b.ProductSizeID,
		PackagingCatalogID: b.PackagingCatalogID,
	}
}
