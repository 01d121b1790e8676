package dto

import (
	"time"

	"github.com/fortytwo/demeter-api/internal/domain/entity"
)

// CreateBatchRequest alta manual de un lote de stock.
type CreateBatchRequest struct {
	BatchCode          string  `json:"batchCode" validate:"required,max=100"`
	ProductID          string  `json:"productId" validate:"required,uuid4"`
	StorageLocationID  string  `json:"storageLocationId" validate:"required,uuid4"`
	ProductState       string  `json:"productState" validate:"required,max=50"`
	ProductSizeID      *string `json:"productSizeId,omitempty" validate:"omitempty,uuid4"`
	PackagingCatalogID *string `json:"packagingCatalogId,omitempty" validate:"omitempty,uuid4"`
	QuantityInitial    int     `json:"quantityInitial" validate:"gte=0"`
	Notes              string  `json:"notes,omitempty" validate:"max=500"`
}

// UpdateBatchRequest actualización de configuración y metadatos; la cantidad
// nunca se toca por esta vía, solo a través de movimientos.
type UpdateBatchRequest struct {
	StorageLocationID  *string `json:"storageLocationId,omitempty" validate:"omitempty,uuid4"`
	ProductState       *string `json:"productState,omitempty" validate:"omitempty,max=50"`
	ProductSizeID      *string `json:"productSizeId,omitempty" validate:"omitempty,uuid4"`
	PackagingCatalogID *string `json:"packagingCatalogId,omitempty" validate:"omitempty,uuid4"`
	Status             *string `json:"status,omitempty" validate:"omitempty,oneof=ACTIVE QUARANTINED DEPLETED"`
	Notes              *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// StockBatchDTO representación pública de un lote.
type StockBatchDTO struct {
	ID                 string     `json:"id"`
	BatchCode          string     `json:"batchCode"`
	ProductID          string     `json:"productId"`
	StorageLocationID  string     `json:"storageLocationId"`
	ProductState       string     `json:"productState"`
	ProductSizeID      *string    `json:"productSizeId,omitempty"`
	PackagingCatalogID *string    `json:"packagingCatalogId,omitempty"`
	CycleNumber        int        `json:"cycleNumber"`
	CycleStartDate     time.Time  `json:"cycleStartDate"`
	CycleEndDate       *time.Time `json:"cycleEndDate,omitempty"`
	QuantityInitial    int        `json:"quantityInitial"`
	QuantityCurrent    int        `json:"quantityCurrent"`
	Status             string     `json:"status"`
	Notes              string     `json:"notes,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// BatchFromEntity construye el DTO a partir de la entidad.
func BatchFromEntity(b *entity.StockBatch) StockBatchDTO {
	return StockBatchDTO{
		ID:                 b.ID,
		BatchCode:          b.BatchCode,
		ProductID:          b.ProductID,
		StorageLocationID:  b.StorageLocationID,
		ProductState:       b.ProductState,
		ProductSizeID:      b.ProductSizeID,
		PackagingCatalogID: b.PackagingCatalogID,
		CycleNumber:        b.CycleNumber,
		CycleStartDate:     b.CycleStartDate,
		CycleEndDate:       b.CycleEndDate,
		QuantityInitial:    b.QuantityInitial,
		QuantityCurrent:    b.QuantityCurrent,
		Status:             b.Status,
		Notes:              b.Notes,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

// BatchListResponse listado paginado de lotes.
type BatchListResponse struct {
	Batches []StockBatchDTO `json:"batches"`
	Page    PageResponse    `json:"page"`
}
