package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fortytwo/demeter-api/internal/domain/entity"
)

// CreateProductRequest alta de producto en el catálogo maestro.
type CreateProductRequest struct {
	SKU         string          `json:"sku" validate:"required,max=50"`
	Name        string          `json:"name" validate:"required,max=200"`
	Description string          `json:"description,omitempty" validate:"max=500"`
	Price       decimal.Decimal `json:"price"`
}

// UpdateProductRequest actualización parcial de producto.
type UpdateProductRequest struct {
	Name        *string          `json:"name,omitempty" validate:"omitempty,max=200"`
	Description *string          `json:"description,omitempty" validate:"omitempty,max=500"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Active      *bool            `json:"active,omitempty"`
}

// ProductDTO representación pública de un producto.
type ProductDTO struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ProductFromEntity construye el DTO a partir de la entidad.
func ProductFromEntity(p *entity.Product) ProductDTO {
	return ProductDTO{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
	}
}

// CreateLocationRequest alta de ubicación física.
type CreateLocationRequest struct {
	Code string `json:"code" validate:"required,max=50"`
	Name string `json:"name" validate:"required,max=200"`
}

// LocationDTO representación pública de una ubicación.
type LocationDTO struct {
	ID     string `json:"id"`
	Code   string `json:"code"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// LocationFromEntity construye el DTO a partir de la entidad.
func LocationFromEntity(l *entity.StorageLocation) LocationDTO {
	return LocationDTO{ID: l.ID, Code: l.Code, Name: l.Name, Active: l.Active}
}

// ProductSizeDTO clasificador de tamaño.
type ProductSizeDTO struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// PackagingDTO clasificador de empaque.
type PackagingDTO struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}
