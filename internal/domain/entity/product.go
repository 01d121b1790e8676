package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto (especie/variedad) del catálogo maestro.
type Product struct {
	ID          string
	CompanyID   string
	SKU         string
	Name        string
	Description string
	Price       decimal.Decimal
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductSize tamaño de producto (clasificador de configuración de lote).
type ProductSize struct {
	ID        string
	CompanyID string
	Code      string
	Name      string
}

// PackagingCatalog tipo de empaque (bolsa, maceta, bandeja...).
type PackagingCatalog struct {
	ID        string
	CompanyID string
	Code      string
	Name      string
}
