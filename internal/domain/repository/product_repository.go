package repository

import (
	"context"

	"github.com/fortytwo/demeter-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
}

// ProductSizeRepository catálogo de tamaños.
type ProductSizeRepository interface {
	GetByID(ctx context.Context, id string) (*entity.ProductSize, error)
	ListByCompany(ctx context.Context, companyID string) ([]*entity.ProductSize, error)
}

// PackagingCatalogRepository catálogo de empaques.
type PackagingCatalogRepository interface {
	GetByID(ctx context.Context, id string) (*entity.PackagingCatalog, error)
	ListByCompany(ctx context.Context, companyID string) ([]*entity.PackagingCatalog, error)
}
