package usecase

import (
	"context"

	"github.com/fortytwo/demeter-api/internal/application/dto"
	"github.com/fortytwo/demeter-api/internal/domain/repository"
)

// CatalogUseCase lecturas de los clasificadores de configuración de lote
// (tamaños y empaques).
type CatalogUseCase struct {
	sizeRepo      repository.ProductSizeRepository
	packagingRepo repository.PackagingCatalogRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(sizeRepo repository.ProductSizeRepository, packagingRepo repository.PackagingCatalogRepository) *CatalogUseCase {
	return &CatalogUseCase{sizeRepo: sizeRepo, packagingRepo: packagingRepo}
}

// ListSizes lista los tamaños de la compañía.
func (uc *CatalogUseCase) ListSizes(ctx context.Context, companyID string) ([]dto.ProductSizeDTO, error) {
	list, err := uc.sizeRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductSizeDTO, 0, len(list))
	for _, s := range list {
		items = append(items, dto.ProductSizeDTO{ID: s.ID, Code: s.Code, Name: s.Name})
	}
	return items, nil
}

// ListPackagings lista los empaques de la compañía.
func (uc *CatalogUseCase) ListPackagings(ctx context.Context, companyID string) ([]dto.PackagingDTO, error) {
	list, err := uc.packagingRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PackagingDTO, 0, len(list))
	for _, p := range list {
		items = append(items, dto.PackagingDTO{ID: p.ID, Code: p.Code, Name: p.Name})
	}
	return items, nil
}
