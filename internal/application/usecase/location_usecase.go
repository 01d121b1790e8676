package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fortytwo/demeter-api/internal/application/dto"
	"github.com/fortytwo/demeter-api/internal/domain"
	"github.com/fortytwo/demeter-api/internal/domain/entity"
	"github.com/fortytwo/demeter-api/internal/domain/repository"
)

// LocationUseCase casos de uso para ubicaciones físicas.
type LocationUseCase struct {
	repo repository.StorageLocationRepository
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(repo repository.StorageLocationRepository) *LocationUseCase {
	return &LocationUseCase{repo: repo}
}

// Create crea una ubicación.
func (uc *LocationUseCase) Create(ctx context.Context, companyID string, in dto.CreateLocationRequest) (*dto.LocationDTO, error) {
	now := time.Now().UTC()
	location := &entity.StorageLocation{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Code:      in.Code,
		Name:      in.Name,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, location); err != nil {
		return nil, err
	}
	resp := dto.LocationFromEntity(location)
	return &resp, nil
}

// GetByID obtiene una ubicación de la compañía.
func (uc *LocationUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.LocationDTO, error) {
	location, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if location == nil || location.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	resp := dto.LocationFromEntity(location)
	return &resp, nil
}

// List lista las ubicaciones de la compañía.
func (uc *LocationUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) ([]dto.LocationDTO, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LocationDTO, 0, len(list))
	for _, l := range list {
		items = append(items, dto.LocationFromEntity(l))
	}
	return items, nil
}
