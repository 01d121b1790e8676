package repository

import (
	"context"

	"github.com/fortytwo/demeter-api/internal/domain/entity"
)

// StorageLocationRepository define el puerto de persistencia para ubicaciones.
type StorageLocationRepository interface {
	Create(ctx context.Context, location *entity.StorageLocation) error
	GetByID(ctx context.Context, id string) (*entity.StorageLocation, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.StorageLocation, error)
	Update(ctx context.Context, location *entity.StorageLocation) error
}
