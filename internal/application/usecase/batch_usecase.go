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

// BatchUseCase casos de uso CRUD para lotes de stock. La cantidad actual nunca se
// edita por aquí: solo los movimientos la mutan.
type BatchUseCase struct {
	batchRepo    repository.StockBatchRepository
	productRepo  repository.ProductRepository
	locationRepo repository.StorageLocationRepository
}

// NewBatchUseCase construye el caso de uso.
func NewBatchUseCase(
	batchRepo repository.StockBatchRepository,
	productRepo repository.ProductRepository,
	locationRepo repository.StorageLocationRepository,
) *BatchUseCase {
	return &BatchUseCase{batchRepo: batchRepo, productRepo: productRepo, locationRepo: locationRepo}
}

// Create da de alta un lote con cantidad inicial >= 0. El código de lote es único
// por compañía, no global.
func (uc *BatchUseCase) Create(ctx context.Context, companyID string, in dto.CreateBatchRequest) (*dto.StockBatchDTO, error) {
	if in.QuantityInitial < 0 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.batchRepo.GetByCode(ctx, companyID, in.BatchCode)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	location, err := uc.locationRepo.GetByID(ctx, in.StorageLocationID)
	if err != nil {
		return nil, err
	}
	if location == nil || location.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}

	now := time.Now().UTC()
	batch := &entity.StockBatch{
		ID:                 uuid.New().String(),
		CompanyID:          companyID,
		BatchCode:          in.BatchCode,
		ProductID:          in.ProductID,
		StorageLocationID:  in.StorageLocationID,
		ProductState:       in.ProductState,
		ProductSizeID:      in.ProductSizeID,
		PackagingCatalogID: in.PackagingCatalogID,
		CycleNumber:        1,
		CycleStartDate:     now,
		QuantityInitial:    in.QuantityInitial,
		QuantityCurrent:    in.QuantityInitial,
		Status:             entity.BatchStatusActive,
		Notes:              in.Notes,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if batch.QuantityCurrent == 0 {
		batch.Status = entity.BatchStatusDepleted
	}
	if err := uc.batchRepo.Create(ctx, batch); err != nil {
		return nil, err
	}
	resp := dto.BatchFromEntity(batch)
	return &resp, nil
}

// GetByID obtiene un lote de la compañía.
func (uc *BatchUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.StockBatchDTO, error) {
	batch, err := uc.batchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if batch == nil || batch.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	resp := dto.BatchFromEntity(batch)
	return &resp, nil
}

// List lista lotes de la compañía con filtros y paginación.
func (uc *BatchUseCase) List(ctx context.Context, companyID string, filter repository.BatchFilter, page dto.PageRequest) (*dto.BatchListResponse, error) {
	page.DefaultPage()
	list, total, err := uc.batchRepo.List(ctx, companyID, filter, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockBatchDTO, 0, len(list))
	for _, b := range list {
		items = append(items, dto.BatchFromEntity(b))
	}
	return &dto.BatchListResponse{
		Batches: items,
		Page:    dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Update modifica configuración, estado y notas. Cantidades y ciclo no se tocan aquí.
func (uc *BatchUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateBatchRequest) (*dto.StockBatchDTO, error) {
	batch, err := uc.batchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if batch == nil || batch.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	if in.StorageLocationID != nil {
		location, err := uc.locationRepo.GetByID(ctx, *in.StorageLocationID)
		if err != nil {
			return nil, err
		}
		if location == nil || location.CompanyID != companyID {
			return nil, domain.ErrNotFound
		}
		batch.StorageLocationID = *in.StorageLocationID
	}
	if in.ProductState != nil {
		batch.ProductState = *in.ProductState
	}
	if in.ProductSizeID != nil {
		batch.ProductSizeID = in.ProductSizeID
	}
	if in.PackagingCatalogID != nil {
		batch.PackagingCatalogID = in.PackagingCatalogID
	}
	if in.Status != nil {
		batch.Status = *in.Status
	}
	if in.Notes != nil {
		batch.Notes = *in.Notes
	}
	batch.UpdatedAt = time.Now().UTC()
	if err := uc.batchRepo.Update(ctx, batch); err != nil {
		return nil, err
	}
	resp := dto.BatchFromEntity(batch)
	return &resp, nil
}

// CloseCycle cierra el ciclo del lote: a partir de aquí ninguna operación lo admite.
func (uc *BatchUseCase) CloseCycle(ctx context.Context, companyID, id string) (*dto.StockBatchDTO, error) {
	batch, err := uc.batchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if batch == nil || batch.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	if !batch.IsActive() {
		return nil, domain.ErrConflict
	}
	now := time.Now().UTC()
	batch.CycleEndDate = &now
	batch.UpdatedAt = now
	if err := uc.batchRepo.Update(ctx, batch); err != nil {
		return nil, err
	}
	resp := dto.BatchFromEntity(batch)
	return &resp, nil
}

// Delete borra lógicamente el lote; el ledger sigue referenciándolo.
func (uc *BatchUseCase) Delete(ctx context.Context, companyID, id string) error {
	batch, err := uc.batchRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if batch == nil || batch.CompanyID != companyID {
		return domain.ErrNotFound
	}
	return uc.batchRepo.SoftDelete(ctx, id)
}
