package stock_test

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fortytwo/demeter-api/internal/domain"
	"github.com/fortytwo/demeter-api/internal/domain/entity"
	"github.com/fortytwo/demeter-api/internal/domain/repository"
)

// Fakes en memoria que replican el contrato de los repositorios Postgres,
// incluida la semántica del update condicional de ApplyDelta.

type fakeBatchRepo struct {
	batches map[string]*entity.StockBatch
}

func newFakeBatchRepo(batches ...*entity.StockBatch) *fakeBatchRepo {
	m := make(map[string]*entity.StockBatch, len(batches))
	for _, b := range batches {
		m[b.ID] = b
	}
	return &fakeBatchRepo{batches: m}
}

func (r *fakeBatchRepo) Create(_ context.Context, b *entity.StockBatch) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	r.batches[b.ID] = b
	return nil
}

func (r *fakeBatchRepo) GetByID(_ context.Context, id string) (*entity.StockBatch, error) {
	return r.batches[id], nil
}

func (r *fakeBatchRepo) GetByCode(_ context.Context, companyID, code string) (*entity.StockBatch, error) {
	for _, b := range r.batches {
		if b.CompanyID == companyID && b.BatchCode == code {
			return b, nil
		}
	}
	return nil, nil
}

func (r *fakeBatchRepo) List(_ context.Context, companyID string, _ repository.BatchFilter, _, _ int) ([]*entity.StockBatch, int, error) {
	var out []*entity.StockBatch
	for _, b := range r.batches {
		if b.CompanyID == companyID {
			out = append(out, b)
		}
	}
	return out, len(out), nil
}

func (r *fakeBatchRepo) ListByProduct(_ context.Context, productID string) ([]*entity.StockBatch, error) {
	var out []*entity.StockBatch
	for _, b := range r.batches {
		if b.ProductID == productID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBatchRepo) ListByLocation(_ context.Context, locationID string, _ bool) ([]*entity.StockBatch, error) {
	var out []*entity.StockBatch
	for _, b := range r.batches {
		if b.StorageLocationID == locationID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBatchRepo) Update(_ context.Context, b *entity.StockBatch) error {
	if _, ok := r.batches[b.ID]; !ok {
		return domain.ErrNotFound
	}
	r.batches[b.ID] = b
	return nil
}

func (r *fakeBatchRepo) SoftDelete(_ context.Context, id string) error {
	if _, ok := r.batches[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.batches, id)
	return nil
}

func (r *fakeBatchRepo) ApplyDelta(_ context.Context, id string, delta int) (int, error) {
	if delta == 0 {
		return 0, domain.ErrZeroQuantity
	}
	b, ok := r.batches[id]
	if !ok {
		return 0, domain.ErrNotFound
	}
	if b.QuantityCurrent+delta < 0 {
		return 0, domain.ErrInsufficientStock
	}
	b.QuantityCurrent += delta
	switch {
	case b.QuantityCurrent == 0:
		b.Status = entity.BatchStatusDepleted
	case b.Status == entity.BatchStatusDepleted:
		b.Status = entity.BatchStatusActive
	}
	return b.QuantityCurrent, nil
}

type fakeMovementRepo struct {
	movements []*entity.StockMovement
}

func (r *fakeMovementRepo) Create(_ context.Context, m *entity.StockMovement, lines []*entity.StockBatchMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	m.CreatedAt = now
	for _, l := range lines {
		if l.ID == "" {
			l.ID = uuid.New().String()
		}
		l.MovementID = m.ID
		l.CreatedAt = now
	}
	m.BatchMovements = lines
	r.movements = append(r.movements, m)
	return nil
}

func (r *fakeMovementRepo) GetByID(_ context.Context, id string) (*entity.StockMovement, error) {
	for _, m := range r.movements {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (r *fakeMovementRepo) List(_ context.Context, companyID string, filter repository.MovementFilter, limit, offset int) ([]*entity.StockMovement, int, error) {
	var out []*entity.StockMovement
	for _, m := range r.movements {
		if m.CompanyID != companyID {
			continue
		}
		if filter.MovementType != "" && m.MovementType != filter.MovementType {
			continue
		}
		out = append(out, m)
	}
	total := len(out)
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, total, nil
}

func (r *fakeMovementRepo) ListByType(_ context.Context, companyID, movementType string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.movements {
		if m.CompanyID == companyID && m.MovementType == movementType {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) ListByDateRange(_ context.Context, companyID string, from, to time.Time) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.movements {
		if m.CompanyID == companyID && !m.PerformedAt.Before(from) && !m.PerformedAt.After(to) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) ListByReference(_ context.Context, companyID, referenceID string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.movements {
		if m.CompanyID == companyID && m.ReferenceID != nil && *m.ReferenceID == referenceID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) ListByBatch(_ context.Context, batchID string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.movements {
		for _, l := range m.BatchMovements {
			if l.BatchID == batchID {
				out = append(out, m)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) ListForHistory(ctx context.Context, companyID string, from, to time.Time) ([]*entity.StockMovement, error) {
	return r.ListByDateRange(ctx, companyID, from, to)
}

func (r *fakeMovementRepo) NextMovementOrder(_ context.Context, batchID string) (int, error) {
	count := 0
	for _, m := range r.movements {
		for _, l := range m.BatchMovements {
			if l.BatchID == batchID {
				count++
			}
		}
	}
	return count + 1, nil
}

// fakeTxRunner ejecuta el callback directamente: los fakes no transaccionan, pero
// los tests de error verifican que nada quede a medias porque las operaciones
// fallan antes de mutar.
type fakeTxRunner struct {
	batchRepo *fakeBatchRepo
	movRepo   *fakeMovementRepo
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	batchRepo repository.StockBatchRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	return fn(r.batchRepo, r.movRepo)
}
