package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fortytwo/demeter-api/internal/domain"
	"github.com/fortytwo/demeter-api/internal/domain/entity"
	"github.com/fortytwo/demeter-api/internal/domain/repository"
)

var _ repository.StockBatchRepository = (*StockBatchRepo)(nil)

const batchColumns = `id, company_id, batch_code, product_id, storage_location_id, product_state,
		product_size_id, packaging_catalog_id, cycle_number, cycle_start_date, cycle_end_date,
		quantity_initial, quantity_current, status, notes, created_at, updated_at`

// StockBatchRepo implementación de StockBatchRepository sobre PostgreSQL (usable con pool o tx).
type StockBatchRepo struct {
	q Querier
}

// NewStockBatchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockBatchRepository(q Querier) *StockBatchRepo {
	return &StockBatchRepo{q: q}
}

// Create persiste un lote nuevo. La cantidad inicial y la actual parten iguales.
func (r *StockBatchRepo) Create(ctx context.Context, b *entity.StockBatch) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_batches (` + batchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, now(), now())`
	_, err := r.q.Exec(ctx, query,
		b.ID, b.CompanyID, b.BatchCode, b.ProductID, b.StorageLocationID, b.ProductState,
		b.ProductSizeID, b.PackagingCatalogID, b.CycleNumber, b.CycleStartDate, b.CycleEndDate,
		b.QuantityInitial, b.QuantityCurrent, b.Status, nullable(b.Notes),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create stock batch: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID. Devuelve nil, nil si no existe (no borrado).
func (r *StockBatchRepo) GetByID(ctx context.Context, id string) (*entity.StockBatch, error) {
	query := `SELECT ` + batchColumns + ` FROM stock_batches WHERE id = $1 AND deleted_at IS NULL`
	return r.scanOne(r.q.QueryRow(ctx, query, id))
}

// GetByCode obtiene un lote por su código (único por empresa, no globalmente).
func (r *StockBatchRepo) GetByCode(ctx context.Context, companyID, batchCode string) (*entity.StockBatch, error) {
	query := `SELECT ` + batchColumns + ` FROM stock_batches
		WHERE company_id = $1 AND batch_code = $2 AND deleted_at IS NULL`
	return r.scanOne(r.q.QueryRow(ctx, query, companyID, batchCode))
}

// List lista lotes de una empresa con filtros opcionales, ordenados por creación descendente.
func (r *StockBatchRepo) List(ctx context.Context, companyID string, f repository.BatchFilter, limit, offset int) ([]*entity.StockBatch, int, error) {
	where := " WHERE company_id = $1 AND deleted_at IS NULL"
	args := []any{companyID}
	pos := 2
	if f.ProductID != "" {
		where += fmt.Sprintf(" AND product_id = $%d", pos)
		args = append(args, f.ProductID)
		pos++
	}
	if f.StorageLocationID != "" {
		where += fmt.Sprintf(" AND storage_location_id = $%d", pos)
		args = append(args, f.StorageLocationID)
		pos++
	}
	if f.Status != "" {
		where += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, f.Status)
		pos++
	}
	if f.ActiveOnly {
		where += " AND cycle_end_date IS NULL"
	}

	var total int
	if err := r.q.QueryRow(ctx, "SELECT count(*) FROM stock_batches"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count stock batches: %w", err)
	}

	query := "SELECT " + batchColumns + " FROM stock_batches" + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list stock batches: %w", err)
	}
	defer rows.Close()
	list, err := r.scanAll(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListByProduct lista los lotes (no borrados) de un producto.
func (r *StockBatchRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.StockBatch, error) {
	query := `SELECT ` + batchColumns + ` FROM stock_batches
		WHERE product_id = $1 AND deleted_at IS NULL ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list batches by product: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

// ListByLocation lista los lotes de una ubicación; con activeOnly solo ciclos abiertos.
func (r *StockBatchRepo) ListByLocation(ctx context.Context, locationID string, activeOnly bool) ([]*entity.StockBatch, error) {
	query := `SELECT ` + batchColumns + ` FROM stock_batches
		WHERE storage_location_id = $1 AND deleted_at IS NULL`
	if activeOnly {
		query += " AND cycle_end_date IS NULL"
	}
	query += " ORDER BY created_at DESC"
	rows, err := r.q.Query(ctx, query, locationID)
	if err != nil {
		return nil, fmt.Errorf("list batches by location: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

// Update actualiza configuración y metadatos del lote. La cantidad actual NO se
// toca aquí: solo ApplyDelta (dentro de una operación) puede mutarla.
func (r *StockBatchRepo) Update(ctx context.Context, b *entity.StockBatch) error {
	query := `
		UPDATE stock_batches
		SET storage_location_id = $2, product_state = $3, product_size_id = $4,
		    packaging_catalog_id = $5, status = $6, notes = $7,
		    cycle_end_date = $8, updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL`
	tag, err := r.q.Exec(ctx, query,
		b.ID, b.StorageLocationID, b.ProductState, b.ProductSizeID,
		b.PackagingCatalogID, b.Status, nullable(b.Notes), b.CycleEndDate,
	)
	if err != nil {
		return fmt.Errorf("update stock batch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDelete marca el lote como borrado sin eliminar la fila (el ledger lo sigue referenciando).
func (r *StockBatchRepo) SoftDelete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE stock_batches SET deleted_at = now(), updated_at = now() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("delete stock batch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ApplyDelta aplica el delta signado como un único update condicional: el chequeo
// de no-negatividad y la escritura ocurren en la misma sentencia contra el valor
// persistido, de modo que dos egresos concurrentes no pueden dejar el lote en
// negativo. Si la cantidad llega exactamente a cero el estado pasa a DEPLETED en
// la misma sentencia.
func (r *StockBatchRepo) ApplyDelta(ctx context.Context, id string, delta int) (int, error) {
	if delta == 0 {
		return 0, domain.ErrZeroQuantity
	}
	query := `
		UPDATE stock_batches
		SET quantity_current = quantity_current + $2,
		    status = CASE
		        WHEN quantity_current + $2 = 0 THEN 'DEPLETED'
		        WHEN status = 'DEPLETED' THEN 'ACTIVE'
		        ELSE status
		    END,
		    updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL AND quantity_current + $2 >= 0
		RETURNING quantity_current`
	var newQuantity int
	err := r.q.QueryRow(ctx, query, id, delta).Scan(&newQuantity)
	if err == nil {
		return newQuantity, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("apply delta: %w", err)
	}
	// Cero filas: distinguir lote inexistente de stock insuficiente.
	var exists bool
	if err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM stock_batches WHERE id = $1 AND deleted_at IS NULL)`, id,
	).Scan(&exists); err != nil {
		return 0, fmt.Errorf("apply delta existence check: %w", err)
	}
	if !exists {
		return 0, domain.ErrNotFound
	}
	return 0, domain.ErrInsufficientStock
}

func (r *StockBatchRepo) scanOne(row pgx.Row) (*entity.StockBatch, error) {
	var b entity.StockBatch
	var notes *string
	err := row.Scan(
		&b.ID, &b.CompanyID, &b.BatchCode, &b.ProductID, &b.StorageLocationID, &b.ProductState,
		&b.ProductSizeID, &b.PackagingCatalogID, &b.CycleNumber, &b.CycleStartDate, &b.CycleEndDate,
		&b.QuantityInitial, &b.QuantityCurrent, &b.Status, &notes, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock batch: %w", err)
	}
	if notes != nil {
		b.Notes = *notes
	}
	return &b, nil
}

func (r *StockBatchRepo) scanAll(rows pgx.Rows) ([]*entity.StockBatch, error) {
	var list []*entity.StockBatch
	for rows.Next() {
		var b entity.StockBatch
		var notes *string
		if err := rows.Scan(
			&b.ID, &b.CompanyID, &b.BatchCode, &b.ProductID, &b.StorageLocationID, &b.ProductState,
			&b.ProductSizeID, &b.PackagingCatalogID, &b.CycleNumber, &b.CycleStartDate, &b.CycleEndDate,
			&b.QuantityInitial, &b.QuantityCurrent, &b.Status, &notes, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock batch: %w", err)
		}
		if notes != nil {
			b.Notes = *notes
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}
