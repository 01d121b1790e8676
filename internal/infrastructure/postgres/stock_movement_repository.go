package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/fortytwo/demeter-api/internal/domain"
	"github.com/fortytwo/demeter-api/internal/domain/entity"
	"github.com/fortytwo/demeter-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = `m.id, m.company_id, m.movement_type, m.quantity, m.is_inbound, m.user_id,
		m.source_type, m.reason_description, m.processing_session_id, m.parent_movement_id,
		m.reference_id, m.unit_price, m.total_price, m.performed_at, m.created_at`

// StockMovementRepo implementación del ledger sobre PostgreSQL (usable con pool o tx).
// Solo inserta y consulta: el ledger no tiene UPDATE ni DELETE.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste el movimiento y sus líneas en la transacción del caller.
// Invariante del ledger: la suma signada de las líneas debe coincidir con la
// cantidad del movimiento; un descuadre se rechaza antes de tocar la base.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement, lines []*entity.StockBatchMovement) error {
	if len(lines) > 0 {
		sum := decimal.Zero
		for _, line := range lines {
			sum = sum.Add(line.Quantity)
		}
		if !sum.Equal(decimal.NewFromInt(int64(m.Quantity))) {
			return domain.ErrLedgerImbalance
		}
	}
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	query := `
		INSERT INTO stock_movements (id, company_id, movement_type, quantity, is_inbound, user_id,
			source_type, reason_description, processing_session_id, parent_movement_id,
			reference_id, unit_price, total_price, performed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.CompanyID, m.MovementType, m.Quantity, m.IsInbound, m.UserID,
		m.SourceType, nullable(m.Reason), m.ProcessingSessionID, m.ParentMovementID,
		m.ReferenceID, m.UnitPrice, m.TotalPrice, m.PerformedAt, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}

	for _, line := range lines {
		if line.ID == "" {
			line.ID = uuid.New().String()
		}
		line.MovementID = m.ID
		line.CreatedAt = m.CreatedAt
		_, err := r.q.Exec(ctx, `
			INSERT INTO stock_batch_movements (id, movement_id, batch_id, quantity, movement_order, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			line.ID, line.MovementID, line.BatchID, line.Quantity, line.MovementOrder, line.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("create batch movement line: %w", err)
		}
	}
	m.BatchMovements = lines
	return nil
}

// GetByID obtiene un movimiento con sus líneas. Devuelve nil, nil si no existe.
func (r *StockMovementRepo) GetByID(ctx context.Context, id string) (*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements m WHERE m.id = $1`
	var m entity.StockMovement
	var reason *string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.CompanyID, &m.MovementType, &m.Quantity, &m.IsInbound, &m.UserID,
		&m.SourceType, &reason, &m.ProcessingSessionID, &m.ParentMovementID,
		&m.ReferenceID, &m.UnitPrice, &m.TotalPrice, &m.PerformedAt, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	if reason != nil {
		m.Reason = *reason
	}
	if err := r.loadLines(ctx, []*entity.StockMovement{&m}); err != nil {
		return nil, err
	}
	return &m, nil
}

// List lista el ledger paginado con filtros opcionales, ordenado por performed_at descendente.
// El filtro por lote se resuelve a través de las líneas.
func (r *StockMovementRepo) List(ctx context.Context, companyID string, f repository.MovementFilter, limit, offset int) ([]*entity.StockMovement, int, error) {
	where := " WHERE m.company_id = $1"
	args := []any{companyID}
	pos := 2
	if f.MovementType != "" {
		where += fmt.Sprintf(" AND m.movement_type = $%d", pos)
		args = append(args, f.MovementType)
		pos++
	}
	if f.StartDate != nil {
		where += fmt.Sprintf(" AND m.performed_at >= $%d", pos)
		args = append(args, *f.StartDate)
		pos++
	}
	if f.EndDate != nil {
		where += fmt.Sprintf(" AND m.performed_at <= $%d", pos)
		args = append(args, *f.EndDate)
		pos++
	}
	if f.BatchID != "" {
		where += fmt.Sprintf(" AND EXISTS (SELECT 1 FROM stock_batch_movements bm WHERE bm.movement_id = m.id AND bm.batch_id = $%d)", pos)
		args = append(args, f.BatchID)
		pos++
	}

	var total int
	if err := r.q.QueryRow(ctx, "SELECT count(*) FROM stock_movements m"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count movements: %w", err)
	}

	query := "SELECT " + movementColumns + " FROM stock_movements m" + where +
		fmt.Sprintf(" ORDER BY m.performed_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	list, err := r.queryMovements(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListByType proyección del ledger por tipo de movimiento.
func (r *StockMovementRepo) ListByType(ctx context.Context, companyID, movementType string) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements m
		WHERE m.company_id = $1 AND m.movement_type = $2 ORDER BY m.performed_at DESC`
	return r.queryMovements(ctx, query, companyID, movementType)
}

// ListByDateRange proyección del ledger por rango de fechas.
func (r *StockMovementRepo) ListByDateRange(ctx context.Context, companyID string, from, to time.Time) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements m
		WHERE m.company_id = $1 AND m.performed_at >= $2 AND m.performed_at <= $3
		ORDER BY m.performed_at DESC`
	return r.queryMovements(ctx, query, companyID, from, to)
}

// ListByReference proyección del ledger por referencia externa (venta, sesión, etc.).
func (r *StockMovementRepo) ListByReference(ctx context.Context, companyID, referenceID string) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements m
		WHERE m.company_id = $1 AND m.reference_id = $2 ORDER BY m.performed_at DESC`
	return r.queryMovements(ctx, query, companyID, referenceID)
}

// ListByBatch movimientos que tocaron un lote, vía sus líneas.
func (r *StockMovementRepo) ListByBatch(ctx context.Context, batchID string) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements m
		JOIN stock_batch_movements bm ON bm.movement_id = m.id
		WHERE bm.batch_id = $1 ORDER BY m.performed_at DESC`
	return r.queryMovements(ctx, query, batchID)
}

// ListForHistory movimientos del rango en orden ascendente, para la serie diaria.
func (r *StockMovementRepo) ListForHistory(ctx context.Context, companyID string, from, to time.Time) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements m
		WHERE m.company_id = $1 AND m.performed_at >= $2 AND m.performed_at <= $3
		ORDER BY m.performed_at ASC`
	return r.queryMovements(ctx, query, companyID, from, to)
}

// NextMovementOrder siguiente secuencia de líneas para un lote.
func (r *StockMovementRepo) NextMovementOrder(ctx context.Context, batchID string) (int, error) {
	var count int
	err := r.q.QueryRow(ctx,
		`SELECT count(*) FROM stock_batch_movements WHERE batch_id = $1`, batchID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("next movement order: %w", err)
	}
	return count + 1, nil
}

func (r *StockMovementRepo) queryMovements(ctx context.Context, query string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		var reason *string
		if err := rows.Scan(
			&m.ID, &m.CompanyID, &m.MovementType, &m.Quantity, &m.IsInbound, &m.UserID,
			&m.SourceType, &reason, &m.ProcessingSessionID, &m.ParentMovementID,
			&m.ReferenceID, &m.UnitPrice, &m.TotalPrice, &m.PerformedAt, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if reason != nil {
			m.Reason = *reason
		}
		list = append(list, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadLines(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// loadLines carga las líneas de un conjunto de movimientos en una sola consulta.
func (r *StockMovementRepo) loadLines(ctx context.Context, movements []*entity.StockMovement) error {
	if len(movements) == 0 {
		return nil
	}
	ids := make([]string, len(movements))
	byID := make(map[string]*entity.StockMovement, len(movements))
	for i, m := range movements {
		ids[i] = m.ID
		byID[m.ID] = m
	}

	rows, err := r.q.Query(ctx, `
		SELECT bm.id, bm.movement_id, bm.batch_id, b.batch_code, bm.quantity, bm.movement_order, bm.created_at
		FROM stock_batch_movements bm
		JOIN stock_batches b ON b.id = bm.batch_id
		WHERE bm.movement_id = ANY($1)
		ORDER BY bm.created_at ASC`, ids)
	if err != nil {
		return fmt.Errorf("load batch movement lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var line entity.StockBatchMovement
		if err := rows.Scan(&line.ID, &line.MovementID, &line.BatchID, &line.BatchCode,
			&line.Quantity, &line.MovementOrder, &line.CreatedAt); err != nil {
			return fmt.Errorf("scan batch movement line: %w", err)
		}
		if m, ok := byID[line.MovementID]; ok {
			m.BatchMovements = append(m.BatchMovements, &line)
		}
	}
	return rows.Err()
}
