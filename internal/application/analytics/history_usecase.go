// Package analytics contiene las proyecciones de lectura sobre el ledger de
// movimientos. No muta nada: recalcula por consulta, sin caché incremental.
package analytics

import (
	"context"
	"sort"
	"time"

	"github.com/fortytwo/demeter-api/internal/application/dto"
	"github.com/fortytwo/demeter-api/internal/domain"
	"github.com/fortytwo/demeter-api/internal/domain/entity"
	"github.com/fortytwo/demeter-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// HistoryUseCase proyecta el ledger en series diarias agregadas.
type HistoryUseCase struct {
	movRepo   repository.StockMovementRepository
	batchRepo repository.StockBatchRepository
}

// NewHistoryUseCase construye el caso de uso.
func NewHistoryUseCase(movRepo repository.StockMovementRepository, batchRepo repository.StockBatchRepository) *HistoryUseCase {
	return &HistoryUseCase{movRepo: movRepo, batchRepo: batchRepo}
}

// DailySeries replays los movimientos de [from, to] en orden ascendente y los
// agrupa por fecha calendario UTC. Ingresos suman, egresos restan, el AJUSTE
// aporta según su signo y las transferencias aportan cero: mueven cantidad entre
// lotes, no hacia dentro ni fuera del sistema.
func (uc *HistoryUseCase) DailySeries(ctx context.Context, companyID string, from, to time.Time) (*dto.StockHistoryResponse, error) {
	if to.Before(from) {
		return nil, domain.ErrInvalidInput
	}
	movs, err := uc.movRepo.ListForHistory(ctx, companyID, from, to)
	if err != nil {
		return nil, err
	}

	buckets := map[string]*dto.StockHistoryPoint{}
	for _, m := range movs {
		if entity.IsTransferType(m.MovementType) {
			continue
		}
		inbound, outbound := contribution(m)
		if inbound == 0 && outbound == 0 {
			continue
		}
		key := m.PerformedAt.UTC().Format(dateLayout)
		p, ok := buckets[key]
		if !ok {
			p = &dto.StockHistoryPoint{Date: key}
			buckets[key] = p
		}
		p.Inbound += inbound
		p.Outbound += outbound
		p.NetChange += inbound - outbound
	}

	return &dto.StockHistoryResponse{
		From:   from.UTC().Format(dateLayout),
		To:     to.UTC().Format(dateLayout),
		Points: sortedPoints(buckets),
	}, nil
}

// BatchDailySeries proyecta la serie diaria de un lote concreto a partir de sus
// líneas del ledger. Aquí las patas de transferencia sí cuentan.
func (uc *HistoryUseCase) BatchDailySeries(ctx context.Context, companyID, batchID string, from, to time.Time) (*dto.BatchHistoryResponse, error) {
	if to.Before(from) {
		return nil, domain.ErrInvalidInput
	}
	batch, err := uc.batchRepo.GetByID(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if batch == nil || batch.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	movs, err := uc.movRepo.ListByBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}

	buckets := map[string]*dto.StockHistoryPoint{}
	for _, m := range movs {
		at := m.PerformedAt.UTC()
		if at.Before(from) || at.After(to) {
			continue
		}
		key := at.Format(dateLayout)
		for _, line := range m.BatchMovements {
			if line.BatchID != batchID {
				continue
			}
			delta := int(line.Quantity.IntPart())
			if delta == 0 {
				continue
			}
			p, ok := buckets[key]
			if !ok {
				p = &dto.StockHistoryPoint{Date: key}
				buckets[key] = p
			}
			if delta > 0 {
				p.Inbound += delta
			} else {
				p.Outbound += -delta
			}
			p.NetChange += delta
		}
	}

	return &dto.BatchHistoryResponse{BatchID: batchID, Points: sortedPoints(buckets)}, nil
}

// contribution descompone un movimiento en sus aportes inbound/outbound.
// Las cantidades se toman en valor absoluto: el signo lo aporta el tipo, salvo
// el AJUSTE, que se clasifica por el signo de su cantidad.
func contribution(m *entity.StockMovement) (inbound, outbound int) {
	q := m.Quantity
	if q < 0 {
		q = -q
	}
	switch {
	case entity.IsInboundType(m.MovementType):
		return q, 0
	case entity.IsOutboundType(m.MovementType):
		return 0, q
	case m.MovementType == entity.MovementTypeAJUSTE:
		if m.Quantity > 0 {
			return q, 0
		}
		return 0, q
	}
	return 0, 0
}

func sortedPoints(buckets map[string]*dto.StockHistoryPoint) []dto.StockHistoryPoint {
	points := make([]dto.StockHistoryPoint, 0, len(buckets))
	for _, p := range buckets {
		points = append(points, *p)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points
}
