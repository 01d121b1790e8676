package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fortytwo/demeter-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Requests de operaciones de stock
// ──────────────────────────────────────────────────────────────────────────────

// MuerteRequest body para POST /stock/movements/muerte (egreso).
type MuerteRequest struct {
	BatchID           string `json:"batchId" validate:"required,uuid4"`
	Quantity          int    `json:"quantity" validate:"required,gt=0"`
	ReasonDescription string `json:"reasonDescription,omitempty" validate:"max=500"`
}

// PlantadoRequest body para POST /stock/movements/plantado (ingreso).
type PlantadoRequest struct {
	BatchID           string `json:"batchId" validate:"required,uuid4"`
	Quantity          int    `json:"quantity" validate:"required,gt=0"`
	ReasonDescription string `json:"reasonDescription,omitempty" validate:"max=500"`
}

// AjusteRequest body para POST /stock/movements/ajuste.
// Quantity puede ser positiva o negativa, pero no cero (se valida en el caso de uso).
type AjusteRequest struct {
	BatchID           string `json:"batchId" validate:"required,uuid4"`
	Quantity          int    `json:"quantity" validate:"required"`
	ReasonDescription string `json:"reasonDescription,omitempty" validate:"max=500"`
}

// DesplazamientoRequest body para POST /stock/movements/desplazamiento.
// El backend infiere el tipo de operación comparando la configuración de los lotes.
type DesplazamientoRequest struct {
	SourceBatchID      string `json:"sourceBatchId" validate:"required,uuid4"`
	DestinationBatchID string `json:"destinationBatchId" validate:"required,uuid4"`
	Quantity           int    `json:"quantity" validate:"required,gt=0"`
	ReasonDescription  string `json:"reasonDescription,omitempty" validate:"max=500"`
}

// CreateStockMovementRequest body para POST /stock-movements: alta genérica de un
// movimiento multi-línea (productores externos: pipeline ML, ventas). Los tipos de
// transferencia no se aceptan aquí; esas patas nacen del desplazamiento.
type CreateStockMovementRequest struct {
	MovementType        string           `json:"movementType" validate:"required"`
	SourceType          string           `json:"sourceType" validate:"required,oneof=MANUAL IA VENTA"`
	ReasonDescription   string           `json:"reasonDescription,omitempty" validate:"max=500"`
	ProcessingSessionID *string          `json:"processingSessionId,omitempty"`
	ReferenceID         *string          `json:"referenceId,omitempty"`
	UnitPrice           *decimal.Decimal `json:"unitPrice,omitempty"`
	PerformedAt         *time.Time       `json:"performedAt,omitempty"`
	BatchQuantities     []BatchQuantity  `json:"batchQuantities" validate:"required,min=1,dive"`
}

// BatchQuantity una línea del movimiento genérico: lote y cantidad (siempre positiva;
// el signo lo aporta el tipo de movimiento).
type BatchQuantity struct {
	BatchID  string `json:"batchId" validate:"required,uuid4"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

// ──────────────────────────────────────────────────────────────────────────────
// Responses
// ──────────────────────────────────────────────────────────────────────────────

// BatchMovementDetailDTO línea del ledger dentro de un movimiento.
type BatchMovementDetailDTO struct {
	ID        string          `json:"id"`
	BatchID   string          `json:"batchId"`
	BatchCode string          `json:"batchCode"`
	Quantity  decimal.Decimal `json:"quantity"`
	CreatedAt time.Time       `json:"createdAt"`
}

// StockMovementDTO representación de un movimiento con sus líneas decompuestas,
// para trazabilidad exacta desde la respuesta hasta las filas del ledger.
type StockMovementDTO struct {
	ID                  string                   `json:"id"`
	MovementType        string                   `json:"movementType"`
	Quantity            int                      `json:"quantity"`
	IsInbound           bool                     `json:"isInbound"`
	UserID              string                   `json:"userId"`
	SourceType          string                   `json:"sourceType"`
	ReasonDescription   string                   `json:"reasonDescription,omitempty"`
	ProcessingSessionID *string                  `json:"processingSessionId,omitempty"`
	ParentMovementID    *string                  `json:"parentMovementId,omitempty"`
	ReferenceID         *string                  `json:"referenceId,omitempty"`
	UnitPrice           *decimal.Decimal         `json:"unitPrice,omitempty"`
	TotalPrice          *decimal.Decimal         `json:"totalPrice,omitempty"`
	PerformedAt         time.Time                `json:"performedAt"`
	BatchMovements      []BatchMovementDetailDTO `json:"batchMovements"`
	CreatedAt           time.Time                `json:"createdAt"`
}

// MovementFromEntity construye el DTO a partir de la entidad del ledger.
func MovementFromEntity(m *entity.StockMovement) StockMovementDTO {
	details := make([]BatchMovementDetailDTO, 0, len(m.BatchMovements))
	for _, bm := range m.BatchMovements {
		details = append(details, BatchMovementDetailDTO{
			ID:        bm.ID,
			BatchID:   bm.BatchID,
			BatchCode: bm.BatchCode,
			Quantity:  bm.Quantity,
			CreatedAt: bm.CreatedAt,
		})
	}
	return StockMovementDTO{
		ID:                  m.ID,
		MovementType:        m.MovementType,
		Quantity:            m.Quantity,
		IsInbound:           m.IsInbound,
		UserID:              m.UserID,
		SourceType:          m.SourceType,
		ReasonDescription:   m.Reason,
		ProcessingSessionID: m.ProcessingSessionID,
		ParentMovementID:    m.ParentMovementID,
		ReferenceID:         m.ReferenceID,
		UnitPrice:           m.UnitPrice,
		TotalPrice:          m.TotalPrice,
		PerformedAt:         m.PerformedAt,
		BatchMovements:      details,
		CreatedAt:           m.CreatedAt,
	}
}

// MuerteResponse resultado de registrar una muerte.
type MuerteResponse struct {
	Movement        StockMovementDTO `json:"movement"`
	BatchID         string           `json:"batchId"`
	QuantityRemoved int              `json:"quantityRemoved"`
	NewQuantity     int              `json:"newQuantity"`
}

// PlantadoResponse resultado de registrar una plantación.
type PlantadoResponse struct {
	Movement    StockMovementDTO `json:"movement"`
	BatchID     string           `json:"batchId"`
	BatchCode   string           `json:"batchCode"`
	LocationID  string           `json:"locationId"`
	NewQuantity int              `json:"newQuantity"`
}

// AjusteResponse resultado de un ajuste.
type AjusteResponse struct {
	Movement         StockMovementDTO `json:"movement"`
	BatchID          string           `json:"batchId"`
	QuantityAdjusted int              `json:"quantityAdjusted"`
	NewQuantity      int              `json:"newQuantity"`
}

// DesplazamientoBatchInfo estado de un lote tras el desplazamiento.
type DesplazamientoBatchInfo struct {
	BatchID     string `json:"batchId"`
	BatchCode   string `json:"batchCode"`
	LocationID  string `json:"locationId"`
	NewQuantity int    `json:"newQuantity"`
}

// DesplazamientoMovements las dos patas enlazadas del desplazamiento.
type DesplazamientoMovements struct {
	Egreso  StockMovementDTO `json:"egreso"`
	Ingreso StockMovementDTO `json:"ingreso"`
}

// DesplazamientoResponse resultado de un desplazamiento; los tres tipos devuelven dos movimientos.
type DesplazamientoResponse struct {
	OperationType    string                  `json:"operationType"` // "movimiento" | "trasplante" | "movimiento_trasplante"
	Movements        DesplazamientoMovements `json:"movements"`
	SourceBatch      DesplazamientoBatchInfo `json:"sourceBatch"`
	DestinationBatch DesplazamientoBatchInfo `json:"destinationBatch"`
	Quantity         int                     `json:"quantity"`
	CreatedAt        time.Time               `json:"createdAt"`
}

// MovementListResponse listado paginado del ledger.
type MovementListResponse struct {
	Movements []StockMovementDTO `json:"movements"`
	Page      PageResponse       `json:"page"`
}
