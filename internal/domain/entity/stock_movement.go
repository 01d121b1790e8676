package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	// Ingresos.
	MovementTypeFOTO       = "FOTO"        // inicialización por foto (pipeline ML)
	MovementTypeMANUALINIT = "MANUAL_INIT" // inicialización manual
	MovementTypePLANTADO   = "PLANTADO"    // plantación nueva
	MovementTypeENTRADA    = "ENTRADA"     // legacy: usar MANUAL_INIT o PLANTADO

	// Egresos.
	MovementTypeMUERTE = "MUERTE" // muerte de plantas
	MovementTypeVENTA  = "VENTA"  // venta

	// Transferencias entre lotes (neutras a nivel sistema).
	MovementTypeMOVIMIENTO           = "MOVIMIENTO"            // cambio de ubicación, misma config
	MovementTypeTRASPLANTE           = "TRASPLANTE"            // cambio de config, misma ubicación
	MovementTypeMOVIMIENTOTRASPLANTE = "MOVIMIENTO_TRASPLANTE" // cambio de ubicación y config

	// Ajustes manuales (+/-).
	MovementTypeAJUSTE = "AJUSTE"
)

// Origen del movimiento.
const (
	SourceTypeManual = "MANUAL" // iniciado por un usuario
	SourceTypeIA     = "IA"     // generado por el pipeline ML de fotos
	SourceTypeVenta  = "VENTA"  // derivado del módulo de ventas
)

// IsTransferType indica si el tipo mueve cantidad entre lotes sin cambiar el total del sistema.
func IsTransferType(movementType string) bool {
	switch movementType {
	case MovementTypeMOVIMIENTO, MovementTypeTRASPLANTE, MovementTypeMOVIMIENTOTRASPLANTE:
		return true
	}
	return false
}

// IsInboundType indica si el tipo suma stock al sistema. AJUSTE depende del signo
// de la cantidad y no se resuelve aquí.
func IsInboundType(movementType string) bool {
	switch movementType {
	case MovementTypeFOTO, MovementTypeMANUALINIT, MovementTypePLANTADO, MovementTypeENTRADA:
		return true
	}
	return false
}

// IsOutboundType indica si el tipo resta stock del sistema.
func IsOutboundType(movementType string) bool {
	switch movementType {
	case MovementTypeMUERTE, MovementTypeVENTA:
		return true
	}
	return false
}

// ValidMovementType valida que el tipo exista en el catálogo.
func ValidMovementType(movementType string) bool {
	switch movementType {
	case MovementTypeFOTO, MovementTypeMANUALINIT, MovementTypePLANTADO, MovementTypeENTRADA,
		MovementTypeMUERTE, MovementTypeVENTA,
		MovementTypeMOVIMIENTO, MovementTypeTRASPLANTE, MovementTypeMOVIMIENTOTRASPLANTE,
		MovementTypeAJUSTE:
		return true
	}
	return false
}

// StockMovement es un evento del ledger: registro inmutable de un cambio de cantidad.
// Quantity es signada: positiva para ingresos, negativa para egresos. Las dos patas
// de un desplazamiento son dos movimientos enlazados por ParentMovementID.
type StockMovement struct {
	ID           string
	CompanyID    string
	MovementType string
	Quantity     int
	IsInbound    bool
	UserID       string
	SourceType   string
	Reason       string

	// Procedencia opcional: sesión de procesamiento ML y pata de origen de un desplazamiento.
	ProcessingSessionID *string
	ParentMovementID    *string
	ReferenceID         *string

	// COGS opcional.
	UnitPrice  *decimal.Decimal
	TotalPrice *decimal.Decimal

	PerformedAt time.Time
	CreatedAt   time.Time

	// Líneas por lote, cargadas junto con el movimiento.
	BatchMovements []*StockBatchMovement
}

// StockBatchMovement es una línea del ledger: el delta signado que un movimiento
// aplica sobre un lote concreto. Se crea en la misma transacción que su movimiento
// y nunca se muta.
type StockBatchMovement struct {
	ID            string
	MovementID    string
	BatchID       string
	BatchCode     string
	Quantity      decimal.Decimal
	MovementOrder int
	CreatedAt     time.Time
}
