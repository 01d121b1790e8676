package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// Motor de stock.
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrInactiveBatch     = errors.New("lote con ciclo cerrado")
	ErrZeroQuantity      = errors.New("la cantidad no puede ser cero")
	ErrSameBatchConfig   = errors.New("desplazamiento inválido: misma ubicación y misma configuración")
	ErrDifferentProduct  = errors.New("desplazamiento inválido: lotes de productos distintos")
	ErrLedgerImbalance   = errors.New("la suma de las líneas no coincide con la cantidad del movimiento")
)
