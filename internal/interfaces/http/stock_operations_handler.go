package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fortytwo/demeter-api/internal/application/dto"
	"github.com/fortytwo/demeter-api/internal/application/stock"
)

// StockOperationsHandler expone las cuatro operaciones del motor de stock.
type StockOperationsHandler struct {
	uc *stock.OperationsUseCase
}

// NewStockOperationsHandler construye el handler.
func NewStockOperationsHandler(uc *stock.OperationsUseCase) *StockOperationsHandler {
	return &StockOperationsHandler{uc: uc}
}

// Muerte godoc
// @Summary      Registrar muerte de plantas
// @Description  Descuenta la cantidad del lote y appendea un movimiento MUERTE al ledger, como una sola transacción.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MuerteRequest  true  "batchId, quantity (>0), reasonDescription opcional"
// @Success      201   {object}  dto.MuerteResponse
// @Failure      400   {object}  dto.ErrorResponse  "VALIDATION | INSUFFICIENT_STOCK"
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "BATCH_INACTIVE"
// @Router       /api/v1/stock/movements/muerte [post]
func (h *StockOperationsHandler) Muerte(c *fiber.Ctx) error {
	var in dto.MuerteRequest
	if handled, err := bindBody(c, &in); handled {
		return err
	}
	resp, err := h.uc.Muerte(c.Context(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Plantado godoc
// @Summary      Registrar plantación
// @Description  Suma la cantidad al lote y appendea un movimiento PLANTADO al ledger.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PlantadoRequest  true  "batchId, quantity (>0), reasonDescription opcional"
// @Success      201   {object}  dto.PlantadoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "BATCH_INACTIVE"
// @Router       /api/v1/stock/movements/plantado [post]
func (h *StockOperationsHandler) Plantado(c *fiber.Ctx) error {
	var in dto.PlantadoRequest
	if handled, err := bindBody(c, &in); handled {
		return err
	}
	resp, err := h.uc.Plantado(c.Context(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Ajuste godoc
// @Summary      Registrar ajuste manual
// @Description  Aplica una corrección signada (positiva o negativa, nunca cero) sobre el lote.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AjusteRequest  true  "batchId, quantity signada (!=0), reasonDescription opcional"
// @Success      201   {object}  dto.AjusteResponse
// @Failure      400   {object}  dto.ErrorResponse  "ZERO_QUANTITY | INSUFFICIENT_STOCK"
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "BATCH_INACTIVE"
// @Router       /api/v1/stock/movements/ajuste [post]
func (h *StockOperationsHandler) Ajuste(c *fiber.Ctx) error {
	var in dto.AjusteRequest
	if handled, err := bindBody(c, &in); handled {
		return err
	}
	resp, err := h.uc.Ajuste(c.Context(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Desplazamiento godoc
// @Summary      Desplazar cantidad entre lotes
// @Description  Mueve cantidad del lote origen al destino. El tipo (movimiento, trasplante o movimiento_trasplante) se infiere comparando ubicación y configuración; siempre produce dos movimientos enlazados en una sola transacción.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DesplazamientoRequest  true  "sourceBatchId, destinationBatchId, quantity (>0), reasonDescription opcional"
// @Success      201   {object}  dto.DesplazamientoResponse
// @Failure      400   {object}  dto.ErrorResponse  "VALIDATION | INVALID_DESPLAZAMIENTO | INSUFFICIENT_STOCK"
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "BATCH_INACTIVE"
// @Router       /api/v1/stock/movements/desplazamiento [post]
func (h *StockOperationsHandler) Desplazamiento(c *fiber.Ctx) error {
	var in dto.DesplazamientoRequest
	if handled, err := bindBody(c, &in); handled {
		return err
	}
	resp, err := h.uc.Desplazamiento(c.Context(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}
