package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fortytwo/demeter-api/internal/application/analytics"
	"github.com/fortytwo/demeter-api/internal/application/dto"
	"github.com/fortytwo/demeter-api/internal/application/usecase"
	"github.com/fortytwo/demeter-api/internal/domain"
	"github.com/fortytwo/demeter-api/internal/domain/repository"
)

// StockBatchHandler CRUD de lotes y serie histórica por lote.
type StockBatchHandler struct {
	uc      *usecase.BatchUseCase
	history *analytics.HistoryUseCase
}

// NewStockBatchHandler construye el handler.
func NewStockBatchHandler(uc *usecase.BatchUseCase, history *analytics.HistoryUseCase) *StockBatchHandler {
	return &StockBatchHandler{uc: uc, history: history}
}

// Create godoc
// @Summary      Crear lote de stock
// @Tags         stock-batches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBatchRequest  true  "lote con cantidad inicial >= 0"
// @Success      201   {object}  dto.StockBatchDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "DUPLICATE"
// @Router       /api/v1/stock/batches [post]
func (h *StockBatchHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBatchRequest
	if handled, err := bindBody(c, &in); handled {
		return err
	}
	resp, err := h.uc.Create(c.Context(), GetCompanyID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// List godoc
// @Summary      Listar lotes
// @Tags         stock-batches
// @Security     Bearer
// @Produce      json
// @Param        productId   query  string  false  "filtrar por producto"
// @Param        locationId  query  string  false  "filtrar por ubicación"
// @Param        status      query  string  false  "ACTIVE | QUARANTINED | DEPLETED"
// @Param        activeOnly  query  bool    false  "solo lotes con ciclo abierto"
// @Success      200  {object}  dto.BatchListResponse
// @Router       /api/v1/stock/batches [get]
func (h *StockBatchHandler) List(c *fiber.Ctx) error {
	filter := repository.BatchFilter{
		ProductID:         c.Query("productId"),
		StorageLocationID: c.Query("locationId"),
		Status:            c.Query("status"),
		ActiveOnly:        c.QueryBool("activeOnly"),
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit"), Offset: c.QueryInt("offset")}
	resp, err := h.uc.List(c.Context(), GetCompanyID(c), filter, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// GetByID godoc
// @Summary      Obtener lote
// @Tags         stock-batches
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "batch id"
// @Success      200  {object}  dto.StockBatchDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/stock/batches/{id} [get]
func (h *StockBatchHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.uc.GetByID(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Update godoc
// @Summary      Actualizar configuración y metadatos del lote
// @Description  La cantidad no se edita por aquí: solo los movimientos la mutan.
// @Tags         stock-batches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "batch id"
// @Param        body  body  dto.UpdateBatchRequest true  "campos a actualizar"
// @Success      200   {object}  dto.StockBatchDTO
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/stock/batches/{id} [put]
func (h *StockBatchHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateBatchRequest
	if handled, err := bindBody(c, &in); handled {
		return err
	}
	resp, err := h.uc.Update(c.Context(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// CloseCycle godoc
// @Summary      Cerrar el ciclo del lote
// @Description  Un lote con ciclo cerrado deja de admitir operaciones de stock.
// @Tags         stock-batches
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "batch id"
// @Success      200  {object}  dto.StockBatchDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "ciclo ya cerrado"
// @Router       /api/v1/stock/batches/{id}/close-cycle [post]
func (h *StockBatchHandler) CloseCycle(c *fiber.Ctx) error {
	resp, err := h.uc.CloseCycle(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Delete godoc
// @Summary      Borrado lógico del lote
// @Tags         stock-batches
// @Security     Bearer
// @Param        id  path  string  true  "batch id"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/stock/batches/{id} [delete]
func (h *StockBatchHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetCompanyID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// History godoc
// @Summary      Serie diaria del lote
// @Description  Proyección del ledger del lote en una serie diaria UTC; las patas de transferencia sí cuentan.
// @Tags         stock-batches
// @Security     Bearer
// @Produce      json
// @Param        id    path   string  true   "batch id"
// @Param        from  query  string  true   "YYYY-MM-DD"
// @Param        to    query  string  true   "YYYY-MM-DD"
// @Success      200  {object}  dto.BatchHistoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/stock/batches/{id}/history [get]
func (h *StockBatchHandler) History(c *fiber.Ctx) error {
	from, err := parseDate(c.Query("from"), false)
	if err != nil {
		return respondError(c, domain.ErrInvalidInput)
	}
	to, err := parseDate(c.Query("to"), true)
	if err != nil {
		return respondError(c, domain.ErrInvalidInput)
	}

	resp, err := h.history.BatchDailySeries(c.Context(), GetCompanyID(c), c.Params("id"), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
