package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/fortytwo/demeter-api/internal/application/dto"
	"github.com/fortytwo/demeter-api/internal/application/stock"
	"github.com/fortytwo/demeter-api/internal/domain"
	"github.com/fortytwo/demeter-api/internal/domain/repository"
)

// StockMovementHandler lecturas del ledger y alta genérica de movimientos.
type StockMovementHandler struct {
	uc *stock.LedgerUseCase
}

// NewStockMovementHandler construye el handler.
func NewStockMovementHandler(uc *stock.LedgerUseCase) *StockMovementHandler {
	return &StockMovementHandler{uc: uc}
}

// parseDate acepta RFC3339 o fecha sola (YYYY-MM-DD). Con endOfDay una fecha
// sola se expande al final del día, de modo que el límite superior cubra el día
// completo; un timestamp completo se respeta tal cual.
func parseDate(s string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}

// Create godoc
// @Summary      Registrar movimiento genérico
// @Description  Alta multi-línea para productores externos (pipeline ML, ventas). Solo tipos de ingreso o egreso puros; transferencias y ajustes tienen sus propias operaciones.
// @Tags         stock-movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockMovementRequest  true  "movimiento con sus líneas por lote"
// @Success      201   {object}  dto.StockMovementDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/v1/stock-movements [post]
func (h *StockMovementHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStockMovementRequest
	if handled, err := bindBody(c, &in); handled {
		return err
	}
	resp, err := h.uc.CreateMovement(c.Context(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// List godoc
// @Summary      Listar ledger paginado
// @Tags         stock-movements
// @Security     Bearer
// @Produce      json
// @Param        type       query  string  false  "tipo de movimiento"
// @Param        batchId    query  string  false  "filtrar por lote"
// @Param        startDate  query  string  false  "YYYY-MM-DD o RFC3339"
// @Param        endDate    query  string  false  "YYYY-MM-DD o RFC3339"
// @Param        limit      query  int     false  "máx 100"
// @Param        offset     query  int     false  "desplazamiento"
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/v1/stock-movements [get]
func (h *StockMovementHandler) List(c *fiber.Ctx) error {
	filter := repository.MovementFilter{
		MovementType: c.Query("type"),
		BatchID:      c.Query("batchId"),
	}
	if s := c.Query("startDate"); s != "" {
		t, err := parseDate(s, false)
		if err != nil {
			return respondError(c, domain.ErrInvalidInput)
		}
		filter.StartDate = &t
	}
	if s := c.Query("endDate"); s != "" {
		t, err := parseDate(s, true)
		if err != nil {
			return respondError(c, domain.ErrInvalidInput)
		}
		filter.EndDate = &t
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit"), Offset: c.QueryInt("offset")}

	resp, err := h.uc.ListMovements(c.Context(), GetCompanyID(c), filter, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// GetByID godoc
// @Summary      Obtener un movimiento con sus líneas
// @Tags         stock-movements
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "movement id"
// @Success      200  {object}  dto.StockMovementDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/stock-movements/{id} [get]
func (h *StockMovementHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.uc.GetMovement(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// ListByType godoc
// @Summary      Movimientos por tipo
// @Tags         stock-movements
// @Security     Bearer
// @Produce      json
// @Param        type  path  string  true  "tipo de movimiento"
// @Success      200  {array}  dto.StockMovementDTO
// @Router       /api/v1/stock-movements/by-type/{type} [get]
func (h *StockMovementHandler) ListByType(c *fiber.Ctx) error {
	resp, err := h.uc.ListByType(c.Context(), GetCompanyID(c), c.Params("type"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// ListByDateRange godoc
// @Summary      Movimientos por rango de fechas
// @Tags         stock-movements
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  true  "YYYY-MM-DD o RFC3339"
// @Param        to    query  string  true  "YYYY-MM-DD o RFC3339"
// @Success      200  {array}  dto.StockMovementDTO
// @Router       /api/v1/stock-movements/by-date-range [get]
func (h *StockMovementHandler) ListByDateRange(c *fiber.Ctx) error {
	from, err := parseDate(c.Query("from"), false)
	if err != nil {
		return respondError(c, domain.ErrInvalidInput)
	}
	to, err := parseDate(c.Query("to"), true)
	if err != nil {
		return respondError(c, domain.ErrInvalidInput)
	}
	resp, err := h.uc.ListByDateRange(c.Context(), GetCompanyID(c), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// ListByReference godoc
// @Summary      Movimientos por referencia externa
// @Tags         stock-movements
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "reference id (p.ej. venta)"
// @Success      200  {array}  dto.StockMovementDTO
// @Router       /api/v1/stock-movements/by-reference/{id} [get]
func (h *StockMovementHandler) ListByReference(c *fiber.Ctx) error {
	resp, err := h.uc.ListByReference(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// ListByBatch godoc
// @Summary      Historia completa de un lote
// @Tags         stock-movements
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "batch id"
// @Success      200  {array}  dto.StockMovementDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/stock-movements/by-batch/{id} [get]
func (h *StockMovementHandler) ListByBatch(c *fiber.Ctx) error {
	resp, err := h.uc.ListByBatch(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
