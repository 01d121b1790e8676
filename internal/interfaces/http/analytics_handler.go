package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fortytwo/demeter-api/internal/application/analytics"
	"github.com/fortytwo/demeter-api/internal/domain"
)

// AnalyticsHandler proyecciones de lectura sobre el ledger.
type AnalyticsHandler struct {
	history *analytics.HistoryUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(history *analytics.HistoryUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{history: history}
}

// StockHistory godoc
// @Summary      Serie diaria de stock del sistema
// @Description  Replays el ledger del rango y lo agrupa por día UTC: ingresos suman, egresos restan, las transferencias aportan cero.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  true  "YYYY-MM-DD"
// @Param        to    query  string  true  "YYYY-MM-DD"
// @Success      200  {object}  dto.StockHistoryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/v1/analytics/stock-history [get]
func (h *AnalyticsHandler) StockHistory(c *fiber.Ctx) error {
	from, err := parseDate(c.Query("from"), false)
	if err != nil {
		return respondError(c, domain.ErrInvalidInput)
	}
	to, err := parseDate(c.Query("to"), true)
	if err != nil {
		return respondError(c, domain.ErrInvalidInput)
	}

	resp, err := h.history.DailySeries(c.Context(), GetCompanyID(c), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
