package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortytwo/demeter-api/internal/application/dto"
	"github.com/fortytwo/demeter-api/internal/application/stock"
	"github.com/fortytwo/demeter-api/internal/domain/entity"
	"github.com/fortytwo/demeter-api/internal/domain/repository"
	apphttp "github.com/fortytwo/demeter-api/internal/interfaces/http"
)

// fakeLedgerReader implementa solo las lecturas que estos tests ejercitan; el
// resto de la interfaz queda en la promoción embebida.
type fakeLedgerReader struct {
	repository.StockMovementRepository
	movements []*entity.StockMovement
}

func (r *fakeLedgerReader) ListByDateRange(_ context.Context, companyID string, from, to time.Time) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.movements {
		if m.CompanyID == companyID && !m.PerformedAt.Before(from) && !m.PerformedAt.After(to) {
			out = append(out, m)
		}
	}
	return out, nil
}

func buildLedgerApp(movs ...*entity.StockMovement) *fiber.App {
	uc := stock.NewLedgerUseCase(nil, &fakeLedgerReader{movements: movs}, nil)
	h := apphttp.NewStockMovementHandler(uc)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(apphttp.LocalCompanyID, testCompanyID)
		return c.Next()
	})
	app.Get("/stock-movements/by-date-range", h.ListByDateRange)
	return app
}

func ledgerMovAt(performedAt time.Time) *entity.StockMovement {
	return &entity.StockMovement{
		ID:           "mov-" + performedAt.Format(time.RFC3339),
		CompanyID:    testCompanyID,
		MovementType: entity.MovementTypePLANTADO,
		Quantity:     10,
		IsInbound:    true,
		SourceType:   entity.SourceTypeManual,
		PerformedAt:  performedAt,
	}
}

func getMovements(t *testing.T, app *fiber.App, url string) []dto.StockMovementDTO {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, url, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out []dto.StockMovementDTO
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

// Un rango de fechas sin hora es inclusivo: el límite superior cubre el día
// completo, no solo su medianoche.
func TestListByDateRange_FechaFinalCubreElDiaCompleto(t *testing.T) {
	app := buildLedgerApp(ledgerMovAt(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)))

	movs := getMovements(t, app, "/stock-movements/by-date-range?from=2026-03-01&to=2026-03-01")
	assert.Len(t, movs, 1, "un movimiento del mediodía cae dentro del rango de su propio día")
}

func TestListByDateRange_SoloElDiaFinal(t *testing.T) {
	app := buildLedgerApp(
		ledgerMovAt(time.Date(2026, 3, 1, 23, 59, 0, 0, time.UTC)),
		ledgerMovAt(time.Date(2026, 3, 2, 0, 30, 0, 0, time.UTC)),
	)

	movs := getMovements(t, app, "/stock-movements/by-date-range?from=2026-03-01&to=2026-03-01")
	require.Len(t, movs, 1, "el día siguiente queda fuera")
	assert.Equal(t, 10, movs[0].Quantity)
}

// Un timestamp completo en el límite superior se respeta tal cual: no se corre
// un día hacia adelante.
func TestListByDateRange_TimestampFinalNoSeExpande(t *testing.T) {
	app := buildLedgerApp(ledgerMovAt(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)))

	movs := getMovements(t, app, "/stock-movements/by-date-range?from=2026-03-01&to=2026-03-01T10%3A00%3A00Z")
	assert.Empty(t, movs, "un movimiento posterior al timestamp final queda fuera")
}
