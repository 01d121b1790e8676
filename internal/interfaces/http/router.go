package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fortytwo/demeter-api/internal/application/analytics"
	"github.com/fortytwo/demeter-api/internal/application/auth"
	"github.com/fortytwo/demeter-api/internal/application/stock"
	"github.com/fortytwo/demeter-api/internal/application/usecase"
	"github.com/fortytwo/demeter-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.UseCase
	OperationsUC *stock.OperationsUseCase
	LedgerUC     *stock.LedgerUseCase
	HistoryUC    *analytics.HistoryUseCase
	BatchUC      *usecase.BatchUseCase
	ProductUC    *usecase.ProductUseCase
	LocationUC   *usecase.LocationUseCase
	CatalogUC    *usecase.CatalogUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api/v1")

	// Auth: login público, registro solo para admins autenticados.
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register",
		AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin), authHandler.Register)

	// Rutas protegidas (requieren Bearer Token).
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Operaciones del motor de stock.
	opsHandler := NewStockOperationsHandler(deps.OperationsUC)
	ops := protected.Group("/stock/movements")
	ops.Post("/muerte", opsHandler.Muerte)
	ops.Post("/plantado", opsHandler.Plantado)
	ops.Post("/ajuste", RequireRole(entity.RoleAdmin, entity.RoleSupervisor), opsHandler.Ajuste)
	ops.Post("/desplazamiento", opsHandler.Desplazamiento)

	// Lotes.
	batchHandler := NewStockBatchHandler(deps.BatchUC, deps.HistoryUC)
	batches := protected.Group("/stock/batches")
	batches.Post("/", batchHandler.Create)
	batches.Get("/", batchHandler.List)
	batches.Get("/:id", batchHandler.GetByID)
	batches.Put("/:id", batchHandler.Update)
	batches.Post("/:id/close-cycle", RequireRole(entity.RoleAdmin, entity.RoleSupervisor), batchHandler.CloseCycle)
	batches.Delete("/:id", RequireRole(entity.RoleAdmin), batchHandler.Delete)
	batches.Get("/:id/history", batchHandler.History)

	// Ledger de movimientos.
	movHandler := NewStockMovementHandler(deps.LedgerUC)
	movements := protected.Group("/stock-movements")
	movements.Post("/", movHandler.Create)
	movements.Get("/", movHandler.List)
	movements.Get("/by-type/:type", movHandler.ListByType)
	movements.Get("/by-date-range", movHandler.ListByDateRange)
	movements.Get("/by-reference/:id", movHandler.ListByReference)
	movements.Get("/by-batch/:id", movHandler.ListByBatch)
	movements.Get("/:id", movHandler.GetByID)

	// Analytics.
	analyticsHandler := NewAnalyticsHandler(deps.HistoryUC)
	protected.Get("/analytics/stock-history", analyticsHandler.StockHistory)

	// Master data.
	productHandler := NewProductHandler(deps.ProductUC)
	products := protected.Group("/products")
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)

	locationHandler := NewLocationHandler(deps.LocationUC)
	locations := protected.Group("/locations")
	locations.Post("/", locationHandler.Create)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.GetByID)

	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	catalogs := protected.Group("/catalogs")
	catalogs.Get("/sizes", catalogHandler.ListSizes)
	catalogs.Get("/packagings", catalogHandler.ListPackagings)
}
