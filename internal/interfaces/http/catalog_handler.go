package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fortytwo/demeter-api/internal/application/usecase"
)

// CatalogHandler clasificadores de configuración de lote.
type CatalogHandler struct {
	uc *usecase.CatalogUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *usecase.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// ListSizes godoc
// @Summary      Listar tamaños de producto
// @Tags         catalogs
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProductSizeDTO
// @Router       /api/v1/catalogs/sizes [get]
func (h *CatalogHandler) ListSizes(c *fiber.Ctx) error {
	resp, err := h.uc.ListSizes(c.Context(), GetCompanyID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// ListPackagings godoc
// @Summary      Listar empaques
// @Tags         catalogs
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PackagingDTO
// @Router       /api/v1/catalogs/packagings [get]
func (h *CatalogHandler) ListPackagings(c *fiber.Ctx) error {
	resp, err := h.uc.ListPackagings(c.Context(), GetCompanyID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
