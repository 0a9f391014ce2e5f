package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/tienda-api/internal/application/catalog"
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// StorefrontHandler rutas públicas de la tienda.
type StorefrontHandler struct {
	uc *catalog.BrowseUseCase
}

// NewStorefrontHandler construye el handler.
func NewStorefrontHandler(uc *catalog.BrowseUseCase) *StorefrontHandler {
	return &StorefrontHandler{uc: uc}
}

// Home godoc
// @Summary      Listado paginado de productos con stock
// @Tags         store
// @Produce      json
// @Param        page  query  int  false  "Página (1-based)"  default(1)
// @Success      200   {object}  dto.HomeResponse
// @Router       / [get]
func (h *StorefrontHandler) Home(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	out, err := h.uc.Home(page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ProductDetail godoc
// @Summary      Detalle de producto
// @Tags         store
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /product/{id} [get]
func (h *StorefrontHandler) ProductDetail(c *fiber.Ctx) error {
	out, err := h.uc.ProductDetail(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	return c.JSON(out)
}

// EntityProducts godoc
// @Summary      Productos de una marca o categoría
// @Tags         store
// @Produce      json
// @Param        entity  path   string  true   "brand | category"
// @Param        id      path   string  true   "ID de la entidad"
// @Param        page    query  int     false  "Página (1-based)"  default(1)
// @Success      200     {object}  dto.EntityProductsResponse
// @Failure      302     "kind desconocido: redirect a /admin con aviso"
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /entity/{entity}/{id} [get]
func (h *StorefrontHandler) EntityProducts(c *fiber.Ctx) error {
	kind, err := entity.ParseListableKind(c.Params("entity"))
	if err != nil {
		// Igual que el flujo original: aviso visible y redirect al panel, no una página de error.
		return redirectWithWarning(c, "entidad inválida")
	}
	page := c.QueryInt("page", 1)
	out, err := h.uc.EntityProducts(kind, c.Params("id"), page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: kind.String() + " no encontrado"})
	}
	return c.JSON(out)
}
