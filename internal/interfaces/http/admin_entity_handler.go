package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/tienda-api/internal/application/admin"
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// AdminEntityHandler panel de administración: índice y CRUD de marcas y
// categorías. El delete despacha también productos (ruta /delete/:entity/:id).
type AdminEntityHandler struct {
	entityUC  *admin.EntityUseCase
	productUC *admin.ProductUseCase
}

// NewAdminEntityHandler construye el handler.
func NewAdminEntityHandler(entityUC *admin.EntityUseCase, productUC *admin.ProductUseCase) *AdminEntityHandler {
	return &AdminEntityHandler{entityUC: entityUC, productUC: productUC}
}

// Index godoc
// @Summary      Panel de administración
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AdminIndexResponse
// @Router       /admin [get]
func (h *AdminEntityHandler) Index(c *fiber.Ctx) error {
	out, err := h.entityUC.Index()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// AddForm responde el GET del formulario de alta (solo el kind ya validado).
func (h *AdminEntityHandler) AddForm(c *fiber.Ctx) error {
	kind, err := entity.ParseListableKind(c.Params("entity"))
	if err != nil {
		return redirectWithWarning(c, "entidad inválida")
	}
	return c.JSON(fiber.Map{"kind": kind.String()})
}

// Create godoc
// @Summary      Crear marca o categoría
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        entity  path  string  true  "brand | category"
// @Param        body    body  dto.CreateEntityRequest  true  "Nombre"
// @Success      201     {object}  dto.EntityResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      409     {object}  dto.ErrorResponse
// @Router       /add/{entity} [post]
func (h *AdminEntityHandler) Create(c *fiber.Ctx) error {
	kind, err := entity.ParseListableKind(c.Params("entity"))
	if err != nil {
		return redirectWithWarning(c, "entidad inválida")
	}
	var in dto.CreateEntityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.entityUC.Create(kind, in.Name)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code: "VALIDATION", Message: "name es requerido",
				Fields: map[string]string{"name": "requerido"},
			})
		}
		if errors.Is(err, domain.ErrDuplicate) {
			// Gap del original cerrado: el nombre duplicado llega como mensaje, no como fallo sin manejar.
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: fmt.Sprintf("ya existe un %s con el nombre %q", kind, in.Name)})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateForm responde el GET del formulario de edición con la entidad actual.
func (h *AdminEntityHandler) UpdateForm(c *fiber.Ctx) error {
	kind, err := entity.ParseListableKind(c.Params("entity"))
	if err != nil {
		return redirectWithWarning(c, "entidad inválida")
	}
	out, err := h.entityUC.Get(kind, c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: kind.String() + " no encontrado"})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Renombrar marca o categoría
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        entity  path  string  true  "brand | category"
// @Param        id      path  string  true  "ID"
// @Param        body    body  dto.CreateEntityRequest  true  "Nombre nuevo"
// @Success      200     {object}  dto.EntityResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Failure      409     {object}  dto.ErrorResponse
// @Router       /update/{entity}/{id} [post]
func (h *AdminEntityHandler) Update(c *fiber.Ctx) error {
	kind, err := entity.ParseListableKind(c.Params("entity"))
	if err != nil {
		return redirectWithWarning(c, "entidad inválida")
	}
	var in dto.CreateEntityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.entityUC.Update(kind, c.Params("id"), in.Name)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code: "VALIDATION", Message: "name es requerido",
				Fields: map[string]string{"name": "requerido"},
			})
		}
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: fmt.Sprintf("ya existe un %s con ese nombre", kind)})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: kind.String() + " no encontrado"})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar marca, categoría o producto (solo POST explícito)
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        entity  path  string  true  "brand | category | product"
// @Param        id      path  string  true  "ID"
// @Success      200     {object}  dto.FlashResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Failure      409     {object}  dto.ErrorResponse
// @Router       /delete/{entity}/{id} [post]
func (h *AdminEntityHandler) Delete(c *fiber.Ctx) error {
	kind, err := entity.ParseEntityKind(c.Params("entity"))
	if err != nil {
		return redirectWithWarning(c, "entidad inválida")
	}

	var name string
	switch kind {
	case entity.KindProduct:
		out, err := h.productUC.Delete(c.Params("id"))
		if err != nil {
			return h.deleteError(c, kind, err)
		}
		name = out.Name
	default:
		out, err := h.entityUC.Delete(kind, c.Params("id"))
		if err != nil {
			return h.deleteError(c, kind, err)
		}
		name = out.Name
	}
	return c.JSON(dto.FlashResponse{Message: fmt.Sprintf("%s %q eliminado", kind, name)})
}

func (h *AdminEntityHandler) deleteError(c *fiber.Ctx, kind entity.EntityKind, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: kind.String() + " no encontrado"})
	}
	if errors.Is(err, domain.ErrConflict) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "no se puede eliminar: tiene registros dependientes"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
