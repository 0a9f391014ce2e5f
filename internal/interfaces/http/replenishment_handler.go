package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/inventory"
	"github.com/jhoicas/tienda-api/internal/domain"
)

// ReplenishmentHandler registro y consulta de reposiciones de stock.
type ReplenishmentHandler struct {
	uc *inventory.ReplenishUseCase
}

// NewReplenishmentHandler construye el handler.
func NewReplenishmentHandler(uc *inventory.ReplenishUseCase) *ReplenishmentHandler {
	return &ReplenishmentHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar una reposición de stock
// @Description  Inserta el asiento y aplica el incremento de stock en una sola transacción.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReplenishmentRequest  true  "Producto y cantidad"
// @Success      201   {object}  dto.ReplenishmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /replenishments [post]
func (h *ReplenishmentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateReplenishmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Replenish(c.Context(), GetUserID(c), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code: "VALIDATION", Message: "product_id es requerido y quantity debe ser > 0",
			})
		case errors.Is(err, domain.ErrUserNotFound):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "usuario del token inexistente"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// HistoryByProduct godoc
// @Summary      Historial de reposiciones de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {array}   dto.ReplenishmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /replenishments/product/{id} [get]
func (h *ReplenishmentHandler) HistoryByProduct(c *fiber.Ctx) error {
	items, err := h.uc.HistoryByProduct(c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(items)
}

// HistoryByUser godoc
// @Summary      Historial de reposiciones registradas por un usuario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del usuario"
// @Success      200  {array}   dto.ReplenishmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /replenishments/user/{id} [get]
func (h *ReplenishmentHandler) HistoryByUser(c *fiber.Ctx) error {
	items, err := h.uc.HistoryByUser(c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "usuario no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(items)
}
