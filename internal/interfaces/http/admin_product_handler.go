package http

import (
	"errors"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/tienda-api/internal/application/admin"
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/shopspring/decimal"
)

// AdminProductHandler CRUD de productos (form multipart con imagen) y export
// del catálogo en PDF.
type AdminProductHandler struct {
	uc *admin.ProductUseCase
}

// NewAdminProductHandler construye el handler.
func NewAdminProductHandler(uc *admin.ProductUseCase) *AdminProductHandler {
	return &AdminProductHandler{uc: uc}
}

// AddForm godoc
// @Summary      Datos para el formulario de producto (marcas y categorías)
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ProductFormData
// @Router       /add/product [get]
func (h *AdminProductHandler) AddForm(c *fiber.Ctx) error {
	out, err := h.uc.FormData()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear producto (multipart con imagen)
// @Tags         admin
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        name         formData  string  true   "Nombre"
// @Param        price        formData  string  true   "Precio decimal >= 0"
// @Param        stock        formData  int     true   "Stock inicial >= 0"
// @Param        description  formData  string  false  "Descripción"
// @Param        brand_id     formData  string  true   "ID de marca"
// @Param        category_id  formData  string  true   "ID de categoría"
// @Param        image        formData  file    true   "Imagen del producto"
// @Success      201  {object}  dto.ProductResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /add/product [post]
func (h *AdminProductHandler) Create(c *fiber.Ctx) error {
	in, image, fields := parseProductForm(c, true)
	if len(fields) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "formulario de producto inválido", Fields: fields,
		})
	}
	out, err := h.uc.Create(in, image)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateForm responde el GET del formulario de edición: producto actual más
// marcas y categorías disponibles.
func (h *AdminProductHandler) UpdateForm(c *fiber.Ctx) error {
	product, err := h.uc.Get(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if product == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	form, err := h.uc.FormData()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{
		"product":    product,
		"brands":     form.Brands,
		"categories": form.Categories,
	})
}

// Update godoc
// @Summary      Actualizar producto (imagen opcional; si llega, reemplaza la anterior)
// @Tags         admin
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /update/product/{id} [post]
func (h *AdminProductHandler) Update(c *fiber.Ctx) error {
	in, image, fields := parseProductForm(c, false)
	if len(fields) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "formulario de producto inválido", Fields: fields,
		})
	}
	out, err := h.uc.Update(c.Params("id"), in, image)
	if err != nil {
		return h.writeError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	return c.JSON(out)
}

// ExportCatalogPDF godoc
// @Summary      Catálogo completo de productos en PDF
// @Tags         admin
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /admin/catalog/pdf [get]
func (h *AdminProductHandler) ExportCatalogPDF(c *fiber.Ctx) error {
	pdfBytes, err := h.uc.ExportCatalogPDF(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="catalogo.pdf"`)
	return c.Send(pdfBytes)
}

func (h *AdminProductHandler) writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		// FK inexistente en brand_id/category_id cae acá vía 23503.
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "marca o categoría inexistente, o falta la imagen"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "ya existe un producto con ese nombre"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "no se puede eliminar: tiene registros dependientes"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// parseProductForm valida campo a campo el form multipart. Si algún campo
// falla, el producto NO se persiste y el mapa fields indica qué corregir.
// requireImage distingue alta (imagen obligatoria) de edición (opcional).
func parseProductForm(c *fiber.Ctx, requireImage bool) (dto.CreateProductInput, *multipart.FileHeader, map[string]string) {
	fields := make(map[string]string)
	in := dto.CreateProductInput{
		Name:        strings.TrimSpace(c.FormValue("name")),
		Description: strings.TrimSpace(c.FormValue("description")),
		BrandID:     strings.TrimSpace(c.FormValue("brand_id")),
		CategoryID:  strings.TrimSpace(c.FormValue("category_id")),
	}

	if in.Name == "" {
		fields["name"] = "requerido"
	}
	if in.Description == "" {
		fields["description"] = "requerido"
	}
	if in.BrandID == "" {
		fields["brand_id"] = "requerido"
	}
	if in.CategoryID == "" {
		fields["category_id"] = "requerido"
	}

	priceRaw := strings.TrimSpace(c.FormValue("price"))
	if priceRaw == "" {
		fields["price"] = "requerido"
	} else if price, err := decimal.NewFromString(priceRaw); err != nil {
		fields["price"] = "debe ser un número decimal"
	} else if price.IsNegative() {
		fields["price"] = "no puede ser negativo"
	} else {
		in.Price = price
	}

	stockRaw := strings.TrimSpace(c.FormValue("stock"))
	if stockRaw == "" {
		fields["stock"] = "requerido"
	} else if stock, err := strconv.Atoi(stockRaw); err != nil {
		fields["stock"] = "debe ser un entero"
	} else if stock < 0 {
		fields["stock"] = "no puede ser negativo"
	} else {
		in.Stock = stock
	}

	image, err := c.FormFile("image")
	if err != nil {
		image = nil
		if requireImage {
			fields["image"] = "requerida"
		}
	}
	return in, image, fields
}
