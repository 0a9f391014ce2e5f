package dto

import "github.com/shopspring/decimal"

// CreateEntityRequest entrada para crear o renombrar una marca/categoría.
type CreateEntityRequest struct {
	Name string `json:"name" form:"name" validate:"required,min=1,max=80"`
}

// EntityResponse salida de una marca o categoría administrada.
type EntityResponse struct {
	ID   string `json:"id"`
	Kind string `json:"kind"` // "brand" | "category"
	Name string `json:"name"`
}

// CreateProductInput campos ya parseados del form multipart de producto.
// La imagen viaja aparte (multipart.FileHeader).
type CreateProductInput struct {
	Name        string
	Price       decimal.Decimal
	Stock       int
	Description string
	BrandID     string
	CategoryID  string
}

// ProductFormData datos para poblar el formulario de producto (GET).
type ProductFormData struct {
	Brands     []BrandResponse    `json:"brands"`
	Categories []CategoryResponse `json:"categories"`
}

// AdminIndexResponse panel de administración: catálogo resumido.
type AdminIndexResponse struct {
	Brands       []BrandResponse    `json:"brands"`
	Categories   []CategoryResponse `json:"categories"`
	ProductCount int                `json:"product_count"`
}

// FlashResponse mensaje de éxito estilo flash para operaciones de admin.
type FlashResponse struct {
	Message string `json:"message"`
}
