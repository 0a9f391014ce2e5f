package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BrandResponse salida de una marca.
type BrandResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ProductResponse salida de un producto de la tienda.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Description string          `json:"description"`
	Image       string          `json:"image"` // URL pública, vacío si no tiene
	BrandID     string          `json:"brand_id"`
	CategoryID  string          `json:"category_id"`
	CreatedAt   time.Time       `json:"created_at"`
}

// HomeResponse listado paginado de la tienda más la navegación lateral
// (solo marcas/categorías con productos).
type HomeResponse struct {
	Products   []ProductResponse  `json:"products"`
	Page       PageResponse       `json:"page"`
	Brands     []BrandResponse    `json:"brands"`
	Categories []CategoryResponse `json:"categories"`
}

// ProductDetailResponse detalle de producto más la navegación.
type ProductDetailResponse struct {
	Product    ProductResponse    `json:"product"`
	Brands     []BrandResponse    `json:"brands"`
	Categories []CategoryResponse `json:"categories"`
}

// EntityProductsResponse listado de los productos de una marca o categoría.
type EntityProductsResponse struct {
	Kind       string             `json:"kind"` // "brand" | "category"
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Products   []ProductResponse  `json:"products"`
	Page       PageResponse       `json:"page"`
	Brands     []BrandResponse    `json:"brands"`
	Categories []CategoryResponse `json:"categories"`
}
