package catalog

import (
	"strings"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// BrowseUseCase casos de uso públicos de la tienda: home paginado (solo
// productos con stock), detalle de producto y listado por marca/categoría.
type BrowseUseCase struct {
	productRepo  repository.ProductRepository
	brandRepo    repository.BrandRepository
	categoryRepo repository.CategoryRepository
	imageBaseURL string
}

// NewBrowseUseCase construye el caso de uso. imageBaseURL es el prefijo público
// bajo el que se sirven las imágenes (ej. /static/images).
func NewBrowseUseCase(
	productRepo repository.ProductRepository,
	brandRepo repository.BrandRepository,
	categoryRepo repository.CategoryRepository,
	imageBaseURL string,
) *BrowseUseCase {
	return &BrowseUseCase{
		productRepo:  productRepo,
		brandRepo:    brandRepo,
		categoryRepo: categoryRepo,
		imageBaseURL: strings.TrimSuffix(imageBaseURL, "/"),
	}
}

// Home devuelve la página pedida de productos con stock > 0 (4 por página)
// junto con las marcas y categorías que tienen al menos un producto.
func (uc *BrowseUseCase) Home(page int) (*dto.HomeResponse, error) {
	if page < 1 {
		page = 1
	}
	total, err := uc.productRepo.CountInStock()
	if err != nil {
		return nil, err
	}
	pageMeta := dto.NewPageResponse(page, dto.PerPage, total)
	products, err := uc.productRepo.ListInStock(dto.PerPage, pageMeta.Offset())
	if err != nil {
		return nil, err
	}
	brands, categories, err := uc.navigation()
	if err != nil {
		return nil, err
	}
	return &dto.HomeResponse{
		Products:   uc.toProductResponses(products),
		Page:       pageMeta,
		Brands:     brands,
		Categories: categories,
	}, nil
}

// ProductDetail devuelve el detalle de un producto más la navegación.
// Producto inexistente -> (nil, nil); el handler responde 404.
func (uc *BrowseUseCase) ProductDetail(id string) (*dto.ProductDetailResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	brands, categories, err := uc.navigation()
	if err != nil {
		return nil, err
	}
	return &dto.ProductDetailResponse{
		Product:    uc.toProductResponse(product),
		Brands:     brands,
		Categories: categories,
	}, nil
}

// EntityProducts devuelve los productos de la marca o categoría indicada,
// paginados, más la navegación. Entidad inexistente -> (nil, nil).
// El kind ya viene parseado: el camino de "entidad inválida" muere en el handler.
func (uc *BrowseUseCase) EntityProducts(kind entity.EntityKind, id string, page int) (*dto.EntityProductsResponse, error) {
	if page < 1 {
		page = 1
	}

	var name string
	switch kind {
	case entity.KindBrand:
		brand, err := uc.brandRepo.GetByID(id)
		if err != nil {
			return nil, err
		}
		if brand == nil {
			return nil, nil
		}
		name = brand.Name
	case entity.KindCategory:
		category, err := uc.categoryRepo.GetByID(id)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, nil
		}
		name = category.Name
	}

	var (
		total    int
		products []*entity.Product
		err      error
	)
	switch kind {
	case entity.KindBrand:
		if total, err = uc.productRepo.CountByBrand(id); err != nil {
			return nil, err
		}
		pageMeta := dto.NewPageResponse(page, dto.PerPage, total)
		if products, err = uc.productRepo.ListByBrand(id, dto.PerPage, pageMeta.Offset()); err != nil {
			return nil, err
		}
	case entity.KindCategory:
		if total, err = uc.productRepo.CountByCategory(id); err != nil {
			return nil, err
		}
		pageMeta := dto.NewPageResponse(page, dto.PerPage, total)
		if products, err = uc.productRepo.ListByCategory(id, dto.PerPage, pageMeta.Offset()); err != nil {
			return nil, err
		}
	}

	brands, categories, err := uc.navigation()
	if err != nil {
		return nil, err
	}
	return &dto.EntityProductsResponse{
		Kind:       kind.String(),
		ID:         id,
		Name:       name,
		Products:   uc.toProductResponses(products),
		Page:       dto.NewPageResponse(page, dto.PerPage, total),
		Brands:     brands,
		Categories: categories,
	}, nil
}

// navigation: marcas y categorías con al menos un producto (join distinct).
func (uc *BrowseUseCase) navigation() ([]dto.BrandResponse, []dto.CategoryResponse, error) {
	brands, err := uc.brandRepo.ListWithProducts()
	if err != nil {
		return nil, nil, err
	}
	categories, err := uc.categoryRepo.ListWithProducts()
	if err != nil {
		return nil, nil, err
	}
	return ToBrandResponses(brands), ToCategoryResponses(categories), nil
}

func (uc *BrowseUseCase) toProductResponse(p *entity.Product) dto.ProductResponse {
	image := ""
	if p.Image != "" {
		image = uc.imageBaseURL + "/" + p.Image
	}
	return dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Stock:       p.Stock,
		Description: p.Description,
		Image:       image,
		BrandID:     p.BrandID,
		CategoryID:  p.CategoryID,
		CreatedAt:   p.CreatedAt,
	}
}

func (uc *BrowseUseCase) toProductResponses(list []*entity.Product) []dto.ProductResponse {
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, uc.toProductResponse(p))
	}
	return items
}

// ToBrandResponses mapea entidades a DTOs (compartido con el panel de admin).
func ToBrandResponses(list []*entity.Brand) []dto.BrandResponse {
	items := make([]dto.BrandResponse, 0, len(list))
	for _, b := range list {
		items = append(items, dto.BrandResponse{ID: b.ID, Name: b.Name})
	}
	return items
}

// ToCategoryResponses mapea entidades a DTOs (compartido con el panel de admin).
func ToCategoryResponses(list []*entity.Category) []dto.CategoryResponse {
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, dto.CategoryResponse{ID: c.ID, Name: c.Name})
	}
	return items
}
