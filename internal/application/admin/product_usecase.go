package admin

import (
	"context"
	"mime/multipart"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/tienda-api/internal/application/catalog"
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// ProductUseCase CRUD de productos del admin, incluido el ciclo de vida de la
// imagen en disco y el export del catálogo en PDF.
//
// Escritura de archivo y commit de DB no son atómicos entre sí: un crash entre
// ambos puede dejar un archivo huérfano (nunca una referencia colgante, porque
// la fila se escribe/borra primero en los caminos que importan). Riesgo aceptado.
type ProductUseCase struct {
	productRepo  repository.ProductRepository
	brandRepo    repository.BrandRepository
	categoryRepo repository.CategoryRepository
	images       ImageStore
	pdfGen       CatalogPDFGenerator
	shopName     string
	imageBaseURL string
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	productRepo repository.ProductRepository,
	brandRepo repository.BrandRepository,
	categoryRepo repository.CategoryRepository,
	images ImageStore,
	pdfGen CatalogPDFGenerator,
	shopName, imageBaseURL string,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo:  productRepo,
		brandRepo:    brandRepo,
		categoryRepo: categoryRepo,
		images:       images,
		pdfGen:       pdfGen,
		shopName:     shopName,
		imageBaseURL: strings.TrimSuffix(imageBaseURL, "/"),
	}
}

// FormData devuelve marcas y categorías para poblar el formulario de producto.
func (uc *ProductUseCase) FormData() (*dto.ProductFormData, error) {
	brands, err := uc.brandRepo.List()
	if err != nil {
		return nil, err
	}
	categories, err := uc.categoryRepo.List()
	if err != nil {
		return nil, err
	}
	return &dto.ProductFormData{
		Brands:     catalog.ToBrandResponses(brands),
		Categories: catalog.ToCategoryResponses(categories),
	}, nil
}

// Create guarda la imagen bajo nombre aleatorio e inserta el producto.
// brand_id/category_id no se pre-validan: la FK del insert es la autoridad.
// Si el insert falla se retira la imagen recién guardada.
func (uc *ProductUseCase) Create(in dto.CreateProductInput, image *multipart.FileHeader) (*dto.ProductResponse, error) {
	if image == nil {
		return nil, domain.ErrInvalidInput
	}
	filename, err := uc.images.SaveMultipart(image)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Price:       in.Price,
		Stock:       in.Stock,
		Description: in.Description,
		Image:       filename,
		BrandID:     in.BrandID,
		CategoryID:  in.CategoryID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		_ = uc.images.Delete(filename)
		return nil, err
	}
	return uc.toResponse(product), nil
}

// Get obtiene un producto para el formulario de edición. Inexistente -> (nil, nil).
func (uc *ProductUseCase) Get(id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil || product == nil {
		return nil, err
	}
	return uc.toResponse(product), nil
}

// Update aplica los campos nuevos y, si llega imagen, reemplaza la anterior:
// se guarda la nueva, se confirma la fila y recién entonces se elimina la vieja.
// Inexistente -> (nil, nil).
func (uc *ProductUseCase) Update(id string, in dto.CreateProductInput, image *multipart.FileHeader) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil || product == nil {
		return nil, err
	}

	oldImage := ""
	if image != nil {
		filename, err := uc.images.SaveMultipart(image)
		if err != nil {
			return nil, err
		}
		oldImage = product.Image
		product.Image = filename
	}

	product.Name = in.Name
	product.Price = in.Price
	product.Stock = in.Stock
	product.Description = in.Description
	product.BrandID = in.BrandID
	product.CategoryID = in.CategoryID
	product.UpdatedAt = time.Now()

	if err := uc.productRepo.Update(product); err != nil {
		if image != nil {
			_ = uc.images.Delete(product.Image)
		}
		return nil, err
	}
	if oldImage != "" {
		_ = uc.images.Delete(oldImage)
	}
	return uc.toResponse(product), nil
}

// Delete borra la fila y después el archivo de imagen (si lo hay; su ausencia
// no es error). Inexistente -> ErrNotFound; con asientos de reposición -> ErrConflict.
func (uc *ProductUseCase) Delete(id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.productRepo.Delete(id); err != nil {
		return nil, err
	}
	if err := uc.images.Delete(product.Image); err != nil {
		return nil, err
	}
	return uc.toResponse(product), nil
}

// ExportCatalogPDF resuelve nombres de marca/categoría y genera el PDF del catálogo.
func (uc *ProductUseCase) ExportCatalogPDF(ctx context.Context) ([]byte, error) {
	products, err := uc.productRepo.List()
	if err != nil {
		return nil, err
	}
	brands, err := uc.brandRepo.List()
	if err != nil {
		return nil, err
	}
	categories, err := uc.categoryRepo.List()
	if err != nil {
		return nil, err
	}

	brandNames := make(map[string]string, len(brands))
	for _, b := range brands {
		brandNames[b.ID] = b.Name
	}
	categoryNames := make(map[string]string, len(categories))
	for _, c := range categories {
		categoryNames[c.ID] = c.Name
	}

	rows := make([]CatalogRowForPDF, 0, len(products))
	for _, p := range products {
		rows = append(rows, CatalogRowForPDF{
			Name:     p.Name,
			Brand:    brandNames[p.BrandID],
			Category: categoryNames[p.CategoryID],
			Price:    p.Price,
			Stock:    p.Stock,
		})
	}
	return uc.pdfGen.GenerateCatalogPDF(ctx, uc.shopName, rows)
}

func (uc *ProductUseCase) toResponse(p *entity.Product) *dto.ProductResponse {
	image := ""
	if p.Image != "" {
		image = uc.imageBaseURL + "/" + p.Image
	}
	return &dto.ProductResponse{
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
