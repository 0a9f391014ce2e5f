package admin

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/tienda-api/internal/application/catalog"
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// EntityUseCase CRUD de marcas y categorías. El kind llega parseado
// (EntityKind) y se despacha con switch exhaustivo.
type EntityUseCase struct {
	brandRepo    repository.BrandRepository
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
}

// NewEntityUseCase construye el caso de uso.
func NewEntityUseCase(
	brandRepo repository.BrandRepository,
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
) *EntityUseCase {
	return &EntityUseCase{brandRepo: brandRepo, categoryRepo: categoryRepo, productRepo: productRepo}
}

// Index datos del panel de administración.
func (uc *EntityUseCase) Index() (*dto.AdminIndexResponse, error) {
	brands, err := uc.brandRepo.List()
	if err != nil {
		return nil, err
	}
	categories, err := uc.categoryRepo.List()
	if err != nil {
		return nil, err
	}
	count, err := uc.productRepo.Count()
	if err != nil {
		return nil, err
	}
	return &dto.AdminIndexResponse{
		Brands:       catalog.ToBrandResponses(brands),
		Categories:   catalog.ToCategoryResponses(categories),
		ProductCount: count,
	}, nil
}

// Create inserta una marca o categoría. Sin pre-chequeo de nombre: el índice
// único es la autoridad y el duplicado llega como ErrDuplicate.
func (uc *EntityUseCase) Create(kind entity.EntityKind, name string) (*dto.EntityResponse, error) {
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	id := uuid.New().String()
	switch kind {
	case entity.KindBrand:
		if err := uc.brandRepo.Create(&entity.Brand{ID: id, Name: name, CreatedAt: now}); err != nil {
			return nil, err
		}
	case entity.KindCategory:
		if err := uc.categoryRepo.Create(&entity.Category{ID: id, Name: name, CreatedAt: now}); err != nil {
			return nil, err
		}
	default:
		return nil, domain.ErrInvalidEntityKind
	}
	return &dto.EntityResponse{ID: id, Kind: kind.String(), Name: name}, nil
}

// Get obtiene una marca o categoría. Inexistente -> (nil, nil).
func (uc *EntityUseCase) Get(kind entity.EntityKind, id string) (*dto.EntityResponse, error) {
	switch kind {
	case entity.KindBrand:
		brand, err := uc.brandRepo.GetByID(id)
		if err != nil || brand == nil {
			return nil, err
		}
		return &dto.EntityResponse{ID: brand.ID, Kind: kind.String(), Name: brand.Name}, nil
	case entity.KindCategory:
		category, err := uc.categoryRepo.GetByID(id)
		if err != nil || category == nil {
			return nil, err
		}
		return &dto.EntityResponse{ID: category.ID, Kind: kind.String(), Name: category.Name}, nil
	}
	return nil, domain.ErrInvalidEntityKind
}

// Update renombra una marca o categoría. Inexistente -> (nil, nil).
func (uc *EntityUseCase) Update(kind entity.EntityKind, id, name string) (*dto.EntityResponse, error) {
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	switch kind {
	case entity.KindBrand:
		brand, err := uc.brandRepo.GetByID(id)
		if err != nil || brand == nil {
			return nil, err
		}
		brand.Name = name
		if err := uc.brandRepo.Update(brand); err != nil {
			return nil, err
		}
	case entity.KindCategory:
		category, err := uc.categoryRepo.GetByID(id)
		if err != nil || category == nil {
			return nil, err
		}
		category.Name = name
		if err := uc.categoryRepo.Update(category); err != nil {
			return nil, err
		}
	default:
		return nil, domain.ErrInvalidEntityKind
	}
	return &dto.EntityResponse{ID: id, Kind: kind.String(), Name: name}, nil
}

// Delete elimina una marca o categoría. Inexistente -> ErrNotFound;
// con productos dependientes -> ErrConflict (FK RESTRICT).
func (uc *EntityUseCase) Delete(kind entity.EntityKind, id string) (*dto.EntityResponse, error) {
	existing, err := uc.Get(kind, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}
	switch kind {
	case entity.KindBrand:
		if err := uc.brandRepo.Delete(id); err != nil {
			return nil, err
		}
	case entity.KindCategory:
		if err := uc.categoryRepo.Delete(id); err != nil {
			return nil, err
		}
	default:
		return nil, domain.ErrInvalidEntityKind
	}
	return existing, nil
}
