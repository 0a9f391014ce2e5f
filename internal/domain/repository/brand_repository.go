package repository

import "github.com/jhoicas/tienda-api/internal/domain/entity"

// BrandRepository define el puerto de persistencia para Brand (DIP).
type BrandRepository interface {
	Create(brand *entity.Brand) error
	GetByID(id string) (*entity.Brand, error)
	Update(brand *entity.Brand) error
	List() ([]*entity.Brand, error)
	// ListWithProducts devuelve solo las marcas que tienen al menos un producto (join distinct).
	ListWithProducts() ([]*entity.Brand, error)
	Delete(id string) error
}
