package repository

import "github.com/jhoicas/tienda-api/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	Update(category *entity.Category) error
	List() ([]*entity.Category, error)
	// ListWithProducts devuelve solo las categorías que tienen al menos un producto (join distinct).
	ListWithProducts() ([]*entity.Category, error)
	Delete(id string) error
}
