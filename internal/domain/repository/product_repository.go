package repository

import "github.com/jhoicas/tienda-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	Delete(id string) error

	// Listados de la tienda: solo productos con stock > 0, orden determinista.
	ListInStock(limit, offset int) ([]*entity.Product, error)
	CountInStock() (int, error)
	ListByBrand(brandID string, limit, offset int) ([]*entity.Product, error)
	CountByBrand(brandID string) (int, error)
	ListByCategory(categoryID string, limit, offset int) ([]*entity.Product, error)
	CountByCategory(categoryID string) (int, error)

	// List devuelve el catálogo completo (formularios de admin, export PDF).
	List() ([]*entity.Product, error)
	Count() (int, error)

	// IncrementStock aplica stock = stock + qty como update relativo en una sola
	// sentencia. Debe usarse dentro de la misma transacción que el asiento de
	// reposición; nunca leer-modificar-escribir desde memoria.
	IncrementStock(id string, qty int) error
}
