package repository

import "github.com/jhoicas/tienda-api/internal/domain/entity"

// ReplenishmentRepository define el puerto de persistencia para el libro de
// reposiciones. Solo inserción y lectura: los asientos son inmutables.
type ReplenishmentRepository interface {
	Create(rep *entity.Replenishment) error
	ListByProduct(productID string) ([]*entity.Replenishment, error)
	ListByUser(userID string) ([]*entity.Replenishment, error)
}
