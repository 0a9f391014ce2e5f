package entity

import "time"

// Replenishment es un asiento del libro de reposiciones de stock.
// Inmutable después de creado: no existe camino de update ni delete.
// Su inserción debe incrementar el stock del producto en la misma transacción.
type Replenishment struct {
	ID            string
	UserID        string
	ProductID     string
	CategoryID    string // denormalizado desde el producto al momento del asiento
	Quantity      int    // > 0
	ReplenishedAt time.Time
}
