package dto

import "time"

// CreateReplenishmentRequest entrada para registrar una reposición de stock.
type CreateReplenishmentRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// ReplenishmentResponse salida de un asiento del libro de reposiciones.
type ReplenishmentResponse struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	ProductID     string    `json:"product_id"`
	CategoryID    string    `json:"category_id"`
	Quantity      int       `json:"quantity"`
	ReplenishedAt time.Time `json:"replenished_at"`
}
