package entity

import "time"

// Category representa una categoría del catálogo. Nombre único; posee cero o más Products.
type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
