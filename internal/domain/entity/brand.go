package entity

import "time"

// Brand representa una marca del catálogo. Nombre único; posee cero o más Products.
type Brand struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
