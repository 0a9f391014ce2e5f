package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// Stock solo cambia por reposiciones (incremento relativo en la misma tx que el asiento)
// o por edición explícita del administrador.
type Product struct {
	ID          string
	Name        string
	Price       decimal.Decimal
	Stock       int // >= 0 (CHECK en la tabla)
	Description string
	Image       string // nombre de archivo bajo el directorio de uploads; vacío si no tiene
	BrandID     string
	CategoryID  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
