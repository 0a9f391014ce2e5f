package entity

import "github.com/jhoicas/tienda-api/internal/domain"

// EntityKind es la variante cerrada de entidades administrables del catálogo.
// Sustituye el despacho por comparación de strings: los handlers parsean una sola
// vez y el resto del código hace switch exhaustivo sobre el tipo.
type EntityKind int

const (
	KindBrand EntityKind = iota + 1
	KindCategory
	KindProduct
)

// ParseEntityKind convierte el segmento de ruta en un EntityKind.
// Devuelve domain.ErrInvalidEntityKind para cualquier otro valor.
func ParseEntityKind(s string) (EntityKind, error) {
	switch s {
	case "brand":
		return KindBrand, nil
	case "category":
		return KindCategory, nil
	case "product":
		return KindProduct, nil
	}
	return 0, domain.ErrInvalidEntityKind
}

// ParseListableKind acepta solo los kinds con listado propio en la tienda (brand, category).
func ParseListableKind(s string) (EntityKind, error) {
	k, err := ParseEntityKind(s)
	if err != nil {
		return 0, err
	}
	if k == KindProduct {
		return 0, domain.ErrInvalidEntityKind
	}
	return k, nil
}

// String devuelve el nombre en la ruta ("brand", "category", "product").
func (k EntityKind) String() string {
	switch k {
	case KindBrand:
		return "brand"
	case KindCategory:
		return "category"
	case KindProduct:
		return "product"
	}
	return "unknown"
}
