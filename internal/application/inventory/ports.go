package inventory

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza que el asiento de reposición y el incremento de stock
// se confirmen juntos o no se confirme ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		replRepo repository.ReplenishmentRepository,
		productRepo repository.ProductRepository,
	) error) error
}
