package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.ReplenishmentRepository = (*ReplenishmentRepo)(nil)

const replenishmentColumns = `id, user_id, product_id, category_id, quantity, replenished_at`

// ReplenishmentRepo implementación del libro de reposiciones sobre PostgreSQL (usable con pool o tx).
// Solo insert y select: los asientos son inmutables.
type ReplenishmentRepo struct {
	q Querier
}

// NewReplenishmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReplenishmentRepository(q Querier) *ReplenishmentRepo {
	return &ReplenishmentRepo{q: q}
}

// Create persiste un asiento de reposición. Referencias inexistentes -> ErrInvalidInput (FK).
func (r *ReplenishmentRepo) Create(rep *entity.Replenishment) error {
	query := `
		INSERT INTO replenishments (` + replenishmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		rep.ID, rep.UserID, rep.ProductID, rep.CategoryID, rep.Quantity, rep.ReplenishedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert replenishment: %w", err)
	}
	return nil
}

// ListByProduct devuelve los asientos de un producto, del más reciente al más antiguo.
func (r *ReplenishmentRepo) ListByProduct(productID string) ([]*entity.Replenishment, error) {
	query := `
		SELECT ` + replenishmentColumns + `
		FROM replenishments WHERE product_id = $1
		ORDER BY replenished_at DESC, id`
	return r.queryReplenishments(query, productID)
}

// ListByUser devuelve los asientos registrados por un usuario.
func (r *ReplenishmentRepo) ListByUser(userID string) ([]*entity.Replenishment, error) {
	query := `
		SELECT ` + replenishmentColumns + `
		FROM replenishments WHERE user_id = $1
		ORDER BY replenished_at DESC, id`
	return r.queryReplenishments(query, userID)
}

func (r *ReplenishmentRepo) queryReplenishments(query string, args ...any) ([]*entity.Replenishment, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list replenishments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Replenishment
	for rows.Next() {
		var rep entity.Replenishment
		if err := rows.Scan(&rep.ID, &rep.UserID, &rep.ProductID, &rep.CategoryID,
			&rep.Quantity, &rep.ReplenishedAt); err != nil {
			return nil, fmt.Errorf("scan replenishment: %w", err)
		}
		list = append(list, &rep)
	}
	return list, rows.Err()
}
