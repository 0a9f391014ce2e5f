package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.BrandRepository = (*BrandRepo)(nil)

// BrandRepo implementación del puerto BrandRepository sobre PostgreSQL (usable con pool o tx).
type BrandRepo struct {
	q Querier
}

// NewBrandRepository construye el adaptador de persistencia para marcas. Pasar pool o tx (Querier).
func NewBrandRepository(q Querier) *BrandRepo {
	return &BrandRepo{q: q}
}

// Create persiste una nueva marca. Nombre duplicado -> ErrDuplicate (índice único).
func (r *BrandRepo) Create(brand *entity.Brand) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO brands (id, name, created_at) VALUES ($1, $2, $3)`,
		brand.ID, brand.Name, brand.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert brand: %w", err)
	}
	return nil
}

// GetByID obtiene una marca por ID.
func (r *BrandRepo) GetByID(id string) (*entity.Brand, error) {
	var b entity.Brand
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, created_at FROM brands WHERE id = $1`, id,
	).Scan(&b.ID, &b.Name, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get brand: %w", err)
	}
	return &b, nil
}

// Update actualiza el nombre de una marca. Nombre duplicado -> ErrDuplicate.
func (r *BrandRepo) Update(brand *entity.Brand) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE brands SET name = $2 WHERE id = $1`,
		brand.ID, brand.Name,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update brand: %w", err)
	}
	return nil
}

// List devuelve todas las marcas.
func (r *BrandRepo) List() ([]*entity.Brand, error) {
	return r.queryBrands(`SELECT id, name, created_at FROM brands ORDER BY created_at DESC, id`)
}

// ListWithProducts devuelve las marcas con al menos un producto (join distinct).
func (r *BrandRepo) ListWithProducts() ([]*entity.Brand, error) {
	query := `
		SELECT DISTINCT b.id, b.name, b.created_at
		FROM brands b
		JOIN products p ON p.brand_id = b.id
		ORDER BY b.created_at DESC, b.id`
	return r.queryBrands(query)
}

// Delete elimina una marca por ID. Con productos dependientes la FK (RESTRICT) lo impide -> ErrConflict.
func (r *BrandRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM brands WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete brand: %w", err)
	}
	return nil
}

func (r *BrandRepo) queryBrands(query string, args ...any) ([]*entity.Brand, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	defer rows.Close()
	var list []*entity.Brand
	for rows.Next() {
		var b entity.Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan brand: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}
