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

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, price, stock, description, image, brand_id, category_id, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto. brand_id/category_id no se pre-validan:
// la FK es la autoridad y 23503 se traduce a ErrInvalidInput.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Price, product.Stock, product.Description,
		product.Image, product.BrandID, product.CategoryID, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update actualiza los campos editables de un producto (incluida la ruta de imagen).
// El stock solo cambia aquí por edición explícita del admin; las reposiciones usan IncrementStock.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, price = $3, stock = $4, description = $5, image = $6,
			brand_id = $7, category_id = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Price, product.Stock, product.Description,
		product.Image, product.BrandID, product.CategoryID, product.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// Delete elimina un producto por ID. Con asientos de reposición dependientes la FK
// (ON DELETE RESTRICT) lo impide y se devuelve ErrConflict.
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// IncrementStock aplica stock = stock + qty en una sola sentencia relativa.
// Reposiciones concurrentes sobre el mismo producto serializan en la fila:
// no hay lost updates porque nunca se escribe un valor leído en memoria.
func (r *ProductRepo) IncrementStock(id string, qty int) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE products SET stock = stock + $2, updated_at = now() WHERE id = $1`,
		id, qty,
	)
	if err != nil {
		return fmt.Errorf("increment stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListInStock lista productos con stock > 0, paginados y en orden determinista.
func (r *ProductRepo) ListInStock(limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products WHERE stock > 0
		ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`
	return r.queryProducts(query, limit, offset)
}

// CountInStock cuenta los productos con stock > 0.
func (r *ProductRepo) CountInStock() (int, error) {
	return r.count(`SELECT count(*) FROM products WHERE stock > 0`)
}

// ListByBrand lista productos de una marca con paginación.
func (r *ProductRepo) ListByBrand(brandID string, limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products WHERE brand_id = $1
		ORDER BY created_at DESC, id LIMIT $2 OFFSET $3`
	return r.queryProducts(query, brandID, limit, offset)
}

// CountByBrand cuenta los productos de una marca.
func (r *ProductRepo) CountByBrand(brandID string) (int, error) {
	return r.count(`SELECT count(*) FROM products WHERE brand_id = $1`, brandID)
}

// ListByCategory lista productos de una categoría con paginación.
func (r *ProductRepo) ListByCategory(categoryID string, limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products WHERE category_id = $1
		ORDER BY created_at DESC, id LIMIT $2 OFFSET $3`
	return r.queryProducts(query, categoryID, limit, offset)
}

// CountByCategory cuenta los productos de una categoría.
func (r *ProductRepo) CountByCategory(categoryID string) (int, error) {
	return r.count(`SELECT count(*) FROM products WHERE category_id = $1`, categoryID)
}

// List devuelve el catálogo completo (formularios de admin y export PDF).
func (r *ProductRepo) List() ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC, id`
	return r.queryProducts(query)
}

// Count cuenta todos los productos.
func (r *ProductRepo) Count() (int, error) {
	return r.count(`SELECT count(*) FROM products`)
}

func (r *ProductRepo) queryProducts(query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *ProductRepo) count(query string, args ...any) (int, error) {
	var n int
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Price, &p.Stock, &p.Description, &p.Image,
		&p.BrandID, &p.CategoryID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
