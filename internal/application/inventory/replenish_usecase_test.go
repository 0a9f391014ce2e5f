package inventory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/inventory"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	users map[string]*entity.User
}

func (r *fakeUserRepo) Create(u *entity.User) error { r.users[u.ID] = u; return nil }
func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	return r.users[id], nil
}
func (r *fakeUserRepo) FindByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (r *fakeUserRepo) FindByUsername(username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

// fakeProductRepo guarda productos en memoria. IncrementStock es relativo y
// serializado por mutex, igual que el UPDATE de una sola sentencia en la BD.
type fakeProductRepo struct {
	mu       sync.Mutex
	products map[string]*entity.Product
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error { return nil }
func (r *fakeProductRepo) Delete(id string) error { return nil }

func (r *fakeProductRepo) IncrementStock(id string, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock += qty
	return nil
}

func (r *fakeProductRepo) ListInStock(limit, offset int) ([]*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) CountInStock() (int, error) { return 0, nil }
func (r *fakeProductRepo) ListByBrand(brandID string, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) CountByBrand(brandID string) (int, error) { return 0, nil }
func (r *fakeProductRepo) ListByCategory(categoryID string, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) CountByCategory(categoryID string) (int, error) { return 0, nil }
func (r *fakeProductRepo) List() ([]*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) Count() (int, error) { return 0, nil }

type fakeReplRepo struct {
	mu      sync.Mutex
	entries []*entity.Replenishment
}

func (r *fakeReplRepo) Create(rep *entity.Replenishment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, rep)
	return nil
}

func (r *fakeReplRepo) ListByProduct(productID string) ([]*entity.Replenishment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Replenishment
	for _, e := range r.entries {
		if e.ProductID == productID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeReplRepo) ListByUser(userID string) ([]*entity.Replenishment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Replenishment
	for _, e := range r.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

// fakeTxRunner ejecuta el callback con los mismos fakes. Si el callback falla,
// deshace el asiento agregado para emular el rollback.
type fakeTxRunner struct {
	replRepo    *fakeReplRepo
	productRepo *fakeProductRepo
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	replRepo repository.ReplenishmentRepository,
	productRepo repository.ProductRepository,
) error) error {
	if err := fn(r.replRepo, r.productRepo); err != nil {
		r.replRepo.mu.Lock()
		r.replRepo.entries = r.replRepo.entries[:len(r.replRepo.entries)-1]
		r.replRepo.mu.Unlock()
		return err
	}
	return nil
}

func newReplenishFixture() (*inventory.ReplenishUseCase, *fakeProductRepo, *fakeReplRepo) {
	userRepo := &fakeUserRepo{users: map[string]*entity.User{
		"user-1": {ID: "user-1", Username: "bodeguero1", Email: "b@tienda.test", Role: entity.RoleBodeguero},
	}}
	productRepo := &fakeProductRepo{products: map[string]*entity.Product{
		"prod-1": {ID: "prod-1", Name: "Teclado", Stock: 10, CategoryID: "cat-1", BrandID: "brand-1"},
	}}
	replRepo := &fakeReplRepo{}
	txRunner := &fakeTxRunner{replRepo: replRepo, productRepo: productRepo}
	uc := inventory.NewReplenishUseCase(txRunner, userRepo, productRepo, replRepo)
	return uc, productRepo, replRepo
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Una reposición válida crea el asiento y sube el stock en la misma operación.
func TestReplenish_AsientoEIncrementoJuntos(t *testing.T) {
	uc, productRepo, replRepo := newReplenishFixture()

	out, err := uc.Replenish(context.Background(), "user-1", dto.CreateReplenishmentRequest{
		ProductID: "prod-1",
		Quantity:  5,
	})
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.Equal(t, "prod-1", out.ProductID)
	assert.Equal(t, "cat-1", out.CategoryID, "la categoría queda denormalizada en el asiento")
	assert.Equal(t, 5, out.Quantity)
	assert.False(t, out.ReplenishedAt.IsZero())

	p, _ := productRepo.GetByID("prod-1")
	assert.Equal(t, 15, p.Stock, "stock final = inicial + cantidad")
	assert.Len(t, replRepo.entries, 1)
}

// Cantidad cero o negativa no persiste nada.
func TestReplenish_CantidadInvalida(t *testing.T) {
	uc, productRepo, replRepo := newReplenishFixture()

	for _, qty := range []int{0, -3} {
		_, err := uc.Replenish(context.Background(), "user-1", dto.CreateReplenishmentRequest{
			ProductID: "prod-1",
			Quantity:  qty,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}

	p, _ := productRepo.GetByID("prod-1")
	assert.Equal(t, 10, p.Stock, "el stock no debe cambiar")
	assert.Empty(t, replRepo.entries)
}

// Producto inexistente → ErrNotFound, sin asiento.
func TestReplenish_ProductoInexistente(t *testing.T) {
	uc, _, replRepo := newReplenishFixture()

	_, err := uc.Replenish(context.Background(), "user-1", dto.CreateReplenishmentRequest{
		ProductID: "no-existe",
		Quantity:  3,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, replRepo.entries)
}

// Usuario del token inexistente → ErrUserNotFound.
func TestReplenish_UsuarioInexistente(t *testing.T) {
	uc, _, _ := newReplenishFixture()

	_, err := uc.Replenish(context.Background(), "fantasma", dto.CreateReplenishmentRequest{
		ProductID: "prod-1",
		Quantity:  3,
	})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// txRunnerIncrementoRoto simula que el producto desapareció entre la validación
// y la tx: el asiento se inserta pero el incremento falla y todo se revierte.
type txRunnerIncrementoRoto struct {
	replRepo *fakeReplRepo
}

func (r *txRunnerIncrementoRoto) Run(ctx context.Context, fn func(
	replRepo repository.ReplenishmentRepository,
	productRepo repository.ProductRepository,
) error) error {
	before := len(r.replRepo.entries)
	broken := &fakeProductRepo{products: map[string]*entity.Product{}}
	if err := fn(r.replRepo, broken); err != nil {
		r.replRepo.mu.Lock()
		r.replRepo.entries = r.replRepo.entries[:before]
		r.replRepo.mu.Unlock()
		return err
	}
	return nil
}

// Si el incremento falla dentro de la tx, el asiento se revierte: nunca queda
// un asiento sin su incremento.
func TestReplenish_RollbackSiIncrementoFalla(t *testing.T) {
	userRepo := &fakeUserRepo{users: map[string]*entity.User{
		"user-1": {ID: "user-1", Username: "b", Email: "b@tienda.test", Role: entity.RoleBodeguero},
	}}
	productRepo := &fakeProductRepo{products: map[string]*entity.Product{
		"prod-1": {ID: "prod-1", Name: "Teclado", Stock: 10, CategoryID: "cat-1"},
	}}
	replRepo := &fakeReplRepo{}
	uc := inventory.NewReplenishUseCase(&txRunnerIncrementoRoto{replRepo: replRepo}, userRepo, productRepo, replRepo)

	_, err := uc.Replenish(context.Background(), "user-1", dto.CreateReplenishmentRequest{
		ProductID: "prod-1",
		Quantity:  4,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, replRepo.entries, "el asiento fallido no debe quedar en el libro")

	p, _ := productRepo.GetByID("prod-1")
	assert.Equal(t, 10, p.Stock, "el stock no debe cambiar si la tx se revierte")
}

// Reposiciones concurrentes sobre el mismo producto: ninguna se pierde.
// stock final = stock inicial + suma de cantidades.
func TestReplenish_ConcurrenciaSinLostUpdates(t *testing.T) {
	uc, productRepo, replRepo := newReplenishFixture()

	const workers = 50
	const qty = 3

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, err := uc.Replenish(context.Background(), "user-1", dto.CreateReplenishmentRequest{
				ProductID: "prod-1",
				Quantity:  qty,
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	p, _ := productRepo.GetByID("prod-1")
	assert.Equal(t, 10+workers*qty, p.Stock,
		"el incremento relativo no debe perder actualizaciones concurrentes")
	assert.Len(t, replRepo.entries, workers, "debe haber un asiento por reposición")
}

// Historial por producto: valida existencia y devuelve los asientos.
func TestHistoryByProduct(t *testing.T) {
	uc, _, _ := newReplenishFixture()

	for i := 0; i < 3; i++ {
		_, err := uc.Replenish(context.Background(), "user-1", dto.CreateReplenishmentRequest{
			ProductID: "prod-1",
			Quantity:  2,
		})
		require.NoError(t, err)
	}

	items, err := uc.HistoryByProduct("prod-1")
	require.NoError(t, err)
	assert.Len(t, items, 3)

	_, err = uc.HistoryByProduct("no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Historial por usuario: devuelve solo los asientos de ese usuario.
func TestHistoryByUser(t *testing.T) {
	uc, _, replRepo := newReplenishFixture()

	for i := 0; i < 2; i++ {
		_, err := uc.Replenish(context.Background(), "user-1", dto.CreateReplenishmentRequest{
			ProductID: "prod-1",
			Quantity:  2,
		})
		require.NoError(t, err)
	}
	// Asiento de otro usuario: no debe aparecer en el historial de user-1.
	require.NoError(t, replRepo.Create(&entity.Replenishment{
		ID: "rep-ajeno", UserID: "user-2", ProductID: "prod-1", Quantity: 1,
	}))

	items, err := uc.HistoryByUser("user-1")
	require.NoError(t, err)
	assert.Len(t, items, 2)
	for _, it := range items {
		assert.Equal(t, "user-1", it.UserID)
	}

	_, err = uc.HistoryByUser("fantasma")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
