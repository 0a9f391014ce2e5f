package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/admin"
	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/catalog"
	"github.com/jhoicas/tienda-api/internal/application/inventory"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/jhoicas/tienda-api/internal/infrastructure/images"
	apphttp "github.com/jhoicas/tienda-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria (emulan los índices únicos y FKs RESTRICT de la BD)
// ──────────────────────────────────────────────────────────────────────────────

type stubBrandRepo struct {
	brands map[string]*entity.Brand
}

func (r *stubBrandRepo) Create(b *entity.Brand) error {
	for _, existing := range r.brands {
		if existing.Name == b.Name {
			return domain.ErrDuplicate
		}
	}
	r.brands[b.ID] = b
	return nil
}
func (r *stubBrandRepo) GetByID(id string) (*entity.Brand, error) { return r.brands[id], nil }
func (r *stubBrandRepo) Update(b *entity.Brand) error {
	for _, existing := range r.brands {
		if existing.ID != b.ID && existing.Name == b.Name {
			return domain.ErrDuplicate
		}
	}
	r.brands[b.ID] = b
	return nil
}
func (r *stubBrandRepo) List() ([]*entity.Brand, error) {
	var out []*entity.Brand
	for _, b := range r.brands {
		out = append(out, b)
	}
	return out, nil
}
func (r *stubBrandRepo) ListWithProducts() ([]*entity.Brand, error) { return nil, nil }
func (r *stubBrandRepo) Delete(id string) error {
	delete(r.brands, id)
	return nil
}

type stubCategoryRepo struct {
	categories map[string]*entity.Category
	// restrict simula la FK: borrar una categoría con productos falla.
	restrict map[string]bool
}

func (r *stubCategoryRepo) Create(c *entity.Category) error {
	r.categories[c.ID] = c
	return nil
}
func (r *stubCategoryRepo) GetByID(id string) (*entity.Category, error) { return r.categories[id], nil }
func (r *stubCategoryRepo) Update(c *entity.Category) error {
	r.categories[c.ID] = c
	return nil
}
func (r *stubCategoryRepo) List() ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range r.categories {
		out = append(out, c)
	}
	return out, nil
}
func (r *stubCategoryRepo) ListWithProducts() ([]*entity.Category, error) { return nil, nil }
func (r *stubCategoryRepo) Delete(id string) error {
	if r.restrict[id] {
		return domain.ErrConflict
	}
	delete(r.categories, id)
	return nil
}

type stubProductRepo struct {
	products map[string]*entity.Product
}

func (r *stubProductRepo) Create(p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}
func (r *stubProductRepo) GetByID(id string) (*entity.Product, error) { return r.products[id], nil }
func (r *stubProductRepo) Update(p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}
func (r *stubProductRepo) Delete(id string) error {
	delete(r.products, id)
	return nil
}
func (r *stubProductRepo) IncrementStock(id string, qty int) error {
	p, ok := r.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock += qty
	return nil
}
func (r *stubProductRepo) ListInStock(limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *stubProductRepo) CountInStock() (int, error) { return 0, nil }
func (r *stubProductRepo) ListByBrand(string, int, int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *stubProductRepo) CountByBrand(string) (int, error) { return 0, nil }
func (r *stubProductRepo) ListByCategory(string, int, int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *stubProductRepo) CountByCategory(string) (int, error) { return 0, nil }
func (r *stubProductRepo) List() ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, nil
}
func (r *stubProductRepo) Count() (int, error) { return len(r.products), nil }

type stubUserRepo struct {
	users map[string]*entity.User
}

func (r *stubUserRepo) Create(u *entity.User) error { r.users[u.ID] = u; return nil }
func (r *stubUserRepo) GetByID(id string) (*entity.User, error) { return r.users[id], nil }
func (r *stubUserRepo) FindByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (r *stubUserRepo) FindByUsername(username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

type stubReplRepo struct {
	entries []*entity.Replenishment
}

func (r *stubReplRepo) Create(rep *entity.Replenishment) error {
	r.entries = append(r.entries, rep)
	return nil
}
func (r *stubReplRepo) ListByProduct(string) ([]*entity.Replenishment, error) {
	return r.entries, nil
}
func (r *stubReplRepo) ListByUser(string) ([]*entity.Replenishment, error) {
	return r.entries, nil
}

type stubTxRunner struct {
	replRepo    repository.ReplenishmentRepository
	productRepo repository.ProductRepository
}

func (r *stubTxRunner) Run(ctx context.Context, fn func(
	replRepo repository.ReplenishmentRepository,
	productRepo repository.ProductRepository,
) error) error {
	return fn(r.replRepo, r.productRepo)
}

type stubPDFGen struct{}

func (stubPDFGen) GenerateCatalogPDF(_ context.Context, _ string, _ []admin.CatalogRowForPDF) ([]byte, error) {
	return []byte("%PDF-1.4 stub"), nil
}

// testEnv arma la app Fiber completa con fakes y un token admin listo.
type testEnv struct {
	app         *fiber.App
	adminToken  string
	brandRepo   *stubBrandRepo
	productRepo *stubProductRepo
	imageStore  *images.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	brandRepo := &stubBrandRepo{brands: map[string]*entity.Brand{}}
	categoryRepo := &stubCategoryRepo{categories: map[string]*entity.Category{}, restrict: map[string]bool{}}
	productRepo := &stubProductRepo{products: map[string]*entity.Product{}}
	userRepo := &stubUserRepo{users: map[string]*entity.User{
		testUserID: {ID: testUserID, Username: "admin", Email: "admin@tienda.test", Role: entity.RoleAdmin},
	}}

	store, err := images.NewStore(afero.NewMemMapFs(), "/uploads")
	require.NoError(t, err)

	browseUC := catalog.NewBrowseUseCase(productRepo, brandRepo, categoryRepo, "/static/images")
	entityUC := admin.NewEntityUseCase(brandRepo, categoryRepo, productRepo)
	productUC := admin.NewProductUseCase(productRepo, brandRepo, categoryRepo, store, stubPDFGen{}, "Tienda Test", "/static/images")
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer})
	replRepo := &stubReplRepo{}
	txRunner := &stubTxRunner{replRepo: replRepo, productRepo: productRepo}
	replenishUC := inventory.NewReplenishUseCase(txRunner, userRepo, productRepo, replRepo)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		BrowseUC:    browseUC,
		EntityUC:    entityUC,
		ProductUC:   productUC,
		ReplenishUC: replenishUC,
		AuthUC:      authUC,
		JWTSecret:   testJWTSecret,
	})

	return &testEnv{
		app:         app,
		adminToken:  tokenForRole(t, entity.RoleAdmin),
		brandRepo:   brandRepo,
		productRepo: productRepo,
		imageStore:  store,
	}
}

func (e *testEnv) do(t *testing.T, method, target string, body io.Reader, contentType string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Authorization", e.adminToken)
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

// ──────────────────────────────────────────────────────────────────────────────
// Kind inválido: redirect con aviso, no página de error
// ──────────────────────────────────────────────────────────────────────────────

func TestEntityProducts_KindInvalido_RedirectConAviso(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/entity/marca/algun-id", nil)
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode, "kind desconocido redirige, no es error")
	loc := resp.Header.Get("Location")
	assert.True(t, strings.HasPrefix(loc, "/admin?warning="), "el redirect lleva el aviso: %s", loc)
}

func TestAdminCreate_KindInvalido_RedirectConAviso(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/add/cosa",
		jsonBody(t, map[string]string{"name": "X"}), fiber.MIMEApplicationJSON)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Location"), "/admin?warning=")
}

// ──────────────────────────────────────────────────────────────────────────────
// CRUD de marcas/categorías
// ──────────────────────────────────────────────────────────────────────────────

func TestAdminCreateBrand(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/add/brand",
		jsonBody(t, map[string]string{"name": "Acme"}), fiber.MIMEApplicationJSON)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "brand", body["kind"])
	assert.Equal(t, "Acme", body["name"])
	assert.NotEmpty(t, body["id"])
	assert.Len(t, env.brandRepo.brands, 1)
}

// Nombre vacío: 400 con el campo marcado, nada persiste.
func TestAdminCreateBrand_NombreVacio(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/add/brand",
		jsonBody(t, map[string]string{"name": ""}), fiber.MIMEApplicationJSON)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "VALIDATION")
	assert.Empty(t, env.brandRepo.brands, "la validación fallida no debe persistir nada")
}

// Nombre duplicado: 409 con mensaje claro.
func TestAdminCreateBrand_Duplicada(t *testing.T) {
	env := newTestEnv(t)
	env.brandRepo.brands["b1"] = &entity.Brand{ID: "b1", Name: "Acme"}

	resp := env.do(t, http.MethodPost, "/add/brand",
		jsonBody(t, map[string]string{"name": "Acme"}), fiber.MIMEApplicationJSON)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "DUPLICATE")
	assert.Contains(t, string(body), "Acme", "el mensaje nombra el duplicado")
	assert.Len(t, env.brandRepo.brands, 1)
}

func TestAdminUpdateBrand_Inexistente(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/update/brand/no-existe",
		jsonBody(t, map[string]string{"name": "Nuevo"}), fiber.MIMEApplicationJSON)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// Sin token: 401 en cualquier ruta de admin.
func TestAdmin_SinToken(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos: form multipart
// ──────────────────────────────────────────────────────────────────────────────

func productForm(t *testing.T, fields map[string]string, withImage bool) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if withImage {
		fw, err := w.CreateFormFile("image", "producto.jpg")
		require.NoError(t, err)
		_, err = fw.Write([]byte("jpg-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestAdminCreateProduct(t *testing.T) {
	env := newTestEnv(t)

	body, contentType := productForm(t, map[string]string{
		"name":        "Teclado",
		"price":       "149.90",
		"stock":       "10",
		"description": "Mecánico",
		"brand_id":    "b1",
		"category_id": "c1",
	}, true)
	resp := env.do(t, http.MethodPost, "/add/product", body, contentType)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "Teclado", out["name"])
	image, _ := out["image"].(string)
	assert.True(t, strings.HasPrefix(image, "/static/images/"), "la imagen queda bajo la URL pública: %s", image)
	assert.True(t, strings.HasSuffix(image, ".jpg"))

	require.Len(t, env.productRepo.products, 1)
	for _, p := range env.productRepo.products {
		assert.True(t, env.imageStore.Exists(p.Image), "el archivo de imagen existe en el store")
		assert.True(t, p.Price.Equal(decimal.RequireFromString("149.90")))
	}
}

// Campos inválidos: 400 con errores por campo y nada persistido.
func TestAdminCreateProduct_Validacion(t *testing.T) {
	env := newTestEnv(t)

	body, contentType := productForm(t, map[string]string{
		"name":        "",
		"price":       "no-es-numero",
		"stock":       "-2",
		"brand_id":    "b1",
		"category_id": "c1",
	}, false)
	resp := env.do(t, http.MethodPost, "/add/product", body, contentType)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var out struct {
		Code   string            `json:"code"`
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "VALIDATION", out.Code)
	assert.Contains(t, out.Fields, "name")
	assert.Contains(t, out.Fields, "description")
	assert.Contains(t, out.Fields, "price")
	assert.Contains(t, out.Fields, "stock")
	assert.Contains(t, out.Fields, "image")

	assert.Empty(t, env.productRepo.products, "la validación fallida no debe persistir nada")
}

// La descripción es obligatoria: un form completo salvo por ella responde 400
// y no persiste el producto.
func TestAdminCreateProduct_SinDescripcion(t *testing.T) {
	env := newTestEnv(t)

	body, contentType := productForm(t, map[string]string{
		"name":        "Teclado",
		"price":       "149.90",
		"stock":       "10",
		"brand_id":    "b1",
		"category_id": "c1",
	}, true)
	resp := env.do(t, http.MethodPost, "/add/product", body, contentType)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var out struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Contains(t, out.Fields, "description")
	assert.Empty(t, env.productRepo.products)
}

// Actualizar con imagen nueva: la anterior se borra del store y la nueva queda.
func TestAdminUpdateProduct_ReemplazaImagen(t *testing.T) {
	env := newTestEnv(t)

	oldName, err := env.imageStore.Save(strings.NewReader("vieja"), "vieja.jpg")
	require.NoError(t, err)
	env.productRepo.products["p1"] = &entity.Product{
		ID: "p1", Name: "Teclado", Stock: 3, Image: oldName,
		BrandID: "b1", CategoryID: "c1",
	}

	body, contentType := productForm(t, map[string]string{
		"name":        "Teclado mecánico",
		"price":       "199.00",
		"stock":       "3",
		"description": "Con switches nuevos",
		"brand_id":    "b1",
		"category_id": "c1",
	}, true)
	resp := env.do(t, http.MethodPost, "/update/product/p1", body, contentType)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	p := env.productRepo.products["p1"]
	require.NotNil(t, p)
	assert.NotEqual(t, oldName, p.Image, "la fila apunta a la imagen nueva")
	assert.True(t, env.imageStore.Exists(p.Image), "la imagen nueva existe en el store")
	assert.False(t, env.imageStore.Exists(oldName), "la imagen anterior se elimina")
}

// Actualizar sin imagen conserva la actual.
func TestAdminUpdateProduct_SinImagenConservaLaActual(t *testing.T) {
	env := newTestEnv(t)

	oldName, err := env.imageStore.Save(strings.NewReader("actual"), "actual.png")
	require.NoError(t, err)
	env.productRepo.products["p1"] = &entity.Product{
		ID: "p1", Name: "Teclado", Stock: 3, Image: oldName,
		BrandID: "b1", CategoryID: "c1",
	}

	body, contentType := productForm(t, map[string]string{
		"name":        "Teclado renombrado",
		"price":       "99.00",
		"stock":       "3",
		"description": "Sin cambio de foto",
		"brand_id":    "b1",
		"category_id": "c1",
	}, false)
	resp := env.do(t, http.MethodPost, "/update/product/p1", body, contentType)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	p := env.productRepo.products["p1"]
	require.NotNil(t, p)
	assert.Equal(t, oldName, p.Image)
	assert.True(t, env.imageStore.Exists(oldName))
	assert.Equal(t, "Teclado renombrado", p.Name)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete: despacho por kind y política RESTRICT
// ──────────────────────────────────────────────────────────────────────────────

// /delete/product/:id borra la fila y su archivo de imagen.
func TestAdminDeleteProduct_BorraFilaEImagen(t *testing.T) {
	env := newTestEnv(t)

	name, err := env.imageStore.Save(strings.NewReader("img"), "p.jpg")
	require.NoError(t, err)
	env.productRepo.products["p1"] = &entity.Product{ID: "p1", Name: "Teclado", Image: name}

	resp := env.do(t, http.MethodPost, "/delete/product/p1", nil, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, env.productRepo.products)
	assert.False(t, env.imageStore.Exists(name), "la imagen se borra junto con el producto")
}

func TestAdminDeleteBrand_Inexistente(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/delete/brand/no-existe", nil, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAdminDelete_KindInvalido_RedirectConAviso(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/delete/user/u1", nil, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Location"), "/admin?warning=")
}

// GET no elimina: solo el POST explícito llega al handler de borrado.
func TestAdminDelete_GETNoEstaRuteado(t *testing.T) {
	env := newTestEnv(t)
	env.brandRepo.brands["b1"] = &entity.Brand{ID: "b1", Name: "Acme"}

	req := httptest.NewRequest(http.MethodGet, "/delete/brand/b1", nil)
	req.Header.Set("Authorization", env.adminToken)
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.NotEqual(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, env.brandRepo.brands, 1, "GET nunca debe eliminar")
}

// ──────────────────────────────────────────────────────────────────────────────
// Reposiciones
// ──────────────────────────────────────────────────────────────────────────────

// El POST de reposición registra el asiento con el usuario del token y sube el stock.
func TestReplenishments_Post(t *testing.T) {
	env := newTestEnv(t)
	env.productRepo.products["p1"] = &entity.Product{ID: "p1", Name: "Teclado", Stock: 2, CategoryID: "c1"}

	resp := env.do(t, http.MethodPost, "/replenishments",
		jsonBody(t, map[string]any{"product_id": "p1", "quantity": 5}), fiber.MIMEApplicationJSON)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, testUserID, out["user_id"], "el asiento lleva el usuario del token")
	assert.Equal(t, "c1", out["category_id"])

	assert.Equal(t, 7, env.productRepo.products["p1"].Stock)
}

func TestReplenishments_CantidadInvalida(t *testing.T) {
	env := newTestEnv(t)
	env.productRepo.products["p1"] = &entity.Product{ID: "p1", Name: "Teclado", Stock: 2, CategoryID: "c1"}

	resp := env.do(t, http.MethodPost, "/replenishments",
		jsonBody(t, map[string]any{"product_id": "p1", "quantity": 0}), fiber.MIMEApplicationJSON)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, 2, env.productRepo.products["p1"].Stock, "el stock no cambia si la cantidad es inválida")
}

// ──────────────────────────────────────────────────────────────────────────────
// Detalle de producto público
// ──────────────────────────────────────────────────────────────────────────────

func TestProductDetail_404(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/product/no-existe", nil)
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "NOT_FOUND")
}
