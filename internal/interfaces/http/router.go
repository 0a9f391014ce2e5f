package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/tienda-api/internal/application/admin"
	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/catalog"
	"github.com/jhoicas/tienda-api/internal/application/inventory"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	BrowseUC    *catalog.BrowseUseCase
	EntityUC    *admin.EntityUseCase
	ProductUC   *admin.ProductUseCase
	ReplenishUC *inventory.ReplenishUseCase
	AuthUC      *auth.AuthUseCase
	JWTSecret   string
}

// Router registra las rutas de la tienda y del panel de administración.
//
// Las rutas de producto (/add/product, /update/product/:id) se registran ANTES
// que las genéricas con :entity para que Fiber las resuelva primero.
func Router(app *fiber.App, deps RouterDeps) {
	authMW := AuthMiddleware(deps.JWTSecret)
	adminRole := RequireRole(entity.RoleAdmin)
	stockRole := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := app.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Tienda (público)
	storefront := NewStorefrontHandler(deps.BrowseUC)
	app.Get("/", storefront.Home)
	app.Get("/product/:id", storefront.ProductDetail)
	app.Get("/entity/:entity/:id", storefront.EntityProducts)

	// Panel de administración (requiere Bearer Token + rol admin)
	entityHandler := NewAdminEntityHandler(deps.EntityUC, deps.ProductUC)
	productHandler := NewAdminProductHandler(deps.ProductUC)

	app.Get("/admin", authMW, adminRole, entityHandler.Index)
	app.Get("/admin/catalog/pdf", authMW, adminRole, productHandler.ExportCatalogPDF)

	app.Get("/add/product", authMW, adminRole, productHandler.AddForm)
	app.Post("/add/product", authMW, adminRole, productHandler.Create)
	app.Get("/add/:entity", authMW, adminRole, entityHandler.AddForm)
	app.Post("/add/:entity", authMW, adminRole, entityHandler.Create)

	app.Get("/update/product/:id", authMW, adminRole, productHandler.UpdateForm)
	app.Post("/update/product/:id", authMW, adminRole, productHandler.Update)
	app.Get("/update/:entity/:id", authMW, adminRole, entityHandler.UpdateForm)
	app.Post("/update/:entity/:id", authMW, adminRole, entityHandler.Update)

	// Eliminación solo por POST explícito; el handler despacha por kind.
	app.Post("/delete/:entity/:id", authMW, adminRole, entityHandler.Delete)

	// Reposiciones (admin o bodeguero)
	replHandler := NewReplenishmentHandler(deps.ReplenishUC)
	app.Post("/replenishments", authMW, stockRole, replHandler.Create)
	app.Get("/replenishments/product/:id", authMW, stockRole, replHandler.HistoryByProduct)
	app.Get("/replenishments/user/:id", authMW, stockRole, replHandler.HistoryByUser)
}
