package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/control-stock-api/internal/application/analytics"
	"github.com/jhoicas/control-stock-api/internal/application/auth"
	"github.com/jhoicas/control-stock-api/internal/application/inventory"
	"github.com/jhoicas/control-stock-api/internal/application/usecase"
	"github.com/jhoicas/control-stock-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	UserUC           *usecase.UserUseCase
	BusinessUC       *usecase.BusinessUseCase
	BranchUC         *usecase.BranchUseCase
	CategoryUC       *usecase.CategoryUseCase
	SupplierUC       *usecase.SupplierUseCase
	DocumentUC       *usecase.DocumentUseCase
	ProductUC        *usecase.ProductUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	MovementQuery    *inventory.MovementQueryUseCase
	StockUC          *inventory.StockUseCase
	DashboardUC      *appanalytics.DashboardUseCase
	Denylist         auth.TokenDenylist
	JWTSecret        string
}

// NewApp crea la app Fiber con recover, log de peticiones y el mapeo de errores de dominio.
func NewApp(appName string, log *logger.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      appName,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: ErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(RequestLogger(log))
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	requireAuth := AuthMiddleware(deps.JWTSecret, deps.Denylist)

	// Auth (público salvo logout y alta de usuarios)
	authGroup := api.Group("/auth")
	authGroup.Post("/register-admin", authHandler.RegisterAdmin)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", requireAuth, authHandler.Logout)
	authGroup.Post("/admin/create-user", requireAuth, RequireAdmin(), authHandler.CreateUser)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", requireAuth)

	users := protected.Group("/users")
	users.Get("/", authHandler.ListUsers)
	users.Get("/me", authHandler.Me)

	businessHandler := NewBusinessHandler(deps.BusinessUC)
	protected.Get("/business", businessHandler.Get)
	protected.Put("/business", businessHandler.Update)

	branches := protected.Group("/branches")
	branchHandler := NewBranchHandler(deps.BranchUC)
	branches.Post("/", branchHandler.Create)
	branches.Get("/", branchHandler.List)
	branches.Get("/:id", branchHandler.GetByID)
	branches.Put("/:id", branchHandler.Update)
	branches.Delete("/:id", branchHandler.Delete)

	catalog := NewCatalogHandler(deps.CategoryUC, deps.SupplierUC, deps.DocumentUC)
	categories := protected.Group("/categories")
	categories.Post("/", catalog.CreateCategory)
	categories.Get("/", catalog.ListCategories)
	categories.Put("/:id", catalog.UpdateCategory)
	categories.Delete("/:id", catalog.DeleteCategory)

	suppliers := protected.Group("/suppliers")
	suppliers.Post("/", catalog.CreateSupplier)
	suppliers.Get("/", catalog.ListSuppliers)
	suppliers.Put("/:id", catalog.UpdateSupplier)
	suppliers.Delete("/:id", catalog.DeleteSupplier)

	documents := protected.Group("/documents")
	documents.Post("/", catalog.CreateDocument)
	documents.Get("/", catalog.ListDocuments)
	documents.Delete("/:id", catalog.DeleteDocument)

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.RegisterMovement, deps.MovementQuery)
	movements.Post("/", movementHandler.Register)
	movements.Get("/", movementHandler.List)
	movements.Get("/:id", movementHandler.GetByID)
	movements.Get("/:id/voucher", movementHandler.Voucher)

	stocks := protected.Group("/stocks")
	stockHandler := NewStockHandler(deps.StockUC)
	stocks.Get("/", stockHandler.List)
	stocks.Get("/export", stockHandler.Export)
	stocks.Get("/by-product-name/:name", stockHandler.ByProductName)
	stocks.Put("/minimum", stockHandler.SetMinimum)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard-data", dashboardHandler.Get)
}
