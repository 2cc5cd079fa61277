package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/control-stock-api/internal/application/analytics"
	"github.com/jhoicas/control-stock-api/internal/application/auth"
	"github.com/jhoicas/control-stock-api/internal/application/inventory"
	"github.com/jhoicas/control-stock-api/internal/application/usecase"
	"github.com/jhoicas/control-stock-api/internal/infrastructure/cache"
	infraexport "github.com/jhoicas/control-stock-api/internal/infrastructure/export"
	"github.com/jhoicas/control-stock-api/internal/infrastructure/jobs"
	infrapdf "github.com/jhoicas/control-stock-api/internal/infrastructure/pdf"
	"github.com/jhoicas/control-stock-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/control-stock-api/internal/interfaces/http"
	"github.com/jhoicas/control-stock-api/pkg/config"
	"github.com/jhoicas/control-stock-api/pkg/logger"
	"github.com/jhoicas/control-stock-api/pkg/migrate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, cfg.Movement.LockTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := migrate.MaybeAutoRun(ctx, cfg.App.AutoMigrate, pool, log.Component("migrate")); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	redisClient, err := cache.NewClient(ctx, cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a Redis")
	}
	defer redisClient.Close()

	businessRepo := postgres.NewBusinessRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	branchRepo := postgres.NewBranchRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	documentRepo := postgres.NewDocumentRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	levelRepo := postgres.NewStockLevelRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	denylist := cache.NewTokenDenylist(redisClient)
	dashboardUC := appanalytics.NewDashboardUseCase(
		dashboardRepo, levelRepo, movementRepo,
		cache.NewDashboardCache(redisClient), cfg.Redis.DashboardTTL, log,
	)

	// Listeners post-commit: invalidación del tablero y aviso de stock bajo (asynq).
	listeners := []inventory.MovementListener{dashboardUC}
	if cfg.Jobs.Enabled {
		jobsClient := jobs.NewClient(cfg.Redis)
		defer jobsClient.Close()
		listeners = append(listeners, jobs.NewLowStockNotifier(jobsClient, cfg.Jobs.Queue))
	}

	registerMovementUC := inventory.NewRegisterMovementUseCase(
		txRunner, productRepo, branchRepo, documentRepo,
		inventory.Config{MaxRetries: cfg.Movement.MaxRetries, RetryBackoff: cfg.Movement.RetryBackoff},
		log, listeners...,
	)
	stockUC := inventory.NewStockUseCase(levelRepo, txRunner, productRepo, branchRepo, infraexport.NewExcelStockExporter())
	movementQueryUC := inventory.NewMovementQueryUseCase(movementRepo, businessRepo, infrapdf.NewMarotoVoucherGenerator())

	authUC := auth.NewAuthUseCase(userRepo, txRunner, denylist, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := httpRouter.NewApp(cfg.App.Name, log.Component("http"))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Control Stock API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:           authUC,
		UserUC:           usecase.NewUserUseCase(userRepo, branchRepo),
		BusinessUC:       usecase.NewBusinessUseCase(businessRepo),
		BranchUC:         usecase.NewBranchUseCase(branchRepo),
		CategoryUC:       usecase.NewCategoryUseCase(categoryRepo),
		SupplierUC:       usecase.NewSupplierUseCase(supplierRepo),
		DocumentUC:       usecase.NewDocumentUseCase(documentRepo),
		ProductUC:        usecase.NewProductUseCase(productRepo, categoryRepo),
		RegisterMovement: registerMovementUC,
		MovementQuery:    movementQueryUC,
		StockUC:          stockUC,
		DashboardUC:      dashboardUC,
		Denylist:         denylist,
		JWTSecret:        cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
