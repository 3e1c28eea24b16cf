package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/stock-api/docs"
	"github.com/jhoicas/stock-api/internal/application/inventory"
	"github.com/jhoicas/stock-api/internal/application/usecase"
	"github.com/jhoicas/stock-api/internal/infrastructure/cache"
	"github.com/jhoicas/stock-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/stock-api/internal/interfaces/http"
	"github.com/jhoicas/stock-api/pkg/config"
	"github.com/jhoicas/stock-api/pkg/logger"
)

// @title                       stock-api
// @version                     1.0
// @description                 Movimientos de stock entre bodegas: entradas, salidas y traslados.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.Migrate.OnStart {
		mg, err := postgres.NewMigrator(cfg.DB.ConnectionString(), log.Component("migrate"))
		if err != nil {
			log.Fatal().Err(err).Msg("abrir migraciones")
		}
		if err := mg.Up(); err != nil {
			log.Fatal().Err(err).Msg("aplicar migraciones")
		}
		_ = mg.Close()
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Caché de consultas de stock: opcional, sin REDIS_ADDR se usa la caché vacía.
	var stockCache inventory.StockCache = inventory.NoopCache()
	if cfg.Redis.Enabled() {
		rc, err := cache.NewRedisStockCache(cfg.Redis, log.Component("cache"))
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rc.Close()
		stockCache = rc
	}

	txRunner := postgres.NewTxRunner(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	itemRepo := postgres.NewStockMovementItemRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)

	movementUC := inventory.NewMovementUseCase(txRunner, movementRepo, itemRepo, stockCache, log.Component("movements"))
	stockUC := inventory.NewStockQueryUseCase(stockRepo, stockCache, log.Component("stock"))
	productUC := usecase.NewProductUseCase(txRunner, productRepo)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    docs.SwaggerInfo.Title,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "db_unavailable", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		MovementUC:  movementUC,
		StockUC:     stockUC,
		ProductUC:   productUC,
		WarehouseUC: warehouseUC,
		JWTSecret:   cfg.JWT.Secret,
		JWTIssuer:   cfg.JWT.Issuer,
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
