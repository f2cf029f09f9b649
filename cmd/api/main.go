package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/pt-labs/product-inventory-api/internal/application/usecase"
	"github.com/pt-labs/product-inventory-api/internal/domain/repository"
	"github.com/pt-labs/product-inventory-api/internal/infrastructure/memory"
	"github.com/pt-labs/product-inventory-api/internal/infrastructure/postgres"
	httpRouter "github.com/pt-labs/product-inventory-api/internal/interfaces/http"
	"github.com/pt-labs/product-inventory-api/internal/validator"
	"github.com/pt-labs/product-inventory-api/pkg/config"
	"github.com/pt-labs/product-inventory-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		productRepo  repository.ProductRepository
		categoryRepo repository.CategoryRepository
		txRunner     usecase.TxRunner
	)
	switch cfg.Storage.Driver {
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("esquema del catálogo")
		}
		productRepo = postgres.NewProductRepository(pool)
		categoryRepo = postgres.NewCategoryRepository(pool)
		txRunner = postgres.NewTxRunner(pool)
	default:
		store := memory.NewStore()
		productRepo = memory.NewProductRepository(store)
		categoryRepo = memory.NewCategoryRepository(store)
		txRunner = memory.NewTxRunner(store)
	}

	validatorSvc := validator.New()
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo, txRunner, validatorSvc, log.Zerolog())
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, productRepo, txRunner, validatorSvc, log.Zerolog())

	if cfg.App.Seed {
		initDbUC := usecase.NewInitDbUseCase(categoryRepo, txRunner, log.Zerolog())
		if err := initDbUC.Seed(ctx); err != nil {
			log.Fatal().Err(err).Msg("datos semilla")
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Zerolog()))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:  productUC,
		CategoryUC: categoryUC,
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

	log.Info().Msg("servidor detenido")
}
