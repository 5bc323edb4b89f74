package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okendra/retailops-api/internal/application/exchange"
	"github.com/okendra/retailops-api/internal/application/holdbill"
	"github.com/okendra/retailops-api/internal/application/mirror"
	"github.com/okendra/retailops-api/internal/application/transfer"
	"github.com/okendra/retailops-api/internal/infrastructure/postgres"
	httpRouter "github.com/okendra/retailops-api/internal/interfaces/http"
	"github.com/okendra/retailops-api/pkg/config"
	"github.com/okendra/retailops-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	// Schema migrations run once here, behind the idempotent version guard.
	// Request handlers assume a correct schema.
	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("schema migrations")
	}

	transferRepo := postgres.NewTransferRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	quarantineRepo := postgres.NewQuarantineRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	exchangeRepo := postgres.NewExchangeRepository(pool)
	heldBillRepo := postgres.NewHeldBillRepository(pool)
	mirrorRepo := postgres.NewMirrorRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	mirrorWriter := mirror.NewWriter(transferRepo, itemRepo, mirrorRepo, log)
	createUC := transfer.NewCreateUseCase(txRunner, itemRepo, locationRepo, mirrorWriter)
	transitionUC := transfer.NewTransitionUseCase(txRunner, transferRepo, mirrorWriter)
	queryUC := transfer.NewQueryUseCase(transferRepo)
	exchangeUC := exchange.NewUseCase(txRunner, itemRepo, locationRepo, exchangeRepo, log)
	holdBillUC := holdbill.NewUseCase(txRunner, heldBillRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI in local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "RetailOps API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		CreateTransfer: createUC,
		Transition:     transitionUC,
		TransferQuery:  queryUC,
		ExchangeUC:     exchangeUC,
		HoldBillUC:     holdBillUC,
		StockRepo:      stockRepo,
		QuarantineRepo: quarantineRepo,
		ItemRepo:       itemRepo,
		LocationRepo:   locationRepo,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
