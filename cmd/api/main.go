package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/agrostock/agrostock-api/internal/application/procurement"
	"github.com/agrostock/agrostock-api/internal/application/usecase"
	"github.com/agrostock/agrostock-api/internal/infrastructure/postgres"
	httpRouter "github.com/agrostock/agrostock-api/internal/interfaces/http"
	"github.com/agrostock/agrostock-api/pkg/config"
	"github.com/agrostock/agrostock-api/pkg/logger"
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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	inputRepo := postgres.NewInputRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	orderRepo := postgres.NewPurchaseOrderRepository(pool)
	receiptRepo := postgres.NewGoodsReceiptRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	inputUC := usecase.NewInputUseCase(inputRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	purchaseOrderUC := procurement.NewPurchaseOrderUseCase(txRunner, orderRepo, receiptRepo, inputRepo, supplierRepo)
	trackingUC := procurement.NewTrackingUseCase(orderRepo, receiptRepo, inputRepo)
	postReceiptUC := procurement.NewPostReceiptUseCase(txRunner, orderRepo, receiptRepo, inputRepo, supplierRepo, userRepo, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		InputUC:         inputUC,
		SupplierUC:      supplierUC,
		PurchaseOrderUC: purchaseOrderUC,
		TrackingUC:      trackingUC,
		PostReceiptUC:   postReceiptUC,
		JWTSecret:       cfg.JWT.Secret,
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
