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

	"github.com/jhoicas/comercial-api/internal/bootstrap"
	"github.com/jhoicas/comercial-api/internal/clock"
	"github.com/jhoicas/comercial-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/comercial-api/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/comercial-api/internal/interfaces/http"
	"github.com/jhoicas/comercial-api/pkg/config"
	"github.com/jhoicas/comercial-api/pkg/logger"
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
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := bootstrap.OpenStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer store.Close()

	recorder := metrics.NewRecorder()

	// PDF: comprobante impreso de las ventas
	pdfGenerator := infrapdf.NewMarotoReceiptGenerator(infrapdf.Issuer{
		Name:    cfg.Issuer.Name,
		TaxID:   cfg.Issuer.TaxID,
		Address: cfg.Issuer.Address,
		Phone:   cfg.Issuer.Phone,
	})

	svc := bootstrap.NewServices(store.Tx, store.Reads, bootstrap.Options{
		Clock:   clock.System{},
		Metrics: recorder,
		PDF:     pdfGenerator,
		Log:     log,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.App.SwaggerPath); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.App.SwaggerPath,
			Path:     "docs",
			Title:    "Comercial API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	if cfg.Metrics.Enabled {
		app.Get(cfg.Metrics.Path, adaptor.HTTPHandler(recorder.Handler()))
	}

	deps := httpRouter.RouterDeps{
		Documents:   svc.Documents,
		Accounts:    svc.Accounts,
		Payments:    svc.Payments,
		Catalog:     svc.Catalog,
		Ledger:      svc.Ledger,
		Adjustments: svc.Adjustments,
		Sequences:   svc.Sequences,
		JWTSecret:   cfg.JWT.Secret,
	}
	if cfg.Metrics.Enabled {
		deps.Observer = recorder
	}
	httpRouter.Router(app, deps)

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
