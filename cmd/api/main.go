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

	_ "github.com/jhoicas/estoque-sync/docs"
	"github.com/jhoicas/estoque-sync/internal/application/report"
	"github.com/jhoicas/estoque-sync/internal/application/stock"
	appsync "github.com/jhoicas/estoque-sync/internal/application/sync"
	"github.com/jhoicas/estoque-sync/internal/application/usecase"
	"github.com/jhoicas/estoque-sync/internal/infrastructure/localstore"
	infrapdf "github.com/jhoicas/estoque-sync/internal/infrastructure/pdf"
	"github.com/jhoicas/estoque-sync/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/estoque-sync/internal/interfaces/http"
	"github.com/jhoicas/estoque-sync/pkg/config"
	"github.com/jhoicas/estoque-sync/pkg/logger"
	"github.com/jhoicas/estoque-sync/pkg/metrics"
)

// @title        Estoque Sync API
// @version      1.0
// @description  Controle de estoque e separação de pedidos com operação offline e sincronização com o remoto.
// @BasePath     /
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Dir).
		Msg("iniciando aplicação")

	store, err := localstore.New(cfg.Store.Dir)
	if err != nil {
		log.Fatal().Err(err).Msg("preparar diretório do cache local")
	}

	gateway := postgres.NewGateway(cfg.Remote, log)
	defer gateway.Close()

	engine := appsync.NewEngine(store, gateway, log)
	productUC := usecase.NewProductUseCase(store, gateway, engine, log)
	movementUC := usecase.NewMovementUseCase(store, gateway, engine, log)
	orderUC := usecase.NewOrderUseCase(store, gateway, engine, productUC, movementUC, log)
	stockUC := stock.NewUseCase(productUC, movementUC, log)
	reportUC := report.NewUseCase(productUC, movementUC, orderUC, infrapdf.NewMarotoOrdersReport())

	// Passe de sincronização na subida: conecta, drena a fila que ficou da
	// última execução e recarrega os caches. Falha aqui não derruba o
	// serviço; ele opera offline até alguém chamar /api/sync/reconnect.
	if cfg.Sync.OnStart {
		startCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if synced, err := engine.Reconnect(startCtx); err != nil {
			log.Warn().Err(err).Msg("remoto indisponível na subida; operando offline")
		} else {
			log.Info().Int("synced", synced).Msg("sincronização inicial concluída")
		}
		cancel()
	}
	if gateway.Available() {
		metrics.RemoteAvailable.Set(1)
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI em local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Estoque Sync API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	if cfg.HTTP.MetricsEnabled {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:  productUC,
		MovementUC: movementUC,
		OrderUC:    orderUC,
		StockUC:    stockUC,
		ReportUC:   reportUC,
		Engine:     engine,
		Gateway:    gateway,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("encerramento do servidor")
	}

	log.Info().Msg("aplicação parada")
}
