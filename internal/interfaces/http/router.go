package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-sync/internal/application/report"
	"github.com/jhoicas/estoque-sync/internal/application/stock"
	appsync "github.com/jhoicas/estoque-sync/internal/application/sync"
	"github.com/jhoicas/estoque-sync/internal/application/usecase"
	"github.com/jhoicas/estoque-sync/internal/domain/repository"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	ProductUC  *usecase.ProductUseCase
	MovementUC *usecase.MovementUseCase
	OrderUC    *usecase.OrderUseCase
	StockUC    *stock.UseCase
	ReportUC   *report.UseCase
	Engine     *appsync.Engine
	Gateway    repository.RemoteGateway
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Produtos
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)

	// Transações de estoque
	stockHandler := NewStockHandler(deps.StockUC)
	api.Post("/stock/transactions", stockHandler.Transaction)

	// Histórico
	movements := api.Group("/movements")
	movementHandler := NewMovementHandler(deps.MovementUC)
	movements.Get("/", movementHandler.List)
	movements.Delete("/", movementHandler.Clear)

	// Pedidos
	orders := api.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders.Get("/", orderHandler.List)
	orders.Post("/", orderHandler.Create)
	orders.Post("/import", orderHandler.Import)
	orders.Put("/:id", orderHandler.Update)
	orders.Delete("/:id", orderHandler.Delete)
	orders.Post("/:id/pick", orderHandler.Pick)
	orders.Post("/:id/shipping", orderHandler.Shipping)

	// Sincronização
	syncGroup := api.Group("/sync")
	syncHandler := NewSyncHandler(deps.Engine, deps.Gateway)
	syncGroup.Get("/status", syncHandler.Status)
	syncGroup.Post("/reconnect", syncHandler.Reconnect)
	syncGroup.Post("/drain", syncHandler.Drain)

	// Relatórios
	reports := api.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/stock.csv", reportHandler.StockCSV)
	reports.Get("/movements.csv", reportHandler.MovementsCSV)
	reports.Get("/orders.csv", reportHandler.OrdersCSV)
	reports.Get("/orders.pdf", reportHandler.OrdersPDF)
}
