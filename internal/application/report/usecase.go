package report

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/estoque-sync/internal/application/usecase"
	"github.com/jhoicas/estoque-sync/internal/domain/entity"
)

// OrdersPDFGenerator renderiza o relatório de pedidos em PDF.
type OrdersPDFGenerator interface {
	GenerateOrdersPDF(ctx context.Context, orders []*entity.Order) ([]byte, error)
}

// Export arquivo pronto para download.
type Export struct {
	FileName    string
	ContentType string
	Data        []byte
}

// UseCase monta as exportações a partir dos repositórios de entidade.
type UseCase struct {
	products  *usecase.ProductUseCase
	movements *usecase.MovementUseCase
	orders    *usecase.OrderUseCase
	pdf       OrdersPDFGenerator
}

// NewUseCase constrói o caso de uso de relatórios.
func NewUseCase(products *usecase.ProductUseCase, movements *usecase.MovementUseCase,
	orders *usecase.OrderUseCase, pdf OrdersPDFGenerator) *UseCase {
	return &UseCase{products: products, movements: movements, orders: orders, pdf: pdf}
}

func stamp() string { return time.Now().Format("2006-01-02") }

// StockCSV exporta o estoque atual.
func (uc *UseCase) StockCSV(ctx context.Context) (*Export, error) {
	products, err := uc.products.List(ctx)
	if err != nil {
		return nil, err
	}
	return &Export{
		FileName:    fmt.Sprintf("estoque_%s.csv", stamp()),
		ContentType: "text/csv; charset=utf-8",
		Data:        stockCSV(products),
	}, nil
}

// MovementsCSV exporta o histórico, com o mesmo filtro de intervalo da
// listagem.
func (uc *UseCase) MovementsCSV(ctx context.Context, from, to time.Time) (*Export, error) {
	movements, err := uc.movements.List(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return &Export{
		FileName:    fmt.Sprintf("historico_%s.csv", stamp()),
		ContentType: "text/csv; charset=utf-8",
		Data:        movementsCSV(movements),
	}, nil
}

// OrdersCSV exporta os pedidos.
func (uc *UseCase) OrdersCSV(ctx context.Context) (*Export, error) {
	orders, err := uc.orders.List(ctx)
	if err != nil {
		return nil, err
	}
	return &Export{
		FileName:    fmt.Sprintf("relatorio_pedidos_%s.csv", stamp()),
		ContentType: "text/csv; charset=utf-8",
		Data:        ordersCSV(orders),
	}, nil
}

// OrdersPDF exporta o relatório de pedidos em PDF.
func (uc *UseCase) OrdersPDF(ctx context.Context) (*Export, error) {
	orders, err := uc.orders.List(ctx)
	if err != nil {
		return nil, err
	}
	data, err := uc.pdf.GenerateOrdersPDF(ctx, orders)
	if err != nil {
		return nil, err
	}
	return &Export{
		FileName:    fmt.Sprintf("relatorio_pedidos_%s.pdf", stamp()),
		ContentType: "application/pdf",
		Data:        data,
	}, nil
}
