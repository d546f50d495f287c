// Package pdf implementa a renderização do relatório de pedidos de
// separação usando Maroto v2.
//
// Layout da página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + data de emissão                            │
//	│  ───────────────────────────────────────────────────────── │
//	│  TABELA: Numero | Data | Cliente | Filial | Status | Envio   │
//	│          + linha de itens resumidos por pedido               │
//	│  ───────────────────────────────────────────────────────── │
//	│  RODAPÉ: totais (pedidos, concluídos, pendentes)             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/estoque-sync/internal/domain/entity"
)

// ── Paleta ────────────────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorGreen   = &props.Color{Red: 22, Green: 120, Blue: 60}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoOrdersReport implementa report.OrdersPDFGenerator usando Maroto v2.
type MarotoOrdersReport struct{}

// NewMarotoOrdersReport constrói o gerador.
func NewMarotoOrdersReport() *MarotoOrdersReport { return &MarotoOrdersReport{} }

// GenerateOrdersPDF gera o relatório e devolve seus bytes.
func (g *MarotoOrdersReport) GenerateOrdersPDF(_ context.Context, orders []*entity.Order) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Relatório de Pedidos", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow())
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, o := range orders {
		m.AddRows(orderRow(o))
		m.AddRows(itemsRow(o))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(totalsRow(orders))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar relatório: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Seções ────────────────────────────────────────────────────────────────────

func headerRow() core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New("Relatório de Pedidos de Separação", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(4).Add(
			text.New("Emitido em "+time.Now().Format("02/01/2006 15:04"), props.Text{
				Size: 8, Top: 4, Align: align.Right, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := func(size int, label string) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary,
		}))
	}
	return row.New(6).Add(
		header(2, "Número"),
		header(2, "Data"),
		header(3, "Cliente"),
		header(2, "Filial / Mat."),
		header(1, "Status"),
		header(2, "Envio"),
	)
}

func orderRow(o *entity.Order) core.Row {
	cell := func(size int, value string, color *props.Color) core.Col {
		return col.New(size).Add(text.New(value, props.Text{Size: 8, Color: color}))
	}

	status, statusColor := "Pendente", colorGray
	if o.Status == entity.OrderCompleted {
		status, statusColor = "Concluído", colorGreen
	}
	envio := "Pendente"
	switch {
	case o.EnvioMalote:
		envio = "Malote"
	case o.EntregaMatriz:
		envio = "Matriz"
	}

	return row.New(5).Add(
		cell(2, "#"+o.OrderNumber, nil),
		cell(2, o.Date.Format("02/01/2006"), nil),
		cell(3, o.CustomerName, nil),
		cell(2, strings.TrimSuffix(o.Filial+" / "+o.Matricula, " / "), colorGray),
		col.New(1).Add(text.New(status, props.Text{Size: 8, Style: fontstyle.Bold, Color: statusColor})),
		cell(2, envio, nil),
	)
}

func itemsRow(o *entity.Order) core.Row {
	parts := make([]string, len(o.Items))
	for i, it := range o.Items {
		parts[i] = fmt.Sprintf("%s (%d/%d)", it.ProductName, it.QtyPicked, it.QtyRequested)
	}
	return row.New(5).Add(
		col.New(2),
		col.New(10).Add(text.New(strings.Join(parts, "  |  "), props.Text{
			Size: 7, Color: colorGray,
		})),
	)
}

func totalsRow(orders []*entity.Order) core.Row {
	completed := 0
	for _, o := range orders {
		if o.Status == entity.OrderCompleted {
			completed++
		}
	}
	summary := fmt.Sprintf("%d pedido(s)  ·  %d concluído(s)  ·  %d pendente(s)",
		len(orders), completed, len(orders)-completed)
	return row.New(8).Add(
		col.New(12).Add(text.New(summary, props.Text{
			Size: 9, Style: fontstyle.Bold, Top: 2, Align: align.Right, Color: colorPrimary,
		})),
	)
}
