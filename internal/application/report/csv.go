// Package report gera as exportações do sistema: planilhas CSV de estoque,
// histórico e pedidos, e o relatório de pedidos em PDF.
package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jhoicas/estoque-sync/internal/domain/entity"
)

// utf8BOM prefixa todo CSV para o Excel abrir acentuação corretamente.
const utf8BOM = "\ufeff"

const dateLayout = "02/01/2006"

func stockCSV(products []*entity.Product) []byte {
	var b bytes.Buffer
	b.WriteString(utf8BOM)
	b.WriteString("Codigo;Produto;Qtd\n")
	for _, p := range products {
		fmt.Fprintf(&b, "%s;%s;%d\n", p.ID, p.Name, p.Qty)
	}
	return b.Bytes()
}

func movementsCSV(movements []*entity.Movement) []byte {
	var b bytes.Buffer
	b.WriteString(utf8BOM)
	b.WriteString("Data;Codigo;Produto;Qtd;Obs;Matricula\n")
	for _, m := range movements {
		code := m.ProdID
		if code == "" {
			code = "SISTEMA"
		}
		fmt.Fprintf(&b, "%s;%s;%s;%d;%s;%s\n",
			m.Date.Format(dateLayout), code, m.ProdName, m.Qty, m.Obs, m.Matricula)
	}
	return b.Bytes()
}

func ordersCSV(orders []*entity.Order) []byte {
	var b bytes.Buffer
	b.WriteString(utf8BOM)
	b.WriteString("Numero;Data;Cliente;Filial;Matricula;Status;Envio;Itens;Obs\n")
	for _, o := range orders {
		fmt.Fprintf(&b, "%s;%s;%s;%s;%s;%s;%s;%s;%s\n",
			o.OrderNumber, o.Date.Format(dateLayout), o.CustomerName, o.Filial,
			o.Matricula, statusLabel(o), shippingLabel(o), itemsSummary(o), o.Obs)
	}
	return b.Bytes()
}

func statusLabel(o *entity.Order) string {
	if o.Status == entity.OrderCompleted {
		return "Concluido"
	}
	return "Pendente"
}

func shippingLabel(o *entity.Order) string {
	switch {
	case o.EnvioMalote:
		return "Malote"
	case o.EntregaMatriz:
		return "Matriz"
	}
	return "Pendente"
}

// itemsSummary resume os itens como `Nome(qtd) | Nome(qtd)`.
func itemsSummary(o *entity.Order) string {
	parts := make([]string, len(o.Items))
	for i, it := range o.Items {
		parts[i] = fmt.Sprintf("%s(%d)", it.ProductName, it.QtyRequested)
	}
	return strings.Join(parts, " | ")
}
