// Package dto define os corpos de requisição e resposta da API HTTP.
package dto

import (
	"time"

	"github.com/jhoicas/estoque-sync/internal/domain/entity"
)

// SaveProductRequest cadastro ou atualização de produto.
type SaveProductRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Qty  int    `json:"qty"`
}

// ToEntity converte para a entidade de domínio.
func (r SaveProductRequest) ToEntity() *entity.Product {
	return &entity.Product{ID: r.ID, Name: r.Name, Qty: r.Qty}
}

// TransactionRequest entrada ou saída de estoque.
type TransactionRequest struct {
	ProductID string `json:"productId"`
	Type      string `json:"type"` // in | out
	Qty       int    `json:"qty"`
	Obs       string `json:"obs"`
	Matricula string `json:"matricula"`
}

// OrderItemRequest linha de pedido.
type OrderItemRequest struct {
	ProductID    string `json:"productId"`
	ProductName  string `json:"productName"`
	QtyRequested int    `json:"qtyRequested"`
	QtyPicked    int    `json:"qtyPicked"`
}

// SaveOrderRequest cadastro ou atualização de pedido. Status não é aceito
// do cliente; o repositório recalcula.
type SaveOrderRequest struct {
	OrderNumber   string             `json:"orderNumber"`
	CustomerName  string             `json:"customerName"`
	Filial        string             `json:"filial"`
	Matricula     string             `json:"matricula"`
	Date          time.Time          `json:"date"`
	Items         []OrderItemRequest `json:"items"`
	Obs           string             `json:"obs"`
	EnvioMalote   bool               `json:"envioMalote"`
	EntregaMatriz bool               `json:"entregaMatriz"`
}

// ToEntity converte para a entidade de domínio; id vem da rota quando é
// atualização.
func (r SaveOrderRequest) ToEntity(id string) *entity.Order {
	items := make([]entity.OrderItem, len(r.Items))
	for i, it := range r.Items {
		items[i] = entity.OrderItem{
			ProductID:    it.ProductID,
			ProductName:  it.ProductName,
			QtyRequested: it.QtyRequested,
			QtyPicked:    it.QtyPicked,
		}
	}
	return &entity.Order{
		ID:            id,
		OrderNumber:   r.OrderNumber,
		CustomerName:  r.CustomerName,
		Filial:        r.Filial,
		Matricula:     r.Matricula,
		Date:          r.Date,
		Items:         items,
		Obs:           r.Obs,
		EnvioMalote:   r.EnvioMalote,
		EntregaMatriz: r.EntregaMatriz,
	}
}

// PickRequest baixa de uma unidade de um item do pedido.
type PickRequest struct {
	ProductID string `json:"productId"`
}

// ShippingRequest alternância de via de envio.
type ShippingRequest struct {
	Via string `json:"via"` // malote | matriz
}

// PickResponse resultado da baixa.
type PickResponse struct {
	Picked bool          `json:"picked"`
	Order  *entity.Order `json:"order"`
}

// ImportResponse resultado da importação de CSV.
type ImportResponse struct {
	Imported int `json:"imported"`
}
