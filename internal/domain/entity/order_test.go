package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/estoque-sync/internal/domain/entity"
)

func order(picked, envio, matriz bool) *entity.Order {
	qtyPicked := 0
	if picked {
		qtyPicked = 2
	}
	return &entity.Order{
		ID:            "o1",
		OrderNumber:   "101",
		CustomerName:  "Cliente",
		EnvioMalote:   envio,
		EntregaMatriz: matriz,
		Items: []entity.OrderItem{
			{ProductID: "A1", QtyRequested: 2, QtyPicked: qtyPicked},
		},
	}
}

func TestRecomputeStatus(t *testing.T) {
	tests := []struct {
		name   string
		order  *entity.Order
		status string
	}{
		{"separado com malote", order(true, true, false), entity.OrderCompleted},
		{"separado com matriz", order(true, false, true), entity.OrderCompleted},
		{"separado sem envio", order(true, false, false), entity.OrderPending},
		{"envio sem separação", order(false, true, true), entity.OrderPending},
		{"nada feito", order(false, false, false), entity.OrderPending},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.order.RecomputeStatus()
			assert.Equal(t, tt.status, tt.order.Status)
		})
	}
}

func TestRecomputeStatus_SeparacaoAcimaDoPedidoConta(t *testing.T) {
	o := order(false, true, false)
	o.Items[0].QtyPicked = 5 // acima do solicitado
	o.RecomputeStatus()
	assert.Equal(t, entity.OrderCompleted, o.Status)
}

func TestNormalize(t *testing.T) {
	o := order(true, false, false)
	o.Status = entity.OrderCompleted // persistido inconsistente
	o.Normalize()
	assert.Equal(t, entity.OrderPending, o.Status)

	o = order(true, true, false)
	o.Status = entity.OrderCompleted
	o.Normalize()
	assert.Equal(t, entity.OrderCompleted, o.Status, "completed consistente não é tocado")

	o = order(false, false, false)
	o.Status = "weird"
	o.Normalize()
	assert.Equal(t, entity.OrderPending, o.Status, "status desconhecido vira pendente")
}

func TestOrderValid(t *testing.T) {
	o := order(false, false, false)
	assert.True(t, o.Valid())

	o.Items = nil
	assert.False(t, o.Valid())

	o = order(false, false, false)
	o.CustomerName = ""
	assert.False(t, o.Valid())
}

func TestOrderItemLookup(t *testing.T) {
	o := order(false, false, false)
	assert.NotNil(t, o.Item("A1"))
	assert.Nil(t, o.Item("B2"))

	o.Item("A1").QtyPicked = 1
	assert.Equal(t, 1, o.Items[0].QtyPicked, "Item devolve ponteiro para a linha real")
}
