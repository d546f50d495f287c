package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-sync/internal/domain"
	"github.com/jhoicas/estoque-sync/internal/domain/entity"
)

func sampleOrder() *entity.Order {
	return &entity.Order{
		OrderNumber:  "101",
		CustomerName: "Livraria Central",
		Filial:       "SP-03",
		Matricula:    "007",
		Items: []entity.OrderItem{
			{ProductID: "A1", ProductName: "Caneta Azul", QtyRequested: 2},
		},
	}
}

// ─────────────────────────────────────────────────────────────
// Save / status
// ─────────────────────────────────────────────────────────────

func TestOrderSave_RecalculaStatusIgnorandoCliente(t *testing.T) {
	f := newFixture(false)

	o := sampleOrder()
	o.Status = entity.OrderCompleted // cliente mente
	require.NoError(t, f.orders.Save(context.Background(), o, true))

	assert.Equal(t, entity.OrderPending, o.Status, "status vem do invariante, nunca do chamador")
	assert.NotEmpty(t, o.ID, "cadastro sem id recebe UUID")
	assert.False(t, o.Date.IsZero())
}

func TestOrderSave_CompletedExigeSeparacaoEEnvio(t *testing.T) {
	f := newFixture(false)

	o := sampleOrder()
	o.Items[0].QtyPicked = 2
	require.NoError(t, f.orders.Save(context.Background(), o, true))
	assert.Equal(t, entity.OrderPending, o.Status, "tudo separado sem envio ainda é pendente")

	o.EnvioMalote = true
	require.NoError(t, f.orders.Save(context.Background(), o, false))
	assert.Equal(t, entity.OrderCompleted, o.Status)
}

func TestOrderSave_SemItensFalha(t *testing.T) {
	f := newFixture(true)

	o := sampleOrder()
	o.Items = nil
	err := f.orders.Save(context.Background(), o, true)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Cenário do fluxo offline completo: salvar sem gateway, reconectar,
// drenar, fila limpa e pedido no remoto.
func TestOrderSave_OfflineDepoisReconectaEDrena(t *testing.T) {
	f := newFixture(false)

	o := sampleOrder()
	require.NoError(t, f.orders.Save(context.Background(), o, true))

	require.Len(t, f.store.orders, 1, "cache local contém o pedido")
	require.Len(t, f.store.queue, 1)
	assert.Equal(t, entity.MutationOrder, f.store.queue[0].Kind)

	synced, err := f.engine.Reconnect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, synced)
	assert.Empty(t, f.store.queue, "drain bem-sucedido limpa a fila")
	assert.Contains(t, f.gateway.orders, o.ID, "pedido persistiu no remoto")
}

// ─────────────────────────────────────────────────────────────
// Delete
// ─────────────────────────────────────────────────────────────

func TestOrderDelete_OfflineEnfileiraRemocao(t *testing.T) {
	f := newFixture(false)
	o := sampleOrder()
	require.NoError(t, f.orders.Save(context.Background(), o, true))
	f.store.queue = nil // isola a remoção

	require.NoError(t, f.orders.Delete(context.Background(), o.ID))
	assert.Empty(t, f.store.orders)
	require.Len(t, f.store.queue, 1)
	assert.Equal(t, entity.MutationDeleteOrder, f.store.queue[0].Kind)

	f.gateway.orders[o.ID] = o
	f.gateway.available = true
	synced, err := f.engine.Drain(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, synced)
	assert.NotContains(t, f.gateway.orders, o.ID, "replay da remoção apaga no remoto")
}

func TestOrderDelete_NaoEncontrado(t *testing.T) {
	f := newFixture(false)

	err := f.orders.Delete(context.Background(), "fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ─────────────────────────────────────────────────────────────
// Pick
// ─────────────────────────────────────────────────────────────

func TestOrderPick_BaixaUmaUnidadeERegistraHistorico(t *testing.T) {
	f := newFixture(false)
	f.store.products = []*entity.Product{{ID: "A1", Name: "Caneta Azul", Qty: 10}}
	o := sampleOrder()
	require.NoError(t, f.orders.Save(context.Background(), o, true))

	updated, picked, err := f.orders.Pick(context.Background(), o.ID, "A1")
	require.NoError(t, err)
	assert.True(t, picked)
	assert.Equal(t, 1, updated.Items[0].QtyPicked)
	assert.Equal(t, 9, f.store.products[0].Qty)

	require.Len(t, f.store.movements, 1)
	mv := f.store.movements[0]
	assert.Equal(t, "A1", mv.ProdID)
	assert.Equal(t, -1, mv.Qty)
	assert.Equal(t, "Separação Pedido #101", mv.Obs)
	assert.Equal(t, "007", mv.Matricula, "matrícula vem do pedido, não do operador da tela")
}

func TestOrderPick_ItemJaSeparadoEhNoOp(t *testing.T) {
	f := newFixture(false)
	f.store.products = []*entity.Product{{ID: "A1", Name: "Caneta Azul", Qty: 10}}
	o := sampleOrder()
	o.Items[0].QtyPicked = 2
	require.NoError(t, f.orders.Save(context.Background(), o, true))

	_, picked, err := f.orders.Pick(context.Background(), o.ID, "A1")
	require.NoError(t, err)
	assert.False(t, picked)
	assert.Equal(t, 10, f.store.products[0].Qty, "no-op não toca o estoque")
	assert.Empty(t, f.store.movements)
}

func TestOrderPick_SemEstoqueRejeita(t *testing.T) {
	f := newFixture(false)
	f.store.products = []*entity.Product{{ID: "A1", Name: "Caneta Azul", Qty: 0}}
	o := sampleOrder()
	require.NoError(t, f.orders.Save(context.Background(), o, true))

	_, _, err := f.orders.Pick(context.Background(), o.ID, "A1")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Empty(t, f.store.movements)
}

func TestOrderPick_UltimaUnidadeComEnvioMarcadoEmiteEvento(t *testing.T) {
	f := newFixture(false)
	f.store.products = []*entity.Product{{ID: "A1", Name: "Caneta Azul", Qty: 10}}
	o := sampleOrder()
	o.Items[0].QtyPicked = 1
	o.EnvioMalote = true
	require.NoError(t, f.orders.Save(context.Background(), o, true))
	require.Equal(t, entity.OrderPending, o.Status)

	updated, picked, err := f.orders.Pick(context.Background(), o.ID, "A1")
	require.NoError(t, err)
	assert.True(t, picked)
	assert.Equal(t, entity.OrderCompleted, updated.Status)

	require.Len(t, f.store.movements, 2)
	assert.Equal(t, "Envio Pedido #101", f.store.movements[0].ProdName,
		"última separação com envio já marcado conclui e registra o envio")
	assert.Equal(t, "Pedido Concluído. Via: Malote. Filial: SP-03", f.store.movements[0].Obs)
	assert.Equal(t, "Separação Pedido #101", f.store.movements[1].Obs)
}

func TestOrderPick_SemEnvioMarcadoNaoEmiteEvento(t *testing.T) {
	f := newFixture(false)
	f.store.products = []*entity.Product{{ID: "A1", Name: "Caneta Azul", Qty: 10}}
	o := sampleOrder()
	o.Items[0].QtyPicked = 1
	require.NoError(t, f.orders.Save(context.Background(), o, true))

	updated, picked, err := f.orders.Pick(context.Background(), o.ID, "A1")
	require.NoError(t, err)
	assert.True(t, picked)
	assert.Equal(t, entity.OrderPending, updated.Status, "separação completa sem via de envio não conclui")

	require.Len(t, f.store.movements, 1)
	assert.Equal(t, "Separação Pedido #101", f.store.movements[0].Obs)
}

// ─────────────────────────────────────────────────────────────
// ToggleShipping
// ─────────────────────────────────────────────────────────────

func TestToggleShipping_ConclusaoEmiteEventoDeSistema(t *testing.T) {
	f := newFixture(false)
	o := sampleOrder()
	o.Items[0].QtyPicked = 2
	require.NoError(t, f.orders.Save(context.Background(), o, true))

	updated, err := f.orders.ToggleShipping(context.Background(), o.ID, "malote")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderCompleted, updated.Status)

	require.Len(t, f.store.movements, 1)
	mv := f.store.movements[0]
	assert.Empty(t, mv.ProdID, "evento de sistema não aponta para produto")
	assert.Zero(t, mv.Qty)
	assert.Equal(t, "Envio Pedido #101", mv.ProdName)
	assert.Equal(t, "Pedido Concluído. Via: Malote. Filial: SP-03", mv.Obs)
	assert.Equal(t, "007", mv.Matricula)
}

func TestToggleShipping_DesmarcarUltimaViaReverteParaPendente(t *testing.T) {
	f := newFixture(false)
	o := sampleOrder()
	o.Items[0].QtyPicked = 2
	o.EnvioMalote = true
	require.NoError(t, f.orders.Save(context.Background(), o, true))
	require.Equal(t, entity.OrderCompleted, o.Status)
	f.store.movements = nil

	updated, err := f.orders.ToggleShipping(context.Background(), o.ID, "malote")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderPending, updated.Status, "sem via de envio o pedido volta a pendente")
	assert.Empty(t, f.store.movements, "reverter não emite evento de conclusão")
}

func TestToggleShipping_ViaInvalida(t *testing.T) {
	f := newFixture(false)
	o := sampleOrder()
	require.NoError(t, f.orders.Save(context.Background(), o, true))

	_, err := f.orders.ToggleShipping(context.Background(), o.ID, "sedex")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ─────────────────────────────────────────────────────────────
// ImportCSV
// ─────────────────────────────────────────────────────────────

func TestImportCSV_AgregaPorPedidoEProduto(t *testing.T) {
	f := newFixture(false)
	f.store.products = []*entity.Product{{ID: "A1", Name: "Caneta Azul", Qty: 10}}

	csv := strings.Join([]string{
		"Numero;Cliente;Filial;Matricula;Data;CodProduto;Qtd",
		"101;Livraria Central;SP-03;007;2026-08-01;A1;2",
		"101;Livraria Central;SP-03;007;2026-08-01;A1;3",
		"101;Livraria Central;SP-03;007;2026-08-01;Z9;1",
		"202;;RJ-01;013;2026-08-02;A1;4",
	}, "\n")

	imported, err := f.orders.ImportCSV(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 2, imported)
	require.Len(t, f.store.orders, 2)

	var o101, o202 *entity.Order
	for _, o := range f.store.orders {
		switch o.OrderNumber {
		case "101":
			o101 = o
		case "202":
			o202 = o
		}
	}
	require.NotNil(t, o101)
	require.NotNil(t, o202)

	require.Len(t, o101.Items, 2)
	assert.Equal(t, 5, o101.Items[0].QtyRequested, "linhas repetidas do mesmo código somam na mesma linha de item")
	assert.Equal(t, "Caneta Azul", o101.Items[0].ProductName)
	assert.Equal(t, "Produto Z9", o101.Items[1].ProductName, "código desconhecido ganha nome provisório")
	assert.Equal(t, "Importado via CSV", o101.Obs)

	assert.Equal(t, "Importado", o202.CustomerName, "cliente vazio recebe rótulo padrão")
	assert.Equal(t, 4, o202.Items[0].QtyRequested)
}

func TestImportCSV_SemCabecalho(t *testing.T) {
	f := newFixture(false)

	imported, err := f.orders.ImportCSV(context.Background(),
		strings.NewReader("101;Cliente;SP;007;2026-08-01;A1;2\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, imported)
}

func TestImportCSV_QuantidadeInvalidaViraUm(t *testing.T) {
	f := newFixture(false)

	_, err := f.orders.ImportCSV(context.Background(),
		strings.NewReader("101;Cliente;SP;007;2026-08-01;A1;abc\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, f.store.orders[0].Items[0].QtyRequested)
}

func TestImportCSV_CamposExtrasNaoContaminamQuantidade(t *testing.T) {
	f := newFixture(false)

	_, err := f.orders.ImportCSV(context.Background(),
		strings.NewReader("101;Cliente;SP;007;2026-08-01;A1;5;extra;outro\n"))
	require.NoError(t, err)
	require.Len(t, f.store.orders, 1)
	assert.Equal(t, 5, f.store.orders[0].Items[0].QtyRequested,
		"colunas excedentes são descartadas em vez de grudar na quantidade")
}

func TestImportCSV_VazioFalha(t *testing.T) {
	f := newFixture(false)

	_, err := f.orders.ImportCSV(context.Background(), strings.NewReader("Numero;Cliente\n"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ─────────────────────────────────────────────────────────────
// Normalização na carga
// ─────────────────────────────────────────────────────────────

func TestOrderList_NormalizaCompletedSemEnvio(t *testing.T) {
	f := newFixture(false)
	f.store.orders = []*entity.Order{{
		ID:           "x",
		OrderNumber:  "99",
		CustomerName: "Alguém",
		Status:       entity.OrderCompleted, // gravado por cliente antigo
		Items:        []entity.OrderItem{{ProductID: "A1", QtyRequested: 1, QtyPicked: 1}},
	}}

	orders, err := f.orders.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entity.OrderPending, orders[0].Status, "completed sem via de envio volta a pendente na carga")
}
