package usecase

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	appsync "github.com/jhoicas/estoque-sync/internal/application/sync"
	"github.com/jhoicas/estoque-sync/internal/domain"
	"github.com/jhoicas/estoque-sync/internal/domain/entity"
	"github.com/jhoicas/estoque-sync/internal/domain/repository"
	"github.com/jhoicas/estoque-sync/pkg/logger"
)

// Formas de envio aceitas pelo toggle.
const (
	ViaMalote = "malote"
	ViaMatriz = "matriz"
)

// OrderUseCase repositório de pedidos de separação. As operações de negócio
// (separação, envio, importação) compõem os repositórios de produto e
// movimentação para manter estoque e histórico coerentes com o pedido.
type OrderUseCase struct {
	store     repository.LocalStore
	gateway   repository.RemoteGateway
	engine    *appsync.Engine
	products  *ProductUseCase
	movements *MovementUseCase
	log       *logger.Logger
}

type deleteOrderPayload struct {
	ID string `json:"id"`
}

// NewOrderUseCase constrói o repositório e registra replay e refresh.
func NewOrderUseCase(store repository.LocalStore, gateway repository.RemoteGateway, engine *appsync.Engine,
	products *ProductUseCase, movements *MovementUseCase, log *logger.Logger) *OrderUseCase {
	uc := &OrderUseCase{
		store:     store,
		gateway:   gateway,
		engine:    engine,
		products:  products,
		movements: movements,
		log:       log,
	}
	engine.RegisterApplier(entity.MutationOrder, uc.applyPending)
	engine.RegisterApplier(entity.MutationDeleteOrder, uc.applyPendingDelete)
	engine.RegisterRefresher(uc.Refresh)
	return uc
}

// List devolve os pedidos normalizados, remoto quando disponível.
func (uc *OrderUseCase) List(ctx context.Context) ([]*entity.Order, error) {
	if uc.gateway.Available() {
		orders, err := uc.gateway.ListOrders(ctx)
		if err == nil {
			normalize(orders)
			if werr := uc.store.WriteOrders(orders); werr != nil {
				uc.log.Warn().Err(werr).Msg("falha ao reescrever cache de pedidos")
			}
			return orders, nil
		}
		uc.log.Warn().Err(err).Msg("leitura remota de pedidos falhou; usando cache local")
	}
	orders, err := uc.store.ReadOrders()
	if err != nil {
		return nil, err
	}
	normalize(orders)
	return orders, nil
}

func normalize(orders []*entity.Order) {
	for _, o := range orders {
		o.Normalize()
	}
}

// Get devolve um pedido pelo id.
func (uc *OrderUseCase) Get(ctx context.Context, id string) (*entity.Order, error) {
	orders, err := uc.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, o := range orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, fmt.Errorf("pedido %q: %w", id, domain.ErrNotFound)
}

// Save persiste um pedido com write-through. O status nunca é confiado ao
// chamador: toda gravação recalcula pelo invariante de separação + envio.
func (uc *OrderUseCase) Save(ctx context.Context, o *entity.Order, isNew bool) error {
	if !o.Valid() {
		return fmt.Errorf("pedido requer número, cliente e ao menos um item: %w", domain.ErrInvalidInput)
	}
	if o.ID == "" {
		if !isNew {
			return fmt.Errorf("atualização de pedido requer id: %w", domain.ErrInvalidInput)
		}
		o.ID = uuid.NewString()
	}
	if o.Date.IsZero() {
		o.Date = time.Now()
	}
	o.RecomputeStatus()

	applied := false
	if uc.gateway.Available() {
		// Atualização vai como upsert: o pedido pode ter sido criado
		// offline e nunca ter chegado ao remoto.
		cmd := entity.CommandUpsert
		if isNew {
			cmd = entity.CommandInsert
		}
		err := uc.gateway.ApplyOrder(ctx, cmd, o)
		switch {
		case err == nil:
			applied = true
		case domain.IsRemoteUnavailable(err):
		default:
			return err
		}
	}

	orders, err := uc.store.ReadOrders()
	if err != nil {
		return err
	}
	if !applied && isNew {
		for _, existing := range orders {
			if existing.ID == o.ID {
				return fmt.Errorf("pedido %q já existe: %w", o.ID, domain.ErrDuplicate)
			}
		}
	}
	if err := uc.store.WriteOrders(mergeOrder(orders, o, isNew)); err != nil {
		return err
	}

	if !applied {
		return uc.engine.Enqueue(entity.MutationOrder, o.ID, o, isNew)
	}
	return nil
}

func mergeOrder(orders []*entity.Order, o *entity.Order, isNew bool) []*entity.Order {
	for i, existing := range orders {
		if existing.ID == o.ID {
			orders[i] = o
			return orders
		}
	}
	if isNew {
		return append([]*entity.Order{o}, orders...)
	}
	return append(orders, o)
}

// Delete remove um pedido com write-through; offline a remoção vira uma
// mutação DELETE_ORDER na fila.
func (uc *OrderUseCase) Delete(ctx context.Context, id string) error {
	applied := false
	if uc.gateway.Available() {
		err := uc.gateway.ApplyOrder(ctx, entity.CommandDelete, &entity.Order{ID: id})
		switch {
		case err == nil:
			applied = true
		case domain.IsRemoteUnavailable(err):
		default:
			return err
		}
	}

	orders, err := uc.store.ReadOrders()
	if err != nil {
		return err
	}
	kept := orders[:0]
	found := false
	for _, o := range orders {
		if o.ID == id {
			found = true
			continue
		}
		kept = append(kept, o)
	}
	if !found && !applied {
		return fmt.Errorf("pedido %q: %w", id, domain.ErrNotFound)
	}
	if err := uc.store.WriteOrders(kept); err != nil {
		return err
	}

	if !applied {
		return uc.engine.Enqueue(entity.MutationDeleteOrder, id, deleteOrderPayload{ID: id}, false)
	}
	return nil
}

// Pick dá baixa de exatamente uma unidade de um item do pedido: estoque do
// produto -1, movimentação de saída no histórico, qtyPicked +1 e status
// recalculado. Item já totalmente separado é no-op informativo, não erro.
func (uc *OrderUseCase) Pick(ctx context.Context, orderID, productID string) (*entity.Order, bool, error) {
	order, err := uc.Get(ctx, orderID)
	if err != nil {
		return nil, false, err
	}
	item := order.Item(productID)
	if item == nil {
		return nil, false, fmt.Errorf("item %q no pedido %q: %w", productID, orderID, domain.ErrNotFound)
	}
	if item.FullyPicked() {
		return order, false, nil
	}

	product, err := uc.products.GetByID(ctx, productID)
	if err != nil {
		return nil, false, err
	}
	if product.Qty <= 0 {
		return nil, false, fmt.Errorf("produto %q sem estoque: %w", productID, domain.ErrInsufficientStock)
	}

	product.Qty--
	if err := uc.products.Save(ctx, product, false); err != nil {
		return nil, false, err
	}
	if err := uc.movements.Save(ctx, &entity.Movement{
		ProdID:    item.ProductID,
		ProdName:  item.ProductName,
		Qty:       -1,
		Obs:       fmt.Sprintf("Separação Pedido #%s", order.OrderNumber),
		Matricula: order.Matricula,
	}); err != nil {
		return nil, false, err
	}

	item.QtyPicked++
	wasCompleted := order.Status == entity.OrderCompleted
	if err := uc.Save(ctx, order, false); err != nil {
		return nil, false, err
	}
	if order.Status == entity.OrderCompleted && !wasCompleted {
		uc.emitCompletionEvent(ctx, order)
	}
	return order, true, nil
}

// ToggleShipping inverte a flag de envio indicada. Quando a inversão faz o
// pedido transicionar para concluído, um evento de sistema entra no
// histórico registrando a via de envio.
func (uc *OrderUseCase) ToggleShipping(ctx context.Context, orderID, via string) (*entity.Order, error) {
	order, err := uc.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	switch via {
	case ViaMalote:
		order.EnvioMalote = !order.EnvioMalote
	case ViaMatriz:
		order.EntregaMatriz = !order.EntregaMatriz
	default:
		return nil, fmt.Errorf("via de envio %q: %w", via, domain.ErrInvalidInput)
	}

	wasCompleted := order.Status == entity.OrderCompleted
	if err := uc.Save(ctx, order, false); err != nil {
		return nil, err
	}

	if order.Status == entity.OrderCompleted && !wasCompleted {
		uc.emitCompletionEvent(ctx, order)
	}
	return order, nil
}

// emitCompletionEvent registra no histórico o evento de sistema da transição
// pendente→concluído, venha ela da última separação ou da marcação de envio.
// Falha no histórico não desfaz a conclusão, só gera aviso.
func (uc *OrderUseCase) emitCompletionEvent(ctx context.Context, order *entity.Order) {
	label := "Matriz"
	if order.EnvioMalote {
		label = "Malote"
	}
	if err := uc.movements.Save(ctx, &entity.Movement{
		ProdName:  fmt.Sprintf("Envio Pedido #%s", order.OrderNumber),
		Qty:       0,
		Obs:       fmt.Sprintf("Pedido Concluído. Via: %s. Filial: %s", label, order.Filial),
		Matricula: order.Matricula,
	}); err != nil {
		uc.log.Warn().Err(err).Str("order", order.OrderNumber).
			Msg("pedido concluído mas evento de envio não entrou no histórico")
	}
}

// ImportCSV importa pedidos do formato ponto-e-vírgula
// `Numero;Cliente;Filial;Matricula;Data;CodProduto;Qtd`, uma linha por item.
// Linhas do mesmo número de pedido agregam no mesmo pedido; repetição do
// mesmo código de produto soma na mesma linha de item. Código desconhecido
// vira item com nome provisório em vez de rejeição. Devolve a quantidade de
// pedidos importados.
func (uc *OrderUseCase) ImportCSV(ctx context.Context, r io.Reader) (int, error) {
	products, err := uc.products.List(ctx)
	if err != nil {
		return 0, err
	}
	names := make(map[string]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}

	var orders []*entity.Order
	byNumber := make(map[string]*entity.Order)

	scanner := bufio.NewScanner(r)
	first := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if first {
			first = false
			if isImportHeader(line) {
				continue
			}
		}
		if line == "" {
			continue
		}

		// Split completo: campos extras são descartados em vez de
		// grudarem na coluna de quantidade.
		fields := make([]string, 7)
		for i, f := range strings.Split(line, ";") {
			if i >= len(fields) {
				break
			}
			fields[i] = strings.TrimSpace(f)
		}
		num, client, fil, mat, dateStr, prodCode, qtyStr := fields[0], fields[1], fields[2], fields[3], fields[4], fields[5], fields[6]
		if num == "" || prodCode == "" {
			continue
		}
		qty, err := strconv.Atoi(qtyStr)
		if err != nil || qty <= 0 {
			qty = 1
		}

		order, ok := byNumber[num]
		if !ok {
			if client == "" {
				client = "Importado"
			}
			order = &entity.Order{
				ID:           uuid.NewString(),
				OrderNumber:  num,
				CustomerName: client,
				Filial:       fil,
				Matricula:    mat,
				Date:         parseImportDate(dateStr),
				Status:       entity.OrderPending,
				Obs:          "Importado via CSV",
			}
			byNumber[num] = order
			orders = append(orders, order)
		}

		if item := order.Item(prodCode); item != nil {
			item.QtyRequested += qty
			continue
		}
		name, ok := names[prodCode]
		if !ok {
			name = "Produto " + prodCode
		}
		order.Items = append(order.Items, entity.OrderItem{
			ProductID:    prodCode,
			ProductName:  name,
			QtyRequested: qty,
		})
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("ler CSV de importação: %w", err)
	}
	if len(orders) == 0 {
		return 0, fmt.Errorf("nenhuma linha importável no CSV: %w", domain.ErrInvalidInput)
	}

	imported := 0
	for _, o := range orders {
		if err := uc.Save(ctx, o, true); err != nil {
			return imported, fmt.Errorf("importar pedido %s: %w", o.OrderNumber, err)
		}
		imported++
	}
	return imported, nil
}

// isImportHeader detecta cabeçalho opcional: primeiro campo sem dígito
// algum é texto de cabeçalho, não número de pedido.
func isImportHeader(line string) bool {
	field := strings.TrimSpace(strings.SplitN(line, ";", 2)[0])
	if field == "" {
		return false
	}
	return !strings.ContainsAny(field, "0123456789")
}

func parseImportDate(s string) time.Time {
	for _, layout := range []string{"2006-01-02", "02/01/2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Now()
}

// applyPending replay de um pedido drenado da fila. Sempre upsert: o pedido
// pode já existir no remoto ou nunca ter chegado lá.
func (uc *OrderUseCase) applyPending(ctx context.Context, item *entity.PendingMutation) error {
	var o entity.Order
	if err := json.Unmarshal(item.Payload, &o); err != nil {
		return fmt.Errorf("payload de pedido pendente: %w", err)
	}
	return uc.gateway.ApplyOrder(ctx, entity.CommandUpsert, &o)
}

func (uc *OrderUseCase) applyPendingDelete(ctx context.Context, item *entity.PendingMutation) error {
	var payload deleteOrderPayload
	if err := json.Unmarshal(item.Payload, &payload); err != nil {
		return fmt.Errorf("payload de remoção pendente: %w", err)
	}
	return uc.gateway.ApplyOrder(ctx, entity.CommandDelete, &entity.Order{ID: payload.ID})
}

// Refresh reescreve o cache local com os pedidos remotos normalizados.
func (uc *OrderUseCase) Refresh(ctx context.Context) error {
	if !uc.gateway.Available() {
		return nil
	}
	orders, err := uc.gateway.ListOrders(ctx)
	if err != nil {
		return err
	}
	normalize(orders)
	return uc.store.WriteOrders(orders)
}
