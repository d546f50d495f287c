// Package usecase contém os repositórios de entidade do serviço: a política
// de write-through com fallback (remoto primeiro quando disponível, cache
// local sempre, fila de replay apenas em indisponibilidade) e as regras de
// domínio de produto, movimentação e pedido.
package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	appsync "github.com/jhoicas/estoque-sync/internal/application/sync"
	"github.com/jhoicas/estoque-sync/internal/domain"
	"github.com/jhoicas/estoque-sync/internal/domain/entity"
	"github.com/jhoicas/estoque-sync/internal/domain/repository"
	"github.com/jhoicas/estoque-sync/pkg/logger"
)

// ProductUseCase repositório de produtos.
type ProductUseCase struct {
	store   repository.LocalStore
	gateway repository.RemoteGateway
	engine  *appsync.Engine
	log     *logger.Logger
}

// NewProductUseCase constrói o repositório e registra seus caminhos de
// replay e refresh no motor de sincronização.
func NewProductUseCase(store repository.LocalStore, gateway repository.RemoteGateway, engine *appsync.Engine, log *logger.Logger) *ProductUseCase {
	uc := &ProductUseCase{store: store, gateway: gateway, engine: engine, log: log}
	engine.RegisterApplier(entity.MutationProduct, uc.applyPending)
	engine.RegisterRefresher(uc.Refresh)
	return uc
}

// List devolve a coleção de produtos: leitura remota quando o gateway está
// disponível (e reescreve o cache local), senão o cache local. Falha de
// leitura remota degrada para o cache com aviso; leitura é tolerante, só
// escrita é estrita.
func (uc *ProductUseCase) List(ctx context.Context) ([]*entity.Product, error) {
	if uc.gateway.Available() {
		products, err := uc.gateway.ListProducts(ctx)
		if err == nil {
			if werr := uc.store.WriteProducts(products); werr != nil {
				uc.log.Warn().Err(werr).Msg("falha ao reescrever cache de produtos")
			}
			return products, nil
		}
		uc.log.Warn().Err(err).Msg("leitura remota de produtos falhou; usando cache local")
	}
	return uc.store.ReadProducts()
}

// GetByID resolve um código (escaneado ou digitado) para um produto.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	products, err := uc.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, fmt.Errorf("produto %q: %w", id, domain.ErrNotFound)
}

// Save persiste um produto com write-through. isNew distingue cadastro de
// atualização: cadastro offline com identidade já presente no cache falha
// com ErrDuplicate; cadastro insere na frente da coleção (mais recente
// primeiro), atualização mescla por identidade.
func (uc *ProductUseCase) Save(ctx context.Context, p *entity.Product, isNew bool) error {
	if !p.Valid() {
		return fmt.Errorf("produto requer código e nome: %w", domain.ErrInvalidInput)
	}

	applied := false
	if uc.gateway.Available() {
		// Atualização vai como upsert: o produto pode nunca ter chegado ao
		// remoto (editado enquanto offline) e um UPDATE de zero linhas
		// "passaria" descartando a escrita.
		cmd := entity.CommandUpsert
		if isNew {
			cmd = entity.CommandInsert
		}
		err := uc.gateway.ApplyProduct(ctx, cmd, p)
		switch {
		case err == nil:
			applied = true
		case domain.IsRemoteUnavailable(err):
			// conexão caiu entre a checagem e a aplicação; segue offline
		default:
			// gateway disponível e escrita rejeitada: falha dura, sem
			// mutação local e sem fila
			return err
		}
	}

	products, err := uc.store.ReadProducts()
	if err != nil {
		return err
	}
	if !applied && isNew {
		for _, existing := range products {
			if existing.ID == p.ID {
				return fmt.Errorf("produto %q já cadastrado: %w", p.ID, domain.ErrDuplicate)
			}
		}
	}
	if err := uc.store.WriteProducts(mergeProduct(products, p, isNew)); err != nil {
		return err
	}

	if !applied {
		return uc.engine.Enqueue(entity.MutationProduct, p.ID, p, isNew)
	}
	return nil
}

// mergeProduct substitui por identidade ou insere na frente.
func mergeProduct(products []*entity.Product, p *entity.Product, isNew bool) []*entity.Product {
	for i, existing := range products {
		if existing.ID == p.ID {
			products[i] = p
			return products
		}
	}
	if isNew {
		return append([]*entity.Product{p}, products...)
	}
	return append(products, p)
}

// applyPending replay de uma mutação de produto drenada da fila. Todo replay
// vai como upsert: o item pode já ter chegado ao remoto num drain
// interrompido, ou nunca ter chegado (editado offline), e um UPDATE de zero
// linhas descartaria a escrita em silêncio.
func (uc *ProductUseCase) applyPending(ctx context.Context, item *entity.PendingMutation) error {
	var p entity.Product
	if err := json.Unmarshal(item.Payload, &p); err != nil {
		return fmt.Errorf("payload de produto pendente: %w", err)
	}
	return uc.gateway.ApplyProduct(ctx, entity.CommandUpsert, &p)
}

// Refresh reescreve o cache local com a leitura remota autoritativa.
func (uc *ProductUseCase) Refresh(ctx context.Context) error {
	if !uc.gateway.Available() {
		return nil
	}
	products, err := uc.gateway.ListProducts(ctx)
	if err != nil {
		return err
	}
	return uc.store.WriteProducts(products)
}
