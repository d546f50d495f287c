// Package sync implementa o motor de sincronização: dono exclusivo do ciclo
// de vida da fila de mutações pendentes (criação, drain, poda). Idle →
// Draining → Idle, com guarda não-reentrante para nunca haver dois drains
// simultâneos reenviando os mesmos itens.
package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jhoicas/estoque-sync/internal/domain"
	"github.com/jhoicas/estoque-sync/internal/domain/entity"
	"github.com/jhoicas/estoque-sync/internal/domain/repository"
	"github.com/jhoicas/estoque-sync/pkg/logger"
	"github.com/jhoicas/estoque-sync/pkg/metrics"
)

// ApplyFunc aplica uma mutação pendente no remoto, sem tocar o cache local
// (que já reflete a mutação desde o enfileiramento).
type ApplyFunc func(ctx context.Context, item *entity.PendingMutation) error

// RefreshFunc recarrega uma coleção local a partir do remoto autoritativo.
type RefreshFunc func(ctx context.Context) error

// Engine é o motor de sincronização. Os repositórios registram seus
// caminhos de replay e refresh na subida; o registro quebra o ciclo de
// dependência repositório ↔ motor.
type Engine struct {
	store   repository.LocalStore
	gateway repository.RemoteGateway
	log     *logger.Logger

	draining   atomic.Bool
	mu         sync.Mutex // serializa read-modify-write da fila
	appliers   map[entity.MutationKind]ApplyFunc
	refreshers []RefreshFunc
}

// NewEngine constrói o motor.
func NewEngine(store repository.LocalStore, gateway repository.RemoteGateway, log *logger.Logger) *Engine {
	return &Engine{
		store:    store,
		gateway:  gateway,
		log:      log,
		appliers: make(map[entity.MutationKind]ApplyFunc),
	}
}

// RegisterApplier registra o caminho de replay de um tipo de mutação.
func (e *Engine) RegisterApplier(kind entity.MutationKind, fn ApplyFunc) {
	e.appliers[kind] = fn
}

// RegisterRefresher registra um recarregamento de cache pós-drain.
func (e *Engine) RegisterRefresher(fn RefreshFunc) {
	e.refreshers = append(e.refreshers, fn)
}

// Enqueue registra uma mutação para replay posterior. Chamado pelos
// repositórios apenas quando o gateway está indisponível — nunca para
// RemoteError com o gateway disponível.
func (e *Engine) Enqueue(kind entity.MutationKind, id string, payload any, isNew bool) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("codificar payload pendente: %w", err)
	}
	item := &entity.PendingMutation{
		ID:         id,
		Kind:       kind,
		Payload:    raw,
		IsNew:      isNew,
		EnqueuedAt: time.Now(),
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	queue, err := e.store.ReadQueue()
	if err != nil {
		return err
	}
	queue = append(queue, item)
	if err := e.store.WriteQueue(queue); err != nil {
		return err
	}

	metrics.SyncEnqueued.WithLabelValues(string(kind)).Inc()
	metrics.SyncPending.Set(float64(len(queue)))
	e.log.Debug().Str("kind", string(kind)).Str("id", id).Int("pending", len(queue)).
		Msg("mutação enfileirada para sync")
	return nil
}

// PendingCount devolve o tamanho atual da fila.
func (e *Engine) PendingCount() (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	queue, err := e.store.ReadQueue()
	if err != nil {
		return 0, err
	}
	return len(queue), nil
}

// Drain reenvia a fila inteira em ordem de enfileiramento. Falha de um item
// não interrompe os seguintes (falhas costumam ser do dado, não da
// conexão); ao final a fila é substituída exatamente pelos itens que
// falharam, na ordem relativa original, ou removida quando todos passaram.
// Devolve a contagem de itens sincronizados.
func (e *Engine) Drain(ctx context.Context) (int, error) {
	if !e.gateway.Available() {
		return 0, domain.ErrRemoteUnavailable
	}
	if !e.draining.CompareAndSwap(false, true) {
		return 0, domain.ErrSyncBusy
	}
	defer e.draining.Store(false)

	e.mu.Lock()
	snapshot, err := e.store.ReadQueue()
	e.mu.Unlock()
	if err != nil {
		return 0, err
	}
	if len(snapshot) == 0 {
		return 0, nil
	}

	var failed []*entity.PendingMutation
	synced := 0
	for _, item := range snapshot {
		apply, ok := e.appliers[item.Kind]
		if !ok {
			e.log.Error().Str("kind", string(item.Kind)).Msg("mutação sem applier registrado")
			failed = append(failed, item)
			metrics.SyncDrained.WithLabelValues("failed").Inc()
			continue
		}
		if err := apply(ctx, item); err != nil {
			e.log.Warn().Err(err).Str("kind", string(item.Kind)).Str("id", item.ID).
				Msg("replay de mutação falhou; item permanece na fila")
			failed = append(failed, item)
			metrics.SyncDrained.WithLabelValues("failed").Inc()
			continue
		}
		synced++
		metrics.SyncDrained.WithLabelValues("ok").Inc()
	}

	// Mutações enfileiradas durante o drain são só appends (há no máximo um
	// drain ativo); a cauda além do snapshot é preservada.
	e.mu.Lock()
	defer e.mu.Unlock()
	current, err := e.store.ReadQueue()
	if err != nil {
		return synced, err
	}
	var tail []*entity.PendingMutation
	if len(current) > len(snapshot) {
		tail = current[len(snapshot):]
	}
	remaining := append(failed, tail...)
	if len(remaining) == 0 {
		if err := e.store.ClearQueue(); err != nil {
			return synced, err
		}
	} else {
		if err := e.store.WriteQueue(remaining); err != nil {
			return synced, err
		}
	}

	metrics.SyncPending.Set(float64(len(remaining)))
	e.log.Info().Int("synced", synced).Int("remaining", len(remaining)).Msg("drain concluído")
	return synced, nil
}

// Reconnect executa o protocolo de reconexão: reestabelece o handle do
// gateway, faz um passe de drain e então recarrega os caches locais a
// partir do remoto (leituras remotas são autoritativas quando disponíveis).
func (e *Engine) Reconnect(ctx context.Context) (int, error) {
	if err := e.gateway.Connect(ctx); err != nil {
		metrics.RemoteAvailable.Set(0)
		return 0, domain.NewRemoteError(domain.RemoteUnavailable, err)
	}
	metrics.RemoteAvailable.Set(1)

	synced, err := e.Drain(ctx)
	if err != nil {
		return synced, err
	}

	for _, refresh := range e.refreshers {
		if err := refresh(ctx); err != nil {
			e.log.Warn().Err(err).Msg("refresh de cache pós-drain falhou")
		}
	}
	return synced, nil
}
