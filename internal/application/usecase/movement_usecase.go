package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	appsync "github.com/jhoicas/estoque-sync/internal/application/sync"
	"github.com/jhoicas/estoque-sync/internal/domain"
	"github.com/jhoicas/estoque-sync/internal/domain/entity"
	"github.com/jhoicas/estoque-sync/internal/domain/repository"
	"github.com/jhoicas/estoque-sync/pkg/logger"
)

// remoteMovementLimit limite de histórico trazido do remoto por leitura.
const remoteMovementLimit = 200

// MovementUseCase repositório do histórico de movimentações. Append-only:
// só há inserção e limpeza total, nunca edição.
type MovementUseCase struct {
	store   repository.LocalStore
	gateway repository.RemoteGateway
	engine  *appsync.Engine
	log     *logger.Logger
}

// NewMovementUseCase constrói o repositório e registra replay e refresh.
func NewMovementUseCase(store repository.LocalStore, gateway repository.RemoteGateway, engine *appsync.Engine, log *logger.Logger) *MovementUseCase {
	uc := &MovementUseCase{store: store, gateway: gateway, engine: engine, log: log}
	engine.RegisterApplier(entity.MutationMovement, uc.applyPending)
	engine.RegisterRefresher(uc.Refresh)
	return uc
}

// List devolve o histórico, remoto quando disponível, filtrado pelo
// intervalo [from, to]. Zero value em qualquer extremo deixa o lado aberto.
func (uc *MovementUseCase) List(ctx context.Context, from, to time.Time) ([]*entity.Movement, error) {
	var movements []*entity.Movement
	var err error
	if uc.gateway.Available() {
		movements, err = uc.gateway.ListMovements(ctx, remoteMovementLimit)
		if err == nil {
			if werr := uc.store.WriteMovements(movements); werr != nil {
				uc.log.Warn().Err(werr).Msg("falha ao reescrever cache de movimentações")
			}
			return filterByDate(movements, from, to), nil
		}
		uc.log.Warn().Err(err).Msg("leitura remota de movimentações falhou; usando cache local")
	}
	movements, err = uc.store.ReadMovements()
	if err != nil {
		return nil, err
	}
	return filterByDate(movements, from, to), nil
}

func filterByDate(movements []*entity.Movement, from, to time.Time) []*entity.Movement {
	if from.IsZero() && to.IsZero() {
		return movements
	}
	out := make([]*entity.Movement, 0, len(movements))
	for _, m := range movements {
		if !from.IsZero() && m.Date.Before(from) {
			continue
		}
		if !to.IsZero() && m.Date.After(to) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Save registra uma movimentação com write-through. ID e data são
// preenchidos quando ausentes (timestamp em milissegundos, convenção da
// coleção remota).
func (uc *MovementUseCase) Save(ctx context.Context, m *entity.Movement) error {
	if m.ProdName == "" {
		return fmt.Errorf("movimentação requer descrição do produto: %w", domain.ErrInvalidInput)
	}
	if m.ID == 0 {
		m.ID = time.Now().UnixMilli()
	}
	if m.Date.IsZero() {
		m.Date = time.Now()
	}

	applied := false
	if uc.gateway.Available() {
		err := uc.gateway.ApplyMovement(ctx, entity.CommandInsert, m)
		switch {
		case err == nil:
			applied = true
		case domain.IsRemoteUnavailable(err):
		default:
			return err
		}
	}

	movements, err := uc.store.ReadMovements()
	if err != nil {
		return err
	}
	// mais recente primeiro, como a leitura remota devolve
	movements = append([]*entity.Movement{m}, movements...)
	if err := uc.store.WriteMovements(movements); err != nil {
		return err
	}

	if !applied {
		return uc.engine.Enqueue(entity.MutationMovement, strconv.FormatInt(m.ID, 10), m, true)
	}
	return nil
}

// ClearHistory apaga todo o histórico. A remoção remota vem antes da local
// e qualquer falha dela aborta a limpeza, para o cache nunca ficar mais
// vazio que o remoto.
func (uc *MovementUseCase) ClearHistory(ctx context.Context) error {
	if uc.gateway.Available() {
		if err := uc.gateway.DeleteAllMovements(ctx); err != nil && !domain.IsRemoteUnavailable(err) {
			return err
		}
	}
	return uc.store.WriteMovements(nil)
}

func (uc *MovementUseCase) applyPending(ctx context.Context, item *entity.PendingMutation) error {
	var m entity.Movement
	if err := json.Unmarshal(item.Payload, &m); err != nil {
		return fmt.Errorf("payload de movimentação pendente: %w", err)
	}
	return uc.gateway.ApplyMovement(ctx, entity.CommandInsert, &m)
}

// Refresh reescreve o cache local com o histórico remoto.
func (uc *MovementUseCase) Refresh(ctx context.Context) error {
	if !uc.gateway.Available() {
		return nil
	}
	movements, err := uc.gateway.ListMovements(ctx, remoteMovementLimit)
	if err != nil {
		return err
	}
	return uc.store.WriteMovements(movements)
}
