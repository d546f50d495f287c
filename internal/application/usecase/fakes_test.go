package usecase_test

import (
	"context"
	"fmt"

	appsync "github.com/jhoicas/estoque-sync/internal/application/sync"
	"github.com/jhoicas/estoque-sync/internal/application/usecase"
	"github.com/jhoicas/estoque-sync/internal/domain"
	"github.com/jhoicas/estoque-sync/internal/domain/entity"
	"github.com/jhoicas/estoque-sync/pkg/logger"
)

// memStore LocalStore em memória com a mesma semântica de substituição
// total do arquivo JSON.
type memStore struct {
	products  []*entity.Product
	movements []*entity.Movement
	orders    []*entity.Order
	queue     []*entity.PendingMutation
	cleared   int
}

func clone[T any](in []*T) []*T {
	out := make([]*T, len(in))
	copy(out, in)
	return out
}

func (s *memStore) ReadProducts() ([]*entity.Product, error)      { return clone(s.products), nil }
func (s *memStore) WriteProducts(p []*entity.Product) error       { s.products = clone(p); return nil }
func (s *memStore) ReadMovements() ([]*entity.Movement, error)    { return clone(s.movements), nil }
func (s *memStore) WriteMovements(m []*entity.Movement) error     { s.movements = clone(m); return nil }
func (s *memStore) ReadOrders() ([]*entity.Order, error)          { return clone(s.orders), nil }
func (s *memStore) WriteOrders(o []*entity.Order) error           { s.orders = clone(o); return nil }
func (s *memStore) ReadQueue() ([]*entity.PendingMutation, error) { return clone(s.queue), nil }
func (s *memStore) WriteQueue(q []*entity.PendingMutation) error  { s.queue = clone(q); return nil }
func (s *memStore) ClearQueue() error                             { s.queue = nil; s.cleared++; return nil }

// fakeGateway RemoteGateway em memória com disponibilidade controlável e
// injeção de falha por entidade.
type fakeGateway struct {
	available bool

	products  map[string]*entity.Product
	movements []*entity.Movement
	orders    map[string]*entity.Order

	productErr  error
	movementErr error
	orderErr    error

	calls []string
}

func newFakeGateway(available bool) *fakeGateway {
	return &fakeGateway{
		available: available,
		products:  map[string]*entity.Product{},
		orders:    map[string]*entity.Order{},
	}
}

func (g *fakeGateway) Connect(context.Context) error { g.available = true; return nil }
func (g *fakeGateway) Close()                        { g.available = false }
func (g *fakeGateway) Available() bool               { return g.available }

func (g *fakeGateway) guard(entityErr error) error {
	if !g.available {
		return domain.ErrRemoteUnavailable
	}
	return entityErr
}

func (g *fakeGateway) ApplyProduct(_ context.Context, cmd entity.Command, p *entity.Product) error {
	if err := g.guard(g.productErr); err != nil {
		return err
	}
	g.calls = append(g.calls, fmt.Sprintf("product:%s:%s", cmd, p.ID))
	if cmd == entity.CommandDelete {
		delete(g.products, p.ID)
		return nil
	}
	cp := *p
	g.products[p.ID] = &cp
	return nil
}

func (g *fakeGateway) ListProducts(context.Context) ([]*entity.Product, error) {
	if err := g.guard(g.productErr); err != nil {
		return nil, err
	}
	out := make([]*entity.Product, 0, len(g.products))
	for _, p := range g.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (g *fakeGateway) ApplyMovement(_ context.Context, cmd entity.Command, m *entity.Movement) error {
	if err := g.guard(g.movementErr); err != nil {
		return err
	}
	g.calls = append(g.calls, fmt.Sprintf("movement:%s:%d", cmd, m.ID))
	cp := *m
	g.movements = append([]*entity.Movement{&cp}, g.movements...)
	return nil
}

func (g *fakeGateway) ListMovements(_ context.Context, limit int) ([]*entity.Movement, error) {
	if err := g.guard(g.movementErr); err != nil {
		return nil, err
	}
	if limit > 0 && len(g.movements) > limit {
		return clone(g.movements[:limit]), nil
	}
	return clone(g.movements), nil
}

func (g *fakeGateway) DeleteAllMovements(context.Context) error {
	if err := g.guard(g.movementErr); err != nil {
		return err
	}
	g.movements = nil
	return nil
}

func (g *fakeGateway) ApplyOrder(_ context.Context, cmd entity.Command, o *entity.Order) error {
	if err := g.guard(g.orderErr); err != nil {
		return err
	}
	g.calls = append(g.calls, fmt.Sprintf("order:%s:%s", cmd, o.ID))
	if cmd == entity.CommandDelete {
		delete(g.orders, o.ID)
		return nil
	}
	cp := *o
	g.orders[o.ID] = &cp
	return nil
}

func (g *fakeGateway) ListOrders(context.Context) ([]*entity.Order, error) {
	if err := g.guard(g.orderErr); err != nil {
		return nil, err
	}
	out := make([]*entity.Order, 0, len(g.orders))
	for _, o := range g.orders {
		cp := *o
		out = append(out, &cp)
	}
	return out, nil
}

// fixture monta a pilha completa de repositórios sobre os dublês.
type fixture struct {
	store     *memStore
	gateway   *fakeGateway
	engine    *appsync.Engine
	products  *usecase.ProductUseCase
	movements *usecase.MovementUseCase
	orders    *usecase.OrderUseCase
}

func newFixture(online bool) *fixture {
	store := &memStore{}
	gw := newFakeGateway(online)
	eng := appsync.NewEngine(store, gw, logger.Nop())
	products := usecase.NewProductUseCase(store, gw, eng, logger.Nop())
	movements := usecase.NewMovementUseCase(store, gw, eng, logger.Nop())
	orders := usecase.NewOrderUseCase(store, gw, eng, products, movements, logger.Nop())
	return &fixture{
		store:     store,
		gateway:   gw,
		engine:    eng,
		products:  products,
		movements: movements,
		orders:    orders,
	}
}
