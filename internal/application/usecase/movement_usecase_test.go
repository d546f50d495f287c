package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-sync/internal/domain"
	"github.com/jhoicas/estoque-sync/internal/domain/entity"
)

func TestMovementSave_PreencheIDEData(t *testing.T) {
	f := newFixture(false)

	m := &entity.Movement{ProdID: "A1", ProdName: "Caneta Azul", Qty: -2, Matricula: "007"}
	require.NoError(t, f.movements.Save(context.Background(), m))

	assert.NotZero(t, m.ID)
	assert.False(t, m.Date.IsZero())
	require.Len(t, f.store.movements, 1)
	require.Len(t, f.store.queue, 1)
	assert.Equal(t, entity.MutationMovement, f.store.queue[0].Kind)
}

func TestMovementSave_MaisRecentePrimeiro(t *testing.T) {
	f := newFixture(false)

	require.NoError(t, f.movements.Save(context.Background(), &entity.Movement{ID: 1, ProdName: "Primeira", Qty: 1}))
	require.NoError(t, f.movements.Save(context.Background(), &entity.Movement{ID: 2, ProdName: "Segunda", Qty: 1}))

	require.Len(t, f.store.movements, 2)
	assert.Equal(t, int64(2), f.store.movements[0].ID, "histórico é mais recente primeiro")
}

func TestMovementSave_SemDescricaoFalha(t *testing.T) {
	f := newFixture(true)

	err := f.movements.Save(context.Background(), &entity.Movement{Qty: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMovementList_FiltraPorIntervalo(t *testing.T) {
	f := newFixture(false)
	day := func(d int) time.Time { return time.Date(2026, 8, d, 12, 0, 0, 0, time.UTC) }
	f.store.movements = []*entity.Movement{
		{ID: 3, ProdName: "C", Date: day(20)},
		{ID: 2, ProdName: "B", Date: day(10)},
		{ID: 1, ProdName: "A", Date: day(1)},
	}

	out, err := f.movements.List(context.Background(), day(5), day(15))
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, int64(2), out[0].ID)

	out, err = f.movements.List(context.Background(), time.Time{}, day(15))
	require.NoError(t, err)
	assert.Len(t, out, 2, "extremo zero deixa o lado aberto")

	out, err = f.movements.List(context.Background(), time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Len(t, out, 3)
}

func TestMovementClearHistory_RemotoAntesDoLocal(t *testing.T) {
	f := newFixture(true)
	f.gateway.movements = []*entity.Movement{{ID: 1, ProdName: "A"}}
	f.store.movements = []*entity.Movement{{ID: 1, ProdName: "A"}}

	require.NoError(t, f.movements.ClearHistory(context.Background()))
	assert.Empty(t, f.gateway.movements)
	assert.Empty(t, f.store.movements)
}

func TestMovementClearHistory_FalhaRemotaPreservaLocal(t *testing.T) {
	f := newFixture(true)
	f.gateway.movementErr = domain.NewRemoteError(domain.RemoteRejected, errors.New("permission denied"))
	f.store.movements = []*entity.Movement{{ID: 1, ProdName: "A"}}

	err := f.movements.ClearHistory(context.Background())
	require.Error(t, err)
	assert.Len(t, f.store.movements, 1, "cache não pode ficar mais vazio que o remoto")
}

func TestMovementClearHistory_OfflineLimpaSomenteLocal(t *testing.T) {
	f := newFixture(false)
	f.store.movements = []*entity.Movement{{ID: 1, ProdName: "A"}}

	require.NoError(t, f.movements.ClearHistory(context.Background()))
	assert.Empty(t, f.store.movements)
	assert.Empty(t, f.store.queue, "limpeza de histórico não é enfileirável")
}
