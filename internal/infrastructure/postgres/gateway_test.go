package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/estoque-sync/internal/domain"
	"github.com/jhoicas/estoque-sync/pkg/config"
	"github.com/jhoicas/estoque-sync/pkg/logger"
)

func TestGateway_SemConexaoFalhaRapido(t *testing.T) {
	g := NewGateway(config.RemoteConfig{}, logger.Nop())

	assert.False(t, g.Available())

	_, err := g.ListProducts(context.Background())
	assert.True(t, domain.IsRemoteUnavailable(err), "chamada sem handle deve falhar com indisponibilidade, sem tentar rede")

	err = g.DeleteAllMovements(context.Background())
	assert.True(t, domain.IsRemoteUnavailable(err))
}

func TestClassificacaoDeErroPg(t *testing.T) {
	schemaErr := &pgconn.PgError{Code: "22P02", Message: "malformed array literal"}
	dupErr := &pgconn.PgError{Code: "23505", Message: "duplicate key value"}
	otherErr := &pgconn.PgError{Code: "42501", Message: "permission denied"}

	assert.True(t, isSchemaMismatch(schemaErr))
	assert.False(t, isSchemaMismatch(dupErr))
	assert.False(t, isSchemaMismatch(errors.New("dial timeout")))

	assert.True(t, isUniqueViolation(dupErr))
	assert.False(t, isUniqueViolation(schemaErr))

	assert.ErrorIs(t, remoteErr(dupErr), domain.ErrDuplicate)

	var rerr *domain.RemoteError
	assert.ErrorAs(t, remoteErr(schemaErr), &rerr)
	assert.Equal(t, domain.RemoteSchemaMismatch, rerr.Reason)

	assert.ErrorAs(t, remoteErr(otherErr), &rerr)
	assert.Equal(t, domain.RemoteRejected, rerr.Reason)
}

// stubExecer registra cada chamada e devolve os erros programados na ordem.
type stubExecer struct {
	errs  []error
	calls [][]any
}

func (s *stubExecer) Exec(_ context.Context, _ string, args ...any) (pgconn.CommandTag, error) {
	s.calls = append(s.calls, append([]any(nil), args...))
	var err error
	if len(s.errs) > 0 {
		err, s.errs = s.errs[0], s.errs[1:]
	}
	return pgconn.CommandTag{}, err
}

func TestExecWithArrayFallback_SucessoNaturalNaoRepete(t *testing.T) {
	g := NewGateway(config.RemoteConfig{}, logger.Nop())
	db := &stubExecer{}

	err := g.execWithArrayFallback(context.Background(), db, "INSERT", "A1", "Caneta Azul", 3)
	assert.NoError(t, err)
	assert.Len(t, db.calls, 1)
	assert.Equal(t, "A1", db.calls[0][0])
}

func TestExecWithArrayFallback_ColunaArrayRepeteUmaVezEmbrulhado(t *testing.T) {
	g := NewGateway(config.RemoteConfig{}, logger.Nop())
	db := &stubExecer{errs: []error{&pgconn.PgError{Code: "22P02", Message: "malformed array literal"}}}

	err := g.execWithArrayFallback(context.Background(), db, "INSERT", "A1", "Caneta Azul", 3)
	assert.NoError(t, err)
	assert.Len(t, db.calls, 2, "exatamente uma repetição")
	assert.Equal(t, "A1", db.calls[0][0])
	assert.Equal(t, []string{"A1"}, db.calls[1][0], "a segunda tentativa embrulha o id em sequência")
}

func TestExecWithArrayFallback_FalhaPersistenteParaNaSegunda(t *testing.T) {
	g := NewGateway(config.RemoteConfig{}, logger.Nop())
	db := &stubExecer{errs: []error{
		&pgconn.PgError{Code: "22P02", Message: "malformed array literal"},
		&pgconn.PgError{Code: "22P02", Message: "malformed array literal"},
	}}

	err := g.execWithArrayFallback(context.Background(), db, "INSERT", "A1", "Caneta Azul", 3)
	var rerr *domain.RemoteError
	assert.ErrorAs(t, err, &rerr)
	assert.Equal(t, domain.RemoteSchemaMismatch, rerr.Reason)
	assert.Len(t, db.calls, 2, "nunca passa da segunda tentativa")
}

func TestExecWithArrayFallback_OutroErroPropagaSemRepetir(t *testing.T) {
	g := NewGateway(config.RemoteConfig{}, logger.Nop())
	db := &stubExecer{errs: []error{&pgconn.PgError{Code: "42501", Message: "permission denied"}}}

	err := g.execWithArrayFallback(context.Background(), db, "INSERT", "A1", "Caneta Azul", 3)
	var rerr *domain.RemoteError
	assert.ErrorAs(t, err, &rerr)
	assert.Equal(t, domain.RemoteRejected, rerr.Reason)
	assert.Len(t, db.calls, 1, "erro que não é de coluna array não dispara o fallback")
}

func TestScalarID(t *testing.T) {
	assert.Equal(t, "A1", scalarID("A1"))
	assert.Equal(t, "A1", scalarID([]string{"A1"}))
	assert.Equal(t, "A1", scalarID([]any{"A1"}))
	assert.Equal(t, "", scalarID([]string{}))
	assert.Equal(t, "7", scalarID(7))
}
