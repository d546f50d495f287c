// Package postgres implementa o RemoteGateway sobre o PostgreSQL hospedado
// (DATABASE_URL do Supabase). O handle de conexão é estado explícito: o
// gateway nasce desconectado, Connect estabelece o pool e Close o derruba.
// Nenhuma chamada tenta a rede sem handle — falha imediata com
// RemoteError{unavailable}.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/estoque-sync/internal/domain"
	"github.com/jhoicas/estoque-sync/internal/domain/repository"
	"github.com/jhoicas/estoque-sync/pkg/config"
	"github.com/jhoicas/estoque-sync/pkg/logger"
)

var _ repository.RemoteGateway = (*Gateway)(nil)

// Gateway mantém o pool pgx atrás de um RWMutex. É a única instância
// compartilhada — construída na subida, passada por referência aos
// repositórios e ao motor de sync, nunca um global escondido.
type Gateway struct {
	cfg config.RemoteConfig
	log *logger.Logger

	mu   sync.RWMutex
	pool *pgxpool.Pool
}

// NewGateway constrói o gateway desconectado.
func NewGateway(cfg config.RemoteConfig, log *logger.Logger) *Gateway {
	return &Gateway{cfg: cfg, log: log}
}

// Connect estabelece (ou reestabelece) o pool. Um pool anterior é fechado
// antes de ser substituído.
func (g *Gateway) Connect(ctx context.Context) error {
	poolCfg, err := pgxpool.ParseConfig(g.cfg.ConnectionString())
	if err != nil {
		return fmt.Errorf("parse DSN: %w", err)
	}
	// App de operador único: pool pequeno basta.
	poolCfg.MaxConns = 4
	poolCfg.MaxConnLifetime = time.Hour
	poolCfg.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return fmt.Errorf("criar pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("ping remoto: %w", err)
	}

	g.mu.Lock()
	if g.pool != nil {
		g.pool.Close()
	}
	g.pool = pool
	g.mu.Unlock()

	g.log.Info().Msg("gateway remoto conectado")
	return nil
}

// Close derruba o handle; o gateway volta a reportar indisponível.
func (g *Gateway) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.pool != nil {
		g.pool.Close()
		g.pool = nil
	}
}

// Available reporta se há handle estabelecido.
func (g *Gateway) Available() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.pool != nil
}

// handle devolve o pool atual ou ErrRemoteUnavailable.
func (g *Gateway) handle() (*pgxpool.Pool, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.pool == nil {
		return nil, domain.ErrRemoteUnavailable
	}
	return g.pool, nil
}

// isSchemaMismatch verifica se o erro é representação textual inválida
// (22P02: classe do "malformed array literal" de coluna array recebendo
// escalar). É o gatilho do re-encoding — decidido aqui, por código, nunca
// por texto de erro nas camadas de cima.
func isSchemaMismatch(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02" // invalid_text_representation
}

// isUniqueViolation verifica violação de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" // unique_violation
}

// remoteErr traduz um erro pgx para a taxonomia do domínio.
func remoteErr(err error) error {
	if isUniqueViolation(err) {
		return domain.ErrDuplicate
	}
	if isSchemaMismatch(err) {
		return domain.NewRemoteError(domain.RemoteSchemaMismatch, err)
	}
	return domain.NewRemoteError(domain.RemoteRejected, err)
}

// scalarID normaliza um id lido do remoto: esquemas com a coluna id
// declarada como array devolvem o valor embrulhado, e o lado daqui sempre
// trabalha com o escalar.
func scalarID(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []string:
		if len(t) == 0 {
			return ""
		}
		return t[0]
	case []any:
		if len(t) == 0 {
			return ""
		}
		return fmt.Sprint(t[0])
	default:
		return fmt.Sprint(t)
	}
}
