package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/estoque-sync/internal/domain"
	"github.com/jhoicas/estoque-sync/internal/domain/entity"
)

// execer é a fatia do pool que o fallback de array precisa. *pgxpool.Pool a
// satisfaz direto.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// ApplyProduct despacha um comando sobre a coleção remota de produtos.
func (g *Gateway) ApplyProduct(ctx context.Context, cmd entity.Command, p *entity.Product) error {
	pool, err := g.handle()
	if err != nil {
		return err
	}

	switch cmd {
	case entity.CommandInsert:
		return g.execWithArrayFallback(ctx, pool,
			`INSERT INTO products (id, name, qty) VALUES ($1, $2, $3)`,
			p.ID, p.Name, p.Qty)
	case entity.CommandUpsert:
		return g.execWithArrayFallback(ctx, pool,
			`INSERT INTO products (id, name, qty) VALUES ($1, $2, $3)
			 ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, qty = EXCLUDED.qty`,
			p.ID, p.Name, p.Qty)
	case entity.CommandUpdate:
		if _, err := pool.Exec(ctx,
			`UPDATE products SET name = $2, qty = $3 WHERE id = $1`,
			p.ID, p.Name, p.Qty); err != nil {
			return remoteErr(err)
		}
		return nil
	case entity.CommandDelete:
		if _, err := pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, p.ID); err != nil {
			return remoteErr(err)
		}
		return nil
	}
	return domain.ErrInvalidInput
}

// execWithArrayFallback executa o insert/upsert com o id na codificação
// escalar natural; se o backend recusar por incompatibilidade de tipo
// (coluna array), tenta UMA vez com o valor embrulhado em sequência de um
// elemento. Qualquer outra falha propaga inalterada. Não é política geral
// de retry — o loop nunca passa da segunda tentativa.
func (g *Gateway) execWithArrayFallback(ctx context.Context, db execer, query string, id string, rest ...any) error {
	args := append([]any{id}, rest...)
	_, err := db.Exec(ctx, query, args...)
	if err == nil {
		return nil
	}
	if !isSchemaMismatch(err) {
		return remoteErr(err)
	}

	g.log.Warn().Str("id", id).Msg("remoto espera coluna array; repetindo com id embrulhado")
	args[0] = []string{id}
	if _, err := db.Exec(ctx, query, args...); err != nil {
		return remoteErr(err)
	}
	return nil
}

// ListProducts lê a coleção remota ordenada por nome.
func (g *Gateway) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	pool, err := g.handle()
	if err != nil {
		return nil, err
	}

	rows, err := pool.Query(ctx, `SELECT id, name, qty FROM products ORDER BY name`)
	if err != nil {
		return nil, remoteErr(err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		var rawID any
		var p entity.Product
		if err := rows.Scan(&rawID, &p.Name, &p.Qty); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		p.ID = scalarID(rawID)
		list = append(list, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, remoteErr(err)
	}
	return list, nil
}
