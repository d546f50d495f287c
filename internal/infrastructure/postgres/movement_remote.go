package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/estoque-sync/internal/domain"
	"github.com/jhoicas/estoque-sync/internal/domain/entity"
)

// ApplyMovement despacha um comando sobre o histórico remoto. Movimentações
// são append-only: só Insert faz sentido aqui.
func (g *Gateway) ApplyMovement(ctx context.Context, cmd entity.Command, m *entity.Movement) error {
	if cmd != entity.CommandInsert {
		return domain.ErrInvalidInput
	}
	pool, err := g.handle()
	if err != nil {
		return err
	}

	// O backend não tem coluna de matrícula; ela viaja codificada na
	// observação e é decodificada simetricamente em toda leitura.
	obs := entity.EncodeObs(m.Matricula, m.Obs)

	var prodID any
	if m.ProdID != "" {
		prodID = m.ProdID
	}

	const query = `INSERT INTO movements (prod_id, prod_name, qty, obs, created_at) VALUES ($1, $2, $3, $4, $5)`
	_, err = pool.Exec(ctx, query, prodID, m.ProdName, m.Qty, obs, m.Date)
	if err == nil {
		return nil
	}
	if !isSchemaMismatch(err) {
		return remoteErr(err)
	}

	// Coluna prod_id declarada como array no esquema remoto: repete uma
	// única vez com o valor embrulhado (vazio para eventos de sistema).
	g.log.Warn().Str("prod_id", m.ProdID).Msg("remoto espera coluna array; repetindo com prod_id embrulhado")
	wrapped := []string{}
	if m.ProdID != "" {
		wrapped = []string{m.ProdID}
	}
	if _, err := pool.Exec(ctx, query, wrapped, m.ProdName, m.Qty, obs, m.Date); err != nil {
		return remoteErr(err)
	}
	return nil
}

// ListMovements lê o histórico remoto, mais recente primeiro.
func (g *Gateway) ListMovements(ctx context.Context, limit int) ([]*entity.Movement, error) {
	pool, err := g.handle()
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 200
	}

	rows, err := pool.Query(ctx,
		`SELECT id, prod_id, prod_name, qty, obs, created_at
		 FROM movements ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, remoteErr(err)
	}
	defer rows.Close()

	var list []*entity.Movement
	for rows.Next() {
		var (
			rawProdID any
			obs       *string
			m         entity.Movement
		)
		if err := rows.Scan(&m.ID, &rawProdID, &m.ProdName, &m.Qty, &obs, &m.Date); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		m.ProdID = scalarID(rawProdID)
		if obs != nil {
			m.Matricula, m.Obs = entity.DecodeObs(*obs)
		}
		list = append(list, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, remoteErr(err)
	}
	return list, nil
}

// DeleteAllMovements apaga o histórico remoto pelo teto de data do contrato
// de fio (tudo que foi criado até o ano 3000).
func (g *Gateway) DeleteAllMovements(ctx context.Context) error {
	pool, err := g.handle()
	if err != nil {
		return err
	}
	ceiling := time.Date(3000, 1, 1, 0, 0, 0, 0, time.UTC)
	if _, err := pool.Exec(ctx, `DELETE FROM movements WHERE created_at <= $1`, ceiling); err != nil {
		return remoteErr(err)
	}
	return nil
}
