package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/estoque-sync/internal/domain"
	"github.com/jhoicas/estoque-sync/internal/domain/entity"
)

// ApplyOrder despacha um comando sobre a coleção remota de pedidos.
// Insert usa upsert por identidade: durante o replay da fila o pedido pode
// já existir no servidor, e upsert é idempotente para retries.
func (g *Gateway) ApplyOrder(ctx context.Context, cmd entity.Command, o *entity.Order) error {
	pool, err := g.handle()
	if err != nil {
		return err
	}

	switch cmd {
	case entity.CommandInsert, entity.CommandUpsert:
		items, err := json.Marshal(o.Items)
		if err != nil {
			return fmt.Errorf("codificar itens: %w", err)
		}
		_, err = pool.Exec(ctx,
			`INSERT INTO orders (id, order_number, customer_name, filial, matricula, date, status, items, obs, envio_malote, entrega_matriz)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			 ON CONFLICT (id) DO UPDATE SET
			   order_number = EXCLUDED.order_number, customer_name = EXCLUDED.customer_name,
			   filial = EXCLUDED.filial, matricula = EXCLUDED.matricula, date = EXCLUDED.date,
			   status = EXCLUDED.status, items = EXCLUDED.items, obs = EXCLUDED.obs,
			   envio_malote = EXCLUDED.envio_malote, entrega_matriz = EXCLUDED.entrega_matriz`,
			o.ID, o.OrderNumber, o.CustomerName, o.Filial, o.Matricula, o.Date,
			o.Status, items, o.Obs, o.EnvioMalote, o.EntregaMatriz)
		if err != nil {
			return remoteErr(err)
		}
		return nil

	case entity.CommandUpdate:
		items, err := json.Marshal(o.Items)
		if err != nil {
			return fmt.Errorf("codificar itens: %w", err)
		}
		_, err = pool.Exec(ctx,
			`UPDATE orders SET order_number = $2, customer_name = $3, filial = $4, matricula = $5,
			   date = $6, status = $7, items = $8, obs = $9, envio_malote = $10, entrega_matriz = $11
			 WHERE id = $1`,
			o.ID, o.OrderNumber, o.CustomerName, o.Filial, o.Matricula, o.Date,
			o.Status, items, o.Obs, o.EnvioMalote, o.EntregaMatriz)
		if err != nil {
			return remoteErr(err)
		}
		return nil

	case entity.CommandDelete:
		if _, err := pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, o.ID); err != nil {
			return remoteErr(err)
		}
		return nil
	}
	return domain.ErrInvalidInput
}

// ListOrders lê a coleção remota, mais recente primeiro.
func (g *Gateway) ListOrders(ctx context.Context) ([]*entity.Order, error) {
	pool, err := g.handle()
	if err != nil {
		return nil, err
	}

	rows, err := pool.Query(ctx,
		`SELECT id, order_number, customer_name, filial, matricula, date, status, items, obs, envio_malote, entrega_matriz
		 FROM orders ORDER BY date DESC`)
	if err != nil {
		return nil, remoteErr(err)
	}
	defer rows.Close()

	var list []*entity.Order
	for rows.Next() {
		var (
			o     entity.Order
			items []byte
			obs   *string
		)
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.CustomerName, &o.Filial, &o.Matricula,
			&o.Date, &o.Status, &items, &obs, &o.EnvioMalote, &o.EntregaMatriz); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		if len(items) > 0 {
			if err := json.Unmarshal(items, &o.Items); err != nil {
				return nil, fmt.Errorf("decodificar itens: %w", err)
			}
		}
		if obs != nil {
			o.Obs = *obs
		}
		list = append(list, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, remoteErr(err)
	}
	return list, nil
}
