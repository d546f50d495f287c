package repository

import (
	"context"

	"github.com/jhoicas/estoque-sync/internal/domain/entity"
)

// RemoteGateway abstrai o backend de dados hospedado. Disponibilidade é
// estado explícito (handle estabelecido por Connect), não inferida por
// chamada: uma operação feita sem handle falha imediatamente com
// RemoteError{unavailable}, sem tentar a rede.
//
// Cada entidade tem uma única função de dispatch que consome o Command
// tipado (Insert/Upsert/Update/Delete), o que torna o caminho de replay da
// fila reutilizável sem flags encadeadas.
type RemoteGateway interface {
	// Connect estabelece (ou reestabelece) o handle de conexão.
	Connect(ctx context.Context) error
	// Close derruba o handle; o gateway volta a reportar indisponível.
	Close()
	// Available reporta se há handle estabelecido.
	Available() bool

	ApplyProduct(ctx context.Context, cmd entity.Command, p *entity.Product) error
	ListProducts(ctx context.Context) ([]*entity.Product, error)

	ApplyMovement(ctx context.Context, cmd entity.Command, m *entity.Movement) error
	ListMovements(ctx context.Context, limit int) ([]*entity.Movement, error)
	// DeleteAllMovements apaga o histórico remoto via teto de data
	// (bulk delete-by-date-range-ceiling do contrato de fio).
	DeleteAllMovements(ctx context.Context) error

	ApplyOrder(ctx context.Context, cmd entity.Command, o *entity.Order) error
	ListOrders(ctx context.Context) ([]*entity.Order, error)
}
