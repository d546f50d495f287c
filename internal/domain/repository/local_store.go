package repository

import "github.com/jhoicas/estoque-sync/internal/domain/entity"

// LocalStore é o cache local durável: quatro coleções serializadas de forma
// independente. Sem validação e sem merge; quem chama entrega a coleção
// completa desejada (substituição integral). A ausência de uma chave
// equivale a coleção vazia.
type LocalStore interface {
	ReadProducts() ([]*entity.Product, error)
	WriteProducts(products []*entity.Product) error

	ReadMovements() ([]*entity.Movement, error)
	WriteMovements(movements []*entity.Movement) error

	ReadOrders() ([]*entity.Order, error)
	WriteOrders(orders []*entity.Order) error

	ReadQueue() ([]*entity.PendingMutation, error)
	WriteQueue(queue []*entity.PendingMutation) error
	// ClearQueue remove a chave da fila por completo: sinal explícito de
	// "nenhum trabalho pendente", distinto de uma fila vazia gravada.
	ClearQueue() error
}
