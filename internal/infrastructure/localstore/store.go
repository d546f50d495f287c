// Package localstore implementa o cache local durável: uma coleção JSON por
// arquivo, substituída integralmente a cada escrita. É o read-of-record da
// UI; o remoto é eventualmente consistente através da fila de sync.
package localstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jhoicas/estoque-sync/internal/domain/entity"
	"github.com/jhoicas/estoque-sync/internal/domain/repository"
)

// Nomes de arquivo das quatro coleções persistidas.
const (
	fileProducts  = "products.json"
	fileMovements = "movements.json"
	fileOrders    = "orders.json"
	fileQueue     = "sync_queue.json"
)

var _ repository.LocalStore = (*Store)(nil)

// Store grava cada coleção em <dir>/<arquivo>.json. Handlers HTTP rodam em
// goroutines reais, então o acesso é serializado por mutex.
type Store struct {
	dir string
	mu  sync.Mutex
}

// New cria o store, garantindo que o diretório exista.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("criar diretório do store: %w", err)
	}
	return &Store{dir: dir}, nil
}

// ReadProducts lê a coleção de produtos. Arquivo ausente = coleção vazia.
func (s *Store) ReadProducts() ([]*entity.Product, error) {
	return readCollection[entity.Product](s, fileProducts)
}

// WriteProducts substitui a coleção de produtos.
func (s *Store) WriteProducts(products []*entity.Product) error {
	return writeCollection(s, fileProducts, products)
}

// ReadMovements lê o histórico de movimentações.
func (s *Store) ReadMovements() ([]*entity.Movement, error) {
	return readCollection[entity.Movement](s, fileMovements)
}

// WriteMovements substitui o histórico de movimentações.
func (s *Store) WriteMovements(movements []*entity.Movement) error {
	return writeCollection(s, fileMovements, movements)
}

// ReadOrders lê a coleção de pedidos.
func (s *Store) ReadOrders() ([]*entity.Order, error) {
	return readCollection[entity.Order](s, fileOrders)
}

// WriteOrders substitui a coleção de pedidos.
func (s *Store) WriteOrders(orders []*entity.Order) error {
	return writeCollection(s, fileOrders, orders)
}

// ReadQueue lê a fila de mutações pendentes.
func (s *Store) ReadQueue() ([]*entity.PendingMutation, error) {
	return readCollection[entity.PendingMutation](s, fileQueue)
}

// WriteQueue substitui a fila de mutações pendentes.
func (s *Store) WriteQueue(queue []*entity.PendingMutation) error {
	return writeCollection(s, fileQueue, queue)
}

// ClearQueue remove o arquivo da fila: "nenhum trabalho pendente" explícito,
// distinto de uma fila vazia gravada.
func (s *Store) ClearQueue() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := os.Remove(filepath.Join(s.dir, fileQueue))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remover fila: %w", err)
	}
	return nil
}

func readCollection[T any](s *Store, name string) ([]*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("ler %s: %w", name, err)
	}
	var list []*T
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("decodificar %s: %w", name, err)
	}
	return list, nil
}

// writeCollection grava via arquivo temporário + rename para nunca deixar
// uma coleção truncada em disco.
func writeCollection[T any](s *Store, name string, list []*T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if list == nil {
		list = []*T{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("codificar %s: %w", name, err)
	}

	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("gravar %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("renomear %s: %w", name, err)
	}
	return nil
}
