// Package stock implementa a transação de estoque: entrada ou saída de um
// produto com registro obrigatório no histórico e identificação do
// operador.
package stock

import (
	"context"
	"fmt"

	"github.com/jhoicas/estoque-sync/internal/application/usecase"
	"github.com/jhoicas/estoque-sync/internal/domain"
	"github.com/jhoicas/estoque-sync/internal/domain/entity"
	"github.com/jhoicas/estoque-sync/pkg/logger"
)

// Tipos de transação.
const (
	TypeIn  = "in"
	TypeOut = "out"
)

// Transaction entrada do caso de uso.
type Transaction struct {
	ProductID string
	Type      string // in | out
	Qty       int    // sempre positivo; o sinal vem do tipo
	Obs       string
	Matricula string
}

// UseCase compõe os repositórios de produto e movimentação. As duas
// escritas não são atômicas entre si: se a atualização de estoque passar e
// o registro de histórico falhar, o estoque reflete a mudança e o
// histórico não. Limitação conhecida, registrada em log, sem compensação.
type UseCase struct {
	products  *usecase.ProductUseCase
	movements *usecase.MovementUseCase
	log       *logger.Logger
}

// NewUseCase constrói o caso de uso.
func NewUseCase(products *usecase.ProductUseCase, movements *usecase.MovementUseCase, log *logger.Logger) *UseCase {
	return &UseCase{products: products, movements: movements, log: log}
}

// Execute aplica a transação e devolve o produto atualizado. Saída maior
// que o estoque atual é rejeitada antes de qualquer escrita; matrícula é
// obrigatória para qualquer transação.
func (uc *UseCase) Execute(ctx context.Context, tx Transaction) (*entity.Product, error) {
	if tx.Matricula == "" {
		return nil, fmt.Errorf("matrícula do operador é obrigatória: %w", domain.ErrInvalidInput)
	}
	if tx.Qty <= 0 {
		return nil, fmt.Errorf("quantidade deve ser positiva: %w", domain.ErrInvalidInput)
	}

	delta := tx.Qty
	switch tx.Type {
	case TypeIn:
	case TypeOut:
		delta = -tx.Qty
	default:
		return nil, fmt.Errorf("tipo de transação %q: %w", tx.Type, domain.ErrInvalidInput)
	}

	product, err := uc.products.GetByID(ctx, tx.ProductID)
	if err != nil {
		return nil, err
	}
	if tx.Type == TypeOut && product.Qty < tx.Qty {
		return nil, fmt.Errorf("estoque de %q é %d, saída de %d: %w",
			product.ID, product.Qty, tx.Qty, domain.ErrInsufficientStock)
	}

	product.Qty += delta
	if err := uc.products.Save(ctx, product, false); err != nil {
		return nil, err
	}

	if err := uc.movements.Save(ctx, &entity.Movement{
		ProdID:    product.ID,
		ProdName:  product.Name,
		Qty:       delta,
		Obs:       tx.Obs,
		Matricula: tx.Matricula,
	}); err != nil {
		uc.log.Warn().Err(err).Str("product", product.ID).Int("delta", delta).
			Msg("estoque atualizado mas o histórico não registrou a movimentação")
		return nil, err
	}
	return product, nil
}
