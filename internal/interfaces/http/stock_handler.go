package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-sync/internal/application/dto"
	"github.com/jhoicas/estoque-sync/internal/application/stock"
)

// StockHandler atende as transações de estoque.
type StockHandler struct {
	uc *stock.UseCase
}

// NewStockHandler constrói o handler.
func NewStockHandler(uc *stock.UseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Transaction godoc
// @Summary      Registrar transação de estoque
// @Description  Aplica uma entrada ou saída e devolve o produto atualizado
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body      dto.TransactionRequest  true  "Transação"
// @Success      200   {object}  entity.Product
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/stock/transactions [post]
func (h *StockHandler) Transaction(c *fiber.Ctx) error {
	var in dto.TransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	product, err := h.uc.Execute(c.Context(), stock.Transaction{
		ProductID: in.ProductID,
		Type:      in.Type,
		Qty:       in.Qty,
		Obs:       in.Obs,
		Matricula: in.Matricula,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(product)
}
