package http

import (
	"bytes"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-sync/internal/application/dto"
	"github.com/jhoicas/estoque-sync/internal/application/usecase"
)

// OrderHandler atende as rotas de pedido de separação.
type OrderHandler struct {
	uc *usecase.OrderUseCase
}

// NewOrderHandler constrói o handler.
func NewOrderHandler(uc *usecase.OrderUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// List godoc
// @Summary      Listar pedidos
// @Tags         orders
// @Produce      json
// @Success      200  {array}   entity.Order
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	orders, err := h.uc.List(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(orders)
}

// Create godoc
// @Summary      Cadastrar pedido
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body      dto.SaveOrderRequest  true  "Dados do pedido"
// @Success      201   {object}  entity.Order
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.SaveOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	o := in.ToEntity("")
	if err := h.uc.Save(c.Context(), o, true); err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(o)
}

// Update godoc
// @Summary      Atualizar pedido
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id    path      string                true  "ID do pedido"
// @Param        body  body      dto.SaveOrderRequest  true  "Dados do pedido"
// @Success      200   {object}  entity.Order
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [put]
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	var in dto.SaveOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	o := in.ToEntity(c.Params("id"))
	if err := h.uc.Save(c.Context(), o, false); err != nil {
		return fail(c, err)
	}
	return c.JSON(o)
}

// Delete godoc
// @Summary      Remover pedido
// @Tags         orders
// @Param        id  path  string  true  "ID do pedido"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [delete]
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Pick godoc
// @Summary      Separar uma unidade de um item
// @Description  Baixa uma unidade do estoque e registra a separação no histórico
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id    path      string           true  "ID do pedido"
// @Param        body  body      dto.PickRequest  true  "Item a separar"
// @Success      200   {object}  dto.PickResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/pick [post]
func (h *OrderHandler) Pick(c *fiber.Ctx) error {
	var in dto.PickRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	order, picked, err := h.uc.Pick(c.Context(), c.Params("id"), in.ProductID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.PickResponse{Picked: picked, Order: order})
}

// Shipping godoc
// @Summary      Alternar via de envio
// @Description  Inverte a flag malote ou matriz; a transição para concluído registra o envio no histórico
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id    path      string               true  "ID do pedido"
// @Param        body  body      dto.ShippingRequest  true  "Via de envio (malote ou matriz)"
// @Success      200   {object}  entity.Order
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/shipping [post]
func (h *OrderHandler) Shipping(c *fiber.Ctx) error {
	var in dto.ShippingRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	order, err := h.uc.ToggleShipping(c.Context(), c.Params("id"), in.Via)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(order)
}

// Import godoc
// @Summary      Importar pedidos via CSV
// @Description  Formato ponto-e-vírgula Numero;Cliente;Filial;Matricula;Data;CodProduto;Qtd, uma linha por item
// @Tags         orders
// @Accept       plain
// @Produce      json
// @Param        body  body      string  true  "Conteúdo CSV"
// @Success      200   {object}  dto.ImportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/orders/import [post]
func (h *OrderHandler) Import(c *fiber.Ctx) error {
	body := c.Body()
	if len(body) == 0 {
		return badBody(c)
	}
	imported, err := h.uc.ImportCSV(c.Context(), bytes.NewReader(body))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.ImportResponse{Imported: imported})
}
