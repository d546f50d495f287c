package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-sync/internal/application/dto"
	"github.com/jhoicas/estoque-sync/internal/application/usecase"
)

// ProductHandler atende as rotas de produto.
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler constrói o handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// List godoc
// @Summary      Listar produtos
// @Description  Coleção de produtos: remota quando disponível, cache local como contingência
// @Tags         products
// @Produce      json
// @Success      200  {array}   entity.Product
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	products, err := h.uc.List(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(products)
}

// GetByID godoc
// @Summary      Obter produto por código
// @Description  Resolve um código escaneado ou digitado para um produto
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Código do produto"
// @Success      200  {object}  entity.Product
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	product, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(product)
}

// Create godoc
// @Summary      Cadastrar produto
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body      dto.SaveProductRequest  true  "Dados do produto"
// @Success      201   {object}  entity.Product
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.SaveProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	p := in.ToEntity()
	if err := h.uc.Save(c.Context(), p, true); err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

// Update godoc
// @Summary      Atualizar produto
// @Description  O id da rota prevalece sobre o do corpo
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path      string                  true  "Código do produto"
// @Param        body  body      dto.SaveProductRequest  true  "Dados do produto"
// @Success      200   {object}  entity.Product
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.SaveProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	p := in.ToEntity()
	p.ID = c.Params("id")
	if err := h.uc.Save(c.Context(), p, false); err != nil {
		return fail(c, err)
	}
	return c.JSON(p)
}
