package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-sync/internal/application/dto"
	"github.com/jhoicas/estoque-sync/internal/application/usecase"
)

// MovementHandler atende o histórico de movimentações.
type MovementHandler struct {
	uc *usecase.MovementUseCase
}

// NewMovementHandler constrói o handler.
func NewMovementHandler(uc *usecase.MovementUseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// parseDateRange lê from/to no formato 2006-01-02; to é inclusivo até o fim
// do dia.
func parseDateRange(c *fiber.Ctx) (from, to time.Time, ok bool) {
	if v := c.Query("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return from, to, false
		}
		from = t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return from, to, false
		}
		to = t.Add(24*time.Hour - time.Nanosecond)
	}
	return from, to, true
}

// List godoc
// @Summary      Listar histórico de movimentações
// @Tags         movements
// @Produce      json
// @Param        from  query     string  false  "Data inicial (AAAA-MM-DD)"
// @Param        to    query     string  false  "Data final inclusiva (AAAA-MM-DD)"
// @Success      200   {array}   entity.Movement
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	from, to, ok := parseDateRange(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "from/to devem estar no formato AAAA-MM-DD",
		})
	}
	movements, err := h.uc.List(c.Context(), from, to)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(movements)
}

// Clear godoc
// @Summary      Limpar histórico
// @Description  Apaga todo o histórico, remoto e local
// @Tags         movements
// @Success      204
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/movements [delete]
func (h *MovementHandler) Clear(c *fiber.Ctx) error {
	if err := h.uc.ClearHistory(c.Context()); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
