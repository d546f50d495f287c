package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-sync/internal/application/dto"
	appsync "github.com/jhoicas/estoque-sync/internal/application/sync"
	"github.com/jhoicas/estoque-sync/internal/domain/repository"
)

// SyncHandler atende o estado e os comandos do motor de sincronização.
type SyncHandler struct {
	engine  *appsync.Engine
	gateway repository.RemoteGateway
}

// NewSyncHandler constrói o handler.
func NewSyncHandler(engine *appsync.Engine, gateway repository.RemoteGateway) *SyncHandler {
	return &SyncHandler{engine: engine, gateway: gateway}
}

// Status godoc
// @Summary      Estado da sincronização
// @Description  Disponibilidade do remoto e tamanho da fila de pendências
// @Tags         sync
// @Produce      json
// @Success      200  {object}  dto.SyncStatusResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/sync/status [get]
func (h *SyncHandler) Status(c *fiber.Ctx) error {
	pending, err := h.engine.PendingCount()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.SyncStatusResponse{Online: h.gateway.Available(), Pending: pending})
}

// Reconnect godoc
// @Summary      Reconectar ao remoto
// @Description  Conecta, drena a fila de pendências e recarrega os caches locais
// @Tags         sync
// @Produce      json
// @Success      200  {object}  dto.DrainResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/sync/reconnect [post]
func (h *SyncHandler) Reconnect(c *fiber.Ctx) error {
	synced, err := h.engine.Reconnect(c.Context())
	if err != nil {
		return fail(c, err)
	}
	pending, err := h.engine.PendingCount()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.DrainResponse{Synced: synced, Pending: pending})
}

// Drain godoc
// @Summary      Drenar fila de pendências
// @Description  Um passe manual de sincronização sem reconectar
// @Tags         sync
// @Produce      json
// @Success      200  {object}  dto.DrainResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/sync/drain [post]
func (h *SyncHandler) Drain(c *fiber.Ctx) error {
	synced, err := h.engine.Drain(c.Context())
	if err != nil {
		return fail(c, err)
	}
	pending, err := h.engine.PendingCount()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.DrainResponse{Synced: synced, Pending: pending})
}
