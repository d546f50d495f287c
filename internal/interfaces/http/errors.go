// Package http expõe a API do serviço sobre Fiber: uma camada fina que
// converte requisições em chamadas de caso de uso e erros de domínio em
// respostas estruturadas.
package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-sync/internal/application/dto"
	"github.com/jhoicas/estoque-sync/internal/domain"
)

// fail converte um erro de domínio na resposta HTTP correspondente.
func fail(c *fiber.Ctx, err error) error {
	var rerr *domain.RemoteError
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	case errors.Is(err, domain.ErrSyncBusy):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SYNC_BUSY", Message: "já existe um drain em andamento"})
	case errors.As(err, &rerr):
		if rerr.Reason == domain.RemoteUnavailable {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "REMOTE_UNAVAILABLE", Message: err.Error()})
		}
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "REMOTE_" + strings.ToUpper(string(rerr.Reason)), Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
}
