package serverutils

import (
	"errors"

	"webhook-chat-be/internal/service"
	"webhook-chat-be/pkg/chat/session"
	"webhook-chat-be/pkg/webhook"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps domain errors onto HTTP codes in one place so
// controllers can return errors raw.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		if errors.Is(err, session.ErrNotFound) || errors.Is(err, service.ErrPromptNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(ErrorResponse(fiber.StatusNotFound, err.Error()))
		}

		if errors.Is(err, webhook.ErrTimeout) {
			return ctx.Status(fiber.StatusGatewayTimeout).JSON(ErrorResponse(fiber.StatusGatewayTimeout, err.Error()))
		}

		var rejected *webhook.RejectedError
		if errors.As(err, &rejected) {
			return ctx.Status(fiber.StatusBadGateway).JSON(ErrorResponse(fiber.StatusBadGateway, rejected.Error()))
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(fiber.StatusInternalServerError, err.Error()))
	}
}
