package serverutils

import (
	"errors"

	"equipment-chatbot-be/pkg/agent"
	"equipment-chatbot-be/pkg/retrieval"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps typed domain errors to HTTP status codes.
// Failures with a defined degraded behavior never reach this layer; what
// arrives here is fatal to the request.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		switch {
		case errors.Is(err, retrieval.ErrInvalidQuery):
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(err.Error()))
		case errors.Is(err, retrieval.ErrRetrievalUnavailable):
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse(err.Error()))
		case errors.Is(err, agent.ErrCompletionUnavailable):
			return ctx.Status(fiber.StatusBadGateway).JSON(ErrorResponse(err.Error()))
		case errors.As(err, &fiberErr):
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Message))
		default:
			return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse("internal server error"))
		}
	}
}
