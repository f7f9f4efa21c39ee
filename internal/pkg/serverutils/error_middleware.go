package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"assessform-client/internal/apperror"
	"assessform-client/internal/dto"
)

// ErrorHandlerMiddleware maps typed errors bubbling out of handlers to the
// wire contract: a JSON {"error": ...} payload with a kind-specific status.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var appErr *apperror.Error
		if errors.As(err, &appErr) {
			return ctx.Status(statusForKind(appErr.Kind)).JSON(dto.ErrorResponse{Error: appErr.Message})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(dto.ErrorResponse{Error: fiberErr.Message})
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: err.Error()})
	}
}

func statusForKind(kind apperror.Kind) int {
	switch kind {
	case apperror.KindAlreadyCompleted, apperror.KindSessionNotReady:
		return fiber.StatusConflict
	case apperror.KindUnknownIdentity:
		return fiber.StatusNotFound
	case apperror.KindInvalidAttachment:
		return fiber.StatusBadRequest
	case apperror.KindServiceUnavailable:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}
