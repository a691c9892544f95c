package serverutils

import (
	"errors"

	"docucortex-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// NewErrorHandler builds the app-wide fiber error handler.
func NewErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
		}

		if code >= 500 {
			log.Error("HTTP", "Unhandled error", map[string]interface{}{
				"path":  ctx.Path(),
				"error": err.Error(),
			})
		}

		return ctx.Status(code).JSON(ErrorResponse(code, err.Error()))
	}
}
