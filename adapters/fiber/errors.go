package fiber

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"github.com/lborres/agenda/core"
)

// NewErrorHandler returns the app-wide error handler: every propagated
// failure becomes a `{title, message}` envelope with the status carried on
// the error, defaulting to 500.
func NewErrorHandler(log *slog.Logger) fiber.ErrorHandler {
	return func(c fiber.Ctx, err error) error {
		var appErr *core.Error
		if errors.As(err, &appErr) {
			return c.Status(appErr.Status).JSON(fiber.Map{
				"title":   appErr.Title,
				"message": appErr.Message,
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{
				"title":   "Error",
				"message": fiberErr.Message,
			})
		}

		log.Error("unhandled request error", "method", c.Method(), "path", c.Path(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"title":   "Error",
			"message": err.Error(),
		})
	}
}
