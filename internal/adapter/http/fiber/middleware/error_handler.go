package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/vui-gateway/internal/domain"
)

// ErrorHandler maps gateway errors onto HTTP status codes. Platform
// backends only surface the status to skill owners, so the body stays
// minimal.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		switch {
		case errors.Is(err, domain.ErrAuthentication):
			code = fiber.StatusUnauthorized
		case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrParse):
			code = fiber.StatusBadRequest
		case errors.Is(err, domain.ErrNetwork):
			code = fiber.StatusBadGateway
		default:
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				code = fiberErr.Code
			}
		}

		if code == fiber.StatusInternalServerError {
			log.Error("Internal Server Error", zap.Error(err), zap.String("path", c.Path()))
		} else {
			log.Warn("Request rejected",
				zap.Error(err),
				zap.String("path", c.Path()),
				zap.Int("status", code),
			)
		}

		return c.Status(code).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
}
