package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/sefazor/starclub-backend/internal/models"
)

// respondError maps the shared error kinds onto HTTP statuses. Only
// user-correctable errors expose their message.
func respondError(c *fiber.Ctx, logger *zap.Logger, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err))
		return c.Status(status).JSON(models.ErrorResponse("Internal server error"))
	}
	return c.Status(status).JSON(models.ErrorResponse(err.Error()))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, models.ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, models.ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, models.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, models.ErrForbidden):
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
}
