package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/order-tracker/internal/dto"
	"github.com/ahmetcoskunkizilkaya/order-tracker/internal/services"
	"github.com/gofiber/fiber/v2"
)

var notFound = []error{
	services.ErrCustomerNotFound,
	services.ErrOrderNotFound,
	services.ErrShipmentNotFound,
}

// respondError maps service errors onto HTTP responses. Anything unexpected
// becomes a 500 without details.
func respondError(c *fiber.Ctx, err error) error {
	for _, target := range notFound {
		if errors.Is(err, target) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
	}
	if errors.Is(err, services.ErrUsernameRequired) || errors.Is(err, services.ErrUsernameTooLong) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	slog.Error("request failed",
		"component", "handlers",
		"method", c.Method(),
		"path", c.Path(),
		"request_id", c.GetRespHeader(fiber.HeaderXRequestID),
		"error", err.Error(),
	)
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Internal server error",
	})
}
