package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"jizhang/internal/service"
)

// fail maps service errors to HTTP statuses. Anything outside the
// known sentinels surfaces as an opaque 500.
func fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, service.ErrTransactionNotFound),
		errors.Is(err, service.ErrRecurringExpenseNotFound),
		errors.Is(err, service.ErrAccountNotFound),
		errors.Is(err, service.ErrCategoryNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "internal error",
	})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": msg,
	})
}
