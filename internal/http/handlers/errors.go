package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Om11042005/FITNZ/internal/domain"
	applog "github.com/Om11042005/FITNZ/internal/log"
)

// respondError maps the engine's error taxonomy onto HTTP statuses:
// validation 400, conflict 409, not-found 404, everything else 500.
func respondError(c *fiber.Ctx, err error) error {
	var oos *domain.OutOfStockError
	switch {
	case errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidRedemption),
		errors.Is(err, domain.ErrInvalidPayment),
		errors.Is(err, domain.ErrInvalidTier):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &oos):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":      oos.Error(),
			"product_id": oos.ProductID,
		})
	case errors.Is(err, domain.ErrCustomerNotFound),
		errors.Is(err, domain.ErrProductNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return c.Status(fiber.StatusRequestTimeout).JSON(fiber.Map{"error": "request aborted"})
	default:
		applog.Error(c, "server.error", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
}
