package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	applog "github.com/Om11042005/FITNZ/internal/log"
	"github.com/Om11042005/FITNZ/internal/services"
	"github.com/Om11042005/FITNZ/internal/validate"
)

type CheckoutHandler struct {
	Processor *services.SaleTransactionProcessor
	Receipts  *services.ReceiptBuilder
}

// Place runs one checkout: cart + customer snapshot in, receipt out.
func (h *CheckoutHandler) Place(c *fiber.Ctx) error {
	var req services.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		applog.Security(c, "validation.fail", map[string]any{"field": "body"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed request body"})
	}

	if _, ok := validate.ID(req.CustomerID); !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "customer_id"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid customer id"})
	}
	if req.DeliveryDate != "" {
		d, ok := validate.DeliveryDate(req.DeliveryDate, time.Now())
		if !ok {
			applog.Security(c, "validation.fail", map[string]any{"field": "delivery_date"})
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid delivery date"})
		}
		req.DeliveryDate = d
	}

	receipt, err := h.Processor.Checkout(c.Context(), req)
	if err != nil {
		applog.Info(c, "checkout.reject", map[string]any{
			"customer_id": req.CustomerID, "error": err.Error(),
		})
		return respondError(c, err)
	}

	applog.Audit(c, "checkout.commit", map[string]any{
		"sale_id":     receipt.SaleID,
		"customer_id": receipt.CustomerID,
		"total":       receipt.Total,
	})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"receipt": receipt,
		"printed": h.Receipts.Render(receipt),
	})
}
