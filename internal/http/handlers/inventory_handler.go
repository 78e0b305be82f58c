package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Om11042005/FITNZ/internal/services"
	"github.com/Om11042005/FITNZ/internal/validate"
)

type InventoryHandler struct {
	Inv *services.InventoryLedger
}

// Check answers "can I sell qty units of this product right now".
func (h *InventoryHandler) Check(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Query("product_id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}
	qty := validate.Qty(c.Query("qty", "1"))

	a, err := h.Inv.Availability(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"availability": a,
		"sellable":     a.Qty >= qty,
	})
}
