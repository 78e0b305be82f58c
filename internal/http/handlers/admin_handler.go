package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Om11042005/FITNZ/internal/domain"
	applog "github.com/Om11042005/FITNZ/internal/log"
	"github.com/Om11042005/FITNZ/internal/repos"
	"github.com/Om11042005/FITNZ/internal/services"
	"github.com/Om11042005/FITNZ/internal/validate"
)

type AdminHandler struct {
	Products *repos.ProductRepo
	Members  *services.MembershipService
}

// UpdateInventory replenishes (or corrects) a product's stock count.
func (h *AdminHandler) UpdateInventory(c *fiber.Ctx) error {
	var body struct {
		ProductID string `json:"product_id"`
		Stock     int    `json:"stock"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed request body"})
	}
	id, ok := validate.ID(body.ProductID)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}
	if body.Stock < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "stock must be a non-negative integer"})
	}
	stock := body.Stock

	if err := h.Products.SetStock(id, stock); err != nil {
		return respondError(c, err)
	}
	applog.Audit(c, "admin.inventory.update", map[string]any{"product_id": id, "stock": stock})
	return c.JSON(fiber.Map{"ok": true})
}

// UpdateMembership changes a customer's stored tier.
func (h *AdminHandler) UpdateMembership(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid customer id"})
	}
	var body struct {
		Tier string `json:"tier"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed request body"})
	}

	if err := h.Members.ChangeTier(id, domain.Tier(body.Tier)); err != nil {
		return respondError(c, err)
	}
	applog.Audit(c, "admin.membership.update", map[string]any{"customer_id": id, "tier": body.Tier})
	return c.JSON(fiber.Map{"ok": true})
}
