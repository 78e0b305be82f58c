package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Om11042005/FITNZ/internal/repos"
	"github.com/Om11042005/FITNZ/internal/services"
	"github.com/Om11042005/FITNZ/internal/validate"
)

type CustomerHandler struct {
	Members *services.MembershipService
	Sales   *repos.SaleRepo
}

// Snapshot returns the fields the terminal needs to start a checkout:
// tier and loyalty balance.
func (h *CustomerHandler) Snapshot(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid customer id"})
	}
	cust, err := h.Members.Get(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"id":             cust.ID,
		"name":           cust.Name,
		"tier":           cust.Tier,
		"loyalty_points": cust.LoyaltyPoints,
	})
}

func (h *CustomerHandler) SalesHistory(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid customer id"})
	}
	sales, err := h.Sales.ListByCustomer(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"sales": sales})
}
