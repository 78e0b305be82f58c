package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Om11042005/FITNZ/internal/repos"
	"github.com/Om11042005/FITNZ/internal/validate"
)

type SaleHandler struct {
	Sales *repos.SaleRepo
}

func (h *SaleHandler) View(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid sale id"})
	}
	sale, items, err := h.Sales.Get(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "sale not found"})
	}
	return c.JSON(fiber.Map{"sale": sale, "items": items})
}
