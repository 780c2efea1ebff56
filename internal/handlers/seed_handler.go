package handlers

import (
	"butik/internal/services"

	"github.com/gofiber/fiber/v2"
)

// SeedHandler exposes the demo data bootstrap.
type SeedHandler struct {
	seedService *services.SeedService
}

func NewSeedHandler(seedService *services.SeedService) *SeedHandler {
	return &SeedHandler{seedService: seedService}
}

func (h *SeedHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/seed", h.Seed)
}

// Seed inserts demo users, categories and products when missing.
func (h *SeedHandler) Seed(c *fiber.Ctx) error {
	results, err := h.seedService.Seed()
	if err != nil {
		return respondError(c, err, "", "Failed to seed data")
	}
	return c.JSON(fiber.Map{
		"message": "Seed completed",
		"results": results,
	})
}
