package handler

import (
	"go-stock-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GET /api/v1/dashboard
func (h *DashboardHandler) GetOverview(c *fiber.Ctx) error {
	overview, err := h.service.Overview()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": overview})
}

// GET /api/v1/dashboard/stock-movement?days
func (h *DashboardHandler) GetStockMovement(c *fiber.Ctx) error {
	days := c.QueryInt("days", 7)

	movement, err := h.service.StockMovement(days)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": movement})
}
