package handler

import (
	"go-stock-api/internal/middleware"
	"go-stock-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	service service.AdminService
}

func NewAdminHandler(s service.AdminService) *AdminHandler {
	return &AdminHandler{service: s}
}

// GET /api/v1/admins?page&limit
func (h *AdminHandler) GetAdmins(c *fiber.Ctx) error {
	page := pageFrom(c)
	admins, total, err := h.service.ListAdmins(page)
	if err != nil {
		return respondError(c, err)
	}
	return pagedResponse(c, admins, page, total)
}

// GET /api/v1/admins/:id
func (h *AdminHandler) GetAdmin(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	admin, err := h.service.GetAdmin(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": admin})
}

// POST /api/v1/admins
func (h *AdminHandler) CreateAdmin(c *fiber.Ctx) error {
	var req service.CreateAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"code": "validation_error", "error": "Invalid JSON"})
	}

	admin, err := h.service.CreateAdmin(middleware.IdentityFrom(c), &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Admin created successfully",
		"data":    admin.ToResponse(),
	})
}

// PUT /api/v1/admins/:id
func (h *AdminHandler) UpdateAdmin(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req service.UpdateAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"code": "validation_error", "error": "Invalid JSON"})
	}

	admin, err := h.service.UpdateAdmin(middleware.IdentityFrom(c), id, &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Admin updated successfully",
		"data":    admin.ToResponse(),
	})
}

// DELETE /api/v1/admins/:id
// Deleting the last remaining super_admin is rejected.
func (h *AdminHandler) DeleteAdmin(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.service.DeleteAdmin(middleware.IdentityFrom(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Admin deleted successfully"})
}
