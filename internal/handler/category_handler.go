package handler

import (
	"go-stock-api/internal/middleware"
	"go-stock-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	service service.CatalogService
}

func NewCategoryHandler(s service.CatalogService) *CategoryHandler {
	return &CategoryHandler{service: s}
}

// POST /api/v1/categories
func (h *CategoryHandler) CreateCategory(c *fiber.Ctx) error {
	var req service.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"code": "validation_error", "error": "Invalid JSON"})
	}

	category, err := h.service.CreateCategory(middleware.IdentityFrom(c), &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Category created successfully",
		"data":    category,
	})
}

// GET /api/v1/categories/:id
func (h *CategoryHandler) GetCategory(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	category, err := h.service.GetCategory(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": category})
}

// PUT /api/v1/categories/:id
func (h *CategoryHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req service.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"code": "validation_error", "error": "Invalid JSON"})
	}

	category, err := h.service.UpdateCategory(middleware.IdentityFrom(c), id, &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Category updated successfully",
		"data":    category,
	})
}

// DELETE /api/v1/categories/:id
// Fails with a conflict while any product still references the category.
func (h *CategoryHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.service.DeleteCategory(middleware.IdentityFrom(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Category deleted successfully"})
}

// GET /api/v1/categories?page&limit
func (h *CategoryHandler) GetCategories(c *fiber.Ctx) error {
	page := pageFrom(c)
	categories, total, err := h.service.ListCategories(page)
	if err != nil {
		return respondError(c, err)
	}
	return pagedResponse(c, categories, page, total)
}

// GET /api/v1/categories/dropdown
// Unpaginated id+name pairs for form population.
func (h *CategoryHandler) GetDropdown(c *fiber.Ctx) error {
	options, err := h.service.CategoryOptions()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": options})
}
