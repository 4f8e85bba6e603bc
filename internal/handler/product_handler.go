package handler

import (
	"go-stock-api/internal/middleware"
	"go-stock-api/internal/repository"
	"go-stock-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	service service.CatalogService
}

func NewProductHandler(s service.CatalogService) *ProductHandler {
	return &ProductHandler{service: s}
}

// CreateProduct creates a catalog entry with its initial stock.
// POST /api/v1/products
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req service.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"code": "validation_error", "error": "Invalid JSON"})
	}

	product, err := h.service.CreateProduct(middleware.IdentityFrom(c), &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Product created successfully",
		"data":    product,
	})
}

// UpdateProduct updates catalog fields. Stock is not accepted here; it
// changes only through transactions.
// PUT /api/v1/products/:id
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req service.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"code": "validation_error", "error": "Invalid JSON"})
	}

	product, err := h.service.UpdateProduct(middleware.IdentityFrom(c), id, &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Product updated successfully",
		"data":    product,
	})
}

// GetProduct returns one product with its category.
// GET /api/v1/products/:id
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	product, err := h.service.GetProduct(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": product})
}

// DeleteProduct removes a product, its ledger history, and its image.
// DELETE /api/v1/products/:id
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.service.DeleteProduct(middleware.IdentityFrom(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted successfully"})
}

// GetProducts lists products, filterable by category and name search.
// GET /api/v1/products?category_id&search&page&limit
func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	var filter repository.ProductFilter
	categoryID, err := parseUUIDQuery(c, "category_id")
	if err != nil {
		return respondError(c, err)
	}
	filter.CategoryID = categoryID
	filter.Search = c.Query("search")

	page := pageFrom(c)
	products, total, err := h.service.ListProducts(filter, page)
	if err != nil {
		return respondError(c, err)
	}
	return pagedResponse(c, products, page, total)
}

// GetLowStock lists products at or under the threshold, lowest first.
// GET /api/v1/products/low-stock?threshold&page&limit
func (h *ProductHandler) GetLowStock(c *fiber.Ctx) error {
	threshold := c.QueryInt("threshold", service.LowStockThreshold)

	page := pageFrom(c)
	products, total, err := h.service.ListLowStock(threshold, page)
	if err != nil {
		return respondError(c, err)
	}
	return pagedResponse(c, products, page, total)
}
