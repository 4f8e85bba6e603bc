package handler

import (
	"errors"
	"log"
	"time"

	"go-stock-api/internal/apperr"
	"go-stock-api/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// respondError maps a service error to its HTTP status and stable code.
// Internal failures are logged and returned without details.
func respondError(c *fiber.Ctx, err error) error {
	status := apperr.StatusCode(err)
	kind := apperr.KindOf(err)

	body := fiber.Map{"code": kind, "error": err.Error()}
	if kind == apperr.KindInternal {
		log.Printf("internal error on %s %s: %v", c.Method(), c.Path(), err)
		body["error"] = "Internal Server Error"
	}

	var stockErr *apperr.InsufficientStockError
	if errors.As(err, &stockErr) {
		body["available_stock"] = stockErr.Available
	}

	return c.Status(status).JSON(body)
}

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, apperr.Newf(apperr.KindValidation, "invalid %s", name)
	}
	return id, nil
}

func pageFrom(c *fiber.Ctx) repository.Page {
	return repository.Page{
		Number: c.QueryInt("page", 1),
		Size:   c.QueryInt("limit", repository.DefaultPageSize),
	}
}

func pagedResponse(c *fiber.Ctx, items interface{}, page repository.Page, total int64) error {
	return c.JSON(fiber.Map{
		"data": items,
		"meta": fiber.Map{
			"page":  page.Number,
			"limit": page.Limit(),
			"total": total,
		},
	})
}

// parseUUIDQuery reads a UUID query parameter, nil when absent.
func parseUUIDQuery(c *fiber.Ctx, name string) (*uuid.UUID, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, apperr.Newf(apperr.KindValidation, "invalid %s", name)
	}
	return &id, nil
}

// parseDateQuery reads a YYYY-MM-DD query parameter, nil when absent.
func parseDateQuery(c *fiber.Ctx, name string) (*time.Time, error) {
	value := c.Query(name)
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, apperr.Newf(apperr.KindValidation, "invalid %s, use YYYY-MM-DD", name)
	}
	return &parsed, nil
}
