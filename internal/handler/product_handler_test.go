package handler

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProductsRejectsBadCategoryID(t *testing.T) {
	app := fiber.New()
	h := NewProductHandler(nil)
	app.Get("/products", h.GetProducts)

	resp, err := app.Test(httptest.NewRequest("GET", "/products?category_id=42", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "validation_error", body["code"])
}
