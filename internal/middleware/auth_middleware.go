package middleware

import (
	"strings"

	"go-stock-api/internal/model"
	"go-stock-api/pkg/token"

	"github.com/gofiber/fiber/v2"
)

const identityKey = "identity"

// RequireAuth validates the bearer token and stores the caller's Identity
// in the request locals for downstream handlers.
func RequireAuth(secret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"code":  "unauthorized",
				"error": "Missing authorization token",
			})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"code":  "unauthorized",
				"error": "Invalid authorization format. Use: Bearer <token>",
			})
		}

		claims, err := token.Verify(secret, parts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"code":  "unauthorized",
				"error": "Invalid or expired token",
			})
		}

		c.Locals(identityKey, model.Identity{
			ID:    claims.UserID,
			Email: claims.Email,
			Name:  claims.Name,
			Role:  model.Role(claims.Role),
		})
		return c.Next()
	}
}

// RequireRole checks that the authenticated caller holds one of the
// allowed roles.
func RequireRole(allowed ...model.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := c.Locals(identityKey).(model.Identity)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"code":  "unauthorized",
				"error": "Authentication required",
			})
		}

		if !identity.Role.In(allowed...) {
			roles := make([]string, len(allowed))
			for i, r := range allowed {
				roles[i] = string(r)
			}
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"code":  "forbidden",
				"error": "Insufficient permissions. Required roles: " + strings.Join(roles, ", "),
			})
		}

		return c.Next()
	}
}

// IdentityFrom returns the Identity RequireAuth stored for this request.
func IdentityFrom(c *fiber.Ctx) model.Identity {
	identity, _ := c.Locals(identityKey).(model.Identity)
	return identity
}
