package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"go-smart-inventory/internal/model"
	"go-smart-inventory/pkg/jwt"
)

// RequireAuth validates the bearer token and sets the caller's identity
// in the request context
func RequireAuth(tokens *jwt.TokenManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization header"})
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		claims, err := tokens.Verify(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		c.Locals("user_email", claims.Subject)
		c.Locals("user_role", claims.Role)

		return c.Next()
	}
}

// RequireRole checks the verified role against the required one. Exact
// match only, no role hierarchy.
func RequireRole(required model.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("user_role").(model.Role)
		if !ok {
			return c.Status(403).JSON(fiber.Map{"error": "No role found"})
		}

		if role != required {
			return c.Status(403).JSON(fiber.Map{
				"error": "Forbidden: requires '" + required.String() + "' role",
			})
		}

		return c.Next()
	}
}
