package middleware

import (
	"strings"

	"esports-platform/utils"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware verifies the Bearer token and attaches the caller's
// identity to the request context.
func AuthMiddleware(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "token not provided",
			})
		}

		// Parse "Bearer <token>"; accept a raw token as well
		token := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := utils.ParseToken(secret, token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid or expired token",
			})
		}

		c.Locals("user_id", claims.Subject)
		c.Locals("user_email", claims.Email)
		c.Locals("user_role", claims.Role)

		return c.Next()
	}
}
