package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// RequireRoles passes only callers whose role appears in the allow-list.
// An empty list means any authenticated caller.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("user_role").(string)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "user not authenticated",
			})
		}

		if len(roles) == 0 {
			return c.Next()
		}
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":          "you do not have permission to access this resource",
			"required_roles": roles,
			"user_role":      role,
		})
	}
}
