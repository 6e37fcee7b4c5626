package services

import (
	"esports-platform/models"

	"github.com/gofiber/fiber/v2"
)

// Caller is the identity extracted from the verified token.
type Caller struct {
	ID    string
	Email string
	Role  string
}

func callerFrom(c *fiber.Ctx) Caller {
	id, _ := c.Locals("user_id").(string)
	email, _ := c.Locals("user_email").(string)
	role, _ := c.Locals("user_role").(string)
	return Caller{ID: id, Email: email, Role: role}
}

// OwnershipPolicy decides whether a caller may mutate an entity owned by
// another identity. Each mutating operation names the policy it uses:
//
//	profile update, user deletion     OwnerOrAdmin
//	team update / delete / logo       OwnerOrAdmin
//	tournament update / delete        OwnerOrAdmin
//	player update / delete            OwnerOrAdmin
//	join-request listing / response   OwnerOnly (the team's manager)
//	player removal from a team        OwnerOnly (the team's manager)
//
// The owner id must always come from a fresh store read, never from the
// request body.
type OwnershipPolicy struct {
	AdminBypass bool
}

var (
	OwnerOrAdmin = OwnershipPolicy{AdminBypass: true}
	OwnerOnly    = OwnershipPolicy{AdminBypass: false}
)

// Allows reports whether the caller owns the entity or holds a bypass role.
func (p OwnershipPolicy) Allows(caller Caller, ownerID string) bool {
	if caller.ID != "" && caller.ID == ownerID {
		return true
	}
	return p.AdminBypass && caller.Role == models.RoleAdmin
}
