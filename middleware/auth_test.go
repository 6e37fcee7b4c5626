package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"esports-platform/models"
	"esports-platform/utils"

	"github.com/gofiber/fiber/v2"
)

const testSecret = "test-secret"

func newGuardedApp(roles ...string) *fiber.App {
	app := fiber.New()
	chain := []fiber.Handler{AuthMiddleware(testSecret)}
	if roles != nil {
		chain = append(chain, RequireRoles(roles...))
	}
	chain = append(chain, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":   c.Locals("user_id"),
			"user_role": c.Locals("user_role"),
		})
	})
	app.Get("/secure", chain...)
	return app
}

func request(t *testing.T, app *fiber.App, authHeader string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	var body map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return resp.StatusCode, body
}

func issueToken(t *testing.T, role string) string {
	t.Helper()
	tok, err := utils.GenerateToken(testSecret, &models.User{
		ID: "user-1", Email: "a@b.com", Role: role,
	})
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return tok
}

func TestAuthMiddleware(t *testing.T) {
	app := newGuardedApp()

	status, body := request(t, app, "")
	if status != http.StatusUnauthorized || body["error"] != "token not provided" {
		t.Errorf("no header: status = %d, body = %v", status, body)
	}

	status, body = request(t, app, "Bearer not-a-token")
	if status != http.StatusUnauthorized || body["error"] != "invalid or expired token" {
		t.Errorf("garbage token: status = %d, body = %v", status, body)
	}

	token := issueToken(t, models.RolePlayer)
	status, body = request(t, app, "Bearer "+token)
	if status != http.StatusOK {
		t.Fatalf("valid token: status = %d, body = %v", status, body)
	}
	if body["user_id"] != "user-1" || body["user_role"] != "player" {
		t.Errorf("locals not set: %v", body)
	}

	// Raw token without the Bearer prefix is accepted too
	status, _ = request(t, app, token)
	if status != http.StatusOK {
		t.Errorf("raw token: status = %d, want 200", status)
	}

	// Token signed with a different secret
	foreign, err := utils.GenerateToken("other-secret", &models.User{ID: "x", Email: "x@b.com", Role: "admin"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	status, _ = request(t, app, "Bearer "+foreign)
	if status != http.StatusUnauthorized {
		t.Errorf("foreign token: status = %d, want 401", status)
	}
}

func TestRequireRoles(t *testing.T) {
	app := newGuardedApp(models.RoleManager, models.RoleAdmin)

	status, _ := request(t, app, "Bearer "+issueToken(t, models.RoleManager))
	if status != http.StatusOK {
		t.Errorf("manager: status = %d, want 200", status)
	}
	status, _ = request(t, app, "Bearer "+issueToken(t, models.RoleAdmin))
	if status != http.StatusOK {
		t.Errorf("admin: status = %d, want 200", status)
	}

	status, body := request(t, app, "Bearer "+issueToken(t, models.RolePlayer))
	if status != http.StatusForbidden {
		t.Fatalf("player: status = %d, want 403", status)
	}
	if body["user_role"] != "player" {
		t.Errorf("diagnostic payload missing user_role: %v", body)
	}
	required, _ := body["required_roles"].([]any)
	if len(required) != 2 {
		t.Errorf("diagnostic payload missing required_roles: %v", body)
	}
}

func TestRequireRolesEmptyList(t *testing.T) {
	app := fiber.New()
	app.Get("/secure", AuthMiddleware(testSecret), RequireRoles(), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	status, _ := request(t, app, "Bearer "+issueToken(t, models.RolePlayer))
	if status != http.StatusOK {
		t.Errorf("empty allow-list: status = %d, want 200", status)
	}
}
