package services_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"esports-platform/handlers"
	"esports-platform/middleware"
	"esports-platform/models"
	"esports-platform/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

// newTestApp builds the full route surface against a fresh in-memory
// database, one per test.
func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Team{},
		&models.Player{},
		&models.TeamJoinRequest{},
		&models.Tournament{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	app := fiber.New()
	authRequired := middleware.AuthMiddleware(testSecret)

	app.Get("/api/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "OK"})
	})
	handlers.SetupAuthRoutes(app, services.NewAuthService(db, testSecret), authRequired)
	handlers.SetupTeamRoutes(app, services.NewTeamService(db), authRequired)
	handlers.SetupTournamentRoutes(app, services.NewTournamentService(db), authRequired)
	handlers.SetupPlayerRoutes(app, services.NewPlayerService(db), authRequired)

	return app, db
}

// doJSON performs a request and decodes the JSON response into a generic map
// (nil for array responses; use doRaw for those).
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp.StatusCode, decoded
}

// doRaw is doJSON for endpoints returning JSON arrays.
func doRaw(t *testing.T, app *fiber.App, method, path, token string) (int, []map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var decoded []map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp.StatusCode, decoded
}

// signup registers a user with the given role and returns (user id, token).
func signup(t *testing.T, app *fiber.App, email, role string) (string, string) {
	t.Helper()

	status, body := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", map[string]any{
		"email":    email,
		"password": "secret123",
		"fullName": "Test " + role,
		"role":     role,
	})
	if status != http.StatusCreated {
		t.Fatalf("signup %s: status %d, body %v", email, status, body)
	}
	user, ok := body["user"].(map[string]any)
	if !ok {
		t.Fatalf("signup %s: missing user in %v", email, body)
	}
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatalf("signup %s: missing token", email)
	}
	return user["id"].(string), token
}

// createTeam creates a team for the given manager token and returns its id.
func createTeam(t *testing.T, app *fiber.App, token, name, abbrev, game string) string {
	t.Helper()

	status, body := doJSON(t, app, http.MethodPost, "/api/teams", token, map[string]any{
		"name":         name,
		"abbreviation": abbrev,
		"game":         game,
	})
	if status != http.StatusCreated {
		t.Fatalf("create team %s: status %d, body %v", name, status, body)
	}
	return body["id"].(string)
}
