package services_test

import (
	"net/http"
	"testing"

	"esports-platform/models"
)

func TestCreatePlayerValidation(t *testing.T) {
	app, _ := newTestApp(t)
	_, token := signup(t, app, "mgr@b.com", "manager")

	status, _ := doJSON(t, app, http.MethodPost, "/api/players", token, map[string]any{})
	if status != http.StatusBadRequest {
		t.Errorf("missing game: status = %d, want 400", status)
	}

	status, _ = doJSON(t, app, http.MethodPost, "/api/players", token, map[string]any{"game": "chess"})
	if status != http.StatusBadRequest {
		t.Errorf("unsupported game: status = %d, want 400", status)
	}
}

func TestCreatePlayerDuplicate(t *testing.T) {
	app, _ := newTestApp(t)
	// Managers get no auto-provisioned profiles, so the first create works
	_, token := signup(t, app, "mgr@b.com", "manager")

	status, body := doJSON(t, app, http.MethodPost, "/api/players", token, map[string]any{
		"game": "lol", "role": "jungler", "rank": "gold",
	})
	if status != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (%v)", status, body)
	}

	status, _ = doJSON(t, app, http.MethodPost, "/api/players", token, map[string]any{"game": "lol"})
	if status != http.StatusConflict {
		t.Errorf("duplicate: status = %d, want 409", status)
	}

	// Players already hold one profile per game from signup
	_, playerToken := signup(t, app, "pl@b.com", "player")
	status, _ = doJSON(t, app, http.MethodPost, "/api/players", playerToken, map[string]any{"game": "lol"})
	if status != http.StatusConflict {
		t.Errorf("auto-provisioned duplicate: status = %d, want 409", status)
	}
}

func TestMyPlayerProfile(t *testing.T) {
	app, _ := newTestApp(t)
	_, token := signup(t, app, "pl@b.com", "player")

	status, _ := doJSON(t, app, http.MethodGet, "/api/players/my/profile", token, nil)
	if status != http.StatusBadRequest {
		t.Errorf("missing game param: status = %d, want 400", status)
	}

	status, body := doJSON(t, app, http.MethodGet, "/api/players/my/profile?game=lol", token, nil)
	if status != http.StatusOK || body["game"] != "lol" {
		t.Errorf("profile: status = %d, body = %v", status, body)
	}

	status, body = doJSON(t, app, http.MethodPut, "/api/players/my/profile?game=lol", token, map[string]any{
		"role": "support", "rank": "platinum",
	})
	if status != http.StatusOK {
		t.Fatalf("update: status = %d (%v)", status, body)
	}
	data := body["data"].(map[string]any)
	if data["role"] != "support" || data["rank"] != "platinum" {
		t.Errorf("profile not updated: %v", data)
	}

	// Managers have no profiles
	_, mgr := signup(t, app, "mgr@b.com", "manager")
	status, _ = doJSON(t, app, http.MethodGet, "/api/players/my/profile?game=lol", mgr, nil)
	if status != http.StatusNotFound {
		t.Errorf("manager profile: status = %d, want 404", status)
	}
}

func TestPlayerOwnership(t *testing.T) {
	app, db := newTestApp(t)
	ownerID, _ := signup(t, app, "owner@b.com", "player")
	_, otherToken := signup(t, app, "other@b.com", "player")
	_, adminToken := signup(t, app, "admin@b.com", "admin")

	var profile models.Player
	db.First(&profile, "user_id = ? AND game = ?", ownerID, "lol")

	status, _ := doJSON(t, app, http.MethodPut, "/api/players/"+profile.ID, otherToken, map[string]any{
		"rank": "diamond",
	})
	if status != http.StatusForbidden {
		t.Errorf("non-owner update: status = %d, want 403", status)
	}
	db.First(&profile, "id = ?", profile.ID)
	if profile.Rank != nil {
		t.Errorf("profile mutated by non-owner")
	}

	status, _ = doJSON(t, app, http.MethodPut, "/api/players/"+profile.ID, adminToken, map[string]any{
		"rank": "diamond",
	})
	if status != http.StatusOK {
		t.Errorf("admin update: status = %d, want 200", status)
	}

	status, _ = doJSON(t, app, http.MethodDelete, "/api/players/"+profile.ID, otherToken, nil)
	if status != http.StatusForbidden {
		t.Errorf("non-owner delete: status = %d, want 403", status)
	}
	status, _ = doJSON(t, app, http.MethodDelete, "/api/players/"+profile.ID, adminToken, nil)
	if status != http.StatusOK {
		t.Errorf("admin delete: status = %d, want 200", status)
	}

	status, _ = doJSON(t, app, http.MethodDelete, "/api/players/unknown", adminToken, nil)
	if status != http.StatusNotFound {
		t.Errorf("unknown player: status = %d, want 404", status)
	}
}

func TestListPlayersPublic(t *testing.T) {
	app, _ := newTestApp(t)
	userID, _ := signup(t, app, "pl@b.com", "player")

	status, players := doRaw(t, app, http.MethodGet, "/api/players", "")
	if status != http.StatusOK || len(players) != len(models.SupportedGames) {
		t.Fatalf("list: status = %d, len = %d", status, len(players))
	}
	if players[0]["user"] == nil {
		t.Errorf("owning user not preloaded: %v", players[0])
	}

	status, byUser := doRaw(t, app, http.MethodGet, "/api/players/user/"+userID, "")
	if status != http.StatusOK || len(byUser) != len(models.SupportedGames) {
		t.Errorf("by user: status = %d, len = %d", status, len(byUser))
	}

	id := players[0]["id"].(string)
	status, body := doJSON(t, app, http.MethodGet, "/api/players/"+id, "", nil)
	if status != http.StatusOK || body["id"] != id {
		t.Errorf("by id: status = %d, body = %v", status, body)
	}
}
