package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"taskboard/backend/internal/models"
)

func TestLogin_CreatesUserAndSetsCookie(t *testing.T) {
	app := setupTestApp(t)

	w := app.do(t, "POST", "/api/v1/auth/login", map[string]string{
		"name":  "Alice",
		"email": "alice@example.com",
	}, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var user models.User
	if err := json.Unmarshal(w.Body.Bytes(), &user); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if user.Name != "Alice" {
		t.Errorf("Expected name 'Alice', got '%s'", user.Name)
	}

	found := false
	for _, c := range w.Result().Cookies() {
		if c.Name == testCookie && c.Value != "" {
			found = true
		}
	}
	if !found {
		t.Error("Expected a session cookie to be set")
	}
}

func TestLogin_SameEmailReturnsSameUser(t *testing.T) {
	app := setupTestApp(t)

	first := app.do(t, "POST", "/api/v1/auth/login", map[string]string{
		"name": "Alice", "email": "a@x.com",
	}, nil)
	second := app.do(t, "POST", "/api/v1/auth/login", map[string]string{
		"name": "Alicia", "email": "a@x.com",
	}, nil)

	var u1, u2 models.User
	json.Unmarshal(first.Body.Bytes(), &u1)
	json.Unmarshal(second.Body.Bytes(), &u2)

	if u1.ID != u2.ID {
		t.Errorf("Expected the same user id, got %s and %s", u1.ID, u2.ID)
	}
	if u2.Name != "Alice" {
		t.Errorf("Expected the stored name to win, got '%s'", u2.Name)
	}
}

func TestLogin_RejectsMissingFields(t *testing.T) {
	app := setupTestApp(t)

	w := app.do(t, "POST", "/api/v1/auth/login", map[string]string{"name": "Alice"}, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestLogout_InvalidatesSession(t *testing.T) {
	app := setupTestApp(t)
	cookie, _ := app.loginAs(t, "Alice", "alice@example.com")

	w := app.do(t, "POST", "/api/v1/auth/logout", nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	w = app.do(t, "GET", "/api/v1/users/me", nil, cookie)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status %d after logout, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestProtectedRoutes_RequireSession(t *testing.T) {
	app := setupTestApp(t)

	w := app.do(t, "GET", "/api/v1/tasks", nil, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}
