package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/credipyme/credipyme-backend/internal/domain"
	"github.com/credipyme/credipyme-backend/internal/service"
	"github.com/credipyme/credipyme-backend/internal/testutil"
)

func newProfileHandler() (*ProfileHandler, *testutil.MockProfileRepository) {
	repo := testutil.NewMockProfileRepository()
	return NewProfileHandler(service.NewProfileService(repo)), repo
}

func strPtr(s string) *string {
	return &s
}

func TestGetProfile_Success(t *testing.T) {
	e := echo.New()
	handler, repo := newProfileHandler()
	userID := uuid.New()

	repo.AddProfile(&domain.Profile{
		ID:     userID,
		AuthID: "auth0|analyst",
		Email:  "analyst@example.com",
		Name:   strPtr("Ana"),
	})

	c, rec := newJSONContext(e, http.MethodGet, "/api/v1/profile", "")
	setupAuthContext(c, "auth0|analyst", uuid.New(), userID)

	if err := handler.GetProfile(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var profile domain.Profile
	if err := json.Unmarshal(rec.Body.Bytes(), &profile); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if profile.Email != "analyst@example.com" {
		t.Errorf("Expected email analyst@example.com, got %q", profile.Email)
	}
	// AuthID must never leak into responses
	if strings.Contains(rec.Body.String(), "auth0|analyst") {
		t.Error("Expected auth subject to be omitted from the response")
	}
}

func TestGetProfile_MissingUser(t *testing.T) {
	e := echo.New()
	handler, _ := newProfileHandler()

	c, rec := newJSONContext(e, http.MethodGet, "/api/v1/profile", "")
	setupAuthContext(c, "auth0|analyst", uuid.Nil, uuid.Nil)

	if err := handler.GetProfile(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}

func TestGetProfile_NotFound(t *testing.T) {
	e := echo.New()
	handler, _ := newProfileHandler()

	c, rec := newJSONContext(e, http.MethodGet, "/api/v1/profile", "")
	setupAuthContext(c, "auth0|analyst", uuid.New(), uuid.New())

	if err := handler.GetProfile(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestUpdateProfile_Success(t *testing.T) {
	e := echo.New()
	handler, repo := newProfileHandler()
	userID := uuid.New()

	repo.AddProfile(&domain.Profile{
		ID:    userID,
		Email: "analyst@example.com",
	})

	body := `{"name":"  Ana  ","lastName":"Gomez","phone":"+57 300 1234567"}`
	c, rec := newJSONContext(e, http.MethodPut, "/api/v1/profile", body)
	setupAuthContext(c, "auth0|analyst", uuid.New(), userID)

	if err := handler.UpdateProfile(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var updated domain.Profile
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if updated.Name == nil || *updated.Name != "Ana" {
		t.Errorf("Expected trimmed name 'Ana', got %v", updated.Name)
	}
	if updated.LastName == nil || *updated.LastName != "Gomez" {
		t.Errorf("Expected last name 'Gomez', got %v", updated.LastName)
	}
}

func TestUpdateProfile_BlankName(t *testing.T) {
	e := echo.New()
	handler, repo := newProfileHandler()
	userID := uuid.New()

	repo.AddProfile(&domain.Profile{ID: userID, Email: "analyst@example.com"})

	body := `{"name":"   "}`
	c, rec := newJSONContext(e, http.MethodPut, "/api/v1/profile", body)
	setupAuthContext(c, "auth0|analyst", uuid.New(), userID)

	if err := handler.UpdateProfile(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestUpdateProfile_NameTooLong(t *testing.T) {
	e := echo.New()
	handler, repo := newProfileHandler()
	userID := uuid.New()

	repo.AddProfile(&domain.Profile{ID: userID, Email: "analyst@example.com"})

	body := `{"name":"` + strings.Repeat("a", 256) + `"}`
	c, rec := newJSONContext(e, http.MethodPut, "/api/v1/profile", body)
	setupAuthContext(c, "auth0|analyst", uuid.New(), userID)

	if err := handler.UpdateProfile(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}
