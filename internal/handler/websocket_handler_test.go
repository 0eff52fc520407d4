package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/credipyme/credipyme-backend/internal/websocket"
)

// mockJWTValidator is a test double for JWTValidator
type mockJWTValidator struct {
	companyID uuid.UUID
	err       error
}

func (m *mockJWTValidator) ValidateToken(token string) (uuid.UUID, error) {
	if m.err != nil {
		return uuid.Nil, m.err
	}
	return m.companyID, nil
}

func TestHandleWS_MissingToken(t *testing.T) {
	e := echo.New()
	hub := websocket.NewHub()
	handler := NewWebSocketHandler(hub, &mockJWTValidator{companyID: uuid.New()}, nil)

	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.HandleWS(c)
	if err == nil {
		t.Fatal("Expected an error for missing token")
	}
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 HTTPError, got %v", err)
	}
}

func TestHandleWS_InvalidToken(t *testing.T) {
	e := echo.New()
	hub := websocket.NewHub()
	handler := NewWebSocketHandler(hub, &mockJWTValidator{err: errors.New("bad signature")}, nil)

	req := httptest.NewRequest(http.MethodGet, "/ws?token=bogus", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.HandleWS(c)
	if err == nil {
		t.Fatal("Expected an error for invalid token")
	}
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 HTTPError, got %v", err)
	}
}

func TestCheckOrigin(t *testing.T) {
	hub := websocket.NewHub()
	handler := NewWebSocketHandler(hub, &mockJWTValidator{}, []string{"https://app.credipyme.com"})

	tests := []struct {
		name   string
		origin string
		want   bool
	}{
		{"no origin header", "", true},
		{"allowed origin", "https://app.credipyme.com", true},
		{"disallowed origin", "https://evil.example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ws", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			if got := handler.checkOrigin(req); got != tt.want {
				t.Errorf("checkOrigin(%q) = %v, want %v", tt.origin, got, tt.want)
			}
		})
	}
}
