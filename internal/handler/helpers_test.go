package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/credipyme/credipyme-backend/internal/middleware"
)

// setupAuthContext injects what the auth middleware would have resolved for an
// authenticated request. Pass uuid.Nil to leave the company or user unset.
func setupAuthContext(c echo.Context, authID string, companyID, userID uuid.UUID) {
	customClaims := &middleware.CustomClaims{
		Email: "analyst@example.com",
		Name:  "Test Analyst",
	}
	claims := &validator.ValidatedClaims{
		RegisteredClaims: validator.RegisteredClaims{
			Subject: authID,
		},
		CustomClaims: customClaims,
	}
	ctx := context.WithValue(c.Request().Context(), middleware.ClaimsKey, claims)
	ctx = context.WithValue(ctx, middleware.AuthIDKey, authID)
	if companyID != uuid.Nil {
		ctx = context.WithValue(ctx, middleware.CompanyIDKey, companyID)
	}
	if userID != uuid.Nil {
		ctx = context.WithValue(ctx, middleware.UserIDKey, userID)
	}
	c.SetRequest(c.Request().WithContext(ctx))
}

// newJSONContext builds an echo context around an optional JSON body
func newJSONContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}
