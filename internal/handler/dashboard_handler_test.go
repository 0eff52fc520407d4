package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/credipyme/credipyme-backend/internal/domain"
	"github.com/credipyme/credipyme-backend/internal/service"
	"github.com/credipyme/credipyme-backend/internal/testutil"
)

func newDashboardHandler() (*DashboardHandler, *testutil.MockDashboardRepository, *testutil.MockSubscriptionRepository) {
	repo := testutil.NewMockDashboardRepository()
	users := testutil.NewMockUserCompanyRepository()
	params := testutil.NewMockParameterRepository()
	profiles := testutil.NewMockProfileRepository()
	subs := testutil.NewMockSubscriptionRepository()
	svc := service.NewDashboardService(repo, users, params, profiles, subs)
	return NewDashboardHandler(svc), repo, subs
}

func TestGetBasic_Success(t *testing.T) {
	e := echo.New()
	handler, repo, _ := newDashboardHandler()
	companyID := uuid.New()

	repo.TotalCustomers = 42
	repo.TotalStudies = 17

	c, rec := newJSONContext(e, http.MethodGet, "/api/v1/dashboard/basic", "")
	setupAuthContext(c, "auth0|analyst", companyID, uuid.New())

	if err := handler.GetBasic(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var dashboard domain.BasicDashboard
	if err := json.Unmarshal(rec.Body.Bytes(), &dashboard); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if dashboard.Summary.TotalCustomers != 42 {
		t.Errorf("Expected 42 customers, got %d", dashboard.Summary.TotalCustomers)
	}
	if dashboard.Summary.TotalStudies != 17 {
		t.Errorf("Expected 17 studies, got %d", dashboard.Summary.TotalStudies)
	}
	// The month series is zero-filled over the trailing window even with no data
	if len(dashboard.StudiesByMonth) == 0 {
		t.Error("Expected a zero-filled studies-by-month series")
	}
	for _, bucket := range dashboard.StudiesByMonth {
		if bucket.Count != 0 {
			t.Errorf("Expected zero-filled bucket, got %+v", bucket)
		}
	}
}

func TestGetBasic_MissingCompany(t *testing.T) {
	e := echo.New()
	handler, _, _ := newDashboardHandler()

	c, rec := newJSONContext(e, http.MethodGet, "/api/v1/dashboard/basic", "")
	setupAuthContext(c, "auth0|analyst", uuid.Nil, uuid.Nil)

	if err := handler.GetBasic(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}

func TestGetAdvanced_BasicTierForbidden(t *testing.T) {
	e := echo.New()
	handler, _, subs := newDashboardHandler()
	companyID := uuid.New()

	subs.SetLevel(companyID, domain.DashboardLevelBasic)

	c, rec := newJSONContext(e, http.MethodGet, "/api/v1/dashboard/advanced", "")
	setupAuthContext(c, "auth0|analyst", companyID, uuid.New())

	if err := handler.GetAdvanced(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", rec.Code)
	}

	var problem ProblemDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("Failed to unmarshal problem details: %v", err)
	}
	if problem.Type != ErrorTypeForbidden {
		t.Errorf("Expected forbidden problem type, got %s", problem.Type)
	}
}

func TestGetAdvanced_AdvancedTierSuccess(t *testing.T) {
	e := echo.New()
	handler, repo, subs := newDashboardHandler()
	companyID := uuid.New()

	subs.SetLevel(companyID, domain.DashboardLevelAdvanced)
	repo.Financial = &domain.FinancialIndicators{AvgEbitda: 125000.5}

	c, rec := newJSONContext(e, http.MethodGet, "/api/v1/dashboard/advanced", "")
	setupAuthContext(c, "auth0|analyst", companyID, uuid.New())

	if err := handler.GetAdvanced(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var dashboard domain.AdvancedDashboard
	if err := json.Unmarshal(rec.Body.Bytes(), &dashboard); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if dashboard.FinancialIndicators.AvgEbitda != 125000.5 {
		t.Errorf("Expected avg EBITDA 125000.5, got %f", dashboard.FinancialIndicators.AvgEbitda)
	}
}

func TestGetAdvanced_PremiumTierSuccess(t *testing.T) {
	e := echo.New()
	handler, _, subs := newDashboardHandler()
	companyID := uuid.New()

	subs.SetLevel(companyID, domain.DashboardLevelPremium)

	c, rec := newJSONContext(e, http.MethodGet, "/api/v1/dashboard/advanced", "")
	setupAuthContext(c, "auth0|analyst", companyID, uuid.New())

	if err := handler.GetAdvanced(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}
}

func TestGetAdvanced_UnknownCompany(t *testing.T) {
	e := echo.New()
	handler, _, _ := newDashboardHandler()

	// No level registered for this company
	c, rec := newJSONContext(e, http.MethodGet, "/api/v1/dashboard/advanced", "")
	setupAuthContext(c, "auth0|analyst", uuid.New(), uuid.New())

	if err := handler.GetAdvanced(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestGetAdvanced_DateFilterValidation(t *testing.T) {
	e := echo.New()
	handler, _, subs := newDashboardHandler()
	companyID := uuid.New()
	subs.SetLevel(companyID, domain.DashboardLevelAdvanced)

	tests := []struct {
		name  string
		query string
	}{
		{"malformed dateFrom", "?dateFrom=01-2026"},
		{"malformed dateTo", "?dateTo=yesterday"},
		{"inverted window", "?dateFrom=2026-06-01&dateTo=2026-01-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newJSONContext(e, http.MethodGet, "/api/v1/dashboard/advanced"+tt.query, "")
			setupAuthContext(c, "auth0|analyst", companyID, uuid.New())

			if err := handler.GetAdvanced(c); err != nil {
				t.Fatalf("Expected JSON response, got error: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Errorf("Expected status 400, got %d", rec.Code)
			}
		})
	}
}
