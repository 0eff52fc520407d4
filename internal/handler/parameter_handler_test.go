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

func newParameterHandler() (*ParameterHandler, *testutil.MockParameterRepository) {
	repo := testutil.NewMockParameterRepository()
	return NewParameterHandler(service.NewParameterService(repo)), repo
}

func TestGetParameters_FilterByType(t *testing.T) {
	e := echo.New()
	handler, repo := newParameterHandler()

	repo.AddParameter(&domain.Parameter{
		ID:       1,
		Type:     domain.ParameterTypeStudyStatus,
		Code:     "pendiente",
		Label:    "Pendiente",
		IsActive: true,
	})
	repo.AddParameter(&domain.Parameter{
		ID:       2,
		Type:     domain.ParameterTypePersonType,
		Code:     "juridica",
		Label:    "Persona Juridica",
		IsActive: true,
	})

	c, rec := newJSONContext(e, http.MethodGet, "/api/v1/parameters?type="+domain.ParameterTypeStudyStatus, "")
	setupAuthContext(c, "auth0|analyst", uuid.New(), uuid.New())

	if err := handler.GetParameters(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var parameters []*domain.Parameter
	if err := json.Unmarshal(rec.Body.Bytes(), &parameters); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(parameters) != 1 || parameters[0].Code != "pendiente" {
		t.Errorf("Expected only the study-status parameter, got %+v", parameters)
	}
}

func TestGetParameters_InvalidOnlyActive(t *testing.T) {
	e := echo.New()
	handler, _ := newParameterHandler()

	c, rec := newJSONContext(e, http.MethodGet, "/api/v1/parameters?onlyActive=maybe", "")
	setupAuthContext(c, "auth0|analyst", uuid.New(), uuid.New())

	if err := handler.GetParameters(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestGetParameter_Success(t *testing.T) {
	e := echo.New()
	handler, repo := newParameterHandler()

	repo.AddParameter(&domain.Parameter{
		ID:       5,
		Type:     domain.ParameterTypeIncomePeriod,
		Code:     "semestral",
		Label:    "Semestral",
		IsActive: true,
	})

	c, rec := newJSONContext(e, http.MethodGet, "/api/v1/parameters/5", "")
	c.SetParamNames("id")
	c.SetParamValues("5")
	setupAuthContext(c, "auth0|analyst", uuid.New(), uuid.New())

	if err := handler.GetParameter(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var parameter domain.Parameter
	if err := json.Unmarshal(rec.Body.Bytes(), &parameter); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if parameter.Code != "semestral" {
		t.Errorf("Expected parameter code 'semestral', got %q", parameter.Code)
	}
}

func TestGetParameter_NotFound(t *testing.T) {
	e := echo.New()
	handler, _ := newParameterHandler()

	c, rec := newJSONContext(e, http.MethodGet, "/api/v1/parameters/99", "")
	c.SetParamNames("id")
	c.SetParamValues("99")
	setupAuthContext(c, "auth0|analyst", uuid.New(), uuid.New())

	if err := handler.GetParameter(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestGetParameter_InvalidID(t *testing.T) {
	e := echo.New()
	handler, _ := newParameterHandler()

	c, rec := newJSONContext(e, http.MethodGet, "/api/v1/parameters/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")
	setupAuthContext(c, "auth0|analyst", uuid.New(), uuid.New())

	if err := handler.GetParameter(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}
