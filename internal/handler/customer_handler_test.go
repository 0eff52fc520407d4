package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/credipyme/credipyme-backend/internal/domain"
	"github.com/credipyme/credipyme-backend/internal/service"
	"github.com/credipyme/credipyme-backend/internal/testutil"
)

func newCustomerHandler() (*CustomerHandler, *testutil.MockCustomerRepository) {
	repo := testutil.NewMockCustomerRepository()
	return NewCustomerHandler(service.NewCustomerService(repo)), repo
}

func TestCreateCustomer_Success(t *testing.T) {
	e := echo.New()
	handler, _ := newCustomerHandler()
	companyID := uuid.New()

	body := `{"businessName":"Acme Trading SAS","identificationNumber":"900123456-7"}`
	c, rec := newJSONContext(e, http.MethodPost, "/api/v1/customers", body)
	setupAuthContext(c, "auth0|analyst", companyID, uuid.New())

	if err := handler.CreateCustomer(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", rec.Code)
	}

	var created domain.Customer
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if created.BusinessName != "Acme Trading SAS" {
		t.Errorf("Expected business name 'Acme Trading SAS', got %q", created.BusinessName)
	}
	if created.CompanyID != companyID {
		t.Errorf("Expected customer scoped to company %s, got %s", companyID, created.CompanyID)
	}
}

func TestCreateCustomer_MissingCompany(t *testing.T) {
	e := echo.New()
	handler, _ := newCustomerHandler()

	body := `{"businessName":"Acme","identificationNumber":"900123456"}`
	c, rec := newJSONContext(e, http.MethodPost, "/api/v1/customers", body)
	setupAuthContext(c, "auth0|analyst", uuid.Nil, uuid.Nil)

	if err := handler.CreateCustomer(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}

func TestCreateCustomer_BlankBusinessName(t *testing.T) {
	e := echo.New()
	handler, _ := newCustomerHandler()

	body := `{"businessName":"   ","identificationNumber":"900123456"}`
	c, rec := newJSONContext(e, http.MethodPost, "/api/v1/customers", body)
	setupAuthContext(c, "auth0|analyst", uuid.New(), uuid.New())

	if err := handler.CreateCustomer(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}

	var problem ProblemDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("Failed to unmarshal problem details: %v", err)
	}
	if len(problem.Errors) == 0 || problem.Errors[0].Field != "businessName" {
		t.Errorf("Expected a businessName validation error, got %+v", problem.Errors)
	}
}

func TestGetCustomers_CompanyIsolation(t *testing.T) {
	e := echo.New()
	handler, repo := newCustomerHandler()
	companyA := uuid.New()
	companyB := uuid.New()

	repo.AddCustomer(&domain.Customer{
		ID:                   uuid.New(),
		CompanyID:            companyA,
		BusinessName:         "Company A Customer",
		IdentificationNumber: "111",
		CreatedAt:            time.Now(),
		UpdatedAt:            time.Now(),
	})
	repo.AddCustomer(&domain.Customer{
		ID:                   uuid.New(),
		CompanyID:            companyB,
		BusinessName:         "Company B Customer",
		IdentificationNumber: "222",
		CreatedAt:            time.Now(),
		UpdatedAt:            time.Now(),
	})

	c, rec := newJSONContext(e, http.MethodGet, "/api/v1/customers", "")
	setupAuthContext(c, "auth0|analyst", companyA, uuid.New())

	if err := handler.GetCustomers(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var page domain.PaginatedCustomers
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(page.Data) != 1 {
		t.Fatalf("Expected 1 customer, got %d", len(page.Data))
	}
	if page.Data[0].BusinessName != "Company A Customer" {
		t.Errorf("Expected company A's customer, got %q", page.Data[0].BusinessName)
	}
}

func TestGetCustomers_InvalidPage(t *testing.T) {
	e := echo.New()
	handler, _ := newCustomerHandler()

	c, rec := newJSONContext(e, http.MethodGet, "/api/v1/customers?page=zero", "")
	setupAuthContext(c, "auth0|analyst", uuid.New(), uuid.New())

	if err := handler.GetCustomers(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestAutocompleteCustomers(t *testing.T) {
	e := echo.New()
	handler, repo := newCustomerHandler()
	companyID := uuid.New()

	repo.AddCustomer(&domain.Customer{
		ID:                   uuid.New(),
		CompanyID:            companyID,
		BusinessName:         "Distribuidora Andina",
		IdentificationNumber: "800555111",
	})
	repo.AddCustomer(&domain.Customer{
		ID:                   uuid.New(),
		CompanyID:            companyID,
		BusinessName:         "Logistica Pacifico",
		IdentificationNumber: "800555222",
	})

	c, rec := newJSONContext(e, http.MethodGet, "/api/v1/customers/autocomplete?q=andina", "")
	setupAuthContext(c, "auth0|analyst", companyID, uuid.New())

	if err := handler.AutocompleteCustomers(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var matches []*domain.Customer
	if err := json.Unmarshal(rec.Body.Bytes(), &matches); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(matches) != 1 || matches[0].BusinessName != "Distribuidora Andina" {
		t.Errorf("Expected the Andina match, got %+v", matches)
	}
}

func TestGetCustomer_NotFound(t *testing.T) {
	e := echo.New()
	handler, _ := newCustomerHandler()

	c, rec := newJSONContext(e, http.MethodGet, "/api/v1/customers/"+uuid.NewString(), "")
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())
	setupAuthContext(c, "auth0|analyst", uuid.New(), uuid.New())

	if err := handler.GetCustomer(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestGetCustomer_CrossCompanyIsNotFound(t *testing.T) {
	e := echo.New()
	handler, repo := newCustomerHandler()
	owner := uuid.New()
	customerID := uuid.New()

	repo.AddCustomer(&domain.Customer{
		ID:                   customerID,
		CompanyID:            owner,
		BusinessName:         "Private Customer",
		IdentificationNumber: "333",
	})

	c, rec := newJSONContext(e, http.MethodGet, "/api/v1/customers/"+customerID.String(), "")
	c.SetParamNames("id")
	c.SetParamValues(customerID.String())
	setupAuthContext(c, "auth0|analyst", uuid.New(), uuid.New())

	if err := handler.GetCustomer(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 for another company's customer, got %d", rec.Code)
	}
}

func TestUpdateCustomer_Success(t *testing.T) {
	e := echo.New()
	handler, repo := newCustomerHandler()
	companyID := uuid.New()
	customerID := uuid.New()

	repo.AddCustomer(&domain.Customer{
		ID:                   customerID,
		CompanyID:            companyID,
		BusinessName:         "Old Name",
		IdentificationNumber: "444",
	})

	body := `{"businessName":"New Name","identificationNumber":"444"}`
	c, rec := newJSONContext(e, http.MethodPut, "/api/v1/customers/"+customerID.String(), body)
	c.SetParamNames("id")
	c.SetParamValues(customerID.String())
	setupAuthContext(c, "auth0|analyst", companyID, uuid.New())

	if err := handler.UpdateCustomer(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var updated domain.Customer
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if updated.BusinessName != "New Name" {
		t.Errorf("Expected updated business name, got %q", updated.BusinessName)
	}
}

func TestDeleteCustomer_Success(t *testing.T) {
	e := echo.New()
	handler, repo := newCustomerHandler()
	companyID := uuid.New()
	customerID := uuid.New()

	repo.AddCustomer(&domain.Customer{
		ID:                   customerID,
		CompanyID:            companyID,
		BusinessName:         "To Delete",
		IdentificationNumber: "555",
	})

	c, rec := newJSONContext(e, http.MethodDelete, "/api/v1/customers/"+customerID.String(), "")
	c.SetParamNames("id")
	c.SetParamValues(customerID.String())
	setupAuthContext(c, "auth0|analyst", companyID, uuid.New())

	if err := handler.DeleteCustomer(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", rec.Code)
	}
}
