package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/credipyme/credipyme-backend/internal/domain"
	"github.com/credipyme/credipyme-backend/internal/middleware"
	"github.com/credipyme/credipyme-backend/internal/service"
)

// CustomerHandler handles customer HTTP requests
type CustomerHandler struct {
	customerService *service.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// CustomerRequest represents the create/update customer request body
type CustomerRequest struct {
	BusinessName         string  `json:"businessName"`
	IdentificationNumber string  `json:"identificationNumber"`
	PersonTypeID         *int32  `json:"personTypeId,omitempty"`
	EconomicActivityID   *int32  `json:"economicActivityId,omitempty"`
	Email                *string `json:"email,omitempty"`
	Phone                *string `json:"phone,omitempty"`
	Address              *string `json:"address,omitempty"`
	ContactName          *string `json:"contactName,omitempty"`
}

func (r *CustomerRequest) toCustomer(companyID uuid.UUID) *domain.Customer {
	return &domain.Customer{
		CompanyID:            companyID,
		BusinessName:         r.BusinessName,
		IdentificationNumber: r.IdentificationNumber,
		PersonTypeID:         r.PersonTypeID,
		EconomicActivityID:   r.EconomicActivityID,
		Email:                r.Email,
		Phone:                r.Phone,
		Address:              r.Address,
		ContactName:          r.ContactName,
	}
}

// CreateCustomer handles POST /api/v1/customers
func (h *CustomerHandler) CreateCustomer(c echo.Context) error {
	companyID := middleware.GetCompanyID(c)
	if companyID == uuid.Nil {
		return NewUnauthorizedError(c, "Company required")
	}

	var req CustomerRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	created, err := h.customerService.Create(req.toCustomer(companyID))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "businessName", Message: "Business name is required and must be 255 characters or less"},
			})
		}
		log.Error().Err(err).Str("company_id", companyID.String()).Msg("Failed to create customer")
		return NewInternalError(c, "Failed to create customer")
	}

	log.Info().
		Str("company_id", companyID.String()).
		Str("customer_id", created.ID.String()).
		Str("business_name", created.BusinessName).
		Msg("Customer created")

	return c.JSON(http.StatusCreated, created)
}

// GetCustomers godoc
// @Summary List customers
// @Description Paginated customers for the authenticated company
// @Tags customers
// @Produce json
// @Security BearerAuth
// @Param personTypeId query int false "Filter by person type parameter"
// @Param economicActivityId query int false "Filter by economic activity parameter"
// @Param search query string false "Name or identification search"
// @Param page query int false "Page" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} domain.PaginatedCustomers
// @Failure 401 {object} ProblemDetails
// @Failure 500 {object} ProblemDetails
// @Router /customers [get]
func (h *CustomerHandler) GetCustomers(c echo.Context) error {
	companyID := middleware.GetCompanyID(c)
	if companyID == uuid.Nil {
		return NewUnauthorizedError(c, "Company required")
	}

	filters := &domain.CustomerFilters{
		Search: c.QueryParam("search"),
	}

	if raw := c.QueryParam("personTypeId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return NewValidationError(c, "Invalid query parameters", []ValidationError{
				{Field: "personTypeId", Message: "Must be an integer"},
			})
		}
		v := int32(id)
		filters.PersonTypeID = &v
	}

	if raw := c.QueryParam("economicActivityId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return NewValidationError(c, "Invalid query parameters", []ValidationError{
				{Field: "economicActivityId", Message: "Must be an integer"},
			})
		}
		v := int32(id)
		filters.EconomicActivityID = &v
	}

	if raw := c.QueryParam("page"); raw != "" {
		page, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || page < 1 {
			return NewValidationError(c, "Invalid query parameters", []ValidationError{
				{Field: "page", Message: "Must be a positive integer"},
			})
		}
		filters.Page = int32(page)
	}

	if raw := c.QueryParam("pageSize"); raw != "" {
		size, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || size < 1 {
			return NewValidationError(c, "Invalid query parameters", []ValidationError{
				{Field: "pageSize", Message: "Must be a positive integer"},
			})
		}
		filters.PageSize = int32(size)
	}

	page, err := h.customerService.List(companyID, filters)
	if err != nil {
		log.Error().Err(err).Str("company_id", companyID.String()).Msg("Failed to list customers")
		return NewInternalError(c, "Failed to list customers")
	}

	return c.JSON(http.StatusOK, page)
}

// AutocompleteCustomers handles GET /api/v1/customers/autocomplete
func (h *CustomerHandler) AutocompleteCustomers(c echo.Context) error {
	companyID := middleware.GetCompanyID(c)
	if companyID == uuid.Nil {
		return NewUnauthorizedError(c, "Company required")
	}

	customers, err := h.customerService.Autocomplete(companyID, c.QueryParam("q"))
	if err != nil {
		log.Error().Err(err).Str("company_id", companyID.String()).Msg("Failed to autocomplete customers")
		return NewInternalError(c, "Failed to search customers")
	}

	return c.JSON(http.StatusOK, customers)
}

// GetCustomer handles GET /api/v1/customers/:id
func (h *CustomerHandler) GetCustomer(c echo.Context) error {
	companyID := middleware.GetCompanyID(c)
	if companyID == uuid.Nil {
		return NewUnauthorizedError(c, "Company required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid customer ID", nil)
	}

	customer, err := h.customerService.GetByID(companyID, id)
	if err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			return NewNotFoundError(c, "Customer not found")
		}
		log.Error().Err(err).Str("company_id", companyID.String()).Str("customer_id", id.String()).Msg("Failed to get customer")
		return NewInternalError(c, "Failed to get customer")
	}

	return c.JSON(http.StatusOK, customer)
}

// UpdateCustomer handles PUT /api/v1/customers/:id
func (h *CustomerHandler) UpdateCustomer(c echo.Context) error {
	companyID := middleware.GetCompanyID(c)
	if companyID == uuid.Nil {
		return NewUnauthorizedError(c, "Company required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid customer ID", nil)
	}

	var req CustomerRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	customer := req.toCustomer(companyID)
	customer.ID = id

	updated, err := h.customerService.Update(customer)
	if err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			return NewNotFoundError(c, "Customer not found")
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "businessName", Message: "Business name is required and must be 255 characters or less"},
			})
		}
		log.Error().Err(err).Str("company_id", companyID.String()).Str("customer_id", id.String()).Msg("Failed to update customer")
		return NewInternalError(c, "Failed to update customer")
	}

	return c.JSON(http.StatusOK, updated)
}

// DeleteCustomer handles DELETE /api/v1/customers/:id
func (h *CustomerHandler) DeleteCustomer(c echo.Context) error {
	companyID := middleware.GetCompanyID(c)
	if companyID == uuid.Nil {
		return NewUnauthorizedError(c, "Company required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid customer ID", nil)
	}

	if err := h.customerService.Delete(companyID, id); err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			return NewNotFoundError(c, "Customer not found")
		}
		log.Error().Err(err).Str("company_id", companyID.String()).Str("customer_id", id.String()).Msg("Failed to delete customer")
		return NewInternalError(c, "Failed to delete customer")
	}

	log.Info().Str("company_id", companyID.String()).Str("customer_id", id.String()).Msg("Customer deleted")
	return c.NoContent(http.StatusNoContent)
}
