package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/credipyme/credipyme-backend/internal/domain"
	"github.com/credipyme/credipyme-backend/internal/middleware"
	"github.com/credipyme/credipyme-backend/internal/service"
)

// StudyHandler handles credit-study HTTP requests
type StudyHandler struct {
	studyService *service.StudyService
}

// NewStudyHandler creates a new StudyHandler
func NewStudyHandler(studyService *service.StudyService) *StudyHandler {
	return &StudyHandler{studyService: studyService}
}

// StudyRequest represents the create/update study request body. The statement
// fields are optional; absent fields stay NULL and the engine defaults them at
// compute time.
type StudyRequest struct {
	CustomerID string  `json:"customerId"`
	StatusID   int32   `json:"statusId"`
	StudyDate  string  `json:"studyDate"`
	Notes      *string `json:"notes,omitempty"`

	RequestedTerm              *int32  `json:"requestedTerm,omitempty"`
	RequestedMonthlyCreditLine *string `json:"requestedMonthlyCreditLine,omitempty"`
	IncomeStatementID          *int32  `json:"incomeStatementId,omitempty"`

	TotalCurrentAssets    *float64 `json:"totalCurrentAssets,omitempty"`
	TotalNonCurrentAssets *float64 `json:"totalNonCurrentAssets,omitempty"`
	TotalAssets           *float64 `json:"totalAssets,omitempty"`
	FixedAssetsProperty   *float64 `json:"fixedAssetsProperty,omitempty"`
	CashAndEquivalents    *float64 `json:"cashAndEquivalents,omitempty"`
	AccountsReceivable1   *float64 `json:"accountsReceivable1,omitempty"`
	AccountsReceivable2   *float64 `json:"accountsReceivable2,omitempty"`
	Inventories1          *float64 `json:"inventories1,omitempty"`
	Inventories2          *float64 `json:"inventories2,omitempty"`

	TotalCurrentLiabilities       *float64 `json:"totalCurrentLiabilities,omitempty"`
	TotalNonCurrentLiabilities    *float64 `json:"totalNonCurrentLiabilities,omitempty"`
	TotalLiabilities              *float64 `json:"totalLiabilities,omitempty"`
	ShortTermFinancialLiabilities *float64 `json:"shortTermFinancialLiabilities,omitempty"`
	LongTermFinancialLiabilities  *float64 `json:"longTermFinancialLiabilities,omitempty"`
	Suppliers1                    *float64 `json:"suppliers1,omitempty"`
	Suppliers2                    *float64 `json:"suppliers2,omitempty"`
	RetainedEarnings              *float64 `json:"retainedEarnings,omitempty"`
	Equity                        *float64 `json:"equity,omitempty"`

	OrdinaryActivityRevenue  *float64 `json:"ordinaryActivityRevenue,omitempty"`
	CostOfSales              *float64 `json:"costOfSales,omitempty"`
	GrossProfit              *float64 `json:"grossProfit,omitempty"`
	AdministrativeExpenses   *float64 `json:"administrativeExpenses,omitempty"`
	SellingExpenses          *float64 `json:"sellingExpenses,omitempty"`
	DepreciationAmortization *float64 `json:"depreciationAmortization,omitempty"`
	FinancialExpenses        *float64 `json:"financialExpenses,omitempty"`
	Taxes                    *float64 `json:"taxes,omitempty"`
	NetIncome                *float64 `json:"netIncome,omitempty"`
}

// toStudy validates and maps the request onto a domain study
func (r *StudyRequest) toStudy(companyID uuid.UUID) (*domain.CreditStudy, []ValidationError) {
	customerID, err := uuid.Parse(r.CustomerID)
	if err != nil {
		return nil, []ValidationError{{Field: "customerId", Message: "Must be a valid UUID"}}
	}

	studyDate, err := time.Parse("2006-01-02", r.StudyDate)
	if err != nil {
		return nil, []ValidationError{{Field: "studyDate", Message: "Must be in YYYY-MM-DD format"}}
	}

	var creditLine *decimal.Decimal
	if r.RequestedMonthlyCreditLine != nil && *r.RequestedMonthlyCreditLine != "" {
		line, err := decimal.NewFromString(*r.RequestedMonthlyCreditLine)
		if err != nil {
			return nil, []ValidationError{{Field: "requestedMonthlyCreditLine", Message: "Must be a valid decimal number"}}
		}
		creditLine = &line
	}

	return &domain.CreditStudy{
		CompanyID:  companyID,
		CustomerID: customerID,
		StatusID:   r.StatusID,
		StudyDate:  studyDate,
		Notes:      r.Notes,

		RequestedTerm:              r.RequestedTerm,
		RequestedMonthlyCreditLine: creditLine,
		IncomeStatementID:          r.IncomeStatementID,

		TotalCurrentAssets:    r.TotalCurrentAssets,
		TotalNonCurrentAssets: r.TotalNonCurrentAssets,
		TotalAssets:           r.TotalAssets,
		FixedAssetsProperty:   r.FixedAssetsProperty,
		CashAndEquivalents:    r.CashAndEquivalents,
		AccountsReceivable1:   r.AccountsReceivable1,
		AccountsReceivable2:   r.AccountsReceivable2,
		Inventories1:          r.Inventories1,
		Inventories2:          r.Inventories2,

		TotalCurrentLiabilities:       r.TotalCurrentLiabilities,
		TotalNonCurrentLiabilities:    r.TotalNonCurrentLiabilities,
		TotalLiabilities:              r.TotalLiabilities,
		ShortTermFinancialLiabilities: r.ShortTermFinancialLiabilities,
		LongTermFinancialLiabilities:  r.LongTermFinancialLiabilities,
		Suppliers1:                    r.Suppliers1,
		Suppliers2:                    r.Suppliers2,
		RetainedEarnings:              r.RetainedEarnings,
		Equity:                        r.Equity,

		OrdinaryActivityRevenue:  r.OrdinaryActivityRevenue,
		CostOfSales:              r.CostOfSales,
		GrossProfit:              r.GrossProfit,
		AdministrativeExpenses:   r.AdministrativeExpenses,
		SellingExpenses:          r.SellingExpenses,
		DepreciationAmortization: r.DepreciationAmortization,
		FinancialExpenses:        r.FinancialExpenses,
		Taxes:                    r.Taxes,
		NetIncome:                r.NetIncome,
	}, nil
}

// CreateStudy handles POST /api/v1/credit-studies
func (h *StudyHandler) CreateStudy(c echo.Context) error {
	companyID := middleware.GetCompanyID(c)
	if companyID == uuid.Nil {
		return NewUnauthorizedError(c, "Company required")
	}

	var req StudyRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	study, verrs := req.toStudy(companyID)
	if verrs != nil {
		return NewValidationError(c, "Validation failed", verrs)
	}
	study.CreatedBy = middleware.GetUserID(c)
	study.UpdatedBy = study.CreatedBy

	created, err := h.studyService.Create(study)
	if err != nil {
		if errors.Is(err, domain.ErrCustomerNotInCompany) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "customerId", Message: "Customer does not belong to this company"},
			})
		}
		log.Error().Err(err).Str("company_id", companyID.String()).Msg("Failed to create study")
		return NewInternalError(c, "Failed to create study")
	}

	log.Info().
		Str("company_id", companyID.String()).
		Str("study_id", created.ID.String()).
		Msg("Study created")

	return c.JSON(http.StatusCreated, created)
}

// GetStudies godoc
// @Summary List credit studies
// @Description Paginated credit studies for the authenticated company
// @Tags credit-studies
// @Produce json
// @Security BearerAuth
// @Param customerId query string false "Filter by customer"
// @Param statusId query int false "Filter by status parameter"
// @Param dateFrom query string false "Study date from (YYYY-MM-DD)"
// @Param dateTo query string false "Study date to (YYYY-MM-DD)"
// @Param search query string false "Customer name search"
// @Param page query int false "Page" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} domain.PaginatedStudies
// @Failure 401 {object} ProblemDetails
// @Failure 500 {object} ProblemDetails
// @Router /credit-studies [get]
func (h *StudyHandler) GetStudies(c echo.Context) error {
	companyID := middleware.GetCompanyID(c)
	if companyID == uuid.Nil {
		return NewUnauthorizedError(c, "Company required")
	}

	filters, verrs := parseStudyFilters(c)
	if verrs != nil {
		return NewValidationError(c, "Invalid query parameters", verrs)
	}

	page, err := h.studyService.List(companyID, filters)
	if err != nil {
		log.Error().Err(err).Str("company_id", companyID.String()).Msg("Failed to list studies")
		return NewInternalError(c, "Failed to list studies")
	}

	return c.JSON(http.StatusOK, page)
}

// GetStudy handles GET /api/v1/credit-studies/:id
func (h *StudyHandler) GetStudy(c echo.Context) error {
	companyID := middleware.GetCompanyID(c)
	if companyID == uuid.Nil {
		return NewUnauthorizedError(c, "Company required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid study ID", nil)
	}

	study, err := h.studyService.GetByID(companyID, id)
	if err != nil {
		if errors.Is(err, domain.ErrStudyNotFound) {
			return NewNotFoundError(c, "Credit study not found")
		}
		log.Error().Err(err).Str("company_id", companyID.String()).Str("study_id", id.String()).Msg("Failed to get study")
		return NewInternalError(c, "Failed to get study")
	}

	return c.JSON(http.StatusOK, study)
}

// UpdateStudy handles PUT /api/v1/credit-studies/:id
func (h *StudyHandler) UpdateStudy(c echo.Context) error {
	companyID := middleware.GetCompanyID(c)
	if companyID == uuid.Nil {
		return NewUnauthorizedError(c, "Company required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid study ID", nil)
	}

	var req StudyRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	study, verrs := req.toStudy(companyID)
	if verrs != nil {
		return NewValidationError(c, "Validation failed", verrs)
	}
	study.ID = id
	study.UpdatedBy = middleware.GetUserID(c)

	updated, err := h.studyService.Update(study)
	if err != nil {
		if errors.Is(err, domain.ErrStudyNotFound) {
			return NewNotFoundError(c, "Credit study not found")
		}
		if errors.Is(err, domain.ErrCustomerNotInCompany) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "customerId", Message: "Customer does not belong to this company"},
			})
		}
		log.Error().Err(err).Str("company_id", companyID.String()).Str("study_id", id.String()).Msg("Failed to update study")
		return NewInternalError(c, "Failed to update study")
	}

	return c.JSON(http.StatusOK, updated)
}

// DeleteStudy handles DELETE /api/v1/credit-studies/:id
func (h *StudyHandler) DeleteStudy(c echo.Context) error {
	companyID := middleware.GetCompanyID(c)
	if companyID == uuid.Nil {
		return NewUnauthorizedError(c, "Company required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid study ID", nil)
	}

	if err := h.studyService.Delete(companyID, id); err != nil {
		if errors.Is(err, domain.ErrStudyNotFound) {
			return NewNotFoundError(c, "Credit study not found")
		}
		log.Error().Err(err).Str("company_id", companyID.String()).Str("study_id", id.String()).Msg("Failed to delete study")
		return NewInternalError(c, "Failed to delete study")
	}

	log.Info().Str("company_id", companyID.String()).Str("study_id", id.String()).Msg("Study deleted")
	return c.NoContent(http.StatusNoContent)
}

// PerformStudy godoc
// @Summary Score a credit study
// @Description Runs the scoring engine over the study's statement fields and persists the result
// @Tags credit-studies
// @Produce json
// @Security BearerAuth
// @Param id path string true "Study ID"
// @Success 200 {object} domain.CreditStudy
// @Failure 404 {object} ProblemDetails
// @Failure 500 {object} ProblemDetails
// @Router /credit-studies/{id}/perform [post]
func (h *StudyHandler) PerformStudy(c echo.Context) error {
	companyID := middleware.GetCompanyID(c)
	if companyID == uuid.Nil {
		return NewUnauthorizedError(c, "Company required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid study ID", nil)
	}

	scored, err := h.studyService.Perform(companyID, id, middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, domain.ErrStudyNotFound) {
			return NewNotFoundError(c, "Credit study not found")
		}
		if errors.Is(err, domain.ErrStatusParameterMissing) {
			return NewNotFoundError(c, "Study-completed status parameter not configured")
		}
		log.Error().Err(err).Str("company_id", companyID.String()).Str("study_id", id.String()).Msg("Failed to perform study")
		return NewInternalError(c, "Failed to perform study")
	}

	log.Info().
		Str("company_id", companyID.String()).
		Str("study_id", id.String()).
		Msg("Study scored")

	return c.JSON(http.StatusOK, scored)
}

// parseStudyFilters reads the list query parameters
func parseStudyFilters(c echo.Context) (*domain.StudyFilters, []ValidationError) {
	filters := &domain.StudyFilters{
		Search: c.QueryParam("search"),
	}

	if raw := c.QueryParam("customerId"); raw != "" {
		customerID, err := uuid.Parse(raw)
		if err != nil {
			return nil, []ValidationError{{Field: "customerId", Message: "Must be a valid UUID"}}
		}
		filters.CustomerID = &customerID
	}

	if raw := c.QueryParam("statusId"); raw != "" {
		statusID, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return nil, []ValidationError{{Field: "statusId", Message: "Must be an integer"}}
		}
		id := int32(statusID)
		filters.StatusID = &id
	}

	if raw := c.QueryParam("dateFrom"); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, []ValidationError{{Field: "dateFrom", Message: "Must be in YYYY-MM-DD format"}}
		}
		filters.StudyDateFrom = &from
	}

	if raw := c.QueryParam("dateTo"); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, []ValidationError{{Field: "dateTo", Message: "Must be in YYYY-MM-DD format"}}
		}
		filters.StudyDateTo = &to
	}

	if raw := c.QueryParam("page"); raw != "" {
		page, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || page < 1 {
			return nil, []ValidationError{{Field: "page", Message: "Must be a positive integer"}}
		}
		filters.Page = int32(page)
	}

	if raw := c.QueryParam("pageSize"); raw != "" {
		size, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || size < 1 {
			return nil, []ValidationError{{Field: "pageSize", Message: "Must be a positive integer"}}
		}
		filters.PageSize = int32(size)
	}

	return filters, nil
}
