package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/credipyme/credipyme-backend/internal/domain"
	"github.com/credipyme/credipyme-backend/internal/middleware"
	"github.com/credipyme/credipyme-backend/internal/service"
)

// DashboardHandler handles dashboard HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetBasic godoc
// @Summary Basic dashboard
// @Description Dashboard blocks available to every subscription tier
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.BasicDashboard
// @Failure 401 {object} ProblemDetails
// @Failure 500 {object} ProblemDetails
// @Router /dashboard/basic [get]
func (h *DashboardHandler) GetBasic(c echo.Context) error {
	companyID := middleware.GetCompanyID(c)
	if companyID == uuid.Nil {
		return NewUnauthorizedError(c, "Company required")
	}

	dashboard, err := h.dashboardService.Basic(companyID)
	if err != nil {
		log.Error().Err(err).Str("company_id", companyID.String()).Msg("Failed to build basic dashboard")
		return NewInternalError(c, "Failed to build dashboard")
	}

	return c.JSON(http.StatusOK, dashboard)
}

// GetAdvanced godoc
// @Summary Advanced dashboard
// @Description Full dashboard, gated on the company's subscription tier
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Param dateFrom query string false "Window start (YYYY-MM-DD)"
// @Param dateTo query string false "Window end (YYYY-MM-DD)"
// @Success 200 {object} domain.AdvancedDashboard
// @Failure 401 {object} ProblemDetails
// @Failure 403 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Failure 500 {object} ProblemDetails
// @Router /dashboard/advanced [get]
func (h *DashboardHandler) GetAdvanced(c echo.Context) error {
	companyID := middleware.GetCompanyID(c)
	if companyID == uuid.Nil {
		return NewUnauthorizedError(c, "Company required")
	}

	var dateFrom, dateTo *time.Time
	if raw := c.QueryParam("dateFrom"); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return NewValidationError(c, "Invalid date filter", []ValidationError{
				{Field: "dateFrom", Message: "Must be in YYYY-MM-DD format"},
			})
		}
		dateFrom = &from
	}
	if raw := c.QueryParam("dateTo"); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return NewValidationError(c, "Invalid date filter", []ValidationError{
				{Field: "dateTo", Message: "Must be in YYYY-MM-DD format"},
			})
		}
		dateTo = &to
	}
	if dateFrom != nil && dateTo != nil && dateTo.Before(*dateFrom) {
		return NewValidationError(c, "Invalid date filter", []ValidationError{
			{Field: "dateTo", Message: "Must not be before dateFrom"},
		})
	}

	dashboard, err := h.dashboardService.Advanced(companyID, dateFrom, dateTo)
	if err != nil {
		if errors.Is(err, domain.ErrDashboardTierInsufficient) {
			return NewForbiddenError(c, "Current subscription does not include the advanced dashboard")
		}
		if errors.Is(err, domain.ErrCompanyNotFound) {
			return NewNotFoundError(c, "Company not found")
		}
		log.Error().Err(err).Str("company_id", companyID.String()).Msg("Failed to build advanced dashboard")
		return NewInternalError(c, "Failed to build dashboard")
	}

	return c.JSON(http.StatusOK, dashboard)
}
