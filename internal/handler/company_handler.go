package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/credipyme/credipyme-backend/internal/domain"
	"github.com/credipyme/credipyme-backend/internal/middleware"
	"github.com/credipyme/credipyme-backend/internal/service"
)

// CompanyHandler handles company HTTP requests
type CompanyHandler struct {
	companyService *service.CompanyService
}

// NewCompanyHandler creates a new CompanyHandler
func NewCompanyHandler(companyService *service.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

// GetCompany handles GET /api/v1/company
// @Summary Get the authenticated user's company
// @Tags company
// @Produce json
// @Success 200 {object} domain.Company
// @Security BearerAuth
// @Router /company [get]
func (h *CompanyHandler) GetCompany(c echo.Context) error {
	companyID := middleware.GetCompanyID(c)
	if companyID == uuid.Nil {
		return NewUnauthorizedError(c, "Company required")
	}

	company, err := h.companyService.Get(companyID)
	if err != nil {
		if errors.Is(err, domain.ErrCompanyNotFound) {
			return NewNotFoundError(c, "Company not found")
		}
		log.Error().Err(err).Str("company_id", companyID.String()).Msg("Failed to get company")
		return NewInternalError(c, "Failed to get company")
	}

	return c.JSON(http.StatusOK, company)
}
