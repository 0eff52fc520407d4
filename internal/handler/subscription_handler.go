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

// SubscriptionHandler handles subscription HTTP requests
type SubscriptionHandler struct {
	subscriptionService *service.SubscriptionService
}

// NewSubscriptionHandler creates a new SubscriptionHandler
func NewSubscriptionHandler(subscriptionService *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService}
}

// CurrentSubscriptionResponse pairs the current subscription with its
// resolved dashboard tier so the frontend can gate views without a second call
type CurrentSubscriptionResponse struct {
	Subscription   *domain.CompanySubscription `json:"subscription"`
	DashboardLevel domain.DashboardLevel       `json:"dashboardLevel"`
}

// GetCurrent handles GET /api/v1/subscriptions/current
func (h *SubscriptionHandler) GetCurrent(c echo.Context) error {
	companyID := middleware.GetCompanyID(c)
	if companyID == uuid.Nil {
		return NewUnauthorizedError(c, "Company required")
	}

	subscription, err := h.subscriptionService.GetCurrent(companyID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return NewNotFoundError(c, "No current subscription")
		}
		if errors.Is(err, domain.ErrCompanyNotFound) {
			return NewNotFoundError(c, "Company not found")
		}
		log.Error().Err(err).Str("company_id", companyID.String()).Msg("Failed to get current subscription")
		return NewInternalError(c, "Failed to get subscription")
	}

	level, err := h.subscriptionService.CurrentDashboardLevel(companyID)
	if err != nil {
		log.Error().Err(err).Str("company_id", companyID.String()).Msg("Failed to resolve dashboard level")
		return NewInternalError(c, "Failed to get subscription")
	}

	return c.JSON(http.StatusOK, CurrentSubscriptionResponse{
		Subscription:   subscription,
		DashboardLevel: level,
	})
}

// GetPlans handles GET /api/v1/subscriptions/plans
func (h *SubscriptionHandler) GetPlans(c echo.Context) error {
	plans, err := h.subscriptionService.GetPlans()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list subscription plans")
		return NewInternalError(c, "Failed to list plans")
	}

	return c.JSON(http.StatusOK, plans)
}
