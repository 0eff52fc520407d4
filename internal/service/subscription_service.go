package service

import (
	"github.com/credipyme/credipyme-backend/internal/domain"
	"github.com/google/uuid"
)

// SubscriptionService exposes the company's current subscription and the plan
// catalog. Billing is handled elsewhere; this side only reads.
type SubscriptionService struct {
	repo      domain.SubscriptionRepository
	companies domain.CompanyRepository
}

// NewSubscriptionService creates a new SubscriptionService
func NewSubscriptionService(repo domain.SubscriptionRepository, companies domain.CompanyRepository) *SubscriptionService {
	return &SubscriptionService{repo: repo, companies: companies}
}

// GetCurrent returns the company's current subscription. A company with no
// subscription row yields ErrNotFound; an unknown company yields
// ErrCompanyNotFound so callers can tell the two apart.
func (s *SubscriptionService) GetCurrent(companyID uuid.UUID) (*domain.CompanySubscription, error) {
	sub, err := s.repo.GetCurrent(companyID)
	if err == domain.ErrNotFound {
		exists, existsErr := s.companies.Exists(companyID)
		if existsErr != nil {
			return nil, existsErr
		}
		if !exists {
			return nil, domain.ErrCompanyNotFound
		}
	}
	return sub, err
}

// GetPlans lists the active plans.
func (s *SubscriptionService) GetPlans() ([]*domain.SubscriptionPlan, error) {
	return s.repo.GetPlans()
}

// CurrentDashboardLevel resolves the company's dashboard tier.
func (s *SubscriptionService) CurrentDashboardLevel(companyID uuid.UUID) (domain.DashboardLevel, error) {
	return s.repo.CurrentDashboardLevel(companyID)
}
