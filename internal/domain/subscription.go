package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DashboardLevel is the analytics tier granted by a subscription plan.
type DashboardLevel string

const (
	DashboardLevelBasic    DashboardLevel = "basic"
	DashboardLevelAdvanced DashboardLevel = "advanced"
	DashboardLevelPremium  DashboardLevel = "premium"
)

// GrantsAdvanced reports whether the level unlocks the advanced dashboard.
func (l DashboardLevel) GrantsAdvanced() bool {
	return l == DashboardLevelAdvanced || l == DashboardLevelPremium
}

// SubscriptionPlan is a sellable plan. DashboardLevelID points at a
// nivelDashboard parameter.
type SubscriptionPlan struct {
	ID               uuid.UUID       `json:"id"`
	Name             string          `json:"name"`
	Price            decimal.Decimal `json:"price"`
	DashboardLevelID *int32          `json:"dashboardLevelId,omitempty"`
	IsActive         bool            `json:"isActive"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// CompanySubscription binds a company to a plan. The store guarantees at most
// one row per company has IsCurrent set.
type CompanySubscription struct {
	ID             uuid.UUID  `json:"id"`
	CompanyID      uuid.UUID  `json:"companyId"`
	SubscriptionID uuid.UUID  `json:"subscriptionId"`
	IsCurrent      bool       `json:"isCurrent"`
	StartDate      time.Time  `json:"startDate"`
	EndDate        *time.Time `json:"endDate,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

type SubscriptionRepository interface {
	// CurrentDashboardLevel resolves the dashboard-level code of the
	// company's current subscription. ErrCompanyNotFound when the company
	// does not exist; an empty level when the company has no current
	// subscription or its plan carries no dashboard level.
	CurrentDashboardLevel(companyID uuid.UUID) (DashboardLevel, error)
	GetCurrent(companyID uuid.UUID) (*CompanySubscription, error)
	GetPlans() ([]*SubscriptionPlan, error)
}
