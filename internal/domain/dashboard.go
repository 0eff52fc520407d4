package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MonthCount is one month-keyed bucket of a count series ("YYYY-MM").
type MonthCount struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

// MonthValue is one month-keyed bucket of a numeric series.
type MonthValue struct {
	Month string  `json:"month"`
	Value float64 `json:"value"`
}

// MonthRevenueNetIncome is one bucket of the dual revenue/net-income series.
type MonthRevenueNetIncome struct {
	Month        string  `json:"month"`
	AvgRevenue   float64 `json:"avgRevenue"`
	AvgNetIncome float64 `json:"avgNetIncome"`
}

// DashboardSummary holds the independent headline counts.
type DashboardSummary struct {
	TotalCustomers   int64 `json:"totalCustomers"`
	TotalStudies     int64 `json:"totalStudies"`
	StudiesThisMonth int64 `json:"studiesThisMonth"`
	ActiveUsers      int64 `json:"activeUsers"`
}

// CreditSummary aggregates the requested credit lines of the current month's
// studies.
type CreditSummary struct {
	TotalRequestedThisMonth decimal.Decimal `json:"totalRequestedThisMonth"`
	AvgRequestedThisMonth   decimal.Decimal `json:"avgRequestedThisMonth"`
	AvgRequestedTerm        float64         `json:"avgRequestedTerm"`
}

// StatusCount is a group-by-count over a study status parameter.
type StatusCount struct {
	StatusID int32  `json:"statusId"`
	Label    string `json:"label"`
	Count    int64  `json:"count"`
}

// PersonTypeCount is a group-by-count over a customer person-type parameter.
type PersonTypeCount struct {
	PersonTypeID int32  `json:"personTypeId"`
	Label        string `json:"label"`
	Count        int64  `json:"count"`
}

// RecentStudy is a study reduced to its dashboard listing fields.
type RecentStudy struct {
	ID                         uuid.UUID        `json:"id"`
	CustomerName               string           `json:"customerName"`
	StudyDate                  time.Time        `json:"studyDate"`
	StatusLabel                string           `json:"statusLabel"`
	RequestedMonthlyCreditLine *decimal.Decimal `json:"requestedMonthlyCreditLine,omitempty"`
}

// BasicDashboard is available to every subscription tier.
type BasicDashboard struct {
	Summary               DashboardSummary  `json:"summary"`
	CreditSummary         CreditSummary     `json:"creditSummary"`
	StudiesByStatus       []StatusCount     `json:"studiesByStatus"`
	StudiesByMonth        []MonthCount      `json:"studiesByMonth"`
	CustomersByPersonType []PersonTypeCount `json:"customersByPersonType"`
	RecentStudies         []RecentStudy     `json:"recentStudies"`
}

// FinancialIndicators averages the engine outputs across scored studies.
type FinancialIndicators struct {
	AvgEbitda                 float64 `json:"avgEbitda"`
	AvgMonthlyPaymentCapacity float64 `json:"avgMonthlyPaymentCapacity"`
	AvgStabilityFactor        float64 `json:"avgStabilityFactor"`
	AvgMaxPaymentTime         float64 `json:"avgMaxPaymentTime"`
}

// StabilityBandCount buckets scored studies by stability factor
// (high_risk <=0.33, medium_risk <=0.66, low_risk above).
type StabilityBandCount struct {
	Band  string `json:"band"`
	Count int64  `json:"count"`
}

// TurnoverIndicators averages the working-capital cycle metrics.
type TurnoverIndicators struct {
	AccountsReceivableTurnover float64 `json:"accountsReceivableTurnover"`
	InventoryTurnover          float64 `json:"inventoryTurnover"`
	SuppliersTurnover          float64 `json:"suppliersTurnover"`
	MaximumPaymentTime         float64 `json:"maximumPaymentTime"`
}

// CustomerCredit ranks a customer by requested credit within the window.
type CustomerCredit struct {
	CustomerID   uuid.UUID       `json:"customerId"`
	BusinessName string          `json:"businessName"`
	TotalCredit  decimal.Decimal `json:"totalCredit"`
	StudiesCount int64           `json:"studiesCount"`
}

// DebtStructure averages the liability/equity structure. DebtToEquityRatio is
// nil when average equity is exactly zero.
type DebtStructure struct {
	AvgCurrentLiabilities    float64  `json:"avgCurrentLiabilities"`
	AvgNonCurrentLiabilities float64  `json:"avgNonCurrentLiabilities"`
	AvgEquity                float64  `json:"avgEquity"`
	DebtToEquityRatio        *float64 `json:"debtToEquityRatio"`
}

// DebtStructureAverages is the raw aggregate behind DebtStructure.
type DebtStructureAverages struct {
	AvgCurrentLiabilities    float64
	AvgNonCurrentLiabilities float64
	AvgEquity                float64
	AvgTotalLiabilities      float64
}

// AnalystCount is a group-by-count over the study's creating user.
type AnalystCount struct {
	AnalystID   uuid.UUID `json:"analystId"`
	AnalystName string    `json:"analystName"`
	Count       int64     `json:"count"`
}

// ActivityCount is a group-by-count over the customer economic activity.
type ActivityCount struct {
	EconomicActivityID int32  `json:"economicActivityId"`
	Label              string `json:"label"`
	Count              int64  `json:"count"`
}

// AdvancedDashboard extends BasicDashboard with the tier-gated analytics.
type AdvancedDashboard struct {
	BasicDashboard
	FinancialIndicators         FinancialIndicators     `json:"financialIndicators"`
	StabilityDistribution       []StabilityBandCount    `json:"stabilityDistribution"`
	PaymentCapacityTrend        []MonthValue            `json:"paymentCapacityTrend"`
	AvgTurnoverIndicators       TurnoverIndicators      `json:"avgTurnoverIndicators"`
	TopCustomersByCredit        []CustomerCredit        `json:"topCustomersByCredit"`
	RevenueVsNetIncome          []MonthRevenueNetIncome `json:"revenueVsNetIncome"`
	AvgDebtStructure            DebtStructure           `json:"avgDebtStructure"`
	StudiesByAnalyst            []AnalystCount          `json:"studiesByAnalyst"`
	CustomersByEconomicActivity []ActivityCount         `json:"customersByEconomicActivity"`
}

// DashboardRepository exposes the aggregate read queries behind both
// dashboards. All queries are tenant-scoped; the label/name fields of the
// returned rows are left empty for the service to resolve in batch.
type DashboardRepository interface {
	CountCustomers(companyID uuid.UUID) (int64, error)
	CountStudies(companyID uuid.UUID) (int64, error)
	CountStudiesCreatedBetween(companyID uuid.UUID, from, to time.Time) (int64, error)
	CreditSummaryBetween(companyID uuid.UUID, from, to time.Time) (*CreditSummary, error)
	StudiesByStatus(companyID uuid.UUID) ([]StatusCount, error)
	StudiesByMonth(companyID uuid.UUID, since time.Time) ([]MonthCount, error)
	CustomersByPersonType(companyID uuid.UUID) ([]PersonTypeCount, error)
	RecentStudies(companyID uuid.UUID, limit int32) ([]RecentStudy, error)

	AvgFinancialIndicators(companyID uuid.UUID, from, to time.Time) (*FinancialIndicators, error)
	StabilityDistribution(companyID uuid.UUID, from, to time.Time) ([]StabilityBandCount, error)
	PaymentCapacityTrend(companyID uuid.UUID, from, to time.Time) ([]MonthValue, error)
	AvgTurnoverIndicators(companyID uuid.UUID, from, to time.Time) (*TurnoverIndicators, error)
	TopCustomersByCredit(companyID uuid.UUID, limit int32, from, to time.Time) ([]CustomerCredit, error)
	RevenueVsNetIncome(companyID uuid.UUID, from, to time.Time) ([]MonthRevenueNetIncome, error)
	AvgDebtStructure(companyID uuid.UUID, from, to time.Time) (*DebtStructureAverages, error)
	StudiesByAnalyst(companyID uuid.UUID, from, to time.Time) ([]AnalystCount, error)
	CustomersByEconomicActivity(companyID uuid.UUID) ([]ActivityCount, error)
}
