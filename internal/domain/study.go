package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreditStudy is one financial-health assessment of a customer at a point in
// time. The statement fields are captured as reported and may all be absent;
// the score fields are written exactly once per perform invocation
// (recomputation overwrites, never accumulates).
type CreditStudy struct {
	ID         uuid.UUID  `json:"id"`
	CompanyID  uuid.UUID  `json:"companyId"`
	CustomerID uuid.UUID  `json:"customerId"`
	StatusID   int32      `json:"statusId"`
	StudyDate  time.Time  `json:"studyDate"`
	Notes      *string    `json:"notes,omitempty"`
	CreatedBy  uuid.UUID  `json:"createdBy"`
	UpdatedBy  uuid.UUID  `json:"updatedBy"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`

	// Request
	RequestedTerm              *int32           `json:"requestedTerm,omitempty"`
	RequestedMonthlyCreditLine *decimal.Decimal `json:"requestedMonthlyCreditLine,omitempty"`
	IncomeStatementID          *int32           `json:"incomeStatementId,omitempty"`

	// Balance sheet
	TotalCurrentAssets    *float64 `json:"totalCurrentAssets,omitempty"`
	TotalNonCurrentAssets *float64 `json:"totalNonCurrentAssets,omitempty"`
	TotalAssets           *float64 `json:"totalAssets,omitempty"`
	FixedAssetsProperty   *float64 `json:"fixedAssetsProperty,omitempty"`
	CashAndEquivalents    *float64 `json:"cashAndEquivalents,omitempty"`
	AccountsReceivable1   *float64 `json:"accountsReceivable1,omitempty"`
	AccountsReceivable2   *float64 `json:"accountsReceivable2,omitempty"`
	Inventories1          *float64 `json:"inventories1,omitempty"`
	Inventories2          *float64 `json:"inventories2,omitempty"`

	// Liabilities and equity
	TotalCurrentLiabilities       *float64 `json:"totalCurrentLiabilities,omitempty"`
	TotalNonCurrentLiabilities    *float64 `json:"totalNonCurrentLiabilities,omitempty"`
	TotalLiabilities              *float64 `json:"totalLiabilities,omitempty"`
	ShortTermFinancialLiabilities *float64 `json:"shortTermFinancialLiabilities,omitempty"`
	LongTermFinancialLiabilities  *float64 `json:"longTermFinancialLiabilities,omitempty"`
	Suppliers1                    *float64 `json:"suppliers1,omitempty"`
	Suppliers2                    *float64 `json:"suppliers2,omitempty"`
	RetainedEarnings              *float64 `json:"retainedEarnings,omitempty"`
	Equity                        *float64 `json:"equity,omitempty"`

	// Income statement
	OrdinaryActivityRevenue  *float64 `json:"ordinaryActivityRevenue,omitempty"`
	CostOfSales              *float64 `json:"costOfSales,omitempty"`
	GrossProfit              *float64 `json:"grossProfit,omitempty"`
	AdministrativeExpenses   *float64 `json:"administrativeExpenses,omitempty"`
	SellingExpenses          *float64 `json:"sellingExpenses,omitempty"`
	DepreciationAmortization *float64 `json:"depreciationAmortization,omitempty"`
	FinancialExpenses        *float64 `json:"financialExpenses,omitempty"`
	Taxes                    *float64 `json:"taxes,omitempty"`
	NetIncome                *float64 `json:"netIncome,omitempty"`

	// Score (populated by perform)
	Ebitda                     *float64   `json:"ebitda,omitempty"`
	AdjustedEbitda             *float64   `json:"adjustedEbitda,omitempty"`
	StabilityFactor            *float64   `json:"stabilityFactor,omitempty"`
	CurrentDebtService         *float64   `json:"currentDebtService,omitempty"`
	AnnualPaymentCapacity      *float64   `json:"annualPaymentCapacity,omitempty"`
	MonthlyPaymentCapacity     *float64   `json:"monthlyPaymentCapacity,omitempty"`
	AveragePaymentTime         *float64   `json:"averagePaymentTime,omitempty"`
	AccountsReceivableTurnover *float64   `json:"accountsReceivableTurnover,omitempty"`
	InventoryTurnover          *float64   `json:"inventoryTurnover,omitempty"`
	SuppliersTurnover          *float64   `json:"suppliersTurnover,omitempty"`
	MaximumPaymentTime         *float64   `json:"maximumPaymentTime,omitempty"`
	ResolutionDate             *time.Time `json:"resolutionDate,omitempty"`
}

type StudyFilters struct {
	CustomerID    *uuid.UUID
	StatusID      *int32
	StudyDateFrom *time.Time
	StudyDateTo   *time.Time
	Search        string
	Page          int32
	PageSize      int32
}

type PaginatedStudies struct {
	Data       []*CreditStudy `json:"data"`
	Page       int32          `json:"page"`
	PageSize   int32          `json:"pageSize"`
	TotalItems int64          `json:"totalItems"`
	TotalPages int32          `json:"totalPages"`
}

// StudyScore is the result of a perform invocation, persisted back onto the
// study row. Non-finite turnover values are stored as NULL.
type StudyScore struct {
	Ebitda                     float64
	AdjustedEbitda             float64
	StabilityFactor            float64
	CurrentDebtService         float64
	AnnualPaymentCapacity      float64
	MonthlyPaymentCapacity     float64
	AveragePaymentTime         float64
	AccountsReceivableTurnover float64
	InventoryTurnover          float64
	SuppliersTurnover          float64
	MaximumPaymentTime         float64
	StatusID                   int32
	ResolutionDate             time.Time
	UpdatedBy                  uuid.UUID
}

type StudyRepository interface {
	Create(study *CreditStudy) (*CreditStudy, error)
	GetByID(companyID, id uuid.UUID) (*CreditStudy, error)
	GetByCompany(companyID uuid.UUID, filters *StudyFilters) (*PaginatedStudies, error)
	Update(study *CreditStudy) (*CreditStudy, error)
	Delete(companyID, id uuid.UUID) error
	// SaveScore persists the score fields for the study in a single update.
	// Concurrent performs on the same study are last-write-wins.
	SaveScore(companyID, id uuid.UUID, score *StudyScore) (*CreditStudy, error)
}
