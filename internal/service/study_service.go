package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/credipyme/credipyme-backend/internal/domain"
	"github.com/credipyme/credipyme-backend/internal/scoring"
	"github.com/credipyme/credipyme-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// StudyService handles the credit-study lifecycle, including the perform
// operation that runs the scoring engine and persists its result.
type StudyService struct {
	repo      domain.StudyRepository
	customers domain.CustomerRepository
	params    domain.ParameterRepository
	publisher websocket.EventPublisher
	nowFn     func() time.Time
}

// NewStudyService creates a new StudyService
func NewStudyService(
	repo domain.StudyRepository,
	customers domain.CustomerRepository,
	params domain.ParameterRepository,
	publisher websocket.EventPublisher,
) *StudyService {
	if publisher == nil {
		publisher = &websocket.NoOpPublisher{}
	}
	return &StudyService{
		repo:      repo,
		customers: customers,
		params:    params,
		publisher: publisher,
		nowFn:     time.Now,
	}
}

// WithNow overrides the clock used for resolution dates. Tests use it.
func (s *StudyService) WithNow(nowFn func() time.Time) *StudyService {
	s.nowFn = nowFn
	return s
}

// Create validates tenant ownership of the customer and persists the study.
func (s *StudyService) Create(study *domain.CreditStudy) (*domain.CreditStudy, error) {
	belongs, err := s.customers.BelongsToCompany(study.CustomerID, study.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("checking customer ownership: %w", err)
	}
	if !belongs {
		return nil, domain.ErrCustomerNotInCompany
	}

	created, err := s.repo.Create(study)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(created.CompanyID, websocket.StudyCreated(created))
	return created, nil
}

// GetByID retrieves a study within a company.
func (s *StudyService) GetByID(companyID, id uuid.UUID) (*domain.CreditStudy, error) {
	return s.repo.GetByID(companyID, id)
}

// List returns a filtered, paginated page of a company's studies.
func (s *StudyService) List(companyID uuid.UUID, filters *domain.StudyFilters) (*domain.PaginatedStudies, error) {
	if filters == nil {
		filters = &domain.StudyFilters{}
	}
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 1 {
		filters.PageSize = domain.DefaultPageSize
	}
	if filters.PageSize > domain.MaxPageSize {
		filters.PageSize = domain.MaxPageSize
	}
	return s.repo.GetByCompany(companyID, filters)
}

// Update applies changes to a study, re-validating customer ownership when
// the customer is being switched.
func (s *StudyService) Update(study *domain.CreditStudy) (*domain.CreditStudy, error) {
	current, err := s.repo.GetByID(study.CompanyID, study.ID)
	if err != nil {
		return nil, err
	}

	if study.CustomerID != current.CustomerID {
		belongs, err := s.customers.BelongsToCompany(study.CustomerID, study.CompanyID)
		if err != nil {
			return nil, fmt.Errorf("checking customer ownership: %w", err)
		}
		if !belongs {
			return nil, domain.ErrCustomerNotInCompany
		}
	}

	return s.repo.Update(study)
}

// Delete removes a study after confirming it exists in the company.
func (s *StudyService) Delete(companyID, id uuid.UUID) error {
	if _, err := s.repo.GetByID(companyID, id); err != nil {
		return err
	}
	return s.repo.Delete(companyID, id)
}

// Perform runs the scoring engine over the study's statement fields and
// persists the result. Recomputation overwrites the previous score; concurrent
// performs on the same study are last-write-wins.
func (s *StudyService) Perform(companyID, id, userID uuid.UUID) (*domain.CreditStudy, error) {
	study, err := s.repo.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}

	periodLabel := ""
	if study.IncomeStatementID != nil {
		period, err := s.params.GetByID(*study.IncomeStatementID)
		switch {
		case err == nil:
			periodLabel = period.Label
		case errors.Is(err, domain.ErrParameterNotFound):
			// unknown period falls back to annual
		default:
			return nil, fmt.Errorf("resolving income-statement period: %w", err)
		}
	}

	result := scoring.Compute(inputsFromStudy(study), scoring.PeriodMonths(periodLabel))
	if len(result.DegradedDivisors) > 0 {
		log.Warn().
			Str("study_id", id.String()).
			Strs("degraded_divisors", result.DegradedDivisors).
			Msg("Score computed against defaulted divisors")
	}

	status, err := s.params.FindByCode(domain.ParameterCodeStudyCompleted)
	if err != nil {
		if errors.Is(err, domain.ErrParameterNotFound) {
			return nil, domain.ErrStatusParameterMissing
		}
		return nil, fmt.Errorf("resolving completed status: %w", err)
	}

	score := &domain.StudyScore{
		Ebitda:                     result.Ebitda,
		AdjustedEbitda:             result.AdjustedEbitda,
		StabilityFactor:            result.StabilityFactor,
		CurrentDebtService:         result.CurrentDebtService,
		AnnualPaymentCapacity:      result.AnnualPaymentCapacity,
		MonthlyPaymentCapacity:     result.MonthlyPaymentCapacity,
		AveragePaymentTime:         result.AveragePaymentTime,
		AccountsReceivableTurnover: result.AccountsReceivableTurnover,
		InventoryTurnover:          result.InventoryTurnover,
		SuppliersTurnover:          result.SuppliersTurnover,
		MaximumPaymentTime:         result.MaximumPaymentTime,
		StatusID:                   status.ID,
		ResolutionDate:             s.nowFn(),
		UpdatedBy:                  userID,
	}

	updated, err := s.repo.SaveScore(companyID, id, score)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(companyID, websocket.StudyScored(updated))
	return updated, nil
}

// inputsFromStudy maps the study's nullable statement fields onto the engine
// input set. This is the single place absent-vs-zero is decided.
func inputsFromStudy(study *domain.CreditStudy) scoring.Inputs {
	return scoring.Inputs{
		TotalCurrentAssets:            study.TotalCurrentAssets,
		TotalAssets:                   study.TotalAssets,
		AccountsReceivable1:           study.AccountsReceivable1,
		AccountsReceivable2:           study.AccountsReceivable2,
		Inventories1:                  study.Inventories1,
		Inventories2:                  study.Inventories2,
		TotalCurrentLiabilities:       study.TotalCurrentLiabilities,
		TotalLiabilities:              study.TotalLiabilities,
		ShortTermFinancialLiabilities: study.ShortTermFinancialLiabilities,
		Suppliers1:                    study.Suppliers1,
		Suppliers2:                    study.Suppliers2,
		RetainedEarnings:              study.RetainedEarnings,
		Equity:                        study.Equity,
		OrdinaryActivityRevenue:       study.OrdinaryActivityRevenue,
		CostOfSales:                   study.CostOfSales,
		GrossProfit:                   study.GrossProfit,
		AdministrativeExpenses:        study.AdministrativeExpenses,
		SellingExpenses:               study.SellingExpenses,
		DepreciationAmortization:      study.DepreciationAmortization,
		FinancialExpenses:             study.FinancialExpenses,
	}
}
