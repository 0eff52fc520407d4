package testutil

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/credipyme/credipyme-backend/internal/domain"
)

// MockCompanyRepository is a mock implementation of domain.CompanyRepository
type MockCompanyRepository struct {
	Companies map[uuid.UUID]*domain.Company
}

// NewMockCompanyRepository creates a new MockCompanyRepository
func NewMockCompanyRepository() *MockCompanyRepository {
	return &MockCompanyRepository{
		Companies: make(map[uuid.UUID]*domain.Company),
	}
}

// GetByID retrieves a company by ID
func (m *MockCompanyRepository) GetByID(id uuid.UUID) (*domain.Company, error) {
	if company, ok := m.Companies[id]; ok {
		return company, nil
	}
	return nil, domain.ErrCompanyNotFound
}

// Exists reports whether a company exists
func (m *MockCompanyRepository) Exists(id uuid.UUID) (bool, error) {
	_, ok := m.Companies[id]
	return ok, nil
}

// AddCompany adds a company to the mock repository (helper for tests)
func (m *MockCompanyRepository) AddCompany(company *domain.Company) {
	m.Companies[company.ID] = company
}

// MockUserCompanyRepository is a mock implementation of domain.UserCompanyRepository
type MockUserCompanyRepository struct {
	ByAuthID      map[string]*domain.UserCompany
	ActiveCounts  map[uuid.UUID]int64
	GetCompanyFn  func(authID string) (uuid.UUID, uuid.UUID, error)
	CountActiveFn func(companyID uuid.UUID) (int64, error)
}

// NewMockUserCompanyRepository creates a new MockUserCompanyRepository
func NewMockUserCompanyRepository() *MockUserCompanyRepository {
	return &MockUserCompanyRepository{
		ByAuthID:     make(map[string]*domain.UserCompany),
		ActiveCounts: make(map[uuid.UUID]int64),
	}
}

// GetCompanyByAuthID resolves the company and user for an auth subject
func (m *MockUserCompanyRepository) GetCompanyByAuthID(authID string) (uuid.UUID, uuid.UUID, error) {
	if m.GetCompanyFn != nil {
		return m.GetCompanyFn(authID)
	}
	if uc, ok := m.ByAuthID[authID]; ok {
		return uc.CompanyID, uc.UserID, nil
	}
	return uuid.Nil, uuid.Nil, domain.ErrCompanyNotFound
}

// CountActive returns the number of active memberships for a company
func (m *MockUserCompanyRepository) CountActive(companyID uuid.UUID) (int64, error) {
	if m.CountActiveFn != nil {
		return m.CountActiveFn(companyID)
	}
	return m.ActiveCounts[companyID], nil
}

// AddMembership links an auth subject to a company (helper for tests)
func (m *MockUserCompanyRepository) AddMembership(authID string, uc *domain.UserCompany) {
	m.ByAuthID[authID] = uc
	if uc.IsActive {
		m.ActiveCounts[uc.CompanyID]++
	}
}

// MockCustomerRepository is a mock implementation of domain.CustomerRepository
type MockCustomerRepository struct {
	Customers      map[uuid.UUID]*domain.Customer
	ByCompany      map[uuid.UUID][]*domain.Customer
	CreateFn       func(customer *domain.Customer) (*domain.Customer, error)
	GetByIDFn      func(companyID, id uuid.UUID) (*domain.Customer, error)
	GetByCompanyFn func(companyID uuid.UUID, filters *domain.CustomerFilters) (*domain.PaginatedCustomers, error)
	UpdateFn       func(customer *domain.Customer) (*domain.Customer, error)
	DeleteFn       func(companyID, id uuid.UUID) error
	AutocompleteFn func(companyID uuid.UUID, query string, limit int32) ([]*domain.Customer, error)
}

// NewMockCustomerRepository creates a new MockCustomerRepository
func NewMockCustomerRepository() *MockCustomerRepository {
	return &MockCustomerRepository{
		Customers: make(map[uuid.UUID]*domain.Customer),
		ByCompany: make(map[uuid.UUID][]*domain.Customer),
	}
}

// Create creates a new customer
func (m *MockCustomerRepository) Create(customer *domain.Customer) (*domain.Customer, error) {
	if m.CreateFn != nil {
		return m.CreateFn(customer)
	}
	customer.ID = uuid.New()
	m.Customers[customer.ID] = customer
	m.ByCompany[customer.CompanyID] = append(m.ByCompany[customer.CompanyID], customer)
	return customer, nil
}

// GetByID retrieves a customer by its ID within a company
func (m *MockCustomerRepository) GetByID(companyID, id uuid.UUID) (*domain.Customer, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(companyID, id)
	}
	customer, ok := m.Customers[id]
	if !ok || customer.CompanyID != companyID {
		return nil, domain.ErrCustomerNotFound
	}
	return customer, nil
}

// GetByCompany retrieves customers for a company with filters and pagination
func (m *MockCustomerRepository) GetByCompany(companyID uuid.UUID, filters *domain.CustomerFilters) (*domain.PaginatedCustomers, error) {
	if m.GetByCompanyFn != nil {
		return m.GetByCompanyFn(companyID, filters)
	}
	customers := m.ByCompany[companyID]

	var filtered []*domain.Customer
	for _, c := range customers {
		if filters != nil {
			if filters.PersonTypeID != nil && (c.PersonTypeID == nil || *c.PersonTypeID != *filters.PersonTypeID) {
				continue
			}
			if filters.EconomicActivityID != nil && (c.EconomicActivityID == nil || *c.EconomicActivityID != *filters.EconomicActivityID) {
				continue
			}
			if filters.Search != "" {
				q := strings.ToLower(filters.Search)
				if !strings.Contains(strings.ToLower(c.BusinessName), q) &&
					!strings.Contains(strings.ToLower(c.IdentificationNumber), q) {
					continue
				}
			}
		}
		filtered = append(filtered, c)
	}
	if filtered == nil {
		filtered = []*domain.Customer{}
	}

	page, pageSize := paginationOf(filters)
	pageItems, totalItems, totalPages := paginateCustomers(filtered, page, pageSize)

	return &domain.PaginatedCustomers{
		Data:       pageItems,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}, nil
}

func paginationOf(filters *domain.CustomerFilters) (int32, int32) {
	page := int32(1)
	pageSize := int32(domain.DefaultPageSize)
	if filters != nil {
		if filters.Page > 0 {
			page = filters.Page
		}
		if filters.PageSize > 0 {
			pageSize = filters.PageSize
		}
	}
	return page, pageSize
}

func paginateCustomers(items []*domain.Customer, page, pageSize int32) ([]*domain.Customer, int64, int32) {
	totalItems := int64(len(items))
	totalPages := int32(totalItems / int64(pageSize))
	if totalItems%int64(pageSize) > 0 {
		totalPages++
	}
	start := (page - 1) * pageSize
	end := start + pageSize
	if start >= int32(len(items)) {
		return []*domain.Customer{}, totalItems, totalPages
	}
	if end > int32(len(items)) {
		end = int32(len(items))
	}
	return items[start:end], totalItems, totalPages
}

// Update updates a customer
func (m *MockCustomerRepository) Update(customer *domain.Customer) (*domain.Customer, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(customer)
	}
	existing, ok := m.Customers[customer.ID]
	if !ok || existing.CompanyID != customer.CompanyID {
		return nil, domain.ErrCustomerNotFound
	}
	m.Customers[customer.ID] = customer
	return customer, nil
}

// Delete removes a customer
func (m *MockCustomerRepository) Delete(companyID, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(companyID, id)
	}
	customer, ok := m.Customers[id]
	if !ok || customer.CompanyID != companyID {
		return domain.ErrCustomerNotFound
	}
	delete(m.Customers, id)
	customers := m.ByCompany[companyID]
	for i, c := range customers {
		if c.ID == id {
			m.ByCompany[companyID] = append(customers[:i], customers[i+1:]...)
			break
		}
	}
	return nil
}

// Autocomplete searches customers by name or identification number
func (m *MockCustomerRepository) Autocomplete(companyID uuid.UUID, query string, limit int32) ([]*domain.Customer, error) {
	if m.AutocompleteFn != nil {
		return m.AutocompleteFn(companyID, query, limit)
	}
	q := strings.ToLower(query)
	var matches []*domain.Customer
	for _, c := range m.ByCompany[companyID] {
		if strings.Contains(strings.ToLower(c.BusinessName), q) ||
			strings.Contains(strings.ToLower(c.IdentificationNumber), q) {
			matches = append(matches, c)
			if int32(len(matches)) >= limit {
				break
			}
		}
	}
	if matches == nil {
		matches = []*domain.Customer{}
	}
	return matches, nil
}

// BelongsToCompany reports whether the customer is scoped to the company
func (m *MockCustomerRepository) BelongsToCompany(customerID, companyID uuid.UUID) (bool, error) {
	customer, ok := m.Customers[customerID]
	return ok && customer.CompanyID == companyID, nil
}

// AddCustomer adds a customer to the mock repository (helper for tests)
func (m *MockCustomerRepository) AddCustomer(customer *domain.Customer) {
	m.Customers[customer.ID] = customer
	m.ByCompany[customer.CompanyID] = append(m.ByCompany[customer.CompanyID], customer)
}

// MockStudyRepository is a mock implementation of domain.StudyRepository
type MockStudyRepository struct {
	Studies        map[uuid.UUID]*domain.CreditStudy
	ByCompany      map[uuid.UUID][]*domain.CreditStudy
	SavedScores    map[uuid.UUID]*domain.StudyScore
	CreateFn       func(study *domain.CreditStudy) (*domain.CreditStudy, error)
	GetByIDFn      func(companyID, id uuid.UUID) (*domain.CreditStudy, error)
	GetByCompanyFn func(companyID uuid.UUID, filters *domain.StudyFilters) (*domain.PaginatedStudies, error)
	UpdateFn       func(study *domain.CreditStudy) (*domain.CreditStudy, error)
	DeleteFn       func(companyID, id uuid.UUID) error
	SaveScoreFn    func(companyID, id uuid.UUID, score *domain.StudyScore) (*domain.CreditStudy, error)
}

// NewMockStudyRepository creates a new MockStudyRepository
func NewMockStudyRepository() *MockStudyRepository {
	return &MockStudyRepository{
		Studies:     make(map[uuid.UUID]*domain.CreditStudy),
		ByCompany:   make(map[uuid.UUID][]*domain.CreditStudy),
		SavedScores: make(map[uuid.UUID]*domain.StudyScore),
	}
}

// Create creates a new study
func (m *MockStudyRepository) Create(study *domain.CreditStudy) (*domain.CreditStudy, error) {
	if m.CreateFn != nil {
		return m.CreateFn(study)
	}
	study.ID = uuid.New()
	study.CreatedAt = time.Now()
	study.UpdatedAt = study.CreatedAt
	m.Studies[study.ID] = study
	m.ByCompany[study.CompanyID] = append(m.ByCompany[study.CompanyID], study)
	return study, nil
}

// GetByID retrieves a study by its ID within a company
func (m *MockStudyRepository) GetByID(companyID, id uuid.UUID) (*domain.CreditStudy, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(companyID, id)
	}
	study, ok := m.Studies[id]
	if !ok || study.CompanyID != companyID {
		return nil, domain.ErrStudyNotFound
	}
	return study, nil
}

// GetByCompany retrieves studies for a company with filters and pagination
func (m *MockStudyRepository) GetByCompany(companyID uuid.UUID, filters *domain.StudyFilters) (*domain.PaginatedStudies, error) {
	if m.GetByCompanyFn != nil {
		return m.GetByCompanyFn(companyID, filters)
	}
	studies := m.ByCompany[companyID]

	var filtered []*domain.CreditStudy
	for _, s := range studies {
		if filters != nil {
			if filters.CustomerID != nil && s.CustomerID != *filters.CustomerID {
				continue
			}
			if filters.StatusID != nil && s.StatusID != *filters.StatusID {
				continue
			}
			if filters.StudyDateFrom != nil && s.StudyDate.Before(*filters.StudyDateFrom) {
				continue
			}
			if filters.StudyDateTo != nil && s.StudyDate.After(*filters.StudyDateTo) {
				continue
			}
		}
		filtered = append(filtered, s)
	}
	if filtered == nil {
		filtered = []*domain.CreditStudy{}
	}

	page := int32(1)
	pageSize := int32(domain.DefaultPageSize)
	if filters != nil {
		if filters.Page > 0 {
			page = filters.Page
		}
		if filters.PageSize > 0 {
			pageSize = filters.PageSize
		}
	}

	totalItems := int64(len(filtered))
	totalPages := int32(totalItems / int64(pageSize))
	if totalItems%int64(pageSize) > 0 {
		totalPages++
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start >= int32(len(filtered)) {
		filtered = []*domain.CreditStudy{}
	} else {
		if end > int32(len(filtered)) {
			end = int32(len(filtered))
		}
		filtered = filtered[start:end]
	}

	return &domain.PaginatedStudies{
		Data:       filtered,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}, nil
}

// Update updates a study
func (m *MockStudyRepository) Update(study *domain.CreditStudy) (*domain.CreditStudy, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(study)
	}
	existing, ok := m.Studies[study.ID]
	if !ok || existing.CompanyID != study.CompanyID {
		return nil, domain.ErrStudyNotFound
	}
	study.UpdatedAt = time.Now()
	m.Studies[study.ID] = study
	return study, nil
}

// Delete removes a study
func (m *MockStudyRepository) Delete(companyID, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(companyID, id)
	}
	study, ok := m.Studies[id]
	if !ok || study.CompanyID != companyID {
		return domain.ErrStudyNotFound
	}
	delete(m.Studies, id)
	studies := m.ByCompany[companyID]
	for i, s := range studies {
		if s.ID == id {
			m.ByCompany[companyID] = append(studies[:i], studies[i+1:]...)
			break
		}
	}
	return nil
}

// SaveScore persists the score fields onto the study
func (m *MockStudyRepository) SaveScore(companyID, id uuid.UUID, score *domain.StudyScore) (*domain.CreditStudy, error) {
	if m.SaveScoreFn != nil {
		return m.SaveScoreFn(companyID, id, score)
	}
	study, ok := m.Studies[id]
	if !ok || study.CompanyID != companyID {
		return nil, domain.ErrStudyNotFound
	}
	m.SavedScores[id] = score
	study.Ebitda = f64ptr(score.Ebitda)
	study.AdjustedEbitda = f64ptr(score.AdjustedEbitda)
	study.StabilityFactor = f64ptr(score.StabilityFactor)
	study.CurrentDebtService = f64ptr(score.CurrentDebtService)
	study.AnnualPaymentCapacity = f64ptr(score.AnnualPaymentCapacity)
	study.MonthlyPaymentCapacity = f64ptr(score.MonthlyPaymentCapacity)
	study.AveragePaymentTime = f64ptr(score.AveragePaymentTime)
	study.AccountsReceivableTurnover = f64ptr(score.AccountsReceivableTurnover)
	study.InventoryTurnover = f64ptr(score.InventoryTurnover)
	study.SuppliersTurnover = f64ptr(score.SuppliersTurnover)
	study.MaximumPaymentTime = f64ptr(score.MaximumPaymentTime)
	study.StatusID = score.StatusID
	study.ResolutionDate = &score.ResolutionDate
	study.UpdatedBy = score.UpdatedBy
	study.UpdatedAt = time.Now()
	return study, nil
}

func f64ptr(v float64) *float64 {
	return &v
}

// AddStudy adds a study to the mock repository (helper for tests)
func (m *MockStudyRepository) AddStudy(study *domain.CreditStudy) {
	m.Studies[study.ID] = study
	m.ByCompany[study.CompanyID] = append(m.ByCompany[study.CompanyID], study)
}

// MockParameterRepository is a mock implementation of domain.ParameterRepository
type MockParameterRepository struct {
	Parameters   map[int32]*domain.Parameter
	ByCode       map[string]*domain.Parameter
	ByTypeCode   map[string]*domain.Parameter
	FindByCodeFn func(code string) (*domain.Parameter, error)
}

// NewMockParameterRepository creates a new MockParameterRepository
func NewMockParameterRepository() *MockParameterRepository {
	return &MockParameterRepository{
		Parameters: make(map[int32]*domain.Parameter),
		ByCode:     make(map[string]*domain.Parameter),
		ByTypeCode: make(map[string]*domain.Parameter),
	}
}

func typeCodeKey(paramType, code string) string {
	return fmt.Sprintf("%s:%s", paramType, code)
}

// GetByID retrieves a parameter by ID
func (m *MockParameterRepository) GetByID(id int32) (*domain.Parameter, error) {
	if p, ok := m.Parameters[id]; ok {
		return p, nil
	}
	return nil, domain.ErrParameterNotFound
}

// FindByCode retrieves a parameter by code
func (m *MockParameterRepository) FindByCode(code string) (*domain.Parameter, error) {
	if m.FindByCodeFn != nil {
		return m.FindByCodeFn(code)
	}
	if p, ok := m.ByCode[code]; ok {
		return p, nil
	}
	return nil, domain.ErrParameterNotFound
}

// FindByTypeAndCode retrieves a parameter by (type, code)
func (m *MockParameterRepository) FindByTypeAndCode(paramType, code string) (*domain.Parameter, error) {
	if p, ok := m.ByTypeCode[typeCodeKey(paramType, code)]; ok {
		return p, nil
	}
	return nil, domain.ErrParameterNotFound
}

// GetAll retrieves parameters matching the filters
func (m *MockParameterRepository) GetAll(filters *domain.ParameterFilters) ([]*domain.Parameter, error) {
	var result []*domain.Parameter
	for _, p := range m.Parameters {
		if filters != nil {
			if filters.Type != "" && p.Type != filters.Type {
				continue
			}
			if filters.OnlyActive && !p.IsActive {
				continue
			}
			if filters.Search != "" && !strings.Contains(strings.ToLower(p.Label), strings.ToLower(filters.Search)) {
				continue
			}
		}
		result = append(result, p)
	}
	if result == nil {
		result = []*domain.Parameter{}
	}
	return result, nil
}

// LabelsFor resolves labels for a batch of parameter ids
func (m *MockParameterRepository) LabelsFor(ids []int32) (map[int32]string, error) {
	labels := make(map[int32]string, len(ids))
	for _, id := range ids {
		if p, ok := m.Parameters[id]; ok {
			labels[id] = p.Label
		}
	}
	return labels, nil
}

// AddParameter adds a parameter to the mock repository (helper for tests)
func (m *MockParameterRepository) AddParameter(p *domain.Parameter) {
	m.Parameters[p.ID] = p
	m.ByCode[p.Code] = p
	m.ByTypeCode[typeCodeKey(p.Type, p.Code)] = p
}

// MockProfileRepository is a mock implementation of domain.ProfileRepository
type MockProfileRepository struct {
	Profiles map[uuid.UUID]*domain.Profile
}

// NewMockProfileRepository creates a new MockProfileRepository
func NewMockProfileRepository() *MockProfileRepository {
	return &MockProfileRepository{
		Profiles: make(map[uuid.UUID]*domain.Profile),
	}
}

// GetByID retrieves a profile by ID
func (m *MockProfileRepository) GetByID(id uuid.UUID) (*domain.Profile, error) {
	if p, ok := m.Profiles[id]; ok {
		return p, nil
	}
	return nil, domain.ErrProfileNotFound
}

// Update updates a profile
func (m *MockProfileRepository) Update(profile *domain.Profile) (*domain.Profile, error) {
	if _, ok := m.Profiles[profile.ID]; !ok {
		return nil, domain.ErrProfileNotFound
	}
	m.Profiles[profile.ID] = profile
	return profile, nil
}

// NamesFor resolves display names for a batch of user ids
func (m *MockProfileRepository) NamesFor(ids []uuid.UUID) (map[uuid.UUID]string, error) {
	names := make(map[uuid.UUID]string, len(ids))
	for _, id := range ids {
		if p, ok := m.Profiles[id]; ok {
			names[id] = p.DisplayName()
		}
	}
	return names, nil
}

// AddProfile adds a profile to the mock repository (helper for tests)
func (m *MockProfileRepository) AddProfile(p *domain.Profile) {
	m.Profiles[p.ID] = p
}

// MockSubscriptionRepository is a mock implementation of domain.SubscriptionRepository
type MockSubscriptionRepository struct {
	Levels                  map[uuid.UUID]domain.DashboardLevel
	Subscriptions           map[uuid.UUID]*domain.CompanySubscription
	Plans                   []*domain.SubscriptionPlan
	CurrentDashboardLevelFn func(companyID uuid.UUID) (domain.DashboardLevel, error)
}

// NewMockSubscriptionRepository creates a new MockSubscriptionRepository
func NewMockSubscriptionRepository() *MockSubscriptionRepository {
	return &MockSubscriptionRepository{
		Levels:        make(map[uuid.UUID]domain.DashboardLevel),
		Subscriptions: make(map[uuid.UUID]*domain.CompanySubscription),
	}
}

// CurrentDashboardLevel resolves the dashboard level of the current subscription
func (m *MockSubscriptionRepository) CurrentDashboardLevel(companyID uuid.UUID) (domain.DashboardLevel, error) {
	if m.CurrentDashboardLevelFn != nil {
		return m.CurrentDashboardLevelFn(companyID)
	}
	if level, ok := m.Levels[companyID]; ok {
		return level, nil
	}
	return "", domain.ErrCompanyNotFound
}

// GetCurrent retrieves the current subscription for a company
func (m *MockSubscriptionRepository) GetCurrent(companyID uuid.UUID) (*domain.CompanySubscription, error) {
	if sub, ok := m.Subscriptions[companyID]; ok {
		return sub, nil
	}
	return nil, domain.ErrNotFound
}

// GetPlans retrieves all subscription plans
func (m *MockSubscriptionRepository) GetPlans() ([]*domain.SubscriptionPlan, error) {
	if m.Plans == nil {
		return []*domain.SubscriptionPlan{}, nil
	}
	return m.Plans, nil
}

// SetLevel sets the dashboard level for a company (helper for tests)
func (m *MockSubscriptionRepository) SetLevel(companyID uuid.UUID, level domain.DashboardLevel) {
	m.Levels[companyID] = level
}

// MockDashboardRepository is a mock implementation of domain.DashboardRepository.
// Each query returns the corresponding fixture field; set only the ones the
// test cares about.
type MockDashboardRepository struct {
	TotalCustomers   int64
	TotalStudies     int64
	StudiesBetween   int64
	Credit           *domain.CreditSummary
	ByStatus         []domain.StatusCount
	ByMonth          []domain.MonthCount
	ByPersonType     []domain.PersonTypeCount
	Recent           []domain.RecentStudy
	Financial        *domain.FinancialIndicators
	Stability        []domain.StabilityBandCount
	CapacityTrend    []domain.MonthValue
	Turnover         *domain.TurnoverIndicators
	TopCustomers     []domain.CustomerCredit
	RevenueNetIncome []domain.MonthRevenueNetIncome
	Debt             *domain.DebtStructureAverages
	ByAnalyst        []domain.AnalystCount
	ByActivity       []domain.ActivityCount
	Err              error

	// Captured query windows (helpers for asserting date handling)
	LastTrendFrom time.Time
	LastTrendTo   time.Time
	LastSince     time.Time
}

// NewMockDashboardRepository creates a new MockDashboardRepository
func NewMockDashboardRepository() *MockDashboardRepository {
	return &MockDashboardRepository{}
}

func (m *MockDashboardRepository) CountCustomers(companyID uuid.UUID) (int64, error) {
	return m.TotalCustomers, m.Err
}

func (m *MockDashboardRepository) CountStudies(companyID uuid.UUID) (int64, error) {
	return m.TotalStudies, m.Err
}

func (m *MockDashboardRepository) CountStudiesCreatedBetween(companyID uuid.UUID, from, to time.Time) (int64, error) {
	return m.StudiesBetween, m.Err
}

func (m *MockDashboardRepository) CreditSummaryBetween(companyID uuid.UUID, from, to time.Time) (*domain.CreditSummary, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Credit == nil {
		return &domain.CreditSummary{}, nil
	}
	return m.Credit, nil
}

func (m *MockDashboardRepository) StudiesByStatus(companyID uuid.UUID) ([]domain.StatusCount, error) {
	return m.ByStatus, m.Err
}

func (m *MockDashboardRepository) StudiesByMonth(companyID uuid.UUID, since time.Time) ([]domain.MonthCount, error) {
	m.LastSince = since
	return m.ByMonth, m.Err
}

func (m *MockDashboardRepository) CustomersByPersonType(companyID uuid.UUID) ([]domain.PersonTypeCount, error) {
	return m.ByPersonType, m.Err
}

func (m *MockDashboardRepository) RecentStudies(companyID uuid.UUID, limit int32) ([]domain.RecentStudy, error) {
	return m.Recent, m.Err
}

func (m *MockDashboardRepository) AvgFinancialIndicators(companyID uuid.UUID, from, to time.Time) (*domain.FinancialIndicators, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Financial == nil {
		return &domain.FinancialIndicators{}, nil
	}
	return m.Financial, nil
}

func (m *MockDashboardRepository) StabilityDistribution(companyID uuid.UUID, from, to time.Time) ([]domain.StabilityBandCount, error) {
	return m.Stability, m.Err
}

func (m *MockDashboardRepository) PaymentCapacityTrend(companyID uuid.UUID, from, to time.Time) ([]domain.MonthValue, error) {
	m.LastTrendFrom = from
	m.LastTrendTo = to
	return m.CapacityTrend, m.Err
}

func (m *MockDashboardRepository) AvgTurnoverIndicators(companyID uuid.UUID, from, to time.Time) (*domain.TurnoverIndicators, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Turnover == nil {
		return &domain.TurnoverIndicators{}, nil
	}
	return m.Turnover, nil
}

func (m *MockDashboardRepository) TopCustomersByCredit(companyID uuid.UUID, limit int32, from, to time.Time) ([]domain.CustomerCredit, error) {
	return m.TopCustomers, m.Err
}

func (m *MockDashboardRepository) RevenueVsNetIncome(companyID uuid.UUID, from, to time.Time) ([]domain.MonthRevenueNetIncome, error) {
	return m.RevenueNetIncome, m.Err
}

func (m *MockDashboardRepository) AvgDebtStructure(companyID uuid.UUID, from, to time.Time) (*domain.DebtStructureAverages, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Debt == nil {
		return &domain.DebtStructureAverages{}, nil
	}
	return m.Debt, nil
}

func (m *MockDashboardRepository) StudiesByAnalyst(companyID uuid.UUID, from, to time.Time) ([]domain.AnalystCount, error) {
	return m.ByAnalyst, m.Err
}

func (m *MockDashboardRepository) CustomersByEconomicActivity(companyID uuid.UUID) ([]domain.ActivityCount, error) {
	return m.ByActivity, m.Err
}
