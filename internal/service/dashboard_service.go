package service

import (
	"time"

	"github.com/credipyme/credipyme-backend/internal/domain"
	"github.com/credipyme/credipyme-backend/internal/util"
	"github.com/google/uuid"
)

const (
	// unknownLabel renders for parameter ids and analysts the batch lookups
	// could not resolve. A missing label never fails the request.
	unknownLabel = "Desconocido"

	studiesByMonthWindow = 6
	trendWindow          = 12
	recentStudiesLimit   = 5
	topCustomersLimit    = 10
)

// The unbounded window used when no date filter is supplied, so "no filter"
// behaves exactly like "all time".
var (
	openWindowFrom = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)
	openWindowTo   = time.Date(2100, time.January, 1, 0, 0, 0, 0, time.UTC)
)

// DashboardService assembles the basic and advanced dashboard view models and
// enforces the subscription-tier gate on the advanced one.
type DashboardService struct {
	repo     domain.DashboardRepository
	users    domain.UserCompanyRepository
	params   domain.ParameterRepository
	profiles domain.ProfileRepository
	subs     domain.SubscriptionRepository
	nowFn    func() time.Time
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	repo domain.DashboardRepository,
	users domain.UserCompanyRepository,
	params domain.ParameterRepository,
	profiles domain.ProfileRepository,
	subs domain.SubscriptionRepository,
) *DashboardService {
	return &DashboardService{
		repo:     repo,
		users:    users,
		params:   params,
		profiles: profiles,
		subs:     subs,
		nowFn:    time.Now,
	}
}

// WithNow overrides the clock. Tests use it to pin the month anchor.
func (s *DashboardService) WithNow(nowFn func() time.Time) *DashboardService {
	s.nowFn = nowFn
	return s
}

// Basic returns the dashboard blocks available to every tier.
func (s *DashboardService) Basic(companyID uuid.UUID) (*domain.BasicDashboard, error) {
	now := s.nowFn()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	nextMonthStart := monthStart.AddDate(0, 1, 0)

	totalCustomers, err := s.repo.CountCustomers(companyID)
	if err != nil {
		return nil, err
	}
	totalStudies, err := s.repo.CountStudies(companyID)
	if err != nil {
		return nil, err
	}
	studiesThisMonth, err := s.repo.CountStudiesCreatedBetween(companyID, monthStart, nextMonthStart)
	if err != nil {
		return nil, err
	}
	activeUsers, err := s.users.CountActive(companyID)
	if err != nil {
		return nil, err
	}
	creditSummary, err := s.repo.CreditSummaryBetween(companyID, monthStart, nextMonthStart)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.repo.StudiesByStatus(companyID)
	if err != nil {
		return nil, err
	}
	byMonth, err := s.repo.StudiesByMonth(companyID, util.WindowStart(studiesByMonthWindow, now))
	if err != nil {
		return nil, err
	}
	byPersonType, err := s.repo.CustomersByPersonType(companyID)
	if err != nil {
		return nil, err
	}
	recent, err := s.repo.RecentStudies(companyID, recentStudiesLimit)
	if err != nil {
		return nil, err
	}

	// Batch-resolve every parameter label the group-bys produced.
	paramIDs := make([]int32, 0, len(byStatus)+len(byPersonType))
	for _, row := range byStatus {
		paramIDs = append(paramIDs, row.StatusID)
	}
	for _, row := range byPersonType {
		paramIDs = append(paramIDs, row.PersonTypeID)
	}
	labels, err := s.params.LabelsFor(paramIDs)
	if err != nil {
		return nil, err
	}

	for i := range byStatus {
		byStatus[i].Label = labelOr(labels, byStatus[i].StatusID)
	}
	for i := range byPersonType {
		byPersonType[i].Label = labelOr(labels, byPersonType[i].PersonTypeID)
	}

	return &domain.BasicDashboard{
		Summary: domain.DashboardSummary{
			TotalCustomers:   totalCustomers,
			TotalStudies:     totalStudies,
			StudiesThisMonth: studiesThisMonth,
			ActiveUsers:      activeUsers,
		},
		CreditSummary:         *creditSummary,
		StudiesByStatus:       byStatus,
		StudiesByMonth:        util.FillMonthCounts(byMonth, studiesByMonthWindow, now),
		CustomersByPersonType: byPersonType,
		RecentStudies:         recent,
	}, nil
}

// Advanced returns the full dashboard. The tier gate runs before any
// advanced aggregate query is issued.
func (s *DashboardService) Advanced(companyID uuid.UUID, dateFrom, dateTo *time.Time) (*domain.AdvancedDashboard, error) {
	if err := s.assertAdvancedAccess(companyID); err != nil {
		return nil, err
	}

	basic, err := s.Basic(companyID)
	if err != nil {
		return nil, err
	}

	now := s.nowFn()

	// Aggregates over the filter window (unbounded when unset).
	from, to := openWindowFrom, openWindowTo
	if dateFrom != nil {
		from = *dateFrom
	}
	if dateTo != nil {
		to = *dateTo
	}

	// The time-series queries default to the trailing trend window instead,
	// so the unfiltered chart matches its month axis.
	trendFrom, trendTo := util.WindowStart(trendWindow, now), now
	if dateFrom != nil {
		trendFrom = *dateFrom
	}
	if dateTo != nil {
		trendTo = *dateTo
	}

	indicators, err := s.repo.AvgFinancialIndicators(companyID, from, to)
	if err != nil {
		return nil, err
	}
	stability, err := s.repo.StabilityDistribution(companyID, from, to)
	if err != nil {
		return nil, err
	}
	capacityTrend, err := s.repo.PaymentCapacityTrend(companyID, trendFrom, trendTo)
	if err != nil {
		return nil, err
	}
	turnover, err := s.repo.AvgTurnoverIndicators(companyID, from, to)
	if err != nil {
		return nil, err
	}
	topCustomers, err := s.repo.TopCustomersByCredit(companyID, topCustomersLimit, from, to)
	if err != nil {
		return nil, err
	}
	revenueSeries, err := s.repo.RevenueVsNetIncome(companyID, trendFrom, trendTo)
	if err != nil {
		return nil, err
	}
	debt, err := s.repo.AvgDebtStructure(companyID, from, to)
	if err != nil {
		return nil, err
	}
	byAnalyst, err := s.repo.StudiesByAnalyst(companyID, from, to)
	if err != nil {
		return nil, err
	}
	byActivity, err := s.repo.CustomersByEconomicActivity(companyID)
	if err != nil {
		return nil, err
	}

	// Name/label resolution runs after the group-bys that produce the ids.
	analystIDs := make([]uuid.UUID, 0, len(byAnalyst))
	for _, row := range byAnalyst {
		analystIDs = append(analystIDs, row.AnalystID)
	}
	names, err := s.profiles.NamesFor(analystIDs)
	if err != nil {
		return nil, err
	}
	for i := range byAnalyst {
		if name, ok := names[byAnalyst[i].AnalystID]; ok && name != "" {
			byAnalyst[i].AnalystName = name
		} else {
			byAnalyst[i].AnalystName = unknownLabel
		}
	}

	activityIDs := make([]int32, 0, len(byActivity))
	for _, row := range byActivity {
		activityIDs = append(activityIDs, row.EconomicActivityID)
	}
	activityLabels, err := s.params.LabelsFor(activityIDs)
	if err != nil {
		return nil, err
	}
	for i := range byActivity {
		byActivity[i].Label = labelOr(activityLabels, byActivity[i].EconomicActivityID)
	}

	debtStructure := domain.DebtStructure{
		AvgCurrentLiabilities:    debt.AvgCurrentLiabilities,
		AvgNonCurrentLiabilities: debt.AvgNonCurrentLiabilities,
		AvgEquity:                debt.AvgEquity,
	}
	if debt.AvgEquity != 0 {
		ratio := debt.AvgTotalLiabilities / debt.AvgEquity
		debtStructure.DebtToEquityRatio = &ratio
	}

	return &domain.AdvancedDashboard{
		BasicDashboard:              *basic,
		FinancialIndicators:         *indicators,
		StabilityDistribution:       stability,
		PaymentCapacityTrend:        util.FillMonthValues(capacityTrend, trendWindow, now),
		AvgTurnoverIndicators:       *turnover,
		TopCustomersByCredit:        topCustomers,
		RevenueVsNetIncome:          util.FillMonthPairs(revenueSeries, trendWindow, now),
		AvgDebtStructure:            debtStructure,
		StudiesByAnalyst:            byAnalyst,
		CustomersByEconomicActivity: byActivity,
	}, nil
}

// assertAdvancedAccess resolves the company's current dashboard level and
// rejects anything below advanced. It never issues aggregate queries.
func (s *DashboardService) assertAdvancedAccess(companyID uuid.UUID) error {
	level, err := s.subs.CurrentDashboardLevel(companyID)
	if err != nil {
		return err
	}
	if !level.GrantsAdvanced() {
		return domain.ErrDashboardTierInsufficient
	}
	return nil
}

func labelOr(labels map[int32]string, id int32) string {
	if label, ok := labels[id]; ok && label != "" {
		return label
	}
	return unknownLabel
}
