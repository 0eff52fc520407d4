package service

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/credipyme/credipyme-backend/internal/domain"
	"github.com/credipyme/credipyme-backend/internal/testutil"
)

func newDashboardFixture() (*DashboardService, *testutil.MockDashboardRepository, *testutil.MockUserCompanyRepository, *testutil.MockParameterRepository, *testutil.MockProfileRepository, *testutil.MockSubscriptionRepository) {
	repo := testutil.NewMockDashboardRepository()
	users := testutil.NewMockUserCompanyRepository()
	params := testutil.NewMockParameterRepository()
	profiles := testutil.NewMockProfileRepository()
	subs := testutil.NewMockSubscriptionRepository()
	svc := NewDashboardService(repo, users, params, profiles, subs)
	return svc, repo, users, params, profiles, subs
}

func TestDashboardService_Basic_AssemblesBlocks(t *testing.T) {
	svc, repo, users, params, _, _ := newDashboardFixture()
	companyID := uuid.New()

	// Pin the clock so the month buckets are deterministic
	now := time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)
	svc.WithNow(func() time.Time { return now })

	repo.TotalCustomers = 12
	repo.TotalStudies = 40
	repo.StudiesBetween = 3
	users.ActiveCounts[companyID] = 5
	repo.Credit = &domain.CreditSummary{
		TotalRequestedThisMonth: decimal.NewFromInt(150000),
		AvgRequestedThisMonth:   decimal.NewFromInt(50000),
		AvgRequestedTerm:        14.5,
	}
	repo.ByStatus = []domain.StatusCount{{StatusID: 1, Count: 30}, {StatusID: 2, Count: 10}}
	repo.ByMonth = []domain.MonthCount{{Month: "2026-03", Count: 3}, {Month: "2026-01", Count: 7}}
	repo.ByPersonType = []domain.PersonTypeCount{{PersonTypeID: 10, Count: 8}}
	repo.Recent = []domain.RecentStudy{{ID: uuid.New(), CustomerName: "Acme SA", StatusLabel: "Pendiente"}}

	params.AddParameter(&domain.Parameter{ID: 1, Type: domain.ParameterTypeStudyStatus, Code: "pendiente", Label: "Pendiente"})
	params.AddParameter(&domain.Parameter{ID: 2, Type: domain.ParameterTypeStudyStatus, Code: "estudioRealizado", Label: "Estudio realizado"})
	params.AddParameter(&domain.Parameter{ID: 10, Type: domain.ParameterTypePersonType, Code: "juridica", Label: "Persona jurídica"})

	dash, err := svc.Basic(companyID)
	require.NoError(t, err)

	assert.Equal(t, int64(12), dash.Summary.TotalCustomers)
	assert.Equal(t, int64(40), dash.Summary.TotalStudies)
	assert.Equal(t, int64(3), dash.Summary.StudiesThisMonth)
	assert.Equal(t, int64(5), dash.Summary.ActiveUsers)
	assert.Equal(t, 14.5, dash.CreditSummary.AvgRequestedTerm)

	// Group-by labels resolved in batch
	require.Len(t, dash.StudiesByStatus, 2)
	assert.Equal(t, "Pendiente", dash.StudiesByStatus[0].Label)
	assert.Equal(t, "Estudio realizado", dash.StudiesByStatus[1].Label)
	require.Len(t, dash.CustomersByPersonType, 1)
	assert.Equal(t, "Persona jurídica", dash.CustomersByPersonType[0].Label)

	// Month series zero-filled to exactly six buckets ending at the anchor
	require.Len(t, dash.StudiesByMonth, 6)
	assert.Equal(t, "2025-10", dash.StudiesByMonth[0].Month)
	assert.Equal(t, "2026-03", dash.StudiesByMonth[5].Month)
	assert.Equal(t, int64(7), dash.StudiesByMonth[3].Count)
	assert.Equal(t, int64(0), dash.StudiesByMonth[4].Count)
	assert.Equal(t, int64(3), dash.StudiesByMonth[5].Count)

	assert.Len(t, dash.RecentStudies, 1)
}

func TestDashboardService_Basic_UnresolvedLabelFallsBack(t *testing.T) {
	svc, repo, _, _, _, _ := newDashboardFixture()
	companyID := uuid.New()

	// Status id 99 has no parameter row
	repo.ByStatus = []domain.StatusCount{{StatusID: 99, Count: 4}}

	dash, err := svc.Basic(companyID)
	require.NoError(t, err)

	require.Len(t, dash.StudiesByStatus, 1)
	assert.Equal(t, "Desconocido", dash.StudiesByStatus[0].Label)
	assert.Equal(t, int64(4), dash.StudiesByStatus[0].Count)
}

func TestDashboardService_Basic_QueryErrorPropagates(t *testing.T) {
	svc, repo, _, _, _, _ := newDashboardFixture()

	repo.Err = errors.New("connection reset")

	_, err := svc.Basic(uuid.New())
	assert.Error(t, err)
}

func TestDashboardService_Advanced_TierGate(t *testing.T) {
	tests := []struct {
		name    string
		level   domain.DashboardLevel
		wantErr error
	}{
		{"basic tier is rejected", domain.DashboardLevelBasic, domain.ErrDashboardTierInsufficient},
		{"empty level is rejected", "", domain.ErrDashboardTierInsufficient},
		{"advanced tier is allowed", domain.DashboardLevelAdvanced, nil},
		{"premium tier is allowed", domain.DashboardLevelPremium, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _, _, _, subs := newDashboardFixture()
			companyID := uuid.New()
			subs.SetLevel(companyID, tt.level)

			_, err := svc.Advanced(companyID, nil, nil)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDashboardService_Advanced_UnknownCompany(t *testing.T) {
	svc, _, _, _, _, _ := newDashboardFixture()

	// No level registered for the company: the subscription repo reports the
	// company as missing, which must surface before the gate decision
	_, err := svc.Advanced(uuid.New(), nil, nil)
	assert.ErrorIs(t, err, domain.ErrCompanyNotFound)
}

func TestDashboardService_Advanced_GateRunsBeforeQueries(t *testing.T) {
	svc, repo, _, _, _, subs := newDashboardFixture()
	companyID := uuid.New()
	subs.SetLevel(companyID, domain.DashboardLevelBasic)

	// If any aggregate query ran it would fail loudly
	repo.Err = errors.New("must not be reached")

	_, err := svc.Advanced(companyID, nil, nil)
	assert.ErrorIs(t, err, domain.ErrDashboardTierInsufficient)
}

func TestDashboardService_Advanced_TrendWindowDefaults(t *testing.T) {
	svc, repo, _, _, _, subs := newDashboardFixture()
	companyID := uuid.New()
	subs.SetLevel(companyID, domain.DashboardLevelAdvanced)

	now := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	svc.WithNow(func() time.Time { return now })

	_, err := svc.Advanced(companyID, nil, nil)
	require.NoError(t, err)

	// Unfiltered time series default to the trailing twelve months
	assert.Equal(t, time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC), repo.LastTrendFrom)
	assert.Equal(t, now, repo.LastTrendTo)
}

func TestDashboardService_Advanced_ExplicitWindowOverridesTrend(t *testing.T) {
	svc, repo, _, _, _, subs := newDashboardFixture()
	companyID := uuid.New()
	subs.SetLevel(companyID, domain.DashboardLevelPremium)

	from := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)

	_, err := svc.Advanced(companyID, &from, &to)
	require.NoError(t, err)

	assert.Equal(t, from, repo.LastTrendFrom)
	assert.Equal(t, to, repo.LastTrendTo)
}

func TestDashboardService_Advanced_DebtToEquityRatio(t *testing.T) {
	t.Run("ratio computed from averages", func(t *testing.T) {
		svc, repo, _, _, _, subs := newDashboardFixture()
		companyID := uuid.New()
		subs.SetLevel(companyID, domain.DashboardLevelAdvanced)

		repo.Debt = &domain.DebtStructureAverages{
			AvgCurrentLiabilities:    300,
			AvgNonCurrentLiabilities: 200,
			AvgEquity:                250,
			AvgTotalLiabilities:      500,
		}

		dash, err := svc.Advanced(companyID, nil, nil)
		require.NoError(t, err)

		require.NotNil(t, dash.AvgDebtStructure.DebtToEquityRatio)
		assert.InDelta(t, 2.0, *dash.AvgDebtStructure.DebtToEquityRatio, 1e-9)
	})

	t.Run("ratio nil when average equity is zero", func(t *testing.T) {
		svc, repo, _, _, _, subs := newDashboardFixture()
		companyID := uuid.New()
		subs.SetLevel(companyID, domain.DashboardLevelAdvanced)

		repo.Debt = &domain.DebtStructureAverages{
			AvgCurrentLiabilities: 300,
			AvgTotalLiabilities:   300,
			AvgEquity:             0,
		}

		dash, err := svc.Advanced(companyID, nil, nil)
		require.NoError(t, err)

		assert.Nil(t, dash.AvgDebtStructure.DebtToEquityRatio)
	})
}

func TestDashboardService_Advanced_AnalystNames(t *testing.T) {
	svc, repo, _, _, profiles, subs := newDashboardFixture()
	companyID := uuid.New()
	subs.SetLevel(companyID, domain.DashboardLevelAdvanced)

	known := uuid.New()
	unknown := uuid.New()
	name := "Laura"
	lastName := "Mendez"
	profiles.AddProfile(&domain.Profile{ID: known, Email: "laura@credipyme.com", Name: &name, LastName: &lastName})

	repo.ByAnalyst = []domain.AnalystCount{
		{AnalystID: known, Count: 9},
		{AnalystID: unknown, Count: 2},
	}

	dash, err := svc.Advanced(companyID, nil, nil)
	require.NoError(t, err)

	require.Len(t, dash.StudiesByAnalyst, 2)
	assert.Equal(t, "Laura Mendez", dash.StudiesByAnalyst[0].AnalystName)
	assert.Equal(t, "Desconocido", dash.StudiesByAnalyst[1].AnalystName)
}

func TestDashboardService_Advanced_TrendSeriesZeroFilled(t *testing.T) {
	svc, repo, _, _, _, subs := newDashboardFixture()
	companyID := uuid.New()
	subs.SetLevel(companyID, domain.DashboardLevelAdvanced)

	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	svc.WithNow(func() time.Time { return now })

	repo.CapacityTrend = []domain.MonthValue{{Month: "2026-02", Value: 1200.5}}
	repo.RevenueNetIncome = []domain.MonthRevenueNetIncome{{Month: "2025-12", AvgRevenue: 9000, AvgNetIncome: 700}}

	dash, err := svc.Advanced(companyID, nil, nil)
	require.NoError(t, err)

	require.Len(t, dash.PaymentCapacityTrend, 12)
	assert.Equal(t, "2025-04", dash.PaymentCapacityTrend[0].Month)
	assert.Equal(t, 1200.5, dash.PaymentCapacityTrend[10].Value)
	assert.Equal(t, 0.0, dash.PaymentCapacityTrend[11].Value)

	require.Len(t, dash.RevenueVsNetIncome, 12)
	assert.Equal(t, 9000.0, dash.RevenueVsNetIncome[8].AvgRevenue)
	assert.Equal(t, 700.0, dash.RevenueVsNetIncome[8].AvgNetIncome)
}
