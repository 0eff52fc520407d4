package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/credipyme/credipyme-backend/internal/domain"
)

// DashboardRepository implements domain.DashboardRepository using PostgreSQL.
// Every query is tenant-scoped by company_id; label and name resolution is
// left to the service, which batches it.
type DashboardRepository struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository creates a new DashboardRepository
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{pool: pool}
}

// CountCustomers returns the company's customer count
func (r *DashboardRepository) CountCustomers(companyID uuid.UUID) (int64, error) {
	ctx := context.Background()

	var count int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM customers WHERE company_id = $1`, companyID,
	).Scan(&count)
	return count, err
}

// CountStudies returns the company's study count
func (r *DashboardRepository) CountStudies(companyID uuid.UUID) (int64, error) {
	ctx := context.Background()

	var count int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM credit_studies WHERE company_id = $1`, companyID,
	).Scan(&count)
	return count, err
}

// CountStudiesCreatedBetween counts studies created in [from, to)
func (r *DashboardRepository) CountStudiesCreatedBetween(companyID uuid.UUID, from, to time.Time) (int64, error) {
	ctx := context.Background()

	var count int64
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM credit_studies
		WHERE company_id = $1 AND created_at >= $2 AND created_at < $3`,
		companyID, from, to,
	).Scan(&count)
	return count, err
}

// CreditSummaryBetween aggregates the requested credit lines of studies
// created in [from, to)
func (r *DashboardRepository) CreditSummaryBetween(companyID uuid.UUID, from, to time.Time) (*domain.CreditSummary, error) {
	ctx := context.Background()

	query := `
		SELECT
			COALESCE(SUM(requested_monthly_credit_line), 0),
			COALESCE(AVG(requested_monthly_credit_line), 0),
			COALESCE(AVG(requested_term), 0)
		FROM credit_studies
		WHERE company_id = $1 AND created_at >= $2 AND created_at < $3`

	var (
		total, avg pgtype.Numeric
		avgTerm    float64
	)
	if err := r.pool.QueryRow(ctx, query, companyID, from, to).Scan(&total, &avg, &avgTerm); err != nil {
		return nil, err
	}
	return &domain.CreditSummary{
		TotalRequestedThisMonth: pgNumericToDecimal(total),
		AvgRequestedThisMonth:   pgNumericToDecimal(avg),
		AvgRequestedTerm:        avgTerm,
	}, nil
}

// StudiesByStatus groups the company's studies by status parameter
func (r *DashboardRepository) StudiesByStatus(companyID uuid.UUID) ([]domain.StatusCount, error) {
	ctx := context.Background()

	query := `
		SELECT status_id, COUNT(*)
		FROM credit_studies
		WHERE company_id = $1
		GROUP BY status_id
		ORDER BY COUNT(*) DESC`

	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := []domain.StatusCount{}
	for rows.Next() {
		var row domain.StatusCount
		if err := rows.Scan(&row.StatusID, &row.Count); err != nil {
			return nil, err
		}
		counts = append(counts, row)
	}
	return counts, rows.Err()
}

// StudiesByMonth counts studies per study-date month since the given time.
// Sparse: months with no studies are absent; the service zero-fills.
func (r *DashboardRepository) StudiesByMonth(companyID uuid.UUID, since time.Time) ([]domain.MonthCount, error) {
	ctx := context.Background()

	query := `
		SELECT to_char(study_date, 'YYYY-MM') AS month, COUNT(*)
		FROM credit_studies
		WHERE company_id = $1 AND study_date >= $2
		GROUP BY month
		ORDER BY month ASC`

	rows, err := r.pool.Query(ctx, query, companyID, timeToPgDate(since))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := []domain.MonthCount{}
	for rows.Next() {
		var row domain.MonthCount
		if err := rows.Scan(&row.Month, &row.Count); err != nil {
			return nil, err
		}
		counts = append(counts, row)
	}
	return counts, rows.Err()
}

// CustomersByPersonType groups the company's customers by person type
func (r *DashboardRepository) CustomersByPersonType(companyID uuid.UUID) ([]domain.PersonTypeCount, error) {
	ctx := context.Background()

	query := `
		SELECT person_type_id, COUNT(*)
		FROM customers
		WHERE company_id = $1 AND person_type_id IS NOT NULL
		GROUP BY person_type_id
		ORDER BY COUNT(*) DESC`

	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := []domain.PersonTypeCount{}
	for rows.Next() {
		var row domain.PersonTypeCount
		if err := rows.Scan(&row.PersonTypeID, &row.Count); err != nil {
			return nil, err
		}
		counts = append(counts, row)
	}
	return counts, rows.Err()
}

// RecentStudies lists the newest studies with their customer and status label
func (r *DashboardRepository) RecentStudies(companyID uuid.UUID, limit int32) ([]domain.RecentStudy, error) {
	ctx := context.Background()

	query := `
		SELECT s.id, c.business_name, s.study_date, COALESCE(p.label, ''),
			s.requested_monthly_credit_line
		FROM credit_studies s
		JOIN customers c ON c.id = s.customer_id
		LEFT JOIN parameters p ON p.id = s.status_id
		WHERE s.company_id = $1
		ORDER BY s.study_date DESC, s.id DESC
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, companyID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	studies := []domain.RecentStudy{}
	for rows.Next() {
		var (
			row        domain.RecentStudy
			studyDate  pgtype.Date
			creditLine pgtype.Numeric
		)
		if err := rows.Scan(&row.ID, &row.CustomerName, &studyDate, &row.StatusLabel, &creditLine); err != nil {
			return nil, err
		}
		row.StudyDate = pgDateToTime(studyDate)
		row.RequestedMonthlyCreditLine = pgNumericToDecimalPtr(creditLine)
		studies = append(studies, row)
	}
	return studies, rows.Err()
}

// AvgFinancialIndicators averages the engine outputs across scored studies in
// the window
func (r *DashboardRepository) AvgFinancialIndicators(companyID uuid.UUID, from, to time.Time) (*domain.FinancialIndicators, error) {
	ctx := context.Background()

	query := `
		SELECT
			COALESCE(AVG(ebitda), 0),
			COALESCE(AVG(monthly_payment_capacity), 0),
			COALESCE(AVG(stability_factor), 0),
			COALESCE(AVG(maximum_payment_time), 0)
		FROM credit_studies
		WHERE company_id = $1
		  AND stability_factor IS NOT NULL
		  AND study_date >= $2 AND study_date <= $3`

	var out domain.FinancialIndicators
	err := r.pool.QueryRow(ctx, query, companyID, timeToPgDate(from), timeToPgDate(to)).Scan(
		&out.AvgEbitda, &out.AvgMonthlyPaymentCapacity, &out.AvgStabilityFactor, &out.AvgMaxPaymentTime,
	)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// StabilityDistribution buckets scored studies by stability band
func (r *DashboardRepository) StabilityDistribution(companyID uuid.UUID, from, to time.Time) ([]domain.StabilityBandCount, error) {
	ctx := context.Background()

	query := `
		SELECT
			CASE
				WHEN stability_factor <= 0.33 THEN 'high_risk'
				WHEN stability_factor <= 0.66 THEN 'medium_risk'
				ELSE 'low_risk'
			END AS band,
			COUNT(*)
		FROM credit_studies
		WHERE company_id = $1
		  AND stability_factor IS NOT NULL
		  AND study_date >= $2 AND study_date <= $3
		GROUP BY band
		ORDER BY band`

	rows, err := r.pool.Query(ctx, query, companyID, timeToPgDate(from), timeToPgDate(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := []domain.StabilityBandCount{}
	for rows.Next() {
		var row domain.StabilityBandCount
		if err := rows.Scan(&row.Band, &row.Count); err != nil {
			return nil, err
		}
		counts = append(counts, row)
	}
	return counts, rows.Err()
}

// PaymentCapacityTrend averages monthly payment capacity per study-date month
func (r *DashboardRepository) PaymentCapacityTrend(companyID uuid.UUID, from, to time.Time) ([]domain.MonthValue, error) {
	ctx := context.Background()

	query := `
		SELECT to_char(study_date, 'YYYY-MM') AS month, AVG(monthly_payment_capacity)
		FROM credit_studies
		WHERE company_id = $1
		  AND monthly_payment_capacity IS NOT NULL
		  AND study_date >= $2 AND study_date <= $3
		GROUP BY month
		ORDER BY month ASC`

	rows, err := r.pool.Query(ctx, query, companyID, timeToPgDate(from), timeToPgDate(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := []domain.MonthValue{}
	for rows.Next() {
		var row domain.MonthValue
		if err := rows.Scan(&row.Month, &row.Value); err != nil {
			return nil, err
		}
		values = append(values, row)
	}
	return values, rows.Err()
}

// AvgTurnoverIndicators averages the working-capital cycle metrics
func (r *DashboardRepository) AvgTurnoverIndicators(companyID uuid.UUID, from, to time.Time) (*domain.TurnoverIndicators, error) {
	ctx := context.Background()

	query := `
		SELECT
			COALESCE(AVG(accounts_receivable_turnover), 0),
			COALESCE(AVG(inventory_turnover), 0),
			COALESCE(AVG(suppliers_turnover), 0),
			COALESCE(AVG(maximum_payment_time), 0)
		FROM credit_studies
		WHERE company_id = $1
		  AND stability_factor IS NOT NULL
		  AND study_date >= $2 AND study_date <= $3`

	var out domain.TurnoverIndicators
	err := r.pool.QueryRow(ctx, query, companyID, timeToPgDate(from), timeToPgDate(to)).Scan(
		&out.AccountsReceivableTurnover, &out.InventoryTurnover,
		&out.SuppliersTurnover, &out.MaximumPaymentTime,
	)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// TopCustomersByCredit ranks customers by total requested credit in the window
func (r *DashboardRepository) TopCustomersByCredit(companyID uuid.UUID, limit int32, from, to time.Time) ([]domain.CustomerCredit, error) {
	ctx := context.Background()

	query := `
		SELECT c.id, c.business_name,
			COALESCE(SUM(s.requested_monthly_credit_line), 0),
			COUNT(s.id)
		FROM credit_studies s
		JOIN customers c ON c.id = s.customer_id
		WHERE s.company_id = $1 AND s.study_date >= $2 AND s.study_date <= $3
		GROUP BY c.id, c.business_name
		ORDER BY SUM(s.requested_monthly_credit_line) DESC NULLS LAST
		LIMIT $4`

	rows, err := r.pool.Query(ctx, query, companyID, timeToPgDate(from), timeToPgDate(to), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := []domain.CustomerCredit{}
	for rows.Next() {
		var (
			row   domain.CustomerCredit
			total pgtype.Numeric
		)
		if err := rows.Scan(&row.CustomerID, &row.BusinessName, &total, &row.StudiesCount); err != nil {
			return nil, err
		}
		row.TotalCredit = pgNumericToDecimal(total)
		customers = append(customers, row)
	}
	return customers, rows.Err()
}

// RevenueVsNetIncome averages revenue and net income per study-date month
func (r *DashboardRepository) RevenueVsNetIncome(companyID uuid.UUID, from, to time.Time) ([]domain.MonthRevenueNetIncome, error) {
	ctx := context.Background()

	query := `
		SELECT to_char(study_date, 'YYYY-MM') AS month,
			COALESCE(AVG(ordinary_activity_revenue), 0),
			COALESCE(AVG(net_income), 0)
		FROM credit_studies
		WHERE company_id = $1 AND study_date >= $2 AND study_date <= $3
		GROUP BY month
		ORDER BY month ASC`

	rows, err := r.pool.Query(ctx, query, companyID, timeToPgDate(from), timeToPgDate(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	series := []domain.MonthRevenueNetIncome{}
	for rows.Next() {
		var row domain.MonthRevenueNetIncome
		if err := rows.Scan(&row.Month, &row.AvgRevenue, &row.AvgNetIncome); err != nil {
			return nil, err
		}
		series = append(series, row)
	}
	return series, rows.Err()
}

// AvgDebtStructure averages the liability and equity structure in the window
func (r *DashboardRepository) AvgDebtStructure(companyID uuid.UUID, from, to time.Time) (*domain.DebtStructureAverages, error) {
	ctx := context.Background()

	query := `
		SELECT
			COALESCE(AVG(total_current_liabilities), 0),
			COALESCE(AVG(total_non_current_liabilities), 0),
			COALESCE(AVG(equity), 0),
			COALESCE(AVG(total_liabilities), 0)
		FROM credit_studies
		WHERE company_id = $1 AND study_date >= $2 AND study_date <= $3`

	var out domain.DebtStructureAverages
	err := r.pool.QueryRow(ctx, query, companyID, timeToPgDate(from), timeToPgDate(to)).Scan(
		&out.AvgCurrentLiabilities, &out.AvgNonCurrentLiabilities,
		&out.AvgEquity, &out.AvgTotalLiabilities,
	)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// StudiesByAnalyst groups studies by their creating user
func (r *DashboardRepository) StudiesByAnalyst(companyID uuid.UUID, from, to time.Time) ([]domain.AnalystCount, error) {
	ctx := context.Background()

	query := `
		SELECT created_by, COUNT(*)
		FROM credit_studies
		WHERE company_id = $1 AND study_date >= $2 AND study_date <= $3
		GROUP BY created_by
		ORDER BY COUNT(*) DESC`

	rows, err := r.pool.Query(ctx, query, companyID, timeToPgDate(from), timeToPgDate(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := []domain.AnalystCount{}
	for rows.Next() {
		var row domain.AnalystCount
		if err := rows.Scan(&row.AnalystID, &row.Count); err != nil {
			return nil, err
		}
		counts = append(counts, row)
	}
	return counts, rows.Err()
}

// CustomersByEconomicActivity groups the company's customers by activity
func (r *DashboardRepository) CustomersByEconomicActivity(companyID uuid.UUID) ([]domain.ActivityCount, error) {
	ctx := context.Background()

	query := `
		SELECT economic_activity_id, COUNT(*)
		FROM customers
		WHERE company_id = $1 AND economic_activity_id IS NOT NULL
		GROUP BY economic_activity_id
		ORDER BY COUNT(*) DESC`

	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := []domain.ActivityCount{}
	for rows.Next() {
		var row domain.ActivityCount
		if err := rows.Scan(&row.EconomicActivityID, &row.Count); err != nil {
			return nil, err
		}
		counts = append(counts, row)
	}
	return counts, rows.Err()
}
