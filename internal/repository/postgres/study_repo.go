package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/credipyme/credipyme-backend/internal/domain"
)

// StudyRepository implements domain.StudyRepository using PostgreSQL
type StudyRepository struct {
	pool *pgxpool.Pool
}

// NewStudyRepository creates a new StudyRepository
func NewStudyRepository(pool *pgxpool.Pool) *StudyRepository {
	return &StudyRepository{pool: pool}
}

const studyColumns = `
	id, company_id, customer_id, status_id, study_date, notes,
	created_by, updated_by, created_at, updated_at,
	requested_term, requested_monthly_credit_line, income_statement_id,
	total_current_assets, total_non_current_assets, total_assets,
	fixed_assets_property, cash_and_equivalents,
	accounts_receivable_1, accounts_receivable_2, inventories_1, inventories_2,
	total_current_liabilities, total_non_current_liabilities, total_liabilities,
	short_term_financial_liabilities, long_term_financial_liabilities,
	suppliers_1, suppliers_2, retained_earnings, equity,
	ordinary_activity_revenue, cost_of_sales, gross_profit,
	administrative_expenses, selling_expenses, depreciation_amortization,
	financial_expenses, taxes, net_income,
	ebitda, adjusted_ebitda, stability_factor, current_debt_service,
	annual_payment_capacity, monthly_payment_capacity, average_payment_time,
	accounts_receivable_turnover, inventory_turnover, suppliers_turnover,
	maximum_payment_time, resolution_date`

// Create persists a new study. Score columns start out NULL.
func (r *StudyRepository) Create(study *domain.CreditStudy) (*domain.CreditStudy, error) {
	ctx := context.Background()

	creditLine, err := decimalPtrToPgNumeric(study.RequestedMonthlyCreditLine)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO credit_studies (
			company_id, customer_id, status_id, study_date, notes,
			created_by, updated_by,
			requested_term, requested_monthly_credit_line, income_statement_id,
			total_current_assets, total_non_current_assets, total_assets,
			fixed_assets_property, cash_and_equivalents,
			accounts_receivable_1, accounts_receivable_2, inventories_1, inventories_2,
			total_current_liabilities, total_non_current_liabilities, total_liabilities,
			short_term_financial_liabilities, long_term_financial_liabilities,
			suppliers_1, suppliers_2, retained_earnings, equity,
			ordinary_activity_revenue, cost_of_sales, gross_profit,
			administrative_expenses, selling_expenses, depreciation_amortization,
			financial_expenses, taxes, net_income
		)
		VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
			$21, $22, $23, $24, $25, $26, $27, $28, $29, $30,
			$31, $32, $33, $34, $35, $36, $37
		)
		RETURNING` + studyColumns

	row := r.pool.QueryRow(ctx, query,
		study.CompanyID,
		study.CustomerID,
		study.StatusID,
		timeToPgDate(study.StudyDate),
		stringPtrToPgText(study.Notes),
		study.CreatedBy,
		study.UpdatedBy,
		int32PtrToPgInt4(study.RequestedTerm),
		creditLine,
		int32PtrToPgInt4(study.IncomeStatementID),
		float64PtrToPgFloat8(study.TotalCurrentAssets),
		float64PtrToPgFloat8(study.TotalNonCurrentAssets),
		float64PtrToPgFloat8(study.TotalAssets),
		float64PtrToPgFloat8(study.FixedAssetsProperty),
		float64PtrToPgFloat8(study.CashAndEquivalents),
		float64PtrToPgFloat8(study.AccountsReceivable1),
		float64PtrToPgFloat8(study.AccountsReceivable2),
		float64PtrToPgFloat8(study.Inventories1),
		float64PtrToPgFloat8(study.Inventories2),
		float64PtrToPgFloat8(study.TotalCurrentLiabilities),
		float64PtrToPgFloat8(study.TotalNonCurrentLiabilities),
		float64PtrToPgFloat8(study.TotalLiabilities),
		float64PtrToPgFloat8(study.ShortTermFinancialLiabilities),
		float64PtrToPgFloat8(study.LongTermFinancialLiabilities),
		float64PtrToPgFloat8(study.Suppliers1),
		float64PtrToPgFloat8(study.Suppliers2),
		float64PtrToPgFloat8(study.RetainedEarnings),
		float64PtrToPgFloat8(study.Equity),
		float64PtrToPgFloat8(study.OrdinaryActivityRevenue),
		float64PtrToPgFloat8(study.CostOfSales),
		float64PtrToPgFloat8(study.GrossProfit),
		float64PtrToPgFloat8(study.AdministrativeExpenses),
		float64PtrToPgFloat8(study.SellingExpenses),
		float64PtrToPgFloat8(study.DepreciationAmortization),
		float64PtrToPgFloat8(study.FinancialExpenses),
		float64PtrToPgFloat8(study.Taxes),
		float64PtrToPgFloat8(study.NetIncome),
	)
	return scanStudy(row)
}

// GetByID retrieves a study by its ID within a company
func (r *StudyRepository) GetByID(companyID, id uuid.UUID) (*domain.CreditStudy, error) {
	ctx := context.Background()

	query := `SELECT` + studyColumns + `
		FROM credit_studies
		WHERE company_id = $1 AND id = $2`

	study, err := scanStudy(r.pool.QueryRow(ctx, query, companyID, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrStudyNotFound
		}
		return nil, err
	}
	return study, nil
}

// GetByCompany retrieves a filtered, paginated page of a company's studies
func (r *StudyRepository) GetByCompany(companyID uuid.UUID, filters *domain.StudyFilters) (*domain.PaginatedStudies, error) {
	ctx := context.Background()

	if filters == nil {
		filters = &domain.StudyFilters{}
	}
	page := filters.Page
	if page < 1 {
		page = 1
	}
	pageSize := filters.PageSize
	if pageSize < 1 {
		pageSize = domain.DefaultPageSize
	}

	where := `WHERE s.company_id = $1`
	args := []interface{}{companyID}
	if filters.CustomerID != nil {
		args = append(args, *filters.CustomerID)
		where += fmt.Sprintf(` AND s.customer_id = $%d`, len(args))
	}
	if filters.StatusID != nil {
		args = append(args, *filters.StatusID)
		where += fmt.Sprintf(` AND s.status_id = $%d`, len(args))
	}
	if filters.StudyDateFrom != nil {
		args = append(args, timeToPgDate(*filters.StudyDateFrom))
		where += fmt.Sprintf(` AND s.study_date >= $%d`, len(args))
	}
	if filters.StudyDateTo != nil {
		args = append(args, timeToPgDate(*filters.StudyDateTo))
		where += fmt.Sprintf(` AND s.study_date <= $%d`, len(args))
	}
	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		where += fmt.Sprintf(` AND EXISTS (
			SELECT 1 FROM customers c
			WHERE c.id = s.customer_id AND c.business_name ILIKE $%d
		)`, len(args))
	}

	var totalItems int64
	countQuery := `SELECT COUNT(*) FROM credit_studies s ` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&totalItems); err != nil {
		return nil, err
	}

	args = append(args, pageSize, (page-1)*pageSize)
	listQuery := fmt.Sprintf(`SELECT`+studyColumns+`
		FROM credit_studies s %s
		ORDER BY s.study_date DESC, s.id DESC
		LIMIT $%d OFFSET $%d`, where, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	studies := []*domain.CreditStudy{}
	for rows.Next() {
		study, err := scanStudy(rows)
		if err != nil {
			return nil, err
		}
		studies = append(studies, study)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &domain.PaginatedStudies{
		Data:       studies,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: domain.TotalPages(totalItems, pageSize),
	}, nil
}

// Update applies changes to the request and statement fields of a study.
// Score columns are only written through SaveScore.
func (r *StudyRepository) Update(study *domain.CreditStudy) (*domain.CreditStudy, error) {
	ctx := context.Background()

	creditLine, err := decimalPtrToPgNumeric(study.RequestedMonthlyCreditLine)
	if err != nil {
		return nil, err
	}

	query := `
		UPDATE credit_studies
		SET customer_id = $3,
			status_id = $4,
			study_date = $5,
			notes = $6,
			updated_by = $7,
			requested_term = $8,
			requested_monthly_credit_line = $9,
			income_statement_id = $10,
			total_current_assets = $11,
			total_non_current_assets = $12,
			total_assets = $13,
			fixed_assets_property = $14,
			cash_and_equivalents = $15,
			accounts_receivable_1 = $16,
			accounts_receivable_2 = $17,
			inventories_1 = $18,
			inventories_2 = $19,
			total_current_liabilities = $20,
			total_non_current_liabilities = $21,
			total_liabilities = $22,
			short_term_financial_liabilities = $23,
			long_term_financial_liabilities = $24,
			suppliers_1 = $25,
			suppliers_2 = $26,
			retained_earnings = $27,
			equity = $28,
			ordinary_activity_revenue = $29,
			cost_of_sales = $30,
			gross_profit = $31,
			administrative_expenses = $32,
			selling_expenses = $33,
			depreciation_amortization = $34,
			financial_expenses = $35,
			taxes = $36,
			net_income = $37,
			updated_at = NOW()
		WHERE company_id = $1 AND id = $2
		RETURNING` + studyColumns

	row := r.pool.QueryRow(ctx, query,
		study.CompanyID,
		study.ID,
		study.CustomerID,
		study.StatusID,
		timeToPgDate(study.StudyDate),
		stringPtrToPgText(study.Notes),
		study.UpdatedBy,
		int32PtrToPgInt4(study.RequestedTerm),
		creditLine,
		int32PtrToPgInt4(study.IncomeStatementID),
		float64PtrToPgFloat8(study.TotalCurrentAssets),
		float64PtrToPgFloat8(study.TotalNonCurrentAssets),
		float64PtrToPgFloat8(study.TotalAssets),
		float64PtrToPgFloat8(study.FixedAssetsProperty),
		float64PtrToPgFloat8(study.CashAndEquivalents),
		float64PtrToPgFloat8(study.AccountsReceivable1),
		float64PtrToPgFloat8(study.AccountsReceivable2),
		float64PtrToPgFloat8(study.Inventories1),
		float64PtrToPgFloat8(study.Inventories2),
		float64PtrToPgFloat8(study.TotalCurrentLiabilities),
		float64PtrToPgFloat8(study.TotalNonCurrentLiabilities),
		float64PtrToPgFloat8(study.TotalLiabilities),
		float64PtrToPgFloat8(study.ShortTermFinancialLiabilities),
		float64PtrToPgFloat8(study.LongTermFinancialLiabilities),
		float64PtrToPgFloat8(study.Suppliers1),
		float64PtrToPgFloat8(study.Suppliers2),
		float64PtrToPgFloat8(study.RetainedEarnings),
		float64PtrToPgFloat8(study.Equity),
		float64PtrToPgFloat8(study.OrdinaryActivityRevenue),
		float64PtrToPgFloat8(study.CostOfSales),
		float64PtrToPgFloat8(study.GrossProfit),
		float64PtrToPgFloat8(study.AdministrativeExpenses),
		float64PtrToPgFloat8(study.SellingExpenses),
		float64PtrToPgFloat8(study.DepreciationAmortization),
		float64PtrToPgFloat8(study.FinancialExpenses),
		float64PtrToPgFloat8(study.Taxes),
		float64PtrToPgFloat8(study.NetIncome),
	)
	updated, err := scanStudy(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrStudyNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes a study
func (r *StudyRepository) Delete(companyID, id uuid.UUID) error {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx, `DELETE FROM credit_studies WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrStudyNotFound
	}
	return nil
}

// SaveScore writes the score columns in a single update. Non-finite values
// are persisted as NULL; a recomputation overwrites the previous score.
func (r *StudyRepository) SaveScore(companyID, id uuid.UUID, score *domain.StudyScore) (*domain.CreditStudy, error) {
	ctx := context.Background()

	query := `
		UPDATE credit_studies
		SET ebitda = $3,
			adjusted_ebitda = $4,
			stability_factor = $5,
			current_debt_service = $6,
			annual_payment_capacity = $7,
			monthly_payment_capacity = $8,
			average_payment_time = $9,
			accounts_receivable_turnover = $10,
			inventory_turnover = $11,
			suppliers_turnover = $12,
			maximum_payment_time = $13,
			status_id = $14,
			resolution_date = $15,
			updated_by = $16,
			updated_at = NOW()
		WHERE company_id = $1 AND id = $2
		RETURNING` + studyColumns

	resolution := score.ResolutionDate
	row := r.pool.QueryRow(ctx, query,
		companyID,
		id,
		finiteToPgFloat8(score.Ebitda),
		finiteToPgFloat8(score.AdjustedEbitda),
		finiteToPgFloat8(score.StabilityFactor),
		finiteToPgFloat8(score.CurrentDebtService),
		finiteToPgFloat8(score.AnnualPaymentCapacity),
		finiteToPgFloat8(score.MonthlyPaymentCapacity),
		finiteToPgFloat8(score.AveragePaymentTime),
		finiteToPgFloat8(score.AccountsReceivableTurnover),
		finiteToPgFloat8(score.InventoryTurnover),
		finiteToPgFloat8(score.SuppliersTurnover),
		finiteToPgFloat8(score.MaximumPaymentTime),
		score.StatusID,
		timePtrToPgTimestamptz(&resolution),
		score.UpdatedBy,
	)
	updated, err := scanStudy(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrStudyNotFound
		}
		return nil, err
	}
	return updated, nil
}

func scanStudy(row pgx.Row) (*domain.CreditStudy, error) {
	var (
		s          domain.CreditStudy
		studyDate  pgtype.Date
		notes      pgtype.Text
		term       pgtype.Int4
		creditLine pgtype.Numeric
		periodID   pgtype.Int4
		resolution pgtype.Timestamptz

		statement [27]pgtype.Float8
		score     [11]pgtype.Float8
	)

	err := row.Scan(
		&s.ID, &s.CompanyID, &s.CustomerID, &s.StatusID, &studyDate, &notes,
		&s.CreatedBy, &s.UpdatedBy, &s.CreatedAt, &s.UpdatedAt,
		&term, &creditLine, &periodID,
		&statement[0], &statement[1], &statement[2], &statement[3], &statement[4],
		&statement[5], &statement[6], &statement[7], &statement[8],
		&statement[9], &statement[10], &statement[11], &statement[12], &statement[13],
		&statement[14], &statement[15], &statement[16], &statement[17],
		&statement[18], &statement[19], &statement[20], &statement[21], &statement[22],
		&statement[23], &statement[24], &statement[25], &statement[26],
		&score[0], &score[1], &score[2], &score[3], &score[4], &score[5],
		&score[6], &score[7], &score[8], &score[9], &score[10],
		&resolution,
	)
	if err != nil {
		return nil, err
	}

	s.StudyDate = pgDateToTime(studyDate)
	s.Notes = pgTextToStringPtr(notes)
	s.RequestedTerm = pgInt4ToPtr(term)
	s.RequestedMonthlyCreditLine = pgNumericToDecimalPtr(creditLine)
	s.IncomeStatementID = pgInt4ToPtr(periodID)
	s.ResolutionDate = pgTimestamptzToTimePtr(resolution)

	fields := []**float64{
		&s.TotalCurrentAssets, &s.TotalNonCurrentAssets, &s.TotalAssets,
		&s.FixedAssetsProperty, &s.CashAndEquivalents,
		&s.AccountsReceivable1, &s.AccountsReceivable2, &s.Inventories1, &s.Inventories2,
		&s.TotalCurrentLiabilities, &s.TotalNonCurrentLiabilities, &s.TotalLiabilities,
		&s.ShortTermFinancialLiabilities, &s.LongTermFinancialLiabilities,
		&s.Suppliers1, &s.Suppliers2, &s.RetainedEarnings, &s.Equity,
		&s.OrdinaryActivityRevenue, &s.CostOfSales, &s.GrossProfit,
		&s.AdministrativeExpenses, &s.SellingExpenses, &s.DepreciationAmortization,
		&s.FinancialExpenses, &s.Taxes, &s.NetIncome,
	}
	for i, f := range fields {
		*f = pgFloat8ToPtr(statement[i])
	}

	scoreFields := []**float64{
		&s.Ebitda, &s.AdjustedEbitda, &s.StabilityFactor, &s.CurrentDebtService,
		&s.AnnualPaymentCapacity, &s.MonthlyPaymentCapacity, &s.AveragePaymentTime,
		&s.AccountsReceivableTurnover, &s.InventoryTurnover, &s.SuppliersTurnover,
		&s.MaximumPaymentTime,
	}
	for i, f := range scoreFields {
		*f = pgFloat8ToPtr(score[i])
	}

	return &s, nil
}
