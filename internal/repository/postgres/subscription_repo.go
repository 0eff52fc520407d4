package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/credipyme/credipyme-backend/internal/domain"
)

// SubscriptionRepository implements domain.SubscriptionRepository using PostgreSQL
type SubscriptionRepository struct {
	pool *pgxpool.Pool
}

// NewSubscriptionRepository creates a new SubscriptionRepository
func NewSubscriptionRepository(pool *pgxpool.Pool) *SubscriptionRepository {
	return &SubscriptionRepository{pool: pool}
}

// CurrentDashboardLevel resolves the dashboard-level code of the company's
// current subscription. A company without a current subscription (or whose
// plan carries no dashboard level) yields an empty level, not an error.
func (r *SubscriptionRepository) CurrentDashboardLevel(companyID uuid.UUID) (domain.DashboardLevel, error) {
	ctx := context.Background()

	query := `
		SELECT p.code
		FROM company_subscriptions cs
		JOIN subscription_plans sp ON sp.id = cs.subscription_id
		LEFT JOIN parameters p ON p.id = sp.dashboard_level_id
		WHERE cs.company_id = $1 AND cs.is_current = TRUE
		LIMIT 1`

	var code pgtype.Text
	err := r.pool.QueryRow(ctx, query, companyID).Scan(&code)
	if err != nil {
		if err == pgx.ErrNoRows {
			exists, existsErr := companyExists(ctx, r.pool, companyID)
			if existsErr != nil {
				return "", existsErr
			}
			if !exists {
				return "", domain.ErrCompanyNotFound
			}
			return "", nil
		}
		return "", err
	}
	return domain.DashboardLevel(code.String), nil
}

// GetCurrent retrieves the current subscription for a company
func (r *SubscriptionRepository) GetCurrent(companyID uuid.UUID) (*domain.CompanySubscription, error) {
	ctx := context.Background()

	query := `
		SELECT id, company_id, subscription_id, is_current, start_date, end_date, created_at
		FROM company_subscriptions
		WHERE company_id = $1 AND is_current = TRUE
		LIMIT 1`

	var (
		sub       domain.CompanySubscription
		startDate pgtype.Date
		endDate   pgtype.Date
	)
	err := r.pool.QueryRow(ctx, query, companyID).Scan(
		&sub.ID, &sub.CompanyID, &sub.SubscriptionID, &sub.IsCurrent,
		&startDate, &endDate, &sub.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	sub.StartDate = pgDateToTime(startDate)
	if endDate.Valid {
		end := endDate.Time
		sub.EndDate = &end
	}
	return &sub, nil
}

// GetPlans retrieves all active subscription plans
func (r *SubscriptionRepository) GetPlans() ([]*domain.SubscriptionPlan, error) {
	ctx := context.Background()

	query := `
		SELECT id, name, price, dashboard_level_id, is_active, created_at
		FROM subscription_plans
		WHERE is_active = TRUE
		ORDER BY price ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plans := []*domain.SubscriptionPlan{}
	for rows.Next() {
		var (
			plan    domain.SubscriptionPlan
			price   pgtype.Numeric
			levelID pgtype.Int4
		)
		if err := rows.Scan(&plan.ID, &plan.Name, &price, &levelID, &plan.IsActive, &plan.CreatedAt); err != nil {
			return nil, err
		}
		plan.Price = pgNumericToDecimal(price)
		plan.DashboardLevelID = pgInt4ToPtr(levelID)
		plans = append(plans, &plan)
	}
	return plans, rows.Err()
}

func companyExists(ctx context.Context, pool *pgxpool.Pool, companyID uuid.UUID) (bool, error) {
	var exists bool
	err := pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM companies WHERE id = $1)`, companyID).Scan(&exists)
	return exists, err
}
