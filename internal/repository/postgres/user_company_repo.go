package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/credipyme/credipyme-backend/internal/domain"
)

// UserCompanyRepository implements domain.UserCompanyRepository using PostgreSQL
type UserCompanyRepository struct {
	pool *pgxpool.Pool
}

// NewUserCompanyRepository creates a new UserCompanyRepository
func NewUserCompanyRepository(pool *pgxpool.Pool) *UserCompanyRepository {
	return &UserCompanyRepository{pool: pool}
}

// GetCompanyByAuthID resolves the company and profile for an identity provider
// subject. Runs on every authenticated request.
func (r *UserCompanyRepository) GetCompanyByAuthID(authID string) (uuid.UUID, uuid.UUID, error) {
	ctx := context.Background()

	query := `
		SELECT uc.company_id, uc.user_id
		FROM user_companies uc
		JOIN profiles p ON p.id = uc.user_id
		WHERE p.auth_id = $1 AND uc.is_active = TRUE
		LIMIT 1`

	var companyID, userID uuid.UUID
	err := r.pool.QueryRow(ctx, query, authID).Scan(&companyID, &userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return uuid.Nil, uuid.Nil, domain.ErrCompanyNotFound
		}
		return uuid.Nil, uuid.Nil, err
	}
	return companyID, userID, nil
}

// CountActive returns the number of active memberships for a company
func (r *UserCompanyRepository) CountActive(companyID uuid.UUID) (int64, error) {
	ctx := context.Background()

	var count int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM user_companies WHERE company_id = $1 AND is_active = TRUE`,
		companyID,
	).Scan(&count)
	return count, err
}
