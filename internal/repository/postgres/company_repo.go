package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/credipyme/credipyme-backend/internal/domain"
)

// CompanyRepository implements domain.CompanyRepository using PostgreSQL
type CompanyRepository struct {
	pool *pgxpool.Pool
}

// NewCompanyRepository creates a new CompanyRepository
func NewCompanyRepository(pool *pgxpool.Pool) *CompanyRepository {
	return &CompanyRepository{pool: pool}
}

// GetByID retrieves a company by id
func (r *CompanyRepository) GetByID(id uuid.UUID) (*domain.Company, error) {
	ctx := context.Background()

	query := `
		SELECT id, name, identification_number, email, phone, address, created_at, updated_at
		FROM companies
		WHERE id = $1`

	var (
		c                     domain.Company
		email, phone, address pgtype.Text
	)
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.IdentificationNumber, &email, &phone, &address,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrCompanyNotFound
		}
		return nil, err
	}
	c.Email = pgTextToStringPtr(email)
	c.Phone = pgTextToStringPtr(phone)
	c.Address = pgTextToStringPtr(address)
	return &c, nil
}

// Exists reports whether the company exists
func (r *CompanyRepository) Exists(id uuid.UUID) (bool, error) {
	ctx := context.Background()

	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM companies WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}
