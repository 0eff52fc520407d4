package postgres

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/credipyme/credipyme-backend/internal/domain"
)

// ProfileRepository implements domain.ProfileRepository using PostgreSQL
type ProfileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

const profileColumns = `
	id, auth_id, email, name, last_name, phone, created_at, updated_at`

// GetByID retrieves a profile by id
func (r *ProfileRepository) GetByID(id uuid.UUID) (*domain.Profile, error) {
	ctx := context.Background()

	query := `SELECT` + profileColumns + ` FROM profiles WHERE id = $1`
	p, err := scanProfile(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return p, nil
}

// Update applies profile changes
func (r *ProfileRepository) Update(profile *domain.Profile) (*domain.Profile, error) {
	ctx := context.Background()

	query := `
		UPDATE profiles
		SET name = $2,
			last_name = $3,
			phone = $4,
			updated_at = NOW()
		WHERE id = $1
		RETURNING` + profileColumns

	row := r.pool.QueryRow(ctx, query,
		profile.ID,
		stringPtrToPgText(profile.Name),
		stringPtrToPgText(profile.LastName),
		stringPtrToPgText(profile.Phone),
	)
	updated, err := scanProfile(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return updated, nil
}

// NamesFor resolves display names for a batch of user ids. Missing ids are
// absent from the returned map.
func (r *ProfileRepository) NamesFor(ids []uuid.UUID) (map[uuid.UUID]string, error) {
	names := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	ctx := context.Background()

	rows, err := r.pool.Query(ctx, `SELECT id, name, last_name FROM profiles WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id             uuid.UUID
			name, lastName pgtype.Text
		)
		if err := rows.Scan(&id, &name, &lastName); err != nil {
			return nil, err
		}
		names[id] = strings.TrimSpace(strings.TrimSpace(name.String) + " " + strings.TrimSpace(lastName.String))
	}
	return names, rows.Err()
}

func scanProfile(row pgx.Row) (*domain.Profile, error) {
	var (
		p                     domain.Profile
		name, lastName, phone pgtype.Text
	)
	err := row.Scan(&p.ID, &p.AuthID, &p.Email, &name, &lastName, &phone, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.Name = pgTextToStringPtr(name)
	p.LastName = pgTextToStringPtr(lastName)
	p.Phone = pgTextToStringPtr(phone)
	return &p, nil
}
