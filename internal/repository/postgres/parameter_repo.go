package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/credipyme/credipyme-backend/internal/domain"
)

// ParameterRepository implements domain.ParameterRepository using PostgreSQL
type ParameterRepository struct {
	pool *pgxpool.Pool
}

// NewParameterRepository creates a new ParameterRepository
func NewParameterRepository(pool *pgxpool.Pool) *ParameterRepository {
	return &ParameterRepository{pool: pool}
}

const parameterColumns = `
	id, type, code, label, parent_id, is_active, created_at, updated_at`

// GetByID retrieves a parameter by id
func (r *ParameterRepository) GetByID(id int32) (*domain.Parameter, error) {
	ctx := context.Background()

	query := `SELECT` + parameterColumns + ` FROM parameters WHERE id = $1`
	p, err := scanParameter(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrParameterNotFound
		}
		return nil, err
	}
	return p, nil
}

// FindByCode retrieves a parameter by code
func (r *ParameterRepository) FindByCode(code string) (*domain.Parameter, error) {
	ctx := context.Background()

	query := `SELECT` + parameterColumns + ` FROM parameters WHERE code = $1`
	p, err := scanParameter(r.pool.QueryRow(ctx, query, code))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrParameterNotFound
		}
		return nil, err
	}
	return p, nil
}

// FindByTypeAndCode retrieves a parameter by its unique (type, code) pair
func (r *ParameterRepository) FindByTypeAndCode(paramType, code string) (*domain.Parameter, error) {
	ctx := context.Background()

	query := `SELECT` + parameterColumns + ` FROM parameters WHERE type = $1 AND code = $2`
	p, err := scanParameter(r.pool.QueryRow(ctx, query, paramType, code))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrParameterNotFound
		}
		return nil, err
	}
	return p, nil
}

// GetAll retrieves parameters matching the filters
func (r *ParameterRepository) GetAll(filters *domain.ParameterFilters) ([]*domain.Parameter, error) {
	ctx := context.Background()

	if filters == nil {
		filters = &domain.ParameterFilters{}
	}

	where := `WHERE 1=1`
	args := []interface{}{}
	if filters.Type != "" {
		args = append(args, filters.Type)
		where += fmt.Sprintf(` AND type = $%d`, len(args))
	}
	if filters.OnlyActive {
		where += ` AND is_active = TRUE`
	}
	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		where += fmt.Sprintf(` AND label ILIKE $%d`, len(args))
	}

	query := `SELECT` + parameterColumns + `
		FROM parameters ` + where + `
		ORDER BY type ASC, label ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	params := []*domain.Parameter{}
	for rows.Next() {
		p, err := scanParameter(rows)
		if err != nil {
			return nil, err
		}
		params = append(params, p)
	}
	return params, rows.Err()
}

// LabelsFor resolves labels for a batch of parameter ids. Missing ids are
// absent from the returned map.
func (r *ParameterRepository) LabelsFor(ids []int32) (map[int32]string, error) {
	labels := make(map[int32]string, len(ids))
	if len(ids) == 0 {
		return labels, nil
	}
	ctx := context.Background()

	rows, err := r.pool.Query(ctx, `SELECT id, label FROM parameters WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id    int32
			label string
		)
		if err := rows.Scan(&id, &label); err != nil {
			return nil, err
		}
		labels[id] = label
	}
	return labels, rows.Err()
}

func scanParameter(row pgx.Row) (*domain.Parameter, error) {
	var (
		p        domain.Parameter
		parentID pgtype.Int4
	)
	err := row.Scan(&p.ID, &p.Type, &p.Code, &p.Label, &parentID, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.ParentID = pgInt4ToPtr(parentID)
	return &p, nil
}
