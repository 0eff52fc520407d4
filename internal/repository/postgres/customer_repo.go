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

// CustomerRepository implements domain.CustomerRepository using PostgreSQL
type CustomerRepository struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository creates a new CustomerRepository
func NewCustomerRepository(pool *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{pool: pool}
}

const customerColumns = `
	id, company_id, business_name, identification_number, person_type_id,
	economic_activity_id, email, phone, address, contact_name, created_at, updated_at`

// Create persists a new customer
func (r *CustomerRepository) Create(customer *domain.Customer) (*domain.Customer, error) {
	ctx := context.Background()

	query := `
		INSERT INTO customers (
			company_id, business_name, identification_number, person_type_id,
			economic_activity_id, email, phone, address, contact_name
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING` + customerColumns

	row := r.pool.QueryRow(ctx, query,
		customer.CompanyID,
		customer.BusinessName,
		customer.IdentificationNumber,
		int32PtrToPgInt4(customer.PersonTypeID),
		int32PtrToPgInt4(customer.EconomicActivityID),
		stringPtrToPgText(customer.Email),
		stringPtrToPgText(customer.Phone),
		stringPtrToPgText(customer.Address),
		stringPtrToPgText(customer.ContactName),
	)
	return scanCustomer(row)
}

// GetByID retrieves a customer by its ID within a company
func (r *CustomerRepository) GetByID(companyID, id uuid.UUID) (*domain.Customer, error) {
	ctx := context.Background()

	query := `SELECT` + customerColumns + `
		FROM customers
		WHERE company_id = $1 AND id = $2`

	customer, err := scanCustomer(r.pool.QueryRow(ctx, query, companyID, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, err
	}
	return customer, nil
}

// GetByCompany retrieves a filtered, paginated page of a company's customers
func (r *CustomerRepository) GetByCompany(companyID uuid.UUID, filters *domain.CustomerFilters) (*domain.PaginatedCustomers, error) {
	ctx := context.Background()

	if filters == nil {
		filters = &domain.CustomerFilters{}
	}
	page := filters.Page
	if page < 1 {
		page = 1
	}
	pageSize := filters.PageSize
	if pageSize < 1 {
		pageSize = domain.DefaultPageSize
	}

	where := `WHERE company_id = $1`
	args := []interface{}{companyID}
	if filters.PersonTypeID != nil {
		args = append(args, *filters.PersonTypeID)
		where += fmt.Sprintf(` AND person_type_id = $%d`, len(args))
	}
	if filters.EconomicActivityID != nil {
		args = append(args, *filters.EconomicActivityID)
		where += fmt.Sprintf(` AND economic_activity_id = $%d`, len(args))
	}
	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		where += fmt.Sprintf(` AND (business_name ILIKE $%d OR identification_number ILIKE $%d)`, len(args), len(args))
	}

	var totalItems int64
	countQuery := `SELECT COUNT(*) FROM customers ` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&totalItems); err != nil {
		return nil, err
	}

	args = append(args, pageSize, (page-1)*pageSize)
	listQuery := fmt.Sprintf(`SELECT`+customerColumns+`
		FROM customers %s
		ORDER BY business_name ASC
		LIMIT $%d OFFSET $%d`, where, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := []*domain.Customer{}
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, customer)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &domain.PaginatedCustomers{
		Data:       customers,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: domain.TotalPages(totalItems, pageSize),
	}, nil
}

// Update applies changes to an existing customer
func (r *CustomerRepository) Update(customer *domain.Customer) (*domain.Customer, error) {
	ctx := context.Background()

	query := `
		UPDATE customers
		SET business_name = $3,
			identification_number = $4,
			person_type_id = $5,
			economic_activity_id = $6,
			email = $7,
			phone = $8,
			address = $9,
			contact_name = $10,
			updated_at = NOW()
		WHERE company_id = $1 AND id = $2
		RETURNING` + customerColumns

	row := r.pool.QueryRow(ctx, query,
		customer.CompanyID,
		customer.ID,
		customer.BusinessName,
		customer.IdentificationNumber,
		int32PtrToPgInt4(customer.PersonTypeID),
		int32PtrToPgInt4(customer.EconomicActivityID),
		stringPtrToPgText(customer.Email),
		stringPtrToPgText(customer.Phone),
		stringPtrToPgText(customer.Address),
		stringPtrToPgText(customer.ContactName),
	)
	updated, err := scanCustomer(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes a customer
func (r *CustomerRepository) Delete(companyID, id uuid.UUID) error {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx, `DELETE FROM customers WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}

// Autocomplete searches business name and identification number case-insensitively
func (r *CustomerRepository) Autocomplete(companyID uuid.UUID, query string, limit int32) ([]*domain.Customer, error) {
	ctx := context.Background()

	sql := `SELECT` + customerColumns + `
		FROM customers
		WHERE company_id = $1
		  AND (business_name ILIKE $2 OR identification_number ILIKE $2)
		ORDER BY business_name ASC
		LIMIT $3`

	rows, err := r.pool.Query(ctx, sql, companyID, "%"+query+"%", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := []*domain.Customer{}
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, customer)
	}
	return customers, rows.Err()
}

// BelongsToCompany reports whether the customer is scoped to the company
func (r *CustomerRepository) BelongsToCompany(customerID, companyID uuid.UUID) (bool, error) {
	ctx := context.Background()

	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM customers WHERE id = $1 AND company_id = $2)`,
		customerID, companyID,
	).Scan(&exists)
	return exists, err
}

func scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var (
		c                            domain.Customer
		personType, economicActivity pgtype.Int4
		email, phone                 pgtype.Text
		address, contact             pgtype.Text
	)
	err := row.Scan(
		&c.ID, &c.CompanyID, &c.BusinessName, &c.IdentificationNumber,
		&personType, &economicActivity, &email, &phone, &address, &contact,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.PersonTypeID = pgInt4ToPtr(personType)
	c.EconomicActivityID = pgInt4ToPtr(economicActivity)
	c.Email = pgTextToStringPtr(email)
	c.Phone = pgTextToStringPtr(phone)
	c.Address = pgTextToStringPtr(address)
	c.ContactName = pgTextToStringPtr(contact)
	return &c, nil
}
