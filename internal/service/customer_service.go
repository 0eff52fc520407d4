package service

import (
	"strings"

	"github.com/credipyme/credipyme-backend/internal/domain"
	"github.com/google/uuid"
)

const autocompleteLimit = 10

// CustomerService handles customer-related business logic
type CustomerService struct {
	repo domain.CustomerRepository
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(repo domain.CustomerRepository) *CustomerService {
	return &CustomerService{repo: repo}
}

// Create validates and persists a customer.
func (s *CustomerService) Create(customer *domain.Customer) (*domain.Customer, error) {
	customer.BusinessName = strings.TrimSpace(customer.BusinessName)
	if customer.BusinessName == "" {
		return nil, domain.ErrInvalidInput
	}
	if len(customer.BusinessName) > domain.MaxBusinessNameLength {
		return nil, domain.ErrInvalidInput
	}
	return s.repo.Create(customer)
}

// GetByID retrieves a customer within a company.
func (s *CustomerService) GetByID(companyID, id uuid.UUID) (*domain.Customer, error) {
	return s.repo.GetByID(companyID, id)
}

// List returns a filtered, paginated page of a company's customers.
func (s *CustomerService) List(companyID uuid.UUID, filters *domain.CustomerFilters) (*domain.PaginatedCustomers, error) {
	if filters == nil {
		filters = &domain.CustomerFilters{}
	}
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 1 {
		filters.PageSize = domain.DefaultPageSize
	}
	if filters.PageSize > domain.MaxPageSize {
		filters.PageSize = domain.MaxPageSize
	}
	return s.repo.GetByCompany(companyID, filters)
}

// Update applies changes to an existing customer.
func (s *CustomerService) Update(customer *domain.Customer) (*domain.Customer, error) {
	if _, err := s.repo.GetByID(customer.CompanyID, customer.ID); err != nil {
		return nil, err
	}
	customer.BusinessName = strings.TrimSpace(customer.BusinessName)
	if customer.BusinessName == "" || len(customer.BusinessName) > domain.MaxBusinessNameLength {
		return nil, domain.ErrInvalidInput
	}
	return s.repo.Update(customer)
}

// Delete removes a customer after confirming it exists in the company.
func (s *CustomerService) Delete(companyID, id uuid.UUID) error {
	if _, err := s.repo.GetByID(companyID, id); err != nil {
		return err
	}
	return s.repo.Delete(companyID, id)
}

// Autocomplete searches customers by business name or identification number.
// An empty query returns no rows rather than the whole table.
func (s *CustomerService) Autocomplete(companyID uuid.UUID, query string) ([]*domain.Customer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*domain.Customer{}, nil
	}
	return s.repo.Autocomplete(companyID, query, autocompleteLimit)
}
