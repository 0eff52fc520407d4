package domain

import (
	"time"

	"github.com/google/uuid"
)

// Customer is a company-scoped counterparty that credit studies are performed on.
type Customer struct {
	ID                   uuid.UUID `json:"id"`
	CompanyID            uuid.UUID `json:"companyId"`
	BusinessName         string    `json:"businessName"`
	IdentificationNumber string    `json:"identificationNumber"`
	PersonTypeID         *int32    `json:"personTypeId,omitempty"`
	EconomicActivityID   *int32    `json:"economicActivityId,omitempty"`
	Email                *string   `json:"email,omitempty"`
	Phone                *string   `json:"phone,omitempty"`
	Address              *string   `json:"address,omitempty"`
	ContactName          *string   `json:"contactName,omitempty"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

type CustomerFilters struct {
	PersonTypeID       *int32
	EconomicActivityID *int32
	Search             string
	Page               int32
	PageSize           int32
}

type PaginatedCustomers struct {
	Data       []*Customer `json:"data"`
	Page       int32       `json:"page"`
	PageSize   int32       `json:"pageSize"`
	TotalItems int64       `json:"totalItems"`
	TotalPages int32       `json:"totalPages"`
}

type CustomerRepository interface {
	Create(customer *Customer) (*Customer, error)
	GetByID(companyID, id uuid.UUID) (*Customer, error)
	GetByCompany(companyID uuid.UUID, filters *CustomerFilters) (*PaginatedCustomers, error)
	Update(customer *Customer) (*Customer, error)
	Delete(companyID, id uuid.UUID) error
	// Autocomplete searches business name and identification number,
	// case-insensitively, returning at most limit rows.
	Autocomplete(companyID uuid.UUID, query string, limit int32) ([]*Customer, error)
	BelongsToCompany(customerID, companyID uuid.UUID) (bool, error)
}
