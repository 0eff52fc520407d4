package domain

import (
	"time"

	"github.com/google/uuid"
)

// Company is the tenant unit. Every customer, study and subscription hangs off
// a company.
type Company struct {
	ID                   uuid.UUID `json:"id"`
	Name                 string    `json:"name"`
	IdentificationNumber string    `json:"identificationNumber"`
	Email                *string   `json:"email,omitempty"`
	Phone                *string   `json:"phone,omitempty"`
	Address              *string   `json:"address,omitempty"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

type CompanyRepository interface {
	GetByID(id uuid.UUID) (*Company, error)
	Exists(id uuid.UUID) (bool, error)
}

// UserCompany links an authenticated user (profile) to a company.
type UserCompany struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	CompanyID uuid.UUID `json:"companyId"`
	RoleID    *int32    `json:"roleId,omitempty"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

type UserCompanyRepository interface {
	// GetCompanyByAuthID resolves the company and profile for an identity
	// provider subject. Used by the auth middleware on every request.
	GetCompanyByAuthID(authID string) (companyID, userID uuid.UUID, err error)
	CountActive(companyID uuid.UUID) (int64, error)
}
