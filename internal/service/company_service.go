package service

import (
	"github.com/credipyme/credipyme-backend/internal/domain"
	"github.com/google/uuid"
)

// CompanyService exposes the tenant's own company record.
type CompanyService struct {
	repo domain.CompanyRepository
}

// NewCompanyService creates a new CompanyService
func NewCompanyService(repo domain.CompanyRepository) *CompanyService {
	return &CompanyService{repo: repo}
}

// Get returns the company record.
func (s *CompanyService) Get(companyID uuid.UUID) (*domain.Company, error) {
	return s.repo.GetByID(companyID)
}
