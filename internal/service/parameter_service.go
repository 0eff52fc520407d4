package service

import (
	"github.com/credipyme/credipyme-backend/internal/domain"
)

// ParameterService exposes the shared lookup table.
type ParameterService struct {
	repo domain.ParameterRepository
}

// NewParameterService creates a new ParameterService
func NewParameterService(repo domain.ParameterRepository) *ParameterService {
	return &ParameterService{repo: repo}
}

// GetByID retrieves a parameter by id.
func (s *ParameterService) GetByID(id int32) (*domain.Parameter, error) {
	return s.repo.GetByID(id)
}

// List returns parameters matching the filters.
func (s *ParameterService) List(filters *domain.ParameterFilters) ([]*domain.Parameter, error) {
	if filters == nil {
		filters = &domain.ParameterFilters{}
	}
	return s.repo.GetAll(filters)
}

// FindByTypeAndCode resolves a parameter by its unique (type, code) pair.
func (s *ParameterService) FindByTypeAndCode(paramType, code string) (*domain.Parameter, error) {
	return s.repo.FindByTypeAndCode(paramType, code)
}
