package service

import (
	"github.com/credipyme/credipyme-backend/internal/domain"
	"github.com/google/uuid"
)

// ProfileService handles profile reads and updates.
type ProfileService struct {
	repo domain.ProfileRepository
}

// NewProfileService creates a new ProfileService
func NewProfileService(repo domain.ProfileRepository) *ProfileService {
	return &ProfileService{repo: repo}
}

// GetByID retrieves a profile.
func (s *ProfileService) GetByID(id uuid.UUID) (*domain.Profile, error) {
	return s.repo.GetByID(id)
}

// Update applies profile changes.
func (s *ProfileService) Update(profile *domain.Profile) (*domain.Profile, error) {
	if _, err := s.repo.GetByID(profile.ID); err != nil {
		return nil, err
	}
	return s.repo.Update(profile)
}
