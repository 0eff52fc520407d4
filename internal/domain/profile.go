package domain

import (
	"time"

	"github.com/google/uuid"
)

// Profile is an authenticated user's display record.
type Profile struct {
	ID        uuid.UUID `json:"id"`
	AuthID    string    `json:"-"`
	Email     string    `json:"email"`
	Name      *string   `json:"name,omitempty"`
	LastName  *string   `json:"lastName,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DisplayName joins name and last name, skipping whichever is unset.
func (p *Profile) DisplayName() string {
	switch {
	case p.Name != nil && p.LastName != nil:
		return *p.Name + " " + *p.LastName
	case p.Name != nil:
		return *p.Name
	case p.LastName != nil:
		return *p.LastName
	default:
		return ""
	}
}

type ProfileRepository interface {
	GetByID(id uuid.UUID) (*Profile, error)
	Update(profile *Profile) (*Profile, error)
	// NamesFor resolves display names for a batch of user ids. Missing ids
	// are absent from the returned map.
	NamesFor(ids []uuid.UUID) (map[uuid.UUID]string, error)
}
