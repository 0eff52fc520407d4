package domain

import "errors"

// Domain errors
var (
	ErrNotFound             = errors.New("resource not found")
	ErrAlreadyExists        = errors.New("resource already exists")
	ErrInvalidInput         = errors.New("invalid input")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("forbidden")
	ErrInternalError        = errors.New("internal error")
	ErrCompanyNotFound      = errors.New("company not found")
	ErrCustomerNotFound     = errors.New("customer not found")
	ErrStudyNotFound        = errors.New("credit study not found")
	ErrParameterNotFound    = errors.New("parameter not found")
	ErrProfileNotFound      = errors.New("profile not found")
	ErrCustomerNotInCompany = errors.New("customer does not belong to this company")
	// ErrDashboardTierInsufficient is raised when a company's current plan does
	// not include the advanced dashboard.
	ErrDashboardTierInsufficient = errors.New("subscription does not include the advanced dashboard")
	// ErrStatusParameterMissing means the estudioRealizado parameter row is
	// absent, which is a deployment configuration problem.
	ErrStatusParameterMissing = errors.New("study-completed status parameter not configured")
)

// Validation constants
const (
	MaxBusinessNameLength = 255
	MaxNotesLength        = 2000
)
