package websocket

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned when JWT validation fails
var ErrInvalidToken = errors.New("invalid token")

// ErrCompanyNotFound is returned when the company lookup fails
var ErrCompanyNotFound = errors.New("company not found")

// CompanyLookup resolves a company by the Auth0 subject of the caller.
// domain.UserCompanyRepository satisfies this.
type CompanyLookup interface {
	GetCompanyByAuthID(authID string) (companyID uuid.UUID, userID uuid.UUID, err error)
}

// CustomClaims contains the custom claims from Auth0 JWT
type CustomClaims struct{}

// Validate implements validator.CustomClaims
func (c CustomClaims) Validate(ctx context.Context) error {
	return nil
}

// Auth0JWTValidator validates Auth0 JWT tokens for WebSocket connections
type Auth0JWTValidator struct {
	validator     *validator.Validator
	companyLookup CompanyLookup
}

// NewAuth0JWTValidator creates a new Auth0JWTValidator
func NewAuth0JWTValidator(domain, audience string, companyLookup CompanyLookup) (*Auth0JWTValidator, error) {
	issuerURL, err := url.Parse("https://" + domain + "/")
	if err != nil {
		return nil, err
	}

	provider := jwks.NewCachingProvider(issuerURL, 5*time.Minute)

	jwtValidator, err := validator.New(
		provider.KeyFunc,
		validator.RS256,
		issuerURL.String(),
		[]string{audience},
		validator.WithCustomClaims(func() validator.CustomClaims {
			return &CustomClaims{}
		}),
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		return nil, err
	}

	return &Auth0JWTValidator{
		validator:     jwtValidator,
		companyLookup: companyLookup,
	}, nil
}

// ValidateToken validates a JWT token and returns the associated company ID
func (v *Auth0JWTValidator) ValidateToken(token string) (companyID uuid.UUID, err error) {
	ctx := context.Background()

	claims, err := v.validator.ValidateToken(ctx, token)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}

	validatedClaims, ok := claims.(*validator.ValidatedClaims)
	if !ok {
		return uuid.Nil, ErrInvalidToken
	}

	authID := validatedClaims.RegisteredClaims.Subject

	companyID, _, err = v.companyLookup.GetCompanyByAuthID(authID)
	if err != nil {
		return uuid.Nil, ErrCompanyNotFound
	}

	return companyID, nil
}
