package service

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/credipyme/credipyme-backend/internal/domain"
	"github.com/credipyme/credipyme-backend/internal/testutil"
)

func TestCustomerService_Create_Validation(t *testing.T) {
	tests := []struct {
		name         string
		businessName string
		wantErr      bool
	}{
		{"valid name", "Acme SA", false},
		{"name is trimmed", "  Acme SA  ", false},
		{"empty name", "", true},
		{"whitespace-only name", "   ", true},
		{"name over limit", strings.Repeat("a", domain.MaxBusinessNameLength+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewCustomerService(testutil.NewMockCustomerRepository())

			created, err := svc.Create(&domain.Customer{
				CompanyID:            uuid.New(),
				BusinessName:         tt.businessName,
				IdentificationNumber: "900123456",
			})
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, strings.TrimSpace(tt.businessName), created.BusinessName)
		})
	}
}

func TestCustomerService_Autocomplete(t *testing.T) {
	repo := testutil.NewMockCustomerRepository()
	svc := NewCustomerService(repo)
	companyID := uuid.New()

	repo.AddCustomer(&domain.Customer{ID: uuid.New(), CompanyID: companyID, BusinessName: "Comercial Norte", IdentificationNumber: "900111222"})
	repo.AddCustomer(&domain.Customer{ID: uuid.New(), CompanyID: companyID, BusinessName: "Distribuciones Sur", IdentificationNumber: "900333444"})
	repo.AddCustomer(&domain.Customer{ID: uuid.New(), CompanyID: uuid.New(), BusinessName: "Comercial Ajena", IdentificationNumber: "900555666"})

	t.Run("matches by business name, scoped to company", func(t *testing.T) {
		matches, err := svc.Autocomplete(companyID, "comercial")
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, "Comercial Norte", matches[0].BusinessName)
	})

	t.Run("matches by identification number", func(t *testing.T) {
		matches, err := svc.Autocomplete(companyID, "900333")
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, "Distribuciones Sur", matches[0].BusinessName)
	})

	t.Run("blank query returns empty slice without hitting the repo", func(t *testing.T) {
		repo.AutocompleteFn = func(uuid.UUID, string, int32) ([]*domain.Customer, error) {
			t.Fatal("repo must not be queried for a blank autocomplete")
			return nil, nil
		}
		defer func() { repo.AutocompleteFn = nil }()

		matches, err := svc.Autocomplete(companyID, "   ")
		require.NoError(t, err)
		assert.Empty(t, matches)
	})
}

func TestCustomerService_Delete_CrossTenant(t *testing.T) {
	repo := testutil.NewMockCustomerRepository()
	svc := NewCustomerService(repo)

	customer := &domain.Customer{ID: uuid.New(), CompanyID: uuid.New(), BusinessName: "Acme SA"}
	repo.AddCustomer(customer)

	err := svc.Delete(uuid.New(), customer.ID)
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}
