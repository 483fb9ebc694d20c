package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/openbank/openbank-api/internal/domain"
	"github.com/openbank/openbank-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockCustomerStore is a testify mock for store.CustomerStore.
type MockCustomerStore struct {
	mock.Mock
}

var _ store.CustomerStore = (*MockCustomerStore)(nil)

// Create records the call and returns the configured error.
func (m *MockCustomerStore) Create(ctx context.Context, customer *domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

// GetByUsername records the call and returns the configured customer and error.
func (m *MockCustomerStore) GetByUsername(ctx context.Context, username string) (*domain.Customer, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

// MockAccountStore is a testify mock for store.AccountStore.
type MockAccountStore struct {
	mock.Mock
}

var _ store.AccountStore = (*MockAccountStore)(nil)

// Create records the call and returns the configured error.
func (m *MockAccountStore) Create(ctx context.Context, account *domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

// ListByCustomer records the call and returns the configured accounts and error.
func (m *MockAccountStore) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Account, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

// MockCountryStore is a testify mock for store.CountryStore.
type MockCountryStore struct {
	mock.Mock
}

var _ store.CountryStore = (*MockCountryStore)(nil)

// IsAllowed records the call and returns the configured result.
func (m *MockCountryStore) IsAllowed(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}
