package mocks

import (
	"context"

	"github.com/openbank/openbank-api/internal/domain"
	"github.com/openbank/openbank-api/internal/service"
)

// MockCustomerService implements service.CustomerService for handler tests.
// Unset function fields return zero values.
type MockCustomerService struct {
	RegisterFn func(ctx context.Context, details domain.CustomerDetails) (*domain.Customer, string, error)
	VerifyFn   func(ctx context.Context, username, password string) (*domain.Customer, error)
	LookupFn   func(ctx context.Context, username string) (*domain.Customer, error)
}

var _ service.CustomerService = (*MockCustomerService)(nil)

// Register implements service.CustomerService.
func (m *MockCustomerService) Register(
	ctx context.Context,
	details domain.CustomerDetails,
) (*domain.Customer, string, error) {
	if m.RegisterFn != nil {
		return m.RegisterFn(ctx, details)
	}
	return nil, "", nil
}

// Verify implements service.CustomerService.
func (m *MockCustomerService) Verify(ctx context.Context, username, password string) (*domain.Customer, error) {
	if m.VerifyFn != nil {
		return m.VerifyFn(ctx, username, password)
	}
	return nil, nil
}

// Lookup implements service.CustomerService.
func (m *MockCustomerService) Lookup(ctx context.Context, username string) (*domain.Customer, error) {
	if m.LookupFn != nil {
		return m.LookupFn(ctx, username)
	}
	return nil, nil
}

// MockAccountService implements service.AccountService for handler tests.
type MockAccountService struct {
	OpenAccountFn func(
		ctx context.Context,
		customer *domain.Customer,
		accountType domain.AccountType,
		currency string,
	) (*domain.Account, error)
	ListAccountsFn   func(ctx context.Context, customer *domain.Customer) ([]domain.Account, error)
	InitialAccountFn func(customer *domain.Customer, iban string) (*domain.Account, error)
}

var _ service.AccountService = (*MockAccountService)(nil)

// OpenAccount implements service.AccountService.
func (m *MockAccountService) OpenAccount(
	ctx context.Context,
	customer *domain.Customer,
	accountType domain.AccountType,
	currency string,
) (*domain.Account, error) {
	if m.OpenAccountFn != nil {
		return m.OpenAccountFn(ctx, customer, accountType, currency)
	}
	return nil, nil
}

// ListAccounts implements service.AccountService.
func (m *MockAccountService) ListAccounts(ctx context.Context, customer *domain.Customer) ([]domain.Account, error) {
	if m.ListAccountsFn != nil {
		return m.ListAccountsFn(ctx, customer)
	}
	return nil, nil
}

// InitialAccount implements service.AccountService.
func (m *MockAccountService) InitialAccount(customer *domain.Customer, iban string) (*domain.Account, error) {
	if m.InitialAccountFn != nil {
		return m.InitialAccountFn(customer, iban)
	}
	return nil, nil
}
