package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/openbank/openbank-api/internal/config"
	"github.com/openbank/openbank-api/internal/domain"
	"github.com/openbank/openbank-api/internal/domain/identifier"
	"github.com/openbank/openbank-api/internal/platform/logger"
	"github.com/openbank/openbank-api/internal/platform/metrics"
	"github.com/openbank/openbank-api/internal/store"
	"github.com/shopspring/decimal"
)

// maxIBANAttempts bounds how often a colliding IBAN is redrawn before giving up.
const maxIBANAttempts = 3

// AccountService opens and lists the accounts owned by a customer.
type AccountService interface {
	// OpenAccount opens a zero-balance account of the given type for customer and
	// appends it to customer.Accounts. An empty currency means the default (EUR).
	OpenAccount(
		ctx context.Context,
		customer *domain.Customer,
		accountType domain.AccountType,
		currency string,
	) (*domain.Account, error)

	// ListAccounts returns the customer's accounts in creation order.
	// Returns ErrNoAccounts if the customer has none.
	ListAccounts(ctx context.Context, customer *domain.Customer) ([]domain.Account, error)

	// InitialAccount builds, without persisting, the checking account every
	// customer receives at registration.
	InitialAccount(customer *domain.Customer, iban string) (*domain.Account, error)
}

// AccountServiceImpl implements the AccountService interface
type AccountServiceImpl struct {
	accounts store.AccountStore
	ids      identifier.Source
	cfg      config.OnboardingConfig
	now      func() time.Time
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

var _ AccountService = (*AccountServiceImpl)(nil)

// NewAccountService creates a new AccountService
func NewAccountService(
	accounts store.AccountStore,
	ids identifier.Source,
	cfg config.OnboardingConfig,
	logger *slog.Logger,
	opts ...Option,
) *AccountServiceImpl {
	o := applyOptions(opts)
	return &AccountServiceImpl{
		accounts: accounts,
		ids:      ids,
		cfg:      onboardingDefaults(cfg),
		now:      o.now,
		metrics:  o.metrics,
		logger:   logger.With("component", "account_service"),
	}
}

// OpenAccount implements AccountService.
func (s *AccountServiceImpl) OpenAccount(
	ctx context.Context,
	customer *domain.Customer,
	accountType domain.AccountType,
	currency string,
) (*domain.Account, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if customer == nil {
		return nil, fmt.Errorf("%w: customer is required", domain.ErrValidation)
	}
	if currency == "" {
		currency = s.cfg.DefaultCurrency
	}

	var account *domain.Account
	err := WithFreshIBAN(s.ids, s.cfg.IBANCountry, func(iban string) error {
		a, err := domain.NewAccount(customer.ID, iban, accountType, currency, decimal.Zero, s.now())
		if err != nil {
			return err
		}
		if err := s.accounts.Create(ctx, a); err != nil {
			return err
		}
		account = a
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrCustomerNotFound) {
			return nil, ErrCustomerNotFound
		}
		if errors.Is(err, domain.ErrValidation) ||
			errors.Is(err, domain.ErrInvalidAccountType) ||
			errors.Is(err, domain.ErrInvalidCurrency) {
			log.Debug("rejected account request",
				"error", err,
				"account_type", accountType,
				"currency", currency)
			return nil, err
		}
		log.Error("failed to open account",
			"error", err,
			"customer_id", customer.ID,
			"account_type", accountType)
		return nil, fmt.Errorf("failed to open account: %w", err)
	}

	customer.Accounts = append(customer.Accounts, *account)
	s.metrics.RecordAccountOpened(string(account.Type))

	log.Info("account opened",
		"customer_id", customer.ID,
		"account_id", account.ID,
		"account_type", account.Type,
		"currency", account.Currency)

	return account, nil
}

// ListAccounts implements AccountService.
func (s *AccountServiceImpl) ListAccounts(
	ctx context.Context,
	customer *domain.Customer,
) ([]domain.Account, error) {
	if customer == nil {
		return nil, fmt.Errorf("%w: customer is required", domain.ErrValidation)
	}

	accounts, err := s.accounts.ListByCustomer(ctx, customer.ID)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list accounts",
			"error", err,
			"customer_id", customer.ID)
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if len(accounts) == 0 {
		return nil, ErrNoAccounts
	}

	customer.Accounts = accounts
	return accounts, nil
}

// InitialAccount implements AccountService.
func (s *AccountServiceImpl) InitialAccount(customer *domain.Customer, iban string) (*domain.Account, error) {
	return domain.NewAccount(
		customer.ID,
		iban,
		domain.AccountTypeChecking,
		s.cfg.DefaultCurrency,
		decimal.Zero,
		customer.RegisteredAt,
	)
}

// WithFreshIBAN calls persist with newly generated IBANs until it succeeds or
// fails with something other than store.ErrIBANExists. After maxIBANAttempts
// collisions the last collision error is returned.
func WithFreshIBAN(ids identifier.Source, country string, persist func(iban string) error) error {
	var err error
	for range maxIBANAttempts {
		var iban string
		iban, err = ids.IBAN(country)
		if err != nil {
			return fmt.Errorf("failed to generate IBAN: %w", err)
		}
		if err = persist(iban); !errors.Is(err, store.ErrIBANExists) {
			return err
		}
	}
	return err
}
