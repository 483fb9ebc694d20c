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
	"github.com/openbank/openbank-api/internal/service/auth"
	"github.com/openbank/openbank-api/internal/store"
)

// CustomerService registers customers and verifies their credentials.
type CustomerService interface {
	// Register onboards a new customer with a generated password and an initial
	// checking account. The plaintext password is returned exactly once.
	Register(ctx context.Context, details domain.CustomerDetails) (*domain.Customer, string, error)

	// Verify checks a username/password pair. Unknown users and wrong passwords
	// both yield ErrInvalidCredentials.
	Verify(ctx context.Context, username, password string) (*domain.Customer, error)

	// Lookup resolves an authenticated username to its customer.
	// Returns ErrCustomerNotFound if it no longer exists.
	Lookup(ctx context.Context, username string) (*domain.Customer, error)
}

// CustomerServiceImpl implements the CustomerService interface
type CustomerServiceImpl struct {
	customers store.CustomerStore
	policy    EligibilityPolicy
	ledger    AccountService
	ids       identifier.Source
	hasher    auth.PasswordHasher
	cfg       config.OnboardingConfig
	now       func() time.Time
	loc       *time.Location
	metrics   *metrics.Metrics
	logger    *slog.Logger

	// dummyHash is compared against when the username is unknown, so that
	// Verify spends the same bcrypt work either way.
	dummyHash string
}

var _ CustomerService = (*CustomerServiceImpl)(nil)

// NewCustomerService creates a new CustomerService
func NewCustomerService(
	customers store.CustomerStore,
	policy EligibilityPolicy,
	ledger AccountService,
	ids identifier.Source,
	hasher auth.PasswordHasher,
	cfg config.OnboardingConfig,
	logger *slog.Logger,
	opts ...Option,
) (*CustomerServiceImpl, error) {
	loc, err := ageLocation(cfg.TimeZone)
	if err != nil {
		return nil, err
	}

	dummyHash, err := hasher.Hash("timing-equalizer-password")
	if err != nil {
		return nil, fmt.Errorf("failed to prepare credential verifier: %w", err)
	}

	o := applyOptions(opts)
	return &CustomerServiceImpl{
		customers: customers,
		policy:    policy,
		ledger:    ledger,
		ids:       ids,
		hasher:    hasher,
		cfg:       onboardingDefaults(cfg),
		now:       o.now,
		loc:       loc,
		metrics:   o.metrics,
		logger:    logger.With("component", "customer_service"),
		dummyHash: dummyHash,
	}, nil
}

// Register implements CustomerService.
//
// Checks run in order: minimum age, country eligibility, username
// availability. Only then is a password generated and the customer persisted
// together with its initial account in a single atomic store call; a
// concurrent registration that takes the username first surfaces as
// ErrUsernameTaken from the store.
func (s *CustomerServiceImpl) Register(
	ctx context.Context,
	details domain.CustomerDetails,
) (*domain.Customer, string, error) {
	start := time.Now()
	log := logger.FromContextOrDefault(ctx, s.logger)

	outcome := metrics.OutcomeError
	defer func() {
		s.metrics.RecordRegistration(outcome)
		s.metrics.ObserveRegistration(start)
	}()

	if err := domain.CheckAge(details.DateOfBirth, s.now().In(s.loc), s.cfg.MinimumAge); err != nil {
		outcome = metrics.OutcomeIneligibleAge
		log.Debug("registration rejected: age", "username", details.Username)
		return nil, "", err
	}

	allowed, err := s.policy.IsAllowed(ctx, details.Country)
	if err != nil {
		log.Error("registration failed: eligibility check", "error", err)
		return nil, "", fmt.Errorf("failed to check eligibility: %w", err)
	}
	if !allowed {
		outcome = metrics.OutcomeCountryNotAllowed
		log.Debug("registration rejected: country",
			"username", details.Username,
			"country", details.Country)
		return nil, "", fmt.Errorf("%w: %q", ErrCountryNotAllowed, details.Country)
	}

	if err := domain.ValidateUsername(details.Username); err != nil {
		return nil, "", err
	}

	_, err = s.customers.GetByUsername(ctx, details.Username)
	switch {
	case err == nil:
		outcome = metrics.OutcomeUsernameTaken
		log.Debug("registration rejected: username taken", "username", details.Username)
		return nil, "", ErrUsernameTaken
	case !errors.Is(err, store.ErrCustomerNotFound):
		log.Error("registration failed: username lookup", "error", err)
		return nil, "", fmt.Errorf("failed to check username: %w", err)
	}

	password, err := s.ids.Password(s.cfg.PasswordLength)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate password: %w", err)
	}
	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	customer, err := domain.NewCustomer(details, hashed, s.now())
	if err != nil {
		return nil, "", err
	}

	err = WithFreshIBAN(s.ids, s.cfg.IBANCountry, func(iban string) error {
		account, err := s.ledger.InitialAccount(customer, iban)
		if err != nil {
			return err
		}
		customer.Accounts = []domain.Account{*account}
		return s.customers.Create(ctx, customer)
	})
	if err != nil {
		if errors.Is(err, store.ErrUsernameExists) {
			outcome = metrics.OutcomeUsernameTaken
			log.Debug("registration lost username race", "username", details.Username)
			return nil, "", ErrUsernameTaken
		}
		log.Error("registration failed: persist", "error", err, "username", details.Username)
		return nil, "", fmt.Errorf("failed to save customer: %w", err)
	}

	outcome = metrics.OutcomeSuccess
	s.metrics.RecordAccountOpened(string(domain.AccountTypeChecking))
	log.Info("customer registered",
		"customer_id", customer.ID,
		"username", customer.Username,
		"country", customer.Country)

	return customer, password, nil
}

// Verify implements CustomerService.
func (s *CustomerServiceImpl) Verify(
	ctx context.Context,
	username, password string,
) (*domain.Customer, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	customer, err := s.customers.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrCustomerNotFound) {
			_ = s.hasher.Compare(s.dummyHash, password)
			s.metrics.RecordLogon(metrics.OutcomeInvalidCredentials)
			log.Debug("logon rejected", "username", username)
			return nil, ErrInvalidCredentials
		}
		s.metrics.RecordLogon(metrics.OutcomeError)
		log.Error("logon failed: customer lookup", "error", err)
		return nil, fmt.Errorf("failed to look up customer: %w", err)
	}

	if err := s.hasher.Compare(customer.HashedPassword, password); err != nil {
		if !errors.Is(err, auth.ErrPasswordMismatch) {
			log.Error("stored password hash is unusable",
				"error", err,
				"customer_id", customer.ID)
		}
		s.metrics.RecordLogon(metrics.OutcomeInvalidCredentials)
		log.Debug("logon rejected", "username", username)
		return nil, ErrInvalidCredentials
	}

	s.metrics.RecordLogon(metrics.OutcomeSuccess)
	return customer, nil
}

// Lookup implements CustomerService.
func (s *CustomerServiceImpl) Lookup(ctx context.Context, username string) (*domain.Customer, error) {
	customer, err := s.customers.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrCustomerNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to look up customer: %w", err)
	}
	return customer, nil
}
