package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/openbank/openbank-api/internal/config"
	"github.com/openbank/openbank-api/internal/domain"
	"github.com/openbank/openbank-api/internal/domain/identifier"
	"github.com/openbank/openbank-api/internal/mocks"
	"github.com/openbank/openbank-api/internal/platform/memory"
	"github.com/openbank/openbank-api/internal/platform/metrics"
	"github.com/openbank/openbank-api/internal/service"
	"github.com/openbank/openbank-api/internal/service/auth"
	"github.com/openbank/openbank-api/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var fixedNow = time.Date(2026, time.October, 15, 12, 0, 0, 0, time.UTC)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testOnboarding() config.OnboardingConfig {
	return config.OnboardingConfig{
		MinimumAge:      domain.DefaultMinimumAge,
		PasswordLength:  identifier.DefaultPasswordLength,
		IBANCountry:     "NL",
		DefaultCurrency: "EUR",
		TimeZone:        "UTC",
	}
}

func details(username string) domain.CustomerDetails {
	return domain.CustomerDetails{
		Name:        "Bob Jansen",
		DateOfBirth: time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC),
		Address:     "Damrak 1, Amsterdam",
		Country:     "NL",
		IDDocument:  "NX1234567",
		Username:    username,
	}
}

type fixture struct {
	db       *memory.DB
	accounts *service.AccountServiceImpl
	svc      *service.CustomerServiceImpl
	metrics  *metrics.Metrics
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWith(t, testOnboarding(), fixedNow)
}

func newFixtureWith(t *testing.T, cfg config.OnboardingConfig, now time.Time) *fixture {
	t.Helper()

	db := memory.New("NL", "BE", "DE")
	m := metrics.New(prometheus.NewRegistry())
	ids := identifier.NewGenerator()
	opts := []service.Option{service.WithClock(func() time.Time { return now }), service.WithMetrics(m)}

	accounts := service.NewAccountService(db.Accounts(), ids, cfg, testLogger(), opts...)
	svc, err := service.NewCustomerService(
		db.Customers(),
		service.NewCountryPolicy(db.Countries()),
		accounts,
		ids,
		auth.NewBcryptHasher(bcrypt.MinCost),
		cfg,
		testLogger(),
		opts...,
	)
	require.NoError(t, err)

	return &fixture{db: db, accounts: accounts, svc: svc, metrics: m}
}

func TestCustomerService_Register(t *testing.T) {
	t.Parallel()

	t.Run("creates customer with checking account and password", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		ctx := context.Background()

		customer, password, err := f.svc.Register(ctx, details("bob"))
		require.NoError(t, err)

		assert.Len(t, password, identifier.DefaultPasswordLength)
		assert.NotEqual(t, password, customer.HashedPassword)
		assert.Equal(t, fixedNow, customer.RegisteredAt)

		require.Len(t, customer.Accounts, 1)
		account := customer.Accounts[0]
		assert.Equal(t, domain.AccountTypeChecking, account.Type)
		assert.Equal(t, "EUR", account.Currency)
		assert.True(t, account.Balance.IsZero())
		assert.True(t, identifier.Valid(account.IBAN), "generated IBAN %q must be valid", account.IBAN)
		assert.Equal(t, "NL", account.IBAN[:2])

		stored, err := f.db.Accounts().ListByCustomer(ctx, customer.ID)
		require.NoError(t, err)
		assert.Equal(t, customer.Accounts, stored)

		assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.Registrations.WithLabelValues(metrics.OutcomeSuccess)))
		assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.AccountsOpened.WithLabelValues("checking")))
	})

	t.Run("issued password verifies", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		ctx := context.Background()

		registered, password, err := f.svc.Register(ctx, details("alice"))
		require.NoError(t, err)

		verified, err := f.svc.Verify(ctx, "alice", password)
		require.NoError(t, err)
		assert.Equal(t, registered.ID, verified.ID)
	})

	t.Run("exactly minimum age is eligible", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		d := details("turned18")
		d.DateOfBirth = time.Date(2008, time.October, 15, 0, 0, 0, 0, time.UTC)

		_, _, err := f.svc.Register(context.Background(), d)
		assert.NoError(t, err)
	})

	t.Run("one day short of minimum age", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		d := details("almost18")
		d.DateOfBirth = time.Date(2008, time.October, 16, 0, 0, 0, 0, time.UTC)

		_, _, err := f.svc.Register(context.Background(), d)
		assert.ErrorIs(t, err, domain.ErrIneligibleAge)

		_, err = f.db.Customers().GetByUsername(context.Background(), "almost18")
		assert.ErrorIs(t, err, store.ErrCustomerNotFound)
		assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.Registrations.WithLabelValues(metrics.OutcomeIneligibleAge)))
	})

	t.Run("today is read in the configured time zone", func(t *testing.T) {
		t.Parallel()
		// 20:00 UTC on Oct 14 is already Oct 15 in Tokyo.
		now := time.Date(2026, time.October, 14, 20, 0, 0, 0, time.UTC)
		d := details("tokyo18")
		d.DateOfBirth = time.Date(2008, time.October, 15, 0, 0, 0, 0, time.UTC)

		cfg := testOnboarding()
		cfg.TimeZone = "Asia/Tokyo"
		_, _, err := newFixtureWith(t, cfg, now).svc.Register(context.Background(), d)
		assert.NoError(t, err)

		_, _, err = newFixtureWith(t, testOnboarding(), now).svc.Register(context.Background(), d)
		assert.ErrorIs(t, err, domain.ErrIneligibleAge)
	})

	t.Run("zero minimum age falls back to the default", func(t *testing.T) {
		t.Parallel()
		cfg := testOnboarding()
		cfg.MinimumAge = 0

		d := details("child")
		d.DateOfBirth = fixedNow.AddDate(-10, 0, 0)
		_, _, err := newFixtureWith(t, cfg, fixedNow).svc.Register(context.Background(), d)
		assert.ErrorIs(t, err, domain.ErrIneligibleAge)
	})

	t.Run("country not on allow-list", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		for _, country := range []string{"US", "nl", "", "NLD"} {
			d := details("traveller")
			d.Country = country

			_, _, err := f.svc.Register(context.Background(), d)
			assert.ErrorIs(t, err, service.ErrCountryNotAllowed, "country %q", country)
		}
	})

	t.Run("age is checked before country", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		d := details("youngster")
		d.Country = "US"
		d.DateOfBirth = fixedNow.AddDate(-10, 0, 0)

		_, _, err := f.svc.Register(context.Background(), d)
		assert.ErrorIs(t, err, domain.ErrIneligibleAge)
	})

	t.Run("invalid username", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		for _, username := range []string{"", "ab", "abcdefghijklmnopqrstu"} {
			_, _, err := f.svc.Register(context.Background(), details(username))
			assert.ErrorIs(t, err, domain.ErrInvalidUsername, "username %q", username)
		}
	})

	t.Run("missing identity fields", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		d := details("noaddress")
		d.Address = ""

		_, _, err := f.svc.Register(context.Background(), d)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("duplicate username", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		ctx := context.Background()

		first, _, err := f.svc.Register(ctx, details("bob"))
		require.NoError(t, err)

		_, _, err = f.svc.Register(ctx, details("bob"))
		assert.ErrorIs(t, err, service.ErrUsernameTaken)

		stored, err := f.db.Customers().GetByUsername(ctx, "bob")
		require.NoError(t, err)
		assert.Equal(t, first.ID, stored.ID)
		assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.Registrations.WithLabelValues(metrics.OutcomeUsernameTaken)))
	})

	t.Run("concurrent registrations of one username", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		const workers = 10
		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			successes int
			taken     int
		)
		for range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _, err := f.svc.Register(context.Background(), details("racer"))
				mu.Lock()
				defer mu.Unlock()
				switch {
				case err == nil:
					successes++
				case errors.Is(err, service.ErrUsernameTaken):
					taken++
				default:
					t.Errorf("unexpected error: %v", err)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, successes)
		assert.Equal(t, workers-1, taken)
	})
}

func TestCustomerService_Register_StoreFailures(t *testing.T) {
	t.Parallel()

	newService := func(t *testing.T, customers store.CustomerStore, ids *mocks.MockIdentifierSource) *service.CustomerServiceImpl {
		t.Helper()
		countries := new(mocks.MockCountryStore)
		countries.On("IsAllowed", mock.Anything, "NL").Return(true, nil)

		accounts := service.NewAccountService(new(mocks.MockAccountStore), ids, testOnboarding(), testLogger())
		svc, err := service.NewCustomerService(
			customers,
			service.NewCountryPolicy(countries),
			accounts,
			ids,
			&mocks.MockPasswordHasher{},
			testOnboarding(),
			testLogger(),
			service.WithClock(func() time.Time { return fixedNow }),
		)
		require.NoError(t, err)
		return svc
	}

	t.Run("redraws colliding IBAN", func(t *testing.T) {
		t.Parallel()
		customers := new(mocks.MockCustomerStore)
		customers.On("GetByUsername", mock.Anything, "bob").Return(nil, store.ErrCustomerNotFound)
		customers.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Customer) bool {
			return c.Accounts[0].IBAN == "NL91ABNA0417164300"
		})).Return(store.ErrIBANExists).Once()
		customers.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Customer) bool {
			return c.Accounts[0].IBAN == "NL02ABNA0123456789"
		})).Return(nil).Once()

		ids := &mocks.MockIdentifierSource{
			IBANs: []string{"NL91ABNA0417164300", "NL02ABNA0123456789"},
			Pass:  "Secr3t!pass",
		}
		svc := newService(t, customers, ids)

		customer, password, err := svc.Register(context.Background(), details("bob"))
		require.NoError(t, err)
		assert.Equal(t, "Secr3t!pass", password)
		assert.Equal(t, "hashed:Secr3t!pass", customer.HashedPassword)
		assert.Equal(t, "NL02ABNA0123456789", customer.Accounts[0].IBAN)
		assert.Equal(t, []string{"NL", "NL"}, ids.IBANCalls)
		customers.AssertExpectations(t)
	})

	t.Run("gives up after repeated IBAN collisions", func(t *testing.T) {
		t.Parallel()
		customers := new(mocks.MockCustomerStore)
		customers.On("GetByUsername", mock.Anything, "bob").Return(nil, store.ErrCustomerNotFound)
		customers.On("Create", mock.Anything, mock.Anything).Return(store.ErrIBANExists)

		ids := &mocks.MockIdentifierSource{IBANs: []string{"NL91ABNA0417164300"}, Pass: "Secr3t!pass"}
		svc := newService(t, customers, ids)

		_, _, err := svc.Register(context.Background(), details("bob"))
		assert.ErrorIs(t, err, store.ErrIBANExists)
		assert.Len(t, ids.IBANCalls, 3)
	})

	t.Run("username claimed between check and insert", func(t *testing.T) {
		t.Parallel()
		customers := new(mocks.MockCustomerStore)
		customers.On("GetByUsername", mock.Anything, "bob").Return(nil, store.ErrCustomerNotFound)
		customers.On("Create", mock.Anything, mock.Anything).Return(store.ErrUsernameExists)

		ids := &mocks.MockIdentifierSource{IBANs: []string{"NL91ABNA0417164300"}, Pass: "Secr3t!pass"}
		svc := newService(t, customers, ids)

		_, _, err := svc.Register(context.Background(), details("bob"))
		assert.ErrorIs(t, err, service.ErrUsernameTaken)
	})

	t.Run("lookup failure is not reported as taken", func(t *testing.T) {
		t.Parallel()
		customers := new(mocks.MockCustomerStore)
		customers.On("GetByUsername", mock.Anything, "bob").Return(nil, store.ErrUnavailable)

		svc := newService(t, customers, &mocks.MockIdentifierSource{})

		_, _, err := svc.Register(context.Background(), details("bob"))
		assert.ErrorIs(t, err, store.ErrUnavailable)
		assert.NotErrorIs(t, err, service.ErrUsernameTaken)
		customers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("password generation failure", func(t *testing.T) {
		t.Parallel()
		customers := new(mocks.MockCustomerStore)
		customers.On("GetByUsername", mock.Anything, "bob").Return(nil, store.ErrCustomerNotFound)

		ids := &mocks.MockIdentifierSource{PassErr: errors.New("entropy exhausted")}
		svc := newService(t, customers, ids)

		_, _, err := svc.Register(context.Background(), details("bob"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "entropy exhausted")
	})
}

func TestCustomerService_Verify(t *testing.T) {
	t.Parallel()

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		ctx := context.Background()

		_, password, err := f.svc.Register(ctx, details("bob"))
		require.NoError(t, err)

		_, err = f.svc.Verify(ctx, "bob", password+"x")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)

		_, err = f.svc.Verify(ctx, "BOB", password)
		assert.ErrorIs(t, err, service.ErrInvalidCredentials, "usernames are case-sensitive")
	})

	t.Run("unknown username spends a hash comparison", func(t *testing.T) {
		t.Parallel()
		customers := new(mocks.MockCustomerStore)
		customers.On("GetByUsername", mock.Anything, "ghost").Return(nil, store.ErrCustomerNotFound)
		hasher := &mocks.MockPasswordHasher{}

		svc, err := service.NewCustomerService(
			customers,
			service.NewCountryPolicy(new(mocks.MockCountryStore)),
			nil,
			&mocks.MockIdentifierSource{},
			hasher,
			testOnboarding(),
			testLogger(),
		)
		require.NoError(t, err)

		_, err = svc.Verify(context.Background(), "ghost", "whatever")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
		assert.Equal(t, 1, hasher.CompareCalls)
	})

	t.Run("store failure is not an invalid credential", func(t *testing.T) {
		t.Parallel()
		customers := new(mocks.MockCustomerStore)
		customers.On("GetByUsername", mock.Anything, "bob").Return(nil, store.ErrUnavailable)

		svc, err := service.NewCustomerService(
			customers,
			service.NewCountryPolicy(new(mocks.MockCountryStore)),
			nil,
			&mocks.MockIdentifierSource{},
			&mocks.MockPasswordHasher{},
			testOnboarding(),
			testLogger(),
		)
		require.NoError(t, err)

		_, err = svc.Verify(context.Background(), "bob", "whatever")
		assert.ErrorIs(t, err, store.ErrUnavailable)
		assert.NotErrorIs(t, err, service.ErrInvalidCredentials)
	})
}

func TestCustomerService_Lookup(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	registered, _, err := f.svc.Register(ctx, details("carol"))
	require.NoError(t, err)

	found, err := f.svc.Lookup(ctx, "carol")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, found.ID)

	_, err = f.svc.Lookup(ctx, "dave")
	assert.ErrorIs(t, err, service.ErrCustomerNotFound)
}

func TestNewCustomerService_HasherFailure(t *testing.T) {
	hasher := &mocks.MockPasswordHasher{
		HashFn: func(string) (string, error) { return "", errors.New("hasher broken") },
	}

	_, err := service.NewCustomerService(nil, nil, nil, nil, hasher, testOnboarding(), testLogger())
	assert.Error(t, err)
}

func TestNewCustomerService_UnknownTimeZone(t *testing.T) {
	cfg := testOnboarding()
	cfg.TimeZone = "Mars/Olympus_Mons"

	_, err := service.NewCustomerService(nil, nil, nil, nil, &mocks.MockPasswordHasher{}, cfg, testLogger())
	assert.ErrorContains(t, err, "Mars/Olympus_Mons")
}
