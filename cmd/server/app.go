package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/openbank/openbank-api/internal/config"
	"github.com/openbank/openbank-api/internal/domain/identifier"
	"github.com/openbank/openbank-api/internal/platform/memory"
	"github.com/openbank/openbank-api/internal/platform/metrics"
	"github.com/openbank/openbank-api/internal/platform/postgres"
	"github.com/openbank/openbank-api/internal/service"
	"github.com/openbank/openbank-api/internal/service/auth"
	"github.com/openbank/openbank-api/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// db is nil with the memory driver.
	db       *sql.DB
	registry *prometheus.Registry
	metrics  *metrics.Metrics

	customerService service.CustomerService
	accountService  service.AccountService
	jwtService      auth.JWTService
}

// stores groups the persistence ports for one storage backend.
type stores struct {
	customers store.CustomerStore
	accounts  store.AccountStore
	countries store.CountryStore
}

// newApplication creates a new application instance with all dependencies
// initialized. With the postgres driver it opens the connection pool, which
// cleanup closes.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config:   cfg,
		logger:   logger,
		registry: prometheus.NewRegistry(),
	}
	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	app.metrics = metrics.New(app.registry)

	var s stores
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		db, err := openDatabase(ctx, cfg.Database.URL, logger)
		if err != nil {
			return nil, err
		}
		app.db = db
		s = stores{
			customers: postgres.NewPostgresCustomerStore(db, logger),
			accounts:  postgres.NewPostgresAccountStore(db, logger),
			countries: postgres.NewPostgresCountryStore(db, logger),
		}
	case config.DriverMemory:
		mem := memory.New(cfg.Onboarding.AllowedCountries...)
		s = stores{customers: mem.Customers(), accounts: mem.Accounts(), countries: mem.Countries()}
		logger.Warn("Using in-memory storage; data is lost on restart")
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	if err := app.wireServices(s); err != nil {
		app.cleanup()
		return nil, err
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

func (app *application) wireServices(s stores) error {
	var err error
	app.jwtService, err = auth.NewJWTService(app.config.Auth)
	if err != nil {
		return fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	app.logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", app.config.Auth.TokenLifetimeMinutes)

	ids := identifier.NewGenerator()
	opts := []service.Option{service.WithMetrics(app.metrics)}

	accounts := service.NewAccountService(s.accounts, ids, app.config.Onboarding, app.logger, opts...)
	customers, err := service.NewCustomerService(
		s.customers,
		service.NewCountryPolicy(s.countries),
		accounts,
		ids,
		auth.NewBcryptHasher(app.config.Auth.BCryptCost),
		app.config.Onboarding,
		app.logger,
		opts...,
	)
	if err != nil {
		return fmt.Errorf("failed to create customer service: %w", err)
	}

	app.accountService = accounts
	app.customerService = customers
	return nil
}

// Run serves HTTP until ctx is canceled.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		closeDatabase(app.db, app.logger)
		app.db = nil
	}
	app.logger.Info("Application shutdown completed")
}
