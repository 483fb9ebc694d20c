// Package main seeds a PostgreSQL database with random demo customers and
// prints their generated credentials. Usernames are demo01, demo02, ... and
// existing ones are skipped, so the command can be re-run.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"math/rand/v2"
	"os"
	"text/tabwriter"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/openbank/openbank-api/internal/config"
	"github.com/openbank/openbank-api/internal/domain"
	"github.com/openbank/openbank-api/internal/domain/identifier"
	"github.com/openbank/openbank-api/internal/platform/logger"
	"github.com/openbank/openbank-api/internal/platform/postgres"
	"github.com/openbank/openbank-api/internal/service"
	"github.com/openbank/openbank-api/internal/service/auth"
	"github.com/shopspring/decimal"
)

var (
	firstNames = []string{"Anna", "Luc", "Jonas", "Sanne", "Pieter", "Emma", "Lotte", "Finn", "Mila", "Noah"}
	lastNames  = []string{"de Vries", "Peeters", "Becker", "Jansen", "Maes", "Schmidt", "Bakker", "Claes"}
	cities     = []struct{ country, city string }{
		{"NL", "Amsterdam"}, {"NL", "Utrecht"}, {"BE", "Antwerpen"}, {"BE", "Gent"}, {"DE", "Berlin"}, {"DE", "Hamburg"},
	}
	currencies = []string{"EUR", "USD", "GBP"}
)

// maxBalanceCents caps random balances at 10000.00.
const maxBalanceCents = 1_000_000

// demoDetails returns registration input for the i-th demo customer. The
// date of birth always lies between 20 and 70 years before now.
func demoDetails(rng *rand.Rand, i int, now time.Time) domain.CustomerDetails {
	place := cities[rng.IntN(len(cities))]
	return domain.CustomerDetails{
		Name:        firstNames[rng.IntN(len(firstNames))] + " " + lastNames[rng.IntN(len(lastNames))],
		DateOfBirth: now.AddDate(-20-rng.IntN(50), 0, -rng.IntN(365)).Truncate(24 * time.Hour),
		Address:     fmt.Sprintf("Hoofdstraat %d, %s", 1+rng.IntN(200), place.city),
		Country:     place.country,
		IDDocument:  fmt.Sprintf("%s-ID-%08d", place.country, rng.IntN(100_000_000)),
		Username:    fmt.Sprintf("demo%02d", i+1),
	}
}

func main() {
	configPath := flag.String("config", "", "path to a config file (defaults to ./config.yaml when present)")
	count := flag.Int("count", 10, "number of demo customers to create")
	flag.Parse()

	if err := run(context.Background(), *configPath, *count); err != nil {
		log.Fatalf("seed: %v", err)
	}
}

func run(ctx context.Context, configPath string, count int) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to read .env file: %w", err)
	}

	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.Database.Driver != config.DriverPostgres {
		return fmt.Errorf("seeding requires the %s driver", config.DriverPostgres)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	ctx = logger.WithLogger(ctx, l)

	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := postgres.Migrate(ctx, db, postgres.MigrateUp); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	accountStore := postgres.NewPostgresAccountStore(db, l)
	ids := identifier.NewGenerator()
	accounts := service.NewAccountService(accountStore, ids, cfg.Onboarding, l)
	customers, err := service.NewCustomerService(
		postgres.NewPostgresCustomerStore(db, l),
		service.NewCountryPolicy(postgres.NewPostgresCountryStore(db, l)),
		accounts,
		ids,
		auth.NewBcryptHasher(cfg.Auth.BCryptCost),
		cfg.Onboarding,
		l,
	)
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	now := time.Now().UTC()

	out := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(out, "USERNAME\tPASSWORD\tACCOUNTS")

	for i := 0; i < count; i++ {
		details := demoDetails(rng, i, now)
		customer, password, err := customers.Register(ctx, details)
		if errors.Is(err, service.ErrUsernameTaken) {
			l.Info("skipping existing customer", slog.String("username", details.Username))
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to register %s: %w", details.Username, err)
		}

		opened := 1
		if rng.IntN(2) == 0 {
			if err := openFunded(ctx, accountStore, ids, cfg.Onboarding.IBANCountry, customer, rng); err != nil {
				return fmt.Errorf("failed to open second account for %s: %w", customer.Username, err)
			}
			opened++
		}

		_, _ = fmt.Fprintf(out, "%s\t%s\t%d\n", customer.Username, password, opened)
	}

	return out.Flush()
}

// openFunded persists a second account of random type and currency that
// carries a starting balance, which the public account API never sets.
func openFunded(
	ctx context.Context,
	accounts *postgres.PostgresAccountStore,
	ids identifier.Source,
	ibanCountry string,
	customer *domain.Customer,
	rng *rand.Rand,
) error {
	balance, err := domain.NewBalance(decimal.New(rng.Int64N(maxBalanceCents+1), -2))
	if err != nil {
		return err
	}

	types := domain.AccountTypes()
	accountType := types[rng.IntN(len(types))]
	currency := currencies[rng.IntN(len(currencies))]

	return service.WithFreshIBAN(ids, ibanCountry, func(iban string) error {
		account, err := domain.NewAccount(customer.ID, iban, accountType, currency, balance, time.Now())
		if err != nil {
			return err
		}
		return accounts.Create(ctx, account)
	})
}
