package postgres

import (
	"context"
	"log/slog"

	"github.com/openbank/openbank-api/internal/store"
)

// PostgresCountryStore reads the allowed_countries reference table.
type PostgresCountryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCountryStore creates a CountryStore backed by PostgreSQL.
func NewPostgresCountryStore(db store.DBTX, logger *slog.Logger) *PostgresCountryStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresCountryStore{
		db:     db,
		logger: logger.With(slog.String("component", "country_store")),
	}
}

var _ store.CountryStore = (*PostgresCountryStore)(nil)

// IsAllowed implements store.CountryStore.IsAllowed.
func (s *PostgresCountryStore) IsAllowed(ctx context.Context, code string) (bool, error) {
	var allowed bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM allowed_countries WHERE code = $1)`,
		code,
	).Scan(&allowed)
	if err != nil {
		s.logger.Error("failed to check country allow-list",
			slog.String("error", err.Error()),
			slog.String("country", code))
		return false, MapError(err)
	}
	return allowed, nil
}
