package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/openbank/openbank-api/internal/domain"
	"github.com/openbank/openbank-api/internal/platform/logger"
	"github.com/openbank/openbank-api/internal/store"
)

// PostgresAccountStore implements the store.AccountStore interface
// using a PostgreSQL database as the storage backend.
type PostgresAccountStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAccountStore creates a new PostgreSQL implementation of the AccountStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresAccountStore(db store.DBTX, logger *slog.Logger) *PostgresAccountStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresAccountStore{
		db:     db,
		logger: logger.With(slog.String("component", "account_store")),
	}
}

var _ store.AccountStore = (*PostgresAccountStore)(nil)

// WithTx returns a new store that runs its statements inside tx.
func (s *PostgresAccountStore) WithTx(tx *sql.Tx) *PostgresAccountStore {
	return &PostgresAccountStore{db: tx, logger: s.logger}
}

// Create implements store.AccountStore.Create.
// Returns store.ErrIBANExists on an IBAN collision and store.ErrCustomerNotFound
// when the owning customer does not exist.
func (s *PostgresAccountStore) Create(ctx context.Context, account *domain.Account) error {
	if err := account.Validate(); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Warn("account validation failed during create",
			slog.String("error", err.Error()),
			slog.String("account_id", account.ID.String()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}
	return s.insert(ctx, account)
}

func (s *PostgresAccountStore) insert(ctx context.Context, account *domain.Account) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO accounts (id, customer_id, iban, account_type, currency, balance, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		account.ID,
		account.CustomerID,
		account.IBAN,
		string(account.Type),
		account.Currency,
		account.Balance,
		account.CreatedAt,
	)
	if err != nil {
		err = MapError(err)
		switch {
		case errors.Is(err, store.ErrIBANExists):
			log.Debug("iban collision", slog.String("account_id", account.ID.String()))
		case errors.Is(err, store.ErrCustomerNotFound):
			log.Warn("account owner does not exist",
				slog.String("customer_id", account.CustomerID.String()))
		default:
			log.Error("failed to create account",
				slog.String("error", err.Error()),
				slog.String("account_id", account.ID.String()),
				slog.String("customer_id", account.CustomerID.String()))
		}
		return err
	}

	log.Debug("account created",
		slog.String("account_id", account.ID.String()),
		slog.String("account_type", string(account.Type)))
	return nil
}

// ListByCustomer implements store.AccountStore.ListByCustomer.
func (s *PostgresAccountStore) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Account, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, customer_id, iban, account_type, currency, balance, created_at
		FROM accounts
		WHERE customer_id = $1
		ORDER BY seq
	`
	rows, err := s.db.QueryContext(ctx, query, customerID)
	if err != nil {
		log.Error("failed to list accounts",
			slog.String("error", err.Error()),
			slog.String("customer_id", customerID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	accounts := []domain.Account{}
	for rows.Next() {
		var (
			a           domain.Account
			accountType string
		)
		if err := rows.Scan(
			&a.ID,
			&a.CustomerID,
			&a.IBAN,
			&accountType,
			&a.Currency,
			&a.Balance,
			&a.CreatedAt,
		); err != nil {
			return nil, MapError(err)
		}
		a.Type = domain.AccountType(accountType)
		a.CreatedAt = a.CreatedAt.UTC()
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return accounts, nil
}
