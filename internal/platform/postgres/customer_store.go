package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/openbank/openbank-api/internal/domain"
	"github.com/openbank/openbank-api/internal/platform/logger"
	"github.com/openbank/openbank-api/internal/store"
)

// PostgresCustomerStore implements the store.CustomerStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCustomerStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCustomerStore creates a new PostgreSQL implementation of the CustomerStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresCustomerStore(db store.DBTX, logger *slog.Logger) *PostgresCustomerStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCustomerStore{
		db:     db,
		logger: logger.With(slog.String("component", "customer_store")),
	}
}

// Ensure PostgresCustomerStore implements store.CustomerStore interface
var _ store.CustomerStore = (*PostgresCustomerStore)(nil)

// WithTx returns a new store that runs its statements inside tx.
func (s *PostgresCustomerStore) WithTx(tx *sql.Tx) *PostgresCustomerStore {
	return &PostgresCustomerStore{db: tx, logger: s.logger}
}

// Create implements store.CustomerStore.Create.
// The customer row and every entry of customer.Accounts are inserted in one
// transaction. When the store is already bound to a transaction, that
// transaction is used and committing is left to its owner.
func (s *PostgresCustomerStore) Create(ctx context.Context, customer *domain.Customer) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := customer.Validate(); err != nil {
		log.Warn("customer validation failed during create",
			slog.String("error", err.Error()),
			slog.String("customer_id", customer.ID.String()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}
	for i := range customer.Accounts {
		if err := customer.Accounts[i].Validate(); err != nil {
			return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
		}
	}

	db, ok := s.db.(*sql.DB)
	if !ok {
		return s.insert(ctx, customer)
	}
	return store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
		return s.WithTx(tx).insert(ctx, customer)
	})
}

func (s *PostgresCustomerStore) insert(ctx context.Context, customer *domain.Customer) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO customers (id, name, date_of_birth, address, country, id_document,
			username, hashed_password, registered_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		customer.ID,
		customer.Name,
		customer.DateOfBirth,
		customer.Address,
		customer.Country,
		customer.IDDocument,
		customer.Username,
		customer.HashedPassword,
		customer.RegisteredAt,
	)
	if err != nil {
		err = MapError(err)
		if errors.Is(err, store.ErrUsernameExists) {
			log.Debug("username already registered", slog.String("username", customer.Username))
		} else {
			log.Error("failed to create customer",
				slog.String("error", err.Error()),
				slog.String("customer_id", customer.ID.String()))
		}
		return err
	}

	accounts := &PostgresAccountStore{db: s.db, logger: s.logger}
	for i := range customer.Accounts {
		if err := accounts.insert(ctx, &customer.Accounts[i]); err != nil {
			return err
		}
	}

	log.Info("customer created",
		slog.String("customer_id", customer.ID.String()),
		slog.Int("accounts", len(customer.Accounts)))
	return nil
}

// GetByUsername implements store.CustomerStore.GetByUsername.
// Returns store.ErrCustomerNotFound if no customer holds the username.
func (s *PostgresCustomerStore) GetByUsername(ctx context.Context, username string) (*domain.Customer, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, date_of_birth, address, country, id_document,
			username, hashed_password, registered_at
		FROM customers
		WHERE username = $1
	`

	var c domain.Customer
	err := s.db.QueryRowContext(ctx, query, username).Scan(
		&c.ID,
		&c.Name,
		&c.DateOfBirth,
		&c.Address,
		&c.Country,
		&c.IDDocument,
		&c.Username,
		&c.HashedPassword,
		&c.RegisteredAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("customer not found", slog.String("username", username))
			return nil, store.ErrCustomerNotFound
		}
		log.Error("failed to get customer by username",
			slog.String("error", err.Error()),
			slog.String("username", username))
		return nil, MapError(err)
	}

	c.DateOfBirth = c.DateOfBirth.UTC()
	c.RegisteredAt = c.RegisteredAt.UTC()
	return &c, nil
}
