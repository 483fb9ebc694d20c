// Package memory provides in-memory implementations of the store interfaces.
// A single mutex guards all tables, so multi-row writes are atomic and the
// username constraint holds under concurrent registrations.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/openbank/openbank-api/internal/domain"
	"github.com/openbank/openbank-api/internal/store"
)

// DB holds the shared state behind the in-memory stores.
type DB struct {
	mu        sync.RWMutex
	customers map[string]domain.Customer // keyed by username
	byID      map[uuid.UUID]string       // customer ID -> username
	accounts  map[uuid.UUID][]domain.Account
	ibans     map[string]struct{}
	countries map[string]struct{}
}

// New creates an empty DB whose country allow-list holds allowedCountries.
func New(allowedCountries ...string) *DB {
	db := &DB{
		customers: make(map[string]domain.Customer),
		byID:      make(map[uuid.UUID]string),
		accounts:  make(map[uuid.UUID][]domain.Account),
		ibans:     make(map[string]struct{}),
		countries: make(map[string]struct{}, len(allowedCountries)),
	}
	for _, code := range allowedCountries {
		db.countries[code] = struct{}{}
	}
	return db
}

// Customers returns a store.CustomerStore backed by db.
func (db *DB) Customers() *CustomerStore { return &CustomerStore{db: db} }

// Accounts returns a store.AccountStore backed by db.
func (db *DB) Accounts() *AccountStore { return &AccountStore{db: db} }

// Countries returns a store.CountryStore backed by db.
func (db *DB) Countries() *CountryStore { return &CountryStore{db: db} }

// CustomerStore implements store.CustomerStore.
type CustomerStore struct{ db *DB }

var _ store.CustomerStore = (*CustomerStore)(nil)

// Create implements store.CustomerStore.
func (s *CustomerStore) Create(_ context.Context, customer *domain.Customer) error {
	if err := customer.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}
	for i := range customer.Accounts {
		if err := customer.Accounts[i].Validate(); err != nil {
			return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
		}
	}

	db := s.db
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, taken := db.customers[customer.Username]; taken {
		return store.ErrUsernameExists
	}
	seen := make(map[string]struct{}, len(customer.Accounts))
	for _, a := range customer.Accounts {
		if _, taken := db.ibans[a.IBAN]; taken {
			return store.ErrIBANExists
		}
		if _, dup := seen[a.IBAN]; dup {
			return store.ErrIBANExists
		}
		seen[a.IBAN] = struct{}{}
	}

	stored := *customer
	stored.Accounts = nil
	db.customers[customer.Username] = stored
	db.byID[customer.ID] = customer.Username
	for _, a := range customer.Accounts {
		db.accounts[customer.ID] = append(db.accounts[customer.ID], a)
		db.ibans[a.IBAN] = struct{}{}
	}
	return nil
}

// GetByUsername implements store.CustomerStore.
func (s *CustomerStore) GetByUsername(_ context.Context, username string) (*domain.Customer, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	c, ok := s.db.customers[username]
	if !ok {
		return nil, store.ErrCustomerNotFound
	}
	return &c, nil
}

// AccountStore implements store.AccountStore.
type AccountStore struct{ db *DB }

var _ store.AccountStore = (*AccountStore)(nil)

// Create implements store.AccountStore.
func (s *AccountStore) Create(_ context.Context, account *domain.Account) error {
	if err := account.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	db := s.db
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.byID[account.CustomerID]; !ok {
		return store.ErrCustomerNotFound
	}
	if _, taken := db.ibans[account.IBAN]; taken {
		return store.ErrIBANExists
	}

	db.accounts[account.CustomerID] = append(db.accounts[account.CustomerID], *account)
	db.ibans[account.IBAN] = struct{}{}
	return nil
}

// ListByCustomer implements store.AccountStore.
func (s *AccountStore) ListByCustomer(_ context.Context, customerID uuid.UUID) ([]domain.Account, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	// Appends happen in creation order; clone so callers cannot alias our slice.
	return slices.Clone(s.db.accounts[customerID]), nil
}

// CountryStore implements store.CountryStore.
type CountryStore struct{ db *DB }

var _ store.CountryStore = (*CountryStore)(nil)

// IsAllowed implements store.CountryStore.
func (s *CountryStore) IsAllowed(_ context.Context, code string) (bool, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	_, ok := s.db.countries[code]
	return ok, nil
}
