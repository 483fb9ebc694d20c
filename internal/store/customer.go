package store

import (
	"context"

	"github.com/openbank/openbank-api/internal/domain"
)

// CustomerStore defines the interface for customer data persistence.
type CustomerStore interface {
	// Create saves a new customer together with every account in
	// customer.Accounts. Either all rows persist or none do.
	// Returns ErrUsernameExists if the username is already taken, even when
	// a concurrent registration won the race after the caller's pre-check.
	// Returns ErrIBANExists if one of the accounts collides on IBAN.
	Create(ctx context.Context, customer *domain.Customer) error

	// GetByUsername retrieves a customer by username. The lookup is exact.
	// Returns ErrCustomerNotFound if the customer does not exist.
	// Accounts are not loaded; use AccountStore.ListByCustomer.
	GetByUsername(ctx context.Context, username string) (*domain.Customer, error)
}
