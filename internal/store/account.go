package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/openbank/openbank-api/internal/domain"
)

// AccountStore defines the interface for account data persistence.
type AccountStore interface {
	// Create saves a new account for an existing customer.
	// Returns ErrIBANExists on an IBAN collision and ErrCustomerNotFound
	// if the owning customer does not exist.
	Create(ctx context.Context, account *domain.Account) error

	// ListByCustomer returns the customer's accounts ordered by creation time.
	// An empty slice (not an error) is returned when there are none.
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Account, error)
}
