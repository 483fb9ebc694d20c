package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity (e.g., a customer with the same username).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored, or is rejected by a storage constraint.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTransactionFailed is returned when a database transaction fails
	// to begin or commit.
	ErrTransactionFailed = errors.New("transaction failed")

	// ErrUnavailable is returned when the backing store cannot be reached.
	// Callers surface it as a service-unavailable condition.
	ErrUnavailable = errors.New("store unavailable")

	// ErrCustomerNotFound indicates that the requested customer does not exist in the store.
	ErrCustomerNotFound = fmt.Errorf("%w: customer", ErrNotFound)

	// ErrUsernameExists indicates that a customer with the given username already exists.
	ErrUsernameExists = fmt.Errorf("%w: username", ErrDuplicate)

	// ErrIBANExists indicates that an account with the given IBAN already exists.
	ErrIBANExists = fmt.Errorf("%w: iban", ErrDuplicate)
)
