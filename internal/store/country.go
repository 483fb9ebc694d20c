package store

import "context"

// CountryStore exposes the allow-list of countries that may onboard customers.
// It is reference data: the application reads it and never mutates it.
type CountryStore interface {
	// IsAllowed reports whether code is on the allow-list. The lookup is case-sensitive.
	IsAllowed(ctx context.Context, code string) (bool, error)
}
