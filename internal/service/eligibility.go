package service

import (
	"context"
	"fmt"

	"github.com/openbank/openbank-api/internal/domain"
	"github.com/openbank/openbank-api/internal/store"
)

// EligibilityPolicy decides whether customers from a country may be onboarded.
type EligibilityPolicy interface {
	// IsAllowed reports whether countryCode may onboard. Unknown or malformed
	// codes yield false without an error; errors are reserved for store faults.
	IsAllowed(ctx context.Context, countryCode string) (bool, error)
}

// CountryPolicy is an EligibilityPolicy backed by the country allow-list.
type CountryPolicy struct {
	countries store.CountryStore
}

var _ EligibilityPolicy = (*CountryPolicy)(nil)

// NewCountryPolicy creates a CountryPolicy reading from countries.
func NewCountryPolicy(countries store.CountryStore) *CountryPolicy {
	return &CountryPolicy{countries: countries}
}

// IsAllowed implements EligibilityPolicy. The lookup is case-sensitive.
func (p *CountryPolicy) IsAllowed(ctx context.Context, countryCode string) (bool, error) {
	if !domain.ValidCountryCode(countryCode) {
		return false, nil
	}

	allowed, err := p.countries.IsAllowed(ctx, countryCode)
	if err != nil {
		return false, fmt.Errorf("failed to check country allow-list: %w", err)
	}
	return allowed, nil
}
