package mocks

import (
	"errors"

	"github.com/openbank/openbank-api/internal/domain/identifier"
)

// MockIdentifierSource implements identifier.Source for testing.
// IBANs are handed out from the IBANs queue in order; once it is exhausted the
// last entry is repeated.
type MockIdentifierSource struct {
	IBANs   []string
	Pass    string
	IBANErr error
	PassErr error

	// IBANCalls records the country codes requested.
	IBANCalls []string
}

var _ identifier.Source = (*MockIdentifierSource)(nil)

// IBAN implements identifier.Source.
func (m *MockIdentifierSource) IBAN(countryCode string) (string, error) {
	m.IBANCalls = append(m.IBANCalls, countryCode)
	if m.IBANErr != nil {
		return "", m.IBANErr
	}
	if len(m.IBANs) == 0 {
		return "", errors.New("mock identifier source has no IBANs")
	}
	i := min(len(m.IBANCalls), len(m.IBANs)) - 1
	return m.IBANs[i], nil
}

// Password implements identifier.Source.
func (m *MockIdentifierSource) Password(int) (string, error) {
	return m.Pass, m.PassErr
}
