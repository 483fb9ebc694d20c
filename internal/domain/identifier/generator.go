// Package identifier generates the identifiers handed out during onboarding:
// IBAN-shaped account numbers with valid MOD-97-10 check digits, and random
// initial passwords.
package identifier

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/openbank/openbank-api/internal/domain"
)

const (
	lowerLetters = "abcdefghijklmnopqrstuvwxyz"
	upperLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits       = "0123456789"
)

// Source defines the interface for identifier generation.
type Source interface {
	// IBAN returns a new IBAN-shaped identifier for countryCode.
	IBAN(countryCode string) (string, error)

	// Password returns a random password of at least MinPasswordLength characters.
	Password(length int) (string, error)
}

// Generator draws identifiers from a cryptographically secure random source.
type Generator struct {
	rand io.Reader
}

var _ Source = (*Generator)(nil)

// NewGenerator creates a Generator backed by crypto/rand.
func NewGenerator() *Generator {
	return &Generator{rand: rand.Reader}
}

// NewGeneratorWithReader creates a Generator that draws randomness from r.
func NewGeneratorWithReader(r io.Reader) *Generator {
	return &Generator{rand: r}
}

// IBAN builds {country}{check}{bank code}{account number}, where the bank code
// is four uppercase letters and the account number ten digits.
func (g *Generator) IBAN(countryCode string) (string, error) {
	if !isCountryPrefix(countryCode) {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidCountryCode, countryCode)
	}

	var bban strings.Builder
	bban.Grow(bankCodeLength + accountNumberLength)
	if err := g.writeRandom(&bban, upperLetters, bankCodeLength); err != nil {
		return "", err
	}
	if err := g.writeRandom(&bban, digits, accountNumberLength); err != nil {
		return "", err
	}

	check, err := CheckDigits(countryCode, bban.String())
	if err != nil {
		return "", err
	}

	return countryCode + check + bban.String(), nil
}

func (g *Generator) writeRandom(b *strings.Builder, alphabet string, n int) error {
	for range n {
		i, err := g.index(len(alphabet))
		if err != nil {
			return err
		}
		b.WriteByte(alphabet[i])
	}
	return nil
}

// index returns a uniform random integer in [0, n).
func (g *Generator) index(n int) (int, error) {
	v, err := rand.Int(g.rand, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("failed to read random source: %w", err)
	}
	return int(v.Int64()), nil
}
