package identifier

import (
	"errors"
	"fmt"

	"github.com/openbank/openbank-api/internal/domain"
)

// ErrInvalidIBAN is returned when a string cannot be interpreted as an IBAN.
var ErrInvalidIBAN = errors.New("invalid IBAN")

const (
	// DefaultIBANCountry is the country prefix used when none is configured.
	DefaultIBANCountry = "NL"

	bankCodeLength      = 4
	accountNumberLength = 10
)

// CheckDigits computes the ISO 7064 MOD-97-10 check digits for bban issued
// under countryCode. The result is always two digits, zero-padded.
func CheckDigits(countryCode, bban string) (string, error) {
	if !isCountryPrefix(countryCode) {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidCountryCode, countryCode)
	}

	remainder, err := mod97(bban + countryCode + "00")
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%02d", 98-remainder), nil
}

// Valid reports whether iban is well formed and its check digits verify,
// i.e. the rearranged number reduces to 1 modulo 97.
func Valid(iban string) bool {
	if len(iban) < 5 || !isCountryPrefix(iban[:2]) {
		return false
	}
	if !isDigit(iban[2]) || !isDigit(iban[3]) {
		return false
	}

	remainder, err := mod97(iban[4:] + iban[:4])
	return err == nil && remainder == 1
}

// mod97 reduces the numeral formed by s modulo 97, one decimal digit at a
// time. Letters expand to two digits, A=10 through Z=35.
func mod97(s string) (int, error) {
	remainder := 0
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case isDigit(ch):
			remainder = (remainder*10 + int(ch-'0')) % 97
		case ch >= 'A' && ch <= 'Z':
			v := int(ch-'A') + 10
			remainder = (remainder*10 + v/10) % 97
			remainder = (remainder*10 + v%10) % 97
		default:
			return 0, fmt.Errorf("%w: unexpected character %q", ErrInvalidIBAN, ch)
		}
	}
	return remainder, nil
}

func isCountryPrefix(code string) bool {
	return len(code) == 2 &&
		code[0] >= 'A' && code[0] <= 'Z' &&
		code[1] >= 'A' && code[1] <= 'Z'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
