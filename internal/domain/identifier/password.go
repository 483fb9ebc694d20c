package identifier

import "strings"

const (
	// DefaultPasswordLength is the length of passwords issued at registration.
	DefaultPasswordLength = 12

	// MinPasswordLength is the floor that shorter requested lengths are clamped to.
	MinPasswordLength = 8

	// PasswordPunctuation is the fixed set of symbols passwords may contain.
	PasswordPunctuation = "!@#$%^&*()-_=+"

	maxPasswordAttempts = 100
)

var passwordAlphabet = lowerLetters + upperLetters + digits + PasswordPunctuation

// requiredClasses must each be represented at least once in a password.
var requiredClasses = []string{lowerLetters, upperLetters, digits}

// Password returns a random password of the given length (clamped up to
// MinPasswordLength) that contains at least one lowercase letter, one
// uppercase letter and one digit.
//
// Draws are rejected until they satisfy the class requirement. After
// maxPasswordAttempts rejected draws, one character of each class is written
// over distinct random positions of the last draw.
func (g *Generator) Password(length int) (string, error) {
	if length < MinPasswordLength {
		length = MinPasswordLength
	}

	buf := make([]byte, length)
	for range maxPasswordAttempts {
		if err := g.fill(buf, passwordAlphabet); err != nil {
			return "", err
		}
		if hasRequiredClasses(buf) {
			return string(buf), nil
		}
	}

	if err := g.injectRequiredClasses(buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

func (g *Generator) fill(buf []byte, alphabet string) error {
	for i := range buf {
		j, err := g.index(len(alphabet))
		if err != nil {
			return err
		}
		buf[i] = alphabet[j]
	}
	return nil
}

func (g *Generator) injectRequiredClasses(buf []byte) error {
	positions := make([]int, len(buf))
	for i := range positions {
		positions[i] = i
	}

	// Partial Fisher-Yates: the first len(requiredClasses) slots end up distinct.
	for i, class := range requiredClasses {
		j, err := g.index(len(positions) - i)
		if err != nil {
			return err
		}
		positions[i], positions[i+j] = positions[i+j], positions[i]

		k, err := g.index(len(class))
		if err != nil {
			return err
		}
		buf[positions[i]] = class[k]
	}
	return nil
}

func hasRequiredClasses(buf []byte) bool {
	s := string(buf)
	for _, class := range requiredClasses {
		if !strings.ContainsAny(s, class) {
			return false
		}
	}
	return true
}
