package domain

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	// MinUsernameLength is the shortest username accepted at registration.
	MinUsernameLength = 3
	// MaxUsernameLength is the longest username accepted at registration.
	MaxUsernameLength = 20
	// DefaultMinimumAge is the onboarding age threshold in whole years.
	DefaultMinimumAge = 18
)

// CustomerDetails holds the identity data a prospective customer supplies
// when registering. Credentials are generated, never supplied.
type CustomerDetails struct {
	Name        string
	DateOfBirth time.Time
	Address     string
	Country     string
	IDDocument  string
	Username    string
}

// Customer is a registered bank customer. A customer is the sole owner of its
// accounts; Accounts is populated by the store and is not a back-pointer graph.
type Customer struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	DateOfBirth    time.Time `json:"dob"`
	Address        string    `json:"address"`
	Country        string    `json:"country"`
	IDDocument     string    `json:"id_document"`
	Username       string    `json:"username"`
	HashedPassword string    `json:"-"` // Never expose password hash in JSON
	RegisteredAt   time.Time `json:"registered_at"`
	Accounts       []Account `json:"accounts,omitempty"`
}

// NewCustomer creates a Customer from the supplied details and an already
// hashed password, stamping it with a fresh ID and the given registration time.
// Age and country eligibility are policy decisions and are checked by the caller.
func NewCustomer(details CustomerDetails, hashedPassword string, registeredAt time.Time) (*Customer, error) {
	c := &Customer{
		ID:             uuid.New(),
		Name:           details.Name,
		DateOfBirth:    details.DateOfBirth,
		Address:        details.Address,
		Country:        details.Country,
		IDDocument:     details.IDDocument,
		Username:       details.Username,
		HashedPassword: hashedPassword,
		RegisteredAt:   registeredAt.UTC(),
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate checks if the Customer has valid data.
func (c *Customer) Validate() error {
	if c.ID == uuid.Nil {
		return fmt.Errorf("%w: %w", ErrValidation, ErrEmptyCustomerID)
	}
	if c.Name == "" {
		return fmt.Errorf("%w: %w", ErrValidation, ErrEmptyName)
	}
	if c.Address == "" {
		return fmt.Errorf("%w: %w", ErrValidation, ErrEmptyAddress)
	}
	if c.IDDocument == "" {
		return fmt.Errorf("%w: %w", ErrValidation, ErrEmptyIDDocument)
	}
	if err := ValidateUsername(c.Username); err != nil {
		return err
	}
	if !ValidCountryCode(c.Country) {
		return fmt.Errorf("%w: %w", ErrValidation, ErrInvalidCountryCode)
	}
	if c.HashedPassword == "" {
		return fmt.Errorf("%w: %w", ErrValidation, ErrEmptyPassword)
	}
	return nil
}

// ValidateUsername enforces the 3 to 20 character username rule.
func ValidateUsername(username string) error {
	n := utf8.RuneCountInString(username)
	if n < MinUsernameLength || n > MaxUsernameLength {
		return fmt.Errorf("%w: %w", ErrValidation, ErrInvalidUsername)
	}
	return nil
}

// ValidCountryCode reports whether code consists of exactly two ASCII letters.
// Case is preserved: whether "nl" is acceptable is the eligibility policy's call.
func ValidCountryCode(code string) bool {
	if len(code) != 2 {
		return false
	}
	for i := 0; i < len(code); i++ {
		ch := code[i]
		if (ch < 'A' || ch > 'Z') && (ch < 'a' || ch > 'z') {
			return false
		}
	}
	return true
}

// AgeAt returns the age in whole calendar years of someone born on dob,
// as of now. Both are compared as calendar dates in their own locations, so
// callers pass now already converted to the zone that defines "today".
// A birthday on Feb 29 is reached on Mar 1 in non-leap years.
// Dates of birth in the future yield a negative age.
func AgeAt(dob, now time.Time) int {
	years := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		years--
	}
	return years
}

// CheckAge returns ErrIneligibleAge unless dob yields an age of at least
// minimumAge years at now.
func CheckAge(dob, now time.Time, minimumAge int) error {
	if age := AgeAt(dob, now); age < minimumAge {
		return fmt.Errorf("%w: age %d is below %d", ErrIneligibleAge, age, minimumAge)
	}
	return nil
}
