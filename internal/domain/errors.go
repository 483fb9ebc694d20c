package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrIneligibleAge is returned when a prospective customer is younger
	// than the minimum onboarding age.
	ErrIneligibleAge = errors.New("customer does not meet the minimum age")

	// ErrNegativeBalance is returned when an account balance would drop below zero.
	ErrNegativeBalance = errors.New("balance cannot be negative")

	// ErrInvalidAccountType is returned for account types outside the supported set.
	ErrInvalidAccountType = errors.New("invalid account type")

	// ErrInvalidCurrency is returned when a currency is not a 3-letter ISO 4217 code.
	ErrInvalidCurrency = errors.New("invalid currency code")

	ErrInvalidCountryCode = errors.New("invalid country code")
	ErrInvalidUsername    = errors.New("username must be between 3 and 20 characters")
	ErrEmptyName          = errors.New("name cannot be empty")
	ErrEmptyAddress       = errors.New("address cannot be empty")
	ErrEmptyIDDocument    = errors.New("identity document cannot be empty")
	ErrEmptyIBAN          = errors.New("IBAN cannot be empty")
	ErrEmptyCustomerID    = errors.New("customer ID cannot be empty")
	ErrEmptyPassword      = errors.New("hashed password cannot be empty")
)
