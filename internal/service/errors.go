// Package service provides the onboarding, credential and ledger use cases of the bank.
package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// These errors represent expected business outcomes that callers check for
// with errors.Is(). The API layer maps them to HTTP status codes.
var (
	// ErrCountryNotAllowed indicates the applicant's country is not on the allow-list.
	// API layer should map this to HTTP 403 Forbidden.
	ErrCountryNotAllowed = errors.New("country is not eligible for onboarding")

	// ErrUsernameTaken indicates another customer already holds the username.
	// API layer should map this to HTTP 409 Conflict.
	ErrUsernameTaken = errors.New("username already registered")

	// ErrInvalidCredentials is returned for an unknown username and for a wrong
	// password alike, so callers cannot tell which one occurred.
	// API layer should map this to HTTP 401 Unauthorized.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrCustomerNotFound indicates an authenticated subject no longer resolves to a customer.
	// API layer should map this to HTTP 404 Not Found.
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrNoAccounts indicates the customer holds no accounts.
	// API layer should map this to HTTP 404 Not Found.
	ErrNoAccounts = errors.New("no accounts found for customer")
)
