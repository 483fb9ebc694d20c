package api

import (
	"errors"
	"net/http"

	"github.com/openbank/openbank-api/internal/api/shared"
	"github.com/openbank/openbank-api/internal/domain"
	"github.com/openbank/openbank-api/internal/service"
	"github.com/openbank/openbank-api/internal/service/auth"
	"github.com/openbank/openbank-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized

	// Eligibility
	case errors.Is(err, service.ErrCountryNotAllowed):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, service.ErrCustomerNotFound),
		errors.Is(err, service.ErrNoAccounts):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, service.ErrUsernameTaken):
		return http.StatusConflict

	// Domain rules that are well-formed but not acceptable
	case errors.Is(err, domain.ErrIneligibleAge),
		errors.Is(err, domain.ErrNegativeBalance):
		return http.StatusUnprocessableEntity

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidAccountType),
		errors.Is(err, domain.ErrInvalidCurrency),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	case errors.Is(err, store.ErrUnavailable):
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return "Invalid username or password"
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, service.ErrCountryNotAllowed):
		return "Country is not eligible for onboarding"

	case errors.Is(err, service.ErrCustomerNotFound):
		return "Customer not found"
	case errors.Is(err, service.ErrNoAccounts):
		return "No accounts found"

	case errors.Is(err, service.ErrUsernameTaken):
		return "Username already registered"

	case errors.Is(err, domain.ErrIneligibleAge):
		return "Customer does not meet the minimum age requirement"
	case errors.Is(err, domain.ErrNegativeBalance):
		return "Balance cannot be negative"

	case errors.Is(err, domain.ErrInvalidUsername):
		return "Username must be between 3 and 20 characters"
	case errors.Is(err, domain.ErrInvalidAccountType):
		return "Invalid account type"
	case errors.Is(err, domain.ErrInvalidCurrency):
		return "Invalid currency"
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid request data"

	case errors.Is(err, store.ErrUnavailable):
		return "Service temporarily unavailable"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes the status and message mapped from err and logs the
// redacted error.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, opts ...shared.ResponseOption) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err, opts...)
}
