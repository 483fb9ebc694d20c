package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/openbank/openbank-api/internal/domain"
	"github.com/openbank/openbank-api/internal/service"
	"github.com/openbank/openbank-api/internal/service/auth"
	"github.com/openbank/openbank-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"invalid credentials", service.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid username or password"},
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized, "Invalid token"},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized, "Token expired"},
		{"missing token", auth.ErrMissingToken, http.StatusUnauthorized, "Invalid token"},
		{"country", fmt.Errorf("%w: \"US\"", service.ErrCountryNotAllowed), http.StatusForbidden, "Country is not eligible for onboarding"},
		{"customer not found", service.ErrCustomerNotFound, http.StatusNotFound, "Customer not found"},
		{"no accounts", service.ErrNoAccounts, http.StatusNotFound, "No accounts found"},
		{"username taken", service.ErrUsernameTaken, http.StatusConflict, "Username already registered"},
		{"too young", fmt.Errorf("%w: age 17 is below 18", domain.ErrIneligibleAge), http.StatusUnprocessableEntity, "Customer does not meet the minimum age requirement"},
		{"negative balance", domain.ErrNegativeBalance, http.StatusUnprocessableEntity, "Balance cannot be negative"},
		{"username length", fmt.Errorf("%w: %w", domain.ErrValidation, domain.ErrInvalidUsername), http.StatusBadRequest, "Username must be between 3 and 20 characters"},
		{"account type", domain.ErrInvalidAccountType, http.StatusBadRequest, "Invalid account type"},
		{"currency", domain.ErrInvalidCurrency, http.StatusBadRequest, "Invalid currency"},
		{"validation", fmt.Errorf("%w: %w", domain.ErrValidation, domain.ErrEmptyName), http.StatusBadRequest, "Invalid request data"},
		{"store unavailable", fmt.Errorf("failed to look up customer: %w", store.ErrUnavailable), http.StatusServiceUnavailable, "Service temporarily unavailable"},
		{"unknown", errors.New("postgres://user:pw@host exploded"), http.StatusInternalServerError, "An unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.wantStatus, MapErrorToStatusCode(tt.err))
			assert.Equal(t, tt.wantMsg, GetSafeErrorMessage(tt.err))
		})
	}
}

func TestGetSafeErrorMessage_Nil(t *testing.T) {
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
}
