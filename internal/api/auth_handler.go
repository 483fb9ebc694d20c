package api

import (
	"log/slog"
	"net/http"

	"github.com/openbank/openbank-api/internal/api/shared"
	"github.com/openbank/openbank-api/internal/service"
	"github.com/openbank/openbank-api/internal/service/auth"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	customers  service.CustomerService
	jwtService auth.JWTService
	logger     *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	customers service.CustomerService,
	jwtService auth.JWTService,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		customers:  customers,
		jwtService: jwtService,
		logger:     logger.With("component", "auth_handler"),
	}
}

// Logon handles POST /auth/logon.
func (h *AuthHandler) Logon(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeLogon(w, r)
	if !ok {
		return
	}

	customer, err := h.customers.Verify(r.Context(), req.Username, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, shared.WithElevatedLogLevel())
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context(), customer.Username)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to generate authentication token", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TokenResponse{
		Message:     "Logon successful",
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// decodeLogon reads the credentials from a form or JSON body and writes a
// 400 response when they are malformed or incomplete.
func (h *AuthHandler) decodeLogon(w http.ResponseWriter, r *http.Request) (LogonRequest, bool) {
	var req LogonRequest
	if shared.IsForm(r) {
		r.Body = http.MaxBytesReader(w, r.Body, shared.MaxBodyBytes)
		if err := r.ParseForm(); err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
			return req, false
		}
		req.Username = r.PostForm.Get("username")
		req.Password = r.PostForm.Get("password")
	} else if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return req, false
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, shared.ValidationMessage(err))
		return req, false
	}
	return req, true
}
