package api

import (
	"log/slog"
	"net/http"

	"github.com/openbank/openbank-api/internal/api/middleware"
	"github.com/openbank/openbank-api/internal/api/shared"
	"github.com/openbank/openbank-api/internal/domain"
	"github.com/openbank/openbank-api/internal/service"
)

// AccountHandler serves the authenticated account endpoints.
type AccountHandler struct {
	customers service.CustomerService
	accounts  service.AccountService
	logger    *slog.Logger
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(
	customers service.CustomerService,
	accounts service.AccountService,
	logger *slog.Logger,
) *AccountHandler {
	return &AccountHandler{
		customers: customers,
		accounts:  accounts,
		logger:    logger.With("component", "account_handler"),
	}
}

// OpenAccount handles POST /accounts/open.
func (h *AccountHandler) OpenAccount(w http.ResponseWriter, r *http.Request) {
	var req OpenAccountRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, shared.ValidationMessage(err))
		return
	}

	customer, ok := h.currentCustomer(w, r)
	if !ok {
		return
	}

	account, err := h.accounts.OpenAccount(r.Context(), customer, domain.AccountType(req.AccountType), req.Currency)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, NewAccountPublic(*account))
}

// Overview handles GET /accounts/overview.
func (h *AccountHandler) Overview(w http.ResponseWriter, r *http.Request) {
	customer, ok := h.currentCustomer(w, r)
	if !ok {
		return
	}

	accounts, err := h.accounts.ListAccounts(r.Context(), customer)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	resp := AccountsOverviewResponse{
		Message:  "Accounts retrieved successfully",
		Accounts: make([]AccountPublic, 0, len(accounts)),
	}
	for _, a := range accounts {
		resp.Accounts = append(resp.Accounts, NewAccountPublic(a))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// currentCustomer resolves the token subject to a customer, writing the
// error response itself when that fails.
func (h *AccountHandler) currentCustomer(w http.ResponseWriter, r *http.Request) (*domain.Customer, bool) {
	username, ok := middleware.GetUsername(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return nil, false
	}

	customer, err := h.customers.Lookup(r.Context(), username)
	if err != nil {
		HandleAPIError(w, r, err)
		return nil, false
	}
	return customer, true
}
