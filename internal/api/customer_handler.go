package api

import (
	"log/slog"
	"net/http"

	"github.com/openbank/openbank-api/internal/api/shared"
	"github.com/openbank/openbank-api/internal/service"
)

// CustomerHandler handles customer onboarding requests.
type CustomerHandler struct {
	customers service.CustomerService
	logger    *slog.Logger
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(customers service.CustomerService, logger *slog.Logger) *CustomerHandler {
	return &CustomerHandler{
		customers: customers,
		logger:    logger.With("component", "customer_handler"),
	}
}

// Register handles POST /customers/register. On success the generated
// credential is returned with 201 Created.
func (h *CustomerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, shared.ValidationMessage(err))
		return
	}

	details, err := req.Details()
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid dob: expected format YYYY-MM-DD")
		return
	}

	customer, password, err := h.customers.Register(r.Context(), details)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, CredentialResponse{
		Username: customer.Username,
		Password: password,
	})
}
