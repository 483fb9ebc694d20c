package api

import (
	"encoding/json"
	"time"

	"github.com/openbank/openbank-api/internal/domain"
)

// dateLayout is the wire format of dates of birth.
const dateLayout = time.DateOnly

// RegisterRequest is the payload of POST /customers/register.
type RegisterRequest struct {
	Name        string `json:"name"        validate:"required"`
	DateOfBirth string `json:"dob"         validate:"required,datetime=2006-01-02"`
	Address     string `json:"address"     validate:"required"`
	Country     string `json:"country"     validate:"required,len=2"`
	IDDocument  string `json:"id_document" validate:"required"`
	Username    string `json:"username"    validate:"required,min=3,max=20"`
}

// Details converts the request into domain input. ValidateRequest must have
// accepted the request first.
func (r RegisterRequest) Details() (domain.CustomerDetails, error) {
	dob, err := time.Parse(dateLayout, r.DateOfBirth)
	if err != nil {
		return domain.CustomerDetails{}, err
	}
	return domain.CustomerDetails{
		Name:        r.Name,
		DateOfBirth: dob,
		Address:     r.Address,
		Country:     r.Country,
		IDDocument:  r.IDDocument,
		Username:    r.Username,
	}, nil
}

// CredentialResponse returns the generated password. It is the only time the
// plaintext password leaves the server.
type CredentialResponse struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LogonRequest is the payload of POST /auth/logon, sent either as JSON or as
// an OAuth2 password-grant form.
type LogonRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse is returned on successful logon.
type TokenResponse struct {
	Message     string `json:"message"`
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// OpenAccountRequest is the payload of POST /accounts/open.
type OpenAccountRequest struct {
	AccountType string `json:"account_type" validate:"required,oneof=checking saving investment"`
	Currency    string `json:"currency"     validate:"omitempty,len=3,uppercase"`
}

// AccountPublic is the client view of an account.
type AccountPublic struct {
	IBAN        string      `json:"iban"`
	AccountType string      `json:"account_type"`
	Balance     json.Number `json:"balance"`
	Currency    string      `json:"currency"`
	CreatedAt   time.Time   `json:"created_at"`
}

// NewAccountPublic renders an account for clients. The balance is a JSON
// number with exactly two decimals.
func NewAccountPublic(a domain.Account) AccountPublic {
	return AccountPublic{
		IBAN:        a.IBAN,
		AccountType: string(a.Type),
		Balance:     json.Number(a.Balance.StringFixed(domain.BalanceScale)),
		Currency:    a.Currency,
		CreatedAt:   a.CreatedAt,
	}
}

// AccountsOverviewResponse is returned by GET /accounts/overview.
type AccountsOverviewResponse struct {
	Message  string          `json:"message"`
	Accounts []AccountPublic `json:"accounts"`
}

// MessageResponse carries a single human-readable message.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}
