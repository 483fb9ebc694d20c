package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountType enumerates the kinds of accounts a customer may hold.
type AccountType string

const (
	AccountTypeChecking   AccountType = "checking"
	AccountTypeSaving     AccountType = "saving"
	AccountTypeInvestment AccountType = "investment"
)

const (
	// DefaultCurrency is used whenever an account is opened without one.
	DefaultCurrency = "EUR"

	// BalanceScale is the number of fractional digits kept on a balance.
	BalanceScale = 2
)

// AccountTypes lists every supported account type.
func AccountTypes() []AccountType {
	return []AccountType{AccountTypeChecking, AccountTypeSaving, AccountTypeInvestment}
}

// Valid reports whether t is one of the supported account types.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeChecking, AccountTypeSaving, AccountTypeInvestment:
		return true
	}
	return false
}

// ParseAccountType converts s into an AccountType.
func ParseAccountType(s string) (AccountType, error) {
	t := AccountType(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidAccountType, s)
	}
	return t, nil
}

// Account is a bank account owned by exactly one customer.
type Account struct {
	ID         uuid.UUID       `json:"id"`
	CustomerID uuid.UUID       `json:"customer_id"`
	IBAN       string          `json:"iban"`
	Type       AccountType     `json:"account_type"`
	Currency   string          `json:"currency"`
	Balance    decimal.Decimal `json:"balance"`
	CreatedAt  time.Time       `json:"created_at"`
}

// NewAccount creates an Account for customerID. The balance is normalized
// with NewBalance, so negative amounts are rejected and fractions are
// quantized to two decimal places.
func NewAccount(
	customerID uuid.UUID,
	iban string,
	accountType AccountType,
	currency string,
	balance decimal.Decimal,
	createdAt time.Time,
) (*Account, error) {
	normalized, err := NewBalance(balance)
	if err != nil {
		return nil, err
	}

	a := &Account{
		ID:         uuid.New(),
		CustomerID: customerID,
		IBAN:       iban,
		Type:       accountType,
		Currency:   currency,
		Balance:    normalized,
		CreatedAt:  createdAt.UTC(),
	}

	if err := a.Validate(); err != nil {
		return nil, err
	}

	return a, nil
}

// Validate checks if the Account has valid data.
func (a *Account) Validate() error {
	if a.ID == uuid.Nil {
		return fmt.Errorf("%w: account ID cannot be empty", ErrValidation)
	}
	if a.CustomerID == uuid.Nil {
		return fmt.Errorf("%w: %w", ErrValidation, ErrEmptyCustomerID)
	}
	if a.IBAN == "" {
		return fmt.Errorf("%w: %w", ErrValidation, ErrEmptyIBAN)
	}
	if !a.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidAccountType, a.Type)
	}
	if !ValidCurrency(a.Currency) {
		return fmt.Errorf("%w: %q", ErrInvalidCurrency, a.Currency)
	}
	if a.Balance.IsNegative() {
		return ErrNegativeBalance
	}
	return nil
}

// ValidCurrency reports whether c is shaped like an ISO 4217 code:
// exactly three uppercase ASCII letters.
func ValidCurrency(c string) bool {
	if len(c) != 3 {
		return false
	}
	for i := 0; i < len(c); i++ {
		if c[i] < 'A' || c[i] > 'Z' {
			return false
		}
	}
	return true
}

// NewBalance rejects negative amounts and rounds the rest half-up to
// BalanceScale decimal places.
func NewBalance(amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrNegativeBalance, amount.String())
	}
	// Round is half away from zero, which is half-up for non-negative values.
	return amount.Round(BalanceScale), nil
}

// ParseBalance parses a decimal string and normalizes it with NewBalance.
func ParseBalance(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: balance %q is not a decimal number", ErrValidation, s)
	}
	return NewBalance(amount)
}
