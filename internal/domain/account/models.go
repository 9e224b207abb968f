package account

import (
	"time"

	"bolso/internal/domain/fault"
	"bolso/internal/money"
)

// Type classifies a linked account.
type Type string

const (
	TypeChecking   Type = "checking"
	TypeSavings    Type = "savings"
	TypeInvestment Type = "investment"
	TypeCredit     Type = "credit"
)

var accountTypes = map[Type]struct{}{
	TypeChecking:   {},
	TypeSavings:    {},
	TypeInvestment: {},
	TypeCredit:     {},
}

// IsValidType checks if the provided account type is valid.
func IsValidType(t Type) bool {
	_, ok := accountTypes[t]
	return ok
}

// Common ISO 4217 currency codes accepted for linked accounts.
var validCurrencies = map[string]struct{}{
	"BRL": {}, "USD": {}, "EUR": {}, "GBP": {}, "JPY": {},
	"CHF": {}, "CAD": {}, "AUD": {}, "MXN": {}, "ARS": {},
}

// IsValidCurrency checks if the provided currency is a valid ISO 4217 code.
func IsValidCurrency(c string) bool {
	if len(c) != 3 {
		return false
	}
	_, ok := validCurrencies[c]
	return ok
}

// Account represents a linked financial account. Accounts are never hard
// deleted: unlinking deactivates them.
type Account struct {
	ID            string    `json:"id"`
	InstitutionID string    `json:"institutionId"`
	Name          string    `json:"name"`
	Type          Type      `json:"type"`
	Balance       float64   `json:"balance"`
	Currency      string    `json:"currency"`
	LastSyncedAt  time.Time `json:"lastSyncedAt"`
	IsActive      bool      `json:"isActive"`
}

// FormattedBalance renders the balance with locale grouping and two fraction
// digits.
func (a Account) FormattedBalance() string {
	return money.FormatAmount(a.Balance, a.Currency)
}

// ValidateBalance enforces the sign invariant: only credit accounts may carry
// a negative balance.
func ValidateBalance(t Type, balance float64) error {
	if balance < 0 && t != TypeCredit {
		return fault.NewValidation("balance", "must be non-negative for non-credit accounts")
	}
	return nil
}

// LinkParams contains parameters for linking a new account.
type LinkParams struct {
	InstitutionID string
	Name          string
	Type          Type
	Balance       float64
	Currency      string
}

// Validate validates the link parameters.
func (p LinkParams) Validate() error {
	if p.InstitutionID == "" {
		return fault.NewValidation("institutionId", "is required")
	}
	if p.Name == "" {
		return fault.NewValidation("name", "is required")
	}
	if !IsValidType(p.Type) {
		return fault.NewValidation("type", "must be one of checking, savings, investment, credit")
	}
	if !IsValidCurrency(p.Currency) {
		return fault.NewValidation("currency", "must be a valid ISO 4217 code")
	}
	if err := ValidateBalance(p.Type, p.Balance); err != nil {
		return err
	}
	return nil
}
