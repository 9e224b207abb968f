package transaction

import (
	"strings"
	"time"

	"bolso/internal/domain/fault"
	"bolso/internal/money"
)

// Transaction represents a single account movement. Amount is signed: debits
// are negative, credits positive. Amount and Date are immutable after
// creation; only Category and Notes have dedicated update operations.
type Transaction struct {
	ID           string    `json:"id"`
	AccountID    string    `json:"accountId"`
	Amount       float64   `json:"amount"`
	Date         time.Time `json:"date"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	Pending      bool      `json:"pending"`
	MerchantName string    `json:"merchantName,omitempty"`
	Notes        string    `json:"notes,omitempty"`
}

// FormattedAmount renders the signed amount in the given currency.
func (t Transaction) FormattedAmount(currency string) string {
	return money.FormatAmount(t.Amount, currency)
}

// Matches reports whether the transaction matches a search query. Matching is
// case-insensitive over description, merchant name and category.
func (t Transaction) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.Description), q) ||
		strings.Contains(strings.ToLower(t.MerchantName), q) ||
		strings.Contains(strings.ToLower(t.Category), q)
}

// CreateParams contains parameters for recording a new transaction.
type CreateParams struct {
	AccountID    string
	Amount       float64
	Date         time.Time
	Description  string
	Category     string
	Pending      bool
	MerchantName string
	Notes        string
}

// Validate validates the create parameters.
func (p CreateParams) Validate() error {
	if p.AccountID == "" {
		return fault.NewValidation("accountId", "is required")
	}
	if strings.TrimSpace(p.Description) == "" {
		return fault.NewValidation("description", "must be non-empty")
	}
	if strings.TrimSpace(p.Category) == "" {
		return fault.NewValidation("category", "must be non-empty")
	}
	if p.Date.IsZero() {
		return fault.NewValidation("date", "is required")
	}
	return nil
}

// ValidateCategory validates a category value used by the dedicated
// category-update operation.
func ValidateCategory(category string) error {
	if strings.TrimSpace(category) == "" {
		return fault.NewValidation("category", "must be non-empty")
	}
	return nil
}
