package goal

import (
	"strings"
	"time"

	"bolso/internal/domain/fault"
	"bolso/internal/money"
)

// Goal represents a savings target. IsCompleted is derived from the raw
// currentAmount/targetAmount comparison, never from the clamped display
// percentage.
type Goal struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	TargetAmount  float64   `json:"targetAmount"`
	CurrentAmount float64   `json:"currentAmount"`
	TargetDate    time.Time `json:"targetDate"`
	CreatedAt     time.Time `json:"createdAt"`
	IsCompleted   bool      `json:"isCompleted"`
	Category      string    `json:"category"`
}

// ProgressRatio returns the unclamped currentAmount/targetAmount ratio.
func (g Goal) ProgressRatio() float64 {
	return money.Ratio(g.CurrentAmount, g.TargetAmount)
}

// ProgressPercentage returns the display percentage in [0,100].
func (g Goal) ProgressPercentage() float64 {
	return money.ClampRatio(g.ProgressRatio()) * 100
}

// FormattedProgress renders the clamped progress with one fraction digit.
func (g Goal) FormattedProgress() string {
	return money.FormatPercent(money.ClampRatio(g.ProgressRatio()))
}

// FormattedTarget renders the target amount in the given currency.
func (g Goal) FormattedTarget(currency string) string {
	return money.FormatAmount(g.TargetAmount, currency)
}

// CreateParams contains parameters for creating a new goal.
type CreateParams struct {
	Name         string
	Description  string
	TargetAmount float64
	TargetDate   time.Time
	Category     string
}

// Validate validates the create parameters against the creation time.
func (p CreateParams) Validate(now time.Time) error {
	if strings.TrimSpace(p.Name) == "" {
		return fault.NewValidation("name", "is required")
	}
	if p.TargetAmount <= 0 {
		return fault.NewValidation("targetAmount", "must be positive")
	}
	if !p.TargetDate.After(now) {
		return fault.NewValidation("targetDate", "must be in the future")
	}
	return nil
}

// ValidateProgress validates a progress amount before it is applied.
func ValidateProgress(amount float64) error {
	if amount < 0 {
		return fault.NewValidation("currentAmount", "must be non-negative")
	}
	return nil
}
