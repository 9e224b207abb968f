package budget

import (
	"strings"
	"time"

	"bolso/internal/domain/fault"
	"bolso/internal/money"
)

// Period determines how a budget's start and end dates are derived.
type Period string

const (
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodCustom  Period = "custom"
)

var periods = map[Period]struct{}{
	PeriodWeekly:  {},
	PeriodMonthly: {},
	PeriodCustom:  {},
}

// IsValidPeriod checks if the provided period is valid.
func IsValidPeriod(p Period) bool {
	_, ok := periods[p]
	return ok
}

// Budget represents a spending limit over a period. Raw Spent may exceed
// Amount; only the displayed percentage is clamped.
type Budget struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Amount    float64   `json:"amount"`
	Category  string    `json:"category"`
	Period    Period    `json:"period"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Spent     float64   `json:"spent"`
	IsActive  bool      `json:"isActive"`
}

// SpentRatio returns the unclamped spent/amount ratio, used for over-budget
// checks and alerting.
func (b Budget) SpentRatio() float64 {
	return money.Ratio(b.Spent, b.Amount)
}

// SpentPercentage returns the display percentage in [0,100], clamped even
// when raw spent exceeds the amount.
func (b Budget) SpentPercentage() float64 {
	return money.ClampRatio(b.SpentRatio()) * 100
}

// IsOverBudget reports whether raw spending exceeds the budget amount.
func (b Budget) IsOverBudget() bool {
	return b.Spent > b.Amount
}

// Remaining returns the unspent amount, negative when over budget.
func (b Budget) Remaining() float64 {
	return money.Sub(b.Amount, b.Spent)
}

// FormattedAmount renders the budget limit in the given currency.
func (b Budget) FormattedAmount(currency string) string {
	return money.FormatAmount(b.Amount, currency)
}

// FormattedSpentPercentage renders the clamped percentage with one fraction
// digit.
func (b Budget) FormattedSpentPercentage() string {
	return money.FormatPercent(money.ClampRatio(b.SpentRatio()))
}

// CreateParams contains parameters for creating a new budget. StartDate and
// EndDate are only consulted for PeriodCustom; weekly and monthly budgets
// derive their bounds from the creation time.
type CreateParams struct {
	Name      string
	Amount    float64
	Category  string
	Period    Period
	StartDate time.Time
	EndDate   time.Time
}

// Validate validates the create parameters.
func (p CreateParams) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fault.NewValidation("name", "is required")
	}
	if p.Amount <= 0 {
		return fault.NewValidation("amount", "must be positive")
	}
	if strings.TrimSpace(p.Category) == "" {
		return fault.NewValidation("category", "must be non-empty")
	}
	if !IsValidPeriod(p.Period) {
		return fault.NewValidation("period", "must be one of weekly, monthly, custom")
	}
	if p.Period == PeriodCustom {
		if p.StartDate.IsZero() || p.EndDate.IsZero() {
			return fault.NewValidation("period", "custom budgets require explicit start and end dates")
		}
		if !p.EndDate.After(p.StartDate) {
			return fault.NewValidation("endDate", "must be after startDate")
		}
	}
	return nil
}

// PeriodBounds derives the start and end dates for the params' period
// relative to now. Custom periods echo the validated explicit dates.
func (p CreateParams) PeriodBounds(now time.Time) (start, end time.Time, err error) {
	switch p.Period {
	case PeriodWeekly:
		start = now.Truncate(24 * time.Hour)
		return start, start.AddDate(0, 0, 7), nil
	case PeriodMonthly:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(0, 1, 0), nil
	case PeriodCustom:
		if !p.EndDate.After(p.StartDate) {
			return time.Time{}, time.Time{}, fault.NewValidation("endDate", "must be after startDate")
		}
		return p.StartDate, p.EndDate, nil
	default:
		return time.Time{}, time.Time{}, fault.NewValidation("period", "unknown period")
	}
}

// UpdateParams contains parameters for updating a budget. Nil fields are left
// unchanged.
type UpdateParams struct {
	Name     *string
	Amount   *float64
	Spent    *float64
	IsActive *bool
}

// Validate validates the update parameters.
func (p UpdateParams) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return fault.NewValidation("name", "must be non-empty")
	}
	if p.Amount != nil && *p.Amount <= 0 {
		return fault.NewValidation("amount", "must be positive")
	}
	if p.Spent != nil && *p.Spent < 0 {
		return fault.NewValidation("spent", "must be non-negative")
	}
	return nil
}
