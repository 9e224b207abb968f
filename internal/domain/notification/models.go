package notification

import (
	"strings"
	"time"

	"bolso/internal/domain/fault"
)

// Type identifies the event a notification describes.
type Type string

const (
	TypeBudgetAlert  Type = "budget_alert"
	TypeGoalAchieved Type = "goal_achieved"
	TypeAccountAlert Type = "account_alert"
	TypeTransaction  Type = "transaction"
	TypeSystem       Type = "system"
)

var types = map[Type]struct{}{
	TypeBudgetAlert:  {},
	TypeGoalAchieved: {},
	TypeAccountAlert: {},
	TypeTransaction:  {},
	TypeSystem:       {},
}

// IsValidType reports whether t is one of the declared notification types.
func IsValidType(t Type) bool {
	_, ok := types[t]
	return ok
}

// Priority orders notifications for display.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Data carries the type-specific optional references of a notification
// payload. Zero values mean "absent".
type Data struct {
	BudgetID      string  `json:"budgetId,omitempty"`
	TransactionID string  `json:"transactionId,omitempty"`
	GoalID        string  `json:"goalId,omitempty"`
	AccountID     string  `json:"accountId,omitempty"`
	Amount        float64 `json:"amount,omitempty"`
	Percentage    float64 `json:"percentage,omitempty"`
}

// Notification is a simulated push payload. IsRead is the only mutable field.
type Notification struct {
	ID        string    `json:"id"`
	Type      Type      `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Priority  Priority  `json:"priority"`
	Data      Data      `json:"data"`
	IsRead    bool      `json:"isRead"`
}

// Payload contains parameters for injecting a simulated push event.
type Payload struct {
	Type     Type
	Title    string
	Message  string
	Priority Priority
	Data     Data
}

// Validate validates an injected payload.
func (p Payload) Validate() error {
	if !IsValidType(p.Type) {
		return fault.NewValidation("type", "is not a known notification type")
	}
	if strings.TrimSpace(p.Title) == "" {
		return fault.NewValidation("title", "is required")
	}
	if strings.TrimSpace(p.Message) == "" {
		return fault.NewValidation("message", "is required")
	}
	switch p.Priority {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return nil
	default:
		return fault.NewValidation("priority", "must be low, medium or high")
	}
}
