package budget

import (
	"context"

	"bolso/internal/pubsub"
)

// Provider defines the simulated backend for budgets.
type Provider interface {
	// FetchAll returns copies of every budget after the simulated delay.
	FetchAll(ctx context.Context) ([]Budget, error)

	// Create builds a new budget, deriving period bounds from the creation
	// time. New budgets start with Spent = 0 and IsActive = true.
	Create(ctx context.Context, params CreateParams) (Budget, error)

	// Update applies the non-nil fields of params to an existing budget.
	Update(ctx context.Context, id string, params UpdateParams) (Budget, error)

	// RecordSpend adds amount to a budget's raw spent total.
	RecordSpend(ctx context.Context, id string, amount float64) (Budget, error)

	// Delete removes a budget.
	Delete(ctx context.Context, id string) error

	// Subscribe registers a listener on the budget mutation channel.
	Subscribe(fn func(pubsub.Event[Budget])) *pubsub.Subscription

	// Close marks the provider as gone.
	Close()
}
