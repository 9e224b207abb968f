package goal

import (
	"context"

	"bolso/internal/pubsub"
)

// Provider defines the simulated backend for goals.
type Provider interface {
	// FetchAll returns copies of every goal after the simulated delay.
	FetchAll(ctx context.Context) ([]Goal, error)

	// Create builds a new goal with CurrentAmount = 0.
	Create(ctx context.Context, params CreateParams) (Goal, error)

	// UpdateProgress sets a goal's current amount and recomputes
	// IsCompleted from the raw comparison against the target. A negative
	// amount fails with a ValidationError and leaves the goal unchanged.
	UpdateProgress(ctx context.Context, id string, amount float64) (Goal, error)

	// Delete removes a goal.
	Delete(ctx context.Context, id string) error

	// Subscribe registers a listener on the goal mutation channel.
	Subscribe(fn func(pubsub.Event[Goal])) *pubsub.Subscription

	// Close marks the provider as gone.
	Close()
}
