package investment

import (
	"context"

	"bolso/internal/pubsub"
)

// Provider defines the simulated backend for investment holdings.
type Provider interface {
	// FetchAll returns copies of every holding after the simulated delay.
	FetchAll(ctx context.Context) ([]Investment, error)

	// Create adds a holding from validated params.
	Create(ctx context.Context, params CreateParams) (Investment, error)

	// RefreshPrices applies a simulated market tick to every holding,
	// updating CurrentPrice and LastUpdatedAt, and returns the refreshed
	// holdings. One event per refreshed holding is published.
	RefreshPrices(ctx context.Context) ([]Investment, error)

	// Delete removes a holding.
	Delete(ctx context.Context, id string) error

	// Subscribe registers a listener on the investment mutation channel.
	Subscribe(fn func(pubsub.Event[Investment])) *pubsub.Subscription

	// Close marks the provider as gone.
	Close()
}
