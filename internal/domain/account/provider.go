package account

import (
	"context"

	"bolso/internal/pubsub"
)

// Provider defines the simulated backend for accounts. The interface is
// declared in the domain layer and implemented by the in-memory provider in
// the infrastructure layer.
//
// Every successful mutation updates the provider's collection before the
// corresponding event is published, so a listener that re-queries FetchAll on
// notification observes post-mutation state. Failed operations resolve their
// own call with an error and publish nothing.
type Provider interface {
	// FetchAll returns copies of every account after the simulated delay.
	FetchAll(ctx context.Context) ([]Account, error)

	// Link creates a new account from validated params.
	Link(ctx context.Context, params LinkParams) (Account, error)

	// RefreshBalance sets a new balance and refreshes lastSyncedAt.
	// Negative balances are rejected for non-credit accounts.
	RefreshBalance(ctx context.Context, id string, balance float64) (Account, error)

	// SetActive activates or deactivates (unlinks) an account.
	SetActive(ctx context.Context, id string, active bool) (Account, error)

	// Subscribe registers a listener on the account mutation channel.
	Subscribe(fn func(pubsub.Event[Account])) *pubsub.Subscription

	// Close marks the provider as gone; pending operations resolve with a
	// ServiceUnavailableError.
	Close()
}
