package transaction

import (
	"context"

	"bolso/internal/pubsub"
)

// Provider defines the simulated backend for transactions. Implemented by the
// in-memory provider in the infrastructure layer.
type Provider interface {
	// FetchAll returns copies of every transaction after the simulated delay.
	FetchAll(ctx context.Context) ([]Transaction, error)

	// FetchByAccount returns the transactions belonging to one account.
	FetchByAccount(ctx context.Context, accountID string) ([]Transaction, error)

	// Create records a new transaction from validated params.
	Create(ctx context.Context, params CreateParams) (Transaction, error)

	// UpdateCategory sets the category of an existing transaction.
	UpdateCategory(ctx context.Context, id, category string) (Transaction, error)

	// UpdateNotes sets the notes of an existing transaction.
	UpdateNotes(ctx context.Context, id, notes string) (Transaction, error)

	// Delete removes a transaction.
	Delete(ctx context.Context, id string) error

	// Search returns the transactions matching the query, case-insensitively
	// over description, merchant and category.
	Search(ctx context.Context, query string) ([]Transaction, error)

	// Subscribe registers a listener on the transaction mutation channel.
	Subscribe(fn func(pubsub.Event[Transaction])) *pubsub.Subscription

	// Close marks the provider as gone.
	Close()
}
