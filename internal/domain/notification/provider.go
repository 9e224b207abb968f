package notification

import (
	"context"

	"bolso/internal/pubsub"
)

// Provider defines the simulated backend for notifications. Notifications
// enter the collection either through the alert engine or through injected
// simulated push events; IsRead is the only field the client mutates.
type Provider interface {
	// FetchAll returns copies of every notification after the simulated
	// delay, newest first.
	FetchAll(ctx context.Context) ([]Notification, error)

	// Inject records a simulated push event and publishes it.
	Inject(ctx context.Context, payload Payload) (Notification, error)

	// MarkRead flags one notification as read.
	MarkRead(ctx context.Context, id string) (Notification, error)

	// MarkAllRead flags every unread notification as read, publishing one
	// event per mutated notification.
	MarkAllRead(ctx context.Context) ([]Notification, error)

	// Delete removes a notification.
	Delete(ctx context.Context, id string) error

	// Subscribe registers a listener on the notification mutation channel.
	Subscribe(fn func(pubsub.Event[Notification])) *pubsub.Subscription

	// Close marks the provider as gone.
	Close()
}
