package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"bolso/internal/domain/fault"
	"bolso/internal/domain/notification"
	"bolso/internal/pubsub"
	"bolso/internal/simnet"
)

// NotificationProvider is the in-memory simulated backend for notifications.
// The collection is kept newest first.
type NotificationProvider struct {
	sim    *simnet.Injector
	broker *pubsub.Broker[notification.Notification]
	now    func() time.Time

	mu            sync.RWMutex
	notifications []notification.Notification
}

// NewNotificationProvider creates a provider seeded with the given
// notifications.
func NewNotificationProvider(sim *simnet.Injector, seed []notification.Notification) *NotificationProvider {
	ns := make([]notification.Notification, len(seed))
	copy(ns, seed)
	return &NotificationProvider{
		sim:           sim,
		broker:        pubsub.NewBroker[notification.Notification](),
		now:           time.Now,
		notifications: ns,
	}
}

// FetchAll returns copies of every notification after the simulated delay,
// newest first.
func (p *NotificationProvider) FetchAll(ctx context.Context) ([]notification.Notification, error) {
	ctx, span := tracer.Start(ctx, "notifications.fetchAll")
	defer span.End()

	if err := p.sim.Wait(ctx, "fetchAll"); err != nil {
		return nil, finish(ctx, span, "notifications", "fetchAll", err)
	}

	p.mu.RLock()
	out := make([]notification.Notification, len(p.notifications))
	copy(out, p.notifications)
	p.mu.RUnlock()

	return out, finish(ctx, span, "notifications", "fetchAll", nil)
}

// Inject validates and records a simulated push event, then broadcasts it.
func (p *NotificationProvider) Inject(ctx context.Context, payload notification.Payload) (notification.Notification, error) {
	ctx, span := tracer.Start(ctx, "notifications.inject")
	defer span.End()

	if err := payload.Validate(); err != nil {
		return notification.Notification{}, finish(ctx, span, "notifications", "inject", err)
	}
	if err := p.sim.Wait(ctx, "inject"); err != nil {
		return notification.Notification{}, finish(ctx, span, "notifications", "inject", err)
	}

	n := notification.Notification{
		ID:        uuid.NewString(),
		Type:      payload.Type,
		Title:     payload.Title,
		Message:   payload.Message,
		Timestamp: p.now(),
		Priority:  payload.Priority,
		Data:      payload.Data,
		IsRead:    false,
	}

	p.mu.Lock()
	p.notifications = append([]notification.Notification{n}, p.notifications...)
	p.mu.Unlock()

	p.publish(ctx, pubsub.Event[notification.Notification]{Op: pubsub.OpCreated, Entity: n})
	return n, finish(ctx, span, "notifications", "inject", nil)
}

// MarkRead flags one notification as read.
func (p *NotificationProvider) MarkRead(ctx context.Context, id string) (notification.Notification, error) {
	ctx, span := tracer.Start(ctx, "notifications.markRead")
	defer span.End()

	if err := p.sim.Wait(ctx, "markRead"); err != nil {
		return notification.Notification{}, finish(ctx, span, "notifications", "markRead", err)
	}

	p.mu.Lock()
	i := p.index(id)
	if i < 0 {
		p.mu.Unlock()
		return notification.Notification{}, finish(ctx, span, "notifications", "markRead", fault.NewNotFound("notification", id))
	}
	p.notifications[i].IsRead = true
	n := p.notifications[i]
	p.mu.Unlock()

	p.publish(ctx, pubsub.Event[notification.Notification]{Op: pubsub.OpUpdated, Entity: n})
	return n, finish(ctx, span, "notifications", "markRead", nil)
}

// MarkAllRead flags every unread notification as read, publishing one event
// per mutated notification.
func (p *NotificationProvider) MarkAllRead(ctx context.Context) ([]notification.Notification, error) {
	ctx, span := tracer.Start(ctx, "notifications.markAllRead")
	defer span.End()

	if err := p.sim.Wait(ctx, "markAllRead"); err != nil {
		return nil, finish(ctx, span, "notifications", "markAllRead", err)
	}

	p.mu.Lock()
	var mutated []notification.Notification
	for i := range p.notifications {
		if !p.notifications[i].IsRead {
			p.notifications[i].IsRead = true
			mutated = append(mutated, p.notifications[i])
		}
	}
	p.mu.Unlock()

	for _, n := range mutated {
		p.publish(ctx, pubsub.Event[notification.Notification]{Op: pubsub.OpUpdated, Entity: n})
	}
	return mutated, finish(ctx, span, "notifications", "markAllRead", nil)
}

// Delete removes a notification.
func (p *NotificationProvider) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "notifications.delete")
	defer span.End()

	if err := p.sim.Wait(ctx, "delete"); err != nil {
		return finish(ctx, span, "notifications", "delete", err)
	}

	p.mu.Lock()
	i := p.index(id)
	if i < 0 {
		p.mu.Unlock()
		return finish(ctx, span, "notifications", "delete", fault.NewNotFound("notification", id))
	}
	n := p.notifications[i]
	p.notifications = append(p.notifications[:i], p.notifications[i+1:]...)
	p.mu.Unlock()

	p.publish(ctx, pubsub.Event[notification.Notification]{Op: pubsub.OpDeleted, Entity: n})
	return finish(ctx, span, "notifications", "delete", nil)
}

// Subscribe registers a listener on the notification mutation channel.
func (p *NotificationProvider) Subscribe(fn func(pubsub.Event[notification.Notification])) *pubsub.Subscription {
	return p.broker.Subscribe(fn)
}

// Close marks the provider as gone.
func (p *NotificationProvider) Close() {
	p.sim.Close()
}

// index must be called with the lock held.
func (p *NotificationProvider) index(id string) int {
	for i := range p.notifications {
		if p.notifications[i].ID == id {
			return i
		}
	}
	return -1
}

func (p *NotificationProvider) publish(ctx context.Context, ev pubsub.Event[notification.Notification]) {
	published(ctx, "notifications", ev.Op.String())
	p.broker.Publish(ev)
}
