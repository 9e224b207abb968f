package controller

import (
	"context"

	"bolso/internal/domain/notification"
)

// NotificationController drives the notification center.
type NotificationController struct {
	observable[notification.Notification]
	provider notification.Provider
}

// NewNotificationController builds an idle controller over the given
// provider.
func NewNotificationController(provider notification.Provider) *NotificationController {
	return &NotificationController{
		observable: newObservable(func(n notification.Notification) string { return n.ID }),
		provider:   provider,
	}
}

// Initialize subscribes to the notification mutation channel and issues the
// initial fetch. Alert-engine injections arriving afterwards appear through
// the channel without another fetch.
func (c *NotificationController) Initialize(ctx context.Context) {
	c.track(c.provider.Subscribe(c.apply))

	if !c.begin() {
		return
	}
	ns, err := c.provider.FetchAll(ctx)
	if err != nil {
		c.fail(err)
		return
	}
	c.succeed(ns, true)
}

// MarkRead flags one notification as read.
func (c *NotificationController) MarkRead(ctx context.Context, id string) {
	if !c.begin() {
		return
	}
	if _, err := c.provider.MarkRead(ctx, id); err != nil {
		c.fail(err)
		return
	}
	c.succeed(nil, false)
}

// MarkAllRead flags every unread notification as read.
func (c *NotificationController) MarkAllRead(ctx context.Context) {
	if !c.begin() {
		return
	}
	if _, err := c.provider.MarkAllRead(ctx); err != nil {
		c.fail(err)
		return
	}
	c.succeed(nil, false)
}

// Delete removes one notification.
func (c *NotificationController) Delete(ctx context.Context, id string) {
	if !c.begin() {
		return
	}
	if err := c.provider.Delete(ctx, id); err != nil {
		c.fail(err)
		return
	}
	c.succeed(nil, false)
}

// UnreadCount counts the unread notifications in the current snapshot.
func (c *NotificationController) UnreadCount() int {
	var n int
	for _, item := range c.Items() {
		if !item.IsRead {
			n++
		}
	}
	return n
}

// Cleanup cancels the channel subscription and clears the state.
func (c *NotificationController) Cleanup() {
	c.cleanup()
}
