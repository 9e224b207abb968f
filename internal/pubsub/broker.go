// Package pubsub implements the per-provider mutation channel: a broadcast
// broker that delivers post-mutation entity snapshots to subscribed listeners.
//
// Delivery contract: synchronous per listener, in subscription-registration
// order, exactly once per publish. The listener set is snapshotted when
// Publish is called, so a listener added during delivery of a publish does
// not receive that publish. No ordering guarantee exists across different
// brokers.
package pubsub

import "sync"

// Op identifies the kind of mutation an event describes.
type Op int

const (
	OpCreated Op = iota
	OpUpdated
	OpDeleted
)

// String returns a human-readable name for the op.
func (o Op) String() string {
	switch o {
	case OpCreated:
		return "created"
	case OpUpdated:
		return "updated"
	case OpDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// Event is a single mutation broadcast: the operation kind plus a
// post-mutation snapshot of the entity (for deletes, the removed entity).
type Event[T any] struct {
	Op     Op
	Entity T
}

// Subscription is the handle returned by Subscribe. Cancel is deterministic:
// after it returns, the listener receives no further events.
type Subscription struct {
	id     uint64
	cancel func()
	once   sync.Once
}

// Cancel removes the subscription from its broker. Safe to call multiple
// times.
func (s *Subscription) Cancel() {
	if s == nil {
		return
	}
	s.once.Do(s.cancel)
}

type entry[T any] struct {
	id uint64
	fn func(Event[T])
}

// Broker is an observer registry keyed by subscription handle. The zero
// value is not usable; construct with NewBroker.
type Broker[T any] struct {
	mu      sync.Mutex
	nextID  uint64
	entries []entry[T]
}

// NewBroker creates an empty broker.
func NewBroker[T any]() *Broker[T] {
	return &Broker[T]{}
}

// Subscribe registers a listener and returns its handle. Listeners are
// invoked in registration order.
func (b *Broker[T]) Subscribe(fn func(Event[T])) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.entries = append(b.entries, entry[T]{id: id, fn: fn})

	return &Subscription{
		id: id,
		cancel: func() {
			b.unsubscribe(id)
		},
	}
}

func (b *Broker[T]) unsubscribe(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, e := range b.entries {
		if e.id == id {
			b.entries = append(b.entries[:i], b.entries[i+1:]...)
			return
		}
	}
}

// Publish delivers ev to every listener subscribed at the time of the call,
// synchronously and in subscription order. Listeners run outside the broker
// lock so they may subscribe or cancel during delivery. A listener cancelled
// mid-delivery is skipped; one added mid-delivery waits for the next publish.
func (b *Broker[T]) Publish(ev Event[T]) {
	b.mu.Lock()
	snapshot := make([]entry[T], len(b.entries))
	copy(snapshot, b.entries)
	b.mu.Unlock()

	for _, e := range snapshot {
		if !b.active(e.id) {
			continue
		}
		e.fn(ev)
	}
}

func (b *Broker[T]) active(id uint64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, e := range b.entries {
		if e.id == id {
			return true
		}
	}
	return false
}

// Len returns the number of active subscriptions.
func (b *Broker[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}
