// Package controller holds the presentation controllers that sit between the
// data providers and a rendering surface. Each controller exposes an
// observable snapshot (items, loading flag, error message) and keeps it
// consistent with the provider's mutation channel. All observable state is
// serialized through a single mutex per controller.
package controller

import (
	"sync"

	"bolso/internal/pubsub"
)

// observable is the shared state core embedded by the collection
// controllers. The zero value is the idle state: no items, not loading, no
// error.
type observable[T any] struct {
	idOf func(T) string

	mu      sync.Mutex
	items   []T
	loading bool
	errMsg  string
	cleaned bool
	subs    []*pubsub.Subscription
}

func newObservable[T any](idOf func(T) string) observable[T] {
	return observable[T]{idOf: idOf}
}

// Items returns a copy of the current item snapshot.
func (o *observable[T]) Items() []T {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]T, len(o.items))
	copy(out, o.items)
	return out
}

// IsLoading reports whether an operation is in flight.
func (o *observable[T]) IsLoading() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.loading
}

// ErrorMessage returns the message of the last failed operation, or "" after
// a successful one.
func (o *observable[T]) ErrorMessage() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.errMsg
}

// begin transitions to loading and clears any previous error. It reports
// false when the controller has been cleaned up, in which case the caller
// must not proceed.
func (o *observable[T]) begin() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.cleaned {
		return false
	}
	o.loading = true
	o.errMsg = ""
	return true
}

// succeed ends the in-flight operation, replacing the snapshot when replace
// is set. Results landing after cleanup are dropped.
func (o *observable[T]) succeed(items []T, replace bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.cleaned {
		return
	}
	o.loading = false
	o.errMsg = ""
	if replace {
		o.items = items
	}
}

// fail ends the in-flight operation with an error message, leaving the item
// snapshot untouched.
func (o *observable[T]) fail(err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.cleaned {
		return
	}
	o.loading = false
	o.errMsg = err.Error()
}

// apply merges one mutation event into the snapshot: replace in place by id
// preserving order, append when absent, remove on delete. Events arriving
// after cleanup are dropped.
func (o *observable[T]) apply(ev pubsub.Event[T]) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.cleaned {
		return
	}
	id := o.idOf(ev.Entity)
	idx := -1
	for i := range o.items {
		if o.idOf(o.items[i]) == id {
			idx = i
			break
		}
	}
	switch ev.Op {
	case pubsub.OpDeleted:
		if idx >= 0 {
			o.items = append(o.items[:idx], o.items[idx+1:]...)
		}
	default:
		if idx >= 0 {
			o.items[idx] = ev.Entity
		} else {
			o.items = append(o.items, ev.Entity)
		}
	}
}

// track retains a subscription so cleanup can cancel it.
func (o *observable[T]) track(sub *pubsub.Subscription) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.subs = append(o.subs, sub)
}

// cleanup cancels all subscriptions and clears the state. It is idempotent;
// after the first call every result and event is dropped silently.
func (o *observable[T]) cleanup() {
	o.mu.Lock()
	if o.cleaned {
		o.mu.Unlock()
		return
	}
	o.cleaned = true
	subs := o.subs
	o.subs = nil
	o.items = nil
	o.loading = false
	o.errMsg = ""
	o.mu.Unlock()

	for _, s := range subs {
		s.Cancel()
	}
}
