package controller

import (
	"context"
	"sync/atomic"
	"time"

	"bolso/internal/domain/transaction"
	"bolso/internal/search"
)

// TransactionController drives the transaction list and its search box.
// Keystrokes go through a debouncer; settled queries are issued against the
// provider and numbered, and a result is applied only while its query is the
// newest one issued. An older query finishing after a newer one is dropped,
// regardless of completion order.
type TransactionController struct {
	observable[transaction.Transaction]
	provider  transaction.Provider
	debouncer *search.Debouncer
	queryGen  atomic.Uint64

	lifetime context.Context
}

// NewTransactionController builds an idle controller. window configures the
// search debounce quiescence; zero selects the default.
func NewTransactionController(provider transaction.Provider, window time.Duration) *TransactionController {
	c := &TransactionController{
		observable: newObservable(func(t transaction.Transaction) string { return t.ID }),
		provider:   provider,
		lifetime:   context.Background(),
	}
	c.debouncer = search.NewDebouncer(window, c.runQuery)
	return c
}

// Initialize subscribes to the transaction mutation channel and issues the
// initial fetch. The context is retained for debounced searches, which fire
// outside any caller's frame.
func (c *TransactionController) Initialize(ctx context.Context) {
	c.lifetime = ctx
	c.track(c.provider.Subscribe(c.apply))

	if !c.begin() {
		return
	}
	txs, err := c.provider.FetchAll(ctx)
	if err != nil {
		c.fail(err)
		return
	}
	c.succeed(txs, true)
}

// SetQuery feeds one keystroke's worth of query text into the debounce
// pipeline. Only the value still present after the quiescence window reaches
// the provider; an empty settled query reverts to the unfiltered list.
func (c *TransactionController) SetQuery(query string) {
	c.debouncer.Input(query)
}

// runQuery is the debouncer sink. Each settled query takes the next
// generation number; a result is applied only if no newer query was issued
// while it was in flight.
func (c *TransactionController) runQuery(query string) {
	gen := c.queryGen.Add(1)
	if !c.begin() {
		return
	}

	var (
		txs []transaction.Transaction
		err error
	)
	if query == "" {
		txs, err = c.provider.FetchAll(c.lifetime)
	} else {
		txs, err = c.provider.Search(c.lifetime, query)
	}

	if gen != c.queryGen.Load() {
		// A newer query superseded this one; its completion owns the
		// observable state now.
		return
	}
	if err != nil {
		c.fail(err)
		return
	}
	c.succeed(txs, true)
}

// Create records a new transaction.
func (c *TransactionController) Create(ctx context.Context, params transaction.CreateParams) {
	if !c.begin() {
		return
	}
	if _, err := c.provider.Create(ctx, params); err != nil {
		c.fail(err)
		return
	}
	c.succeed(nil, false)
}

// UpdateCategory recategorizes one transaction.
func (c *TransactionController) UpdateCategory(ctx context.Context, id, category string) {
	if !c.begin() {
		return
	}
	if _, err := c.provider.UpdateCategory(ctx, id, category); err != nil {
		c.fail(err)
		return
	}
	c.succeed(nil, false)
}

// UpdateNotes replaces one transaction's notes.
func (c *TransactionController) UpdateNotes(ctx context.Context, id, notes string) {
	if !c.begin() {
		return
	}
	if _, err := c.provider.UpdateNotes(ctx, id, notes); err != nil {
		c.fail(err)
		return
	}
	c.succeed(nil, false)
}

// Delete removes one transaction; the snapshot drops it via the deleted
// event.
func (c *TransactionController) Delete(ctx context.Context, id string) {
	if !c.begin() {
		return
	}
	if err := c.provider.Delete(ctx, id); err != nil {
		c.fail(err)
		return
	}
	c.succeed(nil, false)
}

// Cleanup stops the debounce pipeline, cancels the channel subscription and
// clears the state. Queries still in flight are dropped on completion.
func (c *TransactionController) Cleanup() {
	c.debouncer.Stop()
	c.queryGen.Add(1)
	c.cleanup()
}
