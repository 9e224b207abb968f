// Package search implements the debounce stage of the transaction search
// pipeline. Keystrokes arrive faster than the simulated backend can answer,
// so queries are only released after the input has been quiet for a full
// window, and every intermediate value is discarded.
package search

import (
	"sync"
	"time"
)

// DefaultWindow is the quiescence window applied when none is configured.
const DefaultWindow = 500 * time.Millisecond

// Debouncer coalesces a stream of query strings, invoking the sink with the
// most recent value once no new input has arrived for the window duration.
// All methods are safe for concurrent use.
type Debouncer struct {
	window time.Duration
	sink   func(query string)

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	pending string
	stopped bool
}

// NewDebouncer builds a debouncer that forwards settled queries to sink.
// A non-positive window falls back to DefaultWindow.
func NewDebouncer(window time.Duration, sink func(query string)) *Debouncer {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Debouncer{window: window, sink: sink}
}

// Input records a new query and restarts the quiescence window. Any value
// superseded before the window elapses is never forwarded. Each input takes
// a new generation; an already-fired timer whose window was restarted finds
// a stale generation and delivers nothing.
func (d *Debouncer) Input(query string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.pending = query
	d.gen++
	gen := d.gen
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, func() { d.fire(gen) })
}

// Flush releases the pending query immediately, bypassing the window. It is
// a no-op when nothing is pending or the debouncer is stopped.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.stopped || d.timer == nil {
		d.mu.Unlock()
		return
	}
	d.timer.Stop()
	d.timer = nil
	d.gen++
	query := d.pending
	d.mu.Unlock()

	d.sink(query)
}

// Stop cancels any pending query and drops all future input. Stop is
// idempotent.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if d.stopped || gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	query := d.pending
	d.mu.Unlock()

	d.sink(query)
}
