// Package simnet simulates the network boundary that the providers stand in
// for: a configurable latency window and an optional failure probability,
// driven by a seedable PRNG so test runs are reproducible.
package simnet

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"bolso/internal/domain/fault"
)

// Config controls one injector. MinDelay == MaxDelay gives a fixed delay;
// otherwise each call draws a delay uniformly from [MinDelay, MaxDelay].
// FailureRate is the probability in [0,1] that a call resolves with a
// TransientError instead of its result.
type Config struct {
	MinDelay    time.Duration
	MaxDelay    time.Duration
	FailureRate float64
	Seed        int64
}

// Injector applies simulated latency and failures to provider operations.
// Close makes every pending and future Wait resolve with a
// ServiceUnavailableError instead of hanging, standing in for a deallocated
// provider.
type Injector struct {
	name string

	mu  sync.Mutex
	rng *rand.Rand
	cfg Config

	closed    chan struct{}
	closeOnce sync.Once
}

// New creates an injector for the named provider. A zero Seed seeds from the
// current time; tests pass an explicit seed for determinism.
func New(name string, cfg Config) *Injector {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if cfg.MaxDelay < cfg.MinDelay {
		cfg.MaxDelay = cfg.MinDelay
	}
	return &Injector{
		name:   name,
		rng:    rand.New(rand.NewSource(seed)),
		cfg:    cfg,
		closed: make(chan struct{}),
	}
}

// Wait blocks for the simulated latency of one operation, then reports the
// simulated outcome: nil on success, a TransientError on an injected failure,
// a ServiceUnavailableError if the injector was closed while waiting, or the
// context error if ctx was cancelled first.
func (in *Injector) Wait(ctx context.Context, op string) error {
	select {
	case <-in.closed:
		return fault.NewUnavailable(in.name)
	default:
	}

	in.mu.Lock()
	delay := in.cfg.MinDelay
	if span := in.cfg.MaxDelay - in.cfg.MinDelay; span > 0 {
		delay += time.Duration(in.rng.Int63n(int64(span) + 1))
	}
	fail := in.cfg.FailureRate > 0 && in.rng.Float64() < in.cfg.FailureRate
	in.mu.Unlock()

	if delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()

		select {
		case <-timer.C:
		case <-in.closed:
			return fault.NewUnavailable(in.name)
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if fail {
		return fault.NewTransient(op)
	}
	return nil
}

// Close marks the provider as gone. Idempotent.
func (in *Injector) Close() {
	in.closeOnce.Do(func() { close(in.closed) })
}

// Closed reports whether Close has been called.
func (in *Injector) Closed() bool {
	select {
	case <-in.closed:
		return true
	default:
		return false
	}
}

// Float64 draws from the injector's seeded PRNG, for callers that need
// reproducible randomness tied to the same seed (e.g. simulated price drift).
func (in *Injector) Float64() float64 {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.rng.Float64()
}
