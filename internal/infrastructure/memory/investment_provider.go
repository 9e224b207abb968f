package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"bolso/internal/domain/fault"
	"bolso/internal/domain/investment"
	"bolso/internal/money"
	"bolso/internal/pubsub"
	"bolso/internal/simnet"
)

// Maximum per-refresh price drift, as a fraction of the current price.
const maxPriceDrift = 0.02

// InvestmentProvider is the in-memory simulated backend for holdings.
type InvestmentProvider struct {
	sim    *simnet.Injector
	broker *pubsub.Broker[investment.Investment]
	now    func() time.Time

	mu       sync.RWMutex
	holdings []investment.Investment
}

// NewInvestmentProvider creates a provider seeded with the given holdings.
func NewInvestmentProvider(sim *simnet.Injector, seed []investment.Investment) *InvestmentProvider {
	holdings := make([]investment.Investment, len(seed))
	copy(holdings, seed)
	return &InvestmentProvider{
		sim:      sim,
		broker:   pubsub.NewBroker[investment.Investment](),
		now:      time.Now,
		holdings: holdings,
	}
}

// FetchAll returns copies of every holding after the simulated delay.
func (p *InvestmentProvider) FetchAll(ctx context.Context) ([]investment.Investment, error) {
	ctx, span := tracer.Start(ctx, "investments.fetchAll")
	defer span.End()

	if err := p.sim.Wait(ctx, "fetchAll"); err != nil {
		return nil, finish(ctx, span, "investments", "fetchAll", err)
	}

	p.mu.RLock()
	out := make([]investment.Investment, len(p.holdings))
	copy(out, p.holdings)
	p.mu.RUnlock()

	return out, finish(ctx, span, "investments", "fetchAll", nil)
}

// Create validates the params, then stores and broadcasts the new holding.
func (p *InvestmentProvider) Create(ctx context.Context, params investment.CreateParams) (investment.Investment, error) {
	ctx, span := tracer.Start(ctx, "investments.create")
	defer span.End()

	if err := params.Validate(); err != nil {
		return investment.Investment{}, finish(ctx, span, "investments", "create", err)
	}
	if err := p.sim.Wait(ctx, "create"); err != nil {
		return investment.Investment{}, finish(ctx, span, "investments", "create", err)
	}

	inv := investment.Investment{
		ID:            uuid.NewString(),
		AccountID:     params.AccountID,
		Symbol:        params.Symbol,
		Name:          params.Name,
		Quantity:      params.Quantity,
		CostBasis:     params.CostBasis,
		CurrentPrice:  params.CurrentPrice,
		LastUpdatedAt: p.now(),
		AssetClass:    params.AssetClass,
	}

	p.mu.Lock()
	p.holdings = append(p.holdings, inv)
	p.mu.Unlock()

	p.publish(ctx, pubsub.Event[investment.Investment]{Op: pubsub.OpCreated, Entity: inv})
	return inv, finish(ctx, span, "investments", "create", nil)
}

// RefreshPrices applies a seeded pseudo-random market tick to every holding,
// publishing one update per holding.
func (p *InvestmentProvider) RefreshPrices(ctx context.Context) ([]investment.Investment, error) {
	ctx, span := tracer.Start(ctx, "investments.refreshPrices")
	defer span.End()

	if err := p.sim.Wait(ctx, "refreshPrices"); err != nil {
		return nil, finish(ctx, span, "investments", "refreshPrices", err)
	}

	refreshedAt := p.now()

	p.mu.Lock()
	out := make([]investment.Investment, 0, len(p.holdings))
	for i := range p.holdings {
		drift := (p.sim.Float64()*2 - 1) * maxPriceDrift
		price := money.Mul(p.holdings[i].CurrentPrice, 1+drift)
		if price < 0 {
			price = 0
		}
		p.holdings[i].CurrentPrice = price
		p.holdings[i].LastUpdatedAt = refreshedAt
		out = append(out, p.holdings[i])
	}
	p.mu.Unlock()

	for _, inv := range out {
		p.publish(ctx, pubsub.Event[investment.Investment]{Op: pubsub.OpUpdated, Entity: inv})
	}
	return out, finish(ctx, span, "investments", "refreshPrices", nil)
}

// Delete removes a holding.
func (p *InvestmentProvider) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "investments.delete")
	defer span.End()

	if err := p.sim.Wait(ctx, "delete"); err != nil {
		return finish(ctx, span, "investments", "delete", err)
	}

	p.mu.Lock()
	i := p.index(id)
	if i < 0 {
		p.mu.Unlock()
		return finish(ctx, span, "investments", "delete", fault.NewNotFound("investment", id))
	}
	inv := p.holdings[i]
	p.holdings = append(p.holdings[:i], p.holdings[i+1:]...)
	p.mu.Unlock()

	p.publish(ctx, pubsub.Event[investment.Investment]{Op: pubsub.OpDeleted, Entity: inv})
	return finish(ctx, span, "investments", "delete", nil)
}

// Subscribe registers a listener on the investment mutation channel.
func (p *InvestmentProvider) Subscribe(fn func(pubsub.Event[investment.Investment])) *pubsub.Subscription {
	return p.broker.Subscribe(fn)
}

// Close marks the provider as gone.
func (p *InvestmentProvider) Close() {
	p.sim.Close()
}

// index must be called with the lock held.
func (p *InvestmentProvider) index(id string) int {
	for i := range p.holdings {
		if p.holdings[i].ID == id {
			return i
		}
	}
	return -1
}

func (p *InvestmentProvider) publish(ctx context.Context, ev pubsub.Event[investment.Investment]) {
	published(ctx, "investments", ev.Op.String())
	p.broker.Publish(ev)
}
