package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"bolso/internal/domain/budget"
	"bolso/internal/domain/fault"
	"bolso/internal/pubsub"
	"bolso/internal/simnet"
)

// BudgetProvider is the in-memory simulated backend for budgets.
type BudgetProvider struct {
	sim    *simnet.Injector
	broker *pubsub.Broker[budget.Budget]
	now    func() time.Time

	mu      sync.RWMutex
	budgets []budget.Budget
}

// NewBudgetProvider creates a provider seeded with the given budgets.
func NewBudgetProvider(sim *simnet.Injector, seed []budget.Budget) *BudgetProvider {
	budgets := make([]budget.Budget, len(seed))
	copy(budgets, seed)
	return &BudgetProvider{
		sim:     sim,
		broker:  pubsub.NewBroker[budget.Budget](),
		now:     time.Now,
		budgets: budgets,
	}
}

// FetchAll returns copies of every budget after the simulated delay.
func (p *BudgetProvider) FetchAll(ctx context.Context) ([]budget.Budget, error) {
	ctx, span := tracer.Start(ctx, "budgets.fetchAll")
	defer span.End()

	if err := p.sim.Wait(ctx, "fetchAll"); err != nil {
		return nil, finish(ctx, span, "budgets", "fetchAll", err)
	}

	p.mu.RLock()
	out := make([]budget.Budget, len(p.budgets))
	copy(out, p.budgets)
	p.mu.RUnlock()

	return out, finish(ctx, span, "budgets", "fetchAll", nil)
}

// Create validates the params, derives the period bounds from the creation
// time, then stores and broadcasts the new budget. New budgets start with
// Spent = 0 and IsActive = true.
func (p *BudgetProvider) Create(ctx context.Context, params budget.CreateParams) (budget.Budget, error) {
	ctx, span := tracer.Start(ctx, "budgets.create")
	defer span.End()

	if err := params.Validate(); err != nil {
		return budget.Budget{}, finish(ctx, span, "budgets", "create", err)
	}
	start, end, err := params.PeriodBounds(p.now())
	if err != nil {
		return budget.Budget{}, finish(ctx, span, "budgets", "create", err)
	}
	if err := p.sim.Wait(ctx, "create"); err != nil {
		return budget.Budget{}, finish(ctx, span, "budgets", "create", err)
	}

	b := budget.Budget{
		ID:        uuid.NewString(),
		Name:      params.Name,
		Amount:    params.Amount,
		Category:  params.Category,
		Period:    params.Period,
		StartDate: start,
		EndDate:   end,
		Spent:     0,
		IsActive:  true,
	}

	p.mu.Lock()
	p.budgets = append(p.budgets, b)
	p.mu.Unlock()

	p.publish(ctx, pubsub.Event[budget.Budget]{Op: pubsub.OpCreated, Entity: b})
	return b, finish(ctx, span, "budgets", "create", nil)
}

// Update applies the non-nil fields of params to an existing budget.
func (p *BudgetProvider) Update(ctx context.Context, id string, params budget.UpdateParams) (budget.Budget, error) {
	ctx, span := tracer.Start(ctx, "budgets.update")
	defer span.End()

	if err := params.Validate(); err != nil {
		return budget.Budget{}, finish(ctx, span, "budgets", "update", err)
	}
	if err := p.sim.Wait(ctx, "update"); err != nil {
		return budget.Budget{}, finish(ctx, span, "budgets", "update", err)
	}

	p.mu.Lock()
	i := p.index(id)
	if i < 0 {
		p.mu.Unlock()
		return budget.Budget{}, finish(ctx, span, "budgets", "update", fault.NewNotFound("budget", id))
	}
	if params.Name != nil {
		p.budgets[i].Name = *params.Name
	}
	if params.Amount != nil {
		p.budgets[i].Amount = *params.Amount
	}
	if params.Spent != nil {
		p.budgets[i].Spent = *params.Spent
	}
	if params.IsActive != nil {
		p.budgets[i].IsActive = *params.IsActive
	}
	b := p.budgets[i]
	p.mu.Unlock()

	p.publish(ctx, pubsub.Event[budget.Budget]{Op: pubsub.OpUpdated, Entity: b})
	return b, finish(ctx, span, "budgets", "update", nil)
}

// RecordSpend adds amount to a budget's raw spent total. The raw total may
// exceed the budget amount but never goes negative.
func (p *BudgetProvider) RecordSpend(ctx context.Context, id string, amount float64) (budget.Budget, error) {
	ctx, span := tracer.Start(ctx, "budgets.recordSpend")
	defer span.End()

	if err := p.sim.Wait(ctx, "recordSpend"); err != nil {
		return budget.Budget{}, finish(ctx, span, "budgets", "recordSpend", err)
	}

	p.mu.Lock()
	i := p.index(id)
	if i < 0 {
		p.mu.Unlock()
		return budget.Budget{}, finish(ctx, span, "budgets", "recordSpend", fault.NewNotFound("budget", id))
	}
	if p.budgets[i].Spent+amount < 0 {
		p.mu.Unlock()
		return budget.Budget{}, finish(ctx, span, "budgets", "recordSpend", fault.NewValidation("spent", "must be non-negative"))
	}
	p.budgets[i].Spent += amount
	b := p.budgets[i]
	p.mu.Unlock()

	p.publish(ctx, pubsub.Event[budget.Budget]{Op: pubsub.OpUpdated, Entity: b})
	return b, finish(ctx, span, "budgets", "recordSpend", nil)
}

// Delete removes a budget.
func (p *BudgetProvider) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "budgets.delete")
	defer span.End()

	if err := p.sim.Wait(ctx, "delete"); err != nil {
		return finish(ctx, span, "budgets", "delete", err)
	}

	p.mu.Lock()
	i := p.index(id)
	if i < 0 {
		p.mu.Unlock()
		return finish(ctx, span, "budgets", "delete", fault.NewNotFound("budget", id))
	}
	b := p.budgets[i]
	p.budgets = append(p.budgets[:i], p.budgets[i+1:]...)
	p.mu.Unlock()

	p.publish(ctx, pubsub.Event[budget.Budget]{Op: pubsub.OpDeleted, Entity: b})
	return finish(ctx, span, "budgets", "delete", nil)
}

// Subscribe registers a listener on the budget mutation channel.
func (p *BudgetProvider) Subscribe(fn func(pubsub.Event[budget.Budget])) *pubsub.Subscription {
	return p.broker.Subscribe(fn)
}

// Close marks the provider as gone.
func (p *BudgetProvider) Close() {
	p.sim.Close()
}

// index must be called with the lock held.
func (p *BudgetProvider) index(id string) int {
	for i := range p.budgets {
		if p.budgets[i].ID == id {
			return i
		}
	}
	return -1
}

func (p *BudgetProvider) publish(ctx context.Context, ev pubsub.Event[budget.Budget]) {
	published(ctx, "budgets", ev.Op.String())
	p.broker.Publish(ev)
}
