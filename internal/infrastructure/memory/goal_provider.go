package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"bolso/internal/domain/fault"
	"bolso/internal/domain/goal"
	"bolso/internal/pubsub"
	"bolso/internal/simnet"
)

// GoalProvider is the in-memory simulated backend for goals.
type GoalProvider struct {
	sim    *simnet.Injector
	broker *pubsub.Broker[goal.Goal]
	now    func() time.Time

	mu    sync.RWMutex
	goals []goal.Goal
}

// NewGoalProvider creates a provider seeded with the given goals.
func NewGoalProvider(sim *simnet.Injector, seed []goal.Goal) *GoalProvider {
	goals := make([]goal.Goal, len(seed))
	copy(goals, seed)
	return &GoalProvider{
		sim:    sim,
		broker: pubsub.NewBroker[goal.Goal](),
		now:    time.Now,
		goals:  goals,
	}
}

// FetchAll returns copies of every goal after the simulated delay.
func (p *GoalProvider) FetchAll(ctx context.Context) ([]goal.Goal, error) {
	ctx, span := tracer.Start(ctx, "goals.fetchAll")
	defer span.End()

	if err := p.sim.Wait(ctx, "fetchAll"); err != nil {
		return nil, finish(ctx, span, "goals", "fetchAll", err)
	}

	p.mu.RLock()
	out := make([]goal.Goal, len(p.goals))
	copy(out, p.goals)
	p.mu.RUnlock()

	return out, finish(ctx, span, "goals", "fetchAll", nil)
}

// Create validates the params against the creation time, then stores and
// broadcasts the new goal with CurrentAmount = 0.
func (p *GoalProvider) Create(ctx context.Context, params goal.CreateParams) (goal.Goal, error) {
	ctx, span := tracer.Start(ctx, "goals.create")
	defer span.End()

	createdAt := p.now()
	if err := params.Validate(createdAt); err != nil {
		return goal.Goal{}, finish(ctx, span, "goals", "create", err)
	}
	if err := p.sim.Wait(ctx, "create"); err != nil {
		return goal.Goal{}, finish(ctx, span, "goals", "create", err)
	}

	g := goal.Goal{
		ID:            uuid.NewString(),
		Name:          params.Name,
		Description:   params.Description,
		TargetAmount:  params.TargetAmount,
		CurrentAmount: 0,
		TargetDate:    params.TargetDate,
		CreatedAt:     createdAt,
		IsCompleted:   false,
		Category:      params.Category,
	}

	p.mu.Lock()
	p.goals = append(p.goals, g)
	p.mu.Unlock()

	p.publish(ctx, pubsub.Event[goal.Goal]{Op: pubsub.OpCreated, Entity: g})
	return g, finish(ctx, span, "goals", "create", nil)
}

// UpdateProgress sets a goal's current amount and recomputes IsCompleted from
// the raw comparison against the target. A negative amount fails validation
// before anything is touched.
func (p *GoalProvider) UpdateProgress(ctx context.Context, id string, amount float64) (goal.Goal, error) {
	ctx, span := tracer.Start(ctx, "goals.updateProgress")
	defer span.End()

	if err := goal.ValidateProgress(amount); err != nil {
		return goal.Goal{}, finish(ctx, span, "goals", "updateProgress", err)
	}
	if err := p.sim.Wait(ctx, "updateProgress"); err != nil {
		return goal.Goal{}, finish(ctx, span, "goals", "updateProgress", err)
	}

	p.mu.Lock()
	i := p.index(id)
	if i < 0 {
		p.mu.Unlock()
		return goal.Goal{}, finish(ctx, span, "goals", "updateProgress", fault.NewNotFound("goal", id))
	}
	p.goals[i].CurrentAmount = amount
	p.goals[i].IsCompleted = amount >= p.goals[i].TargetAmount
	g := p.goals[i]
	p.mu.Unlock()

	p.publish(ctx, pubsub.Event[goal.Goal]{Op: pubsub.OpUpdated, Entity: g})
	return g, finish(ctx, span, "goals", "updateProgress", nil)
}

// Delete removes a goal.
func (p *GoalProvider) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "goals.delete")
	defer span.End()

	if err := p.sim.Wait(ctx, "delete"); err != nil {
		return finish(ctx, span, "goals", "delete", err)
	}

	p.mu.Lock()
	i := p.index(id)
	if i < 0 {
		p.mu.Unlock()
		return finish(ctx, span, "goals", "delete", fault.NewNotFound("goal", id))
	}
	g := p.goals[i]
	p.goals = append(p.goals[:i], p.goals[i+1:]...)
	p.mu.Unlock()

	p.publish(ctx, pubsub.Event[goal.Goal]{Op: pubsub.OpDeleted, Entity: g})
	return finish(ctx, span, "goals", "delete", nil)
}

// Subscribe registers a listener on the goal mutation channel.
func (p *GoalProvider) Subscribe(fn func(pubsub.Event[goal.Goal])) *pubsub.Subscription {
	return p.broker.Subscribe(fn)
}

// Close marks the provider as gone.
func (p *GoalProvider) Close() {
	p.sim.Close()
}

// index must be called with the lock held.
func (p *GoalProvider) index(id string) int {
	for i := range p.goals {
		if p.goals[i].ID == id {
			return i
		}
	}
	return -1
}

func (p *GoalProvider) publish(ctx context.Context, ev pubsub.Event[goal.Goal]) {
	published(ctx, "goals", ev.Op.String())
	p.broker.Publish(ev)
}
