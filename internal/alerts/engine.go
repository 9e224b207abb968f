// Package alerts turns domain mutations into notifications. The engine
// subscribes to the budget, goal and account channels and injects a
// notification when a budget first crosses its limit, a goal first reaches
// its target, or an account is deactivated. Transitions are edge-triggered:
// staying over budget produces no repeat alert.
package alerts

import (
	"context"
	"fmt"
	"log"
	"sync"

	"bolso/internal/domain/account"
	"bolso/internal/domain/budget"
	"bolso/internal/domain/goal"
	"bolso/internal/domain/notification"
	"bolso/internal/money"
	"bolso/internal/pubsub"
	"bolso/internal/shared/messages"
)

// Engine watches domain channels and writes alerts through the notification
// provider.
type Engine struct {
	notifications notification.Provider
	catalog       messages.Catalog
	currency      string

	mu           sync.Mutex
	overBudget   map[string]bool
	goalAchieved map[string]bool
	inactive     map[string]bool
	subs         []*pubsub.Subscription
	closed       bool
}

// NewEngine builds an engine that formats amounts in the given currency.
func NewEngine(notifications notification.Provider, catalog messages.Catalog, currency string) *Engine {
	return &Engine{
		notifications: notifications,
		catalog:       catalog,
		currency:      currency,
		overBudget:    make(map[string]bool),
		goalAchieved:  make(map[string]bool),
		inactive:      make(map[string]bool),
	}
}

// WatchBudgets subscribes to the budget channel. A budget whose spending
// crosses its limit triggers one high-priority alert; dropping back under
// re-arms it.
func (e *Engine) WatchBudgets(p budget.Provider) {
	e.track(p.Subscribe(func(ev pubsub.Event[budget.Budget]) {
		b := ev.Entity
		e.mu.Lock()
		if e.closed {
			e.mu.Unlock()
			return
		}
		if ev.Op == pubsub.OpDeleted {
			delete(e.overBudget, b.ID)
			e.mu.Unlock()
			return
		}
		wasOver := e.overBudget[b.ID]
		isOver := b.IsOverBudget()
		e.overBudget[b.ID] = isOver
		e.mu.Unlock()

		if isOver && !wasOver {
			e.inject(notification.Payload{
				Type:     notification.TypeBudgetAlert,
				Title:    e.catalog.BudgetExceeded.Title,
				Message:  e.text(e.catalog.BudgetExceeded.Body, b.Name, money.FormatAmount(b.Spent, e.currency), money.FormatAmount(b.Amount, e.currency)),
				Priority: notification.PriorityHigh,
				Data: notification.Data{
					BudgetID:   b.ID,
					Amount:     b.Spent,
					Percentage: b.SpentPercentage(),
				},
			})
		}
	}))
}

// WatchGoals subscribes to the goal channel; reaching the target amount
// triggers one alert per goal.
func (e *Engine) WatchGoals(p goal.Provider) {
	e.track(p.Subscribe(func(ev pubsub.Event[goal.Goal]) {
		g := ev.Entity
		e.mu.Lock()
		if e.closed {
			e.mu.Unlock()
			return
		}
		if ev.Op == pubsub.OpDeleted {
			delete(e.goalAchieved, g.ID)
			e.mu.Unlock()
			return
		}
		was := e.goalAchieved[g.ID]
		achieved := g.CurrentAmount >= g.TargetAmount
		e.goalAchieved[g.ID] = achieved
		e.mu.Unlock()

		if achieved && !was {
			e.inject(notification.Payload{
				Type:     notification.TypeGoalAchieved,
				Title:    e.catalog.GoalAchieved.Title,
				Message:  e.text(e.catalog.GoalAchieved.Body, g.Name, money.FormatAmount(g.TargetAmount, e.currency)),
				Priority: notification.PriorityMedium,
				Data:     notification.Data{GoalID: g.ID, Amount: g.CurrentAmount},
			})
		}
	}))
}

// WatchAccounts subscribes to the account channel; an update that leaves the
// account inactive triggers an alert.
func (e *Engine) WatchAccounts(p account.Provider) {
	e.track(p.Subscribe(func(ev pubsub.Event[account.Account]) {
		a := ev.Entity
		e.mu.Lock()
		if e.closed {
			e.mu.Unlock()
			return
		}
		if ev.Op == pubsub.OpDeleted {
			delete(e.inactive, a.ID)
			e.mu.Unlock()
			return
		}
		wasInactive := e.inactive[a.ID]
		e.inactive[a.ID] = !a.IsActive
		e.mu.Unlock()

		if ev.Op != pubsub.OpUpdated || a.IsActive || wasInactive {
			return
		}
		e.inject(notification.Payload{
			Type:     notification.TypeAccountAlert,
			Title:    e.catalog.AccountDeactivated.Title,
			Message:  e.text(e.catalog.AccountDeactivated.Body, a.Name),
			Priority: notification.PriorityMedium,
			Data:     notification.Data{AccountID: a.ID},
		})
	}))
}

// Close cancels every subscription. Idempotent.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	subs := e.subs
	e.subs = nil
	e.mu.Unlock()

	for _, s := range subs {
		s.Cancel()
	}
}

func (e *Engine) track(sub *pubsub.Subscription) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		sub.Cancel()
		return
	}
	e.subs = append(e.subs, sub)
	e.mu.Unlock()
}

func (e *Engine) text(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}

func (e *Engine) inject(payload notification.Payload) {
	if _, err := e.notifications.Inject(context.Background(), payload); err != nil {
		log.Printf("alerts: failed to inject %s notification: %v", payload.Type, err)
	}
}
