package controller

import (
	"context"

	"bolso/internal/domain/budget"
)

// BudgetController drives the budgets screen.
type BudgetController struct {
	observable[budget.Budget]
	provider budget.Provider
}

// NewBudgetController builds an idle controller over the given provider.
func NewBudgetController(provider budget.Provider) *BudgetController {
	return &BudgetController{
		observable: newObservable(func(b budget.Budget) string { return b.ID }),
		provider:   provider,
	}
}

// Initialize subscribes to the budget mutation channel and issues the
// initial fetch.
func (c *BudgetController) Initialize(ctx context.Context) {
	c.track(c.provider.Subscribe(c.apply))

	if !c.begin() {
		return
	}
	budgets, err := c.provider.FetchAll(ctx)
	if err != nil {
		c.fail(err)
		return
	}
	c.succeed(budgets, true)
}

// Create registers a new budget.
func (c *BudgetController) Create(ctx context.Context, params budget.CreateParams) {
	if !c.begin() {
		return
	}
	if _, err := c.provider.Create(ctx, params); err != nil {
		c.fail(err)
		return
	}
	c.succeed(nil, false)
}

// Update applies the non-nil fields of params to one budget.
func (c *BudgetController) Update(ctx context.Context, id string, params budget.UpdateParams) {
	if !c.begin() {
		return
	}
	if _, err := c.provider.Update(ctx, id, params); err != nil {
		c.fail(err)
		return
	}
	c.succeed(nil, false)
}

// RecordSpend adds spending against one budget.
func (c *BudgetController) RecordSpend(ctx context.Context, id string, amount float64) {
	if !c.begin() {
		return
	}
	if _, err := c.provider.RecordSpend(ctx, id, amount); err != nil {
		c.fail(err)
		return
	}
	c.succeed(nil, false)
}

// Delete removes one budget.
func (c *BudgetController) Delete(ctx context.Context, id string) {
	if !c.begin() {
		return
	}
	if err := c.provider.Delete(ctx, id); err != nil {
		c.fail(err)
		return
	}
	c.succeed(nil, false)
}

// Cleanup cancels the channel subscription and clears the state.
func (c *BudgetController) Cleanup() {
	c.cleanup()
}
