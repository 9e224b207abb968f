package controller

import (
	"context"

	"bolso/internal/domain/goal"
)

// GoalController drives the savings-goals screen.
type GoalController struct {
	observable[goal.Goal]
	provider goal.Provider
}

// NewGoalController builds an idle controller over the given provider.
func NewGoalController(provider goal.Provider) *GoalController {
	return &GoalController{
		observable: newObservable(func(g goal.Goal) string { return g.ID }),
		provider:   provider,
	}
}

// Initialize subscribes to the goal mutation channel and issues the initial
// fetch.
func (c *GoalController) Initialize(ctx context.Context) {
	c.track(c.provider.Subscribe(c.apply))

	if !c.begin() {
		return
	}
	goals, err := c.provider.FetchAll(ctx)
	if err != nil {
		c.fail(err)
		return
	}
	c.succeed(goals, true)
}

// Create registers a new goal.
func (c *GoalController) Create(ctx context.Context, params goal.CreateParams) {
	if !c.begin() {
		return
	}
	if _, err := c.provider.Create(ctx, params); err != nil {
		c.fail(err)
		return
	}
	c.succeed(nil, false)
}

// UpdateProgress sets a goal's accumulated amount.
func (c *GoalController) UpdateProgress(ctx context.Context, id string, amount float64) {
	if !c.begin() {
		return
	}
	if _, err := c.provider.UpdateProgress(ctx, id, amount); err != nil {
		c.fail(err)
		return
	}
	c.succeed(nil, false)
}

// Delete removes one goal.
func (c *GoalController) Delete(ctx context.Context, id string) {
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
func (c *GoalController) Cleanup() {
	c.cleanup()
}
