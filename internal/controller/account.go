package controller

import (
	"context"

	"bolso/internal/domain/account"
)

// AccountController drives the linked-accounts screen.
type AccountController struct {
	observable[account.Account]
	provider account.Provider
}

// NewAccountController builds an idle controller over the given provider.
func NewAccountController(provider account.Provider) *AccountController {
	return &AccountController{
		observable: newObservable(func(a account.Account) string { return a.ID }),
		provider:   provider,
	}
}

// Initialize subscribes to the account mutation channel and issues the
// initial fetch. Subscribing first guarantees no mutation between fetch and
// subscription is missed.
func (c *AccountController) Initialize(ctx context.Context) {
	c.track(c.provider.Subscribe(c.apply))

	if !c.begin() {
		return
	}
	accounts, err := c.provider.FetchAll(ctx)
	if err != nil {
		c.fail(err)
		return
	}
	c.succeed(accounts, true)
}

// Refresh re-fetches the full collection.
func (c *AccountController) Refresh(ctx context.Context) {
	if !c.begin() {
		return
	}
	accounts, err := c.provider.FetchAll(ctx)
	if err != nil {
		c.fail(err)
		return
	}
	c.succeed(accounts, true)
}

// Link connects a new account. The snapshot is updated through the mutation
// event the provider publishes before returning.
func (c *AccountController) Link(ctx context.Context, params account.LinkParams) {
	if !c.begin() {
		return
	}
	if _, err := c.provider.Link(ctx, params); err != nil {
		c.fail(err)
		return
	}
	c.succeed(nil, false)
}

// RefreshBalance syncs one account's balance.
func (c *AccountController) RefreshBalance(ctx context.Context, id string, balance float64) {
	if !c.begin() {
		return
	}
	if _, err := c.provider.RefreshBalance(ctx, id, balance); err != nil {
		c.fail(err)
		return
	}
	c.succeed(nil, false)
}

// SetActive links or unlinks an account.
func (c *AccountController) SetActive(ctx context.Context, id string, active bool) {
	if !c.begin() {
		return
	}
	if _, err := c.provider.SetActive(ctx, id, active); err != nil {
		c.fail(err)
		return
	}
	c.succeed(nil, false)
}

// Cleanup cancels the channel subscription and clears the state.
func (c *AccountController) Cleanup() {
	c.cleanup()
}
