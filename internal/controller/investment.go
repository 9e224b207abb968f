package controller

import (
	"context"

	"bolso/internal/domain/investment"
)

// InvestmentController drives the portfolio screen.
type InvestmentController struct {
	observable[investment.Investment]
	provider investment.Provider
}

// NewInvestmentController builds an idle controller over the given provider.
func NewInvestmentController(provider investment.Provider) *InvestmentController {
	return &InvestmentController{
		observable: newObservable(func(i investment.Investment) string { return i.ID }),
		provider:   provider,
	}
}

// Initialize subscribes to the investment mutation channel and issues the
// initial fetch.
func (c *InvestmentController) Initialize(ctx context.Context) {
	c.track(c.provider.Subscribe(c.apply))

	if !c.begin() {
		return
	}
	holdings, err := c.provider.FetchAll(ctx)
	if err != nil {
		c.fail(err)
		return
	}
	c.succeed(holdings, true)
}

// Create registers a new holding.
func (c *InvestmentController) Create(ctx context.Context, params investment.CreateParams) {
	if !c.begin() {
		return
	}
	if _, err := c.provider.Create(ctx, params); err != nil {
		c.fail(err)
		return
	}
	c.succeed(nil, false)
}

// RefreshPrices re-quotes every holding; each repriced holding arrives as a
// separate update event.
func (c *InvestmentController) RefreshPrices(ctx context.Context) {
	if !c.begin() {
		return
	}
	if _, err := c.provider.RefreshPrices(ctx); err != nil {
		c.fail(err)
		return
	}
	c.succeed(nil, false)
}

// Delete removes one holding.
func (c *InvestmentController) Delete(ctx context.Context, id string) {
	if !c.begin() {
		return
	}
	if err := c.provider.Delete(ctx, id); err != nil {
		c.fail(err)
		return
	}
	c.succeed(nil, false)
}

// TotalValue sums the market value of the current snapshot.
func (c *InvestmentController) TotalValue() float64 {
	var total float64
	for _, h := range c.Items() {
		total += h.CurrentValue()
	}
	return total
}

// Cleanup cancels the channel subscription and clears the state.
func (c *InvestmentController) Cleanup() {
	c.cleanup()
}
