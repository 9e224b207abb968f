package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"bolso/internal/domain/account"
	"bolso/internal/domain/fault"
	"bolso/internal/pubsub"
	"bolso/internal/simnet"
)

// AccountProvider is the in-memory simulated backend for accounts.
type AccountProvider struct {
	sim    *simnet.Injector
	broker *pubsub.Broker[account.Account]
	now    func() time.Time

	mu       sync.RWMutex
	accounts []account.Account
}

// NewAccountProvider creates a provider seeded with the given accounts.
func NewAccountProvider(sim *simnet.Injector, seed []account.Account) *AccountProvider {
	accounts := make([]account.Account, len(seed))
	copy(accounts, seed)
	return &AccountProvider{
		sim:      sim,
		broker:   pubsub.NewBroker[account.Account](),
		now:      time.Now,
		accounts: accounts,
	}
}

// FetchAll returns copies of every account after the simulated delay.
func (p *AccountProvider) FetchAll(ctx context.Context) ([]account.Account, error) {
	ctx, span := tracer.Start(ctx, "accounts.fetchAll")
	defer span.End()

	if err := p.sim.Wait(ctx, "fetchAll"); err != nil {
		return nil, finish(ctx, span, "accounts", "fetchAll", err)
	}

	p.mu.RLock()
	out := make([]account.Account, len(p.accounts))
	copy(out, p.accounts)
	p.mu.RUnlock()

	return out, finish(ctx, span, "accounts", "fetchAll", nil)
}

// Link validates the params, then creates the account after the simulated
// delay and broadcasts it.
func (p *AccountProvider) Link(ctx context.Context, params account.LinkParams) (account.Account, error) {
	ctx, span := tracer.Start(ctx, "accounts.link")
	defer span.End()

	if err := params.Validate(); err != nil {
		return account.Account{}, finish(ctx, span, "accounts", "link", err)
	}
	if err := p.sim.Wait(ctx, "link"); err != nil {
		return account.Account{}, finish(ctx, span, "accounts", "link", err)
	}

	acc := account.Account{
		ID:            uuid.NewString(),
		InstitutionID: params.InstitutionID,
		Name:          params.Name,
		Type:          params.Type,
		Balance:       params.Balance,
		Currency:      params.Currency,
		LastSyncedAt:  p.now(),
		IsActive:      true,
	}

	p.mu.Lock()
	p.accounts = append(p.accounts, acc)
	p.mu.Unlock()

	p.publish(ctx, pubsub.Event[account.Account]{Op: pubsub.OpCreated, Entity: acc})
	return acc, finish(ctx, span, "accounts", "link", nil)
}

// RefreshBalance sets a new balance, refreshing lastSyncedAt. The sign
// invariant is enforced against the account's type.
func (p *AccountProvider) RefreshBalance(ctx context.Context, id string, balance float64) (account.Account, error) {
	ctx, span := tracer.Start(ctx, "accounts.refreshBalance")
	defer span.End()

	if err := p.sim.Wait(ctx, "refreshBalance"); err != nil {
		return account.Account{}, finish(ctx, span, "accounts", "refreshBalance", err)
	}

	p.mu.Lock()
	i := p.index(id)
	if i < 0 {
		p.mu.Unlock()
		return account.Account{}, finish(ctx, span, "accounts", "refreshBalance", fault.NewNotFound("account", id))
	}
	if err := account.ValidateBalance(p.accounts[i].Type, balance); err != nil {
		p.mu.Unlock()
		return account.Account{}, finish(ctx, span, "accounts", "refreshBalance", err)
	}
	p.accounts[i].Balance = balance
	p.accounts[i].LastSyncedAt = p.now()
	acc := p.accounts[i]
	p.mu.Unlock()

	p.publish(ctx, pubsub.Event[account.Account]{Op: pubsub.OpUpdated, Entity: acc})
	return acc, finish(ctx, span, "accounts", "refreshBalance", nil)
}

// SetActive activates or deactivates (unlinks) an account.
func (p *AccountProvider) SetActive(ctx context.Context, id string, active bool) (account.Account, error) {
	ctx, span := tracer.Start(ctx, "accounts.setActive")
	defer span.End()

	if err := p.sim.Wait(ctx, "setActive"); err != nil {
		return account.Account{}, finish(ctx, span, "accounts", "setActive", err)
	}

	p.mu.Lock()
	i := p.index(id)
	if i < 0 {
		p.mu.Unlock()
		return account.Account{}, finish(ctx, span, "accounts", "setActive", fault.NewNotFound("account", id))
	}
	p.accounts[i].IsActive = active
	acc := p.accounts[i]
	p.mu.Unlock()

	p.publish(ctx, pubsub.Event[account.Account]{Op: pubsub.OpUpdated, Entity: acc})
	return acc, finish(ctx, span, "accounts", "setActive", nil)
}

// Subscribe registers a listener on the account mutation channel.
func (p *AccountProvider) Subscribe(fn func(pubsub.Event[account.Account])) *pubsub.Subscription {
	return p.broker.Subscribe(fn)
}

// Close marks the provider as gone; pending operations resolve with a
// ServiceUnavailableError.
func (p *AccountProvider) Close() {
	p.sim.Close()
}

// index must be called with the lock held.
func (p *AccountProvider) index(id string) int {
	for i := range p.accounts {
		if p.accounts[i].ID == id {
			return i
		}
	}
	return -1
}

func (p *AccountProvider) publish(ctx context.Context, ev pubsub.Event[account.Account]) {
	published(ctx, "accounts", ev.Op.String())
	p.broker.Publish(ev)
}
