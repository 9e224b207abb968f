package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"bolso/internal/domain/fault"
	"bolso/internal/domain/transaction"
	"bolso/internal/pubsub"
	"bolso/internal/simnet"
)

// TransactionProvider is the in-memory simulated backend for transactions.
type TransactionProvider struct {
	sim    *simnet.Injector
	broker *pubsub.Broker[transaction.Transaction]

	mu           sync.RWMutex
	transactions []transaction.Transaction
}

// NewTransactionProvider creates a provider seeded with the given
// transactions.
func NewTransactionProvider(sim *simnet.Injector, seed []transaction.Transaction) *TransactionProvider {
	txs := make([]transaction.Transaction, len(seed))
	copy(txs, seed)
	return &TransactionProvider{
		sim:          sim,
		broker:       pubsub.NewBroker[transaction.Transaction](),
		transactions: txs,
	}
}

// FetchAll returns copies of every transaction after the simulated delay.
func (p *TransactionProvider) FetchAll(ctx context.Context) ([]transaction.Transaction, error) {
	ctx, span := tracer.Start(ctx, "transactions.fetchAll")
	defer span.End()

	if err := p.sim.Wait(ctx, "fetchAll"); err != nil {
		return nil, finish(ctx, span, "transactions", "fetchAll", err)
	}

	p.mu.RLock()
	out := make([]transaction.Transaction, len(p.transactions))
	copy(out, p.transactions)
	p.mu.RUnlock()

	return out, finish(ctx, span, "transactions", "fetchAll", nil)
}

// FetchByAccount returns the transactions belonging to one account.
func (p *TransactionProvider) FetchByAccount(ctx context.Context, accountID string) ([]transaction.Transaction, error) {
	ctx, span := tracer.Start(ctx, "transactions.fetchByAccount")
	defer span.End()

	if err := p.sim.Wait(ctx, "fetchByAccount"); err != nil {
		return nil, finish(ctx, span, "transactions", "fetchByAccount", err)
	}

	p.mu.RLock()
	var out []transaction.Transaction
	for _, tx := range p.transactions {
		if tx.AccountID == accountID {
			out = append(out, tx)
		}
	}
	p.mu.RUnlock()

	return out, finish(ctx, span, "transactions", "fetchByAccount", nil)
}

// Create validates the params, then records the transaction after the
// simulated delay and broadcasts it.
func (p *TransactionProvider) Create(ctx context.Context, params transaction.CreateParams) (transaction.Transaction, error) {
	ctx, span := tracer.Start(ctx, "transactions.create")
	defer span.End()

	if err := params.Validate(); err != nil {
		return transaction.Transaction{}, finish(ctx, span, "transactions", "create", err)
	}
	if err := p.sim.Wait(ctx, "create"); err != nil {
		return transaction.Transaction{}, finish(ctx, span, "transactions", "create", err)
	}

	tx := transaction.Transaction{
		ID:           uuid.NewString(),
		AccountID:    params.AccountID,
		Amount:       params.Amount,
		Date:         params.Date,
		Description:  params.Description,
		Category:     params.Category,
		Pending:      params.Pending,
		MerchantName: params.MerchantName,
		Notes:        params.Notes,
	}

	p.mu.Lock()
	p.transactions = append(p.transactions, tx)
	p.mu.Unlock()

	p.publish(ctx, pubsub.Event[transaction.Transaction]{Op: pubsub.OpCreated, Entity: tx})
	return tx, finish(ctx, span, "transactions", "create", nil)
}

// UpdateCategory sets the category of an existing transaction. Amount and
// date stay immutable.
func (p *TransactionProvider) UpdateCategory(ctx context.Context, id, category string) (transaction.Transaction, error) {
	ctx, span := tracer.Start(ctx, "transactions.updateCategory")
	defer span.End()

	if err := transaction.ValidateCategory(category); err != nil {
		return transaction.Transaction{}, finish(ctx, span, "transactions", "updateCategory", err)
	}
	if err := p.sim.Wait(ctx, "updateCategory"); err != nil {
		return transaction.Transaction{}, finish(ctx, span, "transactions", "updateCategory", err)
	}

	p.mu.Lock()
	i := p.index(id)
	if i < 0 {
		p.mu.Unlock()
		return transaction.Transaction{}, finish(ctx, span, "transactions", "updateCategory", fault.NewNotFound("transaction", id))
	}
	p.transactions[i].Category = category
	tx := p.transactions[i]
	p.mu.Unlock()

	p.publish(ctx, pubsub.Event[transaction.Transaction]{Op: pubsub.OpUpdated, Entity: tx})
	return tx, finish(ctx, span, "transactions", "updateCategory", nil)
}

// UpdateNotes sets the notes of an existing transaction.
func (p *TransactionProvider) UpdateNotes(ctx context.Context, id, notes string) (transaction.Transaction, error) {
	ctx, span := tracer.Start(ctx, "transactions.updateNotes")
	defer span.End()

	if err := p.sim.Wait(ctx, "updateNotes"); err != nil {
		return transaction.Transaction{}, finish(ctx, span, "transactions", "updateNotes", err)
	}

	p.mu.Lock()
	i := p.index(id)
	if i < 0 {
		p.mu.Unlock()
		return transaction.Transaction{}, finish(ctx, span, "transactions", "updateNotes", fault.NewNotFound("transaction", id))
	}
	p.transactions[i].Notes = notes
	tx := p.transactions[i]
	p.mu.Unlock()

	p.publish(ctx, pubsub.Event[transaction.Transaction]{Op: pubsub.OpUpdated, Entity: tx})
	return tx, finish(ctx, span, "transactions", "updateNotes", nil)
}

// Delete removes a transaction.
func (p *TransactionProvider) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "transactions.delete")
	defer span.End()

	if err := p.sim.Wait(ctx, "delete"); err != nil {
		return finish(ctx, span, "transactions", "delete", err)
	}

	p.mu.Lock()
	i := p.index(id)
	if i < 0 {
		p.mu.Unlock()
		return finish(ctx, span, "transactions", "delete", fault.NewNotFound("transaction", id))
	}
	tx := p.transactions[i]
	p.transactions = append(p.transactions[:i], p.transactions[i+1:]...)
	p.mu.Unlock()

	p.publish(ctx, pubsub.Event[transaction.Transaction]{Op: pubsub.OpDeleted, Entity: tx})
	return finish(ctx, span, "transactions", "delete", nil)
}

// Search returns the transactions matching the query.
func (p *TransactionProvider) Search(ctx context.Context, query string) ([]transaction.Transaction, error) {
	ctx, span := tracer.Start(ctx, "transactions.search")
	defer span.End()

	if err := p.sim.Wait(ctx, "search"); err != nil {
		return nil, finish(ctx, span, "transactions", "search", err)
	}

	p.mu.RLock()
	var out []transaction.Transaction
	for _, tx := range p.transactions {
		if tx.Matches(query) {
			out = append(out, tx)
		}
	}
	p.mu.RUnlock()

	return out, finish(ctx, span, "transactions", "search", nil)
}

// Subscribe registers a listener on the transaction mutation channel.
func (p *TransactionProvider) Subscribe(fn func(pubsub.Event[transaction.Transaction])) *pubsub.Subscription {
	return p.broker.Subscribe(fn)
}

// Close marks the provider as gone.
func (p *TransactionProvider) Close() {
	p.sim.Close()
}

// index must be called with the lock held.
func (p *TransactionProvider) index(id string) int {
	for i := range p.transactions {
		if p.transactions[i].ID == id {
			return i
		}
	}
	return -1
}

func (p *TransactionProvider) publish(ctx context.Context, ev pubsub.Event[transaction.Transaction]) {
	published(ctx, "transactions", ev.Op.String())
	p.broker.Publish(ev)
}
