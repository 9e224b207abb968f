package controller

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bolso/internal/domain/account"
	"bolso/internal/domain/fault"
	"bolso/internal/pubsub"
)

func twoAccounts() []account.Account {
	return []account.Account{
		{ID: "acc-1", InstitutionID: "inst-1", Name: "Checking", Type: account.TypeChecking, Balance: 1500, Currency: "BRL", IsActive: true},
		{ID: "acc-2", InstitutionID: "inst-1", Name: "Savings", Type: account.TypeSavings, Balance: 8000, Currency: "BRL", IsActive: true},
	}
}

func TestInitializeLoadsSnapshot(t *testing.T) {
	p := newMockAccountProvider()
	p.fetchAllFn = func(context.Context) ([]account.Account, error) {
		return twoAccounts(), nil
	}

	c := NewAccountController(p)
	assert.False(t, c.IsLoading(), "idle before Initialize")
	assert.Empty(t, c.Items())

	c.Initialize(context.Background())

	assert.False(t, c.IsLoading())
	assert.Empty(t, c.ErrorMessage())
	require.Len(t, c.Items(), 2)
	assert.Equal(t, "acc-1", c.Items()[0].ID)
}

func TestInitializeRoutesErrorToObservable(t *testing.T) {
	p := newMockAccountProvider()
	p.fetchAllFn = func(context.Context) ([]account.Account, error) {
		return nil, fault.NewTransient("fetchAll")
	}

	c := NewAccountController(p)
	c.Initialize(context.Background())

	assert.False(t, c.IsLoading())
	assert.NotEmpty(t, c.ErrorMessage())
	assert.Empty(t, c.Items())
}

func TestSuccessfulOperationClearsError(t *testing.T) {
	p := newMockAccountProvider()
	failing := true
	p.fetchAllFn = func(context.Context) ([]account.Account, error) {
		if failing {
			return nil, fault.NewTransient("fetchAll")
		}
		return twoAccounts(), nil
	}

	c := NewAccountController(p)
	c.Initialize(context.Background())
	require.NotEmpty(t, c.ErrorMessage())

	failing = false
	c.Refresh(context.Background())

	assert.Empty(t, c.ErrorMessage())
	assert.Len(t, c.Items(), 2)
}

func TestEventMergeReplacesInPlace(t *testing.T) {
	p := newMockAccountProvider()
	p.fetchAllFn = func(context.Context) ([]account.Account, error) {
		return twoAccounts(), nil
	}

	c := NewAccountController(p)
	c.Initialize(context.Background())

	updated := twoAccounts()[0]
	updated.Balance = 1750.25
	p.broker.Publish(pubsub.Event[account.Account]{Op: pubsub.OpUpdated, Entity: updated})

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "acc-1", items[0].ID, "order preserved")
	assert.Equal(t, 1750.25, items[0].Balance)
}

func TestEventMergeAppendsUnknownID(t *testing.T) {
	p := newMockAccountProvider()
	p.fetchAllFn = func(context.Context) ([]account.Account, error) {
		return twoAccounts(), nil
	}

	c := NewAccountController(p)
	c.Initialize(context.Background())

	p.broker.Publish(pubsub.Event[account.Account]{
		Op:     pubsub.OpCreated,
		Entity: account.Account{ID: "acc-3", Name: "Brokerage", Type: account.TypeInvestment, Currency: "BRL", IsActive: true},
	})

	items := c.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "acc-3", items[2].ID, "new entity appended at the end")
}

func TestEventMergeRemovesOnDelete(t *testing.T) {
	p := newMockAccountProvider()
	p.fetchAllFn = func(context.Context) ([]account.Account, error) {
		return twoAccounts(), nil
	}

	c := NewAccountController(p)
	c.Initialize(context.Background())

	p.broker.Publish(pubsub.Event[account.Account]{Op: pubsub.OpDeleted, Entity: twoAccounts()[0]})

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "acc-2", items[0].ID)
}

func TestLinkFailureLeavesSnapshotUntouched(t *testing.T) {
	p := newMockAccountProvider()
	p.fetchAllFn = func(context.Context) ([]account.Account, error) {
		return twoAccounts(), nil
	}
	p.linkFn = func(context.Context, account.LinkParams) (account.Account, error) {
		return account.Account{}, fault.NewValidation("name", "is required")
	}

	c := NewAccountController(p)
	c.Initialize(context.Background())
	c.Link(context.Background(), account.LinkParams{})

	assert.NotEmpty(t, c.ErrorMessage())
	assert.Len(t, c.Items(), 2)
	assert.False(t, c.IsLoading())
}

func TestCleanupDropsLateEventsAndOperations(t *testing.T) {
	p := newMockAccountProvider()
	p.fetchAllFn = func(context.Context) ([]account.Account, error) {
		return twoAccounts(), nil
	}

	c := NewAccountController(p)
	c.Initialize(context.Background())
	require.Len(t, c.Items(), 2)

	c.Cleanup()
	c.Cleanup() // idempotent

	p.broker.Publish(pubsub.Event[account.Account]{
		Op:     pubsub.OpCreated,
		Entity: account.Account{ID: "acc-9", Name: "Ghost"},
	})

	assert.Empty(t, c.Items())
	assert.False(t, c.IsLoading())
	assert.Empty(t, c.ErrorMessage())

	var called bool
	p.fetchAllFn = func(context.Context) ([]account.Account, error) {
		called = true
		return nil, nil
	}
	c.Refresh(context.Background())
	assert.False(t, called, "operations after cleanup never reach the provider")
}
