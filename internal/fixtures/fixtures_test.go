package fixtures

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bolso/internal/domain/account"
)

func TestGenerateIsDeterministic(t *testing.T) {
	now := time.Date(2026, 4, 15, 12, 0, 0, 0, time.UTC)

	a := Generate(42, now)
	b := Generate(42, now)
	assert.Equal(t, a.Accounts, b.Accounts)
	assert.Equal(t, a.Transactions, b.Transactions)
	assert.Equal(t, a.Budgets, b.Budgets)

	c := Generate(43, now)
	assert.NotEqual(t, a.Accounts[0].Balance, c.Accounts[0].Balance, "different seed, different amounts")
}

func TestGenerateInternalConsistency(t *testing.T) {
	now := time.Date(2026, 4, 15, 12, 0, 0, 0, time.UTC)
	set := Generate(1, now)

	accountIDs := make(map[string]bool)
	for _, a := range set.Accounts {
		accountIDs[a.ID] = true
		require.NoError(t, account.ValidateBalance(a.Type, a.Balance), "seeded balance must satisfy the sign rule for %s", a.ID)
	}
	for _, tx := range set.Transactions {
		assert.True(t, accountIDs[tx.AccountID], "transaction %s references unknown account %s", tx.ID, tx.AccountID)
	}
	for _, b := range set.Budgets {
		assert.Positive(t, b.Amount)
		assert.GreaterOrEqual(t, b.Spent, 0.0)
	}
	for _, g := range set.Goals {
		assert.True(t, g.TargetDate.After(now))
	}

	require.Len(t, set.Users, 1)
	assert.Equal(t, DemoEmail, set.Users[0].User.Email)
	assert.NotEmpty(t, set.Users[0].Password)
}
