package alerts

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bolso/internal/domain/account"
	"bolso/internal/domain/budget"
	"bolso/internal/domain/goal"
	"bolso/internal/domain/notification"
	"bolso/internal/infrastructure/memory"
	"bolso/internal/shared/messages"
	"bolso/internal/simnet"
)

func instantInjector(name string) *simnet.Injector {
	return simnet.New(name, simnet.Config{Seed: 1})
}

type fixture struct {
	engine        *Engine
	notifications *memory.NotificationProvider
	budgets       *memory.BudgetProvider
	goals         *memory.GoalProvider
	accounts      *memory.AccountProvider
}

func newFixture(t *testing.T, budgets []budget.Budget, goals []goal.Goal, accounts []account.Account) fixture {
	t.Helper()
	f := fixture{
		notifications: memory.NewNotificationProvider(instantInjector("notifications"), nil),
		budgets:       memory.NewBudgetProvider(instantInjector("budgets"), budgets),
		goals:         memory.NewGoalProvider(instantInjector("goals"), goals),
		accounts:      memory.NewAccountProvider(instantInjector("accounts"), accounts),
	}
	f.engine = NewEngine(f.notifications, messages.Default(), "BRL")
	f.engine.WatchBudgets(f.budgets)
	f.engine.WatchGoals(f.goals)
	f.engine.WatchAccounts(f.accounts)
	t.Cleanup(f.engine.Close)
	return f
}

func (f fixture) alerts(t *testing.T) []notification.Notification {
	t.Helper()
	ns, err := f.notifications.FetchAll(context.Background())
	require.NoError(t, err)
	return ns
}

func TestBudgetCrossingLimitRaisesOneAlert(t *testing.T) {
	f := newFixture(t, []budget.Budget{
		{ID: "b-1", Name: "Groceries", Amount: 100, Category: "Groceries", Period: budget.PeriodMonthly, Spent: 90, IsActive: true},
	}, nil, nil)
	ctx := context.Background()

	_, err := f.budgets.RecordSpend(ctx, "b-1", 15)
	require.NoError(t, err)

	ns := f.alerts(t)
	require.Len(t, ns, 1)
	assert.Equal(t, notification.TypeBudgetAlert, ns[0].Type)
	assert.Equal(t, notification.PriorityHigh, ns[0].Priority)
	assert.Equal(t, "b-1", ns[0].Data.BudgetID)
	assert.Contains(t, ns[0].Message, "Groceries")
	assert.Contains(t, ns[0].Message, "R$105.00")

	// Staying over budget must not repeat the alert.
	_, err = f.budgets.RecordSpend(ctx, "b-1", 5)
	require.NoError(t, err)
	assert.Len(t, f.alerts(t), 1)
}

func TestBudgetRearmsAfterDroppingUnderLimit(t *testing.T) {
	f := newFixture(t, []budget.Budget{
		{ID: "b-1", Name: "Dining", Amount: 100, Category: "Dining", Period: budget.PeriodMonthly, Spent: 110, IsActive: true},
	}, nil, nil)
	ctx := context.Background()

	// First observed event already over the limit: alert fires.
	_, err := f.budgets.RecordSpend(ctx, "b-1", 1)
	require.NoError(t, err)
	require.Len(t, f.alerts(t), 1)

	spent := 40.0
	_, err = f.budgets.Update(ctx, "b-1", budget.UpdateParams{Spent: &spent})
	require.NoError(t, err)

	_, err = f.budgets.RecordSpend(ctx, "b-1", 80)
	require.NoError(t, err)
	assert.Len(t, f.alerts(t), 2, "crossing again after recovery alerts again")
}

func TestGoalReachingTargetRaisesAlert(t *testing.T) {
	future := time.Now().AddDate(1, 0, 0)
	f := newFixture(t, nil, []goal.Goal{
		{ID: "g-1", Name: "Vacation", TargetAmount: 1000, CurrentAmount: 900, TargetDate: future, Category: "travel"},
	}, nil)
	ctx := context.Background()

	_, err := f.goals.UpdateProgress(ctx, "g-1", 1000)
	require.NoError(t, err)

	ns := f.alerts(t)
	require.Len(t, ns, 1)
	assert.Equal(t, notification.TypeGoalAchieved, ns[0].Type)
	assert.Equal(t, "g-1", ns[0].Data.GoalID)
	assert.Contains(t, ns[0].Message, "Vacation")

	_, err = f.goals.UpdateProgress(ctx, "g-1", 1100)
	require.NoError(t, err)
	assert.Len(t, f.alerts(t), 1, "already-achieved goal stays quiet")
}

func TestAccountDeactivationRaisesAlert(t *testing.T) {
	f := newFixture(t, nil, nil, []account.Account{
		{ID: "acc-1", InstitutionID: "inst-1", Name: "Checking", Type: account.TypeChecking, Balance: 100, Currency: "BRL", IsActive: true},
	})
	ctx := context.Background()

	_, err := f.accounts.SetActive(ctx, "acc-1", false)
	require.NoError(t, err)

	ns := f.alerts(t)
	require.Len(t, ns, 1)
	assert.Equal(t, notification.TypeAccountAlert, ns[0].Type)
	assert.Equal(t, "acc-1", ns[0].Data.AccountID)

	// Balance refreshes on an active account stay quiet.
	_, err = f.accounts.SetActive(ctx, "acc-1", true)
	require.NoError(t, err)
	_, err = f.accounts.RefreshBalance(ctx, "acc-1", 250)
	require.NoError(t, err)
	assert.Len(t, f.alerts(t), 1)
}

func TestClosedEngineStaysSilent(t *testing.T) {
	f := newFixture(t, []budget.Budget{
		{ID: "b-1", Name: "Groceries", Amount: 100, Category: "Groceries", Period: budget.PeriodMonthly, Spent: 90, IsActive: true},
	}, nil, nil)

	f.engine.Close()
	f.engine.Close() // idempotent

	_, err := f.budgets.RecordSpend(context.Background(), "b-1", 50)
	require.NoError(t, err)
	assert.Empty(t, f.alerts(t))
}
