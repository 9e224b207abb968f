package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bolso/internal/domain/fault"
	"bolso/internal/domain/goal"
)

func newGoal(t *testing.T, p *GoalProvider, target float64) goal.Goal {
	t.Helper()
	g, err := p.Create(context.Background(), goal.CreateParams{
		Name:         "Trip to Salvador",
		TargetAmount: target,
		TargetDate:   time.Now().AddDate(0, 6, 0),
		Category:     "travel",
	})
	require.NoError(t, err)
	return g
}

func TestGoalProgressCompletion(t *testing.T) {
	p := NewGoalProvider(testInjector(), nil)
	ctx := context.Background()
	g := newGoal(t, p, 1000)

	updated, err := p.UpdateProgress(ctx, g.ID, 400)
	require.NoError(t, err)
	assert.False(t, updated.IsCompleted)

	updated, err = p.UpdateProgress(ctx, g.ID, 1000)
	require.NoError(t, err)
	assert.True(t, updated.IsCompleted, "current == target completes the goal")

	// Completion follows the raw comparison, even past 100% display.
	updated, err = p.UpdateProgress(ctx, g.ID, 1200)
	require.NoError(t, err)
	assert.True(t, updated.IsCompleted)
	assert.Equal(t, 100.0, updated.ProgressPercentage())

	// Progress can go back down and un-complete the goal.
	updated, err = p.UpdateProgress(ctx, g.ID, 900)
	require.NoError(t, err)
	assert.False(t, updated.IsCompleted)
}

func TestGoalNegativeProgressLeavesStateUnchanged(t *testing.T) {
	p := NewGoalProvider(testInjector(), nil)
	ctx := context.Background()
	g := newGoal(t, p, 1000)

	_, err := p.UpdateProgress(ctx, g.ID, 300)
	require.NoError(t, err)

	_, err = p.UpdateProgress(ctx, g.ID, -1)
	require.Error(t, err)
	assert.True(t, fault.IsValidation(err))

	all, err := p.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 300.0, all[0].CurrentAmount, "failed update must not mutate state")
}

func TestGoalCreateRejectsPastTargetDate(t *testing.T) {
	p := NewGoalProvider(testInjector(), nil)

	_, err := p.Create(context.Background(), goal.CreateParams{
		Name:         "Too late",
		TargetAmount: 100,
		TargetDate:   time.Now().AddDate(0, 0, -1),
	})
	require.Error(t, err)
	assert.True(t, fault.IsValidation(err))
}

func TestGoalDeleteThenUpdateIsNotFound(t *testing.T) {
	p := NewGoalProvider(testInjector(), nil)
	ctx := context.Background()
	g := newGoal(t, p, 500)

	require.NoError(t, p.Delete(ctx, g.ID))

	_, err := p.UpdateProgress(ctx, g.ID, 100)
	assert.True(t, fault.IsNotFound(err))
}
