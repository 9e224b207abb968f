package controller

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bolso/internal/domain/transaction"
)

func namedTx(id, description string) transaction.Transaction {
	return transaction.Transaction{
		ID: id, AccountID: "acc-1", Amount: -10,
		Date:        time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Description: description, Category: "Misc",
	}
}

// queryLog records search calls so tests can assert which queries actually
// reached the provider.
type queryLog struct {
	mu      sync.Mutex
	queries []string
}

func (l *queryLog) add(q string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.queries = append(l.queries, q)
}

func (l *queryLog) seen() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.queries))
	copy(out, l.queries)
	return out
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestSearchDebounceIssuesOnlySettledQuery(t *testing.T) {
	log := &queryLog{}
	all := []transaction.Transaction{namedTx("tx-1", "apple store"), namedTx("tx-2", "rent")}

	p := newMockTransactionProvider()
	p.fetchAllFn = func(context.Context) ([]transaction.Transaction, error) { return all, nil }
	p.searchFn = func(_ context.Context, q string) ([]transaction.Transaction, error) {
		log.add(q)
		var out []transaction.Transaction
		for _, tx := range all {
			if strings.Contains(tx.Description, q) {
				out = append(out, tx)
			}
		}
		return out, nil
	}

	c := NewTransactionController(p, 30*time.Millisecond)
	defer c.Cleanup()
	c.Initialize(context.Background())

	c.SetQuery("a")
	c.SetQuery("ap")
	c.SetQuery("app")

	waitFor(t, func() bool { return len(log.seen()) > 0 && !c.IsLoading() })
	time.Sleep(60 * time.Millisecond) // nothing else may fire

	require.Equal(t, []string{"app"}, log.seen(), "intermediate keystrokes never reach the provider")
	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "tx-1", items[0].ID)
}

func TestStaleSearchResultIsDropped(t *testing.T) {
	slow := namedTx("tx-slow", "first query result")
	fast := namedTx("tx-fast", "second query result")

	p := newMockTransactionProvider()
	p.searchFn = func(_ context.Context, q string) ([]transaction.Transaction, error) {
		if q == "q1" {
			time.Sleep(120 * time.Millisecond)
			return []transaction.Transaction{slow}, nil
		}
		return []transaction.Transaction{fast}, nil
	}

	c := NewTransactionController(p, 10*time.Millisecond)
	defer c.Cleanup()
	c.Initialize(context.Background())

	c.SetQuery("q1")
	time.Sleep(40 * time.Millisecond) // q1 settles and goes in flight
	c.SetQuery("q2")

	waitFor(t, func() bool {
		items := c.Items()
		return len(items) == 1 && items[0].ID == "tx-fast"
	})

	// q1 resolves after q2; its result must not overwrite the newer one.
	time.Sleep(150 * time.Millisecond)
	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "tx-fast", items[0].ID)
	assert.False(t, c.IsLoading())
	assert.Empty(t, c.ErrorMessage())
}

func TestEmptyQueryRevertsToUnfilteredList(t *testing.T) {
	all := []transaction.Transaction{namedTx("tx-1", "apple store"), namedTx("tx-2", "rent")}

	p := newMockTransactionProvider()
	p.fetchAllFn = func(context.Context) ([]transaction.Transaction, error) { return all, nil }
	p.searchFn = func(_ context.Context, q string) ([]transaction.Transaction, error) {
		return []transaction.Transaction{all[1]}, nil
	}

	c := NewTransactionController(p, 10*time.Millisecond)
	defer c.Cleanup()
	c.Initialize(context.Background())

	c.SetQuery("rent")
	waitFor(t, func() bool { return len(c.Items()) == 1 })

	c.SetQuery("")
	waitFor(t, func() bool { return len(c.Items()) == 2 })
	assert.Empty(t, c.ErrorMessage())
}

func TestCleanupSilencesInFlightSearch(t *testing.T) {
	release := make(chan struct{})

	p := newMockTransactionProvider()
	p.searchFn = func(_ context.Context, q string) ([]transaction.Transaction, error) {
		<-release
		return []transaction.Transaction{namedTx("tx-late", "late")}, nil
	}

	c := NewTransactionController(p, 5*time.Millisecond)
	c.Initialize(context.Background())

	c.SetQuery("anything")
	time.Sleep(30 * time.Millisecond) // query is in flight, blocked on release

	c.Cleanup()
	close(release)
	time.Sleep(30 * time.Millisecond)

	assert.Empty(t, c.Items(), "result arriving after cleanup is dropped")
	assert.False(t, c.IsLoading())
}
