package main

import (
	"context"
	"log"
	"time"

	"bolso/internal/fixtures"
	"bolso/internal/money"
)

// runDemoSession drives a short scripted tour of the reactive loop: sign in,
// browse, search with debounce, overspend a budget and watch the alert land
// in the notification controller through the mutation channels.
func runDemoSession(ctx context.Context, deps *Dependencies) {
	log.Println("--- demo session ---")

	deps.SessionCtrl.Login(ctx, fixtures.DemoEmail, fixtures.DemoPassword)
	if msg := deps.SessionCtrl.ErrorMessage(); msg != "" {
		log.Printf("login failed: %s", msg)
		return
	}
	if u, ok := deps.SessionCtrl.CurrentUser(); ok {
		log.Printf("signed in as %s <%s>", u.FullName(), u.Email)
	}

	for _, a := range deps.AccountCtrl.Items() {
		log.Printf("account %-14s %s", a.Name, money.FormatAmount(a.Balance, a.Currency))
	}
	log.Printf("%d transactions loaded", len(deps.TransactionCtrl.Items()))

	// Debounced search: three keystrokes, one provider query.
	deps.TransactionCtrl.SetQuery("m")
	deps.TransactionCtrl.SetQuery("me")
	deps.TransactionCtrl.SetQuery("mercado")
	waitIdle(deps.TransactionCtrl.IsLoading, 5*time.Second)
	log.Printf("search 'mercado': %d matches", len(deps.TransactionCtrl.Items()))

	// Overspend the groceries budget; the alert engine reacts to the
	// mutation event and the notification controller sees the injection.
	deps.BudgetCtrl.RecordSpend(ctx, "bud-groceries", 800)
	if msg := deps.BudgetCtrl.ErrorMessage(); msg != "" {
		log.Printf("recordSpend failed (injected fault?): %s", msg)
	}
	for _, b := range deps.BudgetCtrl.Items() {
		log.Printf("budget %-12s %s of %s (%s)", b.Name,
			money.FormatAmount(b.Spent, "BRL"), money.FormatAmount(b.Amount, "BRL"),
			b.FormattedSpentPercentage())
	}

	deps.InvestmentCtrl.RefreshPrices(ctx)
	log.Printf("portfolio value: %s", money.FormatAmount(deps.InvestmentCtrl.TotalValue(), "BRL"))

	log.Printf("unread notifications: %d", deps.NotificationCtrl.UnreadCount())
	for _, n := range deps.NotificationCtrl.Items() {
		log.Printf("notification [%s] %s: %s", n.Priority, n.Title, n.Message)
	}

	log.Println("--- demo session complete (Ctrl+C to exit) ---")
}

func waitIdle(loading func() bool, timeout time.Duration) {
	deadline := time.Now().Add(timeout)
	// The debounce window has to elapse before loading even flips on.
	time.Sleep(time.Second)
	for time.Now().Before(deadline) && loading() {
		time.Sleep(25 * time.Millisecond)
	}
}
