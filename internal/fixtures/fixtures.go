// Package fixtures builds deterministic seed data for the in-memory
// providers. The same seed always yields the same collections, so demo runs
// and tests are reproducible.
package fixtures

import (
	"fmt"
	"math/rand"
	"time"

	"bolso/internal/domain/account"
	"bolso/internal/domain/budget"
	"bolso/internal/domain/goal"
	"bolso/internal/domain/investment"
	"bolso/internal/domain/notification"
	"bolso/internal/domain/transaction"
	"bolso/internal/domain/user"
	"bolso/internal/infrastructure/memory"
)

// DemoEmail and DemoPassword are the credentials of the seeded demo user.
const (
	DemoEmail    = "demo@bolso.app"
	DemoPassword = "bolso-demo-2026"
)

// Set holds one coherent seed dataset. The identifiers reference each other:
// transactions belong to the seeded accounts, notification data points at
// the seeded entities.
type Set struct {
	Accounts      []account.Account
	Transactions  []transaction.Transaction
	Budgets       []budget.Budget
	Goals         []goal.Goal
	Investments   []investment.Investment
	Notifications []notification.Notification
	Users         []memory.SeedUser
}

// Generate builds a dataset anchored at now. Amounts are drawn from a PRNG
// seeded with seed; identifiers and names are fixed.
func Generate(seed int64, now time.Time) Set {
	rng := rand.New(rand.NewSource(seed))
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	accounts := []account.Account{
		{ID: "acc-checking", InstitutionID: "inst-banco-azul", Name: "Conta Corrente", Type: account.TypeChecking, Balance: round2(1000 + rng.Float64()*4000), Currency: "BRL", LastSyncedAt: now.Add(-2 * time.Hour), IsActive: true},
		{ID: "acc-savings", InstitutionID: "inst-banco-azul", Name: "Poupança", Type: account.TypeSavings, Balance: round2(5000 + rng.Float64()*10000), Currency: "BRL", LastSyncedAt: now.Add(-26 * time.Hour), IsActive: true},
		{ID: "acc-credit", InstitutionID: "inst-cartao-sol", Name: "Cartão Sol", Type: account.TypeCredit, Balance: round2(-200 - rng.Float64()*800), Currency: "BRL", LastSyncedAt: now.Add(-30 * time.Minute), IsActive: true},
	}

	categories := []string{"Groceries", "Dining", "Transport", "Utilities", "Entertainment"}
	merchants := []string{"Mercado Central", "Padaria Doce", "Posto Ipiranga", "Companhia Elétrica", "Cine Plaza"}
	txs := make([]transaction.Transaction, 0, 21)
	for i := 0; i < 20; i++ {
		k := rng.Intn(len(categories))
		txs = append(txs, transaction.Transaction{
			ID:           fmt.Sprintf("tx-%03d", i+1),
			AccountID:    accounts[i%2].ID,
			Amount:       round2(-5 - rng.Float64()*195),
			Date:         now.AddDate(0, 0, -rng.Intn(28)),
			Description:  merchants[k],
			Category:     categories[k],
			MerchantName: merchants[k],
		})
	}
	// One salary credit so the list is not all debits.
	txs = append(txs, transaction.Transaction{
		ID: "tx-salary", AccountID: "acc-checking", Amount: 5800,
		Date: monthStart.AddDate(0, 0, 4), Description: "Salary", Category: "Income",
	})

	budgets := []budget.Budget{
		{ID: "bud-groceries", Name: "Groceries", Amount: 750, Category: "Groceries", Period: budget.PeriodMonthly, StartDate: monthStart, EndDate: monthStart.AddDate(0, 1, 0), Spent: round2(rng.Float64() * 700), IsActive: true},
		{ID: "bud-dining", Name: "Dining out", Amount: 300, Category: "Dining", Period: budget.PeriodMonthly, StartDate: monthStart, EndDate: monthStart.AddDate(0, 1, 0), Spent: round2(rng.Float64() * 280), IsActive: true},
	}

	goals := []goal.Goal{
		{ID: "goal-vacation", Name: "Vacation fund", Description: "Two weeks in Bahia", TargetAmount: 6000, CurrentAmount: round2(rng.Float64() * 4000), TargetDate: now.AddDate(0, 10, 0), CreatedAt: now.AddDate(0, -2, 0), Category: "travel"},
		{ID: "goal-emergency", Name: "Emergency fund", TargetAmount: 15000, CurrentAmount: round2(2000 + rng.Float64()*6000), TargetDate: now.AddDate(2, 0, 0), CreatedAt: now.AddDate(0, -8, 0), Category: "safety"},
	}

	investments := []investment.Investment{
		{ID: "inv-petr4", AccountID: "acc-checking", Symbol: "PETR4", Name: "Petrobras PN", Quantity: 100, CostBasis: 28.40, CurrentPrice: round2(26 + rng.Float64()*8), LastUpdatedAt: now.Add(-4 * time.Hour), AssetClass: investment.ClassStocks},
		{ID: "inv-ivvb11", AccountID: "acc-savings", Symbol: "IVVB11", Name: "S&P 500 ETF", Quantity: 30, CostBasis: 250.00, CurrentPrice: round2(240 + rng.Float64()*60), LastUpdatedAt: now.Add(-4 * time.Hour), AssetClass: investment.ClassETFs},
	}

	notifications := []notification.Notification{
		{ID: "ntf-welcome", Type: notification.TypeSystem, Title: "Welcome to Bolso", Message: "Link an account to start tracking.", Timestamp: now.AddDate(0, 0, -10), Priority: notification.PriorityLow, IsRead: true},
	}

	users := []memory.SeedUser{{
		User: user.User{
			ID:                   "user-demo",
			Email:                DemoEmail,
			FirstName:            "Demo",
			LastName:             "User",
			PreferredCurrency:    "BRL",
			EmailVerified:        true,
			NotificationsEnabled: true,
		},
		Password: DemoPassword,
	}}

	return Set{
		Accounts:      accounts,
		Transactions:  txs,
		Budgets:       budgets,
		Goals:         goals,
		Investments:   investments,
		Notifications: notifications,
		Users:         users,
	}
}

func round2(v float64) float64 {
	return float64(int64(v*100)) / 100
}
