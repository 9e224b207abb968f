package main

import (
	"log"
	"time"

	"bolso/internal/alerts"
	"bolso/internal/controller"
	"bolso/internal/fixtures"
	"bolso/internal/infrastructure/memory"
	"bolso/internal/shared/config"
	"bolso/internal/shared/messages"
	"bolso/internal/simnet"
)

// Dependencies holds all initialized application components.
type Dependencies struct {
	// Providers
	Accounts      *memory.AccountProvider
	Transactions  *memory.TransactionProvider
	Budgets       *memory.BudgetProvider
	Goals         *memory.GoalProvider
	Investments   *memory.InvestmentProvider
	Notifications *memory.NotificationProvider
	Users         *memory.UserProvider

	// Controllers
	AccountCtrl      *controller.AccountController
	TransactionCtrl  *controller.TransactionController
	BudgetCtrl       *controller.BudgetController
	GoalCtrl         *controller.GoalController
	InvestmentCtrl   *controller.InvestmentController
	NotificationCtrl *controller.NotificationController
	SessionCtrl      *controller.SessionController

	AlertEngine *alerts.Engine
}

// NewDependencies initializes all application dependencies.
func NewDependencies(cfg *config.Config) (*Dependencies, error) {
	seed := cfg.Simulation.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Printf("Simulation seed: %d", seed)

	data := fixtures.Generate(seed, time.Now())

	injector := func(name string) *simnet.Injector {
		return simnet.New(name, simnet.Config{
			MinDelay:    cfg.Simulation.MinDelay,
			MaxDelay:    cfg.Simulation.MaxDelay,
			FailureRate: cfg.Simulation.FailureRate,
			Seed:        seed,
		})
	}

	// Initialize providers
	accounts := memory.NewAccountProvider(injector("accounts"), data.Accounts)
	transactions := memory.NewTransactionProvider(injector("transactions"), data.Transactions)
	budgets := memory.NewBudgetProvider(injector("budgets"), data.Budgets)
	goals := memory.NewGoalProvider(injector("goals"), data.Goals)
	investments := memory.NewInvestmentProvider(injector("investments"), data.Investments)
	notifications := memory.NewNotificationProvider(injector("notifications"), data.Notifications)
	users := memory.NewUserProvider(injector("users"), data.Users)

	// Initialize the alert engine before any controller issues mutations
	// so no transition is missed.
	catalog := messages.Default()
	if cfg.Messages.OverrideFile != "" {
		loaded, err := messages.Load(cfg.Messages.OverrideFile)
		if err != nil {
			log.Printf("Warning: message override not loaded: %v", err)
		}
		catalog = loaded
	}
	engine := alerts.NewEngine(notifications, catalog, "BRL")
	engine.WatchBudgets(budgets)
	engine.WatchGoals(goals)
	engine.WatchAccounts(accounts)

	// Initialize controllers
	return &Dependencies{
		Accounts:         accounts,
		Transactions:     transactions,
		Budgets:          budgets,
		Goals:            goals,
		Investments:      investments,
		Notifications:    notifications,
		Users:            users,
		AccountCtrl:      controller.NewAccountController(accounts),
		TransactionCtrl:  controller.NewTransactionController(transactions, cfg.Search.DebounceWindow),
		BudgetCtrl:       controller.NewBudgetController(budgets),
		GoalCtrl:         controller.NewGoalController(goals),
		InvestmentCtrl:   controller.NewInvestmentController(investments),
		NotificationCtrl: controller.NewNotificationController(notifications),
		SessionCtrl:      controller.NewSessionController(users, nil, cfg.Session.RequireBiometric),
		AlertEngine:      engine,
	}, nil
}

// Close releases all resources held by dependencies. Controllers are cleaned
// up before providers close so in-flight results are dropped, not errored.
func (d *Dependencies) Close() {
	d.AccountCtrl.Cleanup()
	d.TransactionCtrl.Cleanup()
	d.BudgetCtrl.Cleanup()
	d.GoalCtrl.Cleanup()
	d.InvestmentCtrl.Cleanup()
	d.NotificationCtrl.Cleanup()
	d.SessionCtrl.Cleanup()

	d.AlertEngine.Close()

	d.Accounts.Close()
	d.Transactions.Close()
	d.Budgets.Close()
	d.Goals.Close()
	d.Investments.Close()
	d.Notifications.Close()
	d.Users.Close()
}
