package controller

import (
	"context"

	"bolso/internal/domain/account"
	"bolso/internal/domain/transaction"
	"bolso/internal/domain/user"
	"bolso/internal/pubsub"
)

// Func-field mocks so each test overrides only the calls it cares about.
// Unset funcs return zero values.

type mockAccountProvider struct {
	broker *pubsub.Broker[account.Account]

	fetchAllFn       func(ctx context.Context) ([]account.Account, error)
	linkFn           func(ctx context.Context, params account.LinkParams) (account.Account, error)
	refreshBalanceFn func(ctx context.Context, id string, balance float64) (account.Account, error)
	setActiveFn      func(ctx context.Context, id string, active bool) (account.Account, error)
}

func newMockAccountProvider() *mockAccountProvider {
	return &mockAccountProvider{broker: pubsub.NewBroker[account.Account]()}
}

func (m *mockAccountProvider) FetchAll(ctx context.Context) ([]account.Account, error) {
	if m.fetchAllFn != nil {
		return m.fetchAllFn(ctx)
	}
	return nil, nil
}

func (m *mockAccountProvider) Link(ctx context.Context, params account.LinkParams) (account.Account, error) {
	if m.linkFn != nil {
		return m.linkFn(ctx, params)
	}
	return account.Account{}, nil
}

func (m *mockAccountProvider) RefreshBalance(ctx context.Context, id string, balance float64) (account.Account, error) {
	if m.refreshBalanceFn != nil {
		return m.refreshBalanceFn(ctx, id, balance)
	}
	return account.Account{}, nil
}

func (m *mockAccountProvider) SetActive(ctx context.Context, id string, active bool) (account.Account, error) {
	if m.setActiveFn != nil {
		return m.setActiveFn(ctx, id, active)
	}
	return account.Account{}, nil
}

func (m *mockAccountProvider) Subscribe(fn func(pubsub.Event[account.Account])) *pubsub.Subscription {
	return m.broker.Subscribe(fn)
}

func (m *mockAccountProvider) Close() {}

type mockTransactionProvider struct {
	broker *pubsub.Broker[transaction.Transaction]

	fetchAllFn       func(ctx context.Context) ([]transaction.Transaction, error)
	fetchByAccountFn func(ctx context.Context, accountID string) ([]transaction.Transaction, error)
	createFn         func(ctx context.Context, params transaction.CreateParams) (transaction.Transaction, error)
	updateCategoryFn func(ctx context.Context, id, category string) (transaction.Transaction, error)
	updateNotesFn    func(ctx context.Context, id, notes string) (transaction.Transaction, error)
	deleteFn         func(ctx context.Context, id string) error
	searchFn         func(ctx context.Context, query string) ([]transaction.Transaction, error)
}

func newMockTransactionProvider() *mockTransactionProvider {
	return &mockTransactionProvider{broker: pubsub.NewBroker[transaction.Transaction]()}
}

func (m *mockTransactionProvider) FetchAll(ctx context.Context) ([]transaction.Transaction, error) {
	if m.fetchAllFn != nil {
		return m.fetchAllFn(ctx)
	}
	return nil, nil
}

func (m *mockTransactionProvider) FetchByAccount(ctx context.Context, accountID string) ([]transaction.Transaction, error) {
	if m.fetchByAccountFn != nil {
		return m.fetchByAccountFn(ctx, accountID)
	}
	return nil, nil
}

func (m *mockTransactionProvider) Create(ctx context.Context, params transaction.CreateParams) (transaction.Transaction, error) {
	if m.createFn != nil {
		return m.createFn(ctx, params)
	}
	return transaction.Transaction{}, nil
}

func (m *mockTransactionProvider) UpdateCategory(ctx context.Context, id, category string) (transaction.Transaction, error) {
	if m.updateCategoryFn != nil {
		return m.updateCategoryFn(ctx, id, category)
	}
	return transaction.Transaction{}, nil
}

func (m *mockTransactionProvider) UpdateNotes(ctx context.Context, id, notes string) (transaction.Transaction, error) {
	if m.updateNotesFn != nil {
		return m.updateNotesFn(ctx, id, notes)
	}
	return transaction.Transaction{}, nil
}

func (m *mockTransactionProvider) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockTransactionProvider) Search(ctx context.Context, query string) ([]transaction.Transaction, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, query)
	}
	return nil, nil
}

func (m *mockTransactionProvider) Subscribe(fn func(pubsub.Event[transaction.Transaction])) *pubsub.Subscription {
	return m.broker.Subscribe(fn)
}

func (m *mockTransactionProvider) Close() {}

type mockBiometric struct {
	checkFn func(ctx context.Context) (bool, error)
}

func (m *mockBiometric) Check(ctx context.Context) (bool, error) {
	if m.checkFn != nil {
		return m.checkFn(ctx)
	}
	return true, nil
}

type mockUserProvider struct {
	broker *pubsub.Broker[user.User]

	registerFn       func(ctx context.Context, params user.RegisterParams) (user.User, error)
	loginFn          func(ctx context.Context, email, password string) (user.User, error)
	logoutFn         func(ctx context.Context) error
	currentFn        func(ctx context.Context) (user.User, error)
	updateSettingsFn func(ctx context.Context, params user.SettingsParams) (user.User, error)
}

func newMockUserProvider() *mockUserProvider {
	return &mockUserProvider{broker: pubsub.NewBroker[user.User]()}
}

func (m *mockUserProvider) Register(ctx context.Context, params user.RegisterParams) (user.User, error) {
	if m.registerFn != nil {
		return m.registerFn(ctx, params)
	}
	return user.User{}, nil
}

func (m *mockUserProvider) Login(ctx context.Context, email, password string) (user.User, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, email, password)
	}
	return user.User{}, nil
}

func (m *mockUserProvider) Logout(ctx context.Context) error {
	if m.logoutFn != nil {
		return m.logoutFn(ctx)
	}
	return nil
}

func (m *mockUserProvider) Current(ctx context.Context) (user.User, error) {
	if m.currentFn != nil {
		return m.currentFn(ctx)
	}
	return user.User{}, nil
}

func (m *mockUserProvider) UpdateSettings(ctx context.Context, params user.SettingsParams) (user.User, error) {
	if m.updateSettingsFn != nil {
		return m.updateSettingsFn(ctx, params)
	}
	return user.User{}, nil
}

func (m *mockUserProvider) Subscribe(fn func(pubsub.Event[user.User])) *pubsub.Subscription {
	return m.broker.Subscribe(fn)
}

func (m *mockUserProvider) Close() {}
