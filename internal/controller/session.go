package controller

import (
	"context"
	"sync"

	"bolso/internal/domain/fault"
	"bolso/internal/domain/user"
	"bolso/internal/pubsub"
)

// SessionController drives authentication and the settings screen. Unlike
// the collection controllers its observable payload is the single signed-in
// user, cleared on logout.
type SessionController struct {
	provider  user.Provider
	biometric user.BiometricChecker

	// requireBiometric gates every login behind a biometric check when a
	// checker is configured.
	requireBiometric bool

	mu      sync.Mutex
	current *user.User
	loading bool
	errMsg  string
	cleaned bool
	sub     *pubsub.Subscription
}

// NewSessionController builds an idle session controller. biometric may be
// nil; requireBiometric is ignored without a checker.
func NewSessionController(provider user.Provider, biometric user.BiometricChecker, requireBiometric bool) *SessionController {
	return &SessionController{
		provider:         provider,
		biometric:        biometric,
		requireBiometric: requireBiometric && biometric != nil,
	}
}

// CurrentUser returns a copy of the signed-in user and whether a session
// exists.
func (c *SessionController) CurrentUser() (user.User, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return user.User{}, false
	}
	return *c.current, true
}

// IsLoading reports whether an operation is in flight.
func (c *SessionController) IsLoading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// ErrorMessage returns the message of the last failed operation, or "" after
// a successful one.
func (c *SessionController) ErrorMessage() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

// Initialize subscribes to the user mutation channel and restores any
// existing session. A missing session is the normal signed-out state, not an
// error.
func (c *SessionController) Initialize(ctx context.Context) {
	c.mu.Lock()
	if c.cleaned {
		c.mu.Unlock()
		return
	}
	c.sub = c.provider.Subscribe(c.applyEvent)
	c.mu.Unlock()

	if !c.begin() {
		return
	}
	u, err := c.provider.Current(ctx)
	switch {
	case err == nil:
		c.succeedSignedIn(u)
	case fault.IsNotFound(err):
		// No stored session is the normal signed-out state.
		c.succeedSignedOut()
	default:
		c.fail(err)
	}
}

// Login verifies the biometric gate when required, then signs the user in.
func (c *SessionController) Login(ctx context.Context, email, password string) {
	if !c.begin() {
		return
	}
	if c.requireBiometric {
		ok, err := c.biometric.Check(ctx)
		if err != nil {
			c.fail(err)
			return
		}
		if !ok {
			c.failMessage("biometric verification failed")
			return
		}
	}
	u, err := c.provider.Login(ctx, email, password)
	if err != nil {
		c.fail(err)
		return
	}
	c.succeedSignedIn(u)
}

// Register creates an account and signs it in.
func (c *SessionController) Register(ctx context.Context, params user.RegisterParams) {
	if !c.begin() {
		return
	}
	u, err := c.provider.Register(ctx, params)
	if err != nil {
		c.fail(err)
		return
	}
	c.succeedSignedIn(u)
}

// Logout clears the session.
func (c *SessionController) Logout(ctx context.Context) {
	if !c.begin() {
		return
	}
	if err := c.provider.Logout(ctx); err != nil {
		c.fail(err)
		return
	}
	c.succeedSignedOut()
}

// UpdateSettings applies the non-nil fields of params to the signed-in user.
func (c *SessionController) UpdateSettings(ctx context.Context, params user.SettingsParams) {
	if !c.begin() {
		return
	}
	u, err := c.provider.UpdateSettings(ctx, params)
	if err != nil {
		c.fail(err)
		return
	}
	c.succeedSignedIn(u)
}

// Cleanup cancels the channel subscription and clears the state. Idempotent.
func (c *SessionController) Cleanup() {
	c.mu.Lock()
	if c.cleaned {
		c.mu.Unlock()
		return
	}
	c.cleaned = true
	sub := c.sub
	c.sub = nil
	c.current = nil
	c.loading = false
	c.errMsg = ""
	c.mu.Unlock()

	if sub != nil {
		sub.Cancel()
	}
}

func (c *SessionController) applyEvent(ev pubsub.Event[user.User]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cleaned {
		return
	}
	switch ev.Op {
	case pubsub.OpDeleted:
		c.current = nil
	default:
		u := ev.Entity
		c.current = &u
	}
}

func (c *SessionController) begin() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cleaned {
		return false
	}
	c.loading = true
	c.errMsg = ""
	return true
}

func (c *SessionController) succeedSignedIn(u user.User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cleaned {
		return
	}
	c.loading = false
	c.errMsg = ""
	c.current = &u
}

func (c *SessionController) succeedSignedOut() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cleaned {
		return
	}
	c.loading = false
	c.errMsg = ""
	c.current = nil
}

func (c *SessionController) fail(err error) {
	c.failMessage(err.Error())
}

func (c *SessionController) failMessage(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cleaned {
		return
	}
	c.loading = false
	c.errMsg = msg
}
