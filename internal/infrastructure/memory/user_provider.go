package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"bolso/internal/domain/fault"
	"bolso/internal/domain/user"
	"bolso/internal/pubsub"
	"bolso/internal/simnet"
)

// SeedUser pairs a profile with its plain-text demo password; the password is
// hashed at construction and only the hash is retained.
type SeedUser struct {
	User     user.User
	Password string
}

type credential struct {
	user user.User
	hash []byte
}

// UserProvider is the in-memory simulated backend for the session and
// profile. Credentials are stored bcrypt-hashed, keyed by lowercase email.
type UserProvider struct {
	sim    *simnet.Injector
	broker *pubsub.Broker[user.User]

	mu          sync.RWMutex
	credentials map[string]credential
	current     *user.User
}

// NewUserProvider creates a provider with the given seed users registered.
// Seed entries with unusable passwords are skipped.
func NewUserProvider(sim *simnet.Injector, seed []SeedUser) *UserProvider {
	p := &UserProvider{
		sim:         sim,
		broker:      pubsub.NewBroker[user.User](),
		credentials: make(map[string]credential),
	}
	for _, s := range seed {
		hash, err := bcrypt.GenerateFromPassword([]byte(s.Password), bcrypt.MinCost)
		if err != nil {
			continue
		}
		p.credentials[strings.ToLower(s.User.Email)] = credential{user: s.User, hash: hash}
	}
	return p
}

// Register validates the params, creates the user and signs it in.
func (p *UserProvider) Register(ctx context.Context, params user.RegisterParams) (user.User, error) {
	ctx, span := tracer.Start(ctx, "users.register")
	defer span.End()

	if err := params.Validate(); err != nil {
		return user.User{}, finish(ctx, span, "users", "register", err)
	}
	if err := p.sim.Wait(ctx, "register"); err != nil {
		return user.User{}, finish(ctx, span, "users", "register", err)
	}

	key := strings.ToLower(params.Email)
	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.MinCost)
	if err != nil {
		return user.User{}, finish(ctx, span, "users", "register", err)
	}

	currency := params.PreferredCurrency
	if currency == "" {
		currency = "BRL"
	}
	u := user.User{
		ID:                   uuid.NewString(),
		Email:                params.Email,
		FirstName:            params.FirstName,
		LastName:             params.LastName,
		PreferredCurrency:    currency,
		NotificationsEnabled: true,
	}

	p.mu.Lock()
	if _, exists := p.credentials[key]; exists {
		p.mu.Unlock()
		return user.User{}, finish(ctx, span, "users", "register", fault.NewValidation("email", "is already registered"))
	}
	p.credentials[key] = credential{user: u, hash: hash}
	p.current = &u
	p.mu.Unlock()

	p.publish(ctx, pubsub.Event[user.User]{Op: pubsub.OpCreated, Entity: u})
	return u, finish(ctx, span, "users", "register", nil)
}

// Login verifies credentials against the stored hash and signs the user in.
// Unknown emails and wrong passwords both surface the same validation error.
func (p *UserProvider) Login(ctx context.Context, email, password string) (user.User, error) {
	ctx, span := tracer.Start(ctx, "users.login")
	defer span.End()

	if err := p.sim.Wait(ctx, "login"); err != nil {
		return user.User{}, finish(ctx, span, "users", "login", err)
	}

	p.mu.Lock()
	cred, ok := p.credentials[strings.ToLower(email)]
	if !ok || bcrypt.CompareHashAndPassword(cred.hash, []byte(password)) != nil {
		p.mu.Unlock()
		return user.User{}, finish(ctx, span, "users", "login", fault.NewValidation("credentials", "invalid email or password"))
	}
	u := cred.user
	p.current = &u
	p.mu.Unlock()

	p.publish(ctx, pubsub.Event[user.User]{Op: pubsub.OpUpdated, Entity: u})
	return u, finish(ctx, span, "users", "login", nil)
}

// Logout clears the session. A missing session is not an error.
func (p *UserProvider) Logout(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "users.logout")
	defer span.End()

	if err := p.sim.Wait(ctx, "logout"); err != nil {
		return finish(ctx, span, "users", "logout", err)
	}

	p.mu.Lock()
	cleared := p.current
	p.current = nil
	p.mu.Unlock()

	if cleared != nil {
		p.publish(ctx, pubsub.Event[user.User]{Op: pubsub.OpDeleted, Entity: *cleared})
	}
	return finish(ctx, span, "users", "logout", nil)
}

// Current returns the signed-in user.
func (p *UserProvider) Current(ctx context.Context) (user.User, error) {
	ctx, span := tracer.Start(ctx, "users.current")
	defer span.End()

	if err := p.sim.Wait(ctx, "current"); err != nil {
		return user.User{}, finish(ctx, span, "users", "current", err)
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.current == nil {
		return user.User{}, finish(ctx, span, "users", "current", fault.NewNotFound("session", "current"))
	}
	return *p.current, finish(ctx, span, "users", "current", nil)
}

// UpdateSettings applies the non-nil fields of params to the signed-in user.
func (p *UserProvider) UpdateSettings(ctx context.Context, params user.SettingsParams) (user.User, error) {
	ctx, span := tracer.Start(ctx, "users.updateSettings")
	defer span.End()

	if err := params.Validate(); err != nil {
		return user.User{}, finish(ctx, span, "users", "updateSettings", err)
	}
	if err := p.sim.Wait(ctx, "updateSettings"); err != nil {
		return user.User{}, finish(ctx, span, "users", "updateSettings", err)
	}

	p.mu.Lock()
	if p.current == nil {
		p.mu.Unlock()
		return user.User{}, finish(ctx, span, "users", "updateSettings", fault.NewNotFound("session", "current"))
	}
	if params.PreferredCurrency != nil {
		p.current.PreferredCurrency = *params.PreferredCurrency
	}
	if params.BiometricEnabled != nil {
		p.current.BiometricEnabled = *params.BiometricEnabled
	}
	if params.NotificationsEnabled != nil {
		p.current.NotificationsEnabled = *params.NotificationsEnabled
	}
	if params.ProfileImageURL != nil {
		p.current.ProfileImageURL = *params.ProfileImageURL
	}
	u := *p.current
	key := strings.ToLower(u.Email)
	if cred, ok := p.credentials[key]; ok {
		cred.user = u
		p.credentials[key] = cred
	}
	p.mu.Unlock()

	p.publish(ctx, pubsub.Event[user.User]{Op: pubsub.OpUpdated, Entity: u})
	return u, finish(ctx, span, "users", "updateSettings", nil)
}

// Subscribe registers a listener on the user mutation channel.
func (p *UserProvider) Subscribe(fn func(pubsub.Event[user.User])) *pubsub.Subscription {
	return p.broker.Subscribe(fn)
}

// Close marks the provider as gone.
func (p *UserProvider) Close() {
	p.sim.Close()
}

func (p *UserProvider) publish(ctx context.Context, ev pubsub.Event[user.User]) {
	published(ctx, "users", ev.Op.String())
	p.broker.Publish(ev)
}
