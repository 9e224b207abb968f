package user

import (
	"context"

	"bolso/internal/pubsub"
)

// Provider defines the simulated backend for the session and profile.
// Credentials live only in the provider's memory, hashed at registration.
type Provider interface {
	// Register creates a new user from validated params and signs it in.
	Register(ctx context.Context, params RegisterParams) (User, error)

	// Login verifies credentials against the stored hash and signs the
	// user in.
	Login(ctx context.Context, email, password string) (User, error)

	// Logout clears the session.
	Logout(ctx context.Context) error

	// Current returns the signed-in user, or a NotFoundError when no
	// session exists.
	Current(ctx context.Context) (User, error)

	// UpdateSettings applies the non-nil fields of params to the signed-in
	// user.
	UpdateSettings(ctx context.Context, params SettingsParams) (User, error)

	// Subscribe registers a listener on the user mutation channel.
	Subscribe(fn func(pubsub.Event[User])) *pubsub.Subscription

	// Close marks the provider as gone.
	Close()
}

// BiometricChecker abstracts the platform biometric capability as a pass/fail
// check. Platform mechanics are outside this core; the session controller
// only consumes the verdict.
type BiometricChecker interface {
	Check(ctx context.Context) (bool, error)
}
