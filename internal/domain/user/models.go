package user

import (
	"regexp"
	"strings"

	"bolso/internal/domain/fault"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// IsValidEmail checks if the provided address is well-formed.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// User represents the signed-in profile. Created on login or register,
// mutated by settings operations, cleared on logout.
type User struct {
	ID                   string `json:"id"`
	Email                string `json:"email"`
	FirstName            string `json:"firstName"`
	LastName             string `json:"lastName"`
	PreferredCurrency    string `json:"preferredCurrency"`
	EmailVerified        bool   `json:"emailVerified"`
	BiometricEnabled     bool   `json:"biometricEnabled"`
	NotificationsEnabled bool   `json:"notificationsEnabled"`
	ProfileImageURL      string `json:"profileImageUrl,omitempty"`
}

// FullName joins the first and last names for display.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// RegisterParams contains parameters for registering a new user.
type RegisterParams struct {
	Email             string
	Password          string
	FirstName         string
	LastName          string
	PreferredCurrency string
}

// Validate validates the register parameters.
func (p RegisterParams) Validate() error {
	if !IsValidEmail(p.Email) {
		return fault.NewValidation("email", "must be well-formed")
	}
	if len(p.Password) < 8 {
		return fault.NewValidation("password", "must be at least 8 characters")
	}
	if strings.TrimSpace(p.FirstName) == "" {
		return fault.NewValidation("firstName", "is required")
	}
	return nil
}

// SettingsParams contains parameters for updating user settings. Nil fields
// are left unchanged.
type SettingsParams struct {
	PreferredCurrency    *string
	BiometricEnabled     *bool
	NotificationsEnabled *bool
	ProfileImageURL      *string
}

// Validate validates the settings parameters.
func (p SettingsParams) Validate() error {
	if p.PreferredCurrency != nil && len(*p.PreferredCurrency) != 3 {
		return fault.NewValidation("preferredCurrency", "must be a three-letter ISO 4217 code")
	}
	return nil
}
