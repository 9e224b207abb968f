// Package fault defines the error taxonomy shared by providers and controllers.
//
// Every failure in the core is local to one operation: providers resolve their
// own call with one of these errors and never publish anything on a mutation
// channel for a failed operation. There is no fatal error class.
package fault

import (
	"errors"
	"fmt"
)

// ValidationError reports that an entity construction or update violated a
// domain invariant. Never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

// NewValidation builds a ValidationError for the given field.
func NewValidation(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// NotFoundError reports that an operation referenced an id absent from the
// provider's collection.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

// NewNotFound builds a NotFoundError for the given resource and id.
func NewNotFound(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// TransientError represents a simulated network failure. Surfaced to the
// controller's error field; retry policy belongs to the orchestration layer,
// not the core.
type TransientError struct {
	Op string
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient failure during %s", e.Op)
}

// NewTransient builds a TransientError for the given operation name.
func NewTransient(op string) *TransientError {
	return &TransientError{Op: op}
}

// ServiceUnavailableError reports that the provider instance is gone. Pending
// operations against a closed provider resolve with this error instead of
// hanging.
type ServiceUnavailableError struct {
	Provider string
}

func (e *ServiceUnavailableError) Error() string {
	return fmt.Sprintf("provider %s is unavailable", e.Provider)
}

// NewUnavailable builds a ServiceUnavailableError for the given provider name.
func NewUnavailable(provider string) *ServiceUnavailableError {
	return &ServiceUnavailableError{Provider: provider}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsTransient reports whether err is (or wraps) a TransientError.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}

// IsUnavailable reports whether err is (or wraps) a ServiceUnavailableError.
func IsUnavailable(err error) bool {
	var ue *ServiceUnavailableError
	return errors.As(err, &ue)
}
