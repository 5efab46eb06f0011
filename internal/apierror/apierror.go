// Package apierror defines the error taxonomy shared by every admin module.
// Validation errors stay inside the form layer; load and mutation errors are
// surfaced as transient notices; the not-found sentinel marks defensive
// no-ops that are never reported to the user.
package apierror

import (
	"errors"
	"fmt"
)

// ErrNoEncontrado signals that an edit/toggle target vanished from the cache.
// Callers treat it as a silent no-op.
var ErrNoEncontrado = errors.New("registro no encontrado")

// ValidationError carries field-scoped messages. It never reaches the network.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "Error de validación" }

// NewValidation wraps per-field messages into a ValidationError.
func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// HTTPError is a non-2xx backend response converted into an error. Mensaje is
// the server's "message" field when present, else "Error {status}: {statusText}".
type HTTPError struct {
	Status  int
	Mensaje string
}

func (e *HTTPError) Error() string { return e.Mensaje }

// LoadError wraps a failed fetch-all. The prior cache stays usable.
type LoadError struct {
	Err error
}

func (e *LoadError) Error() string { return fmt.Sprintf("Error al cargar: %v", e.Err) }
func (e *LoadError) Unwrap() error { return e.Err }

// MutationError wraps a failed create, update, or status change.
type MutationError struct {
	Err error
}

func (e *MutationError) Error() string { return e.Err.Error() }
func (e *MutationError) Unwrap() error { return e.Err }

// Mensaje extracts the user-facing text of an error: the backend's message for
// HTTP errors, the plain text otherwise.
func Mensaje(err error) string {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Mensaje
	}
	return err.Error()
}
