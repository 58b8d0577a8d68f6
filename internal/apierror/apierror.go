// Package apierror provides standardized error response structures for the API
// plus the error taxonomy shared by services and repositories. All errors
// returned to clients go through this package to ensure consistency and to
// prevent leaking internal details (stack traces, DB errors, SQLSTATE codes).
package apierror

import "fmt"

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ── Error taxonomy ───────────────────────────────────────────────────────────
// Repositories translate storage failures into these types at the persistence
// boundary, so no caller ever matches on a driver-specific error code.
// Handlers map each type to its HTTP status.

// ValidationError reports malformed or out-of-range input. It is produced
// before any transaction opens, so a ValidationError guarantees that storage
// was never touched.
type ValidationError struct {
	Detail string `json:"detail"`
}

func (e *ValidationError) Error() string { return e.Detail }

func NewValidation(msg string) *ValidationError {
	return &ValidationError{Detail: msg}
}

// NotFoundError reports that a referenced entity does not exist.
type NotFoundError struct {
	Recurso string
}

func (e *NotFoundError) Error() string { return e.Recurso + " no encontrado" }

func NewNotFound(recurso string) *NotFoundError {
	return &NotFoundError{Recurso: recurso}
}

// ConflictError reports a uniqueness violation on an identity field
// (cod_compra, dni). Distinguished from StorageError so callers can decide
// to retry with a fresh code or map the failure to 409.
type ConflictError struct {
	Campo string
}

func (e *ConflictError) Error() string { return "valor duplicado para " + e.Campo }

func NewConflict(campo string) *ConflictError {
	return &ConflictError{Campo: campo}
}

// StorageError wraps any other persistence failure.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }
func (e *StorageError) Unwrap() error { return e.Err }

func NewStorage(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

// RenderError reports a failure during document construction. Only relevant
// before streaming starts; once bytes have been written the outward status
// can no longer change and a failure only truncates the stream.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string { return "render: " + e.Err.Error() }
func (e *RenderError) Unwrap() error { return e.Err }
