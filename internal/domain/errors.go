package domain

import "errors"

// ErrValidation is matched by every *ValidationError.
// Handlers should map this to HTTP 400.
var ErrValidation = errors.New("validation error")

// ErrStore is matched by every *StoreError.
// Handlers should map this to HTTP 400 and surface the backend message.
var ErrStore = errors.New("store error")

// ValidationError reports the first field of a PlanRequest that failed
// validation. Only one field is ever reported per submission.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Field + ": " + e.Message
}

// Unwrap lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Unwrap() error { return ErrValidation }

// StoreError wraps a failure reported by the structured-data backend.
// Op names the store operation (list, create, delete).
type StoreError struct {
	Op  string
	Err error
}

// NewStoreError wraps err as a StoreError for op. A nil err yields nil.
func NewStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}

func (e *StoreError) Error() string {
	return "store " + e.Op + ": " + e.Err.Error()
}

// Message returns the backend's own error text, without the op prefix.
func (e *StoreError) Message() string {
	return e.Err.Error()
}

// Unwrap exposes the backend error to errors.Is / errors.As.
func (e *StoreError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrStore) match any StoreError.
func (e *StoreError) Is(target error) bool { return target == ErrStore }
