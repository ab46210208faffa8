package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalid           = errors.New("invalid request")
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrStateConflict     = errors.New("state conflict")
	ErrPaymentNotAllowed = errors.New("payment not allowed")
	ErrAlreadyPaid       = errors.New("order already paid")
	ErrProcessor         = errors.New("payment processor error")
	ErrStoreUnavailable  = errors.New("store unavailable")
)

// StateError is a guard failure carrying the order's current status so the
// caller can render a specific message instead of a generic conflict.
type StateError struct {
	Err     error
	Current OrderStatus
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%v: order is %s", e.Err, e.Current)
}

func (e *StateError) Unwrap() error {
	return e.Err
}

func NewStateConflict(current OrderStatus) error {
	return &StateError{Err: ErrStateConflict, Current: current}
}

func NewPaymentNotAllowed(current OrderStatus) error {
	return &StateError{Err: ErrPaymentNotAllowed, Current: current}
}
