package domain

import (
	"errors"
	"fmt"
)

// Domain errors (no external dependencies).
var (
	ErrNotFound           = errors.New("resource not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidAmount      = errors.New("invalid monetary amount")
	ErrInvalidLineItem    = errors.New("invalid line item")
	ErrAllocationTimeout  = errors.New("invoice number allocation timed out")
	ErrStateConflict      = errors.New("conflict with current state")
	ErrDuplicate          = errors.New("duplicate resource")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("access denied")
)

// AmountError reports a malformed monetary input. Unwraps to ErrInvalidAmount.
type AmountError struct {
	Input  string
	Reason string
}

func (e *AmountError) Error() string {
	return fmt.Sprintf("invalid amount %q: %s", e.Input, e.Reason)
}

func (e *AmountError) Unwrap() error { return ErrInvalidAmount }

// LineItemError names the offending line item. Index is zero-based.
// Unwraps to ErrInvalidLineItem.
type LineItemError struct {
	Index  int
	Field  string
	Reason string
}

func (e *LineItemError) Error() string {
	return fmt.Sprintf("line item %d: %s %s", e.Index+1, e.Field, e.Reason)
}

func (e *LineItemError) Unwrap() error { return ErrInvalidLineItem }

// AllocationError reports that the sequence row lock for a (stream, year)
// key could not be acquired within the configured bound. Retryable by the
// caller; the core never retries internally. Unwraps to ErrAllocationTimeout.
type AllocationError struct {
	Stream string
	Year   int
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("sequence %s/%d: lock wait exceeded", e.Stream, e.Year)
}

func (e *AllocationError) Unwrap() error { return ErrAllocationTimeout }

// TransitionError reports an illegal invoice status transition.
// Unwraps to ErrStateConflict.
type TransitionError struct {
	From string
	To   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("illegal status transition %s -> %s", e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrStateConflict }

// NotFoundError carries the entity kind and id for the caller.
// Unwraps to ErrNotFound.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }
