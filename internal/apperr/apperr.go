// Package apperr defines the error taxonomy shared by every ledger component.
// Each error carries a stable Kind that the HTTP layer maps to a status code.
package apperr

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindValidation          Kind = "validation"
	KindNotFound            Kind = "not_found"
	KindForbidden           Kind = "forbidden"
	KindInvalidTransition   Kind = "invalid_transition"
	KindInsufficientBalance Kind = "insufficient_balance"
	KindConflict            Kind = "conflict"
	KindInternal            Kind = "internal"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}

	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...any) error {
	return New(KindValidation, format, args...)
}

func NotFound(entity string, id any) error {
	return New(KindNotFound, "%s not found: %v", entity, id)
}

func Forbidden(format string, args ...any) error {
	return New(KindForbidden, format, args...)
}

// InvalidTransition reports a state machine move that is not in its table.
func InvalidTransition(entity string, from, to any) error {
	return New(KindInvalidTransition, "%s cannot transition from %v to %v", entity, from, to)
}

func InsufficientBalance(available, required decimal.Decimal) error {
	return New(KindInsufficientBalance, "insufficient balance: available=%s required=%s",
		available.StringFixed(2), required.StringFixed(2))
}

func Conflict(format string, args ...any) error {
	return New(KindConflict, format, args...)
}

func Internal(err error, format string, args ...any) error {
	e := New(KindInternal, format, args...)
	e.Err = err

	return e
}

// KindOf returns the kind of the first *Error in err's chain. Errors outside
// the taxonomy are Internal.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}

	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return KindInternal
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
