// Package fault classifies errors so the interaction surface can decide how
// much detail to show without parsing error text.
package fault

import (
	"errors"
	"fmt"
)

// Kind is the coarse classification of a failure.
type Kind string

const (
	// KindConnection means the store connection could not be established or
	// was lost. Fatal: no operation can proceed without a connection.
	KindConnection Kind = "connection"
	// KindValidation means a raw field value failed its rule. Recoverable;
	// nothing was written.
	KindValidation Kind = "validation"
	// KindQuery means a well-formed statement was rejected by the store
	// (constraint violation, missing table, etc).
	KindQuery Kind = "query"
	// KindTransaction means a multi-step unit of work failed and was rolled
	// back. Nothing was partially applied.
	KindTransaction Kind = "transaction"
	// KindAuth means a credential check failed. No session was established.
	KindAuth Kind = "auth"
)

// Error pairs an error with its Kind and the operation that produced it.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New wraps err with a kind and operation name.
func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Newf is New with a formatted message instead of a wrapped error.
func Newf(kind Kind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the Kind of err, or "" if err carries no classification.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}

// IsKind reports whether err is classified as kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
