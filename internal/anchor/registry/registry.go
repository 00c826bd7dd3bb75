// Package registry talks to the append-only honeytoken registry. The registry
// is a register-once set keyed by content hash; nothing else is assumed about
// it.
package registry

import (
	"errors"
	"fmt"

	"datasentinel/pkg/platform/sentinel"
)

// Error classifies a failed registry call.
type Error struct {
	Op        string
	Status    int
	Retryable bool
	Err       error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("registry %s: status %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("registry %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func unavailable(op string, status int, err error) *Error {
	return &Error{Op: op, Status: status, Retryable: true, Err: errors.Join(sentinel.ErrUnavailable, err)}
}

func rejected(op string, status int, err error) *Error {
	return &Error{Op: op, Status: status, Err: errors.Join(sentinel.ErrInvalidInput, err)}
}

// IsRetryable reports whether err is worth another attempt.
func IsRetryable(err error) bool {
	var re *Error
	return errors.As(err, &re) && re.Retryable
}
