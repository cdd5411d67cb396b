package asyncwrap

import (
	"fmt"

	"github.com/google/uuid"
)

// JoinError reports that an offloaded unit of work never produced a result:
// either the goroutine running it panicked, or the caller's context was
// cancelled before the work completed. The two causes are deliberately not
// separate types; callers that need to tell them apart can inspect the fields.
type JoinError struct {
	// TaskID identifies the offloaded unit for log correlation.
	TaskID uuid.UUID

	// Panicked is true when the unit panicked. PanicValue and Stack carry
	// the recovered value and the goroutine stack at the point of panic.
	Panicked   bool
	PanicValue any
	Stack      []byte

	// Cancelled is true when the join was abandoned because the caller's
	// context ended first. Cause holds the context error.
	Cancelled bool
	Cause     error
}

// Error implements the error interface
func (e *JoinError) Error() string {
	switch {
	case e.Panicked:
		return fmt.Sprintf("task %s panicked: %v", e.TaskID, e.PanicValue)
	case e.Cancelled:
		return fmt.Sprintf("task %s cancelled: %v", e.TaskID, e.Cause)
	default:
		return fmt.Sprintf("task %s failed", e.TaskID)
	}
}

// Unwrap exposes the context error when the join was cancelled
func (e *JoinError) Unwrap() error {
	if e.Cancelled {
		return e.Cause
	}
	return nil
}

// WrapError is the error type generated asynchronous wrappers return when the
// wrapped blocking method itself reports errors. It has exactly two variants:
// the inner blocking operation failed, or the offloaded task failed to
// complete (panic or cancellation).
type WrapError struct {
	inner error
	join  *JoinError
}

// Inner wraps the original failure value returned by the blocking method.
func Inner(err error) *WrapError {
	return &WrapError{inner: err}
}

// TaskFailed wraps a join failure of the offloaded unit.
func TaskFailed(join *JoinError) *WrapError {
	return &WrapError{join: join}
}

// InnerErr returns the original failure value, or nil for the TaskFailed variant.
func (e *WrapError) InnerErr() error {
	return e.inner
}

// JoinErr returns the join failure, or nil for the Inner variant.
func (e *WrapError) JoinErr() *JoinError {
	return e.join
}

// Error implements the error interface. The Inner variant delegates to the
// wrapped error's own message; the TaskFailed variant uses a fixed prefix.
func (e *WrapError) Error() string {
	if e.join != nil {
		return fmt.Sprintf("async task failed: %v", e.join)
	}
	return e.inner.Error()
}

// Unwrap exposes whichever variant's payload is present for errors.Is/As chains.
func (e *WrapError) Unwrap() error {
	if e.join != nil {
		return e.join
	}
	return e.inner
}
