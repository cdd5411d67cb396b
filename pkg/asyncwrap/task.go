package asyncwrap

import (
	"context"
	"runtime/debug"

	"github.com/google/uuid"
)

// Outcome carries the value/error pair of a blocking call with a result
// shape through an offloaded closure.
type Outcome[T any] struct {
	Value T
	Err   error
}

// Task is a handle to a unit of work running on its own goroutine.
// It is created by Offload and joined exactly once.
type Task[T any] struct {
	id   uuid.UUID
	done chan struct{}

	result   T
	panicked bool
	panicVal any
	stack    []byte
}

// Offload runs fn on a new goroutine and returns a handle for joining it.
// A panic inside fn is recovered and surfaced through Join as a JoinError;
// it never takes down the calling program.
func Offload[T any](fn func() T) *Task[T] {
	t := &Task[T]{
		id:   uuid.New(),
		done: make(chan struct{}),
	}

	go func() {
		defer close(t.done)
		defer func() {
			if r := recover(); r != nil {
				t.panicked = true
				t.panicVal = r
				t.stack = debug.Stack()
			}
		}()
		t.result = fn()
	}()

	return t
}

// ID returns the task's correlation id.
func (t *Task[T]) ID() uuid.UUID {
	return t.id
}

// Join suspends the caller until the task completes or ctx ends, whichever
// comes first. A panic in the task and a cancelled join both surface as a
// JoinError; the zero value of T accompanies either failure.
//
// When ctx ends first the goroutine running the task is not interrupted
// (the blocking call has no cancellation point); it finishes in the
// background and its result is discarded.
func (t *Task[T]) Join(ctx context.Context) (T, *JoinError) {
	select {
	case <-t.done:
		if t.panicked {
			var zero T
			return zero, &JoinError{
				TaskID:     t.id,
				Panicked:   true,
				PanicValue: t.panicVal,
				Stack:      t.stack,
			}
		}
		return t.result, nil
	case <-ctx.Done():
		var zero T
		return zero, &JoinError{
			TaskID:    t.id,
			Cancelled: true,
			Cause:     ctx.Err(),
		}
	}
}
