package asyncwrap

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapError_InnerVariant(t *testing.T) {
	inner := errors.New("connection refused")
	err := Inner(inner)

	// Inner variant delegates display to the wrapped error
	assert.Equal(t, "connection refused", err.Error())
	assert.Equal(t, inner, err.InnerErr())
	assert.Nil(t, err.JoinErr())
	assert.ErrorIs(t, err, inner)
}

func TestWrapError_TaskFailedVariant(t *testing.T) {
	join := &JoinError{
		TaskID:     uuid.New(),
		Panicked:   true,
		PanicValue: "boom",
	}
	err := TaskFailed(join)

	assert.Nil(t, err.InnerErr())
	assert.Equal(t, join, err.JoinErr())
	assert.Equal(t, fmt.Sprintf("async task failed: %v", join), err.Error())

	var target *JoinError
	require.True(t, errors.As(err, &target))
	assert.Equal(t, join.TaskID, target.TaskID)
}

func TestWrapError_TaskFailedChainsToContextError(t *testing.T) {
	join := &JoinError{
		TaskID:    uuid.New(),
		Cancelled: true,
		Cause:     context.Canceled,
	}
	err := TaskFailed(join)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, err.Error(), "async task failed")
	assert.Contains(t, err.Error(), "cancelled")
}

func TestWrapError_WrappedSentinelSurvivesChain(t *testing.T) {
	sentinel := errors.New("not found")
	err := Inner(fmt.Errorf("query user: %w", sentinel))

	assert.ErrorIs(t, err, sentinel)
}
