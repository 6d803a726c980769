package tusk

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("user")
	assert.Equal(t, "tusk: user not found", err.Error())
	assert.Equal(t, "user", err.Label())
	assert.True(t, IsNotFound(err))
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, IsNotFound(fmt.Errorf("wrapped: %w", err)))
	assert.False(t, IsNotFound(nil))
	assert.False(t, IsNotFound(errors.New("other")))
}

func TestNotSingularError(t *testing.T) {
	err := NewNotSingularError("user")
	assert.Equal(t, "tusk: user not singular", err.Error())
	assert.Equal(t, -1, err.Count())
	assert.True(t, IsNotSingular(err))
	assert.True(t, errors.Is(err, ErrNotSingular))

	counted := NewNotSingularErrorWithCount("user", 3)
	assert.Equal(t, "tusk: user not singular (got 3 rows, expected 1)", counted.Error())
	assert.Equal(t, 3, counted.Count())
	assert.Equal(t, "user", counted.Label())
	assert.False(t, IsNotSingular(nil))
}

func TestUnsupportedError(t *testing.T) {
	err := NewUnsupportedError("window")
	assert.Equal(t, "tusk: window is not supported", err.Error())
	assert.True(t, IsUnsupported(err))
	assert.True(t, errors.Is(err, ErrUnsupported))
	assert.True(t, IsUnsupported(fmt.Errorf("compose: %w", err)))
	assert.False(t, IsUnsupported(nil))
}

func TestConstraintError(t *testing.T) {
	cause := errors.New("duplicate key value")
	err := NewConstraintError("duplicate key value", cause)
	assert.Equal(t, "tusk: constraint failed: duplicate key value", err.Error())
	assert.True(t, IsConstraintError(err))
	assert.True(t, IsConstraintError(fmt.Errorf("exec: %w", err)))
	require.ErrorIs(t, err, cause)
	assert.False(t, IsConstraintError(nil))
	assert.False(t, IsConstraintError(cause))
}

func TestQueryError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewQueryError("user", "all", cause)
	assert.Equal(t, "tusk: querying user (all): connection refused", err.Error())
	assert.True(t, IsQueryError(err))
	require.ErrorIs(t, err, cause)

	bare := NewQueryError("user", "", cause)
	assert.Equal(t, "tusk: querying user: connection refused", bare.Error())
	assert.False(t, IsQueryError(nil))
	assert.False(t, IsQueryError(cause))
}
