package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorBuilder(t *testing.T) {
	t.Parallel()

	base := stderrors.New("bodyMin exceeds bodyMax")
	err := New(base).
		Component("thermal").
		Category(CategoryValidation).
		Context("bodyMin", 42.0).
		Context("bodyMax", 40.0).
		Build()

	assert.Equal(t, "bodyMin exceeds bodyMax", err.Error())
	assert.Equal(t, "validation", err.GetCategory())
	assert.Equal(t, "thermal", err.Component)
	require.True(t, Is(err, base))

	v, ok := err.GetContext("bodyMin")
	require.True(t, ok)
	assert.InDelta(t, 42.0, v, 0.001)
}

func TestCategoryMatching(t *testing.T) {
	t.Parallel()

	validationErr := Newf("confidence out of range").Category(CategoryValidation).Build()
	notFoundErr := Newf("record missing").Category(CategoryNotFound).Build()

	assert.True(t, IsValidation(validationErr))
	assert.False(t, IsValidation(notFoundErr))
	assert.True(t, IsNotFound(notFoundErr))
	assert.False(t, IsNotFound(validationErr))
}

func TestWrappedValidation(t *testing.T) {
	t.Parallel()

	inner := Newf("bad readings").Category(CategoryValidation).Build()
	wrapped := Newf("save failed: %w", inner).Category(CategoryDatabase).Build()

	// the validation category survives wrapping
	assert.True(t, IsValidation(wrapped))
}
