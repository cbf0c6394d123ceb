package errors_test

import (
	"fmt"
	"testing"

	"github.com/crusader2000/sunpy/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := errors.New(errors.ErrInvalidDirective, "unknown directive keyword")

	assert.Equal(t, errors.ErrInvalidDirective, err.Code)
	assert.Equal(t, "[INVALID_DIRECTIVE] unknown directive keyword", err.Error())
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrPatternSyntax, "bad pattern %q", "[abc")

	assert.Equal(t, errors.ErrPatternSyntax, err.Code)
	assert.Contains(t, err.Error(), `bad pattern "[abc"`)
}

func TestWrap(t *testing.T) {
	t.Run("wraps_underlying_error", func(t *testing.T) {
		inner := fmt.Errorf("read failed")
		err := errors.Wrap(inner, errors.ErrManifestRead, "cannot read manifest")

		require.NotNil(t, err)
		assert.Equal(t, inner, err.Unwrap())
		assert.Contains(t, err.Error(), "read failed")
	})

	t.Run("nil_error_returns_nil", func(t *testing.T) {
		assert.Nil(t, errors.Wrap(nil, errors.ErrInternal, "ignored"))
		assert.Nil(t, errors.Wrapf(nil, errors.ErrInternal, "ignored %d", 1))
	})
}

func TestIsErrorCode(t *testing.T) {
	err := errors.New(errors.ErrInvalidDirective, "bad line")
	wrapped := fmt.Errorf("outer: %w", err)

	assert.True(t, errors.IsErrorCode(wrapped, errors.ErrInvalidDirective))
	assert.False(t, errors.IsErrorCode(wrapped, errors.ErrPatternSyntax))
	assert.False(t, errors.IsErrorCode(fmt.Errorf("plain"), errors.ErrInvalidDirective))
}

func TestGetErrorCode(t *testing.T) {
	err := errors.New(errors.ErrConfigLoad, "no config")

	assert.Equal(t, errors.ErrConfigLoad, errors.GetErrorCode(err))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(fmt.Errorf("plain")))
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrInvalidDirective, "malformed line").
		WithDetail("line", 7).
		WithDetail("directive", "prune")

	details := errors.GetErrorDetails(err)
	require.NotNil(t, details)
	assert.Equal(t, 7, details["line"])
	assert.Equal(t, "prune", details["directive"])
}
