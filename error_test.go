package lorekeep_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/lorekeep"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := lorekeep.Errorf(lorekeep.ENOTFOUND, "faction %q not found", "test")

	assert.Equal(t, lorekeep.ENOTFOUND, lorekeep.ErrorCode(err))
	assert.Equal(t, "faction \"test\" not found", lorekeep.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, lorekeep.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, lorekeep.ErrorMessage(nil))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("fetch: %w", lorekeep.Errorf(lorekeep.EUNAVAILABLE, "HTTP 503"))

	assert.Equal(t, lorekeep.EUNAVAILABLE, lorekeep.ErrorCode(err))
	assert.Equal(t, "HTTP 503", lorekeep.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("disk on fire")

	assert.Equal(t, lorekeep.EINTERNAL, lorekeep.ErrorCode(err))
	assert.Equal(t, "Internal error.", lorekeep.ErrorMessage(err))
}
