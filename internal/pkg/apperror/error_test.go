package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errSample = NotFound("sample not found")

func TestInternal_KeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Internal("failed to save", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, KindInternal, KindOf(err))
	assert.Equal(t, "failed to save: connection reset", err.Error())
	assert.Nil(t, Internal("noop", nil))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(errSample))
	assert.Equal(t, KindNotFound, KindOf(fmt.Errorf("lookup: %w", errSample)))
	assert.Equal(t, KindConflict, KindOf(Conflict("dup")))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
}

func TestWrapUnexpected(t *testing.T) {
	wrapped := fmt.Errorf("repo: %w", errSample)
	assert.Same(t, wrapped, WrapUnexpected("op", wrapped))

	plain := errors.New("boom")
	err := WrapUnexpected("op", plain)
	assert.Equal(t, KindInternal, KindOf(err))
	assert.ErrorIs(t, err, plain)
	assert.Nil(t, WrapUnexpected("op", nil))
}
