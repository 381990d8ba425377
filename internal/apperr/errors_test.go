package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Message(t *testing.T) {
	err := Wrap(KindInternal, "userbooks.Save", "internal error", errors.New("disk full"))
	assert.Equal(t, "userbooks.Save: internal error: disk full", err.Error())

	plain := New(KindNotFound, "", "book not found")
	assert.Equal(t, "book not found", plain.Error())
}

func TestError_IsKindSentinel(t *testing.T) {
	err := fmt.Errorf("handler: %w", NotFoundf("progress.LogBookActivity", "user book %s not found", "abc"))

	assert.True(t, errors.Is(err, NotFound))
	assert.False(t, errors.Is(err, Conflict))
	assert.True(t, IsKind(err, KindNotFound))
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := Internalw("op", cause)

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, Internal)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Validationf("op", "bad %s", "field")))
	assert.Equal(t, KindInternal, KindOf(errors.New("unclassified")))
	assert.Equal(t, Kind(""), KindOf(nil))
}
