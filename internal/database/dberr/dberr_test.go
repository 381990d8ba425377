package dberr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/mrlokans/tracker/internal/apperr"
)

func TestTranslate(t *testing.T) {
	assert.NoError(t, Translate("op", nil))
	assert.ErrorIs(t, Translate("op", gorm.ErrRecordNotFound), apperr.NotFound)
	assert.ErrorIs(t, Translate("op", gorm.ErrDuplicatedKey), apperr.Conflict)
	assert.ErrorIs(t, Translate("op", errors.New("disk full")), apperr.Internal)

	original := apperr.Validationf("inner", "bad field")
	assert.Same(t, original, Translate("op", original))
}
