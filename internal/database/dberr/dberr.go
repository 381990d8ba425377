// Package dberr classifies gorm errors into apperr kinds.
package dberr

import (
	"errors"

	"gorm.io/gorm"

	"github.com/mrlokans/tracker/internal/apperr"
)

// Translate wraps err for op. The database must be opened with
// gorm.Config.TranslateError for duplicate keys to be recognised.
func Translate(op string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return err
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.Wrap(apperr.KindNotFound, op, "record not found", err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperr.Wrap(apperr.KindConflict, op, "already exists", err)
	default:
		return apperr.Internalw(op, err)
	}
}
