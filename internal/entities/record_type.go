package entities

import (
	"strings"

	"github.com/mrlokans/tracker/internal/apperr"
)

// RecordType categorises course activity. The set is closed; use
// ParseRecordType for any value coming from outside the process.
type RecordType string

const (
	RecordTypeLecture  RecordType = "LECTURE"
	RecordTypePractice RecordType = "PRACTICE"
	RecordTypeReading  RecordType = "READING"
	RecordTypeReview   RecordType = "REVIEW"
	RecordTypeProject  RecordType = "PROJECT"
)

// RecordTypes lists every category in display order.
var RecordTypes = []RecordType{
	RecordTypeLecture,
	RecordTypePractice,
	RecordTypeReading,
	RecordTypeReview,
	RecordTypeProject,
}

// ParseRecordType accepts a category name in any case.
func ParseRecordType(s string) (RecordType, error) {
	rt := RecordType(strings.ToUpper(strings.TrimSpace(s)))
	if !rt.Valid() {
		return "", apperr.Validationf("entities.ParseRecordType", "unknown record type %q", s)
	}
	return rt, nil
}

// Valid reports whether rt is one of the declared categories.
func (rt RecordType) Valid() bool {
	switch rt {
	case RecordTypeLecture, RecordTypePractice, RecordTypeReading, RecordTypeReview, RecordTypeProject:
		return true
	}
	return false
}

func (rt RecordType) String() string { return string(rt) }
