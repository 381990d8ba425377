package entities

import (
	"github.com/mrlokans/tracker/internal/apperr"
)

const (
	// MaxPagesPerEntry bounds a single submission; whole books rarely exceed it.
	MaxPagesPerEntry = 10000
	// MaxMinutesPerEntry is one calendar day.
	MaxMinutesPerEntry = 24 * 60
)

// Pages is a non-negative page counter.
type Pages int

// Minutes is a non-negative duration counter in whole minutes.
type Minutes int

// NewPages validates n as a single submitted page count.
func NewPages(n int) (Pages, error) {
	if n < 0 || n > MaxPagesPerEntry {
		return 0, apperr.Validationf("entities.NewPages", "pages must be between 0 and %d, got %d", MaxPagesPerEntry, n)
	}
	return Pages(n), nil
}

// NewMinutes validates n as a single submitted minute count.
func NewMinutes(n int) (Minutes, error) {
	if n < 0 || n > MaxMinutesPerEntry {
		return 0, apperr.Validationf("entities.NewMinutes", "minutes must be between 0 and %d, got %d", MaxMinutesPerEntry, n)
	}
	return Minutes(n), nil
}

func (p Pages) Int() int { return int(p) }

func (p Pages) Add(o Pages) Pages { return p + o }

// Min returns the smaller of p and o.
func (p Pages) Min(o Pages) Pages {
	if o < p {
		return o
	}
	return p
}

// Remaining returns how many pages are left until capacity, never negative.
func (p Pages) Remaining(capacity Pages) Pages {
	if capacity <= p {
		return 0
	}
	return capacity - p
}

func (m Minutes) Int() int { return int(m) }

func (m Minutes) Add(o Minutes) Minutes { return m + o }
