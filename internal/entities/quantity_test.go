package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/tracker/internal/apperr"
)

func TestNewPages(t *testing.T) {
	p, err := NewPages(20)
	require.NoError(t, err)
	assert.Equal(t, Pages(20), p)

	_, err = NewPages(-1)
	assert.ErrorIs(t, err, apperr.Validation)

	_, err = NewPages(MaxPagesPerEntry + 1)
	assert.ErrorIs(t, err, apperr.Validation)
}

func TestNewMinutes(t *testing.T) {
	m, err := NewMinutes(0)
	require.NoError(t, err)
	assert.Equal(t, Minutes(0), m)

	_, err = NewMinutes(-5)
	assert.ErrorIs(t, err, apperr.Validation)

	_, err = NewMinutes(MaxMinutesPerEntry + 1)
	assert.ErrorIs(t, err, apperr.Validation)
}

func TestPages_Remaining(t *testing.T) {
	assert.Equal(t, Pages(20), Pages(480).Remaining(500))
	assert.Equal(t, Pages(0), Pages(500).Remaining(500))
	assert.Equal(t, Pages(0), Pages(510).Remaining(500))
}

func TestPages_Min(t *testing.T) {
	assert.Equal(t, Pages(20), Pages(40).Min(20))
	assert.Equal(t, Pages(5), Pages(5).Min(20))
}
