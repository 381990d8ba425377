package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	day1 = time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	day2 = time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)
	now1 = time.Date(2024, 4, 1, 9, 30, 0, 0, time.UTC)
	now2 = time.Date(2024, 4, 2, 21, 0, 0, 0, time.UTC)
)

func TestNewUserBook(t *testing.T) {
	ub := NewUserBook(7, 3, now1)

	assert.NotEmpty(t, ub.ID)
	assert.Equal(t, uint(7), ub.OwnerID)
	assert.Equal(t, uint(3), ub.BookID)
	assert.Equal(t, ProgressStatusInProgress, ub.Status)
	assert.Zero(t, ub.CurrentPage)
	assert.Zero(t, ub.TotalMinutes)
	assert.Zero(t, ub.TotalDays)
	assert.Nil(t, ub.StartDate)
	assert.Nil(t, ub.CompletedDate)
	assert.Equal(t, now1, ub.CreatedAt)
	assert.Equal(t, now1, ub.UpdatedAt)
}

func TestUserBook_ApplyActivity_Increase(t *testing.T) {
	ub := NewUserBook(1, 1, now1)

	ub.ApplyActivity(Activity{Date: day1, Pages: 20, Minutes: 15, IsNewDay: true, Mode: ActivityModeIncrease}, now1)
	ub.ApplyActivity(Activity{Date: day1, Pages: 10, Minutes: 5, IsNewDay: false, Mode: ActivityModeIncrease}, now1)
	ub.ApplyActivity(Activity{Date: day2, Pages: 5, Minutes: 30, IsNewDay: true, Mode: ActivityModeIncrease}, now2)

	assert.Equal(t, Pages(35), ub.CurrentPage)
	assert.Equal(t, Minutes(50), ub.TotalMinutes)
	assert.Equal(t, 2, ub.TotalDays)
	require.NotNil(t, ub.StartDate)
	assert.Equal(t, day1, *ub.StartDate, "start date is set once")
	assert.Equal(t, now2, ub.UpdatedAt)
	assert.Equal(t, now1, ub.CreatedAt)
}

func TestUserBook_ApplyActivity_Set(t *testing.T) {
	ub := NewUserBook(1, 1, now1)
	ub.ApplyActivity(Activity{Date: day1, Pages: 100, Minutes: 60, IsNewDay: true, Mode: ActivityModeIncrease}, now1)

	ub.ApplyActivity(Activity{Date: day1, Pages: 42, Minutes: 17, Days: 3, Mode: ActivityModeSet}, now2)

	assert.Equal(t, Pages(42), ub.CurrentPage)
	assert.Equal(t, Minutes(17), ub.TotalMinutes)
	assert.Equal(t, 3, ub.TotalDays)
	assert.Equal(t, now2, ub.UpdatedAt)
}

func TestProgress_MarkCompleted_Idempotent(t *testing.T) {
	ub := NewUserBook(1, 1, now1)

	ub.MarkCompleted(day1, now1)
	require.NotNil(t, ub.CompletedDate)
	assert.True(t, ub.IsCompleted())
	assert.Equal(t, day1, *ub.CompletedDate)

	ub.MarkCompleted(day2, now2)
	assert.Equal(t, day1, *ub.CompletedDate, "second completion must not move the date")
	assert.Equal(t, now1, ub.UpdatedAt, "no-op completion must not bump updated_at")
	assert.Equal(t, ProgressStatusCompleted, ub.Status)
}

func TestProgress_MarkCompleted_RespectsExistingDate(t *testing.T) {
	uc := NewUserCourse(1, 1, now1)
	existing := day1
	uc.CompletedDate = &existing

	uc.MarkCompleted(day2, now2)

	assert.Equal(t, day1, *uc.CompletedDate)
	assert.Equal(t, ProgressStatusInProgress, uc.Status)
}

func TestUserCourse_ApplyActivity(t *testing.T) {
	uc := NewUserCourse(2, 9, now1)

	uc.ApplyActivity(Activity{Date: day1, Pages: 99, Minutes: 45, IsNewDay: true, Mode: ActivityModeIncrease}, now1)

	assert.Equal(t, Minutes(45), uc.TotalMinutes)
	assert.Equal(t, 1, uc.TotalDays)
	require.NotNil(t, uc.StartDate)
	assert.Equal(t, day1, *uc.StartDate)
}
