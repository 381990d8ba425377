package progress_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/tracker/internal/apperr"
	"github.com/mrlokans/tracker/internal/entities"
	"github.com/mrlokans/tracker/internal/progress"
	"github.com/mrlokans/tracker/internal/query"
)

func (f *fixture) study(t *testing.T, id string, date time.Time, category entities.RecordType, minutes int, notes *string) *progress.CourseActivityResult {
	t.Helper()
	res, err := f.svc.LogCourseActivity(context.Background(), progress.LogCourseActivityInput{
		UserCourseID: id, OwnerID: owner, Date: date, Category: category, Minutes: minutes, Notes: notes,
	})
	require.NoError(t, err)
	return res
}

func TestLogCourseActivity_CategoriesAndDays(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	uc := f.userCourse(t)

	first := f.study(t, uc.ID, day1, entities.RecordTypeLecture, 45, nil)
	assert.True(t, first.NewDay)
	assert.False(t, first.Merged)

	practice := f.study(t, uc.ID, day1, entities.RecordTypePractice, 30, nil)
	assert.False(t, practice.NewDay)
	assert.False(t, practice.Merged)

	again := f.study(t, uc.ID, day1, entities.RecordTypeLecture, 15, strPtr("week 2"))
	assert.True(t, again.Merged)
	assert.Equal(t, first.Recording.ID, again.Recording.ID)
	assert.Equal(t, entities.Minutes(60), again.Recording.Minutes)

	next := f.study(t, uc.ID, day2, entities.RecordTypeReview, 20, nil)
	assert.True(t, next.NewDay)

	stored, err := f.svc.GetUserCourse(ctx, owner, uc.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.Minutes(110), stored.TotalMinutes)
	assert.Equal(t, 2, stored.TotalDays)
	assert.Equal(t, entities.ProgressStatusInProgress, stored.Status)

	recs, err := f.svc.ListCourseRecordings(ctx, owner, uc.ID, query.New(query.Where(query.Eq("date", day1))))
	require.NoError(t, err)
	assert.Equal(t, int64(2), recs.TotalCount)
}

func TestLogCourseActivity_Errors(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	uc := f.userCourse(t)

	_, err := f.svc.LogCourseActivity(ctx, progress.LogCourseActivityInput{
		UserCourseID: uc.ID, OwnerID: owner, Category: "NAPPING", Minutes: 10,
	})
	assert.ErrorIs(t, err, apperr.Validation)

	_, err = f.svc.LogCourseActivity(ctx, progress.LogCourseActivityInput{
		UserCourseID: uc.ID, OwnerID: owner, Category: entities.RecordTypeLecture, Minutes: -5,
	})
	assert.ErrorIs(t, err, apperr.Validation)

	_, err = f.svc.LogCourseActivity(ctx, progress.LogCourseActivityInput{
		UserCourseID: uc.ID, OwnerID: owner + 1, Category: entities.RecordTypeLecture, Minutes: 5,
	})
	assert.ErrorIs(t, err, apperr.NotFound)
}

func TestCompleteCourse_Idempotent(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	uc := f.userCourse(t)

	done, err := f.svc.CompleteCourse(ctx, owner, uc.ID, day2)
	require.NoError(t, err)
	assert.Equal(t, entities.ProgressStatusCompleted, done.Status)
	require.NotNil(t, done.CompletedDate)
	assert.True(t, done.CompletedDate.Equal(day2))

	again, err := f.svc.CompleteCourse(ctx, owner, uc.ID, day2.AddDate(0, 0, 5))
	require.NoError(t, err)
	assert.True(t, again.CompletedDate.Equal(day2))
	assert.Equal(t, 1, f.auditor.count("completion"))

	_, err = f.svc.CompleteCourse(ctx, owner+1, uc.ID, day2)
	assert.ErrorIs(t, err, apperr.NotFound)
}

func TestStartCourse_Duplicate(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	uc := f.userCourse(t)

	_, err := f.svc.StartCourse(ctx, owner, uc.CourseID)
	assert.ErrorIs(t, err, apperr.Conflict)

	_, err = f.svc.StartCourse(ctx, owner, 4242)
	assert.ErrorIs(t, err, apperr.NotFound)
}

func TestCourseDailyHistory(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	uc := f.userCourse(t)

	f.study(t, uc.ID, day1, entities.RecordTypePractice, 30, nil)
	f.study(t, uc.ID, day1, entities.RecordTypeLecture, 45, strPtr("intro"))
	f.study(t, uc.ID, day2, entities.RecordTypeReview, 10, nil)

	history, err := f.svc.CourseDailyHistory(ctx, owner, uc.ID, query.New())
	require.NoError(t, err)
	assert.Equal(t, 2, history.TotalDays)
	require.Len(t, history.Data, 2)

	latest := history.Data[0]
	assert.True(t, latest.Date.Equal(day2))
	assert.Equal(t, entities.Minutes(10), latest.Total)

	earliest := history.Data[1]
	assert.Equal(t, entities.Minutes(75), earliest.Total)
	assert.Len(t, earliest.Categories, 2)
	assert.Equal(t, "intro", *earliest.Categories[entities.RecordTypeLecture].Notes)

	_, err = f.svc.CourseDailyHistory(ctx, owner+1, uc.ID, query.New())
	assert.ErrorIs(t, err, apperr.NotFound)
}

func TestCourseStats(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	uc := f.userCourse(t)

	f.study(t, uc.ID, day1, entities.RecordTypeLecture, 40, nil)
	f.study(t, uc.ID, day1, entities.RecordTypePractice, 20, nil)
	f.study(t, uc.ID, day2, entities.RecordTypeLecture, 10, nil)
	f.study(t, uc.ID, day2.AddDate(0, 0, 10), entities.RecordTypeReview, 99, nil)

	stats, err := f.svc.CourseStats(ctx, owner, day1, day2)
	require.NoError(t, err)
	assert.Equal(t, entities.Minutes(70), stats.Minutes)
	assert.Equal(t, 2, stats.ActiveDays)
	assert.Equal(t, int64(3), stats.Recordings)
	assert.Equal(t, entities.Minutes(50), stats.ByCategory[entities.RecordTypeLecture])
	assert.Equal(t, entities.Minutes(20), stats.ByCategory[entities.RecordTypePractice])

	_, err = f.svc.CourseStats(ctx, owner, day2, day1)
	assert.ErrorIs(t, err, apperr.Validation)
}
