package recordings

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/tracker/internal/apperr"
	"github.com/mrlokans/tracker/internal/entities"
	"github.com/mrlokans/tracker/internal/query"
)

var (
	now  = time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	day1 = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
)

func setupTestDB(t *testing.T) (*gorm.DB, func()) {
	dbPath := "./test_recordings_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entities.UserBook{}, &entities.UserCourse{},
		&entities.BookRecording{}, &entities.CourseRecording{},
	))

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}
	return db, cleanup
}

func TestBookRepository_FindAll_SameDayLookup(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()
	repo := NewBookRepository(db)

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Save(ctx, entities.NewBookRecording("ub-1", day1.AddDate(0, 0, i), 10, 10, nil, now)))
	}
	require.NoError(t, repo.Save(ctx, entities.NewBookRecording("ub-2", day1.AddDate(0, 0, 2), 99, 99, nil, now)))

	q := query.New(
		query.Where(query.Eq("date", day1.AddDate(0, 0, 2))),
		query.SortBy("date", query.Desc),
		query.Limit(1),
	)
	result, err := repo.FindAll(ctx, "ub-1", q)

	require.NoError(t, err)
	require.Len(t, result.Data, 1)
	assert.Equal(t, int64(1), result.TotalCount)
	assert.Equal(t, entities.Pages(10), result.Data[0].Pages)
	assert.True(t, result.Data[0].Date.Equal(day1.AddDate(0, 0, 2)))
}

func TestBookRepository_SaveUpserts(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()
	repo := NewBookRepository(db)

	rec := entities.NewBookRecording("ub-1", day1, 10, 5, nil, now)
	require.NoError(t, repo.Save(ctx, rec))

	notes := "chapter 3"
	rec.Merge(15, 10, &notes, now.Add(time.Hour))
	require.NoError(t, repo.Save(ctx, rec))

	all, err := repo.ListByUserBook(ctx, "ub-1")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, entities.Pages(25), all[0].Pages)
	assert.Equal(t, entities.Minutes(15), all[0].Minutes)
	require.NotNil(t, all[0].Notes)
	assert.Equal(t, "chapter 3", *all[0].Notes)
}

func TestBookRepository_ListByUserBook_Ordered(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()
	repo := NewBookRepository(db)

	require.NoError(t, repo.Save(ctx, entities.NewBookRecording("ub-1", day1.AddDate(0, 0, 3), 1, 1, nil, now)))
	require.NoError(t, repo.Save(ctx, entities.NewBookRecording("ub-1", day1, 1, 1, nil, now)))
	require.NoError(t, repo.Save(ctx, entities.NewBookRecording("ub-1", day1.AddDate(0, 0, 1), 1, 1, nil, now)))

	all, err := repo.ListByUserBook(ctx, "ub-1")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.True(t, all[0].Date.Equal(day1))
	assert.True(t, all[2].Date.Equal(day1.AddDate(0, 0, 3)))

	none, err := repo.ListByUserBook(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestBookRepository_FindAllForOwner_Between(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()
	repo := NewBookRepository(db)

	mine := entities.NewUserBook(1, 1, now)
	theirs := entities.NewUserBook(2, 1, now)
	require.NoError(t, db.Create(mine).Error)
	require.NoError(t, db.Create(theirs).Error)

	for i := 0; i < 10; i++ {
		require.NoError(t, repo.Save(ctx, entities.NewBookRecording(mine.ID, day1.AddDate(0, 0, i), 10, 10, nil, now)))
		require.NoError(t, repo.Save(ctx, entities.NewBookRecording(theirs.ID, day1.AddDate(0, 0, i), 10, 10, nil, now)))
	}

	q := query.New(query.Where(query.Between("date", "2024-05-03", "2024-05-07")), query.Limit(100))
	result, err := repo.FindAllForOwner(ctx, 1, q)

	require.NoError(t, err)
	assert.Equal(t, int64(5), result.TotalCount)
	for _, rec := range result.Data {
		assert.Equal(t, mine.ID, rec.UserBookID)
	}
}

func TestCourseRepository_CategoryLookup(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()
	repo := NewCourseRepository(db)

	require.NoError(t, repo.Save(ctx, entities.NewCourseRecording("uc-1", day1, entities.RecordTypeLecture, 30, nil, now)))
	require.NoError(t, repo.Save(ctx, entities.NewCourseRecording("uc-1", day1, entities.RecordTypePractice, 45, nil, now)))

	q := query.New(query.Where(
		query.Eq("date", day1),
		query.Eq("category", string(entities.RecordTypePractice)),
	))
	result, err := repo.FindAll(ctx, "uc-1", q)
	require.NoError(t, err)
	require.Len(t, result.Data, 1)
	assert.Equal(t, entities.Minutes(45), result.Data[0].Minutes)

	all, err := repo.ListByUserCourse(ctx, "uc-1")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, entities.RecordTypeLecture, all[0].Category)
}

func TestCourseRepository_UnknownFieldIsValidation(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := NewCourseRepository(db).FindAll(context.Background(), "uc-1", query.New(query.Where(query.Eq("pages", 1))))
	assert.ErrorIs(t, err, apperr.Validation)
}
