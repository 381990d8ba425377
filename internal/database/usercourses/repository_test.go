package usercourses

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

var now = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) (*Repository, *gorm.DB) {
	dbPath := "./test_usercourses_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.UserCourse{}, &entities.CourseRecording{}))

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	})
	return NewRepository(db), db
}

func TestRepository_Create_DuplicateIsConflict(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, entities.NewUserCourse(1, 7, now)))

	err := repo.Create(ctx, entities.NewUserCourse(1, 7, now))
	assert.ErrorIs(t, err, apperr.Conflict)

	require.NoError(t, repo.Create(ctx, entities.NewUserCourse(2, 7, now)))
}

func TestRepository_FindByOwnerAndCourse(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	uc := entities.NewUserCourse(1, 7, now)
	require.NoError(t, repo.Create(ctx, uc))

	found, err := repo.FindByOwnerAndCourse(ctx, 1, 7)
	require.NoError(t, err)
	assert.Equal(t, uc.ID, found.ID)

	_, err = repo.FindByOwnerAndCourse(ctx, 2, 7)
	assert.ErrorIs(t, err, apperr.NotFound)
}

func TestRepository_FindAllForOwner(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	for courseID := uint(1); courseID <= 3; courseID++ {
		require.NoError(t, repo.Create(ctx, entities.NewUserCourse(1, courseID, now.Add(time.Duration(courseID)*time.Minute))))
	}
	require.NoError(t, repo.Create(ctx, entities.NewUserCourse(2, 1, now)))

	page, err := repo.FindAllForOwner(ctx, 1, query.New(query.SortBy("created_at", query.Asc), query.Limit(2)))
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.TotalCount)
	require.Len(t, page.Data, 2)
	assert.Equal(t, uint(1), page.Data[0].CourseID)

	ids, err := repo.ListIDs(ctx)
	require.NoError(t, err)
	assert.Len(t, ids, 4)
}

func TestRepository_Delete_RemovesRecordings(t *testing.T) {
	repo, db := setupTestDB(t)
	ctx := context.Background()

	uc := entities.NewUserCourse(1, 7, now)
	require.NoError(t, repo.Create(ctx, uc))
	rec := entities.NewCourseRecording(uc.ID, now, entities.RecordTypeLecture, 30, nil, now)
	require.NoError(t, db.Create(rec).Error)

	require.NoError(t, repo.Delete(ctx, uc.ID))

	var count int64
	require.NoError(t, db.Model(&entities.CourseRecording{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.ErrorIs(t, repo.Delete(ctx, uc.ID), apperr.NotFound)
}
