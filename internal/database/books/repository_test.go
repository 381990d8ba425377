package books

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/tracker/internal/apperr"
	"github.com/mrlokans/tracker/internal/entities"
	"github.com/mrlokans/tracker/internal/query"
)

func setupTestDB(t *testing.T) (*Repository, func()) {
	dbPath := "./test_books_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.Book{}))

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}
	return NewRepository(db), cleanup
}

func TestRepository_CreateAndFind(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	book := &entities.Book{Title: "The Go Programming Language", Author: "Donovan", TotalPages: 380}
	require.NoError(t, repo.Create(ctx, book))
	assert.NotZero(t, book.ID)

	found, err := repo.FindByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.Pages(380), found.TotalPages)
}

func TestRepository_Create_RequiresPages(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	err := repo.Create(context.Background(), &entities.Book{Title: "Empty"})
	assert.ErrorIs(t, err, apperr.Validation)
}

func TestRepository_FindByID_NotFound(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.FindByID(context.Background(), 42)
	assert.ErrorIs(t, err, apperr.NotFound)
}

func TestRepository_Delete(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	book := &entities.Book{Title: "Short", TotalPages: 10}
	require.NoError(t, repo.Create(ctx, book))

	require.NoError(t, repo.Delete(ctx, book.ID))
	assert.ErrorIs(t, repo.Delete(ctx, book.ID), apperr.NotFound)
}

func TestRepository_FindAll(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	for i := 1; i <= 12; i++ {
		author := "Pike"
		if i%3 == 0 {
			author = "Kernighan"
		}
		require.NoError(t, repo.Create(ctx, &entities.Book{
			Title:      fmt.Sprintf("Volume %02d", i),
			Author:     author,
			TotalPages: entities.Pages(100 * i),
		}))
	}

	page, err := repo.FindAll(ctx, query.New(
		query.Where(query.Eq("author", "Kernighan"), query.GreaterThan("total_pages", 500)),
		query.SortBy("total_pages", query.Asc),
	))
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.TotalCount)
	assert.Equal(t, "Volume 06", page.Data[0].Title)

	_, err = repo.FindAll(ctx, query.New(query.Where(query.Eq("publisher", "x"))))
	assert.ErrorIs(t, err, apperr.Validation)
}
