package database

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/tracker/internal/apperr"
	"github.com/mrlokans/tracker/internal/config"
	"github.com/mrlokans/tracker/internal/entities"
	"github.com/mrlokans/tracker/internal/progress"
)

// setupTestDB creates a fresh test database
func setupTestDB(t *testing.T) (*Database, func()) {
	t.Helper()
	dbPath := "./test_" + t.Name() + ".db"
	db, err := NewDatabase(config.Database{Driver: DriverSQLite, Path: dbPath, LogLevel: "silent"}, nil)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return db, cleanup
}

func TestNewDatabase_Migrates(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	for _, table := range []string{"users", "books", "courses", "user_books", "user_courses", "book_recordings", "course_recordings", "audit_events"} {
		assert.True(t, db.DB.Migrator().HasTable(table), table)
	}
}

func TestNewDatabase_InvalidConfig(t *testing.T) {
	_, err := NewDatabase(config.Database{Driver: "mysql", Path: "x.db"}, nil)
	assert.ErrorContains(t, err, "unsupported database driver")

	_, err = NewDatabase(config.Database{Driver: DriverPostgres}, nil)
	assert.ErrorContains(t, err, "DATABASE_DSN")

	_, err = NewDatabase(config.Database{Driver: DriverSQLite}, nil)
	assert.ErrorContains(t, err, "path is required")
}

func TestStore_WithinTx_Commits(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()
	store := NewStore(db.DB)

	book := &entities.Book{Title: "Dune", Author: "Frank Herbert", TotalPages: 600}
	require.NoError(t, store.BookRepository().Create(ctx, book))

	var id string
	err := store.WithinTx(ctx, func(tx progress.Store) error {
		ub := entities.NewUserBook(1, book.ID, book.CreatedAt)
		id = ub.ID
		return tx.UserBooks().Create(ctx, ub)
	})
	require.NoError(t, err)

	_, err = store.UserBooks().FindByID(ctx, id)
	assert.NoError(t, err)
}

func TestStore_WithinTx_RollsBack(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()
	store := NewStore(db.DB)
	boom := errors.New("boom")

	var id string
	err := store.WithinTx(ctx, func(tx progress.Store) error {
		ub := entities.NewUserBook(1, 1, db.DB.NowFunc())
		id = ub.ID
		if err := tx.UserBooks().Create(ctx, ub); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, err, apperr.Internal)

	_, err = store.UserBooks().FindByID(ctx, id)
	assert.ErrorIs(t, err, apperr.NotFound)
}

func TestStore_WithinTx_KeepsClassifiedErrors(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	err := NewStore(db.DB).WithinTx(context.Background(), func(tx progress.Store) error {
		return apperr.Conflictf("test", "already done")
	})
	assert.ErrorIs(t, err, apperr.Conflict)
}
