package database

import (
	"context"

	"gorm.io/gorm"

	"github.com/mrlokans/tracker/internal/database/books"
	"github.com/mrlokans/tracker/internal/database/courses"
	"github.com/mrlokans/tracker/internal/database/dberr"
	"github.com/mrlokans/tracker/internal/database/recordings"
	"github.com/mrlokans/tracker/internal/database/userbooks"
	"github.com/mrlokans/tracker/internal/database/usercourses"
	"github.com/mrlokans/tracker/internal/progress"
)

// Store bundles the progress repositories over one *gorm.DB, which is either
// the connection pool or a transaction.
type Store struct {
	db               *gorm.DB
	books            *books.Repository
	courses          *courses.Repository
	userBooks        *userbooks.Repository
	userCourses      *usercourses.Repository
	bookRecordings   *recordings.BookRepository
	courseRecordings *recordings.CourseRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:               db,
		books:            books.NewRepository(db),
		courses:          courses.NewRepository(db),
		userBooks:        userbooks.NewRepository(db),
		userCourses:      usercourses.NewRepository(db),
		bookRecordings:   recordings.NewBookRepository(db),
		courseRecordings: recordings.NewCourseRepository(db),
	}
}

func (s *Store) Books() progress.BookReader                           { return s.books }
func (s *Store) Courses() progress.CourseReader                       { return s.courses }
func (s *Store) UserBooks() progress.UserBookRepository               { return s.userBooks }
func (s *Store) UserCourses() progress.UserCourseRepository           { return s.userCourses }
func (s *Store) BookRecordings() progress.BookRecordingRepository     { return s.bookRecordings }
func (s *Store) CourseRecordings() progress.CourseRecordingRepository { return s.courseRecordings }

// Concrete accessors for callers outside the progress service.
func (s *Store) BookRepository() *books.Repository             { return s.books }
func (s *Store) CourseRepository() *courses.Repository         { return s.courses }
func (s *Store) UserBookRepository() *userbooks.Repository     { return s.userBooks }
func (s *Store) UserCourseRepository() *usercourses.Repository { return s.userCourses }

// WithinTx runs fn in a transaction. Any error from fn rolls back.
func (s *Store) WithinTx(ctx context.Context, fn func(tx progress.Store) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
	return dberr.Translate("database.WithinTx", err)
}
