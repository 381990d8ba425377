package progress

import (
	"context"

	"github.com/mrlokans/tracker/internal/entities"
	"github.com/mrlokans/tracker/internal/query"
)

// BookReader supplies the page capacity used for clamping.
type BookReader interface {
	FindByID(ctx context.Context, id uint) (*entities.Book, error)
}

type CourseReader interface {
	FindByID(ctx context.Context, id uint) (*entities.Course, error)
}

type UserBookRepository interface {
	FindByID(ctx context.Context, id string) (*entities.UserBook, error)
	FindByOwnerAndBook(ctx context.Context, ownerID, bookID uint) (*entities.UserBook, error)
	Create(ctx context.Context, ub *entities.UserBook) error
	Save(ctx context.Context, ub *entities.UserBook) error
	FindAllForOwner(ctx context.Context, ownerID uint, q query.QueryBase) (query.Result[entities.UserBook], error)
	ListIDs(ctx context.Context) ([]string, error)
}

type UserCourseRepository interface {
	FindByID(ctx context.Context, id string) (*entities.UserCourse, error)
	FindByOwnerAndCourse(ctx context.Context, ownerID, courseID uint) (*entities.UserCourse, error)
	Create(ctx context.Context, uc *entities.UserCourse) error
	Save(ctx context.Context, uc *entities.UserCourse) error
	FindAllForOwner(ctx context.Context, ownerID uint, q query.QueryBase) (query.Result[entities.UserCourse], error)
	ListIDs(ctx context.Context) ([]string, error)
}

// BookRecordingRepository stores recordings. FindAll is scoped to one
// aggregate; ListByUserBook returns every recording of it unpaged.
type BookRecordingRepository interface {
	FindAll(ctx context.Context, userBookID string, q query.QueryBase) (query.Result[entities.BookRecording], error)
	FindAllForOwner(ctx context.Context, ownerID uint, q query.QueryBase) (query.Result[entities.BookRecording], error)
	ListByUserBook(ctx context.Context, userBookID string) ([]entities.BookRecording, error)
	Save(ctx context.Context, r *entities.BookRecording) error
}

type CourseRecordingRepository interface {
	FindAll(ctx context.Context, userCourseID string, q query.QueryBase) (query.Result[entities.CourseRecording], error)
	FindAllForOwner(ctx context.Context, ownerID uint, q query.QueryBase) (query.Result[entities.CourseRecording], error)
	ListByUserCourse(ctx context.Context, userCourseID string) ([]entities.CourseRecording, error)
	Save(ctx context.Context, r *entities.CourseRecording) error
}

// Store groups the repositories the service needs. WithinTx runs fn against a
// Store bound to a single transaction; returning an error rolls it back.
type Store interface {
	Books() BookReader
	Courses() CourseReader
	UserBooks() UserBookRepository
	UserCourses() UserCourseRepository
	BookRecordings() BookRecordingRepository
	CourseRecordings() CourseRecordingRepository
	WithinTx(ctx context.Context, fn func(tx Store) error) error
}

// Locker serializes work on one aggregate. Implemented by internal/keylock.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// Auditor records progress events. Implemented by internal/audit.
type Auditor interface {
	LogActivity(ownerID uint, entityType, entityID, description string, metadata map[string]any)
	LogCompletion(ownerID uint, entityType, entityID string, completedOn string)
	LogTrackingStarted(ownerID uint, entityType, entityID string, targetID uint)
	LogRebuild(ownerID uint, entityType, entityID string, err error)
}
