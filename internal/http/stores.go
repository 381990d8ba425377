package http

import (
	"context"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/tracker/internal/entities"
	"github.com/mrlokans/tracker/internal/progress"
	"github.com/mrlokans/tracker/internal/query"
)

// Each controller depends on the narrowest interface it needs.

// BookStore provides access to the book catalogue.
type BookStore interface {
	Create(ctx context.Context, book *entities.Book) error
	FindByID(ctx context.Context, id uint) (*entities.Book, error)
	FindAll(ctx context.Context, q query.QueryBase) (query.Result[entities.Book], error)
}

// CourseStore provides access to the course catalogue.
type CourseStore interface {
	Create(ctx context.Context, course *entities.Course) error
	FindByID(ctx context.Context, id uint) (*entities.Course, error)
	FindAll(ctx context.Context, q query.QueryBase) (query.Result[entities.Course], error)
}

// BookProgress is the reading side of the progress service.
type BookProgress interface {
	StartBook(ctx context.Context, ownerID, bookID uint) (*entities.UserBook, error)
	LogBookActivity(ctx context.Context, in progress.LogBookActivityInput) (*progress.BookActivityResult, error)
	GetUserBook(ctx context.Context, ownerID uint, id string) (*entities.UserBook, error)
	ListUserBooks(ctx context.Context, ownerID uint, q query.QueryBase) (query.Result[entities.UserBook], error)
	ListBookRecordings(ctx context.Context, ownerID uint, userBookID string, q query.QueryBase) (query.Result[entities.BookRecording], error)
	BookDailyHistory(ctx context.Context, ownerID uint, userBookID string, q query.QueryBase) (progress.DailyHistory, error)
	BookStats(ctx context.Context, ownerID uint, from, to time.Time) (progress.WindowStats, error)
}

// CourseProgress is the study side of the progress service.
type CourseProgress interface {
	StartCourse(ctx context.Context, ownerID, courseID uint) (*entities.UserCourse, error)
	LogCourseActivity(ctx context.Context, in progress.LogCourseActivityInput) (*progress.CourseActivityResult, error)
	CompleteCourse(ctx context.Context, ownerID uint, userCourseID string, date time.Time) (*entities.UserCourse, error)
	GetUserCourse(ctx context.Context, ownerID uint, id string) (*entities.UserCourse, error)
	ListUserCourses(ctx context.Context, ownerID uint, q query.QueryBase) (query.Result[entities.UserCourse], error)
	ListCourseRecordings(ctx context.Context, ownerID uint, userCourseID string, q query.QueryBase) (query.Result[entities.CourseRecording], error)
	CourseDailyHistory(ctx context.Context, ownerID uint, userCourseID string, q query.QueryBase) (progress.DailyHistory, error)
	CourseStats(ctx context.Context, ownerID uint, from, to time.Time) (progress.WindowStats, error)
}

// ProgressService combines both sides.
type ProgressService interface {
	BookProgress
	CourseProgress
}

// TaskQueue enqueues background tasks and reports their status.
type TaskQueue interface {
	Enqueue(ctx context.Context, tasks ...backlite.Task) ([]string, error)
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}
