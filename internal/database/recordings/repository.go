// Package recordings persists the per-day recordings of book and course
// progress aggregates.
//
// Listings are always scoped, either to one aggregate or to every aggregate
// of an owner. The scope is applied outside the declarative filters so a
// query combined with OR cannot reach another aggregate's rows.
package recordings

import (
	"context"

	"gorm.io/gorm"

	"github.com/mrlokans/tracker/internal/database/dberr"
	"github.com/mrlokans/tracker/internal/database/gormquery"
	"github.com/mrlokans/tracker/internal/entities"
	"github.com/mrlokans/tracker/internal/query"
)

var BookSchema = query.Schema{
	Name: "book_recordings",
	Fields: map[string]query.Field{
		"id":           {Column: "id", Kind: query.KindString},
		"user_book_id": {Column: "user_book_id", Kind: query.KindString},
		"date":         {Column: "date", Kind: query.KindDate},
		"pages":        {Column: "pages", Kind: query.KindInt},
		"minutes":      {Column: "minutes", Kind: query.KindInt},
		"notes":        {Column: "notes", Kind: query.KindString},
		"created_at":   {Column: "created_at", Kind: query.KindTime},
	},
	DefaultSort: "date",
	TieBreaker:  "id",
}

var CourseSchema = query.Schema{
	Name: "course_recordings",
	Fields: map[string]query.Field{
		"id":             {Column: "id", Kind: query.KindString},
		"user_course_id": {Column: "user_course_id", Kind: query.KindString},
		"date":           {Column: "date", Kind: query.KindDate},
		"category":       {Column: "category", Kind: query.KindString},
		"minutes":        {Column: "minutes", Kind: query.KindInt},
		"notes":          {Column: "notes", Kind: query.KindString},
		"created_at":     {Column: "created_at", Kind: query.KindTime},
	},
	DefaultSort: "date",
	TieBreaker:  "id",
}

// BookRepository handles book recording operations.
type BookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) *BookRepository {
	return &BookRepository{db: db}
}

// Save upserts the recording by ID.
func (r *BookRepository) Save(ctx context.Context, rec *entities.BookRecording) error {
	return dberr.Translate("recordings.SaveBook", r.db.WithContext(ctx).Save(rec).Error)
}

// FindAll lists the recordings of one user book.
func (r *BookRepository) FindAll(ctx context.Context, userBookID string, q query.QueryBase) (query.Result[entities.BookRecording], error) {
	return gormquery.FindAll[entities.BookRecording](ctx, r.db, BookSchema, q,
		gormquery.Where("user_book_id = ?", userBookID))
}

// FindAllForOwner lists recordings across all of an owner's user books.
func (r *BookRepository) FindAllForOwner(ctx context.Context, ownerID uint, q query.QueryBase) (query.Result[entities.BookRecording], error) {
	return gormquery.FindAll[entities.BookRecording](ctx, r.db, BookSchema, q,
		gormquery.Where("user_book_id IN (SELECT id FROM user_books WHERE owner_id = ?)", ownerID))
}

// ListByUserBook returns every recording of a user book, oldest day first.
func (r *BookRepository) ListByUserBook(ctx context.Context, userBookID string) ([]entities.BookRecording, error) {
	var recs []entities.BookRecording
	err := r.db.WithContext(ctx).
		Where("user_book_id = ?", userBookID).
		Order("date ASC, id ASC").
		Find(&recs).Error
	return recs, dberr.Translate("recordings.ListByUserBook", err)
}

// CourseRepository handles course recording operations.
type CourseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

func (r *CourseRepository) Save(ctx context.Context, rec *entities.CourseRecording) error {
	return dberr.Translate("recordings.SaveCourse", r.db.WithContext(ctx).Save(rec).Error)
}

func (r *CourseRepository) FindAll(ctx context.Context, userCourseID string, q query.QueryBase) (query.Result[entities.CourseRecording], error) {
	return gormquery.FindAll[entities.CourseRecording](ctx, r.db, CourseSchema, q,
		gormquery.Where("user_course_id = ?", userCourseID))
}

func (r *CourseRepository) FindAllForOwner(ctx context.Context, ownerID uint, q query.QueryBase) (query.Result[entities.CourseRecording], error) {
	return gormquery.FindAll[entities.CourseRecording](ctx, r.db, CourseSchema, q,
		gormquery.Where("user_course_id IN (SELECT id FROM user_courses WHERE owner_id = ?)", ownerID))
}

// ListByUserCourse returns every recording of a user course, oldest day first.
func (r *CourseRepository) ListByUserCourse(ctx context.Context, userCourseID string) ([]entities.CourseRecording, error) {
	var recs []entities.CourseRecording
	err := r.db.WithContext(ctx).
		Where("user_course_id = ?", userCourseID).
		Order("date ASC, category ASC, id ASC").
		Find(&recs).Error
	return recs, dberr.Translate("recordings.ListByUserCourse", err)
}
