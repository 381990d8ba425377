// Package books provides database operations for reading targets.
//
// Books are shared across users; their TotalPages is the capacity that
// reading progress is clamped to.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	book, err := repo.FindByID(ctx, 123)
package books

import (
	"context"

	"gorm.io/gorm"

	"github.com/mrlokans/tracker/internal/apperr"
	"github.com/mrlokans/tracker/internal/database/dberr"
	"github.com/mrlokans/tracker/internal/database/gormquery"
	"github.com/mrlokans/tracker/internal/entities"
	"github.com/mrlokans/tracker/internal/query"
)

// Schema lists the fields book listings can filter and sort on.
var Schema = query.Schema{
	Name: "books",
	Fields: map[string]query.Field{
		"id":          {Column: "id", Kind: query.KindInt},
		"title":       {Column: "title", Kind: query.KindString},
		"author":      {Column: "author", Kind: query.KindString},
		"isbn":        {Column: "isbn", Kind: query.KindString},
		"total_pages": {Column: "total_pages", Kind: query.KindInt},
		"created_at":  {Column: "created_at", Kind: query.KindTime},
	},
	DefaultSort: "created_at",
	TieBreaker:  "id",
}

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new book. TotalPages must be positive.
func (r *Repository) Create(ctx context.Context, book *entities.Book) error {
	if book.TotalPages <= 0 {
		return apperr.Validationf("books.Create", "total pages must be positive, got %d", book.TotalPages)
	}
	return dberr.Translate("books.Create", r.db.WithContext(ctx).Create(book).Error)
}

// FindByID retrieves a book by its ID.
func (r *Repository) FindByID(ctx context.Context, id uint) (*entities.Book, error) {
	var book entities.Book
	if err := r.db.WithContext(ctx).First(&book, id).Error; err != nil {
		return nil, dberr.Translate("books.FindByID", err)
	}
	return &book, nil
}

// Save updates every column of an existing book.
func (r *Repository) Save(ctx context.Context, book *entities.Book) error {
	return dberr.Translate("books.Save", r.db.WithContext(ctx).Save(book).Error)
}

// Delete removes a book. Returns NotFound when nothing was deleted.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entities.Book{}, id)
	if result.Error != nil {
		return dberr.Translate("books.Delete", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFoundf("books.Delete", "book %d not found", id)
	}
	return nil
}

// FindAll lists books matching q.
func (r *Repository) FindAll(ctx context.Context, q query.QueryBase) (query.Result[entities.Book], error) {
	return gormquery.FindAll[entities.Book](ctx, r.db, Schema, q)
}
