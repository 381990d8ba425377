// Package userbooks persists reading progress aggregates.
//
// # Usage
//
//	repo := userbooks.NewRepository(db)
//	ub, err := repo.FindByID(ctx, id)
//	page, err := repo.FindAllForOwner(ctx, ownerID, query.New(query.Where(query.Eq("status", "COMPLETED"))))
package userbooks

import (
	"context"

	"gorm.io/gorm"

	"github.com/mrlokans/tracker/internal/apperr"
	"github.com/mrlokans/tracker/internal/database/dberr"
	"github.com/mrlokans/tracker/internal/database/gormquery"
	"github.com/mrlokans/tracker/internal/entities"
	"github.com/mrlokans/tracker/internal/query"
)

var Schema = query.Schema{
	Name: "user_books",
	Fields: map[string]query.Field{
		"id":             {Column: "id", Kind: query.KindString},
		"book_id":        {Column: "book_id", Kind: query.KindInt},
		"status":         {Column: "status", Kind: query.KindString},
		"current_page":   {Column: "current_page", Kind: query.KindInt},
		"total_minutes":  {Column: "total_minutes", Kind: query.KindInt},
		"total_days":     {Column: "total_days", Kind: query.KindInt},
		"start_date":     {Column: "start_date", Kind: query.KindDate},
		"completed_date": {Column: "completed_date", Kind: query.KindDate},
		"created_at":     {Column: "created_at", Kind: query.KindTime},
		"updated_at":     {Column: "updated_at", Kind: query.KindTime},
	},
	DefaultSort: "created_at",
	TieBreaker:  "id",
}

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new aggregate. A second aggregate for the same owner and
// book is a Conflict.
func (r *Repository) Create(ctx context.Context, ub *entities.UserBook) error {
	return dberr.Translate("userbooks.Create", r.db.WithContext(ctx).Create(ub).Error)
}

func (r *Repository) FindByID(ctx context.Context, id string) (*entities.UserBook, error) {
	var ub entities.UserBook
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&ub).Error; err != nil {
		return nil, dberr.Translate("userbooks.FindByID", err)
	}
	return &ub, nil
}

func (r *Repository) FindByOwnerAndBook(ctx context.Context, ownerID, bookID uint) (*entities.UserBook, error) {
	var ub entities.UserBook
	err := r.db.WithContext(ctx).Where("owner_id = ? AND book_id = ?", ownerID, bookID).First(&ub).Error
	if err != nil {
		return nil, dberr.Translate("userbooks.FindByOwnerAndBook", err)
	}
	return &ub, nil
}

// Save upserts the aggregate by ID.
func (r *Repository) Save(ctx context.Context, ub *entities.UserBook) error {
	return dberr.Translate("userbooks.Save", r.db.WithContext(ctx).Save(ub).Error)
}

// Delete removes the aggregate together with its recordings.
func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_book_id = ?", id).Delete(&entities.BookRecording{}).Error; err != nil {
			return dberr.Translate("userbooks.Delete", err)
		}
		result := tx.Where("id = ?", id).Delete(&entities.UserBook{})
		if result.Error != nil {
			return dberr.Translate("userbooks.Delete", result.Error)
		}
		if result.RowsAffected == 0 {
			return apperr.NotFoundf("userbooks.Delete", "user book %s not found", id)
		}
		return nil
	})
}

// FindAll lists aggregates of every owner.
func (r *Repository) FindAll(ctx context.Context, q query.QueryBase) (query.Result[entities.UserBook], error) {
	return gormquery.FindAll[entities.UserBook](ctx, r.db, Schema, q)
}

// FindAllForOwner lists one owner's aggregates.
func (r *Repository) FindAllForOwner(ctx context.Context, ownerID uint, q query.QueryBase) (query.Result[entities.UserBook], error) {
	return gormquery.FindAll[entities.UserBook](ctx, r.db, Schema, q, gormquery.Where("owner_id = ?", ownerID))
}

// ListIDs returns the ID of every aggregate, oldest first.
func (r *Repository) ListIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&entities.UserBook{}).Order("created_at ASC, id ASC").Pluck("id", &ids).Error
	return ids, dberr.Translate("userbooks.ListIDs", err)
}
