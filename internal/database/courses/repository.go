// Package courses provides database operations for learning targets.
package courses

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
	Name: "courses",
	Fields: map[string]query.Field{
		"id":            {Column: "id", Kind: query.KindInt},
		"title":         {Column: "title", Kind: query.KindString},
		"provider":      {Column: "provider", Kind: query.KindString},
		"total_minutes": {Column: "total_minutes", Kind: query.KindInt},
		"created_at":    {Column: "created_at", Kind: query.KindTime},
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

func (r *Repository) Create(ctx context.Context, course *entities.Course) error {
	if course.TotalMinutes < 0 {
		return apperr.Validationf("courses.Create", "total minutes must not be negative, got %d", course.TotalMinutes)
	}
	return dberr.Translate("courses.Create", r.db.WithContext(ctx).Create(course).Error)
}

func (r *Repository) FindByID(ctx context.Context, id uint) (*entities.Course, error) {
	var course entities.Course
	if err := r.db.WithContext(ctx).First(&course, id).Error; err != nil {
		return nil, dberr.Translate("courses.FindByID", err)
	}
	return &course, nil
}

func (r *Repository) Save(ctx context.Context, course *entities.Course) error {
	return dberr.Translate("courses.Save", r.db.WithContext(ctx).Save(course).Error)
}

func (r *Repository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entities.Course{}, id)
	if result.Error != nil {
		return dberr.Translate("courses.Delete", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFoundf("courses.Delete", "course %d not found", id)
	}
	return nil
}

func (r *Repository) FindAll(ctx context.Context, q query.QueryBase) (query.Result[entities.Course], error) {
	return gormquery.FindAll[entities.Course](ctx, r.db, Schema, q)
}
