// Package usercourses persists course progress aggregates.
//
// # Usage
//
//	repo := usercourses.NewRepository(db)
//	uc, err := repo.FindByID(ctx, id)
//	page, err := repo.FindAllForOwner(ctx, ownerID, query.New(query.Where(query.Eq("status", "COMPLETED"))))
package usercourses

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
	Name: "user_courses",
	Fields: map[string]query.Field{
		"id":             {Column: "id", Kind: query.KindString},
		"course_id":      {Column: "course_id", Kind: query.KindInt},
		"status":         {Column: "status", Kind: query.KindString},
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
// course is a Conflict.
func (r *Repository) Create(ctx context.Context, uc *entities.UserCourse) error {
	return dberr.Translate("usercourses.Create", r.db.WithContext(ctx).Create(uc).Error)
}

func (r *Repository) FindByID(ctx context.Context, id string) (*entities.UserCourse, error) {
	var uc entities.UserCourse
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&uc).Error; err != nil {
		return nil, dberr.Translate("usercourses.FindByID", err)
	}
	return &uc, nil
}

func (r *Repository) FindByOwnerAndCourse(ctx context.Context, ownerID, courseID uint) (*entities.UserCourse, error) {
	var uc entities.UserCourse
	err := r.db.WithContext(ctx).Where("owner_id = ? AND course_id = ?", ownerID, courseID).First(&uc).Error
	if err != nil {
		return nil, dberr.Translate("usercourses.FindByOwnerAndCourse", err)
	}
	return &uc, nil
}

// Save upserts the aggregate by ID.
func (r *Repository) Save(ctx context.Context, uc *entities.UserCourse) error {
	return dberr.Translate("usercourses.Save", r.db.WithContext(ctx).Save(uc).Error)
}

// Delete removes the aggregate together with its recordings.
func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_course_id = ?", id).Delete(&entities.CourseRecording{}).Error; err != nil {
			return dberr.Translate("usercourses.Delete", err)
		}
		result := tx.Where("id = ?", id).Delete(&entities.UserCourse{})
		if result.Error != nil {
			return dberr.Translate("usercourses.Delete", result.Error)
		}
		if result.RowsAffected == 0 {
			return apperr.NotFoundf("usercourses.Delete", "user course %s not found", id)
		}
		return nil
	})
}

// FindAll lists aggregates of every owner.
func (r *Repository) FindAll(ctx context.Context, q query.QueryBase) (query.Result[entities.UserCourse], error) {
	return gormquery.FindAll[entities.UserCourse](ctx, r.db, Schema, q)
}

// FindAllForOwner lists one owner's aggregates.
func (r *Repository) FindAllForOwner(ctx context.Context, ownerID uint, q query.QueryBase) (query.Result[entities.UserCourse], error) {
	return gormquery.FindAll[entities.UserCourse](ctx, r.db, Schema, q, gormquery.Where("owner_id = ?", ownerID))
}

// ListIDs returns the ID of every aggregate, oldest first.
func (r *Repository) ListIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&entities.UserCourse{}).Order("created_at ASC, id ASC").Pluck("id", &ids).Error
	return ids, dberr.Translate("usercourses.ListIDs", err)
}
