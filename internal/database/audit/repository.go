// Package audit persists the progress audit trail.
package audit

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/tracker/internal/database/dberr"
	"github.com/mrlokans/tracker/internal/database/gormquery"
	"github.com/mrlokans/tracker/internal/entities"
	"github.com/mrlokans/tracker/internal/query"
)

var Schema = query.Schema{
	Name: "audit_events",
	Fields: map[string]query.Field{
		"event_type":  {Column: "event_type", Kind: query.KindString},
		"action":      {Column: "action", Kind: query.KindString},
		"entity_type": {Column: "entity_type", Kind: query.KindString},
		"entity_id":   {Column: "entity_id", Kind: query.KindString},
		"status":      {Column: "status", Kind: query.KindString},
		"created_at":  {Column: "created_at", Kind: query.KindTime},
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

// LogEvent saves an audit event to the database.
func (r *Repository) LogEvent(ctx context.Context, event *entities.AuditEvent) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	return dberr.Translate("audit.LogEvent", r.db.WithContext(ctx).Create(event).Error)
}

// FindAll lists a user's audit events, most recent first by default.
func (r *Repository) FindAll(ctx context.Context, userID uint, q query.QueryBase) (query.Result[entities.AuditEvent], error) {
	return gormquery.FindAll[entities.AuditEvent](ctx, r.db, Schema, q, gormquery.Where("user_id = ?", userID))
}

// DeleteOldEvents removes audit events older than the specified time.
// Returns the number of deleted events.
func (r *Repository) DeleteOldEvents(ctx context.Context, olderThan time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("created_at < ?", olderThan).Delete(&entities.AuditEvent{})
	return result.RowsAffected, dberr.Translate("audit.DeleteOldEvents", result.Error)
}
