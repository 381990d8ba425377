// Package audit records the progress audit trail. Writes are asynchronous so
// a slow or failing audit store never blocks an activity submission.
package audit

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mrlokans/tracker/internal/clock"
	"github.com/mrlokans/tracker/internal/database/audit"
	"github.com/mrlokans/tracker/internal/entities"
	"github.com/mrlokans/tracker/internal/query"
)

const maxMessageLen = 500

// Service provides high-level audit logging functionality.
type Service struct {
	repo  *audit.Repository
	clock clock.Clock
	log   *zap.Logger
	wg    sync.WaitGroup
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository, clk clock.Clock, log *zap.Logger) *Service {
	if clk == nil {
		clk = clock.Real{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, clock: clk, log: log}
}

// Log records an audit event synchronously.
func (s *Service) Log(ctx context.Context, event *entities.AuditEvent) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = s.clock.Now()
	}
	return s.repo.LogEvent(ctx, event)
}

// LogAsync records an audit event in the background.
func (s *Service) LogAsync(event *entities.AuditEvent) {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = s.clock.Now()
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.repo.LogEvent(context.Background(), event); err != nil {
			s.log.Warn("failed to log audit event",
				zap.String("action", event.Action),
				zap.String("entity_id", event.EntityID),
				zap.Error(err))
		}
	}()
}

// Wait blocks until every pending asynchronous write has finished.
func (s *Service) Wait() {
	s.wg.Wait()
}

// LogTrackingStarted records that a user started tracking a book or course.
func (s *Service) LogTrackingStarted(userID uint, entityType, entityID string, targetID uint) {
	event := &entities.AuditEvent{
		UserID:      userID,
		EventType:   entities.AuditEventTrackingStarted,
		Action:      entityType + "_start",
		Description: "Started tracking " + entityType,
		EntityType:  entityType,
		EntityID:    entityID,
		Metadata:    encodeMetadata(map[string]any{"target_id": targetID}),
		Status:      entities.AuditStatusSuccess,
	}
	s.LogAsync(event)
}

// LogActivity records an accepted activity submission.
func (s *Service) LogActivity(userID uint, entityType, entityID, description string, metadata map[string]any) {
	event := &entities.AuditEvent{
		UserID:      userID,
		EventType:   entities.AuditEventActivity,
		Action:      entityType + "_activity",
		Description: truncate(description, maxMessageLen),
		EntityType:  entityType,
		EntityID:    entityID,
		Metadata:    encodeMetadata(metadata),
		Status:      entities.AuditStatusSuccess,
	}
	s.LogAsync(event)
}

// LogCompletion records a transition to COMPLETED.
func (s *Service) LogCompletion(userID uint, entityType, entityID, completedOn string) {
	event := &entities.AuditEvent{
		UserID:      userID,
		EventType:   entities.AuditEventCompleted,
		Action:      entityType + "_completed",
		Description: "Completed on " + completedOn,
		EntityType:  entityType,
		EntityID:    entityID,
		Status:      entities.AuditStatusSuccess,
	}
	s.LogAsync(event)
}

// LogRebuild records a reconciliation of an aggregate from its recordings.
func (s *Service) LogRebuild(userID uint, entityType, entityID string, err error) {
	event := &entities.AuditEvent{
		UserID:      userID,
		EventType:   entities.AuditEventRebuild,
		Action:      entityType + "_rebuild",
		Description: "Rebuilt " + entityType + " from recordings",
		EntityType:  entityType,
		EntityID:    entityID,
		Status:      entities.AuditStatusSuccess,
	}
	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), maxMessageLen)
	}
	s.LogAsync(event)
}

// FindAll lists a user's audit events.
func (s *Service) FindAll(ctx context.Context, userID uint, q query.QueryBase) (query.Result[entities.AuditEvent], error) {
	return s.repo.FindAll(ctx, userID, q)
}

// DeleteOldEvents removes events older than the specified duration.
func (s *Service) DeleteOldEvents(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := s.clock.Now().Add(-retention)
	deleted, err := s.repo.DeleteOldEvents(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	s.log.Info("audit events pruned", zap.Int64("deleted", deleted), zap.Time("cutoff", cutoff))
	return deleted, nil
}

func encodeMetadata(metadata map[string]any) string {
	if len(metadata) == 0 {
		return ""
	}
	b, err := json.Marshal(metadata)
	if err != nil {
		return ""
	}
	return string(b)
}

// truncate shortens a string to max length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
