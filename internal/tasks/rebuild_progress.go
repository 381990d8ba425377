package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mikestefanello/backlite"
	"go.uber.org/zap"

	"github.com/mrlokans/tracker/internal/apperr"
	"github.com/mrlokans/tracker/internal/progress"
)

// Rebuilder recomputes progress aggregates from their recordings.
type Rebuilder interface {
	RebuildUserBook(ctx context.Context, userBookID string) (progress.RebuildResult, error)
	RebuildUserCourse(ctx context.Context, userCourseID string) (progress.RebuildResult, error)
	AggregateIDs(ctx context.Context) (userBooks, userCourses []string, err error)
}

// RebuildProgressTask replays the recordings of one aggregate.
type RebuildProgressTask struct {
	// Entity is progress.EntityUserBook or progress.EntityUserCourse.
	Entity string `json:"entity"`
	ID     string `json:"id"`
}

// Config returns the queue configuration for rebuild tasks.
func (t RebuildProgressTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "rebuild_progress",
		MaxAttempts: 3,
		Backoff:     1 * time.Minute,
		Timeout:     1 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// RebuildProgressProcessor creates a processor function for RebuildProgressTask.
// An aggregate deleted since the task was enqueued is skipped, not retried.
func RebuildProgressProcessor(rebuilder Rebuilder, log *zap.Logger) backlite.QueueProcessor[RebuildProgressTask] {
	if log == nil {
		log = zap.NewNop()
	}
	return func(ctx context.Context, task RebuildProgressTask) error {
		if rebuilder == nil {
			return fmt.Errorf("progress rebuilder not configured")
		}

		result, err := rebuild(ctx, rebuilder, task.Entity, task.ID)
		if errors.Is(err, apperr.NotFound) {
			log.Info("rebuild skipped, aggregate is gone", zap.String("entity", task.Entity), zap.String("id", task.ID))
			return nil
		}
		if err != nil {
			return fmt.Errorf("rebuild %s %s: %w", task.Entity, task.ID, err)
		}

		log.Debug("aggregate rebuilt",
			zap.String("entity", task.Entity), zap.String("id", task.ID), zap.Bool("changed", result.Changed))
		return nil
	}
}

func rebuild(ctx context.Context, r Rebuilder, entity, id string) (progress.RebuildResult, error) {
	switch entity {
	case progress.EntityUserBook:
		return r.RebuildUserBook(ctx, id)
	case progress.EntityUserCourse:
		return r.RebuildUserCourse(ctx, id)
	default:
		return progress.RebuildResult{}, apperr.Validationf("tasks.rebuild", "unknown entity %q", entity)
	}
}

// NewRebuildProgressQueue creates a backlite queue for rebuild tasks.
func NewRebuildProgressQueue(rebuilder Rebuilder, log *zap.Logger) backlite.Queue {
	return backlite.NewQueue(RebuildProgressProcessor(rebuilder, log))
}
