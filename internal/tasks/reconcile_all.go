package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/mikestefanello/backlite"
	"go.uber.org/zap"

	"github.com/mrlokans/tracker/internal/progress"
)

// ReconcileAllTask rebuilds every user book and user course. One failing
// aggregate does not stop the sweep; the task fails at the end instead so
// the whole sweep is retried.
type ReconcileAllTask struct {
	// Reason is recorded in the logs, e.g. "schedule" or "admin".
	Reason string `json:"reason"`
}

// Config returns the queue configuration for full reconcile tasks.
func (t ReconcileAllTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "reconcile_all",
		MaxAttempts: 1,
		Backoff:     5 * time.Minute,
		Timeout:     60 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   7 * 24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// ReconcileSummary counts the outcome of a sweep.
type ReconcileSummary struct {
	Checked int
	Changed int
	Failed  int
}

// Reconcile rebuilds every aggregate known to r.
func Reconcile(ctx context.Context, r Rebuilder, log *zap.Logger) (ReconcileSummary, error) {
	if log == nil {
		log = zap.NewNop()
	}
	var summary ReconcileSummary

	userBooks, userCourses, err := r.AggregateIDs(ctx)
	if err != nil {
		return summary, fmt.Errorf("list aggregates: %w", err)
	}

	sweep := func(entity string, ids []string) error {
		for _, id := range ids {
			if err := ctx.Err(); err != nil {
				return err
			}
			summary.Checked++
			result, err := rebuild(ctx, r, entity, id)
			if err != nil {
				summary.Failed++
				log.Warn("reconcile failed", zap.String("entity", entity), zap.String("id", id), zap.Error(err))
				continue
			}
			if result.Changed {
				summary.Changed++
			}
		}
		return nil
	}
	if err := sweep(progress.EntityUserBook, userBooks); err != nil {
		return summary, err
	}
	if err := sweep(progress.EntityUserCourse, userCourses); err != nil {
		return summary, err
	}

	if summary.Failed > 0 {
		return summary, fmt.Errorf("%d of %d aggregates failed to rebuild", summary.Failed, summary.Checked)
	}
	return summary, nil
}

// ReconcileAllProcessor creates a processor function for ReconcileAllTask.
func ReconcileAllProcessor(rebuilder Rebuilder, log *zap.Logger) backlite.QueueProcessor[ReconcileAllTask] {
	if log == nil {
		log = zap.NewNop()
	}
	return func(ctx context.Context, task ReconcileAllTask) error {
		if rebuilder == nil {
			return fmt.Errorf("progress rebuilder not configured")
		}
		summary, err := Reconcile(ctx, rebuilder, log)
		log.Info("reconcile finished",
			zap.String("reason", task.Reason),
			zap.Int("checked", summary.Checked),
			zap.Int("changed", summary.Changed),
			zap.Int("failed", summary.Failed))
		return err
	}
}

// NewReconcileAllQueue creates a backlite queue for full reconcile tasks.
func NewReconcileAllQueue(rebuilder Rebuilder, log *zap.Logger) backlite.Queue {
	return backlite.NewQueue(ReconcileAllProcessor(rebuilder, log))
}
