// Package scheduler runs the periodic maintenance jobs. Jobs only enqueue
// tasks; the work itself happens on the task queue so a slow sweep never
// blocks the cron goroutine.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mrlokans/tracker/internal/tasks"
)

// AuditCleanupSchedule prunes the audit trail nightly at 04:00.
const AuditCleanupSchedule = "0 4 * * *"

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// Enqueuer saves tasks on the queue.
type Enqueuer interface {
	Enqueue(ctx context.Context, tasks ...backlite.Task) ([]string, error)
}

// Config selects what the scheduler runs.
type Config struct {
	// ReconcileSchedule is a five-field cron expression. Empty disables the
	// reconcile job.
	ReconcileSchedule string
	// AuditRetentionDays enables the audit cleanup job when positive.
	AuditRetentionDays int
}

// ValidateSchedule reports whether schedule is a valid five-field cron expression.
func ValidateSchedule(schedule string) error {
	if _, err := parser.Parse(schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", schedule, err)
	}
	return nil
}

// MaintenanceScheduler enqueues the reconcile sweep and the audit cleanup.
type MaintenanceScheduler struct {
	queue Enqueuer
	cfg   Config
	log   *zap.Logger

	cron             *cron.Cron
	reconcileEntryID cron.EntryID
	mu               sync.RWMutex
	isRunning        bool
	cancelFunc       context.CancelFunc
}

// NewMaintenanceScheduler creates a new scheduler instance.
func NewMaintenanceScheduler(queue Enqueuer, cfg Config, log *zap.Logger) *MaintenanceScheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &MaintenanceScheduler{
		queue: queue,
		cfg:   cfg,
		log:   log.Named("scheduler"),
		cron:  cron.New(cron.WithParser(parser)),
	}
}

// Start registers the configured jobs and starts the cron loop. The scheduler
// stops when ctx is cancelled.
func (s *MaintenanceScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if s.cfg.ReconcileSchedule != "" {
		if err := ValidateSchedule(s.cfg.ReconcileSchedule); err != nil {
			return err
		}
		entryID, err := s.cron.AddFunc(s.cfg.ReconcileSchedule, func() {
			s.enqueue(tasks.ReconcileAllTask{Reason: "schedule"})
		})
		if err != nil {
			return fmt.Errorf("failed to schedule reconcile job: %w", err)
		}
		s.reconcileEntryID = entryID
	}

	if s.cfg.AuditRetentionDays > 0 {
		if _, err := s.cron.AddFunc(AuditCleanupSchedule, func() {
			s.enqueue(tasks.CleanupAuditEventsTask{RetentionDays: s.cfg.AuditRetentionDays})
		}); err != nil {
			return fmt.Errorf("failed to schedule audit cleanup job: %w", err)
		}
	}

	if len(s.cron.Entries()) == 0 {
		s.log.Info("no maintenance jobs enabled")
		return nil
	}

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	fields := []zap.Field{zap.Int("jobs", len(s.cron.Entries()))}
	if next := s.nextRunLocked(); next != nil {
		fields = append(fields, zap.Time("next_reconcile", *next))
	}
	s.log.Info("maintenance scheduler started", fields...)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop waits for running jobs and stops the cron loop.
func (s *MaintenanceScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	done := s.cron.Stop()
	<-done.Done()

	if s.cancelFunc != nil {
		s.cancelFunc()
	}
	s.isRunning = false
	s.cancelFunc = nil

	s.log.Info("maintenance scheduler stopped")
}

// RunReconcileNow enqueues a full reconcile immediately and returns the task ID.
func (s *MaintenanceScheduler) RunReconcileNow(ctx context.Context, reason string) (string, error) {
	ids, err := s.queue.Enqueue(ctx, tasks.ReconcileAllTask{Reason: reason})
	if err != nil {
		return "", err
	}
	return ids[0], nil
}

// IsRunning returns whether the scheduler is active.
func (s *MaintenanceScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextReconcile returns when the next scheduled reconcile will run.
func (s *MaintenanceScheduler) NextReconcile() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.isRunning {
		return nil
	}
	return s.nextRunLocked()
}

func (s *MaintenanceScheduler) nextRunLocked() *time.Time {
	if s.reconcileEntryID == 0 {
		return nil
	}
	entry := s.cron.Entry(s.reconcileEntryID)
	if !entry.Valid() || entry.Next.IsZero() {
		return nil
	}
	t := entry.Next
	return &t
}

func (s *MaintenanceScheduler) enqueue(task backlite.Task) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ids, err := s.queue.Enqueue(ctx, task)
	if err != nil {
		s.log.Error("failed to enqueue maintenance task", zap.String("queue", task.Config().Name), zap.Error(err))
		return
	}
	s.log.Info("maintenance task enqueued", zap.String("queue", task.Config().Name), zap.Strings("ids", ids))
}
