// Package progress turns activity submissions into durable reading and course
// progress, and builds the history views over it.
//
// Every mutation of an aggregate holds that aggregate's lock and runs in one
// transaction, so concurrent submissions for the same day cannot create
// duplicate recordings or lose updates.
package progress

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mrlokans/tracker/internal/apperr"
	"github.com/mrlokans/tracker/internal/clock"
	"github.com/mrlokans/tracker/internal/keylock"
	"github.com/mrlokans/tracker/internal/logger"
)

const (
	EntityUserBook   = "user_book"
	EntityUserCourse = "user_course"
)

// Service implements the progress use cases.
type Service struct {
	store   Store
	locker  Locker
	clock   clock.Clock
	auditor Auditor
	log     *zap.Logger
}

// NewService wires the service. A nil locker falls back to an in-process
// keyed mutex, a nil clock to the system clock and a nil logger to a no-op.
func NewService(store Store, locker Locker, clk clock.Clock, log *zap.Logger) *Service {
	if locker == nil {
		locker = keylock.NewMemory()
	}
	if clk == nil {
		clk = clock.Real{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		store:   store,
		locker:  locker,
		clock:   clk,
		auditor: nopAuditor{},
		log:     log,
	}
}

// SetAuditor enables the audit trail.
func (s *Service) SetAuditor(a Auditor) {
	if a == nil {
		a = nopAuditor{}
	}
	s.auditor = a
}

func (s *Service) logger(ctx context.Context) *zap.Logger {
	return logger.WithRequestID(ctx, s.log)
}

// withLock runs fn inside the aggregate's lock and a transaction.
func (s *Service) withLock(ctx context.Context, entity, id string, fn func(tx Store) error) error {
	unlock, err := s.locker.Lock(ctx, entity+":"+id)
	if err != nil {
		return err
	}
	defer unlock()
	return s.store.WithinTx(ctx, fn)
}

// activityDay resolves the calendar day of a submission, defaulting to today.
func (s *Service) activityDay(date time.Time) time.Time {
	if date.IsZero() {
		return clock.Day(s.clock.Now())
	}
	return clock.Day(date)
}

// owns hides aggregates of other users behind NotFound. ownerID 0 is used by
// background jobs and skips the check.
func owns(op string, ownerID, aggregateOwner uint, id string) error {
	if ownerID != 0 && ownerID != aggregateOwner {
		return apperr.NotFoundf(op, "%s not found", id)
	}
	return nil
}

func normalizeNotes(notes *string) *string {
	if notes == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*notes)
	return &trimmed
}

type nopAuditor struct{}

func (nopAuditor) LogActivity(uint, string, string, string, map[string]any) {}
func (nopAuditor) LogCompletion(uint, string, string, string)               {}
func (nopAuditor) LogTrackingStarted(uint, string, string, uint)            {}
func (nopAuditor) LogRebuild(uint, string, string, error)                   {}
