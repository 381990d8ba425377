package progress

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mrlokans/tracker/internal/clock"
	"github.com/mrlokans/tracker/internal/entities"
)

// RebuildResult reports whether replaying the recordings changed the
// aggregate.
type RebuildResult struct {
	ID      string `json:"id"`
	Changed bool   `json:"changed"`
}

// RebuildUserBook recomputes a user book from its recordings and stores the
// totals with SET semantics. It repairs aggregates left stale by a failed
// write and is safe to run at any time.
func (s *Service) RebuildUserBook(ctx context.Context, userBookID string) (RebuildResult, error) {
	result := RebuildResult{ID: userBookID}
	var ownerID uint

	err := s.withLock(ctx, EntityUserBook, userBookID, func(tx Store) error {
		ub, err := tx.UserBooks().FindByID(ctx, userBookID)
		if err != nil {
			return err
		}
		ownerID = ub.OwnerID
		book, err := tx.Books().FindByID(ctx, ub.BookID)
		if err != nil {
			return err
		}
		recs, err := tx.BookRecordings().ListByUserBook(ctx, ub.ID)
		if err != nil {
			return err
		}

		var (
			pages   entities.Pages
			minutes entities.Minutes
			first   time.Time
			last    time.Time
		)
		days := make(map[time.Time]struct{})
		for _, r := range recs {
			day := clock.Day(r.Date)
			pages = pages.Add(r.Pages)
			minutes = minutes.Add(r.Minutes)
			days[day] = struct{}{}
			if first.IsZero() || day.Before(first) {
				first = day
			}
			if day.After(last) {
				last = day
			}
		}
		pages = pages.Min(book.TotalPages)

		before := snapshotOf(ub.Progress, ub.CurrentPage)
		now := s.clock.Now()
		ub.ApplyActivity(entities.Activity{
			Date:    first,
			Pages:   pages,
			Minutes: minutes,
			Mode:    entities.ActivityModeSet,
			Days:    len(days),
		}, now)
		if ub.CurrentPage >= book.TotalPages && !last.IsZero() {
			ub.MarkCompleted(last, now)
		}

		if snapshotOf(ub.Progress, ub.CurrentPage) == before {
			return nil
		}
		result.Changed = true
		return tx.UserBooks().Save(ctx, ub)
	})

	s.auditor.LogRebuild(ownerID, EntityUserBook, userBookID, err)
	if err != nil {
		return result, err
	}
	if result.Changed {
		s.logger(ctx).Info("user book rebuilt", zap.String("user_book_id", userBookID))
	}
	return result, nil
}

// RebuildUserCourse recomputes a user course from its recordings. Completion
// is left alone since courses complete explicitly.
func (s *Service) RebuildUserCourse(ctx context.Context, userCourseID string) (RebuildResult, error) {
	result := RebuildResult{ID: userCourseID}
	var ownerID uint

	err := s.withLock(ctx, EntityUserCourse, userCourseID, func(tx Store) error {
		uc, err := tx.UserCourses().FindByID(ctx, userCourseID)
		if err != nil {
			return err
		}
		ownerID = uc.OwnerID
		recs, err := tx.CourseRecordings().ListByUserCourse(ctx, uc.ID)
		if err != nil {
			return err
		}

		var (
			minutes entities.Minutes
			first   time.Time
		)
		days := make(map[time.Time]struct{})
		for _, r := range recs {
			day := clock.Day(r.Date)
			minutes = minutes.Add(r.Minutes)
			days[day] = struct{}{}
			if first.IsZero() || day.Before(first) {
				first = day
			}
		}

		before := snapshotOf(uc.Progress, 0)
		uc.ApplyActivity(entities.Activity{
			Date:    first,
			Minutes: minutes,
			Mode:    entities.ActivityModeSet,
			Days:    len(days),
		}, s.clock.Now())

		if snapshotOf(uc.Progress, 0) == before {
			return nil
		}
		result.Changed = true
		return tx.UserCourses().Save(ctx, uc)
	})

	s.auditor.LogRebuild(ownerID, EntityUserCourse, userCourseID, err)
	if err != nil {
		return result, err
	}
	if result.Changed {
		s.logger(ctx).Info("user course rebuilt", zap.String("user_course_id", userCourseID))
	}
	return result, nil
}

// AggregateIDs lists every user book and user course, for reconciliation.
func (s *Service) AggregateIDs(ctx context.Context) (userBooks, userCourses []string, err error) {
	if userBooks, err = s.store.UserBooks().ListIDs(ctx); err != nil {
		return nil, nil, err
	}
	if userCourses, err = s.store.UserCourses().ListIDs(ctx); err != nil {
		return nil, nil, err
	}
	return userBooks, userCourses, nil
}

// snapshot is the comparable part of an aggregate.
type snapshot struct {
	page      entities.Pages
	minutes   entities.Minutes
	days      int
	status    entities.ProgressStatus
	start     time.Time
	completed time.Time
}

func snapshotOf(p entities.Progress, page entities.Pages) snapshot {
	s := snapshot{page: page, minutes: p.TotalMinutes, days: p.TotalDays, status: p.Status}
	if p.StartDate != nil {
		s.start = p.StartDate.UTC()
	}
	if p.CompletedDate != nil {
		s.completed = p.CompletedDate.UTC()
	}
	return s
}
