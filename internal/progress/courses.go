package progress

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mrlokans/tracker/internal/apperr"
	"github.com/mrlokans/tracker/internal/entities"
	"github.com/mrlokans/tracker/internal/query"
)

// LogCourseActivityInput is one study submission.
type LogCourseActivityInput struct {
	UserCourseID string
	OwnerID      uint
	Date         time.Time
	Category     entities.RecordType
	Minutes      int
	Notes        *string
}

// CourseActivityResult reports what a submission changed.
type CourseActivityResult struct {
	Aggregate *entities.UserCourse      `json:"user_course"`
	Recording *entities.CourseRecording `json:"recording"`
	Merged    bool                      `json:"merged"`
	// NewDay is true when the submission was the first of its day.
	NewDay bool `json:"new_day"`
}

// StartCourse creates the course aggregate for (ownerID, courseID).
func (s *Service) StartCourse(ctx context.Context, ownerID, courseID uint) (*entities.UserCourse, error) {
	const op = "progress.StartCourse"

	if _, err := s.store.Courses().FindByID(ctx, courseID); err != nil {
		return nil, err
	}
	if _, err := s.store.UserCourses().FindByOwnerAndCourse(ctx, ownerID, courseID); err == nil {
		return nil, apperr.Conflictf(op, "course %d is already tracked", courseID)
	} else if !errors.Is(err, apperr.NotFound) {
		return nil, err
	}

	uc := entities.NewUserCourse(ownerID, courseID, s.clock.Now())
	if err := s.store.UserCourses().Create(ctx, uc); err != nil {
		return nil, err
	}

	s.auditor.LogTrackingStarted(ownerID, EntityUserCourse, uc.ID, courseID)
	s.logger(ctx).Info("course tracking started",
		zap.Uint("owner_id", ownerID), zap.Uint("course_id", courseID), zap.String("user_course_id", uc.ID))
	return uc, nil
}

// LogCourseActivity records study time in one category. One recording exists
// per day and category; a day counts towards TotalDays once, whatever the
// number of categories logged on it. Courses have no capacity and keep
// accepting activity after completion.
func (s *Service) LogCourseActivity(ctx context.Context, in LogCourseActivityInput) (*CourseActivityResult, error) {
	const op = "progress.LogCourseActivity"

	if !in.Category.Valid() {
		return nil, apperr.Validationf(op, "unknown record type %q", in.Category)
	}
	minutes, err := entities.NewMinutes(in.Minutes)
	if err != nil {
		return nil, err
	}
	if in.UserCourseID == "" {
		return nil, apperr.Validationf(op, "user course id is required")
	}
	day := s.activityDay(in.Date)
	notes := normalizeNotes(in.Notes)

	var result CourseActivityResult
	err = s.withLock(ctx, EntityUserCourse, in.UserCourseID, func(tx Store) error {
		uc, err := tx.UserCourses().FindByID(ctx, in.UserCourseID)
		if err != nil {
			return err
		}
		if err := owns(op, in.OwnerID, uc.OwnerID, in.UserCourseID); err != nil {
			return err
		}
		if _, err := tx.Courses().FindByID(ctx, uc.CourseID); err != nil {
			return err
		}
		now := s.clock.Now()

		existing, err := tx.CourseRecordings().FindAll(ctx, uc.ID, query.New(
			query.Where(query.Eq("date", day), query.Eq("category", string(in.Category))),
			query.SortBy("date", query.Desc),
			query.Limit(1),
		))
		if err != nil {
			return err
		}

		var rec *entities.CourseRecording
		if len(existing.Data) > 0 {
			rec = &existing.Data[0]
			rec.Merge(minutes, notes, now)
			result.Merged = true
		} else {
			sameDay, err := tx.CourseRecordings().FindAll(ctx, uc.ID, query.New(
				query.Where(query.Eq("date", day)),
				query.Limit(1),
			))
			if err != nil {
				return err
			}
			result.NewDay = sameDay.TotalCount == 0
			rec = entities.NewCourseRecording(uc.ID, day, in.Category, minutes, notes, now)
		}
		if err := tx.CourseRecordings().Save(ctx, rec); err != nil {
			return err
		}

		uc.ApplyActivity(entities.Activity{
			Date:     day,
			Minutes:  minutes,
			IsNewDay: result.NewDay,
			Mode:     entities.ActivityModeIncrease,
		}, now)
		if err := tx.UserCourses().Save(ctx, uc); err != nil {
			return err
		}

		result.Aggregate = uc
		result.Recording = rec
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc := result.Aggregate
	s.auditor.LogActivity(uc.OwnerID, EntityUserCourse, uc.ID,
		fmt.Sprintf("Studied %d minutes (%s)", minutes, in.Category),
		map[string]any{
			"date":     day.Format(time.DateOnly),
			"category": string(in.Category),
			"minutes":  minutes.Int(),
			"merged":   result.Merged,
		})
	s.logger(ctx).Debug("course activity logged",
		zap.String("user_course_id", uc.ID),
		zap.String("category", string(in.Category)),
		zap.Bool("merged", result.Merged))

	return &result, nil
}

// CompleteCourse marks a user course completed on date (today when zero).
// Completing an already completed course changes nothing.
func (s *Service) CompleteCourse(ctx context.Context, ownerID uint, userCourseID string, date time.Time) (*entities.UserCourse, error) {
	const op = "progress.CompleteCourse"
	day := s.activityDay(date)

	var (
		uc        *entities.UserCourse
		completed bool
	)
	err := s.withLock(ctx, EntityUserCourse, userCourseID, func(tx Store) error {
		found, err := tx.UserCourses().FindByID(ctx, userCourseID)
		if err != nil {
			return err
		}
		if err := owns(op, ownerID, found.OwnerID, userCourseID); err != nil {
			return err
		}
		uc = found
		if uc.IsCompleted() {
			return nil
		}
		uc.MarkCompleted(day, s.clock.Now())
		completed = true
		return tx.UserCourses().Save(ctx, uc)
	})
	if err != nil {
		return nil, err
	}

	if completed {
		s.auditor.LogCompletion(uc.OwnerID, EntityUserCourse, uc.ID, day.Format(time.DateOnly))
		s.logger(ctx).Info("course completed", zap.String("user_course_id", uc.ID))
	}
	return uc, nil
}

// GetUserCourse returns one of the owner's user courses.
func (s *Service) GetUserCourse(ctx context.Context, ownerID uint, id string) (*entities.UserCourse, error) {
	uc, err := s.store.UserCourses().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := owns("progress.GetUserCourse", ownerID, uc.OwnerID, id); err != nil {
		return nil, err
	}
	return uc, nil
}

// ListUserCourses lists the owner's user courses.
func (s *Service) ListUserCourses(ctx context.Context, ownerID uint, q query.QueryBase) (query.Result[entities.UserCourse], error) {
	return s.store.UserCourses().FindAllForOwner(ctx, ownerID, q)
}

// ListCourseRecordings lists the recordings of one user course, one row per
// day and category.
func (s *Service) ListCourseRecordings(ctx context.Context, ownerID uint, userCourseID string, q query.QueryBase) (query.Result[entities.CourseRecording], error) {
	if _, err := s.GetUserCourse(ctx, ownerID, userCourseID); err != nil {
		return query.Result[entities.CourseRecording]{}, err
	}
	return s.store.CourseRecordings().FindAll(ctx, userCourseID, q)
}
