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

// LogBookActivityInput is one reading submission.
type LogBookActivityInput struct {
	UserBookID string
	OwnerID    uint
	// Date is the day the reading happened; zero means today.
	Date    time.Time
	Pages   int
	Minutes int
	Notes   *string
}

// BookActivityResult reports what a submission changed.
type BookActivityResult struct {
	Aggregate *entities.UserBook      `json:"user_book"`
	Recording *entities.BookRecording `json:"recording"`
	// ActualDelta is the requested page delta after clamping to the pages left.
	ActualDelta entities.Pages `json:"actual_delta"`
	// Merged is true when the submission was added to an existing recording.
	Merged bool `json:"merged"`
	// Completed is true when this submission finished the book.
	Completed bool `json:"completed"`
}

// StartBook creates the reading aggregate for (ownerID, bookID).
func (s *Service) StartBook(ctx context.Context, ownerID, bookID uint) (*entities.UserBook, error) {
	const op = "progress.StartBook"

	if _, err := s.store.Books().FindByID(ctx, bookID); err != nil {
		return nil, err
	}
	if _, err := s.store.UserBooks().FindByOwnerAndBook(ctx, ownerID, bookID); err == nil {
		return nil, apperr.Conflictf(op, "book %d is already tracked", bookID)
	} else if !errors.Is(err, apperr.NotFound) {
		return nil, err
	}

	ub := entities.NewUserBook(ownerID, bookID, s.clock.Now())
	if err := s.store.UserBooks().Create(ctx, ub); err != nil {
		return nil, err
	}

	s.auditor.LogTrackingStarted(ownerID, EntityUserBook, ub.ID, bookID)
	s.logger(ctx).Info("book tracking started",
		zap.Uint("owner_id", ownerID), zap.Uint("book_id", bookID), zap.String("user_book_id", ub.ID))
	return ub, nil
}

// LogBookActivity records reading against a user book. Pages beyond the end
// of the book are clamped away; the book completes once the current page
// reaches its total. Submissions for a day that already has a recording are
// merged into it.
func (s *Service) LogBookActivity(ctx context.Context, in LogBookActivityInput) (*BookActivityResult, error) {
	const op = "progress.LogBookActivity"

	pages, err := entities.NewPages(in.Pages)
	if err != nil {
		return nil, err
	}
	minutes, err := entities.NewMinutes(in.Minutes)
	if err != nil {
		return nil, err
	}
	if in.UserBookID == "" {
		return nil, apperr.Validationf(op, "user book id is required")
	}
	day := s.activityDay(in.Date)
	notes := normalizeNotes(in.Notes)

	var result BookActivityResult
	err = s.withLock(ctx, EntityUserBook, in.UserBookID, func(tx Store) error {
		ub, err := tx.UserBooks().FindByID(ctx, in.UserBookID)
		if err != nil {
			return err
		}
		if err := owns(op, in.OwnerID, ub.OwnerID, in.UserBookID); err != nil {
			return err
		}
		book, err := tx.Books().FindByID(ctx, ub.BookID)
		if err != nil {
			return err
		}
		if ub.IsCompleted() {
			return apperr.Conflictf(op, "user book %s is already completed", ub.ID)
		}

		actual := pages.Min(ub.CurrentPage.Remaining(book.TotalPages))
		now := s.clock.Now()

		existing, err := tx.BookRecordings().FindAll(ctx, ub.ID, query.New(
			query.Where(query.Eq("date", day)),
			query.SortBy("date", query.Desc),
			query.Limit(1),
		))
		if err != nil {
			return err
		}

		var rec *entities.BookRecording
		if len(existing.Data) > 0 {
			rec = &existing.Data[0]
			rec.Merge(actual, minutes, notes, now)
			result.Merged = true
		} else {
			rec = entities.NewBookRecording(ub.ID, day, actual, minutes, notes, now)
		}
		if err := tx.BookRecordings().Save(ctx, rec); err != nil {
			return err
		}

		ub.ApplyActivity(entities.Activity{
			Date:     day,
			Pages:    actual,
			Minutes:  minutes,
			IsNewDay: !result.Merged,
			Mode:     entities.ActivityModeIncrease,
		}, now)
		if ub.CurrentPage >= book.TotalPages {
			ub.MarkCompleted(day, now)
			result.Completed = true
		}
		if err := tx.UserBooks().Save(ctx, ub); err != nil {
			return err
		}

		result.Aggregate = ub
		result.Recording = rec
		result.ActualDelta = actual
		return nil
	})
	if err != nil {
		return nil, err
	}

	ub := result.Aggregate
	s.auditor.LogActivity(ub.OwnerID, EntityUserBook, ub.ID,
		fmt.Sprintf("Read %d pages in %d minutes", result.ActualDelta, minutes),
		map[string]any{
			"date":            day.Format(time.DateOnly),
			"requested_pages": pages.Int(),
			"actual_pages":    result.ActualDelta.Int(),
			"minutes":         minutes.Int(),
			"merged":          result.Merged,
		})
	if result.Completed {
		s.auditor.LogCompletion(ub.OwnerID, EntityUserBook, ub.ID, day.Format(time.DateOnly))
	}
	s.logger(ctx).Debug("book activity logged",
		zap.String("user_book_id", ub.ID),
		zap.Int("actual_pages", result.ActualDelta.Int()),
		zap.Bool("merged", result.Merged),
		zap.Bool("completed", result.Completed))

	return &result, nil
}

// GetUserBook returns one of the owner's user books.
func (s *Service) GetUserBook(ctx context.Context, ownerID uint, id string) (*entities.UserBook, error) {
	ub, err := s.store.UserBooks().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := owns("progress.GetUserBook", ownerID, ub.OwnerID, id); err != nil {
		return nil, err
	}
	return ub, nil
}

// ListUserBooks lists the owner's user books.
func (s *Service) ListUserBooks(ctx context.Context, ownerID uint, q query.QueryBase) (query.Result[entities.UserBook], error) {
	return s.store.UserBooks().FindAllForOwner(ctx, ownerID, q)
}

// ListBookRecordings lists the recordings of one user book, one row per day.
func (s *Service) ListBookRecordings(ctx context.Context, ownerID uint, userBookID string, q query.QueryBase) (query.Result[entities.BookRecording], error) {
	if _, err := s.GetUserBook(ctx, ownerID, userBookID); err != nil {
		return query.Result[entities.BookRecording]{}, err
	}
	return s.store.BookRecordings().FindAll(ctx, userBookID, q)
}
