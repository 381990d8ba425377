package progress

import (
	"context"
	"time"

	"github.com/mrlokans/tracker/internal/apperr"
	"github.com/mrlokans/tracker/internal/clock"
	"github.com/mrlokans/tracker/internal/entities"
	"github.com/mrlokans/tracker/internal/query"
)

// WindowStats sums an owner's recordings between two days, both inclusive.
type WindowStats struct {
	From       time.Time        `json:"from"`
	To         time.Time        `json:"to"`
	Pages      entities.Pages   `json:"pages"`
	Minutes    entities.Minutes `json:"minutes"`
	ActiveDays int              `json:"active_days"`
	Recordings int64            `json:"recordings"`
	// ByCategory is only filled for courses.
	ByCategory map[entities.RecordType]entities.Minutes `json:"by_category,omitempty"`
}

func window(op string, from, to time.Time) (time.Time, time.Time, error) {
	if from.IsZero() || to.IsZero() {
		return time.Time{}, time.Time{}, apperr.Validationf(op, "from and to are required")
	}
	from, to = clock.Day(from), clock.Day(to)
	if to.Before(from) {
		return time.Time{}, time.Time{}, apperr.Validationf(op, "from %s is after to %s", from.Format(time.DateOnly), to.Format(time.DateOnly))
	}
	return from, to, nil
}

// BookStats reports an owner's reading between from and to.
func (s *Service) BookStats(ctx context.Context, ownerID uint, from, to time.Time) (WindowStats, error) {
	from, to, err := window("progress.BookStats", from, to)
	if err != nil {
		return WindowStats{}, err
	}
	stats := WindowStats{From: from, To: to}
	days := make(map[time.Time]struct{})

	base := query.New(
		query.Where(query.Between("date", from, to)),
		query.SortBy("date", query.Asc),
		query.Limit(query.MaxLimit),
	)
	for page := 1; ; page++ {
		result, err := s.store.BookRecordings().FindAllForOwner(ctx, ownerID, base.With(query.Page(page)))
		if err != nil {
			return WindowStats{}, err
		}
		for _, r := range result.Data {
			stats.Pages = stats.Pages.Add(r.Pages)
			stats.Minutes = stats.Minutes.Add(r.Minutes)
			days[clock.Day(r.Date)] = struct{}{}
		}
		stats.Recordings = result.TotalCount
		if int64(page*query.MaxLimit) >= result.TotalCount {
			break
		}
	}
	stats.ActiveDays = len(days)
	return stats, nil
}

// CourseStats reports an owner's study time between from and to.
func (s *Service) CourseStats(ctx context.Context, ownerID uint, from, to time.Time) (WindowStats, error) {
	from, to, err := window("progress.CourseStats", from, to)
	if err != nil {
		return WindowStats{}, err
	}
	stats := WindowStats{From: from, To: to, ByCategory: make(map[entities.RecordType]entities.Minutes)}
	days := make(map[time.Time]struct{})

	base := query.New(
		query.Where(query.Between("date", from, to)),
		query.SortBy("date", query.Asc),
		query.Limit(query.MaxLimit),
	)
	for page := 1; ; page++ {
		result, err := s.store.CourseRecordings().FindAllForOwner(ctx, ownerID, base.With(query.Page(page)))
		if err != nil {
			return WindowStats{}, err
		}
		for _, r := range result.Data {
			stats.Minutes = stats.Minutes.Add(r.Minutes)
			stats.ByCategory[r.Category] = stats.ByCategory[r.Category].Add(r.Minutes)
			days[clock.Day(r.Date)] = struct{}{}
		}
		stats.Recordings = result.TotalCount
		if int64(page*query.MaxLimit) >= result.TotalCount {
			break
		}
	}
	stats.ActiveDays = len(days)
	return stats, nil
}
