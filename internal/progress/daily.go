package progress

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/mrlokans/tracker/internal/clock"
	"github.com/mrlokans/tracker/internal/entities"
	"github.com/mrlokans/tracker/internal/query"
)

// DailyEntry is the time logged in one category on one day.
type DailyEntry struct {
	Minutes entities.Minutes `json:"minutes"`
	Notes   *string          `json:"notes,omitempty"`
}

// DailyRecord aggregates every recording of one calendar day. It is built on
// read and never stored.
type DailyRecord struct {
	Date       time.Time                          `json:"date"`
	Categories map[entities.RecordType]DailyEntry `json:"categories"`
	Total      entities.Minutes                   `json:"total"`
	Pages      entities.Pages                     `json:"pages,omitempty"`
}

func NewDailyRecord(date time.Time) *DailyRecord {
	return &DailyRecord{
		Date:       clock.Day(date),
		Categories: make(map[entities.RecordType]DailyEntry),
	}
}

// AddRecord folds minutes into category. A repeated category accumulates and
// keeps its notes unless notes is non-nil.
func (d *DailyRecord) AddRecord(category entities.RecordType, minutes entities.Minutes, notes *string) {
	entry, ok := d.Categories[category]
	if !ok {
		d.Categories[category] = DailyEntry{Minutes: minutes, Notes: notes}
		d.Total = d.Total.Add(minutes)
		return
	}
	d.Total -= entry.Minutes
	entry.Minutes = entry.Minutes.Add(minutes)
	if notes != nil {
		entry.Notes = notes
	}
	d.Categories[category] = entry
	d.Total = d.Total.Add(entry.Minutes)
}

// DailyHistory is one page of days. TotalDays counts distinct days, not
// recordings.
type DailyHistory struct {
	Data      []DailyRecord `json:"data"`
	TotalDays int           `json:"total_days"`
}

// DayEntry is the part of a recording the daily view needs.
type DayEntry struct {
	Date     time.Time
	Category entities.RecordType
	Pages    entities.Pages
	Minutes  entities.Minutes
	Notes    *string
}

// BuildDailyHistory groups entries by UTC calendar day and pages over the
// distinct days, so a day never spans two pages. Limit, page and order come
// from q with the usual defaults (10, 1, desc); filters and sort field are
// ignored.
func BuildDailyHistory(entries []DayEntry, q query.QueryBase) DailyHistory {
	q = q.Normalize("date")

	buckets := make(map[time.Time][]DayEntry)
	for _, e := range entries {
		key := clock.Day(e.Date)
		buckets[key] = append(buckets[key], e)
	}

	days := make([]time.Time, 0, len(buckets))
	for day := range buckets {
		days = append(days, day)
	}
	slices.SortFunc(days, func(a, b time.Time) int {
		if q.Order() == query.Asc {
			return a.Compare(b)
		}
		return b.Compare(a)
	})

	history := DailyHistory{Data: []DailyRecord{}, TotalDays: len(days)}
	skip := q.Skip()
	if skip >= len(days) {
		return history
	}
	end := min(skip+q.Limit(), len(days))

	for _, day := range days[skip:end] {
		bucket := buckets[day]
		slices.SortStableFunc(bucket, func(a, b DayEntry) int {
			return cmp.Compare(a.Category, b.Category)
		})
		record := NewDailyRecord(day)
		for _, e := range bucket {
			record.AddRecord(e.Category, e.Minutes, e.Notes)
			record.Pages = record.Pages.Add(e.Pages)
		}
		history.Data = append(history.Data, *record)
	}
	return history
}

// BookDailyHistory returns the day-by-day reading history of a user book.
// Book recordings are reported under the READING category.
func (s *Service) BookDailyHistory(ctx context.Context, ownerID uint, userBookID string, q query.QueryBase) (DailyHistory, error) {
	if _, err := s.GetUserBook(ctx, ownerID, userBookID); err != nil {
		return DailyHistory{}, err
	}
	recs, err := s.store.BookRecordings().ListByUserBook(ctx, userBookID)
	if err != nil {
		return DailyHistory{}, err
	}
	entries := make([]DayEntry, 0, len(recs))
	for _, r := range recs {
		entries = append(entries, DayEntry{
			Date:     r.Date,
			Category: entities.RecordTypeReading,
			Pages:    r.Pages,
			Minutes:  r.Minutes,
			Notes:    r.Notes,
		})
	}
	return BuildDailyHistory(entries, q), nil
}

// CourseDailyHistory returns the day-by-day study history of a user course.
func (s *Service) CourseDailyHistory(ctx context.Context, ownerID uint, userCourseID string, q query.QueryBase) (DailyHistory, error) {
	if _, err := s.GetUserCourse(ctx, ownerID, userCourseID); err != nil {
		return DailyHistory{}, err
	}
	recs, err := s.store.CourseRecordings().ListByUserCourse(ctx, userCourseID)
	if err != nil {
		return DailyHistory{}, err
	}
	entries := make([]DayEntry, 0, len(recs))
	for _, r := range recs {
		entries = append(entries, DayEntry{
			Date:     r.Date,
			Category: r.Category,
			Minutes:  r.Minutes,
			Notes:    r.Notes,
		})
	}
	return BuildDailyHistory(entries, q), nil
}
