package entities

import (
	"time"

	"github.com/google/uuid"
)

type ProgressStatus string

const (
	ProgressStatusInProgress ProgressStatus = "IN_PROGRESS"
	ProgressStatusCompleted  ProgressStatus = "COMPLETED"
)

// ActivityMode selects how ApplyActivity treats its quantities.
type ActivityMode string

const (
	// ActivityModeIncrease adds the quantities to the running totals.
	ActivityModeIncrease ActivityMode = "INCREASE"
	// ActivityModeSet replaces the totals outright; used when replaying recordings.
	ActivityModeSet ActivityMode = "SET"
)

// Activity is one change applied to a progress aggregate.
type Activity struct {
	Date     time.Time
	Pages    Pages
	Minutes  Minutes
	IsNewDay bool
	Mode     ActivityMode
	// Days replaces TotalDays in ActivityModeSet and is ignored otherwise.
	Days int
}

// Progress holds the rollup shared by book and course aggregates. Timestamps
// are owned by the domain (injected clock), not by gorm.
type Progress struct {
	Status        ProgressStatus `gorm:"size:20;index" json:"status"`
	TotalMinutes  Minutes        `json:"total_minutes"`
	TotalDays     int            `json:"total_days"`
	StartDate     *time.Time     `json:"start_date,omitempty"`
	CompletedDate *time.Time     `json:"completed_date,omitempty"`
	CreatedAt     time.Time      `gorm:"autoCreateTime:false;index" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime:false" json:"updated_at"`
}

func newProgress(now time.Time) Progress {
	return Progress{
		Status:    ProgressStatusInProgress,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (p *Progress) apply(a Activity, now time.Time) {
	switch a.Mode {
	case ActivityModeSet:
		p.TotalMinutes = a.Minutes
		p.TotalDays = a.Days
	default:
		p.TotalMinutes = p.TotalMinutes.Add(a.Minutes)
	}
	if a.IsNewDay {
		p.TotalDays++
	}
	if p.StartDate == nil && !a.Date.IsZero() {
		d := a.Date
		p.StartDate = &d
	}
	p.UpdatedAt = now
}

// MarkCompleted transitions to COMPLETED. It is a no-op once a completion date
// exists; there is no way back to IN_PROGRESS.
func (p *Progress) MarkCompleted(date, now time.Time) {
	if p.Status == ProgressStatusCompleted || p.CompletedDate != nil {
		return
	}
	d := date
	p.CompletedDate = &d
	p.Status = ProgressStatusCompleted
	p.UpdatedAt = now
}

func (p *Progress) IsCompleted() bool {
	return p.Status == ProgressStatusCompleted
}

// UserBook tracks one user's reading of one book.
type UserBook struct {
	ID          string `gorm:"primaryKey;size:36" json:"id"`
	OwnerID     uint   `gorm:"uniqueIndex:idx_user_books_owner_book;not null" json:"owner_id"`
	BookID      uint   `gorm:"uniqueIndex:idx_user_books_owner_book;not null" json:"book_id"`
	CurrentPage Pages  `json:"current_page"`
	Progress    `gorm:"embedded"`
}

func (UserBook) TableName() string {
	return "user_books"
}

// NewUserBook starts tracking bookID for ownerID.
func NewUserBook(ownerID, bookID uint, now time.Time) *UserBook {
	return &UserBook{
		ID:       uuid.NewString(),
		OwnerID:  ownerID,
		BookID:   bookID,
		Progress: newProgress(now),
	}
}

// ApplyActivity folds an activity into the aggregate. In INCREASE mode Pages
// is added to CurrentPage; in SET mode it replaces it. Callers clamp Pages to
// the book's capacity beforehand.
func (b *UserBook) ApplyActivity(a Activity, now time.Time) {
	switch a.Mode {
	case ActivityModeSet:
		b.CurrentPage = a.Pages
	default:
		b.CurrentPage = b.CurrentPage.Add(a.Pages)
	}
	b.apply(a, now)
}

// UserCourse tracks one user's progress through one course.
type UserCourse struct {
	ID       string `gorm:"primaryKey;size:36" json:"id"`
	OwnerID  uint   `gorm:"uniqueIndex:idx_user_courses_owner_course;not null" json:"owner_id"`
	CourseID uint   `gorm:"uniqueIndex:idx_user_courses_owner_course;not null" json:"course_id"`
	Progress `gorm:"embedded"`
}

func (UserCourse) TableName() string {
	return "user_courses"
}

// NewUserCourse starts tracking courseID for ownerID.
func NewUserCourse(ownerID, courseID uint, now time.Time) *UserCourse {
	return &UserCourse{
		ID:       uuid.NewString(),
		OwnerID:  ownerID,
		CourseID: courseID,
		Progress: newProgress(now),
	}
}

// ApplyActivity folds an activity into the aggregate. Pages is ignored.
func (c *UserCourse) ApplyActivity(a Activity, now time.Time) {
	c.apply(a, now)
}
