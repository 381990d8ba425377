package entities

import (
	"time"

	"github.com/google/uuid"
)

// BookRecording is the reading logged against a UserBook on one calendar day.
// Only one exists per (UserBookID, Date); later submissions merge into it.
type BookRecording struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	UserBookID string    `gorm:"index:idx_book_recordings_day;size:36;not null" json:"user_book_id"`
	Date       time.Time `gorm:"index:idx_book_recordings_day;not null" json:"date"`
	Pages      Pages     `json:"pages"`
	Minutes    Minutes   `json:"minutes"`
	Notes      *string   `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime:false" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime:false" json:"updated_at"`
}

func (BookRecording) TableName() string {
	return "book_recordings"
}

// NewBookRecording creates a recording for the given calendar day.
func NewBookRecording(userBookID string, day time.Time, pages Pages, minutes Minutes, notes *string, now time.Time) *BookRecording {
	return &BookRecording{
		ID:         uuid.NewString(),
		UserBookID: userBookID,
		Date:       day,
		Pages:      pages,
		Minutes:    minutes,
		Notes:      notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Merge adds another submission for the same day. Notes are replaced only by
// a non-nil value.
func (r *BookRecording) Merge(pages Pages, minutes Minutes, notes *string, now time.Time) {
	r.Pages = r.Pages.Add(pages)
	r.Minutes = r.Minutes.Add(minutes)
	if notes != nil {
		r.Notes = notes
	}
	r.UpdatedAt = now
}

// CourseRecording is the study time logged against a UserCourse for one
// category on one calendar day.
type CourseRecording struct {
	ID           string     `gorm:"primaryKey;size:36" json:"id"`
	UserCourseID string     `gorm:"index:idx_course_recordings_day;size:36;not null" json:"user_course_id"`
	Date         time.Time  `gorm:"index:idx_course_recordings_day;not null" json:"date"`
	Category     RecordType `gorm:"index:idx_course_recordings_day;size:20;not null" json:"category"`
	Minutes      Minutes    `json:"minutes"`
	Notes        *string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt    time.Time  `gorm:"autoCreateTime:false" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime:false" json:"updated_at"`
}

func (CourseRecording) TableName() string {
	return "course_recordings"
}

// NewCourseRecording creates a recording for the given day and category.
func NewCourseRecording(userCourseID string, day time.Time, category RecordType, minutes Minutes, notes *string, now time.Time) *CourseRecording {
	return &CourseRecording{
		ID:           uuid.NewString(),
		UserCourseID: userCourseID,
		Date:         day,
		Category:     category,
		Minutes:      minutes,
		Notes:        notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Merge adds another submission for the same day and category.
func (r *CourseRecording) Merge(minutes Minutes, notes *string, now time.Time) {
	r.Minutes = r.Minutes.Add(minutes)
	if notes != nil {
		r.Notes = notes
	}
	r.UpdatedAt = now
}
