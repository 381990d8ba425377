package entities

import (
	"time"
)

// Book is a trackable reading target. TotalPages is the capacity that reading
// progress is clamped to.
type Book struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Title      string    `gorm:"index;size:512" json:"title"`
	Author     string    `gorm:"index;size:256" json:"author"`
	ISBN       string    `gorm:"index;size:20" json:"isbn,omitempty"`
	TotalPages Pages     `json:"total_pages"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Book) TableName() string {
	return "books"
}

// Course is a trackable learning target. Courses have no page capacity;
// TotalMinutes is informational (expected workload) and never clamps.
type Course struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"index;size:512" json:"title"`
	Provider     string    `gorm:"size:256" json:"provider,omitempty"`
	TotalMinutes Minutes   `json:"total_minutes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Course) TableName() string {
	return "courses"
}
