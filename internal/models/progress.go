package models

import (
	"time"

	"github.com/pushp314/tradeacademy-backend/internal/badges"
)

// CourseProgress is a learner's running totals for one course.
type CourseProgress struct {
	UserID        string     `gorm:"primaryKey;type:text" json:"userId"`
	CourseID      string     `gorm:"primaryKey;type:text" json:"courseId"`
	XP            int64      `gorm:"default:0" json:"xp"`
	Level         int        `gorm:"default:1" json:"level"`
	Streak        int64      `gorm:"default:0" json:"streak"`
	LongestStreak int64      `gorm:"default:0" json:"longestStreak"`
	LastActiveOn  *time.Time `json:"lastActiveOn,omitempty"`
	VideosWatched int64      `gorm:"default:0" json:"videosWatched"`
	PDFsViewed    int64      `gorm:"column:pdfs_viewed;default:0" json:"pdfsViewed"`
	CompletedAt   *time.Time `gorm:"index" json:"completedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func (CourseProgress) TableName() string {
	return "course_progress"
}

// Snapshot copies the row into the evaluator's input. CompletedCourses is
// left for the caller to aggregate.
func (p CourseProgress) Snapshot() badges.Snapshot {
	s := badges.Snapshot{
		UserID:        p.UserID,
		CourseID:      p.CourseID,
		XP:            p.XP,
		Level:         p.Level,
		Streak:        p.Streak,
		VideosWatched: p.VideosWatched,
		PDFsViewed:    p.PDFsViewed,
	}
	if p.CompletedAt != nil {
		t := *p.CompletedAt
		s.CompletedAt = &t
	}
	return s
}

type ContentKind string

const (
	ContentVideo ContentKind = "VIDEO"
	ContentPDF   ContentKind = "PDF"
)

// ContentView records that a learner opened a piece of course content.
// Counters only move the first time a row is inserted.
type ContentView struct {
	UserID    string      `gorm:"primaryKey;type:text"`
	CourseID  string      `gorm:"primaryKey;type:text"`
	ContentID string      `gorm:"primaryKey;type:text"`
	Kind      ContentKind `gorm:"primaryKey;type:text"`
	CreatedAt time.Time
}
