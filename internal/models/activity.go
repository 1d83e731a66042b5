package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActivityType string

const (
	ActivityEnrolled        ActivityType = "ENROLLED"
	ActivityCourseCompleted ActivityType = "COURSE_COMPLETED"
	ActivityAchievement     ActivityType = "ACHIEVEMENT"
)

type UserActivity struct {
	ID        string       `gorm:"primaryKey;type:text" json:"id"`
	Type      ActivityType `gorm:"type:text;not null" json:"type"`
	ActorID   string       `gorm:"index;not null" json:"actorId"`
	TargetID  string       `gorm:"index" json:"targetId"` // Course ID or Badge ID
	Message   string       `json:"message"`
	CreatedAt time.Time    `json:"createdAt"`
}

func (UserActivity) TableName() string {
	return "user_activities"
}

func (ua *UserActivity) BeforeCreate(tx *gorm.DB) (err error) {
	if ua.ID == "" {
		ua.ID = uuid.New().String()
	}
	if ua.CreatedAt.IsZero() {
		ua.CreatedAt = time.Now()
	}
	return
}
