package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/pushp314/tradeacademy-backend/internal/badges"
	"github.com/pushp314/tradeacademy-backend/internal/models"
	"github.com/pushp314/tradeacademy-backend/internal/repository"
)

// ErrAlreadyCompleted is returned when a completed course is completed again.
var ErrAlreadyCompleted = errors.New("course already completed")

// ProgressStore is the write side of learner progress.
type ProgressStore interface {
	Enroll(ctx context.Context, userID, courseID string) (*models.CourseProgress, bool, error)
	Mutate(ctx context.Context, userID, courseID string, fn func(tx *gorm.DB, p *models.CourseProgress) error) (*models.CourseProgress, error)
}

// ActivityLogger writes feed entries.
type ActivityLogger interface {
	LogActivity(ctx context.Context, actorID string, activityType models.ActivityType, targetID, message string)
}

// TrackResult is the outcome of one tracked event.
type TrackResult struct {
	Progress  models.CourseProgress `json:"progress"`
	XPAwarded int64                 `json:"xpAwarded"`
	NewBadges []badges.Badge        `json:"-"`
}

// Tracker applies learner activity to course progress and then runs badge
// evaluation on the updated snapshot. The progress write commits before
// evaluation starts, so an evaluation error leaves the activity recorded;
// the result is returned alongside the error.
type Tracker struct {
	store    ProgressStore
	awards   *AwardService
	activity ActivityLogger
	now      func() time.Time
}

func NewTracker(store ProgressStore, awards *AwardService, activity ActivityLogger) *Tracker {
	return &Tracker{store: store, awards: awards, activity: activity, now: time.Now}
}

// Enroll starts a course. Zero-threshold badges unlock here.
func (t *Tracker) Enroll(ctx context.Context, userID, courseID string) (*TrackResult, error) {
	p, created, err := t.store.Enroll(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if created && t.activity != nil {
		t.activity.LogActivity(ctx, userID, models.ActivityEnrolled, courseID, "Enrolled in course")
	}
	return t.evaluate(ctx, p, 0)
}

func (t *Tracker) RecordVideoWatched(ctx context.Context, userID, courseID, videoID string) (*TrackResult, error) {
	return t.recordContent(ctx, userID, courseID, videoID, models.ContentVideo, VideoWatchedXP)
}

func (t *Tracker) RecordPDFViewed(ctx context.Context, userID, courseID, pdfID string) (*TrackResult, error) {
	return t.recordContent(ctx, userID, courseID, pdfID, models.ContentPDF, PDFViewedXP)
}

func (t *Tracker) recordContent(ctx context.Context, userID, courseID, contentID string, kind models.ContentKind, reward int64) (*TrackResult, error) {
	var awarded int64
	p, err := t.store.Mutate(ctx, userID, courseID, func(tx *gorm.DB, p *models.CourseProgress) error {
		awarded = 0
		first, err := repository.RecordContentView(tx, userID, courseID, contentID, kind)
		if err != nil {
			return err
		}
		t.touch(p)
		if !first {
			return nil
		}
		switch kind {
		case models.ContentVideo:
			p.VideosWatched++
		case models.ContentPDF:
			p.PDFsViewed++
		}
		awarded = reward
		t.addXP(p, reward)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t.evaluate(ctx, p, awarded)
}

// CompleteCourse stamps the completion time once.
func (t *Tracker) CompleteCourse(ctx context.Context, userID, courseID string) (*TrackResult, error) {
	p, err := t.store.Mutate(ctx, userID, courseID, func(tx *gorm.DB, p *models.CourseProgress) error {
		if p.CompletedAt != nil {
			return ErrAlreadyCompleted
		}
		now := t.now()
		p.CompletedAt = &now
		t.touch(p)
		t.addXP(p, CourseCompletedXP)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if t.activity != nil {
		t.activity.LogActivity(ctx, userID, models.ActivityCourseCompleted, courseID, "Completed course")
	}
	return t.evaluate(ctx, p, CourseCompletedXP)
}

// CheckIn records the daily login. The bonus is paid once per UTC day.
func (t *Tracker) CheckIn(ctx context.Context, userID, courseID string) (*TrackResult, error) {
	var awarded int64
	p, err := t.store.Mutate(ctx, userID, courseID, func(tx *gorm.DB, p *models.CourseProgress) error {
		awarded = 0
		if t.touch(p) {
			awarded = DailyCheckInXP
			t.addXP(p, DailyCheckInXP)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t.evaluate(ctx, p, awarded)
}

// touch updates the streak for activity now and reports whether it was the
// first activity of the day.
func (t *Tracker) touch(p *models.CourseProgress) bool {
	streak, day, first := advanceStreak(p.Streak, p.LastActiveOn, t.now())
	p.Streak = streak
	p.LastActiveOn = &day
	if p.Streak > p.LongestStreak {
		p.LongestStreak = p.Streak
	}
	return first
}

func (t *Tracker) addXP(p *models.CourseProgress, xp int64) {
	p.XP += xp
	p.Level = LevelForXP(p.XP)
}

func (t *Tracker) evaluate(ctx context.Context, p *models.CourseProgress, awarded int64) (*TrackResult, error) {
	res := &TrackResult{Progress: *p, XPAwarded: awarded}
	granted, err := t.awards.EvaluateSnapshot(ctx, p.Snapshot())
	res.NewBadges = granted
	if err != nil {
		return res, err
	}
	return res, nil
}
