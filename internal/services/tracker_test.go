package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pushp314/tradeacademy-backend/internal/badges"
	"github.com/pushp314/tradeacademy-backend/internal/models"
	"github.com/pushp314/tradeacademy-backend/internal/repository"
)

var day0 = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

func TestTracker_EnrollUnlocksZeroThreshold(t *testing.T) {
	s := newStack(t, xpLadder()...)

	res, err := s.tracker.Enroll(bg, "u1", "c1")
	require.NoError(t, err)
	assert.Equal(t, []string{"xp-0"}, ids(res.NewBadges))
	assert.Equal(t, 1, res.Progress.Level)

	res, err = s.tracker.Enroll(bg, "u1", "c1")
	require.NoError(t, err)
	assert.Empty(t, res.NewBadges)

	var enrolled int64
	s.db.Model(&models.UserActivity{}).Where("actor_id = ? AND type = ?", "u1", models.ActivityEnrolled).Count(&enrolled)
	assert.Equal(t, int64(1), enrolled, "re-enrolling is not a new activity")
}

func TestTracker_RequiresEnrollment(t *testing.T) {
	s := newStack(t)
	_, err := s.tracker.RecordVideoWatched(bg, "u1", "c1", "v1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTracker_VideosCountOncePerContent(t *testing.T) {
	s := newStack(t, badgeRow("first-video", badges.KindVideosWatched, 1, 1), badgeRow("two-videos", badges.KindVideosWatched, 2, 2))
	s.tracker.now = fixedClock(day0)
	_, err := s.tracker.Enroll(bg, "u1", "c1")
	require.NoError(t, err)

	res, err := s.tracker.RecordVideoWatched(bg, "u1", "c1", "v1")
	require.NoError(t, err)
	assert.Equal(t, VideoWatchedXP, res.XPAwarded)
	assert.Equal(t, int64(1), res.Progress.VideosWatched)
	assert.Equal(t, []string{"first-video"}, ids(res.NewBadges))

	res, err = s.tracker.RecordVideoWatched(bg, "u1", "c1", "v1")
	require.NoError(t, err)
	assert.Zero(t, res.XPAwarded)
	assert.Equal(t, int64(1), res.Progress.VideosWatched)
	assert.Empty(t, res.NewBadges)

	res, err = s.tracker.RecordVideoWatched(bg, "u1", "c1", "v2")
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Progress.VideosWatched)
	assert.Equal(t, 2*VideoWatchedXP, res.Progress.XP)
	assert.Equal(t, []string{"two-videos"}, ids(res.NewBadges))
}

func TestTracker_PDFs(t *testing.T) {
	s := newStack(t, badgeRow("first-pdf", badges.KindPDFsViewed, 1, 1))
	_, err := s.tracker.Enroll(bg, "u1", "c1")
	require.NoError(t, err)

	// a video and a PDF may share an id without colliding
	_, err = s.tracker.RecordVideoWatched(bg, "u1", "c1", "lesson-1")
	require.NoError(t, err)
	res, err := s.tracker.RecordPDFViewed(bg, "u1", "c1", "lesson-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Progress.PDFsViewed)
	assert.Equal(t, VideoWatchedXP+PDFViewedXP, res.Progress.XP)
	assert.Equal(t, []string{"first-pdf"}, ids(res.NewBadges))
}

func TestTracker_CompleteCourse(t *testing.T) {
	s := newStack(t, badgeRow("first-course", badges.KindCoursesCompleted, 1, 1), badgeRow("xp-100", badges.KindXP, 100, 2))
	s.tracker.now = fixedClock(day0)
	_, err := s.tracker.Enroll(bg, "u1", "c1")
	require.NoError(t, err)

	res, err := s.tracker.CompleteCourse(bg, "u1", "c1")
	require.NoError(t, err)
	require.NotNil(t, res.Progress.CompletedAt)
	assert.Equal(t, CourseCompletedXP, res.XPAwarded)
	assert.Equal(t, 2, res.Progress.Level)
	assert.ElementsMatch(t, []string{"first-course", "xp-100"}, ids(res.NewBadges))

	_, err = s.tracker.CompleteCourse(bg, "u1", "c1")
	assert.ErrorIs(t, err, ErrAlreadyCompleted)

	var completed int64
	s.db.Model(&models.UserActivity{}).Where("type = ?", models.ActivityCourseCompleted).Count(&completed)
	assert.Equal(t, int64(1), completed)
}

func TestTracker_CheckInStreak(t *testing.T) {
	s := newStack(t, badgeRow("streak-3", badges.KindStreak, 3, 1))
	_, err := s.tracker.Enroll(bg, "u1", "c1")
	require.NoError(t, err)

	steps := []struct {
		at       time.Time
		streak   int64
		longest  int64
		xp       int64
		unlocked []string
	}{
		{day0, 1, 1, DailyCheckInXP, nil},
		{day0.Add(5 * time.Hour), 1, 1, 0, nil},
		{day0.Add(24 * time.Hour), 2, 2, DailyCheckInXP, nil},
		{day0.Add(48 * time.Hour), 3, 3, DailyCheckInXP, []string{"streak-3"}},
		{day0.Add(5 * 24 * time.Hour), 1, 3, DailyCheckInXP, nil},
	}
	for i, step := range steps {
		s.tracker.now = fixedClock(step.at)
		res, err := s.tracker.CheckIn(bg, "u1", "c1")
		require.NoError(t, err, "step %d", i)
		assert.Equal(t, step.streak, res.Progress.Streak, "step %d streak", i)
		assert.Equal(t, step.longest, res.Progress.LongestStreak, "step %d longest", i)
		assert.Equal(t, step.xp, res.XPAwarded, "step %d xp", i)
		if step.unlocked == nil {
			assert.Empty(t, res.NewBadges, "step %d", i)
		} else {
			assert.Equal(t, step.unlocked, ids(res.NewBadges), "step %d", i)
		}
	}
}
