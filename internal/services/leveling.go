package services

import "time"

// XP rewards per tracked event.
const (
	VideoWatchedXP    int64 = 10
	PDFViewedXP       int64 = 5
	CourseCompletedXP int64 = 100
	DailyCheckInXP    int64 = 2
)

// levelThresholds[i] is the XP needed to reach level i+1.
var levelThresholds = []int64{0, 100, 250, 500, 1000, 2000, 3500, 5000, 7500, 10000}

// LevelForXP derives the display level. Level is never stored as a source
// of truth; it is recomputed whenever XP changes.
func LevelForXP(xp int64) int {
	level := 1
	for i, min := range levelThresholds {
		if xp >= min {
			level = i + 1
		}
	}
	return level
}

// utcDay truncates t to midnight UTC.
func utcDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// advanceStreak moves a streak forward for activity on day now.
// It returns the new streak, the new last-active day and whether this was
// the first activity of that day.
func advanceStreak(streak int64, lastActive *time.Time, now time.Time) (int64, time.Time, bool) {
	today := utcDay(now)
	if lastActive == nil {
		return 1, today, true
	}

	last := utcDay(*lastActive)
	switch days := int(today.Sub(last).Hours() / 24); {
	case days <= 0:
		// same day, or a clock that went backwards
		return streak, last, false
	case days == 1:
		return streak + 1, today, true
	default:
		return 1, today, true
	}
}
