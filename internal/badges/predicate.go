package badges

import (
	"fmt"
)

// Kind is the stored discriminator of an unlock predicate.
type Kind string

const (
	KindXP               Kind = "xp"
	KindStreak           Kind = "streak"
	KindVideosWatched    Kind = "videos_watched"
	KindPDFsViewed       Kind = "pdfs_viewed"
	KindCoursesCompleted Kind = "courses_completed"
)

// Predicate is the unlock rule of a badge. The set of implementations is
// closed: only the variants in this file satisfy it.
type Predicate interface {
	// Kind and Value give the stored form of the predicate.
	Kind() Kind
	Value() int64
	// Current is the snapshot metric the predicate compares against Value.
	Current(s Snapshot) int64

	satisfiedBy(s Snapshot) bool
	validate() error
}

// XPAtLeast unlocks once the course XP reaches Threshold.
type XPAtLeast struct{ Threshold int64 }

// StreakAtLeast unlocks once the streak reaches Days consecutive days.
type StreakAtLeast struct{ Days int64 }

// VideosWatchedAtLeast unlocks once Count distinct videos were watched.
type VideosWatchedAtLeast struct{ Count int64 }

// PDFsViewedAtLeast unlocks once Count distinct PDFs were opened.
type PDFsViewedAtLeast struct{ Count int64 }

// CourseCompletedCountAtLeast unlocks on course completion. A Count of 1 is
// decided by the snapshot's CompletedAt; larger counts need the caller to
// supply Snapshot.CompletedCourses.
type CourseCompletedCountAtLeast struct{ Count int64 }

func (p XPAtLeast) Kind() Kind { return KindXP }
func (p XPAtLeast) Value() int64 { return p.Threshold }
func (p XPAtLeast) Current(s Snapshot) int64 { return s.XP }
func (p XPAtLeast) satisfiedBy(s Snapshot) bool { return s.XP >= p.Threshold }
func (p XPAtLeast) validate() error { return nonNegative(p.Kind(), p.Threshold) }

func (p StreakAtLeast) Kind() Kind { return KindStreak }
func (p StreakAtLeast) Value() int64 { return p.Days }
func (p StreakAtLeast) Current(s Snapshot) int64 { return s.Streak }
func (p StreakAtLeast) satisfiedBy(s Snapshot) bool { return s.Streak >= p.Days }
func (p StreakAtLeast) validate() error { return nonNegative(p.Kind(), p.Days) }

func (p VideosWatchedAtLeast) Kind() Kind { return KindVideosWatched }
func (p VideosWatchedAtLeast) Value() int64 { return p.Count }
func (p VideosWatchedAtLeast) Current(s Snapshot) int64 { return s.VideosWatched }
func (p VideosWatchedAtLeast) satisfiedBy(s Snapshot) bool { return s.VideosWatched >= p.Count }
func (p VideosWatchedAtLeast) validate() error { return nonNegative(p.Kind(), p.Count) }

func (p PDFsViewedAtLeast) Kind() Kind { return KindPDFsViewed }
func (p PDFsViewedAtLeast) Value() int64 { return p.Count }
func (p PDFsViewedAtLeast) Current(s Snapshot) int64 { return s.PDFsViewed }
func (p PDFsViewedAtLeast) satisfiedBy(s Snapshot) bool { return s.PDFsViewed >= p.Count }
func (p PDFsViewedAtLeast) validate() error { return nonNegative(p.Kind(), p.Count) }

func (p CourseCompletedCountAtLeast) Kind() Kind { return KindCoursesCompleted }
func (p CourseCompletedCountAtLeast) Value() int64 { return p.Count }

func (p CourseCompletedCountAtLeast) Current(s Snapshot) int64 {
	if p.Count == 1 {
		if s.CompletedAt != nil {
			return 1
		}
		return 0
	}
	return s.CompletedCourses
}

func (p CourseCompletedCountAtLeast) satisfiedBy(s Snapshot) bool {
	if p.Count == 1 {
		return s.CompletedAt != nil
	}
	return s.CompletedCourses >= p.Count
}

func (p CourseCompletedCountAtLeast) validate() error {
	if p.Count < 1 {
		return fmt.Errorf("%s count must be at least 1, got %d", p.Kind(), p.Count)
	}
	return nil
}

func nonNegative(k Kind, v int64) error {
	if v < 0 {
		return fmt.Errorf("%s threshold must not be negative, got %d", k, v)
	}
	return nil
}

// NewPredicate builds the variant stored as (kind, value) and validates it.
func NewPredicate(kind Kind, value int64) (Predicate, error) {
	var p Predicate
	switch kind {
	case KindXP:
		p = XPAtLeast{Threshold: value}
	case KindStreak:
		p = StreakAtLeast{Days: value}
	case KindVideosWatched:
		p = VideosWatchedAtLeast{Count: value}
	case KindPDFsViewed:
		p = PDFsViewedAtLeast{Count: value}
	case KindCoursesCompleted:
		p = CourseCompletedCountAtLeast{Count: value}
	default:
		return nil, fmt.Errorf("unknown unlock type %q", kind)
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}
