package badges

import (
	"fmt"
	"time"
)

type Category string

const (
	CategoryMilestone   Category = "Milestone"
	CategoryAchievement Category = "Achievement"
	CategoryStreak      Category = "Streak"
	CategorySpecial     Category = "Special"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryMilestone, CategoryAchievement, CategoryStreak, CategorySpecial:
		return true
	}
	return false
}

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

func (r Rarity) Valid() bool {
	switch r {
	case RarityCommon, RarityRare, RarityEpic, RarityLegendary:
		return true
	}
	return false
}

// Badge is an achievement definition. Badges are treated as immutable once
// loaded into a Catalog.
type Badge struct {
	ID           string
	Name         string
	Description  string
	ImageURL     string
	Category     Category
	Rarity       Rarity
	Unlock       Predicate
	DisplayOrder int
}

func (b Badge) validate() error {
	if b.ID == "" {
		return fmt.Errorf("badge %q: id is required", b.Name)
	}
	if b.Name == "" {
		return fmt.Errorf("badge %s: name is required", b.ID)
	}
	if !b.Category.Valid() {
		return fmt.Errorf("badge %s: unknown category %q", b.ID, b.Category)
	}
	if !b.Rarity.Valid() {
		return fmt.Errorf("badge %s: unknown rarity %q", b.ID, b.Rarity)
	}
	if b.Unlock == nil {
		return fmt.Errorf("badge %s: unlock predicate is required", b.ID)
	}
	if err := b.Unlock.validate(); err != nil {
		return fmt.Errorf("badge %s: %w", b.ID, err)
	}
	return nil
}

// Snapshot is one learner's progress in one course at evaluation time.
type Snapshot struct {
	UserID        string
	CourseID      string
	XP            int64
	Level         int
	Streak        int64
	VideosWatched int64
	PDFsViewed    int64
	CompletedAt   *time.Time

	// CompletedCourses is the learner's completed-course count across all
	// courses. It is never derived from the single-course fields above;
	// zero means the caller did not aggregate it.
	CompletedCourses int64
}

// EarnedSet holds the ids of badges a learner already owns.
type EarnedSet map[string]struct{}

func NewEarnedSet(ids ...string) EarnedSet {
	s := make(EarnedSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s EarnedSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

func (s EarnedSet) Add(ids ...string) {
	for _, id := range ids {
		s[id] = struct{}{}
	}
}

func (s EarnedSet) Clone() EarnedSet {
	c := make(EarnedSet, len(s))
	for id := range s {
		c[id] = struct{}{}
	}
	return c
}
