package badges

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/pushp314/tradeacademy-backend/pkg/errors"
)

func TestNewCatalog_OrdersByDisplayOrder(t *testing.T) {
	cat, err := NewCatalog([]Badge{
		xpBadge("c", 300, 3),
		xpBadge("a", 100, 1),
		xpBadge("b1", 200, 2),
		xpBadge("b2", 250, 2),
	})
	require.NoError(t, err)

	var ids []string
	for _, b := range cat.All() {
		ids = append(ids, b.ID)
	}
	assert.Equal(t, []string{"a", "b1", "b2", "c"}, ids)
	assert.Equal(t, 4, cat.Len())

	b, ok := cat.ByID("b2")
	require.True(t, ok)
	assert.Equal(t, int64(250), b.Unlock.Value())

	_, ok = cat.ByID("missing")
	assert.False(t, ok)
}

func TestNewCatalog_RejectsMalformedEntries(t *testing.T) {
	cases := map[string]Badge{
		"negative xp":      {ID: "x", Name: "x", Category: CategoryMilestone, Rarity: RarityCommon, Unlock: XPAtLeast{Threshold: -1}},
		"negative streak":  {ID: "x", Name: "x", Category: CategoryStreak, Rarity: RarityCommon, Unlock: StreakAtLeast{Days: -5}},
		"zero courses":     {ID: "x", Name: "x", Category: CategorySpecial, Rarity: RarityCommon, Unlock: CourseCompletedCountAtLeast{Count: 0}},
		"missing id":       {Name: "x", Category: CategoryMilestone, Rarity: RarityCommon, Unlock: XPAtLeast{}},
		"missing name":     {ID: "x", Category: CategoryMilestone, Rarity: RarityCommon, Unlock: XPAtLeast{}},
		"unknown category": {ID: "x", Name: "x", Category: "Bonus", Rarity: RarityCommon, Unlock: XPAtLeast{}},
		"unknown rarity":   {ID: "x", Name: "x", Category: CategoryMilestone, Rarity: "mythic", Unlock: XPAtLeast{}},
		"nil predicate":    {ID: "x", Name: "x", Category: CategoryMilestone, Rarity: RarityCommon},
	}

	for name, bad := range cases {
		t.Run(name, func(t *testing.T) {
			cat, err := NewCatalog([]Badge{xpBadge("ok", 0, 0), bad})
			assert.Nil(t, cat)
			require.Error(t, err)
			assert.True(t, apperrors.IsConfiguration(err))
		})
	}
}

func TestNewCatalog_RejectsDuplicateIDs(t *testing.T) {
	_, err := NewCatalog([]Badge{xpBadge("dup", 0, 0), xpBadge("dup", 10, 1)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate id")
}

func TestNewCatalog_ReportsEveryProblem(t *testing.T) {
	_, err := NewCatalog([]Badge{
		{ID: "one", Name: "one", Category: CategoryMilestone, Rarity: RarityCommon, Unlock: XPAtLeast{Threshold: -1}},
		{ID: "two", Name: "two", Category: CategoryMilestone, Rarity: "shiny", Unlock: XPAtLeast{}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "badge one")
	assert.Contains(t, err.Error(), "badge two")
}

func TestCatalog_AllReturnsCopy(t *testing.T) {
	cat, err := NewCatalog(xpLadder())
	require.NoError(t, err)

	all := cat.All()
	all[0].Name = "changed"

	b, _ := cat.ByID("xp-0")
	assert.Equal(t, "xp-0", b.Name)
}

func TestCatalog_Evaluate(t *testing.T) {
	cat, err := NewCatalog(xpLadder())
	require.NoError(t, err)

	got := cat.Evaluate(Snapshot{XP: 150}, NewEarnedSet("xp-0"))
	require.Len(t, got, 1)
	assert.Equal(t, "xp-100", got[0].ID)
}

func TestNewPredicate(t *testing.T) {
	p, err := NewPredicate(KindStreak, 7)
	require.NoError(t, err)
	assert.Equal(t, StreakAtLeast{Days: 7}, p)
	assert.Equal(t, KindStreak, p.Kind())

	_, err = NewPredicate("lessons", 1)
	assert.Error(t, err)

	_, err = NewPredicate(KindPDFsViewed, -1)
	assert.Error(t, err)

	_, err = NewPredicate(KindCoursesCompleted, 0)
	assert.Error(t, err)
}
