package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pushp314/tradeacademy-backend/internal/models"
)

func TestShowcase_ForUser(t *testing.T) {
	s := newStack(t, xpLadder()...)
	seedProgress(t, s.db, models.CourseProgress{UserID: "u1", CourseID: "c1", XP: 300})
	_, err := s.awards.EvaluateAndGrant(bg, "u1", "c1")
	require.NoError(t, err)

	svc := NewShowcaseService(s.catalog, s.grants, s.progress)
	out, err := svc.ForUser(bg, "u1", "c1")
	require.NoError(t, err)
	require.Len(t, out.Badges, 3)
	assert.Equal(t, 3, out.Total)
	assert.Equal(t, 2, out.UnlockedCount)

	assert.True(t, out.Badges[0].Unlocked)
	assert.NotNil(t, out.Badges[0].UnlockedAt)
	assert.True(t, out.Badges[1].Unlocked)

	locked := out.Badges[2]
	assert.Equal(t, "xp-500", locked.ID)
	assert.False(t, locked.Unlocked)
	assert.Nil(t, locked.UnlockedAt)
	assert.Equal(t, int64(300), locked.Current)
	assert.Equal(t, int64(500), locked.Target)
}

func TestShowcase_UnknownCourseShowsZeroProgress(t *testing.T) {
	s := newStack(t, xpLadder()...)
	svc := NewShowcaseService(s.catalog, s.grants, s.progress)

	out, err := svc.ForUser(bg, "u1", "missing")
	require.NoError(t, err)
	assert.Zero(t, out.UnlockedCount)
	for _, b := range out.Badges {
		assert.Zero(t, b.Current)
	}
}
