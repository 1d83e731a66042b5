package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLevelForXP(t *testing.T) {
	cases := map[int64]int{
		0:     1,
		99:    1,
		100:   2,
		249:   2,
		250:   3,
		1000:  5,
		9999:  9,
		10000: 10,
		50000: 10,
	}
	for xp, want := range cases {
		assert.Equal(t, want, LevelForXP(xp), "xp %d", xp)
	}
}

func TestAdvanceStreak(t *testing.T) {
	now := time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC)

	streak, day, first := advanceStreak(0, nil, now)
	assert.Equal(t, int64(1), streak)
	assert.True(t, first)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), day)

	yesterday := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	streak, _, first = advanceStreak(4, &yesterday, now)
	assert.Equal(t, int64(5), streak)
	assert.True(t, first)

	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	streak, _, first = advanceStreak(5, &today, now)
	assert.Equal(t, int64(5), streak)
	assert.False(t, first)

	longAgo := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	streak, _, first = advanceStreak(9, &longAgo, now)
	assert.Equal(t, int64(1), streak)
	assert.True(t, first)
}

func TestAdvanceStreak_UsesUTCDays(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	// 01:00 IST on the 11th is still the 10th in UTC
	now := time.Date(2026, 3, 11, 1, 0, 0, 0, ist)
	last := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	streak, _, first := advanceStreak(2, &last, now)
	assert.Equal(t, int64(2), streak)
	assert.False(t, first)
}
