package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pushp314/tradeacademy-backend/internal/badges"
	"github.com/pushp314/tradeacademy-backend/internal/dbtest"
	"github.com/pushp314/tradeacademy-backend/internal/models"
	"github.com/pushp314/tradeacademy-backend/internal/repository"
)

type stack struct {
	db       *gorm.DB
	progress *repository.ProgressRepository
	grants   *repository.GrantRepository
	badges   *repository.BadgeRepository
	catalog  *CatalogProvider
	activity *ActivityRecorder
	awards   *AwardService
	tracker  *Tracker
}

func newStack(t *testing.T, rows ...models.Badge) *stack {
	t.Helper()
	db := dbtest.Open(t)
	for i := range rows {
		require.NoError(t, db.Create(&rows[i]).Error)
	}

	s := &stack{
		db:       db,
		progress: repository.NewProgressRepository(db),
		grants:   repository.NewGrantRepository(db),
		badges:   repository.NewBadgeRepository(db),
		activity: NewActivityRecorder(db),
	}
	s.catalog = NewCatalogProvider(s.badges, nil, 0)
	s.awards = NewAwardService(s.progress, s.grants, s.catalog, s.activity)
	s.tracker = NewTracker(s.progress, s.awards, s.activity)
	return s
}

func badgeRow(id string, kind badges.Kind, value int64, order int) models.Badge {
	return models.Badge{
		ID:            id,
		Name:          id,
		Category:      string(badges.CategoryMilestone),
		Rarity:        string(badges.RarityCommon),
		CriteriaType:  string(kind),
		CriteriaValue: value,
		DisplayOrder:  order,
	}
}

func xpLadder() []models.Badge {
	return []models.Badge{
		badgeRow("xp-0", badges.KindXP, 0, 1),
		badgeRow("xp-100", badges.KindXP, 100, 2),
		badgeRow("xp-500", badges.KindXP, 500, 3),
	}
}

func ids(bs []badges.Badge) []string {
	out := make([]string, 0, len(bs))
	for _, b := range bs {
		out = append(out, b.ID)
	}
	return out
}

func seedProgress(t *testing.T, db *gorm.DB, p models.CourseProgress) {
	t.Helper()
	if p.Level == 0 {
		p.Level = 1
	}
	require.NoError(t, db.Create(&p).Error)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

var bg = context.Background()
