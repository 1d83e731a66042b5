package services

import (
	"context"
	"time"

	"github.com/pushp314/tradeacademy-backend/internal/badges"
	"github.com/pushp314/tradeacademy-backend/internal/models"
	"github.com/pushp314/tradeacademy-backend/internal/repository"
	"github.com/pushp314/tradeacademy-backend/pkg/logger"
)

// ProgressSource reads learner progress.
type ProgressSource interface {
	LoadProgress(ctx context.Context, userID, courseID string) (badges.Snapshot, error)
	CompletedCourseCount(ctx context.Context, userID string) (int64, error)
}

// GrantStore reads and writes grants.
type GrantStore interface {
	LoadEarnedBadgeIDs(ctx context.Context, userID string) (badges.EarnedSet, error)
	PersistGrant(ctx context.Context, g models.UserBadge) (repository.GrantResult, error)
}

// CatalogSource hands out the current validated catalog.
type CatalogSource interface {
	Catalog(ctx context.Context) (*badges.Catalog, error)
}

// GrantListener is told about badges right after they are granted.
type GrantListener interface {
	BadgesGranted(ctx context.Context, userID, courseID string, granted []badges.Badge)
}

// AwardService loads a learner's state, runs the evaluator and persists
// whatever it newly unlocks. It never retries; collaborator failures are
// returned to the caller.
type AwardService struct {
	progress ProgressSource
	grants   GrantStore
	catalog  CatalogSource
	listener GrantListener
	now      func() time.Time
}

func NewAwardService(progress ProgressSource, grants GrantStore, catalog CatalogSource, listener GrantListener) *AwardService {
	return &AwardService{
		progress: progress,
		grants:   grants,
		catalog:  catalog,
		listener: listener,
		now:      time.Now,
	}
}

// EvaluateAndGrant evaluates the learner's progress in courseID.
func (s *AwardService) EvaluateAndGrant(ctx context.Context, userID, courseID string) ([]badges.Badge, error) {
	snap, err := s.progress.LoadProgress(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	return s.EvaluateSnapshot(ctx, snap)
}

// EvaluateSnapshot grants every badge snap newly qualifies for and returns
// the ones this call wrote. Grants that lost a race to a concurrent
// evaluation are left out. If a write fails, the badges granted before it
// are returned together with the error; calling again is safe.
func (s *AwardService) EvaluateSnapshot(ctx context.Context, snap badges.Snapshot) ([]badges.Badge, error) {
	if snap.CompletedCourses == 0 {
		n, err := s.progress.CompletedCourseCount(ctx, snap.UserID)
		if err != nil {
			return nil, err
		}
		snap.CompletedCourses = n
	}

	earned, err := s.grants.LoadEarnedBadgeIDs(ctx, snap.UserID)
	if err != nil {
		return nil, err
	}
	catalog, err := s.catalog.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	candidates := catalog.Evaluate(snap, earned)
	if len(candidates) == 0 {
		return nil, nil
	}

	log := logger.Component("awards")
	var granted []badges.Badge
	var writeErr error
	for _, b := range candidates {
		res, err := s.grants.PersistGrant(ctx, models.UserBadge{
			UserID:     snap.UserID,
			BadgeID:    b.ID,
			CourseID:   snap.CourseID,
			Progress:   b.Unlock.Current(snap),
			UnlockedAt: s.now(),
		})
		if err != nil {
			writeErr = err
			break
		}
		if res == repository.AlreadyGranted {
			log.Debug().Str("user_id", snap.UserID).Str("badge_id", b.ID).Msg("badge already granted")
			continue
		}
		granted = append(granted, b)
		log.Info().
			Str("user_id", snap.UserID).
			Str("course_id", snap.CourseID).
			Str("badge_id", b.ID).
			Str("rarity", string(b.Rarity)).
			Msg("badge granted")
	}

	if len(granted) > 0 && s.listener != nil {
		s.listener.BadgesGranted(ctx, snap.UserID, snap.CourseID, granted)
	}
	return granted, writeErr
}
