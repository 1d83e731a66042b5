package services

import (
	"context"
	"errors"
	"time"

	"github.com/pushp314/tradeacademy-backend/internal/badges"
	"github.com/pushp314/tradeacademy-backend/internal/models"
	"github.com/pushp314/tradeacademy-backend/internal/repository"
)

// GrantLister lists a learner's grants.
type GrantLister interface {
	ListForUser(ctx context.Context, userID string) ([]models.UserBadge, error)
}

// BadgeView is one catalog entry as seen by a learner.
type BadgeView struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	ImageURL    string     `json:"imageUrl"`
	Category    string     `json:"category"`
	Rarity      string     `json:"rarity"`
	Criteria    string     `json:"criteriaType"`
	Unlocked    bool       `json:"unlocked"`
	Current     int64      `json:"current"`
	Target      int64      `json:"target"`
	UnlockedAt  *time.Time `json:"unlockedAt,omitempty"`
}

type Showcase struct {
	Badges        []BadgeView `json:"badges"`
	UnlockedCount int         `json:"unlockedCount"`
	Total         int         `json:"total"`
}

// ShowcaseService builds the badge page: the whole catalog with the
// learner's grants folded in. It only reads; grants are made by
// AwardService.
type ShowcaseService struct {
	catalog  CatalogSource
	grants   GrantLister
	progress ProgressSource
}

func NewShowcaseService(catalog CatalogSource, grants GrantLister, progress ProgressSource) *ShowcaseService {
	return &ShowcaseService{catalog: catalog, grants: grants, progress: progress}
}

// ForUser lists every badge for userID. With a courseID, locked badges show
// progress against that course's snapshot; without one only the
// cross-course completion count is known.
func (s *ShowcaseService) ForUser(ctx context.Context, userID, courseID string) (*Showcase, error) {
	cat, err := s.catalog.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	grants, err := s.grants.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	snap := badges.Snapshot{UserID: userID, CourseID: courseID}
	if courseID != "" {
		snap, err = s.progress.LoadProgress(ctx, userID, courseID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		if err != nil {
			snap = badges.Snapshot{UserID: userID, CourseID: courseID}
		}
	}
	if snap.CompletedCourses, err = s.progress.CompletedCourseCount(ctx, userID); err != nil {
		return nil, err
	}

	byBadge := make(map[string]models.UserBadge, len(grants))
	for _, g := range grants {
		byBadge[g.BadgeID] = g
	}

	out := &Showcase{Badges: make([]BadgeView, 0, cat.Len()), Total: cat.Len()}
	for _, b := range cat.All() {
		st := badges.Progress(b, snap)
		view := BadgeView{
			ID:          b.ID,
			Name:        b.Name,
			Description: b.Description,
			ImageURL:    b.ImageURL,
			Category:    string(b.Category),
			Rarity:      string(b.Rarity),
			Criteria:    string(b.Unlock.Kind()),
			Current:     st.Current,
			Target:      st.Target,
		}
		if g, ok := byBadge[b.ID]; ok {
			at := g.UnlockedAt
			view.Unlocked = true
			view.UnlockedAt = &at
			view.Current = st.Target
			out.UnlockedCount++
		}
		out.Badges = append(out.Badges, view)
	}
	return out, nil
}
