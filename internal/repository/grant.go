package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pushp314/tradeacademy-backend/internal/badges"
	"github.com/pushp314/tradeacademy-backend/internal/models"
	apperrors "github.com/pushp314/tradeacademy-backend/pkg/errors"
)

// GrantResult is the outcome of PersistGrant.
type GrantResult int

const (
	Granted GrantResult = iota + 1
	AlreadyGranted
)

func (r GrantResult) String() string {
	switch r {
	case Granted:
		return "granted"
	case AlreadyGranted:
		return "already_granted"
	}
	return "unknown"
}

type GrantRepository struct {
	db *gorm.DB
}

func NewGrantRepository(db *gorm.DB) *GrantRepository {
	return &GrantRepository{db: db}
}

func (r *GrantRepository) LoadEarnedBadgeIDs(ctx context.Context, userID string) (badges.EarnedSet, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&models.UserBadge{}).
		Where("user_id = ?", userID).
		Pluck("badge_id", &ids).Error
	if err != nil {
		return nil, apperrors.Unavailable("load earned badges", err)
	}
	return badges.NewEarnedSet(ids...), nil
}

// PersistGrant writes a grant once. A second grant of the same
// (user, badge) pair, sequential or concurrent, reports AlreadyGranted
// rather than an error; the primary key decides which insert wins.
func (r *GrantRepository) PersistGrant(ctx context.Context, g models.UserBadge) (GrantResult, error) {
	if g.UnlockedAt.IsZero() {
		g.UnlockedAt = time.Now()
	}

	res := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&g)
	if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
		return AlreadyGranted, nil
	}
	if res.Error != nil {
		return 0, apperrors.Unavailable("persist grant", res.Error)
	}
	if res.RowsAffected == 0 {
		return AlreadyGranted, nil
	}
	return Granted, nil
}

// ListForUser returns the learner's grants, oldest first.
func (r *GrantRepository) ListForUser(ctx context.Context, userID string) ([]models.UserBadge, error) {
	var grants []models.UserBadge
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("unlocked_at asc").
		Find(&grants).Error
	if err != nil {
		return nil, apperrors.Unavailable("list grants", err)
	}
	return grants, nil
}
