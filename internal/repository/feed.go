package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/pushp314/tradeacademy-backend/internal/models"
	apperrors "github.com/pushp314/tradeacademy-backend/pkg/errors"
)

const feedLimit = 50

// FeedRepository reads the notifications and activity rows written after
// grants and progress milestones.
type FeedRepository struct {
	db *gorm.DB
}

func NewFeedRepository(db *gorm.DB) *FeedRepository {
	return &FeedRepository{db: db}
}

// Notifications returns the newest notifications for userID.
func (r *FeedRepository) Notifications(ctx context.Context, userID string) ([]models.Notification, error) {
	var out []models.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(feedLimit).
		Find(&out).Error
	if err != nil {
		return nil, apperrors.Unavailable("list notifications", err)
	}
	return out, nil
}

func (r *FeedRepository) UnreadCount(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.Unavailable("count notifications", err)
	}
	return count, nil
}

// MarkRead marks one of userID's notifications read.
func (r *FeedRepository) MarkRead(ctx context.Context, userID, id string) error {
	res := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if res.Error != nil {
		return apperrors.Unavailable("mark notification read", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("notification %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *FeedRepository) MarkAllRead(ctx context.Context, userID string) error {
	err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
	if err != nil {
		return apperrors.Unavailable("mark notifications read", err)
	}
	return nil
}

// Activities returns the newest activity rows for actorID, optionally
// filtered by type.
func (r *FeedRepository) Activities(ctx context.Context, actorID string, activityType models.ActivityType) ([]models.UserActivity, error) {
	q := r.db.WithContext(ctx).Where("actor_id = ?", actorID)
	if activityType != "" {
		q = q.Where("type = ?", activityType)
	}

	var out []models.UserActivity
	if err := q.Order("created_at desc").Limit(feedLimit).Find(&out).Error; err != nil {
		return nil, apperrors.Unavailable("list activities", err)
	}
	return out, nil
}
