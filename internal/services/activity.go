package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/pushp314/tradeacademy-backend/internal/badges"
	"github.com/pushp314/tradeacademy-backend/internal/models"
	"github.com/pushp314/tradeacademy-backend/pkg/logger"
)

// ActivityRecorder writes the learner feed and in-app notifications.
// Failures are logged and never returned: a grant or a progress update
// stays valid even when its feed entry could not be written.
type ActivityRecorder struct {
	db *gorm.DB
}

func NewActivityRecorder(db *gorm.DB) *ActivityRecorder {
	return &ActivityRecorder{db: db}
}

func (r *ActivityRecorder) LogActivity(ctx context.Context, actorID string, activityType models.ActivityType, targetID, message string) {
	activity := models.UserActivity{
		Type:     activityType,
		ActorID:  actorID,
		TargetID: targetID,
		Message:  message,
	}

	if err := r.db.WithContext(ctx).Create(&activity).Error; err != nil {
		logger.Warn().Err(err).Str("actor_id", actorID).Str("type", string(activityType)).Msg("Failed to log activity")
	}
}

// BadgesGranted implements GrantListener.
func (r *ActivityRecorder) BadgesGranted(ctx context.Context, userID, courseID string, granted []badges.Badge) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, b := range granted {
			badgeID := b.ID
			n := models.Notification{
				UserID:  userID,
				Type:    models.NotificationTypeAchievement,
				BadgeID: &badgeID,
				Message: "Unlocked Badge: " + b.Name,
			}
			if err := tx.Create(&n).Error; err != nil {
				return err
			}

			a := models.UserActivity{
				Type:     models.ActivityAchievement,
				ActorID:  userID,
				TargetID: b.ID,
				Message:  fmt.Sprintf("Earned the %s badge (%s)", b.Name, b.Rarity),
			}
			if err := tx.Create(&a).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Warn().Err(err).
			Str("user_id", userID).
			Str("course_id", courseID).
			Int("badges", len(granted)).
			Msg("Failed to record badge notifications")
	}
}
