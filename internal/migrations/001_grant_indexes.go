package migrations

import "gorm.io/gorm"

// Migration001GrantIndexes covers the badge page query, which lists a
// learner's grants newest first, and the unread notification badge.
func Migration001GrantIndexes() Migration {
	return Migration{
		ID:   "001_grant_indexes",
		Name: "Add grant and notification lookup indexes",
		Up: func(db *gorm.DB) error {
			return execAll(db,
				`CREATE INDEX IF NOT EXISTS idx_user_badges_user_unlocked ON user_badges (user_id, unlocked_at)`,
				`CREATE INDEX IF NOT EXISTS idx_notifications_user_unread ON notifications (user_id, is_read)`,
			)
		},
	}
}
