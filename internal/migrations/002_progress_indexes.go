package migrations

import "gorm.io/gorm"

// Migration002ProgressIndexes adds a partial index for the completed-course
// count every evaluation runs.
func Migration002ProgressIndexes() Migration {
	return Migration{
		ID:        "002_progress_indexes",
		Name:      "Add completed course partial index",
		DependsOn: []string{"001_grant_indexes"},
		Up: func(db *gorm.DB) error {
			return execAll(db,
				`CREATE INDEX IF NOT EXISTS idx_course_progress_completed ON course_progress (user_id) WHERE completed_at IS NOT NULL`,
				`CREATE INDEX IF NOT EXISTS idx_user_activities_actor_created ON user_activities (actor_id, created_at)`,
			)
		},
	}
}
