package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pushp314/tradeacademy-backend/internal/badges"
	"github.com/pushp314/tradeacademy-backend/internal/models"
	apperrors "github.com/pushp314/tradeacademy-backend/pkg/errors"
)

type ProgressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// LoadProgress reads the evaluator snapshot for one (user, course).
// CompletedCourses is not filled in; see CompletedCourseCount.
func (r *ProgressRepository) LoadProgress(ctx context.Context, userID, courseID string) (badges.Snapshot, error) {
	p, err := r.Get(ctx, userID, courseID)
	if err != nil {
		return badges.Snapshot{}, err
	}
	return p.Snapshot(), nil
}

func (r *ProgressRepository) Get(ctx context.Context, userID, courseID string) (*models.CourseProgress, error) {
	var p models.CourseProgress
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("progress %s/%s: %w", userID, courseID, ErrNotFound)
	}
	if err != nil {
		return nil, apperrors.Unavailable("load progress", err)
	}
	return &p, nil
}

// CompletedCourseCount counts the learner's completed courses.
func (r *ProgressRepository) CompletedCourseCount(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CourseProgress{}).
		Where("user_id = ? AND completed_at IS NOT NULL", userID).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.Unavailable("count completed courses", err)
	}
	return count, nil
}

// Enroll creates the progress row if it does not exist yet. created is
// false when the learner was already enrolled.
func (r *ProgressRepository) Enroll(ctx context.Context, userID, courseID string) (p *models.CourseProgress, created bool, err error) {
	row := models.CourseProgress{UserID: userID, CourseID: courseID, Level: 1}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&row)
	if res.Error != nil {
		return nil, false, apperrors.Unavailable("enroll", res.Error)
	}

	p, err = r.Get(ctx, userID, courseID)
	if err != nil {
		return nil, false, err
	}
	return p, res.RowsAffected > 0, nil
}

// Mutate runs fn against a locked copy of the progress row inside a
// transaction and saves the result. fn must use tx for any extra writes.
func (r *ProgressRepository) Mutate(ctx context.Context, userID, courseID string, fn func(tx *gorm.DB, p *models.CourseProgress) error) (*models.CourseProgress, error) {
	var out models.CourseProgress
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND course_id = ?", userID, courseID).
			First(&out).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("progress %s/%s: %w", userID, courseID, ErrNotFound)
		}
		if err != nil {
			return apperrors.Unavailable("lock progress", err)
		}

		if err := fn(tx, &out); err != nil {
			return err
		}

		if err := tx.Save(&out).Error; err != nil {
			return apperrors.Unavailable("save progress", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// RecordContentView inserts a view inside tx. first is false when the
// learner had already opened this content.
func RecordContentView(tx *gorm.DB, userID, courseID, contentID string, kind models.ContentKind) (first bool, err error) {
	view := models.ContentView{
		UserID:    userID,
		CourseID:  courseID,
		ContentID: contentID,
		Kind:      kind,
		CreatedAt: time.Now(),
	}
	res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&view)
	if res.Error != nil {
		return false, apperrors.Unavailable("record content view", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// EachBatch walks every progress row in (user_id, course_id) order, handing
// fn up to size rows at a time. It stops at the first error from fn.
func (r *ProgressRepository) EachBatch(ctx context.Context, size int, fn func(batch []models.CourseProgress) error) error {
	var lastUser, lastCourse string
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var batch []models.CourseProgress
		q := r.db.WithContext(ctx).Order("user_id, course_id").Limit(size)
		if lastUser != "" {
			q = q.Where("user_id > ? OR (user_id = ? AND course_id > ?)", lastUser, lastUser, lastCourse)
		}
		if err := q.Find(&batch).Error; err != nil {
			return apperrors.Unavailable("scan progress", err)
		}
		if len(batch) == 0 {
			return nil
		}

		if err := fn(batch); err != nil {
			return err
		}

		last := batch[len(batch)-1]
		lastUser, lastCourse = last.UserID, last.CourseID
		if len(batch) < size {
			return nil
		}
	}
}
