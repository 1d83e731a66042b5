package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pushp314/tradeacademy-backend/internal/badges"
	"github.com/pushp314/tradeacademy-backend/internal/models"
	apperrors "github.com/pushp314/tradeacademy-backend/pkg/errors"
)

type BadgeRepository struct {
	db *gorm.DB
}

func NewBadgeRepository(db *gorm.DB) *BadgeRepository {
	return &BadgeRepository{db: db}
}

// List returns the raw catalog rows in display order.
func (r *BadgeRepository) List(ctx context.Context) ([]models.Badge, error) {
	var rows []models.Badge
	err := r.db.WithContext(ctx).Order("display_order asc, id asc").Find(&rows).Error
	if err != nil {
		return nil, apperrors.Unavailable("list badges", err)
	}
	return rows, nil
}

// LoadCatalog reads and validates the stored catalog.
func (r *BadgeRepository) LoadCatalog(ctx context.Context) (*badges.Catalog, error) {
	rows, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	return CatalogFromRows(rows)
}

// CatalogFromRows converts stored rows into a validated catalog. Any
// malformed row fails the whole conversion.
func CatalogFromRows(rows []models.Badge) (*badges.Catalog, error) {
	defs := make([]badges.Badge, 0, len(rows))
	var problems []error
	for _, row := range rows {
		b, err := row.ToDomain()
		if err != nil {
			problems = append(problems, err)
			continue
		}
		defs = append(defs, b)
	}
	if len(problems) > 0 {
		return nil, apperrors.Configuration("load badge catalog", errors.Join(problems...))
	}
	return badges.NewCatalog(defs)
}

func (r *BadgeRepository) Get(ctx context.Context, id string) (*models.Badge, error) {
	var row models.Badge
	err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("badge %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, apperrors.Unavailable("get badge", err)
	}
	return &row, nil
}

// Upsert stores a definition, replacing an existing one with the same id.
// The definition is validated first so a bad edit never reaches the table.
func (r *BadgeRepository) Upsert(ctx context.Context, b badges.Badge) error {
	if _, err := badges.NewCatalog([]badges.Badge{b}); err != nil {
		return err
	}

	updates := []string{
		"name", "description", "category", "rarity",
		"criteria_type", "criteria_value", "display_order", "updated_at",
	}
	// artwork is managed through SetImage; an empty value keeps the upload
	if b.ImageURL != "" {
		updates = append(updates, "image_url")
	}

	row := models.BadgeFromDomain(b)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns(updates),
		}).
		Create(&row).Error
	if err != nil {
		return apperrors.Unavailable("upsert badge", err)
	}
	return nil
}

func (r *BadgeRepository) SetImage(ctx context.Context, id, url string) error {
	res := r.db.WithContext(ctx).Model(&models.Badge{}).
		Where("id = ?", id).
		Update("image_url", url)
	if res.Error != nil {
		return apperrors.Unavailable("set badge image", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("badge %s: %w", id, ErrNotFound)
	}
	return nil
}
