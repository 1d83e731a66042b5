package models

import (
	"fmt"
	"time"

	"github.com/pushp314/tradeacademy-backend/internal/badges"
)

// Badge is the stored form of a badge definition. The unlock predicate is
// kept as (criteria_type, criteria_value) and only becomes usable through
// ToDomain, which rejects malformed rows.
type Badge struct {
	ID            string    `gorm:"primaryKey;type:text" json:"id"`
	Name          string    `gorm:"not null" json:"name"`
	Description   string    `json:"description"`
	ImageURL      string    `json:"imageUrl"`
	Category      string    `gorm:"type:text;not null" json:"category"`
	Rarity        string    `gorm:"type:text;default:'common'" json:"rarity"`
	CriteriaType  string    `gorm:"type:text;not null" json:"criteriaType"`
	CriteriaValue int64     `gorm:"not null;default:0" json:"criteriaValue"`
	DisplayOrder  int       `gorm:"default:0;index" json:"displayOrder"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (b Badge) ToDomain() (badges.Badge, error) {
	pred, err := badges.NewPredicate(badges.Kind(b.CriteriaType), b.CriteriaValue)
	if err != nil {
		return badges.Badge{}, fmt.Errorf("badge %s: %w", b.ID, err)
	}
	return badges.Badge{
		ID:           b.ID,
		Name:         b.Name,
		Description:  b.Description,
		ImageURL:     b.ImageURL,
		Category:     badges.Category(b.Category),
		Rarity:       badges.Rarity(b.Rarity),
		Unlock:       pred,
		DisplayOrder: b.DisplayOrder,
	}, nil
}

func BadgeFromDomain(b badges.Badge) Badge {
	row := Badge{
		ID:           b.ID,
		Name:         b.Name,
		Description:  b.Description,
		ImageURL:     b.ImageURL,
		Category:     string(b.Category),
		Rarity:       string(b.Rarity),
		DisplayOrder: b.DisplayOrder,
	}
	if b.Unlock != nil {
		row.CriteriaType = string(b.Unlock.Kind())
		row.CriteriaValue = b.Unlock.Value()
	}
	return row
}

// UserBadge is a grant. The composite primary key is what keeps a badge
// from being granted twice, including under concurrent evaluations.
type UserBadge struct {
	UserID     string    `gorm:"primaryKey;type:text" json:"userId"`
	BadgeID    string    `gorm:"primaryKey;type:text" json:"badgeId"`
	CourseID   string    `gorm:"type:text;index" json:"courseId"`
	Progress   int64     `gorm:"default:0" json:"progress"`
	UnlockedAt time.Time `gorm:"not null" json:"unlockedAt"`

	Badge Badge `gorm:"foreignKey:BadgeID" json:"badge"`
}
