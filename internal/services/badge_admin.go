package services

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/pushp314/tradeacademy-backend/internal/badges"
	"github.com/pushp314/tradeacademy-backend/internal/storage"
	apperrors "github.com/pushp314/tradeacademy-backend/pkg/errors"
	"github.com/pushp314/tradeacademy-backend/pkg/logger"
	"github.com/pushp314/tradeacademy-backend/pkg/utils"
)

// BadgeWriter edits catalog rows.
type BadgeWriter interface {
	Upsert(ctx context.Context, b badges.Badge) error
	SetImage(ctx context.Context, id, url string) error
}

// CatalogInvalidator drops cached catalogs.
type CatalogInvalidator interface {
	Invalidate(ctx context.Context)
}

// BadgeAdmin edits the catalog. Every successful write invalidates the
// cached catalog so the next evaluation sees it.
type BadgeAdmin struct {
	repo     BadgeWriter
	cache    CatalogInvalidator
	uploader storage.Uploader
}

func NewBadgeAdmin(repo BadgeWriter, cache CatalogInvalidator, uploader storage.Uploader) *BadgeAdmin {
	return &BadgeAdmin{repo: repo, cache: cache, uploader: uploader}
}

const (
	maxBadgeNameLength        = 60
	maxBadgeDescriptionLength = 280
)

// Save validates and stores a definition. Display text is stripped of markup.
func (a *BadgeAdmin) Save(ctx context.Context, b badges.Badge) error {
	if b.ID == "" || utils.GenerateSlug(b.ID) != b.ID {
		return apperrors.BadRequest("badge id must be a lowercase slug")
	}
	var err error
	if b.Name, err = utils.SanitizeText(b.Name, maxBadgeNameLength, true); err != nil {
		return apperrors.BadRequest("name: " + err.Error())
	}
	if b.Description, err = utils.SanitizeText(b.Description, maxBadgeDescriptionLength, false); err != nil {
		return apperrors.BadRequest("description: " + err.Error())
	}
	if b.ImageURL != "" {
		if err := utils.ValidateImageURL(b.ImageURL); err != nil {
			return apperrors.BadRequest(err.Error())
		}
	}
	if err := a.repo.Upsert(ctx, b); err != nil {
		return err
	}
	a.cache.Invalidate(ctx)
	logger.Info().Str("badge_id", b.ID).Msg("badge definition saved")
	return nil
}

// UploadImage stores new artwork for badge id and returns its URL.
func (a *BadgeAdmin) UploadImage(ctx context.Context, id, filename string, body io.Reader) (string, error) {
	ext, contentType, ok := utils.ImageContentType(filename)
	if !ok {
		return "", apperrors.BadRequest("unsupported image type")
	}
	if a.uploader == nil {
		return "", apperrors.Unavailable("upload badge image", storage.ErrDisabled)
	}

	key := fmt.Sprintf("badges/%s/%s%s", id, uuid.NewString(), ext)
	url, err := a.uploader.Upload(ctx, key, body, contentType)
	if err != nil {
		return "", apperrors.Unavailable("upload badge image", err)
	}
	if err := a.repo.SetImage(ctx, id, url); err != nil {
		return "", err
	}
	a.cache.Invalidate(ctx)
	logger.Info().Str("badge_id", id).Str("key", key).Msg("badge image uploaded")
	return url, nil
}
