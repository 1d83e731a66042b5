package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pushp314/tradeacademy-backend/internal/badges"
	"github.com/pushp314/tradeacademy-backend/internal/repository"
	apperrors "github.com/pushp314/tradeacademy-backend/pkg/errors"
)

type memUploader struct {
	keys []string
	err  error
}

func (u *memUploader) Upload(_ context.Context, key string, body io.Reader, _ string) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	if _, err := io.ReadAll(body); err != nil {
		return "", err
	}
	u.keys = append(u.keys, key)
	return "https://cdn.example.com/" + key, nil
}

func firstTrade() badges.Badge {
	return badges.Badge{
		ID:       "first-trade",
		Name:     "First Trade",
		Category: badges.CategoryAchievement,
		Rarity:   badges.RarityCommon,
		Unlock:   badges.XPAtLeast{Threshold: 0},
	}
}

func TestBadgeAdmin_SaveInvalidatesCatalog(t *testing.T) {
	s := newStack(t)
	s.catalog = NewCatalogProvider(s.badges, nil, 0)
	admin := NewBadgeAdmin(s.badges, s.catalog, nil)

	cat, err := s.catalog.Catalog(bg)
	require.NoError(t, err)
	assert.Zero(t, cat.Len())

	require.NoError(t, admin.Save(bg, firstTrade()))
	cat, err = s.catalog.Catalog(bg)
	require.NoError(t, err)
	_, ok := cat.ByID("first-trade")
	assert.True(t, ok)
}

func TestBadgeAdmin_SaveRejectsBadInput(t *testing.T) {
	s := newStack(t)
	admin := NewBadgeAdmin(s.badges, s.catalog, nil)

	b := firstTrade()
	b.ImageURL = "http://insecure.example.com/x.png"
	var appErr *apperrors.AppError
	assert.True(t, errors.As(admin.Save(bg, b), &appErr))

	b = firstTrade()
	b.Unlock = badges.CourseCompletedCountAtLeast{Count: 0}
	assert.True(t, apperrors.IsConfiguration(admin.Save(bg, b)))
}

func TestBadgeAdmin_UploadImage(t *testing.T) {
	s := newStack(t)
	up := &memUploader{}
	admin := NewBadgeAdmin(s.badges, s.catalog, up)
	require.NoError(t, admin.Save(bg, firstTrade()))

	url, err := admin.UploadImage(bg, "first-trade", "art.PNG", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	require.Len(t, up.keys, 1)
	assert.True(t, strings.HasPrefix(up.keys[0], "badges/first-trade/"))
	assert.True(t, strings.HasSuffix(up.keys[0], ".png"))

	row, err := s.badges.Get(bg, "first-trade")
	require.NoError(t, err)
	assert.Equal(t, url, row.ImageURL)

	// saving the definition again without artwork keeps the upload
	require.NoError(t, admin.Save(bg, firstTrade()))
	row, err = s.badges.Get(bg, "first-trade")
	require.NoError(t, err)
	assert.Equal(t, url, row.ImageURL)
}

func TestBadgeAdmin_UploadImageErrors(t *testing.T) {
	s := newStack(t)

	_, err := NewBadgeAdmin(s.badges, s.catalog, &memUploader{}).UploadImage(bg, "x", "notes.pdf", strings.NewReader(""))
	var appErr *apperrors.AppError
	assert.True(t, errors.As(err, &appErr))

	_, err = NewBadgeAdmin(s.badges, s.catalog, nil).UploadImage(bg, "x", "a.png", strings.NewReader(""))
	assert.True(t, apperrors.IsUnavailable(err))

	_, err = NewBadgeAdmin(s.badges, s.catalog, &memUploader{}).UploadImage(bg, "missing", "a.png", strings.NewReader(""))
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestBadgeAdmin_SaveSanitizesText(t *testing.T) {
	s := newStack(t)
	admin := NewBadgeAdmin(s.badges, s.catalog, nil)

	b := firstTrade()
	b.Name = "<b>First</b> Trade"
	b.Description = "Placed a <script>x()</script>first trade."
	require.NoError(t, admin.Save(bg, b))

	row, err := s.badges.Get(bg, "first-trade")
	require.NoError(t, err)
	assert.Equal(t, "First Trade", row.Name)
	assert.Equal(t, "Placed a first trade.", row.Description)

	b.Name = "<p></p>"
	var appErr *apperrors.AppError
	assert.True(t, errors.As(admin.Save(bg, b), &appErr))
}

func TestBadgeAdmin_SaveRequiresSlugID(t *testing.T) {
	s := newStack(t)
	admin := NewBadgeAdmin(s.badges, s.catalog, nil)

	b := firstTrade()
	b.ID = "First Trade"
	var appErr *apperrors.AppError
	require.True(t, errors.As(admin.Save(bg, b), &appErr))
	assert.Contains(t, appErr.Message, "slug")
}
