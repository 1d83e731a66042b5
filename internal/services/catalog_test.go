package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pushp314/tradeacademy-backend/internal/database"
	"github.com/pushp314/tradeacademy-backend/internal/models"
	apperrors "github.com/pushp314/tradeacademy-backend/pkg/errors"
)

type countingLister struct {
	rows  []models.Badge
	err   error
	calls int
}

func (l *countingLister) List(context.Context) ([]models.Badge, error) {
	l.calls++
	return l.rows, l.err
}

func TestCatalogProvider_CachesInMemory(t *testing.T) {
	lister := &countingLister{rows: xpLadder()}
	p := NewCatalogProvider(lister, database.NewCache(nil), time.Minute)

	cat, err := p.Catalog(bg)
	require.NoError(t, err)
	assert.Equal(t, 3, cat.Len())

	_, err = p.Catalog(bg)
	require.NoError(t, err)
	assert.Equal(t, 1, lister.calls)

	p.Invalidate(bg)
	_, err = p.Catalog(bg)
	require.NoError(t, err)
	assert.Equal(t, 2, lister.calls)
}

func TestCatalogProvider_ZeroTTLAlwaysLoads(t *testing.T) {
	lister := &countingLister{rows: xpLadder()}
	p := NewCatalogProvider(lister, nil, 0)

	for i := 0; i < 3; i++ {
		_, err := p.Catalog(bg)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, lister.calls)
}

func TestCatalogProvider_Expires(t *testing.T) {
	lister := &countingLister{rows: xpLadder()}
	p := NewCatalogProvider(lister, nil, time.Millisecond)

	_, err := p.Catalog(bg)
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	_, err = p.Catalog(bg)
	require.NoError(t, err)
	assert.Equal(t, 2, lister.calls)
}

func TestCatalogProvider_Errors(t *testing.T) {
	down := apperrors.Unavailable("list badges", errors.New("refused"))
	p := NewCatalogProvider(&countingLister{err: down}, nil, time.Minute)
	_, err := p.Catalog(bg)
	assert.True(t, apperrors.IsUnavailable(err))

	bad := badgeRow("dup", "karma", 1, 1)
	p = NewCatalogProvider(&countingLister{rows: []models.Badge{bad}}, nil, time.Minute)
	_, err = p.Catalog(bg)
	assert.True(t, apperrors.IsConfiguration(err))
}
