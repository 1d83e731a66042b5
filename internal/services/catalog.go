package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/pushp314/tradeacademy-backend/internal/badges"
	"github.com/pushp314/tradeacademy-backend/internal/database"
	"github.com/pushp314/tradeacademy-backend/internal/models"
	"github.com/pushp314/tradeacademy-backend/internal/repository"
	"github.com/pushp314/tradeacademy-backend/pkg/logger"
)

// CatalogCacheKey is the Redis key holding the raw catalog rows.
const CatalogCacheKey = "badges:catalog:v1"

// BadgeLister reads the raw catalog rows.
type BadgeLister interface {
	List(ctx context.Context) ([]models.Badge, error)
}

// CatalogProvider serves the catalog from process memory, then Redis, then
// the database. Each tier lives for ttl; a zero ttl disables caching.
type CatalogProvider struct {
	repo  BadgeLister
	cache *database.Cache
	ttl   time.Duration

	mu        sync.RWMutex
	cached    *badges.Catalog
	expiresAt time.Time
}

func NewCatalogProvider(repo BadgeLister, cache *database.Cache, ttl time.Duration) *CatalogProvider {
	return &CatalogProvider{repo: repo, cache: cache, ttl: ttl}
}

func (p *CatalogProvider) Catalog(ctx context.Context) (*badges.Catalog, error) {
	if p.ttl > 0 {
		p.mu.RLock()
		if p.cached != nil && time.Now().Before(p.expiresAt) {
			cat := p.cached
			p.mu.RUnlock()
			return cat, nil
		}
		p.mu.RUnlock()
	}

	rows, err := p.loadRows(ctx)
	if err != nil {
		return nil, err
	}
	cat, err := repository.CatalogFromRows(rows)
	if err != nil {
		logger.Error().Err(err).Msg("badge catalog failed validation")
		return nil, err
	}

	if p.ttl > 0 {
		p.mu.Lock()
		p.cached = cat
		p.expiresAt = time.Now().Add(p.ttl)
		p.mu.Unlock()
	}
	return cat, nil
}

func (p *CatalogProvider) loadRows(ctx context.Context) ([]models.Badge, error) {
	var rows []models.Badge
	if p.ttl > 0 {
		err := p.cache.Get(ctx, CatalogCacheKey, &rows)
		if err == nil {
			return rows, nil
		}
		if !errors.Is(err, database.ErrCacheMiss) {
			logger.Warn().Err(err).Msg("catalog cache read failed")
		}
	}

	rows, err := p.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if p.ttl > 0 {
		if err := p.cache.Set(ctx, CatalogCacheKey, rows, p.ttl); err != nil {
			logger.Warn().Err(err).Msg("catalog cache write failed")
		}
	}
	return rows, nil
}

// Invalidate drops every cached copy. Call it after editing the catalog.
func (p *CatalogProvider) Invalidate(ctx context.Context) {
	p.mu.Lock()
	p.cached = nil
	p.mu.Unlock()

	if err := p.cache.Delete(ctx, CatalogCacheKey); err != nil {
		logger.Warn().Err(err).Msg("catalog cache invalidate failed")
	}
}
