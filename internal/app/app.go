// Package app wires configuration, persistence, services and the HTTP
// router for the binaries under cmd/.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pushp314/tradeacademy-backend/internal/config"
	"github.com/pushp314/tradeacademy-backend/internal/database"
	"github.com/pushp314/tradeacademy-backend/internal/handlers"
	"github.com/pushp314/tradeacademy-backend/internal/migrations"
	"github.com/pushp314/tradeacademy-backend/internal/models"
	"github.com/pushp314/tradeacademy-backend/internal/repository"
	"github.com/pushp314/tradeacademy-backend/internal/routes"
	"github.com/pushp314/tradeacademy-backend/internal/services"
	"github.com/pushp314/tradeacademy-backend/internal/storage"
	"github.com/pushp314/tradeacademy-backend/pkg/logger"
)

type Repos struct {
	Progress *repository.ProgressRepository
	Grants   *repository.GrantRepository
	Badges   *repository.BadgeRepository
	Feed     *repository.FeedRepository
}

type Services struct {
	Catalog  *services.CatalogProvider
	Activity *services.ActivityRecorder
	Awards   *services.AwardService
	Tracker  *services.Tracker
	Showcase *services.ShowcaseService
	Admin    *services.BadgeAdmin
	Sweeper  *services.Sweeper
}

type App struct {
	Cfg      config.Config
	DB       *gorm.DB
	Redis    *redis.Client
	Cache    *database.Cache
	Repos    Repos
	Services Services
}

// New connects to the database and Redis, migrates the schema and wires
// every service. Close releases the connections.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := Migrate(ctx, db); err != nil {
		return nil, err
	}

	rdb := database.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword)
	a := &App{Cfg: cfg, DB: db, Redis: rdb, Cache: database.NewCache(rdb)}

	uploader, err := storage.NewR2(ctx, storage.R2Options{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		Bucket:          cfg.R2BucketName,
		PublicURL:       cfg.R2PublicURL,
	})
	if errors.Is(err, storage.ErrDisabled) {
		logger.Warn().Msg("R2 not configured, badge image uploads disabled")
	} else if err != nil {
		return nil, err
	}

	a.Repos = wireRepos(db)
	a.Services = wireServices(cfg, a.Repos, db, a.Cache, uploader)
	return a, nil
}

// Migrate creates the tables and applies the raw SQL migrations.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	if _, err := migrations.NewMigrator(db).Run(ctx); err != nil {
		return err
	}
	return nil
}

func wireRepos(db *gorm.DB) Repos {
	return Repos{
		Progress: repository.NewProgressRepository(db),
		Grants:   repository.NewGrantRepository(db),
		Badges:   repository.NewBadgeRepository(db),
		Feed:     repository.NewFeedRepository(db),
	}
}

func wireServices(cfg config.Config, r Repos, db *gorm.DB, cache *database.Cache, uploader *storage.R2) Services {
	catalog := services.NewCatalogProvider(r.Badges, cache, cfg.CatalogCacheTTL)
	activity := services.NewActivityRecorder(db)
	awards := services.NewAwardService(r.Progress, r.Grants, catalog, activity)

	var up storage.Uploader
	if uploader != nil {
		up = uploader
	}

	return Services{
		Catalog:  catalog,
		Activity: activity,
		Awards:   awards,
		Tracker:  services.NewTracker(r.Progress, awards, activity),
		Showcase: services.NewShowcaseService(catalog, r.Grants, r.Progress),
		Admin:    services.NewBadgeAdmin(r.Badges, catalog, up),
		Sweeper:  services.NewSweeper(r.Progress, awards, cfg.SweepConcurrency, cfg.SweepBatchSize),
	}
}

// Router builds the HTTP handler tree.
func (a *App) Router() *gin.Engine {
	s := a.Services
	return routes.NewRouter(routes.Options{
		JWTSecret:   a.Cfg.JWTSecret,
		FrontendURL: a.Cfg.FrontendURL,
	}, routes.Handlers{
		Progress: handlers.NewProgressHandler(s.Tracker, s.Awards, a.Repos.Progress),
		Badges:   handlers.NewBadgeHandler(s.Catalog, s.Showcase),
		Admin:    handlers.NewAdminBadgeHandler(s.Admin, s.Sweeper),
		Feed:     handlers.NewFeedHandler(a.Repos.Feed),
		Health:   handlers.NewHealthHandler(a.DB, a.Cache),
	})
}

func (a *App) Close() {
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
