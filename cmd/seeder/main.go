package main

import (
	"context"
	"flag"
	"os"

	"github.com/pushp314/tradeacademy-backend/internal/app"
	"github.com/pushp314/tradeacademy-backend/internal/badges"
	"github.com/pushp314/tradeacademy-backend/internal/config"
	"github.com/pushp314/tradeacademy-backend/internal/database"
	"github.com/pushp314/tradeacademy-backend/internal/repository"
	"github.com/pushp314/tradeacademy-backend/internal/seeds"
	"github.com/pushp314/tradeacademy-backend/internal/services"
	"github.com/pushp314/tradeacademy-backend/pkg/logger"
)

func main() {
	file := flag.String("file", "", "YAML badge catalog to seed instead of the built-in one")
	envFile := flag.String("env", ".env", "path to the .env file")
	flag.Parse()

	cfg, err := config.LoadConfig(*envFile)
	logger.Init(os.Getenv("GO_ENV"))
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load config")
	}

	defs, err := loadDefinitions(*file)
	if err != nil {
		logger.Fatal().Err(err).Msg("Invalid badge catalog")
	}

	ctx := context.Background()
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect database")
	}
	if err := app.Migrate(ctx, db); err != nil {
		logger.Fatal().Err(err).Msg("Failed to migrate")
	}

	if err := seeds.SeedBadges(ctx, repository.NewBadgeRepository(db), defs); err != nil {
		logger.Fatal().Err(err).Msg("Failed to seed badges")
	}

	// running servers pick the new catalog up once their in-memory copy expires
	cache := database.NewCache(database.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword))
	if err := cache.Delete(ctx, services.CatalogCacheKey); err != nil {
		logger.Warn().Err(err).Msg("Failed to clear cached catalog")
	}
}

func loadDefinitions(path string) ([]badges.Badge, error) {
	if path == "" {
		return seeds.DefaultBadges()
	}
	return badges.LoadFile(path)
}
