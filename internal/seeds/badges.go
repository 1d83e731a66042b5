package seeds

import (
	"bytes"
	"context"
	_ "embed"

	"github.com/pushp314/tradeacademy-backend/internal/badges"
	"github.com/pushp314/tradeacademy-backend/pkg/logger"
)

//go:embed default_catalog.yaml
var defaultCatalog []byte

// BadgeUpserter stores one definition.
type BadgeUpserter interface {
	Upsert(ctx context.Context, b badges.Badge) error
}

// DefaultBadges decodes the catalog shipped with the binary.
func DefaultBadges() ([]badges.Badge, error) {
	return badges.DecodeYAML(bytes.NewReader(defaultCatalog))
}

// SeedBadges upserts defs. Running it again updates definitions in place
// and never touches grants.
func SeedBadges(ctx context.Context, repo BadgeUpserter, defs []badges.Badge) error {
	logger.Info().Int("badges", len(defs)).Msg("Seeding badge catalog")
	for _, b := range defs {
		if err := repo.Upsert(ctx, b); err != nil {
			return err
		}
	}
	logger.Info().Msg("Badge catalog seeded")
	return nil
}
