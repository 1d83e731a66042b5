package migrations

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/pushp314/tradeacademy-backend/pkg/logger"
)

// Migration is a schema change AutoMigrate cannot express.
type Migration struct {
	ID        string
	Name      string
	Up        func(db *gorm.DB) error
	DependsOn []string
}

// MigrationRecord tracks which migrations have been applied
type MigrationRecord struct {
	ID        string    `gorm:"primaryKey;type:text"`
	Name      string    `gorm:"type:text"`
	AppliedAt time.Time `gorm:"autoUpdateTime:nano"`
}

func (MigrationRecord) TableName() string {
	return "schema_migrations"
}

type Migrator struct {
	db         *gorm.DB
	migrations []Migration
}

func NewMigrator(db *gorm.DB) *Migrator {
	return &Migrator{
		db:         db,
		migrations: GetMigrations(),
	}
}

// Run applies pending migrations in order, each in its own transaction.
// It returns the ids it applied.
func (m *Migrator) Run(ctx context.Context) ([]string, error) {
	log := logger.Component("migrations")
	db := m.db.WithContext(ctx)

	if err := db.AutoMigrate(&MigrationRecord{}); err != nil {
		return nil, fmt.Errorf("failed to create migrations table: %w", err)
	}

	var applied []MigrationRecord
	if err := db.Find(&applied).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch applied migrations: %w", err)
	}
	appliedMap := make(map[string]bool, len(applied))
	for _, r := range applied {
		appliedMap[r.ID] = true
	}

	var ran []string
	for _, migration := range m.migrations {
		if appliedMap[migration.ID] {
			continue
		}
		for _, dep := range migration.DependsOn {
			if !appliedMap[dep] {
				return ran, fmt.Errorf("migration %s depends on %s which is not applied", migration.ID, dep)
			}
		}

		log.Info().Str("migration", migration.ID).Str("name", migration.Name).Msg("Running migration")
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := migration.Up(tx); err != nil {
				return err
			}
			return tx.Create(&MigrationRecord{ID: migration.ID, Name: migration.Name}).Error
		})
		if err != nil {
			log.Error().Err(err).Str("migration", migration.ID).Msg("Migration failed")
			return ran, fmt.Errorf("migration %s failed: %w", migration.ID, err)
		}

		appliedMap[migration.ID] = true
		ran = append(ran, migration.ID)
	}
	return ran, nil
}

// GetMigrations returns all registered migrations in order
func GetMigrations() []Migration {
	return []Migration{
		Migration001GrantIndexes(),
		Migration002ProgressIndexes(),
	}
}

func execAll(db *gorm.DB, stmts ...string) error {
	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
