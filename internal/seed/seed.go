// Package seed loads the initial jobs and cleaners the store is built from.
package seed

import (
	"context"

	"savvy/config"
	"savvy/internal/database"
	"savvy/internal/models"
	"savvy/internal/repositories"

	logger "github.com/Bparsons0904/goLogger"
)

// Source produces a seed. The store validates it, so sources only need to
// fetch or fabricate data.
type Source interface {
	Name() string
	Load(ctx context.Context) ([]models.Job, []models.Cleaner, error)
}

// New picks the source named by SEED_SOURCE.
func New(cfg config.Config, db database.DB) (Source, error) {
	log := logger.New("seed").Function("New")

	switch cfg.SeedSource {
	case "", config.SeedSourceGenerator:
		return NewGeneratorSource(GeneratorOptions{
			Jobs:     cfg.SeedJobCount,
			Cleaners: cfg.SeedCleanerCount,
			Seed:     cfg.SeedRandom,
		}), nil
	case config.SeedSourceDatabase:
		if db.SQL == nil {
			return nil, log.ErrMsg("database seed source requires a database connection")
		}
		return NewDatabaseSource(repositories.New(db)), nil
	case config.SeedSourceSupabase:
		return NewSupabaseSource(cfg.SupabaseURL, cfg.SupabaseKey)
	}

	return nil, log.Error("unknown seed source", "seedSource", cfg.SeedSource)
}
