package seed

import (
	"context"

	"savvy/config"
	"savvy/internal/database"
	"savvy/internal/repositories"
	"savvy/internal/services"

	dataSeed "savvy/internal/seed"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

// Seed replaces the jobs and cleaners tables with generated data so the
// database seed source has something to load.
func Seed(ctx context.Context, db database.DB, config config.Config, log logger.Logger) error {
	log = log.Function("seed")
	log.Info("Seeding development data")

	source := dataSeed.NewGeneratorSource(dataSeed.GeneratorOptions{
		Jobs:     config.SeedJobCount,
		Cleaners: config.SeedCleanerCount,
		Seed:     config.SeedRandom,
	})

	jobs, cleaners, err := source.Load(ctx)
	if err != nil {
		return log.Err("failed to generate seed data", err)
	}

	repos := repositories.New(db)
	transaction := services.NewTransactionService(db)

	err = transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		if err := repos.Job.DeleteAll(ctx, tx); err != nil {
			return err
		}
		if err := repos.Cleaner.DeleteAll(ctx, tx); err != nil {
			return err
		}
		if err := repos.Cleaner.CreateBatch(ctx, tx, cleaners); err != nil {
			return err
		}
		return repos.Job.CreateBatch(ctx, tx, jobs)
	})
	if err != nil {
		return log.Err("failed to write seed data", err)
	}

	log.Info("Seeded development data", "jobs", len(jobs), "cleaners", len(cleaners))
	return nil
}
