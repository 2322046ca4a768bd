package seed

import (
	"context"

	"savvy/internal/models"
	"savvy/internal/repositories"

	logger "github.com/Bparsons0904/goLogger"
)

// DatabaseSource reads the seed from postgres. Runtime changes are never
// written back.
type DatabaseSource struct {
	repos repositories.Repository
	log   logger.Logger
}

func NewDatabaseSource(repos repositories.Repository) *DatabaseSource {
	return &DatabaseSource{repos: repos, log: logger.New("seed").File("database")}
}

func (d *DatabaseSource) Name() string {
	return "database"
}

func (d *DatabaseSource) Load(ctx context.Context) ([]models.Job, []models.Cleaner, error) {
	log := d.log.TraceFromContext(ctx).Function("Load")

	cleaners, err := d.repos.Cleaner.GetAll(ctx)
	if err != nil {
		return nil, nil, log.Err("failed to load cleaners", err)
	}

	jobs, err := d.repos.Job.GetAll(ctx)
	if err != nil {
		return nil, nil, log.Err("failed to load jobs", err)
	}

	log.Info("Loaded seed from database", "jobs", len(jobs), "cleaners", len(cleaners))
	return jobs, cleaners, nil
}
