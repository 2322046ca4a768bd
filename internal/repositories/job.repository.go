package repositories

import (
	"context"

	"savvy/internal/database"
	. "savvy/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

const JOB_INSERT_BATCH_SIZE = 200

type JobRepository interface {
	GetAll(ctx context.Context) ([]Job, error)
	Count(ctx context.Context) (int64, error)
	CreateBatch(ctx context.Context, tx *gorm.DB, jobs []Job) error
	DeleteAll(ctx context.Context, tx *gorm.DB) error
}

type jobRepository struct {
	db  database.DB
	log logger.Logger
}

func NewJobRepository(db database.DB) JobRepository {
	return &jobRepository{
		db:  db,
		log: logger.New("jobRepository"),
	}
}

// GetAll returns every job ordered by id, which becomes the seed order.
func (r *jobRepository) GetAll(ctx context.Context) ([]Job, error) {
	log := r.log.TraceFromContext(ctx).Function("GetAll")

	var jobs []Job
	if err := r.db.SQLWithContext(ctx).Order("id").Find(&jobs).Error; err != nil {
		return nil, log.Err("failed to get jobs", err)
	}

	return jobs, nil
}

func (r *jobRepository) Count(ctx context.Context) (int64, error) {
	log := r.log.TraceFromContext(ctx).Function("Count")

	var count int64
	if err := r.db.SQLWithContext(ctx).Model(&Job{}).Count(&count).Error; err != nil {
		return 0, log.Err("failed to count jobs", err)
	}

	return count, nil
}

func (r *jobRepository) CreateBatch(ctx context.Context, tx *gorm.DB, jobs []Job) error {
	log := r.log.TraceFromContext(ctx).Function("CreateBatch")

	if len(jobs) == 0 {
		return nil
	}

	if err := tx.WithContext(ctx).CreateInBatches(&jobs, JOB_INSERT_BATCH_SIZE).Error; err != nil {
		return log.Err("failed to insert jobs", err, "count", len(jobs))
	}

	log.Info("Inserted jobs", "count", len(jobs))
	return nil
}

func (r *jobRepository) DeleteAll(ctx context.Context, tx *gorm.DB) error {
	log := r.log.TraceFromContext(ctx).Function("DeleteAll")

	if err := tx.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&Job{}).Error; err != nil {
		return log.Err("failed to delete jobs", err)
	}

	return nil
}
