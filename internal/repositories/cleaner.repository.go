package repositories

import (
	"context"

	"savvy/internal/database"
	. "savvy/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

type CleanerRepository interface {
	GetAll(ctx context.Context) ([]Cleaner, error)
	CreateBatch(ctx context.Context, tx *gorm.DB, cleaners []Cleaner) error
	DeleteAll(ctx context.Context, tx *gorm.DB) error
}

type cleanerRepository struct {
	db  database.DB
	log logger.Logger
}

func NewCleanerRepository(db database.DB) CleanerRepository {
	return &cleanerRepository{
		db:  db,
		log: logger.New("cleanerRepository"),
	}
}

func (r *cleanerRepository) GetAll(ctx context.Context) ([]Cleaner, error) {
	log := r.log.TraceFromContext(ctx).Function("GetAll")

	var cleaners []Cleaner
	if err := r.db.SQLWithContext(ctx).Order("id").Find(&cleaners).Error; err != nil {
		return nil, log.Err("failed to get cleaners", err)
	}

	return cleaners, nil
}

func (r *cleanerRepository) CreateBatch(ctx context.Context, tx *gorm.DB, cleaners []Cleaner) error {
	log := r.log.TraceFromContext(ctx).Function("CreateBatch")

	if len(cleaners) == 0 {
		return nil
	}

	if err := tx.WithContext(ctx).CreateInBatches(&cleaners, JOB_INSERT_BATCH_SIZE).Error; err != nil {
		return log.Err("failed to insert cleaners", err, "count", len(cleaners))
	}

	log.Info("Inserted cleaners", "count", len(cleaners))
	return nil
}

func (r *cleanerRepository) DeleteAll(ctx context.Context, tx *gorm.DB) error {
	log := r.log.TraceFromContext(ctx).Function("DeleteAll")

	if err := tx.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&Cleaner{}).Error; err != nil {
		return log.Err("failed to delete cleaners", err)
	}

	return nil
}
