package repositories

import (
	"savvy/internal/database"
)

type Repository struct {
	Job     JobRepository
	Cleaner CleanerRepository
}

func New(db database.DB) Repository {
	return Repository{
		Job:     NewJobRepository(db),
		Cleaner: NewCleanerRepository(db),
	}
}
