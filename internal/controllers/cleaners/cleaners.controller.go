package cleanersController

import (
	"context"
	"errors"
	"fmt"

	"savvy/internal/jobstore"
	"savvy/internal/models"

	logger "github.com/Bparsons0904/goLogger"
)

var ErrCleanerNotFound = errors.New("cleaner not found")

type ListCleanersRequest struct {
	Available *bool
	// Located keeps only available cleaners that report coordinates.
	Located bool
}

type CleanersControllerInterface interface {
	ListCleaners(ctx context.Context, request ListCleanersRequest) []models.Cleaner
	GetCleaner(ctx context.Context, cleanerID int) (models.Cleaner, error)
}

type CleanersController struct {
	store *jobstore.Store
	log   logger.Logger
}

func New(store *jobstore.Store) CleanersControllerInterface {
	return &CleanersController{
		store: store,
		log:   logger.New("cleanersController"),
	}
}

func (c *CleanersController) ListCleaners(
	ctx context.Context,
	request ListCleanersRequest,
) []models.Cleaner {
	var cleaners []models.Cleaner
	if request.Located {
		cleaners = c.store.LocatedCleaners()
	} else {
		cleaners = c.store.Cleaners()
	}

	if request.Available == nil {
		return cleaners
	}

	filtered := make([]models.Cleaner, 0, len(cleaners))
	for _, cleaner := range cleaners {
		if cleaner.Available == *request.Available {
			filtered = append(filtered, cleaner)
		}
	}
	return filtered
}

func (c *CleanersController) GetCleaner(ctx context.Context, cleanerID int) (models.Cleaner, error) {
	cleaner, ok := c.store.Cleaner(cleanerID)
	if !ok {
		return models.Cleaner{}, c.log.TraceFromContext(ctx).Function("GetCleaner").Err(
			"cleaner lookup failed",
			fmt.Errorf("%w: %d", ErrCleanerNotFound, cleanerID),
		)
	}
	return cleaner, nil
}
