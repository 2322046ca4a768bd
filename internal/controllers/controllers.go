package controllers

import (
	"savvy/internal/events"
	"savvy/internal/jobstore"
	"savvy/internal/services"

	cleanersController "savvy/internal/controllers/cleaners"
	jobsController "savvy/internal/controllers/jobs"
)

type Controllers struct {
	Jobs     jobsController.JobsControllerInterface
	Cleaners cleanersController.CleanersControllerInterface
}

func New(
	store *jobstore.Store,
	services services.Service,
	eventBus *events.EventBus,
) Controllers {
	return Controllers{
		Jobs:     jobsController.New(store, services, eventBus),
		Cleaners: cleanersController.New(store),
	}
}
