package jobs

import (
	"savvy/config"
	"savvy/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

func RegisterAllJobs(
	schedulerService *services.SchedulerService,
	config config.Config,
	dispatcher Dispatcher,
) error {
	log := logger.New("jobs").Function("RegisterAllJobs")

	if !config.SchedulerEnabled {
		log.Info("Scheduler disabled, skipping job registration")
		return nil
	}

	dispatchJob := NewNotificationDispatchJob(dispatcher, services.EveryMinute)
	if err := schedulerService.AddJob(dispatchJob); err != nil {
		return log.Err("failed to register notification dispatch job", err)
	}
	log.Info("Registered notification dispatch job", "schedule", dispatchJob.Schedule())

	return nil
}
