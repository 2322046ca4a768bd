package jobs

import (
	"context"

	"savvy/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

// Dispatcher sends every scheduled notification that has come due.
type Dispatcher interface {
	DispatchScheduledNotifications(ctx context.Context) (int, error)
}

type NotificationDispatchJob struct {
	dispatcher Dispatcher
	log        logger.Logger
	schedule   services.Schedule
}

func NewNotificationDispatchJob(
	dispatcher Dispatcher,
	schedule services.Schedule,
) *NotificationDispatchJob {
	log := logger.New("notificationDispatchJob")
	log.Info("Creating new notification dispatch job", "schedule", schedule)

	return &NotificationDispatchJob{
		dispatcher: dispatcher,
		log:        log,
		schedule:   schedule,
	}
}

func (j *NotificationDispatchJob) Name() string {
	return "ScheduledNotificationDispatch"
}

func (j *NotificationDispatchJob) Execute(ctx context.Context) error {
	log := j.log.Function("Execute")

	sent, err := j.dispatcher.DispatchScheduledNotifications(ctx)
	if err != nil {
		return log.Err("failed to dispatch scheduled notifications", err)
	}

	if sent > 0 {
		log.Info("Dispatched scheduled notifications", "sent", sent)
	}
	return nil
}

func (j *NotificationDispatchJob) Schedule() services.Schedule {
	return j.schedule
}
