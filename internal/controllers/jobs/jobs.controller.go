package jobsController

import (
	"context"
	"errors"
	"fmt"
	"time"

	"savvy/internal/events"
	"savvy/internal/jobstore"
	"savvy/internal/models"
	"savvy/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

var ErrNoRecipients = errors.New("no assigned jobs selected")

type AssignRequest struct {
	CleanerID int   `json:"cleanerId"`
	JobIDs    []int `json:"jobIds,omitempty"`
}

type PrintRequest struct {
	JobIDs []int `json:"jobIds,omitempty"`
}

type PrintResponse struct {
	jobstore.PrintResult
	Jobs []models.JobView `json:"jobs"`
}

type ScheduleNotificationRequest struct {
	Date string                  `json:"date"`
	Time string                  `json:"time"`
	Type models.NotificationType `json:"type"`
}

type NotifyRequest struct {
	Type services.Template `json:"type"`
}

type BulkMessageRequest struct {
	Message string `json:"message"`
}

type SelectionResponse struct {
	JobIDs []int `json:"jobIds"`
	Count  int   `json:"count"`
}

type JobsControllerInterface interface {
	ListJobs(ctx context.Context, criteria jobstore.Criteria) ([]models.JobView, error)
	GetJob(ctx context.Context, jobID int) (models.JobView, error)
	GetStats(ctx context.Context) jobstore.Stats
	GetLocations(ctx context.Context) []string
	ToggleGuestStatus(ctx context.Context, jobID int) (models.JobView, error)
	ScheduleNotification(
		ctx context.Context,
		jobID int,
		request ScheduleNotificationRequest,
	) (jobstore.ScheduleResult, error)
	NotifyCleaner(ctx context.Context, jobID int, request NotifyRequest) (services.NotifyResult, error)
	PrintJobs(ctx context.Context, request PrintRequest) PrintResponse
	GetSelection(ctx context.Context) SelectionResponse
	ToggleSelection(ctx context.Context, jobID int, selected bool) SelectionResponse
	ClearSelection(ctx context.Context) SelectionResponse
	AssignJobs(ctx context.Context, request AssignRequest) (jobstore.AssignResult, error)
	SendBulkMessage(ctx context.Context, request BulkMessageRequest) (services.BulkResult, error)
	DispatchScheduledNotifications(ctx context.Context) (int, error)
}

type JobsController struct {
	store         *jobstore.Store
	notifications *services.NotificationService
	eventBus      *events.EventBus
	now           func() time.Time
	log           logger.Logger
}

func New(
	store *jobstore.Store,
	services services.Service,
	eventBus *events.EventBus,
) JobsControllerInterface {
	return &JobsController{
		store:         store,
		notifications: services.Notification,
		eventBus:      eventBus,
		now:           time.Now,
		log:           logger.New("jobsController"),
	}
}

func (c *JobsController) ListJobs(
	ctx context.Context,
	criteria jobstore.Criteria,
) ([]models.JobView, error) {
	log := c.log.TraceFromContext(ctx).Function("ListJobs")

	jobs, err := c.store.Filter(criteria)
	if err != nil {
		return nil, log.Err("invalid filter", err, "status", criteria.Status)
	}

	return c.store.Views(jobs), nil
}

func (c *JobsController) GetJob(ctx context.Context, jobID int) (models.JobView, error) {
	job, ok := c.store.Job(jobID)
	if !ok {
		return models.JobView{}, fmt.Errorf("%w: %d", jobstore.ErrJobNotFound, jobID)
	}
	return c.store.View(job), nil
}

func (c *JobsController) GetStats(ctx context.Context) jobstore.Stats {
	return c.store.Stats()
}

func (c *JobsController) GetLocations(ctx context.Context) []string {
	return c.store.Locations()
}

func (c *JobsController) ToggleGuestStatus(ctx context.Context, jobID int) (models.JobView, error) {
	log := c.log.TraceFromContext(ctx).Function("ToggleGuestStatus")

	job, ok := c.store.ToggleGuestStatus(jobID)
	if !ok {
		log.Debug("Guest status toggle skipped, job not found", "jobID", jobID)
		return models.JobView{}, fmt.Errorf("%w: %d", jobstore.ErrJobNotFound, jobID)
	}

	log.Info("Guest status toggled", "jobID", jobID, "guestsOut", job.GuestsOut)
	c.publishJobsChanged(ctx, "guest_status", []int{jobID})
	return c.store.View(job), nil
}

func (c *JobsController) ScheduleNotification(
	ctx context.Context,
	jobID int,
	request ScheduleNotificationRequest,
) (jobstore.ScheduleResult, error) {
	log := c.log.TraceFromContext(ctx).Function("ScheduleNotification")

	result, err := c.store.ScheduleNotification(jobID, models.ScheduledNotification{
		Date: request.Date,
		Time: request.Time,
		Type: request.Type,
	})
	if err != nil {
		return jobstore.ScheduleResult{}, log.Err("failed to schedule notification", err, "jobID", jobID)
	}
	if !result.Found {
		return result, fmt.Errorf("%w: %d", jobstore.ErrJobNotFound, jobID)
	}

	log.Info("Notification scheduled", "jobID", jobID, "at", result.At, "type", request.Type)
	c.publish(ctx, events.NOTIFICATIONS_CHANNEL, events.NOTIFICATION_PENDING, map[string]any{
		"jobId":       jobID,
		"cleanerName": result.CleanerName,
		"at":          result.At,
		"type":        request.Type,
	})
	c.publishJobsChanged(ctx, "schedule", []int{jobID})
	return result, nil
}

func (c *JobsController) NotifyCleaner(
	ctx context.Context,
	jobID int,
	request NotifyRequest,
) (services.NotifyResult, error) {
	job, err := c.GetJob(ctx, jobID)
	if err != nil {
		return services.NotifyResult{}, err
	}

	template := request.Type
	if template == "" {
		template = services.TemplateFull
	}

	return c.notifications.Notify(ctx, job, template)
}

// PrintJobs marks the requested jobs, or the selection when none are given,
// as printed and returns the sheets to render.
func (c *JobsController) PrintJobs(ctx context.Context, request PrintRequest) PrintResponse {
	log := c.log.TraceFromContext(ctx).Function("PrintJobs")

	result := c.store.MarkPrinted(request.JobIDs)

	response := PrintResponse{
		PrintResult: result,
		Jobs:        make([]models.JobView, 0, len(result.JobIDs)),
	}
	for _, id := range result.JobIDs {
		if job, ok := c.store.Job(id); ok {
			response.Jobs = append(response.Jobs, c.store.View(job))
		}
	}

	log.Info("Jobs printed", "printed", result.PrintedCount, "skipped", len(result.SkippedIDs))
	if result.PrintedCount > 0 {
		c.publishJobsChanged(ctx, "print", result.JobIDs)
	}
	c.publishSelection(ctx)
	return response
}

func (c *JobsController) GetSelection(ctx context.Context) SelectionResponse {
	return selectionResponse(c.store.Selected())
}

func (c *JobsController) ToggleSelection(
	ctx context.Context,
	jobID int,
	selected bool,
) SelectionResponse {
	c.store.ToggleSelection(jobID, selected)
	return c.publishSelection(ctx)
}

func (c *JobsController) ClearSelection(ctx context.Context) SelectionResponse {
	c.store.ClearSelection()
	return c.publishSelection(ctx)
}

// AssignJobs assigns the requested jobs, or the selection when none are
// given, to one cleaner.
func (c *JobsController) AssignJobs(
	ctx context.Context,
	request AssignRequest,
) (jobstore.AssignResult, error) {
	log := c.log.TraceFromContext(ctx).Function("AssignJobs")

	ids := request.JobIDs
	if len(ids) == 0 {
		ids = c.store.Selected()
	}

	result, err := c.store.Assign(ids, request.CleanerID)
	if err != nil {
		return jobstore.AssignResult{}, log.Err(
			"assignment rejected",
			err,
			"cleanerID", request.CleanerID,
			"jobCount", len(ids),
		)
	}

	log.Info(
		"Jobs assigned",
		"cleanerID", result.CleanerID,
		"updated", result.UpdatedCount,
		"skipped", len(result.SkippedIDs),
	)
	c.publishJobsChanged(ctx, "assign", result.JobIDs)
	c.publishSelection(ctx)
	return result, nil
}

// SendBulkMessage texts every cleaner assigned to a selected job once. The
// selection is left as is.
func (c *JobsController) SendBulkMessage(
	ctx context.Context,
	request BulkMessageRequest,
) (services.BulkResult, error) {
	log := c.log.TraceFromContext(ctx).Function("SendBulkMessage")

	recipients := c.store.Recipients(c.store.Selected())
	if len(recipients) == 0 {
		return services.BulkResult{}, log.Err("cannot send bulk message", ErrNoRecipients)
	}

	return c.notifications.Bulk(ctx, recipients, request.Message)
}

func (c *JobsController) DispatchScheduledNotifications(ctx context.Context) (int, error) {
	jobs := c.store.Views(c.store.Jobs())
	return c.notifications.DispatchDue(ctx, jobs, c.now())
}

func (c *JobsController) publishJobsChanged(ctx context.Context, reason string, jobIDs []int) {
	c.publish(ctx, events.JOBS_CHANNEL, events.JOBS_CHANGED, map[string]any{
		"reason":  reason,
		"jobIds":  jobIDs,
		"version": c.store.Version(),
		"stats":   c.store.Stats(),
	})
}

func (c *JobsController) publishSelection(ctx context.Context) SelectionResponse {
	response := selectionResponse(c.store.Selected())
	c.publish(ctx, events.JOBS_CHANNEL, events.SELECTION_CHANGED, map[string]any{
		"jobIds": response.JobIDs,
		"count":  response.Count,
	})
	return response
}

func (c *JobsController) publish(
	ctx context.Context,
	channel events.Channel,
	messageType events.MessageType,
	data map[string]any,
) {
	if c.eventBus == nil {
		return
	}
	if err := c.eventBus.Publish(channel, events.Event{Type: messageType, Data: data}); err != nil {
		c.log.TraceFromContext(ctx).Function("publish").Warn(
			"Failed to publish event",
			"type", messageType,
			"error", err,
		)
	}
}

func selectionResponse(ids []int) SelectionResponse {
	return SelectionResponse{JobIDs: ids, Count: len(ids)}
}
