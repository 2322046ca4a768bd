package jobsController

import (
	"context"
	"sync"
	"testing"
	"time"

	"savvy/internal/events"
	"savvy/internal/jobstore"
	"savvy/internal/models"
	"savvy/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	mu       sync.Mutex
	messages []services.Message
}

func (s *recordingSender) Send(ctx context.Context, message services.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, message)
	return nil
}

type fixture struct {
	controller *JobsController
	store      *jobstore.Store
	sender     *recordingSender
	events     chan events.Event
}

func intPtr(i int) *int {
	return &i
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	cleaners := []models.Cleaner{
		{BaseModel: models.BaseModel{ID: 1}, Name: "Sarah Johnson", Phone: "555-0100", Email: "sarah@example.com", Available: true},
		{BaseModel: models.BaseModel{ID: 2}, Name: "Mike Smith", Phone: "555-0200", Email: "mike@example.com", Available: false},
	}
	jobs := []models.Job{
		{BaseModel: models.BaseModel{ID: 1}, Location: "A", Room: "101", Date: "2024-01-01", GuestCount: 1},
		{BaseModel: models.BaseModel{ID: 2}, Location: "B", Room: "202", Date: "2024-01-01", GuestCount: 2},
		{BaseModel: models.BaseModel{ID: 3}, Location: "A", Room: "303", Date: "2024-01-02", GuestCount: 1, CleanerID: intPtr(2)},
	}

	store, err := jobstore.New(jobs, cleaners)
	require.NoError(t, err)

	bus := events.New(nil)
	t.Cleanup(func() { _ = bus.Close() })

	received := make(chan events.Event, 64)
	handler := func(event events.Event) error {
		received <- event
		return nil
	}
	require.NoError(t, bus.Subscribe(events.JOBS_CHANNEL, handler))
	require.NoError(t, bus.Subscribe(events.NOTIFICATIONS_CHANNEL, handler))

	sender := &recordingSender{}
	service := services.Service{
		Notification: services.NewNotificationService(sender, services.NewMemoryLedger()),
	}

	controller := New(store, service, bus).(*JobsController)
	controller.now = func() time.Time {
		return time.Date(2024, 1, 1, 9, 0, 0, 0, time.Local)
	}

	return fixture{controller: controller, store: store, sender: sender, events: received}
}

func (f fixture) waitFor(t *testing.T, messageType events.MessageType) events.Event {
	t.Helper()
	deadline := time.After(time.Second)
	for {
		select {
		case event := <-f.events:
			if event.Type == messageType {
				return event
			}
		case <-deadline:
			t.Fatalf("no %s event published", messageType)
		}
	}
}

func TestListJobs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	jobs, err := f.controller.ListJobs(ctx, jobstore.Criteria{Location: "A"})
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, 1, jobs[0].ID)
	require.NotNil(t, jobs[1].Assigned)
	assert.Equal(t, "Mike Smith", jobs[1].Assigned.Name)

	_, err = f.controller.ListJobs(ctx, jobstore.Criteria{Status: "done"})
	assert.ErrorIs(t, err, jobstore.ErrInvalidStatus)
}

func TestGetJob(t *testing.T) {
	f := newFixture(t)

	job, err := f.controller.GetJob(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "202", job.Room)

	_, err = f.controller.GetJob(context.Background(), 42)
	assert.ErrorIs(t, err, jobstore.ErrJobNotFound)
}

func TestAssignJobs_UsesSelection(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.controller.ToggleSelection(ctx, 1, true)
	selection := f.controller.ToggleSelection(ctx, 2, true)
	assert.Equal(t, SelectionResponse{JobIDs: []int{1, 2}, Count: 2}, selection)

	result, err := f.controller.AssignJobs(ctx, AssignRequest{CleanerID: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, result.UpdatedCount)
	assert.Equal(t, "Sarah Johnson", result.CleanerName)
	assert.Empty(t, f.controller.GetSelection(ctx).JobIDs)

	event := f.waitFor(t, events.JOBS_CHANGED)
	assert.Equal(t, "assign", event.Data["reason"])
	stats, ok := event.Data["stats"].(jobstore.Stats)
	require.True(t, ok)
	assert.Equal(t, 3, stats.Assigned)
}

func TestAssignJobs_Rejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.controller.AssignJobs(ctx, AssignRequest{CleanerID: 1})
	assert.ErrorIs(t, err, jobstore.ErrInvalidAssignment, "empty selection")

	_, err = f.controller.AssignJobs(ctx, AssignRequest{CleanerID: 2, JobIDs: []int{1}})
	assert.ErrorIs(t, err, jobstore.ErrInvalidAssignment, "unavailable cleaner")

	assert.Equal(t, 1, f.controller.GetStats(ctx).Assigned)
}

func TestPrintJobs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.controller.ToggleSelection(ctx, 3, true)
	response := f.controller.PrintJobs(ctx, PrintRequest{})

	assert.Equal(t, 1, response.PrintedCount)
	require.Len(t, response.Jobs, 1)
	assert.Equal(t, models.JobStatusPrinted, response.Jobs[0].Status)
	assert.Equal(t, "Mike Smith", response.Jobs[0].Assigned.Name)
	assert.Zero(t, f.controller.GetSelection(ctx).Count)

	response = f.controller.PrintJobs(ctx, PrintRequest{JobIDs: []int{1, 99}})
	assert.Equal(t, 1, response.PrintedCount)
	assert.Equal(t, []int{99}, response.SkippedIDs)
}

func TestToggleGuestStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	job, err := f.controller.ToggleGuestStatus(ctx, 2)
	require.NoError(t, err)
	assert.True(t, job.GuestsOut)
	assert.Equal(t, 1, f.controller.GetStats(ctx).GuestsOut)

	_, err = f.controller.ToggleGuestStatus(ctx, 42)
	assert.ErrorIs(t, err, jobstore.ErrJobNotFound)
}

func TestScheduleNotification(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	result, err := f.controller.ScheduleNotification(ctx, 3, ScheduleNotificationRequest{
		Date: "2024-01-01",
		Time: "08:00",
		Type: models.NotificationSMS,
	})
	require.NoError(t, err)
	assert.True(t, result.Found)
	assert.Equal(t, "Mike Smith", result.CleanerName)
	f.waitFor(t, events.NOTIFICATION_PENDING)

	_, err = f.controller.ScheduleNotification(ctx, 3, ScheduleNotificationRequest{
		Date: "2024-01-01",
		Time: "08:00",
		Type: "pigeon",
	})
	assert.ErrorIs(t, err, jobstore.ErrInvalidSchedule)

	_, err = f.controller.ScheduleNotification(ctx, 42, ScheduleNotificationRequest{
		Date: "2024-01-01",
		Time: "08:00",
		Type: models.NotificationEmail,
	})
	assert.ErrorIs(t, err, jobstore.ErrJobNotFound)

	sent, err := f.controller.DispatchScheduledNotifications(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	require.Len(t, f.sender.messages, 1)
	assert.Equal(t, "555-0200", f.sender.messages[0].To)

	sent, err = f.controller.DispatchScheduledNotifications(ctx)
	require.NoError(t, err)
	assert.Zero(t, sent)
}

func TestNotifyCleaner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	result, err := f.controller.NotifyCleaner(ctx, 3, NotifyRequest{})
	require.NoError(t, err)
	assert.Equal(t, services.DeliveryEmail, result.Channel)
	assert.Equal(t, "mike@example.com", f.sender.messages[0].To)

	_, err = f.controller.NotifyCleaner(ctx, 1, NotifyRequest{Type: services.TemplateSMS})
	assert.ErrorIs(t, err, services.ErrNoCleaner)

	_, err = f.controller.NotifyCleaner(ctx, 42, NotifyRequest{})
	assert.ErrorIs(t, err, jobstore.ErrJobNotFound)
}

func TestSendBulkMessage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.controller.ToggleSelection(ctx, 1, true)
	_, err := f.controller.SendBulkMessage(ctx, BulkMessageRequest{Message: "hello"})
	assert.ErrorIs(t, err, ErrNoRecipients)

	f.controller.ToggleSelection(ctx, 3, true)
	result, err := f.controller.SendBulkMessage(ctx, BulkMessageRequest{Message: "hello"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.RecipientCount)
	assert.Equal(t, []string{"Mike Smith"}, result.CleanerNames)
	assert.Equal(t, 2, f.controller.GetSelection(ctx).Count, "bulk messages keep the selection")

	_, err = f.controller.SendBulkMessage(ctx, BulkMessageRequest{})
	assert.ErrorIs(t, err, services.ErrEmptyMessage)
}

func TestClearSelection(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.controller.ToggleSelection(ctx, 1, true)
	f.controller.ToggleSelection(ctx, 1, true)
	assert.Equal(t, 1, f.controller.GetSelection(ctx).Count)

	response := f.controller.ClearSelection(ctx)
	assert.Equal(t, SelectionResponse{JobIDs: []int{}, Count: 0}, response)
	f.waitFor(t, events.SELECTION_CHANGED)
}

func TestGetLocations(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, []string{"A", "B"}, f.controller.GetLocations(context.Background()))
}
