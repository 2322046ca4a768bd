package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"savvy/internal/constants"
	"savvy/internal/database"
	"savvy/internal/events"
	"savvy/internal/jobstore"
	"savvy/internal/models"

	logger "github.com/Bparsons0904/goLogger"
)

var (
	ErrNoCleaner       = errors.New("job has no assigned cleaner")
	ErrEmptyMessage    = errors.New("message is required")
	ErrUnknownTemplate = errors.New("unknown message template")
)

type Template string

const (
	TemplateFull Template = "full"
	TemplateSMS  Template = "sms"
)

type DeliveryChannel string

const (
	DeliveryEmail DeliveryChannel = "email"
	DeliverySMS   DeliveryChannel = "sms"
)

type Message struct {
	Channel     DeliveryChannel `json:"channel"`
	To          string          `json:"to"`
	CleanerID   int             `json:"cleanerId"`
	CleanerName string          `json:"cleanerName"`
	Subject     string          `json:"subject,omitempty"`
	Body        string          `json:"body"`
	JobIDs      []int           `json:"jobIds"`
}

// Sender delivers a message to a cleaner. Delivery is fire-and-forget from
// the dispatcher's point of view.
type Sender interface {
	Send(ctx context.Context, message Message) error
}

// Ledger remembers which scheduled notifications already went out.
// MarkSent reserves a key before delivery; Release gives it back when
// nothing could be delivered so a later tick retries.
type Ledger interface {
	MarkSent(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

type NotifyResult struct {
	CleanerName string          `json:"cleanerName"`
	Channel     DeliveryChannel `json:"channel"`
	JobID       int             `json:"jobId"`
}

type BulkResult struct {
	RecipientCount int      `json:"recipientCount"`
	CleanerNames   []string `json:"cleanerNames"`
}

type NotificationService struct {
	sender Sender
	ledger Ledger
	log    logger.Logger
}

func NewNotificationService(sender Sender, ledger Ledger) *NotificationService {
	return &NotificationService{
		sender: sender,
		ledger: ledger,
		log:    logger.New("notificationService"),
	}
}

// Notify sends the job sheet (full) or a one-line reminder (sms) to the
// job's cleaner.
func (s *NotificationService) Notify(
	ctx context.Context,
	job models.JobView,
	template Template,
) (NotifyResult, error) {
	log := s.log.TraceFromContext(ctx).Function("Notify")

	if job.Assigned == nil {
		return NotifyResult{}, log.Err("cannot notify", ErrNoCleaner, "jobID", job.ID)
	}

	var message Message
	switch template {
	case TemplateFull:
		message = FullMessage(job)
	case TemplateSMS:
		message = SMSMessage(job)
	default:
		return NotifyResult{}, log.Err(
			"cannot notify",
			fmt.Errorf("%w: %q", ErrUnknownTemplate, template),
			"jobID", job.ID,
		)
	}

	if err := s.sender.Send(ctx, message); err != nil {
		return NotifyResult{}, log.Err("failed to send notification", err, "jobID", job.ID)
	}

	return NotifyResult{
		CleanerName: job.Assigned.Name,
		Channel:     message.Channel,
		JobID:       job.ID,
	}, nil
}

// Bulk texts the same message to every recipient once.
func (s *NotificationService) Bulk(
	ctx context.Context,
	recipients []jobstore.Recipient,
	text string,
) (BulkResult, error) {
	log := s.log.TraceFromContext(ctx).Function("Bulk")

	if strings.TrimSpace(text) == "" {
		return BulkResult{}, log.Err("cannot send bulk message", ErrEmptyMessage)
	}

	result := BulkResult{CleanerNames: make([]string, 0, len(recipients))}
	for _, recipient := range recipients {
		message := Message{
			Channel:     DeliverySMS,
			To:          recipient.Cleaner.Phone,
			CleanerID:   recipient.Cleaner.ID,
			CleanerName: recipient.Cleaner.Name,
			Body:        text,
			JobIDs:      recipient.JobIDs,
		}
		if err := s.sender.Send(ctx, message); err != nil {
			log.Er("failed to send bulk message", err, "cleanerID", recipient.Cleaner.ID)
			continue
		}
		result.RecipientCount++
		result.CleanerNames = append(result.CleanerNames, recipient.Cleaner.Name)
	}

	log.Info("Bulk message sent", "recipients", result.RecipientCount, "requested", len(recipients))
	return result, nil
}

// DispatchDue sends every scheduled notification whose time has come and
// that the ledger has not seen yet. Jobs without a cleaner wait until one
// is assigned.
func (s *NotificationService) DispatchDue(
	ctx context.Context,
	jobs []models.JobView,
	now time.Time,
) (int, error) {
	log := s.log.TraceFromContext(ctx).Function("DispatchDue")

	sent := 0
	for _, job := range jobs {
		schedule := job.ScheduledNotification
		if schedule == nil {
			continue
		}

		at, err := schedule.At(now.Location())
		if err != nil {
			log.Warn("Skipping unparseable schedule", "jobID", job.ID, "error", err)
			continue
		}
		if at.After(now) {
			continue
		}
		if job.Assigned == nil {
			log.Debug("Scheduled notification waiting for a cleaner", "jobID", job.ID)
			continue
		}

		key := LedgerKey(job.ID, *schedule)
		first, err := s.ledger.MarkSent(ctx, key)
		if err != nil {
			return sent, log.Err("failed to record notification", err, "jobID", job.ID)
		}
		if !first {
			continue
		}

		delivered := 0
		for _, message := range scheduledMessages(job, schedule.Type) {
			if err := s.sender.Send(ctx, message); err != nil {
				log.Er("failed to send scheduled notification", err, "jobID", job.ID)
				continue
			}
			delivered++
		}
		sent += delivered

		if delivered == 0 {
			if err := s.ledger.Release(ctx, key); err != nil {
				return sent, log.Err("failed to release notification", err, "jobID", job.ID)
			}
			log.Warn("Scheduled notification not delivered, will retry", "jobID", job.ID)
		}
	}

	if sent > 0 {
		log.Info("Scheduled notifications dispatched", "sent", sent)
	}
	return sent, nil
}

func scheduledMessages(job models.JobView, kind models.NotificationType) []Message {
	switch kind {
	case models.NotificationEmail:
		return []Message{FullMessage(job)}
	case models.NotificationSMS:
		return []Message{SMSMessage(job)}
	case models.NotificationBoth:
		return []Message{FullMessage(job), SMSMessage(job)}
	}
	return nil
}

func LedgerKey(jobID int, schedule models.ScheduledNotification) string {
	return fmt.Sprintf("%d:%s:%s:%s", jobID, schedule.Date, schedule.Time, schedule.Type)
}

func FullMessage(job models.JobView) Message {
	details := job.Details.Data()

	var body strings.Builder
	fmt.Fprintf(&body, "Job Assignment - %s\n", job.Location)
	if details.Address != "" {
		fmt.Fprintf(&body, "Location: %s, %s\n", job.Location, details.Address)
	} else {
		fmt.Fprintf(&body, "Location: %s\n", job.Location)
	}
	fmt.Fprintf(&body, "Room: %s (%s)\n", job.Room, job.RoomType)
	fmt.Fprintf(&body, "Date: %s\n", job.Date)
	fmt.Fprintf(&body, "Time: %s - %s\n", job.StartTime, job.DueTime)
	fmt.Fprintf(&body, "Lock Code: %s\n", details.LockCode)
	fmt.Fprintf(&body, "Manager: %s %s\n", details.UnitManagerName, details.UnitManagerPhone)
	fmt.Fprintf(&body, "Guests: %d, Dogs: %d\n", job.GuestCount, job.DogCount)
	if job.WifiIncluded {
		fmt.Fprintf(&body, "WiFi: %s / %s\n", details.WifiNetwork, details.WifiPassword)
	}
	fmt.Fprintf(&body, "Parking: %s - %s\n", details.ParkingSpace, details.ParkingInstructions)
	fmt.Fprintf(&body, "Instructions: %s\n", details.WeekSpecificInstructions)
	if job.LinenPickup {
		fmt.Fprintf(&body, "Linen: %s\n", details.LinenInstructions)
	}

	message := Message{
		Channel: DeliveryEmail,
		Subject: fmt.Sprintf("Job Assignment - %s Room %s", job.Location, job.Room),
		Body:    strings.TrimSuffix(body.String(), "\n"),
		JobIDs:  []int{job.ID},
	}
	if job.Assigned != nil {
		message.To = job.Assigned.Email
		message.CleanerID = job.Assigned.ID
		message.CleanerName = job.Assigned.Name
	}
	return message
}

func SMSMessage(job models.JobView) Message {
	details := job.Details.Data()

	message := Message{
		Channel: DeliverySMS,
		JobIDs:  []int{job.ID},
	}
	name := ""
	if job.Assigned != nil {
		name = job.Assigned.Name
		message.To = job.Assigned.Phone
		message.CleanerID = job.Assigned.ID
		message.CleanerName = job.Assigned.Name
	}

	message.Body = fmt.Sprintf(
		"%s: %s Room %s, %s %s, Code: %s, Manager: %s",
		name,
		job.Location,
		job.Room,
		job.Date,
		job.StartTime,
		details.LockCode,
		details.UnitManagerPhone,
	)
	return message
}

// EventSender records each message in the log and announces it on the
// notifications channel. It stands in for an email/SMS gateway.
type EventSender struct {
	eventBus *events.EventBus
	log      logger.Logger
}

func NewEventSender(eventBus *events.EventBus) *EventSender {
	return &EventSender{eventBus: eventBus, log: logger.New("eventSender")}
}

func (s *EventSender) Send(ctx context.Context, message Message) error {
	log := s.log.TraceFromContext(ctx).Function("Send")

	if message.To == "" {
		return log.Error("recipient address is empty", "cleanerID", message.CleanerID, "channel", message.Channel)
	}

	log.Info(
		"Notification sent",
		"channel", message.Channel,
		"cleanerID", message.CleanerID,
		"jobIDs", message.JobIDs,
	)

	return s.eventBus.Publish(events.NOTIFICATIONS_CHANNEL, events.Event{
		Type: events.NOTIFICATION_SENT,
		Data: map[string]any{
			"channel":     message.Channel,
			"cleanerId":   message.CleanerID,
			"cleanerName": message.CleanerName,
			"jobIds":      message.JobIDs,
		},
	})
}

type MemoryLedger struct {
	mu   sync.Mutex
	sent map[string]struct{}
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{sent: make(map[string]struct{})}
}

func (l *MemoryLedger) MarkSent(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.sent[key]; ok {
		return false, nil
	}
	l.sent[key] = struct{}{}
	return true, nil
}

func (l *MemoryLedger) Release(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.sent, key)
	return nil
}

// CacheLedger keeps the ledger in valkey so several instances never send
// the same scheduled notification twice.
type CacheLedger struct {
	cache database.CacheClient
	ttl   time.Duration
}

func NewCacheLedger(cache database.CacheClient, ttl time.Duration) *CacheLedger {
	return &CacheLedger{cache: cache, ttl: ttl}
}

func (l *CacheLedger) MarkSent(ctx context.Context, key string) (bool, error) {
	return database.NewCacheBuilder(l.cache, key).
		WithContext(ctx).
		WithHash(constants.NotificationLedgerPrefix).
		WithValue(time.Now().UTC().Format(time.RFC3339)).
		WithTTL(l.ttl).
		SetIfAbsent()
}

func (l *CacheLedger) Release(ctx context.Context, key string) error {
	return database.NewCacheBuilder(l.cache, key).
		WithContext(ctx).
		WithHash(constants.NotificationLedgerPrefix).
		Delete()
}
