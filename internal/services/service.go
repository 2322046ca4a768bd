package services

import (
	"time"

	"savvy/config"
	"savvy/internal/constants"
	"savvy/internal/database"
	"savvy/internal/events"

	logger "github.com/Bparsons0904/goLogger"
)

type Service struct {
	Transaction  *TransactionService
	Scheduler    *SchedulerService
	Notification *NotificationService
}

func New(db database.DB, config config.Config, eventBus *events.EventBus) Service {
	log := logger.New("services").Function("New")

	var ledger Ledger
	if db.Cache.General != nil {
		ttl := time.Duration(config.NotificationLedgerTTLHours) * time.Hour
		if ttl <= 0 {
			ttl = constants.NotificationLedgerExpiry
		}
		ledger = NewCacheLedger(db.Cache.General, ttl)
		log.Info("Notification ledger backed by cache", "ttl", ttl)
	} else {
		ledger = NewMemoryLedger()
		log.Info("Notification ledger kept in memory")
	}

	return Service{
		Transaction:  NewTransactionService(db),
		Scheduler:    NewSchedulerService(),
		Notification: NewNotificationService(NewEventSender(eventBus), ledger),
	}
}
