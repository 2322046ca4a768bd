package constants

import "time"

const (
	NotificationLedgerPrefix = "notification_sent" // Keyed by job:date:time:type (CacheBuilder adds colon)
	NotificationLedgerExpiry = 7 * 24 * time.Hour  // Used when NOTIFICATION_LEDGER_TTL_HOURS is unset
)
