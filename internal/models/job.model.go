package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type JobStatus string

const (
	JobStatusUnassigned JobStatus = "unassigned"
	JobStatusAssigned   JobStatus = "assigned"
	JobStatusPrinted    JobStatus = "printed"
)

type Priority string

const (
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

type NotificationType string

const (
	NotificationEmail NotificationType = "email"
	NotificationSMS   NotificationType = "sms"
	NotificationBoth  NotificationType = "both"
)

func (t NotificationType) Valid() bool {
	switch t {
	case NotificationEmail, NotificationSMS, NotificationBoth:
		return true
	}
	return false
}

const (
	ScheduleDateLayout = "2006-01-02"
	ScheduleTimeLayout = "15:04"
)

// ScheduledNotification is a pending reminder for the cleaner assigned to a job.
type ScheduledNotification struct {
	Date string           `json:"date"`
	Time string           `json:"time"`
	Type NotificationType `json:"type"`
}

// At parses Date and Time in loc.
func (s ScheduledNotification) At(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(
		ScheduleDateLayout+" "+ScheduleTimeLayout,
		s.Date+" "+s.Time,
		loc,
	)
}

// JobDetails is displayed and printed but never inspected by dispatch logic.
type JobDetails struct {
	Address                  string `json:"address,omitempty"`
	UnitManagerName          string `json:"unitManagerName,omitempty"`
	UnitManagerPhone         string `json:"unitManagerPhone,omitempty"`
	LockCode                 string `json:"lockCode,omitempty"`
	WifiNetwork              string `json:"wifiNetwork,omitempty"`
	WifiPassword             string `json:"wifiPassword,omitempty"`
	BedInfo                  string `json:"bedInfo,omitempty"`
	BathInfo                 string `json:"bathInfo,omitempty"`
	PermanentInstructions    string `json:"permanentInstructions,omitempty"`
	WeekSpecificInstructions string `json:"weekSpecificInstructions,omitempty"`
	LinenInstructions        string `json:"linenInstructions,omitempty"`
	ParkingSpace             string `json:"parkingSpace,omitempty"`
	ParkingInstructions      string `json:"parkingInstructions,omitempty"`
}

type Job struct {
	BaseModel
	Location      string   `gorm:"type:text;not null;index:idx_jobs_location_date" json:"location"`
	Lat           *float64 `gorm:"type:double precision"                            json:"lat,omitempty"`
	Lng           *float64 `gorm:"type:double precision"                            json:"lng,omitempty"`
	Room          string   `gorm:"type:text;not null"                               json:"room"`
	RoomType      string   `gorm:"type:text"                                        json:"roomType"`
	Date          string   `gorm:"type:varchar(10);not null;index:idx_jobs_location_date" json:"date"`
	StartTime     string   `gorm:"type:varchar(5)"                                  json:"startTime"`
	DueTime       string   `gorm:"type:varchar(5)"                                  json:"dueTime"`
	PredictedTime string   `gorm:"type:text"                                        json:"predictedTime"`
	GuestCount    int      `gorm:"not null;default:1"                               json:"guestCount"`
	DogCount      int      `gorm:"not null;default:0"                               json:"dogCount"`
	WifiIncluded  bool     `gorm:"not null;default:false"                           json:"wifiIncluded"`
	LinenPickup   bool     `gorm:"not null;default:false"                           json:"linenPickup"`
	Priority      Priority `gorm:"type:varchar(10);not null;default:'normal'"       json:"priority"`
	GuestsOut     bool     `gorm:"not null;default:false"                           json:"guestsOut"`

	// CleanerID is resolved against the cleaner table on read, never copied.
	CleanerID *int      `gorm:"index"                                          json:"cleanerId"`
	Status    JobStatus `gorm:"type:varchar(20);not null;default:'unassigned'" json:"status"`

	PrintCount    int        `gorm:"not null;default:0" json:"printCount"`
	LastPrintedAt *time.Time `gorm:"type:timestamp"     json:"lastPrintedAt,omitempty"`

	ScheduledNotification *ScheduledNotification        `gorm:"serializer:json;type:jsonb" json:"scheduledNotification"`
	Details               datatypes.JSONType[JobDetails] `gorm:"type:jsonb"                 json:"details"`
}

func (j *Job) IsAssigned() bool {
	return j.CleanerID != nil
}

func (j *Job) BeforeCreate(tx *gorm.DB) (err error) {
	if j.ID == 0 {
		return gorm.ErrInvalidValue
	}
	if j.GuestCount < 1 || j.DogCount < 0 {
		return gorm.ErrInvalidValue
	}
	if j.Priority == "" {
		j.Priority = PriorityNormal
	}
	if j.Status == "" {
		j.Status = JobStatusUnassigned
	}
	return nil
}

// JobView is a job with its cleaner reference resolved.
type JobView struct {
	Job
	Assigned *Cleaner `json:"assigned"`
}
