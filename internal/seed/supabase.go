package seed

import (
	"cmp"
	"context"
	"slices"
	"time"

	"savvy/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	supabase "github.com/nedpals/supabase-go"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	SUPABASE_JOBS_TABLE     = "jobs"
	SUPABASE_CLEANERS_TABLE = "cleaners"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05",
}

// SupabaseSource reads the same tables the migration creates, through the
// hosted REST API.
type SupabaseSource struct {
	client *supabase.Client
	log    logger.Logger
}

func NewSupabaseSource(url, key string) (*SupabaseSource, error) {
	log := logger.New("seed").File("supabase").Function("NewSupabaseSource")

	if url == "" || key == "" {
		return nil, log.ErrMsg("supabase URL and key are required")
	}

	return &SupabaseSource{
		client: supabase.CreateClient(url, key),
		log:    logger.New("seed").File("supabase"),
	}, nil
}

func (s *SupabaseSource) Name() string {
	return "supabase"
}

type cleanerRow struct {
	ID           int             `json:"id"`
	Name         string          `json:"name"`
	Team         string          `json:"team"`
	Phone        string          `json:"phone"`
	Email        string          `json:"email"`
	Rating       decimal.Decimal `json:"rating"`
	Available    bool            `json:"available"`
	AssignedJobs int             `json:"assigned_jobs"`
	Lat          *float64        `json:"lat"`
	Lng          *float64        `json:"lng"`
}

type jobRow struct {
	ID                    int                           `json:"id"`
	Location              string                        `json:"location"`
	Lat                   *float64                      `json:"lat"`
	Lng                   *float64                      `json:"lng"`
	Room                  string                        `json:"room"`
	RoomType              string                        `json:"room_type"`
	Date                  string                        `json:"date"`
	StartTime             string                        `json:"start_time"`
	DueTime               string                        `json:"due_time"`
	PredictedTime         string                        `json:"predicted_time"`
	GuestCount            int                           `json:"guest_count"`
	DogCount              int                           `json:"dog_count"`
	WifiIncluded          bool                          `json:"wifi_included"`
	LinenPickup           bool                          `json:"linen_pickup"`
	Priority              models.Priority               `json:"priority"`
	GuestsOut             bool                          `json:"guests_out"`
	CleanerID             *int                          `json:"cleaner_id"`
	Status                models.JobStatus              `json:"status"`
	PrintCount            int                           `json:"print_count"`
	LastPrintedAt         *string                       `json:"last_printed_at"`
	ScheduledNotification *models.ScheduledNotification `json:"scheduled_notification"`
	Details               models.JobDetails             `json:"details"`
}

func (s *SupabaseSource) Load(ctx context.Context) ([]models.Job, []models.Cleaner, error) {
	log := s.log.TraceFromContext(ctx).Function("Load")

	var cleanerRows []cleanerRow
	if err := s.client.DB.From(SUPABASE_CLEANERS_TABLE).Select("*").Execute(&cleanerRows); err != nil {
		return nil, nil, log.Err("failed to load cleaners", err)
	}

	var jobRows []jobRow
	if err := s.client.DB.From(SUPABASE_JOBS_TABLE).Select("*").Execute(&jobRows); err != nil {
		return nil, nil, log.Err("failed to load jobs", err)
	}

	// PostgREST makes no ordering promise without an order clause.
	slices.SortFunc(cleanerRows, func(a, b cleanerRow) int { return cmp.Compare(a.ID, b.ID) })
	slices.SortFunc(jobRows, func(a, b jobRow) int { return cmp.Compare(a.ID, b.ID) })

	cleaners := make([]models.Cleaner, 0, len(cleanerRows))
	for _, row := range cleanerRows {
		cleaners = append(cleaners, row.toModel())
	}

	jobs := make([]models.Job, 0, len(jobRows))
	for _, row := range jobRows {
		job, err := row.toModel()
		if err != nil {
			return nil, nil, log.Err("failed to convert job row", err, "jobID", row.ID)
		}
		jobs = append(jobs, job)
	}

	log.Info("Loaded seed from supabase", "jobs", len(jobs), "cleaners", len(cleaners))
	return jobs, cleaners, nil
}

func (r cleanerRow) toModel() models.Cleaner {
	return models.Cleaner{
		BaseModel:    models.BaseModel{ID: r.ID},
		Name:         r.Name,
		Team:         r.Team,
		Phone:        r.Phone,
		Email:        r.Email,
		Rating:       r.Rating,
		Available:    r.Available,
		AssignedJobs: r.AssignedJobs,
		Lat:          r.Lat,
		Lng:          r.Lng,
	}
}

func (r jobRow) toModel() (models.Job, error) {
	job := models.Job{
		BaseModel:             models.BaseModel{ID: r.ID},
		Location:              r.Location,
		Lat:                   r.Lat,
		Lng:                   r.Lng,
		Room:                  r.Room,
		RoomType:              r.RoomType,
		Date:                  r.Date,
		StartTime:             r.StartTime,
		DueTime:               r.DueTime,
		PredictedTime:         r.PredictedTime,
		GuestCount:            r.GuestCount,
		DogCount:              r.DogCount,
		WifiIncluded:          r.WifiIncluded,
		LinenPickup:           r.LinenPickup,
		Priority:              r.Priority,
		GuestsOut:             r.GuestsOut,
		CleanerID:             r.CleanerID,
		Status:                r.Status,
		PrintCount:            r.PrintCount,
		ScheduledNotification: r.ScheduledNotification,
		Details:               datatypes.NewJSONType(r.Details),
	}

	if r.LastPrintedAt != nil && *r.LastPrintedAt != "" {
		printedAt, err := parseTimestamp(*r.LastPrintedAt)
		if err != nil {
			return models.Job{}, err
		}
		job.LastPrintedAt = &printedAt
	}

	return job, nil
}

func parseTimestamp(value string) (time.Time, error) {
	var err error
	for _, layout := range timestampLayouts {
		var parsed time.Time
		if parsed, err = time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, err
}
