package seed

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"savvy/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	DefaultJobCount     = 500
	DefaultCleanerCount = 100
)

var (
	facilities = []struct {
		name     string
		address  string
		lat, lng float64
	}{
		{"Downtown Hotel", "100 E Pratt St", 39.2904, -76.6122},
		{"Riverside Inn", "1400 Key Hwy", 39.2765, -76.5929},
		{"City Center Lodge", "20 W Baltimore St", 39.2951, -76.6155},
		{"Park View Resort", "2600 Madison Ave", 39.3162, -76.6377},
		{"Marina Hotel", "700 Aliceanna St", 39.2823, -76.6035},
	}
	roomTypes  = []string{"Standard Room", "Deluxe Suite", "Presidential Suite", "Studio Apartment"}
	firstNames = []string{"Sarah", "Mike", "Jessica", "David", "Maria", "John", "Lisa", "Carlos", "Amanda", "Robert"}
	lastNames  = []string{"Johnson", "Smith", "Williams", "Brown", "Davis", "Miller", "Wilson", "Moore", "Taylor", "Anderson"}
)

type GeneratorOptions struct {
	Jobs     int
	Cleaners int
	// Seed makes the output reproducible. Zero picks a random seed.
	Seed int64
	Now  func() time.Time
}

// GeneratorSource fabricates a week of demo work across five facilities.
type GeneratorSource struct {
	options GeneratorOptions
	log     logger.Logger
}

func NewGeneratorSource(options GeneratorOptions) *GeneratorSource {
	if options.Now == nil {
		options.Now = time.Now
	}
	return &GeneratorSource{options: options, log: logger.New("seed").File("generator")}
}

func (g *GeneratorSource) Name() string {
	return "generator"
}

func (g *GeneratorSource) Load(ctx context.Context) ([]models.Job, []models.Cleaner, error) {
	log := g.log.TraceFromContext(ctx).Function("Load")

	if g.options.Jobs < 0 || g.options.Cleaners < 0 {
		return nil, nil, log.Error(
			"seed counts must not be negative",
			"jobs", g.options.Jobs,
			"cleaners", g.options.Cleaners,
		)
	}

	seed := uint64(g.options.Seed)
	if seed == 0 {
		seed = rand.Uint64()
	}
	r := rand.New(rand.NewPCG(seed, seed>>1|1))

	cleaners := generateCleaners(r, g.options.Cleaners)
	jobs := generateJobs(r, g.options.Jobs, cleaners, g.options.Now())

	log.Info("Generated seed data", "jobs", len(jobs), "cleaners", len(cleaners), "seed", seed)
	return jobs, cleaners, nil
}

func generateCleaners(r *rand.Rand, count int) []models.Cleaner {
	cleaners := make([]models.Cleaner, 0, count)

	for i := range count {
		first := firstNames[i%len(firstNames)]
		last := lastNames[(i/len(firstNames))%len(lastNames)]

		cleaner := models.Cleaner{
			BaseModel:    models.BaseModel{ID: i + 1},
			Name:         first + " " + last,
			Team:         fmt.Sprintf("Team %d", i/len(firstNames)+1),
			Phone:        fmt.Sprintf("(443) %03d-%04d", 100+r.IntN(900), 1000+r.IntN(9000)),
			Email:        strings.ToLower(first+"."+last) + "@cleanteam.com",
			Rating:       decimal.New(int64(400+r.IntN(100)), -2),
			Available:    r.Float64() > 0.2,
			AssignedJobs: r.IntN(5),
		}

		if cleaner.Available && r.Float64() > 0.4 {
			facility := facilities[r.IntN(len(facilities))]
			lat := facility.lat + (r.Float64()-0.5)*0.05
			lng := facility.lng + (r.Float64()-0.5)*0.05
			cleaner.Lat = &lat
			cleaner.Lng = &lng
		}

		cleaners = append(cleaners, cleaner)
	}

	return cleaners
}

func generateJobs(r *rand.Rand, count int, cleaners []models.Cleaner, now time.Time) []models.Job {
	jobs := make([]models.Job, 0, count)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	for i := range count {
		facility := facilities[r.IntN(len(facilities))]
		startHour := 8 + r.IntN(8)
		duration := 1 + r.IntN(3)
		lat, lng := facility.lat, facility.lng

		job := models.Job{
			BaseModel:     models.BaseModel{ID: i + 1},
			Location:      facility.name,
			Lat:           &lat,
			Lng:           &lng,
			Room:          fmt.Sprintf("%d", 100+r.IntN(300)),
			RoomType:      roomTypes[r.IntN(len(roomTypes))],
			Date:          today.AddDate(0, 0, r.IntN(7)).Format(models.ScheduleDateLayout),
			StartTime:     fmt.Sprintf("%02d:00", startHour),
			DueTime:       fmt.Sprintf("%02d:00", startHour+duration),
			PredictedTime: fmt.Sprintf("%dh %dm", duration, r.IntN(60)),
			GuestCount:    1 + r.IntN(4),
			WifiIncluded:  r.Float64() > 0.5,
			LinenPickup:   r.Float64() > 0.6,
			Priority:      models.PriorityNormal,
			Status:        models.JobStatusUnassigned,
			Details:       datatypes.NewJSONType(defaultDetails(facility.address)),
		}

		if r.Float64() > 0.7 {
			job.DogCount = 1 + r.IntN(2)
		}
		if r.Float64() > 0.8 {
			job.Priority = models.PriorityHigh
		}

		if len(cleaners) > 0 && r.Float64() > 0.6 {
			cleanerID := cleaners[r.IntN(len(cleaners))].ID
			job.CleanerID = &cleanerID
			job.Status = models.JobStatusAssigned
			if r.Float64() > 0.5 {
				printedAt := now.Add(-time.Duration(1+r.IntN(48)) * time.Hour)
				job.Status = models.JobStatusPrinted
				job.PrintCount = 1
				job.LastPrintedAt = &printedAt
			}
		}

		jobs = append(jobs, job)
	}

	return jobs
}

func defaultDetails(address string) models.JobDetails {
	return models.JobDetails{
		Address:                  address,
		UnitManagerName:          "Richard Lynard",
		UnitManagerPhone:         "(443) 555-0142",
		LockCode:                 "356374",
		WifiNetwork:              "Rockyroad",
		WifiPassword:             "Guest-2024!",
		BedInfo:                  "3 Beds (2 Queen, 1 Double)",
		BathInfo:                 "3 Baths (2 Full, 1 Half)",
		PermanentInstructions:    "Standard deep clean protocol",
		WeekSpecificInstructions: "Focus on bathroom deep clean",
		LinenInstructions:        "Pick up at 128th Street office",
		ParkingSpace:             "Space #A-12",
		ParkingInstructions:      "Enter through main gate, follow blue signs",
	}
}
