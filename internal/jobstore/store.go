package jobstore

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"savvy/internal/models"

	logger "github.com/Bparsons0904/goLogger"
)

// Store holds the authoritative job and cleaner collections.
//
// Every mutation replaces the jobs slice with a modified copy, so a slice
// returned by Jobs or Filter is a stable snapshot that later transitions
// never touch. Callers must treat returned slices as read-only.
type Store struct {
	mu           sync.RWMutex
	jobs         []models.Job
	jobIndex     map[int]int
	cleaners     []models.Cleaner
	cleanerIndex map[int]int
	selection    *Selection
	version      uint64
	now          func() time.Time
	log          logger.Logger
}

// New seeds a store. Job and cleaner ids must be unique within their
// collections. Job references to unknown cleaners are dropped.
func New(jobs []models.Job, cleaners []models.Cleaner) (*Store, error) {
	log := logger.New("jobstore").Function("New")

	store := &Store{
		jobIndex:     make(map[int]int, len(jobs)),
		cleaners:     slices.Clone(cleaners),
		cleanerIndex: make(map[int]int, len(cleaners)),
		selection:    NewSelection(),
		now:          time.Now,
		log:          logger.New("jobstore"),
	}

	for i, cleaner := range store.cleaners {
		if _, exists := store.cleanerIndex[cleaner.ID]; exists {
			return nil, log.Err(
				"failed to seed store",
				fmt.Errorf("%w: cleaner %d", ErrDuplicateID, cleaner.ID),
			)
		}
		store.cleanerIndex[cleaner.ID] = i
	}

	seeded := make([]models.Job, 0, len(jobs))
	for _, job := range jobs {
		if _, exists := store.jobIndex[job.ID]; exists {
			return nil, log.Err(
				"failed to seed store",
				fmt.Errorf("%w: job %d", ErrDuplicateID, job.ID),
			)
		}
		if job.GuestCount < 1 || job.DogCount < 0 {
			return nil, log.Err(
				"failed to seed store",
				fmt.Errorf("%w: job %d has %d guests and %d dogs", ErrInvalidJob, job.ID, job.GuestCount, job.DogCount),
			)
		}

		if job.CleanerID != nil {
			if _, ok := store.cleanerIndex[*job.CleanerID]; !ok {
				log.Warn("Dropping unknown cleaner reference", "jobID", job.ID, "cleanerID", *job.CleanerID)
				job.CleanerID = nil
			}
		}
		job.Status = normalizeStatus(job)
		if job.Priority == "" {
			job.Priority = models.PriorityNormal
		}

		store.jobIndex[job.ID] = len(seeded)
		seeded = append(seeded, job)
	}
	store.jobs = seeded

	log.Info("Store seeded", "jobs", len(store.jobs), "cleaners", len(store.cleaners))
	return store, nil
}

func normalizeStatus(job models.Job) models.JobStatus {
	switch job.Status {
	case models.JobStatusPrinted:
		return job.Status
	case models.JobStatusAssigned:
		if job.IsAssigned() {
			return job.Status
		}
		return models.JobStatusUnassigned
	case models.JobStatusUnassigned:
		return job.Status
	}
	if job.IsAssigned() {
		return models.JobStatusAssigned
	}
	return models.JobStatusUnassigned
}

// Jobs returns the current snapshot in seed order.
func (s *Store) Jobs() []models.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.jobs
}

func (s *Store) Cleaners() []models.Cleaner {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cleaners
}

func (s *Store) Job(id int) (models.Job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.jobIndex[id]
	if !ok {
		return models.Job{}, false
	}
	return s.jobs[i], true
}

func (s *Store) Cleaner(id int) (models.Cleaner, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cleanerLocked(id)
}

func (s *Store) cleanerLocked(id int) (models.Cleaner, bool) {
	i, ok := s.cleanerIndex[id]
	if !ok {
		return models.Cleaner{}, false
	}
	return s.cleaners[i], true
}

// Version increases by one with every applied transition.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Filter validates criteria and applies them to the current snapshot.
func (s *Store) Filter(criteria Criteria) ([]models.Job, error) {
	if err := criteria.Validate(); err != nil {
		return nil, err
	}
	return Filter(s.Jobs(), criteria), nil
}

func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ComputeStats(s.jobs, s.cleaners)
}

// View resolves the job's cleaner reference against the current cleaner table.
func (s *Store) View(job models.Job) models.JobView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.viewLocked(job)
}

func (s *Store) Views(jobs []models.Job) []models.JobView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	views := make([]models.JobView, 0, len(jobs))
	for _, job := range jobs {
		views = append(views, s.viewLocked(job))
	}
	return views
}

func (s *Store) viewLocked(job models.Job) models.JobView {
	view := models.JobView{Job: job}
	if job.CleanerID != nil {
		if cleaner, ok := s.cleanerLocked(*job.CleanerID); ok {
			view.Assigned = &cleaner
		}
	}
	return view
}

// Locations lists distinct facility names in the order they first appear.
func (s *Store) Locations() []string {
	jobs := s.Jobs()

	seen := make(map[string]struct{})
	locations := make([]string, 0)
	for _, job := range jobs {
		if _, ok := seen[job.Location]; ok {
			continue
		}
		seen[job.Location] = struct{}{}
		locations = append(locations, job.Location)
	}
	return locations
}

func (s *Store) ToggleSelection(id int, included bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.Toggle(id, included)
}

func (s *Store) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.Clear()
}

func (s *Store) Selected() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selection.IDs()
}

// mutate copies the jobs slice, applies fn to the copy and publishes it.
// Must be called with s.mu held for writing.
func (s *Store) mutate(ids []int, fn func(job *models.Job)) (updated []int, skipped []int) {
	next := slices.Clone(s.jobs)
	seen := make(map[int]struct{}, len(ids))

	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		i, ok := s.jobIndex[id]
		if !ok {
			skipped = append(skipped, id)
			continue
		}
		fn(&next[i])
		updated = append(updated, id)
	}

	s.jobs = next
	s.version++
	return updated, skipped
}
