package jobstore

import (
	"fmt"
	"strings"

	"savvy/internal/models"
)

type StatusFilter string

const (
	StatusAll        StatusFilter = "all"
	StatusAssigned   StatusFilter = "assigned"
	StatusUnassigned StatusFilter = "unassigned"
)

// Criteria narrows the job list. Zero values mean "no constraint".
type Criteria struct {
	Search    string
	Location  string
	Date      string
	Status    StatusFilter
	CleanerID *int
}

func (c Criteria) Validate() error {
	switch c.Status {
	case "", StatusAll, StatusAssigned, StatusUnassigned:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidStatus, c.Status)
}

// Filter returns the jobs matching every criterion, in seed order.
// It never modifies jobs and always returns a fresh slice.
func Filter(jobs []models.Job, criteria Criteria) []models.Job {
	search := strings.ToLower(criteria.Search)

	matched := make([]models.Job, 0, len(jobs))
	for _, job := range jobs {
		if !matchesSearch(job, search) ||
			!matchesExact(criteria.Location, job.Location) ||
			!matchesExact(criteria.Date, job.Date) ||
			!matchesStatus(job, criteria.Status) ||
			!matchesCleaner(job, criteria.CleanerID) {
			continue
		}
		matched = append(matched, job)
	}

	return matched
}

func matchesSearch(job models.Job, search string) bool {
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(job.Room), search) ||
		strings.Contains(strings.ToLower(job.Location), search)
}

func matchesExact(want, got string) bool {
	return want == "" || want == got
}

func matchesStatus(job models.Job, status StatusFilter) bool {
	switch status {
	case "", StatusAll:
		return true
	case StatusAssigned:
		return job.IsAssigned()
	case StatusUnassigned:
		return !job.IsAssigned()
	}
	return false
}

func matchesCleaner(job models.Job, cleanerID *int) bool {
	if cleanerID == nil {
		return true
	}
	return job.CleanerID != nil && *job.CleanerID == *cleanerID
}
