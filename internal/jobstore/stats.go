package jobstore

import "savvy/internal/models"

type Stats struct {
	Total             int `json:"total"`
	Unassigned        int `json:"unassigned"`
	Assigned          int `json:"assigned"`
	Printed           int `json:"printed"`
	AvailableCleaners int `json:"availableCleaners"`
	Scheduled         int `json:"scheduled"`
	GuestsOut         int `json:"guestsOut"`
}

// ComputeStats counts over the full, unfiltered collections.
// Assigned and Unassigned always sum to Total; Printed overlaps both.
func ComputeStats(jobs []models.Job, cleaners []models.Cleaner) Stats {
	stats := Stats{Total: len(jobs)}

	for _, job := range jobs {
		if job.IsAssigned() {
			stats.Assigned++
		} else {
			stats.Unassigned++
		}
		if job.Status == models.JobStatusPrinted {
			stats.Printed++
		}
		if job.ScheduledNotification != nil {
			stats.Scheduled++
		}
		if job.GuestsOut {
			stats.GuestsOut++
		}
	}

	for _, cleaner := range cleaners {
		if cleaner.Available {
			stats.AvailableCleaners++
		}
	}

	return stats
}
