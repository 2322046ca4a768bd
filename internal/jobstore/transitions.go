package jobstore

import (
	"fmt"
	"time"

	"savvy/internal/models"
)

type AssignResult struct {
	UpdatedCount int    `json:"updatedCount"`
	JobIDs       []int  `json:"jobIds"`
	SkippedIDs   []int  `json:"skippedIds,omitempty"`
	CleanerID    int    `json:"cleanerId"`
	CleanerName  string `json:"cleanerName"`
}

type PrintResult struct {
	PrintedCount int   `json:"printedCount"`
	JobIDs       []int `json:"jobIds"`
	SkippedIDs   []int `json:"skippedIds,omitempty"`
}

type ScheduleResult struct {
	Found       bool                         `json:"found"`
	JobID       int                          `json:"jobId"`
	CleanerName string                       `json:"cleanerName,omitempty"`
	Schedule    models.ScheduledNotification `json:"schedule"`
	At          time.Time                    `json:"at"`
}

// Assign binds every existing job in ids to the cleaner and marks it
// assigned, then clears the selection. Unknown job ids are skipped.
// An empty id list, an unknown cleaner or an unavailable cleaner rejects
// the whole call with ErrInvalidAssignment and changes nothing.
func (s *Store) Assign(ids []int, cleanerID int) (AssignResult, error) {
	log := s.log.Function("Assign")

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(ids) == 0 {
		return AssignResult{}, log.Err(
			"assignment rejected",
			fmt.Errorf("%w: no jobs selected", ErrInvalidAssignment),
			"cleanerID", cleanerID,
		)
	}

	cleaner, ok := s.cleanerLocked(cleanerID)
	if !ok {
		return AssignResult{}, log.Err(
			"assignment rejected",
			fmt.Errorf("%w: cleaner %d not found", ErrInvalidAssignment, cleanerID),
			"cleanerID", cleanerID,
		)
	}
	if !cleaner.Available {
		return AssignResult{}, log.Err(
			"assignment rejected",
			fmt.Errorf("%w: cleaner %d is not available", ErrInvalidAssignment, cleanerID),
			"cleanerID", cleanerID,
		)
	}

	updated, skipped := s.mutate(ids, func(job *models.Job) {
		id := cleaner.ID
		job.CleanerID = &id
		job.Status = models.JobStatusAssigned
	})
	s.selection.Clear()

	log.Info("Jobs assigned", "cleanerID", cleaner.ID, "updated", len(updated), "skipped", len(skipped))

	return AssignResult{
		UpdatedCount: len(updated),
		JobIDs:       nonNil(updated),
		SkippedIDs:   skipped,
		CleanerID:    cleaner.ID,
		CleanerName:  cleaner.Name,
	}, nil
}

// MarkPrinted marks the given jobs printed whatever their assignment.
// With no ids the current selection is printed. The selection is cleared
// afterwards in both cases.
func (s *Store) MarkPrinted(ids []int) PrintResult {
	log := s.log.Function("MarkPrinted")

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(ids) == 0 {
		ids = s.selection.IDs()
	}

	printedAt := s.now()
	updated, skipped := s.mutate(ids, func(job *models.Job) {
		job.Status = models.JobStatusPrinted
		job.PrintCount++
		job.LastPrintedAt = &printedAt
	})
	s.selection.Clear()

	log.Info("Jobs marked printed", "printed", len(updated), "skipped", len(skipped))

	return PrintResult{
		PrintedCount: len(updated),
		JobIDs:       nonNil(updated),
		SkippedIDs:   skipped,
	}
}

// ToggleGuestStatus flips guestsOut. The bool is false when the job does
// not exist, in which case nothing changes.
func (s *Store) ToggleGuestStatus(id int) (models.Job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobIndex[id]; !ok {
		s.log.Function("ToggleGuestStatus").Debug("Skipping unknown job", "jobID", id)
		return models.Job{}, false
	}

	s.mutate([]int{id}, func(job *models.Job) {
		job.GuestsOut = !job.GuestsOut
	})
	return s.jobs[s.jobIndex[id]], true
}

// ScheduleNotification replaces any schedule already set on the job.
// An unknown job is a silent no-op reported through Found.
func (s *Store) ScheduleNotification(
	id int,
	schedule models.ScheduledNotification,
) (ScheduleResult, error) {
	log := s.log.Function("ScheduleNotification")

	if !schedule.Type.Valid() {
		return ScheduleResult{}, log.Err(
			"schedule rejected",
			fmt.Errorf("%w: unknown type %q", ErrInvalidSchedule, schedule.Type),
			"jobID", id,
		)
	}

	at, err := schedule.At(time.Local)
	if err != nil {
		return ScheduleResult{}, log.Err(
			"schedule rejected",
			fmt.Errorf("%w: %v", ErrInvalidSchedule, err),
			"jobID", id,
		)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	result := ScheduleResult{JobID: id, Schedule: schedule, At: at}
	if _, ok := s.jobIndex[id]; !ok {
		log.Debug("Skipping unknown job", "jobID", id)
		return result, nil
	}

	s.mutate([]int{id}, func(job *models.Job) {
		scheduled := schedule
		job.ScheduledNotification = &scheduled
	})

	result.Found = true
	if view := s.viewLocked(s.jobs[s.jobIndex[id]]); view.Assigned != nil {
		result.CleanerName = view.Assigned.Name
	}

	log.Info("Notification scheduled", "jobID", id, "at", at, "type", schedule.Type)
	return result, nil
}

func nonNil(ids []int) []int {
	if ids == nil {
		return []int{}
	}
	return ids
}
