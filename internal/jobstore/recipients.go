package jobstore

import "savvy/internal/models"

// Recipient is one cleaner together with the jobs a message concerns.
type Recipient struct {
	Cleaner models.Cleaner `json:"cleaner"`
	JobIDs  []int          `json:"jobIds"`
}

// Recipients groups the assigned jobs among ids by cleaner, in order of
// first appearance. Unassigned and unknown jobs are ignored.
func (s *Store) Recipients(ids []int) []Recipient {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recipients := make([]Recipient, 0)
	position := make(map[int]int)
	seen := make(map[int]struct{}, len(ids))

	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		i, ok := s.jobIndex[id]
		if !ok || s.jobs[i].CleanerID == nil {
			continue
		}

		cleanerID := *s.jobs[i].CleanerID
		if p, ok := position[cleanerID]; ok {
			recipients[p].JobIDs = append(recipients[p].JobIDs, id)
			continue
		}

		cleaner, ok := s.cleanerLocked(cleanerID)
		if !ok {
			continue
		}
		position[cleanerID] = len(recipients)
		recipients = append(recipients, Recipient{Cleaner: cleaner, JobIDs: []int{id}})
	}

	return recipients
}

// LocatedCleaners returns available cleaners that report coordinates.
func (s *Store) LocatedCleaners() []models.Cleaner {
	cleaners := s.Cleaners()

	located := make([]models.Cleaner, 0)
	for _, cleaner := range cleaners {
		if cleaner.Available && cleaner.HasLocation() {
			located = append(located, cleaner)
		}
	}
	return located
}
