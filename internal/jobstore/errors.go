package jobstore

import "errors"

var (
	// ErrInvalidAssignment rejects an assign call without touching any job.
	ErrInvalidAssignment = errors.New("invalid assignment")
	ErrInvalidSchedule   = errors.New("invalid notification schedule")
	ErrInvalidStatus     = errors.New("invalid status filter")
	ErrJobNotFound       = errors.New("job not found")
	ErrDuplicateID       = errors.New("duplicate id")
	ErrInvalidJob        = errors.New("invalid job")
)
