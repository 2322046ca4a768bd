package jobstore

import (
	"testing"

	"savvy/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestComputeStats(t *testing.T) {
	jobs := filterFixture()
	jobs[0].Status = models.JobStatusPrinted
	jobs[1].Status = models.JobStatusPrinted
	jobs[1].GuestsOut = true
	jobs[2].ScheduledNotification = &models.ScheduledNotification{
		Date: "2024-01-02",
		Time: "09:00",
		Type: models.NotificationSMS,
	}

	stats := ComputeStats(jobs, testCleaners())

	assert.Equal(t, Stats{
		Total:             3,
		Unassigned:        1,
		Assigned:          2,
		Printed:           2,
		AvailableCleaners: 1,
		Scheduled:         1,
		GuestsOut:         1,
	}, stats)
}

func TestComputeStats_Partition(t *testing.T) {
	fixtures := [][]models.Job{
		nil,
		testJobs(),
		filterFixture(),
	}

	for _, jobs := range fixtures {
		stats := ComputeStats(jobs, nil)
		assert.Equal(t, stats.Total, stats.Assigned+stats.Unassigned)
	}
}
