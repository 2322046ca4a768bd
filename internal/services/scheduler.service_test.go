package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingJob struct {
	name     string
	schedule Schedule
	runs     int
	err      error
}

func (j *countingJob) Name() string       { return j.name }
func (j *countingJob) Schedule() Schedule { return j.schedule }

func (j *countingJob) Execute(ctx context.Context) error {
	j.runs++
	return j.err
}

func TestSchedulerService_AddJob(t *testing.T) {
	scheduler := NewSchedulerService()

	require.NoError(t, scheduler.AddJob(&countingJob{name: "minute", schedule: EveryMinute}))
	require.NoError(t, scheduler.AddJob(&countingJob{name: "hour", schedule: Hourly}))
	require.NoError(t, scheduler.AddJob(&countingJob{name: "day", schedule: Daily}))
	assert.Error(t, scheduler.AddJob(&countingJob{name: "never", schedule: Schedule(42)}))

	assert.Equal(t, 3, scheduler.GetJobCount())
	assert.False(t, scheduler.IsRunning())
}

func TestSchedulerService_StartStop(t *testing.T) {
	ctx := context.Background()
	scheduler := NewSchedulerService()

	require.NoError(t, scheduler.Start(ctx))
	assert.False(t, scheduler.IsRunning(), "nothing to run without jobs")

	require.NoError(t, scheduler.AddJob(&countingJob{name: "day", schedule: Daily}))
	require.NoError(t, scheduler.Start(ctx))
	assert.True(t, scheduler.IsRunning())

	require.NoError(t, scheduler.Stop(ctx))
	assert.False(t, scheduler.IsRunning())
	require.NoError(t, scheduler.Stop(ctx))
}

func TestSchedulerService_TriggerJobByName(t *testing.T) {
	ctx := context.Background()
	scheduler := NewSchedulerService()

	ok := &countingJob{name: "ok", schedule: Daily}
	failing := &countingJob{name: "failing", schedule: Daily, err: errors.New("boom")}
	require.NoError(t, scheduler.AddJob(ok))
	require.NoError(t, scheduler.AddJob(failing))

	assert.NoError(t, scheduler.TriggerJobByName(ctx, "ok"))
	assert.Equal(t, 1, ok.runs)

	assert.Error(t, scheduler.TriggerJobByName(ctx, "failing"))
	assert.Equal(t, 1, failing.runs)

	assert.Error(t, scheduler.TriggerJobByName(ctx, "missing"))
}
