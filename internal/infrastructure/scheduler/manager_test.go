package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcheckin/smartcheckin/internal/shared/logger"
)

type countingJob struct {
	runs atomic.Int32
}

func (j *countingJob) Execute(ctx context.Context) (int, error) {
	j.runs.Add(1)
	return 2, nil
}

func TestSchedulerManager_ChallengeSweep(t *testing.T) {
	m, err := NewSchedulerManager(logger.NewNop())
	require.NoError(t, err)

	job := &countingJob{}
	require.NoError(t, m.RegisterChallengeSweepJob(job, time.Hour))

	jobs := m.Jobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, "challenge-sweep", jobs[0].Name())
	assert.Contains(t, jobs[0].Tags(), "maintenance")

	m.Start()
	assert.True(t, m.IsStarted())

	// start-immediately runs the first sweep without waiting an interval
	assert.Eventually(t, func() bool { return job.runs.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, m.Stop())
	assert.False(t, m.IsStarted())
	assert.NoError(t, m.Stop())
}

func TestSchedulerManager_DefaultInterval(t *testing.T) {
	m, err := NewSchedulerManager(logger.NewNop())
	require.NoError(t, err)

	require.NoError(t, m.RegisterChallengeSweepJob(&countingJob{}, 0))
	assert.Len(t, m.Jobs(), 1)
}

type failingJob struct {
	runs atomic.Int32
}

func (j *failingJob) Execute(ctx context.Context) (int, error) {
	j.runs.Add(1)
	return 0, assert.AnError
}

func TestSchedulerManager_FailureCounter(t *testing.T) {
	m, err := NewSchedulerManager(logger.NewNop())
	require.NoError(t, err)

	job := &failingJob{}
	for i := 0; i < sweepFailureThreshold; i++ {
		m.runSweep(context.Background(), job)
	}
	assert.Equal(t, int32(sweepFailureThreshold), m.sweepFailures.Load())

	m.runSweep(context.Background(), &countingJob{})
	assert.Zero(t, m.sweepFailures.Load())
}

type blockingJob struct {
	cancelled chan struct{}
}

func (j *blockingJob) Execute(ctx context.Context) (int, error) {
	<-ctx.Done()
	close(j.cancelled)
	return 0, ctx.Err()
}

func TestSchedulerManager_StopCancelsRunningSweep(t *testing.T) {
	m, err := NewSchedulerManager(logger.NewNop())
	require.NoError(t, err)

	job := &blockingJob{cancelled: make(chan struct{})}
	require.NoError(t, m.RegisterChallengeSweepJob(job, time.Hour))
	m.Start()

	// give the immediate run a moment to begin
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, m.Stop())

	select {
	case <-job.cancelled:
	case <-time.After(2 * time.Second):
		t.Fatal("running sweep was not cancelled by Stop")
	}
	assert.Zero(t, m.sweepFailures.Load())
}
