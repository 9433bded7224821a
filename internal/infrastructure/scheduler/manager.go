// Package scheduler runs in-process housekeeping on gocron. The only job
// today is the expired challenge sweep; the HTTP cron endpoint and the
// sweep-challenges command run the same use case for deployments that
// disable it.
package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/smartcheckin/smartcheckin/internal/shared/biztime"
	"github.com/smartcheckin/smartcheckin/internal/shared/constants"
	"github.com/smartcheckin/smartcheckin/internal/shared/logger"
)

const (
	// DefaultChallengeSweepInterval is used when no interval is configured.
	DefaultChallengeSweepInterval = time.Minute

	challengeSweepJobName = "challenge-sweep"

	// failures in a row before a sweep error is logged at error level
	sweepFailureThreshold = 3
)

// BatchJob processes one batch and reports how many items it handled.
type BatchJob interface {
	Execute(ctx context.Context) (int, error)
}

// SchedulerManager owns the gocron scheduler. Stop cancels the context
// handed to running jobs before waiting for them.
type SchedulerManager struct {
	scheduler gocron.Scheduler
	logger    logger.Interface

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	started bool

	sweepFailures atomic.Int32
}

func NewSchedulerManager(log logger.Interface) (*SchedulerManager, error) {
	s, err := gocron.NewScheduler(gocron.WithLocation(biztime.Location()))
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &SchedulerManager{
		scheduler: s,
		logger:    log,
		ctx:       ctx,
		cancel:    cancel,
	}, nil
}

// RegisterChallengeSweepJob runs job every interval, once immediately on
// start. A sweep that overruns its interval delays the next one instead of
// overlapping it.
func (m *SchedulerManager) RegisterChallengeSweepJob(job BatchJob, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultChallengeSweepInterval
	}

	_, err := m.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(m.ctx, interval)
			defer cancel()
			m.runSweep(ctx, job)
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags(constants.JobTagMaintenance, challengeSweepJobName),
		gocron.WithName(challengeSweepJobName),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("challenge sweep scheduled", "interval", interval.String())
	return nil
}

func (m *SchedulerManager) runSweep(ctx context.Context, job BatchJob) {
	start := time.Now()

	count, err := job.Execute(ctx)
	if err != nil {
		if m.ctx.Err() != nil {
			return
		}
		failures := m.sweepFailures.Add(1)
		log := m.logger.Warnw
		if failures >= sweepFailureThreshold {
			log = m.logger.Errorw
		}
		log("challenge sweep failed",
			"error", err,
			"consecutive_failures", failures,
			"duration", time.Since(start))
		return
	}
	m.sweepFailures.Store(0)

	if count == 0 {
		m.logger.Debugw("challenge sweep found nothing to delete", "duration", time.Since(start))
		return
	}
	m.logger.Infow("challenge sweep deleted expired challenges",
		"count", count,
		"duration", time.Since(start))
}

func (m *SchedulerManager) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.started {
		return
	}
	m.scheduler.Start()
	m.started = true
	m.logger.Infow("scheduler started", "jobs", len(m.scheduler.Jobs()))
}

// Stop is safe to call more than once. The scheduler cannot be restarted
// afterwards.
func (m *SchedulerManager) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.started {
		return nil
	}
	m.cancel()
	m.started = false

	if err := m.scheduler.Shutdown(); err != nil {
		m.logger.Errorw("scheduler shutdown failed", "error", err)
		return err
	}
	m.logger.Infow("scheduler stopped")
	return nil
}

func (m *SchedulerManager) IsStarted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.started
}

// Jobs exposes the registered jobs for inspection.
func (m *SchedulerManager) Jobs() []gocron.Job {
	return m.scheduler.Jobs()
}
