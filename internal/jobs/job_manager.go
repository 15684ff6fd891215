package jobs

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	sessionCleanupJob *SessionCleanupJob
	rateLimitSweepJob *RateLimitSweepJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	purgeSessionsHandler PurgeExpiredSessionsHandler,
	rateLimiter RateLimitSweeper,
	now func() time.Time,
	logger logrus.FieldLogger,
) *JobManager {
	return &JobManager{
		sessionCleanupJob: NewSessionCleanupJob(purgeSessionsHandler, now, logger),
		rateLimitSweepJob: NewRateLimitSweepJob(rateLimiter, now, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.sessionCleanupJob.Start(); err != nil {
		return fmt.Errorf("failed to start session cleanup job: %w", err)
	}

	if err := jm.rateLimitSweepJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.sessionCleanupJob.Stop()
		return fmt.Errorf("failed to start rate limit sweep job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.rateLimitSweepJob.Stop()
	jm.sessionCleanupJob.Stop()
}
