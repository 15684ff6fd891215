package jobs

import (
	"context"
	"time"

	"orderdesk/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// PurgeExpiredSessionsHandler deletes bindings whose TTL has passed.
type PurgeExpiredSessionsHandler interface {
	Handle(ctx context.Context, cmd commands.PurgeExpiredSessionsCommand) (int64, error)
}

// SessionCleanupJob removes expired session bindings once a minute.
type SessionCleanupJob struct {
	handler PurgeExpiredSessionsHandler
	now     func() time.Time
	cron    *cron.Cron
	logger  logrus.FieldLogger
}

func NewSessionCleanupJob(handler PurgeExpiredSessionsHandler, now func() time.Time, logger logrus.FieldLogger) *SessionCleanupJob {
	if now == nil {
		now = time.Now
	}
	return &SessionCleanupJob{
		handler: handler,
		now:     now,
		cron:    cron.New(),
		logger:  logger.WithField("component", "session_cleanup_job"),
	}
}

// Start schedules the job to run at the top of every minute.
func (j *SessionCleanupJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Session cleanup job started (running every minute)")
	return nil
}

// Run performs a single purge. Failures are logged and retried on the next tick.
func (j *SessionCleanupJob) Run(ctx context.Context) {
	purged, err := j.handler.Handle(ctx, commands.NewPurgeExpiredSessionsCommand(j.now()))
	if err != nil {
		j.logger.WithError(err).Error("Session cleanup job failed")
		return
	}
	if purged > 0 {
		j.logger.WithField("purged", purged).Debug("Expired sessions purged")
	}
}

// Stop stops the schedule and waits for a running purge to finish.
func (j *SessionCleanupJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Session cleanup job stopped")
}
