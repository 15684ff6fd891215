package jobs

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// RateLimitSweeper forgets clients that have been quiet for a whole window.
type RateLimitSweeper interface {
	Sweep(now time.Time) int
}

// RateLimitSweepJob keeps the in-memory rate limiter from growing with every
// address it has ever seen.
type RateLimitSweepJob struct {
	sweeper RateLimitSweeper
	now     func() time.Time
	cron    *cron.Cron
	logger  logrus.FieldLogger
}

func NewRateLimitSweepJob(sweeper RateLimitSweeper, now func() time.Time, logger logrus.FieldLogger) *RateLimitSweepJob {
	if now == nil {
		now = time.Now
	}
	return &RateLimitSweepJob{
		sweeper: sweeper,
		now:     now,
		cron:    cron.New(),
		logger:  logger.WithField("component", "rate_limit_sweep_job"),
	}
}

func (j *RateLimitSweepJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", j.Run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Rate limit sweep job started (running every minute)")
	return nil
}

func (j *RateLimitSweepJob) Run() {
	tracked := j.sweeper.Sweep(j.now())
	j.logger.WithField("tracked_clients", tracked).Debug("Rate limiter swept")
}

func (j *RateLimitSweepJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Rate limit sweep job stopped")
}
