// Package tasks owns the in-process job schedule.
package tasks

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"

	"github.com/dalemusser/pulsecheck/internal/app/system/notifier"
	"github.com/dalemusser/pulsecheck/internal/app/system/timeouts"
)

// Scheduler wraps gocron with start/stop lifecycle for the app hooks.
type Scheduler struct {
	inner gocron.Scheduler
	log   *zap.Logger
}

// NewScheduler creates the scheduler with the daily check-in job registered
// at the given UTC time. The job time is fixed UTC (no daylight-saving
// adjustment): the default 10:03 UTC is noon SAST in the original
// deployment.
func NewScheduler(n *notifier.Notifier, hourUTC, minuteUTC int, logger *zap.Logger) (*Scheduler, error) {
	sched, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, err
	}

	job, err := sched.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(
			gocron.NewAtTime(uint(hourUTC), uint(minuteUTC), 0),
		)),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), timeouts.Long())
			defer cancel()
			if _, err := n.Run(ctx); err != nil {
				logger.Error("scheduled daily check-in run failed", zap.Error(err))
			}
		}),
		gocron.WithName("daily-checkin-emails"),
	)
	if err != nil {
		return nil, err
	}

	logger.Info("daily check-in job registered",
		zap.String("job_id", job.ID().String()),
		zap.Int("hour_utc", hourUTC),
		zap.Int("minute_utc", minuteUTC))

	return &Scheduler{inner: sched, log: logger}, nil
}

// Start begins running registered jobs.
func (s *Scheduler) Start() {
	s.inner.Start()
	s.log.Info("task scheduler started")
}

// Stop shuts the scheduler down, waiting for a running job to finish.
func (s *Scheduler) Stop() error {
	err := s.inner.Shutdown()
	s.log.Info("task scheduler stopped")
	return err
}
