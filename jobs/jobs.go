// Package jobs runs the bot's periodic background jobs: the review
// session reaper and the new-ban poller.
package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

var JobRegistry = map[string]Job{}

func RegisterJob(job Job) {
	JobRegistry[job.Name()] = job
}

type Job interface {
	// Whether or not the job is enabled
	Enabled() bool

	// How often the job should run
	Duration() time.Duration

	// Name of the job
	Name() string

	// Description of the job
	Description() string

	// Function to run the job
	Run(ctx context.Context) error
}

// StartAllJobs launches one goroutine per enabled registered job. Jobs
// stop when ctx is cancelled.
func StartAllJobs(ctx context.Context, logger *zap.Logger) {
	for _, job := range JobRegistry {
		if !job.Enabled() {
			continue
		}

		logger.Info("Starting job", zap.String("job", job.Name()), zap.Duration("interval", job.Duration()))

		go runJob(ctx, job, logger)
	}
}

func runJob(ctx context.Context, job Job, logger *zap.Logger) {
	ticker := time.NewTicker(job.Duration())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := job.Run(ctx); err != nil {
				logger.Error("Job failed", zap.String("job", job.Name()), zap.Error(err))
			}
		}
	}
}
