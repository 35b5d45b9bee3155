package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	requestExpiryJob *RequestExpiryJob
}

func NewJobManager(
	expireStaleRequestsHandler ExpireStaleRequestsHandler,
	requestExpirySchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		requestExpiryJob: NewRequestExpiryJob(expireStaleRequestsHandler, requestExpirySchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.requestExpiryJob.Start(); err != nil {
		return fmt.Errorf("failed to start request expiry job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs and waits for running ones to return.
func (jm *JobManager) StopAll() {
	jm.requestExpiryJob.Stop()
}
