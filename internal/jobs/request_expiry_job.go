package jobs

import (
	"context"
	"log/slog"

	"freight/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultRequestExpirySchedule runs the expiry sweep at the start of every minute.
const DefaultRequestExpirySchedule = "0 * * * * *"

// ExpireStaleRequestsHandler is implemented by commands.ExpireStaleRequestsCommandHandler.
type ExpireStaleRequestsHandler interface {
	Handle(ctx context.Context, cmd commands.ExpireStaleRequestsCommand) (int, error)
}

// RequestExpiryJob cancels Open and Bidding requests whose scheduled time has passed.
// A run still in progress when the next one is due causes that next run to be skipped.
type RequestExpiryJob struct {
	handler  ExpireStaleRequestsHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewRequestExpiryJob creates the job. schedule is a six-field cron expression (seconds
// first) or a descriptor such as "@every 30s"; an empty schedule uses
// DefaultRequestExpirySchedule.
func NewRequestExpiryJob(handler ExpireStaleRequestsHandler, schedule string, logger *slog.Logger) *RequestExpiryJob {
	if schedule == "" {
		schedule = DefaultRequestExpirySchedule
	}

	return &RequestExpiryJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "request_expiry_job"),
	}
}

// Start schedules the sweep. An invalid schedule is returned as an error.
func (j *RequestExpiryJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Request expiry job started", "schedule", j.schedule)
	return nil
}

// RunOnce performs a single sweep and reports how many requests it expired. A sweep that
// fails part way still reports the requests it did expire.
func (j *RequestExpiryJob) RunOnce(ctx context.Context) int {
	expired, err := j.handler.Handle(ctx, commands.NewExpireStaleRequestsCommand())
	if err != nil {
		j.logger.ErrorContext(ctx, "Request expiry job failed", "expired", expired, "error", err)
		return expired
	}

	if expired > 0 {
		j.logger.InfoContext(ctx, "Expired stale transport requests", "count", expired)
	}
	return expired
}

// Stop stops scheduling and waits for a running sweep to finish.
func (j *RequestExpiryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Request expiry job stopped")
}
