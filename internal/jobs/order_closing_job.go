package jobs

import (
	"context"
	"log/slog"
	"time"

	"restaurant/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// OrderCloser closes orders that have stayed Delivered for the window.
// *commands.CloseDeliveredOrdersCommandHandler satisfies it.
type OrderCloser interface {
	Handle(ctx context.Context, cmd commands.CloseDeliveredOrdersCommand) (int, error)
}

// OrderClosingJob is the system actor that moves Delivered orders to Closed
// once the feedback window has passed.
type OrderClosingJob struct {
	closer   OrderCloser
	schedule string
	window   time.Duration
	timeout  time.Duration
	now      func() time.Time
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewOrderClosingJob builds the job. schedule is a six-field cron spec
// (seconds first); timeout bounds a single run.
func NewOrderClosingJob(
	closer OrderCloser,
	schedule string,
	window, timeout time.Duration,
	logger *slog.Logger,
) *OrderClosingJob {
	return &OrderClosingJob{
		closer:   closer,
		schedule: schedule,
		window:   window,
		timeout:  timeout,
		now:      time.Now,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "order_closing_job"),
	}
}

// Start registers the schedule and starts the scheduler.
func (j *OrderClosingJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.RunOnce(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order closing job started",
		"schedule", j.schedule, "window", j.window.String())
	return nil
}

// RunOnce performs a single sweep and reports how many orders were closed.
// Failures are logged; orders that failed stay Delivered for the next sweep.
func (j *OrderClosingJob) RunOnce(ctx context.Context) int {
	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}

	cmd, err := commands.NewCloseDeliveredOrdersCommand(j.now(), j.window)
	if err != nil {
		j.logger.ErrorContext(ctx, "Order closing job misconfigured", "error", err)
		return 0
	}

	closed, err := j.closer.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Order closing job failed", "error", err, "closed", closed)
	}
	if closed > 0 {
		j.logger.InfoContext(ctx, "Closed delivered orders", "count", closed)
	}
	return closed
}

// Stop stops the scheduler and waits for a running sweep to finish.
func (j *OrderClosingJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Order closing job stopped")
}
