package jobs

import (
	"context"
	"log/slog"

	"parcelflow/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultArchiveSchedule runs the archive every 30 seconds.
const DefaultArchiveSchedule = "*/30 * * * * *"

// ArchiveConfirmedOrdersJob periodically moves confirmed orders from the dispatcher's
// live table into the archive.
type ArchiveConfirmedOrdersJob struct {
	handler  commands.ArchiveConfirmedOrdersCommandHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewArchiveConfirmedOrdersJob creates the job. schedule is a cron spec with a
// seconds field; an empty schedule falls back to DefaultArchiveSchedule.
func NewArchiveConfirmedOrdersJob(
	handler commands.ArchiveConfirmedOrdersCommandHandler,
	schedule string,
	logger *slog.Logger,
) *ArchiveConfirmedOrdersJob {
	if schedule == "" {
		schedule = DefaultArchiveSchedule
	}

	return &ArchiveConfirmedOrdersJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "archive_confirmed_orders_job"),
	}
}

// Start registers the job on its schedule and starts the scheduler.
func (j *ArchiveConfirmedOrdersJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Archive job started", "schedule", j.schedule)
	return nil
}

// Stop stops the scheduler and waits for a running archive pass to finish.
func (j *ArchiveConfirmedOrdersJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Archive job stopped")
}

func (j *ArchiveConfirmedOrdersJob) run(ctx context.Context) {
	ids, err := j.handler.Handle(ctx, commands.NewArchiveConfirmedOrdersCommand())
	if err != nil {
		j.logger.ErrorContext(ctx, "Archive job failed", "error", err)
		return
	}

	if len(ids) > 0 {
		j.logger.InfoContext(ctx, "Archived confirmed orders", "count", len(ids), "order_ids", ids)
	}
}
