package jobs

import (
	"context"
	"log/slog"

	"stateflow/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// StaleItemsJob periodically scans for items stuck past their state's time
// limit and logs each one. Transitions on such items are already rejected by
// the engine, so the job reports rather than repairs.
type StaleItemsJob struct {
	handler  queries.GetStaleItemsQueryHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewStaleItemsJob creates the watchdog job. The schedule is a six-field
// cron expression with a seconds column.
func NewStaleItemsJob(
	handler queries.GetStaleItemsQueryHandler,
	schedule string,
	logger *slog.Logger,
) *StaleItemsJob {
	return &StaleItemsJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "stale_items_job"),
	}
}

// Start begins the periodic scan on the configured schedule.
func (j *StaleItemsJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, j.scan)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale items job started", "schedule", j.schedule)
	return nil
}

// Stop stops the periodic scan.
func (j *StaleItemsJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale items job stopped")
}

func (j *StaleItemsJob) scan() {
	ctx := context.Background()

	stale, err := j.handler.Handle(ctx, queries.NewGetStaleItemsQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Stale items scan failed", "error", err)
		return
	}

	for _, item := range stale {
		j.logger.WarnContext(ctx, "Item exceeded its state time limit",
			"item_id", item.ID.String(),
			"state", item.CurrentState,
			"entered_state_at", item.EnteredStateAt,
			"stale_for", item.StaleFor.String(),
		)
	}
}
