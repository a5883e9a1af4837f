package jobs

import (
	"context"
	"log/slog"
	"time"

	"activation/internal/core/application/usecases/queries"
	"activation/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

// DefaultOrderStatsSchedule refreshes the gauges at the start of every minute.
const DefaultOrderStatsSchedule = "0 * * * * *"

const orderStatsTimeout = 30 * time.Second

// OrderStatsJob periodically counts orders per stage and publishes the
// counts as the activation_orders gauge.
type OrderStatsJob struct {
	handler  queries.CountOrdersByStageQueryHandler
	metrics  *metrics.Metrics
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewOrderStatsJob creates the job. An empty schedule falls back to
// DefaultOrderStatsSchedule; schedules use the six field cron syntax.
func NewOrderStatsJob(
	handler queries.CountOrdersByStageQueryHandler,
	m *metrics.Metrics,
	schedule string,
	logger *slog.Logger,
) *OrderStatsJob {
	if schedule == "" {
		schedule = DefaultOrderStatsSchedule
	}
	return &OrderStatsJob{
		handler:  handler,
		metrics:  m,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "order_stats_job"),
	}
}

// Start schedules the job and runs it once right away so the gauges are
// populated before the first tick.
func (j *OrderStatsJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), orderStatsTimeout)
		defer cancel()

		if err := j.Run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Order stats job failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order stats job started", "schedule", j.schedule)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), orderStatsTimeout)
		defer cancel()
		if err := j.Run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Initial order stats run failed", "error", err)
		}
	}()
	return nil
}

// Run performs one refresh.
func (j *OrderStatsJob) Run(ctx context.Context) error {
	counts, err := j.handler.Handle(ctx, queries.NewCountOrdersByStageQuery())
	if err != nil {
		return err
	}

	for stage, n := range counts {
		j.metrics.SetOrdersByStage(stage.String(), n)
	}
	j.logger.DebugContext(ctx, "Order stats refreshed", "stages", len(counts))
	return nil
}

// Stop stops the scheduler and waits for a running refresh to finish.
func (j *OrderStatsJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Order stats job stopped")
}
