package jobs

import (
	"fmt"
	"log/slog"

	"activation/internal/core/application/usecases/queries"
	"activation/internal/pkg/metrics"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	orderStatsJob *OrderStatsJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	countOrdersHandler queries.CountOrdersByStageQueryHandler,
	m *metrics.Metrics,
	statsSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		orderStatsJob: NewOrderStatsJob(countOrdersHandler, m, statsSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.orderStatsJob.Start(); err != nil {
		return fmt.Errorf("failed to start order stats job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.orderStatsJob.Stop()
}
