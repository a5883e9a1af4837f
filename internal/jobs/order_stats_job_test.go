package jobs_test

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"activation/internal/adapters/out/postgres"
	"activation/internal/adapters/out/postgres/credentialrepo"
	"activation/internal/adapters/out/postgres/orderrepo"
	"activation/internal/core/application/usecases/queries"
	"activation/internal/core/domain/model/credential"
	"activation/internal/core/domain/model/kernel"
	"activation/internal/core/domain/model/order"
	"activation/internal/jobs"
	"activation/internal/pkg/metrics"

	"github.com/glebarez/sqlite"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var statsNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "jobs.db") + "?_pragma=foreign_keys(1)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, postgres.Migrate(db))

	c, err := credential.NewCredential(1, "tpl", "tok", "russia", "any", "telegram", credential.Display{})
	require.NoError(t, err)
	require.NoError(t, credentialrepo.NewGormCredentialRepository(db).Add(t.Context(), c))
	return db
}

func addActive(t *testing.T, db *gorm.DB, usedAgo time.Duration, code string) {
	t.Helper()
	usedAt := statsNow.Add(-usedAgo)
	o, err := order.RestoreOrder(order.Snapshot{
		ID:               kernel.NewUUID(),
		CredentialID:     1,
		Status:           order.Active,
		PhoneNumber:      "+79990000000",
		ExternalID:       "1",
		FirstUsedAt:      &usedAt,
		VerificationCode: code,
	})
	require.NoError(t, err)
	require.NoError(t, orderrepo.NewGormOrderRepository(db).Add(t.Context(), o))
}

func addNew(t *testing.T, db *gorm.DB) {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), 1)
	require.NoError(t, err)
	require.NoError(t, orderrepo.NewGormOrderRepository(db).Add(t.Context(), o))
}

func newJob(t *testing.T, db *gorm.DB) (*jobs.OrderStatsJob, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	require.NoError(t, err)

	clock := kernel.ClockFunc(func() time.Time { return statsNow })
	handler := queries.NewCountOrdersByStageQueryHandler(db, clock)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return jobs.NewOrderStatsJob(handler, m, "", log), reg
}

func stageGauge(t *testing.T, reg *prometheus.Registry, stage string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != "activation_orders" {
			continue
		}
		for _, metric := range family.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "stage" && label.GetValue() == stage {
					return metric.GetGauge().GetValue()
				}
			}
		}
	}
	t.Fatalf("no activation_orders sample for stage %q", stage)
	return 0
}

func TestOrderStatsJobPublishesStageCounts(t *testing.T) {
	db := openDB(t)
	addNew(t, db)
	addNew(t, db)
	addActive(t, db, time.Minute, "")
	addActive(t, db, time.Hour, "")
	addActive(t, db, time.Hour, "1234")
	job, reg := newJob(t, db)

	require.NoError(t, job.Run(t.Context()))

	assert.InDelta(t, 2, stageGauge(t, reg, "new"), 0)
	assert.InDelta(t, 1, stageGauge(t, reg, "awaiting_code"), 0)
	assert.InDelta(t, 1, stageGauge(t, reg, "with_code"), 0)
	assert.InDelta(t, 1, stageGauge(t, reg, "expired"), 0)
}

func TestOrderStatsJobResetsEmptiedStages(t *testing.T) {
	db := openDB(t)
	addNew(t, db)
	job, reg := newJob(t, db)
	require.NoError(t, job.Run(t.Context()))
	require.InDelta(t, 1, stageGauge(t, reg, "new"), 0)

	require.NoError(t, db.Exec("DELETE FROM orders").Error)
	require.NoError(t, job.Run(t.Context()))

	assert.InDelta(t, 0, stageGauge(t, reg, "new"), 0)
}

func TestOrderStatsJobStartRejectsBadSchedule(t *testing.T) {
	db := openDB(t)
	m, err := metrics.New(prometheus.NewRegistry())
	require.NoError(t, err)
	handler := queries.NewCountOrdersByStageQueryHandler(db, kernel.SystemClock{})
	job := jobs.NewOrderStatsJob(handler, m, "not a schedule", slog.New(slog.NewTextHandler(io.Discard, nil)))

	assert.Error(t, job.Start())
}

func TestJobManagerStartStop(t *testing.T) {
	db := openDB(t)
	m, err := metrics.New(prometheus.NewRegistry())
	require.NoError(t, err)
	handler := queries.NewCountOrdersByStageQueryHandler(db, kernel.SystemClock{})
	manager := jobs.NewJobManager(handler, m, "", slog.New(slog.NewTextHandler(io.Discard, nil)))

	require.NoError(t, manager.StartAll())
	manager.StopAll()
}
