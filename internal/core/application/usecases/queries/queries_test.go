package queries_test

import (
	"path/filepath"
	"testing"
	"time"

	"activation/internal/adapters/out/postgres"
	"activation/internal/adapters/out/postgres/credentialrepo"
	"activation/internal/adapters/out/postgres/orderrepo"
	"activation/internal/core/domain/model/credential"
	"activation/internal/core/domain/model/kernel"
	"activation/internal/core/domain/model/order"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var queryNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() kernel.Clock {
	return kernel.ClockFunc(func() time.Time { return queryNow })
}

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "queries.db") + "?_pragma=foreign_keys(1)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, postgres.Migrate(db))

	c, err := credential.NewCredential(1, "RU Telegram", "token", "russia", "any", "telegram",
		credential.Display{CountryDisplayName: "Russia", CountryAreaCode: "+7"})
	require.NoError(t, err)
	require.NoError(t, credentialrepo.NewGormCredentialRepository(db).Add(t.Context(), c))
	return db
}

// storeOrder writes an order; usedAgo < 0 means New.
func storeOrder(t *testing.T, db *gorm.DB, usedAgo time.Duration, replacements int, code string) kernel.UUID {
	t.Helper()
	snap := order.Snapshot{ID: kernel.NewUUID(), CredentialID: 1, Status: order.New}
	if usedAgo >= 0 {
		usedAt := queryNow.Add(-usedAgo)
		snap.Status = order.Active
		snap.PhoneNumber = "+79161234567"
		snap.ExternalID = "555"
		snap.FirstUsedAt = &usedAt
		snap.ReplacementCount = replacements
		snap.VerificationCode = code
	}
	o, err := order.RestoreOrder(snap)
	require.NoError(t, err)
	require.NoError(t, orderrepo.NewGormOrderRepository(db).Add(t.Context(), o))
	return o.ID()
}
