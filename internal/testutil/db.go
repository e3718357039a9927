// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/khaoulaLakhdim/orders-management/internal/core/database"
)

// NewDB opens a migrated SQLite database in a per-test temp dir.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "orders.db") + "?_foreign_keys=1&_busy_timeout=5000"
	db, err := database.NewGorm(database.Opts{
		Driver: "sqlite",
		DSN:    dsn,
		Logger: logger.Discard,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	require.NoError(t, database.Migrate(db))
	return db
}
