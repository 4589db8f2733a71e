// Package dbtest opens throwaway migrated databases for tests.
package dbtest

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/Skotchmaster/inventory_admin/internal/db"
)

const memoryDSN = "file::memory:?_pragma=foreign_keys(1)"

// InitTestDB returns an in-memory sqlite database with the full schema and
// the built-in roles.
func InitTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	ctx := context.Background()
	gdb, err := db.Open(ctx, db.DriverSQLite, memoryDSN)
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	if err := db.Migrate(ctx, gdb); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gdb
}
