// Package testutil opens throwaway databases for package tests.
package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"finances/internal/config"
	"finances/internal/repositories"

	"gorm.io/gorm"
)

var seq atomic.Int64

// NewSQLiteDB returns a migrated in-memory SQLite database private to t.
func NewSQLiteDB(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	cfg := config.DBConfig{
		Driver:     repositories.DriverSQLite,
		SQLitePath: fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, seq.Add(1)),
		Migrate:    repositories.MigrateAuto,
	}

	db, err := repositories.Open(cfg)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := repositories.Migrate(db, cfg); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	t.Cleanup(func() { _ = repositories.Close(db) })
	return db
}
