package testutil

import (
	"testing"

	"github.com/nagoyameshi/go-api-server/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB creates an in-memory SQLite database with every table migrated.
// The pool is pinned to one connection so the memory database lives as long as the test.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent), // Silent mode for tests
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get database instance: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(model.AllModels()...); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		CleanupTestDB(t, db)
	})

	return db
}

// CleanupTestDB cleans up the test database
func CleanupTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()

	sqlDB, err := db.DB()
	if err != nil {
		t.Errorf("Failed to get database instance: %v", err)
		return
	}

	_ = sqlDB.Close()
}

// CountRows returns the number of rows in table matching the optional where clause.
func CountRows(t *testing.T, db *gorm.DB, table string, where string, args ...any) int64 {
	t.Helper()

	var count int64
	q := db.Table(table)
	if where != "" {
		q = q.Where(where, args...)
	}
	if err := q.Count(&count).Error; err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return count
}
