package testfixtures

import (
	"io"
	"path/filepath"
	"testing"

	"cleaning-service-scheduler/internal/infrastructure/database"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewSQLiteDB opens a migrated SQLite database in a temporary directory.
// The connection is closed when the test ends.
func NewSQLiteDB(tb testing.TB) *gorm.DB {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "cleaning.db")
	db, err := database.NewSQLiteConnection(path, logger.Silent)
	if err != nil {
		tb.Fatalf("failed to open sqlite: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		tb.Fatalf("failed to migrate sqlite: %v", err)
	}

	tb.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// NewLogger returns a logger that discards output.
func NewLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
