package database

import (
	"fmt"

	"cleaning-service-scheduler/internal/domain/entity"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewSQLiteConnection opens a file-backed SQLite database for local runs
// and tests. The schema comes from AutoMigrate; the PostgreSQL-only
// exclusion constraint is not available here, so overlapping bookings are
// guarded by the application checks alone. Transactions take the write
// lock on BEGIN (_txlock=immediate) so concurrent writers queue on
// busy_timeout instead of failing with SQLITE_BUSY on lock upgrade.
func NewSQLiteConnection(path string, logLevel logger.LogLevel) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_txlock=immediate", path)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	return db, nil
}

// Models lists every persisted entity in dependency order.
func Models() []interface{} {
	return []interface{}{
		&entity.Admin{},
		&entity.Customer{},
		&entity.Employee{},
		&entity.Service{},
		&entity.Schedule{},
		&entity.Appointment{},
		&entity.Payment{},
		&entity.Feedback{},
		&entity.AuditLog{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
