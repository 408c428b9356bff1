package catalog

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DB wraps the gorm handle for the application database.
type DB struct {
	*gorm.DB
}

// Open opens the application database at path and runs migrations.
func Open(path string) (*DB, error) {
	gdb, err := gorm.Open(sqlite.Open(DSN(path)), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	db := &DB{gdb}
	if err := db.AutoMigrate(); err != nil {
		return nil, fmt.Errorf("migrate database %s: %w", path, err)
	}
	return db, nil
}

// DSN builds the sqlite connection string with WAL and a busy timeout.
func DSN(path string) string {
	return fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
}

// AutoMigrate creates or updates every asset-bearing table.
func (db *DB) AutoMigrate() error {
	return db.DB.AutoMigrate(
		&User{},
		&Coach{},
		&Program{},
		&Session{},
		&Message{},
		&Invoice{},
		&Lead{},
		&Enrollment{},
	)
}

// Close closes the underlying connection pool.
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
