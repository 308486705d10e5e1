package database

import (
	"fmt"
	"os"
	"time"

	pkgLogger "github.com/vendora/supplierctl/pkg/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect establishes a connection to the PostgreSQL database
func Connect(databaseURL string) (*gorm.DB, error) {
	// Configure GORM logger
	logLevel := logger.Silent
	if os.Getenv("ENVIRONMENT") != "production" {
		logLevel = logger.Warn
	}

	gormLogger := pkgLogger.NewGormLogger(
		logLevel,
		200*time.Millisecond,
	)

	// Open database connection. The mutator manages transactions itself,
	// so GORM's per-write implicit transaction is disabled.
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL database
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	// Configure connection pool. One logical operation runs per invocation,
	// so the pool stays small.
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	// Verify connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// Close releases the underlying connection pool. Safe on all exit paths.
func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	_ = sqlDB.Close()
}

// HasTable reports whether the named table exists in the current schema.
// Existence checks go through the migrator rather than assuming a fixed
// schema, since the toolkit runs against databases of varying vintages.
func HasTable(db *gorm.DB, table string) bool {
	return db.Migrator().HasTable(table)
}

// HasColumn reports whether the named column exists on the given table.
func HasColumn(db *gorm.DB, model interface{}, column string) bool {
	return db.Migrator().HasColumn(model, column)
}
