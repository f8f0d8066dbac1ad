package database

import (
	"fmt"
	"log"

	"github.com/chaatgpt/till/internal/config"
	"github.com/chaatgpt/till/internal/domain/entity"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens the store selected by cfg.Driver ("sqlite" or "postgres")
func NewDB(cfg *config.DatabaseConfig, debug bool) (*gorm.DB, error) {
	logLevel := logger.Warn
	if debug {
		logLevel = logger.Info
	}
	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	}

	switch cfg.Driver {
	case "postgres":
		return NewPostgresDB(cfg, gormCfg)
	case "sqlite", "":
		return NewSQLiteDB(cfg.Path, gormCfg)
	default:
		return nil, fmt.Errorf("unknown database driver %q (use sqlite or postgres)", cfg.Driver)
	}
}

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig, gormCfg *gorm.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetMaxOpenConns(10)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// NewSQLiteDB opens (creating if needed) the SQLite file at path
func NewSQLiteDB(path string, gormCfg *gorm.Config) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}

	// a single writer avoids SQLITE_BUSY between the server and the shutdown save
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	log.Printf("Using SQLite database at %s", path)
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&entity.KVEntry{},
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// Close releases the underlying connection pool
func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Failed to get underlying sql.DB: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Printf("Failed to close database: %v", err)
	}
}
