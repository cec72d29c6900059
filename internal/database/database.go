package database

import (
	"fmt"
	"time"

	"budgetplanner/internal/entity"
	"budgetplanner/internal/logger"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Manager handles database operations
type Manager struct {
	db     *gorm.DB
	config *Config
}

// NewManager opens the configured database.
func NewManager(config *Config) (*Manager, error) {
	var dialector gorm.Dialector
	switch config.Driver {
	case DriverPostgres:
		dialector = postgres.New(postgres.Config{DSN: config.DSN()})
	case DriverSQLite:
		dialector = sqlite.Open(config.Path + "?_foreign_keys=on")
	default:
		return nil, fmt.Errorf("unknown database driver %q", config.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}
	if config.Driver == DriverSQLite {
		// SQLite serializes writers; one connection avoids "database is locked".
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	return &Manager{db: db, config: config}, nil
}

// Migrate brings the schema up to date: embedded SQL migrations on postgres,
// GORM AutoMigrate on sqlite.
func (m *Manager) Migrate() error {
	if m.config.Driver == DriverPostgres {
		return RunMigrations(m.config.MigrateURL())
	}
	logger.Get().Info("Auto-migrating sqlite schema...")
	if err := AutoMigrate(m.db); err != nil {
		return fmt.Errorf("auto-migrate failed: %w", err)
	}
	return nil
}

// AutoMigrate creates or updates the tables for every entity.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.Account{},
		&entity.Category{},
		&entity.Transaction{},
	)
}

// DB returns the underlying GORM database instance
func (m *Manager) DB() *gorm.DB {
	return m.db
}

// Close releases the connection pool.
func (m *Manager) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
