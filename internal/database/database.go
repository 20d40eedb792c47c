package database

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"comlab/internal/logger"
	"comlab/internal/models"
)

// Models lists every table the service owns, in dependency order.
var Models = []interface{}{
	&models.ComputerUser{},
	&models.ComputerUnit{},
	&models.ActivityLog{},
}

// Manager handles database operations
type Manager struct {
	db     *gorm.DB
	config *Config
}

// NewManager opens the configured database and tunes the connection pool.
func NewManager(config *Config) (*Manager, error) {
	gormConfig := &gorm.Config{Logger: NewGormLogger(logger.Get(), 200*time.Millisecond)}

	var dialector gorm.Dialector
	switch config.Driver {
	case DriverSQLite:
		// foreign keys are off by default in SQLite
		dialector = sqlite.Open(sqliteDSN(config.SQLitePath))
	default:
		dialector = postgres.New(postgres.Config{
			DSN:                  config.DSN(),
			PreferSimpleProtocol: true,
		})
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}
	if config.Driver == DriverSQLite {
		// a single writer avoids SQLITE_BUSY under concurrent kiosk requests
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	return &Manager{db: db, config: config}, nil
}

// RunMigrations brings the schema up to date. Postgres uses the embedded SQL
// migrations; SQLite (local development) is auto-migrated from the models.
func (m *Manager) RunMigrations() error {
	log := logger.Get()
	log.Infow("Running database migrations", "driver", m.config.Driver)

	if m.config.Driver == DriverSQLite {
		if err := m.db.AutoMigrate(Models...); err != nil {
			return fmt.Errorf("auto-migration failed: %w", err)
		}
		log.Info("Database auto-migration completed successfully")
		return nil
	}

	mig, err := NewMigrator(m.config)
	if err != nil {
		return err
	}
	defer closeMigrator(mig)

	if err := mig.Up(); err != nil && !isNoChange(err) {
		return fmt.Errorf("migration failed: %w", err)
	}

	version, dirty, _ := mig.Version()
	if dirty {
		log.Warnw("Database migration is dirty", "version", version)
	} else {
		log.Infow("Database migrations completed successfully", "version", version)
	}
	return nil
}

func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on"
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
