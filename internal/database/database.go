package database

import (
	"fmt"
	"time"

	"stockfolio/internal/config"
	"stockfolio/internal/logger"
	"stockfolio/internal/models"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// MigrationsSource is where the postgres schema migrations live.
const MigrationsSource = "file://migrations"

// Manager handles database operations
type Manager struct {
	db     *gorm.DB
	driver string
	url    string
}

// NewManager opens the configured database.
func NewManager(cfg config.Database) (*Manager, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.New(postgres.Config{
			DSN:                  DSN(cfg),
			PreferSimpleProtocol: true,
		})
	case "sqlite":
		dialector = sqlite.Open(DSN(cfg) + "?_foreign_keys=on&_busy_timeout=5000")
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}
	if cfg.Driver == "sqlite" {
		// a single writer keeps sqlite from returning SQLITE_BUSY mid-trade
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	return &Manager{db: db, driver: cfg.Driver, url: MigrateURL(cfg)}, nil
}

// RunMigrations brings the schema up to date. Postgres uses the SQL files in
// migrations/; sqlite is migrated from the gorm models.
func (m *Manager) RunMigrations() error {
	logger.Get().Info("Running database migrations...")

	if m.driver == "sqlite" {
		if err := m.db.AutoMigrate(models.All()...); err != nil {
			return fmt.Errorf("auto-migrate failed: %w", err)
		}
		logger.Get().Info("Database migrations completed successfully")
		return nil
	}

	mig, err := migrate.New(MigrationsSource, m.url)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() {
		srcErr, dbErr := mig.Close()
		if srcErr != nil {
			logger.Get().Warnf("migrate source close error: %v", srcErr)
		}
		if dbErr != nil {
			logger.Get().Warnf("migrate database close error: %v", dbErr)
		}
	}()

	if err := mig.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migration failed: %w", err)
	}

	logger.Get().Info("Database migrations completed successfully")
	return nil
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
