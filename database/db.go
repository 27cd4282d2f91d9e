package database

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"finledger/internal/api/models"
	"finledger/internal/config"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	_ "modernc.org/sqlite" // registers the cgo-free "sqlite" driver
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// ConnectDB opens the configured database, verifies the connection and migrates the schema.
func ConnectDB(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	db, err := Open(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		// close the handle if migrations fail to avoid resource leak
		Close(db)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("connected to the database", "driver", cfg.DatabaseDriver)
	return db, nil
}

// Open returns a gorm handle for driver ("sqlite" or "postgres") without migrating.
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	case DriverSQLite:
		dialector = sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: sqliteDSN(dsn)})
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql handle: %w", err)
	}

	// sqlite allows a single writer; one connection also keeps :memory: databases alive
	if driver == DriverSQLite {
		sqlDB.SetMaxOpenConns(1)
	}

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// Migrate creates or updates the users, refresh_tokens and transactions tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.RefreshToken{}, &models.Transaction{})
}

// Ping checks that the database still answers.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// sqliteDSN turns on foreign keys (needed for ON DELETE CASCADE) and a busy timeout.
func sqliteDSN(dsn string) string {
	var params []string
	if !strings.Contains(dsn, "foreign_keys") {
		params = append(params, "_pragma=foreign_keys(1)")
	}
	if !strings.Contains(dsn, "busy_timeout") {
		params = append(params, "_pragma=busy_timeout(5000)")
	}
	if len(params) == 0 {
		return dsn
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(params, "&")
}
