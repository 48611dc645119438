package database

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/noah-isme/qr-attendance-api/internal/models"
)

// ConnectGorm opens a relational store for the given driver ("postgres" or "sqlite")
// and migrates the users and attendance log tables. GORM diagnostics go to log.
func ConnectGorm(driver, dsn string, log zerolog.Logger) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("%s dsn must not be empty", driver)
	}

	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported gorm driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         newGormLogger(log),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", driver, err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.AttendanceLog{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// Lookups that find nothing are expected on every registration, so they are not logged.
func newGormLogger(log zerolog.Logger) gormlogger.Interface {
	return gormlogger.New(gormLogWriter{log: log.With().Str("component", "gorm").Logger()}, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

type gormLogWriter struct {
	log zerolog.Logger
}

func (w gormLogWriter) Printf(format string, args ...interface{}) {
	w.log.Warn().Msgf(format, args...)
}
