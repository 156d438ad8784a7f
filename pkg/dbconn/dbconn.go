// Package dbconn opens the gorm connection every SAKU service uses,
// selecting a dialect from the DSN scheme and tuning the pool from config.
package dbconn

import (
	"errors"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/plugin/prometheus"

	"github.com/massehanto/saku/pkg/config"
)

// Dialect builds a gorm.Dialector from a database URL. A "postgres://" or
// "postgresql://" scheme opens via gorm's postgres driver; anything else
// (including a bare file path, used for sqlite in tests) opens via sqlite —
// mirroring the teacher's type-switch in pkg/db/dialect.go, generalized from
// a DBType field to sniffing the DSN the spec's env vars already carry.
func Dialect(databaseURL string) gorm.Dialector {
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		return postgres.Open(databaseURL)
	}
	return sqlite.Open(databaseURL)
}

// Open opens a gorm connection, tunes the pool from cfg, and registers the
// prometheus plugin so /metrics exposes DB pool gauges.
func Open(cfg config.ServiceConfig, logMode gormlogger.Interface) (*gorm.DB, error) {
	db, err := gorm.Open(Dialect(cfg.DatabaseURL), &gorm.Config{Logger: logMode})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.Use(prometheus.New(prometheus.Config{
		DBName:          cfg.ServiceName,
		RefreshInterval: 15,
	})); err != nil {
		return nil, err
	}

	return db, nil
}

// IsDuplicateKeyErr detects a unique-constraint violation across the
// dialects SAKU supports (postgres in production, sqlite in tests).
func IsDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
