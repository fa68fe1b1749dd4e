package db

import (
	"strings"

	"github.com/studiokit/atelier/internal/config"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open connects to the configured database. A postgres DSN takes precedence;
// otherwise a local sqlite file is used.
func Open(cfg config.Config, log *zap.Logger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	}

	dsn := strings.TrimSpace(cfg.DatabaseDSN)
	if dsn != "" {
		conn, err := gorm.Open(postgres.Open(dsn), gormCfg)
		if err != nil {
			return nil, err
		}
		log.Info("database connected", zap.String("driver", "postgres"))
		return conn, nil
	}

	conn, err := gorm.Open(sqlite.Open(cfg.SQLitePath), gormCfg)
	if err != nil {
		return nil, err
	}
	log.Warn("database fallback to sqlite", zap.String("path", cfg.SQLitePath))
	return conn, nil
}
