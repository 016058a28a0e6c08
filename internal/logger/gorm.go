package logger

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"datasync/internal/config"

	gormlogger "gorm.io/gorm/logger"
)

const slowQuery = 500 * time.Millisecond

// Gorm returns a gorm logger that writes through slog. Slow queries and
// errors are always reported; every statement is traced at debug level.
func Gorm(cfg config.LogConfig) gormlogger.Interface {
	level := gormlogger.Warn
	if parseLevel(cfg.Level) == slog.LevelDebug {
		level = gormlogger.Info
	}
	return gormlogger.New(gormWriter{}, gormlogger.Config{
		SlowThreshold:             slowQuery,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

type gormWriter struct{}

func (gormWriter) Printf(format string, args ...any) {
	Info("db.gorm", "detail", strings.TrimSpace(fmt.Sprintf(format, args...)))
}
