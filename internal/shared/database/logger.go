package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nagoyameshi/go-api-server/internal/config"
	"github.com/nagoyameshi/go-api-server/internal/shared/logger"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// queryLogger sends GORM output to the request logger on ctx, so every SQL line
// carries the request_id and, once authenticated, the principal.
type queryLogger struct {
	level   gormlogger.LogLevel
	slow    time.Duration
	hideSQL bool
}

func newLogger(cfg *config.Config) gormlogger.Interface {
	l := &queryLogger{
		level:   gormlogger.Info,
		slow:    cfg.Database.SlowThreshold,
		hideSQL: cfg.IsProduction(),
	}
	if cfg.IsProduction() {
		l.level = gormlogger.Warn
	}
	return l
}

func (l *queryLogger) logger(ctx context.Context) *slog.Logger {
	return logger.FromContext(ctx).With("component", "gorm")
}

func (l *queryLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	copied := *l
	copied.level = level
	return &copied
}

func (l *queryLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	l.printf(ctx, gormlogger.Info, slog.LevelInfo, msg, data)
}

func (l *queryLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	l.printf(ctx, gormlogger.Warn, slog.LevelWarn, msg, data)
}

func (l *queryLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	l.printf(ctx, gormlogger.Error, slog.LevelError, msg, data)
}

func (l *queryLogger) printf(ctx context.Context, min gormlogger.LogLevel, level slog.Level, msg string, data []interface{}) {
	if l.level < min {
		return
	}
	l.logger(ctx).Log(ctx, level, fmt.Sprintf(msg, data...))
}

// Trace reports one statement: failures at error, slow statements at warn, the
// rest at debug. A missing row is an expected outcome for lookups and is not logged.
func (l *queryLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	failed := err != nil && !errors.Is(err, gorm.ErrRecordNotFound)
	slow := l.slow > 0 && elapsed > l.slow

	var (
		level slog.Level
		msg   string
	)
	switch {
	case failed && l.level >= gormlogger.Error:
		level, msg = slog.LevelError, "쿼리 실행 실패"
	case slow && l.level >= gormlogger.Warn:
		level, msg = slog.LevelWarn, "슬로우 쿼리"
	case l.level >= gormlogger.Info:
		level, msg = slog.LevelDebug, "쿼리 실행"
	default:
		return
	}

	sql, rows := fc()
	attrs := []any{"elapsed", elapsed.String(), "rows", rows}
	if slow {
		attrs = append(attrs, "threshold", l.slow.String())
	}
	if failed {
		attrs = append(attrs, "error", err)
	}
	if !l.hideSQL || failed {
		attrs = append(attrs, "sql", sql)
	}
	l.logger(ctx).Log(ctx, level, msg, attrs...)
}
