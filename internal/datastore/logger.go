package datastore

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/fluwatch/fluwatch-go/internal/logging"
)

// slowQueryThreshold marks the duration after which a query is logged as
// slow. One second accommodates migration batches without false positives.
const slowQueryThreshold = time.Second

// createGormLogger returns a GORM logger that forwards to the structured
// application logger.
func createGormLogger() gormlogger.Interface {
	return &slogGormLogger{
		logger: logging.ForService("datastore"),
		level:  gormlogger.Warn,
	}
}

// slogGormLogger adapts gorm's logger interface onto slog.
type slogGormLogger struct {
	logger *slog.Logger
	level  gormlogger.LogLevel
}

func (l *slogGormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *slogGormLogger) Info(ctx context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Info {
		l.logger.InfoContext(ctx, msg, slog.Any("args", args))
	}
}

func (l *slogGormLogger) Warn(ctx context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Warn {
		l.logger.WarnContext(ctx, msg, slog.Any("args", args))
	}
}

func (l *slogGormLogger) Error(ctx context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Error {
		l.logger.ErrorContext(ctx, msg, slog.Any("args", args))
	}
}

func (l *slogGormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	switch {
	case err != nil && !isExpectedError(err):
		l.logger.ErrorContext(ctx, "query failed",
			slog.String("sql", sql),
			slog.Int64("rows", rows),
			slog.Duration("elapsed", elapsed),
			slog.Any("error", err))
	case elapsed > slowQueryThreshold && l.level >= gormlogger.Warn:
		l.logger.WarnContext(ctx, "slow query",
			slog.String("sql", sql),
			slog.Int64("rows", rows),
			slog.Duration("elapsed", elapsed))
	case l.level >= gormlogger.Info:
		l.logger.DebugContext(ctx, "query",
			slog.String("sql", sql),
			slog.Int64("rows", rows),
			slog.Duration("elapsed", elapsed))
	}
}

// isExpectedError filters errors that are part of normal control flow and
// should not be logged at error level.
func isExpectedError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
