package sql

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/storyq/storyq/pkg/utils"
)

// LoggerConfig controls which statements the store logs above debug level.
type LoggerConfig struct {
	SlowThreshold             time.Duration
	IgnoreRecordNotFoundError bool
}

// queryLogger routes gorm's statement log into logrus.
type queryLogger struct {
	logger *logrus.Logger
	config LoggerConfig
}

//nolint:ireturn
func NewQueryLogger(l *logrus.Logger, cfg LoggerConfig) logger.Interface {
	return &queryLogger{logger: l, config: cfg}
}

// LogMode is a no-op; the level follows the logrus logger.
//
//nolint:ireturn
func (l *queryLogger) LogMode(_ logger.LogLevel) logger.Interface {
	return l
}

func (l *queryLogger) entry(ctx context.Context) *logrus.Entry {
	entry := l.logger.WithContext(ctx).WithField("component", "store")

	if id := utils.RequestID(ctx); id != "" {
		entry = entry.WithField("request_id", id)
	}

	return entry
}

func (l *queryLogger) Info(ctx context.Context, format string, args ...any) {
	l.entry(ctx).Infof(format, args...)
}

func (l *queryLogger) Warn(ctx context.Context, format string, args ...any) {
	l.entry(ctx).Warnf(format, args...)
}

func (l *queryLogger) Error(ctx context.Context, format string, args ...any) {
	l.entry(ctx).Errorf(format, args...)
}

// Trace logs failed statements as errors, slow ones as warnings and the
// rest at debug level.
func (l *queryLogger) Trace(
	ctx context.Context,
	begin time.Time,
	statement func() (sql string, rowsAffected int64),
	err error,
) {
	elapsed := time.Since(begin)

	var level logrus.Level

	switch {
	case err != nil && !(errors.Is(err, gorm.ErrRecordNotFound) && l.config.IgnoreRecordNotFoundError):
		level = logrus.ErrorLevel
	case l.config.SlowThreshold != 0 && elapsed > l.config.SlowThreshold:
		level = logrus.WarnLevel
	default:
		level = logrus.DebugLevel
	}

	if !l.logger.IsLevelEnabled(level) {
		return
	}

	sql, rows := statement()
	entry := l.entry(ctx).WithFields(logrus.Fields{
		"elapsed_ms": elapsed.Milliseconds(),
		"sql":        sql,
	})

	if rows >= 0 {
		entry = entry.WithField("rows", rows)
	}

	switch level { //nolint:exhaustive
	case logrus.ErrorLevel:
		entry.WithError(err).Error("Statement failed")
	case logrus.WarnLevel:
		entry.Warnf("Slow statement over %v", l.config.SlowThreshold)
	default:
		entry.Debug("Statement")
	}
}
