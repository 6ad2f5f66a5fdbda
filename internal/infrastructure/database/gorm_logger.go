package database

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const defaultSlowThreshold = 200 * time.Millisecond

// gormLogger routes gorm output into zap
type gormLogger struct {
	logger        *zap.Logger
	level         logger.LogLevel
	slowThreshold time.Duration
}

// NewGormLogger adapts logger for gorm. SQL traces are logged only when
// logger has debug enabled.
func NewGormLogger(base *zap.Logger) logger.Interface {
	level := logger.Warn
	if base.Core().Enabled(zapcore.DebugLevel) {
		level = logger.Info
	}
	return &gormLogger{
		logger:        base.Named("gorm").WithOptions(zap.AddCallerSkip(3)),
		level:         level,
		slowThreshold: defaultSlowThreshold,
	}
}

func (l *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	cloned := *l
	cloned.level = level
	return &cloned
}

func (l *gormLogger) Info(_ context.Context, msg string, args ...any) {
	if l.level >= logger.Info {
		l.logger.Info(fmt.Sprintf(msg, args...))
	}
}

func (l *gormLogger) Warn(_ context.Context, msg string, args ...any) {
	if l.level >= logger.Warn {
		l.logger.Warn(fmt.Sprintf(msg, args...))
	}
}

func (l *gormLogger) Error(_ context.Context, msg string, args ...any) {
	if l.level >= logger.Error {
		l.logger.Error(fmt.Sprintf(msg, args...))
	}
}

func (l *gormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level == logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && l.level >= logger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		l.logger.Error("query failed",
			zap.Error(err),
			zap.Duration("elapsed", elapsed),
			zap.Int64("rows", rows),
			zap.String("sql", sql),
		)
	case elapsed > l.slowThreshold && l.level >= logger.Warn:
		sql, rows := fc()
		l.logger.Warn("slow query",
			zap.Duration("elapsed", elapsed),
			zap.Duration("threshold", l.slowThreshold),
			zap.Int64("rows", rows),
			zap.String("sql", sql),
		)
	case l.level >= logger.Info:
		sql, rows := fc()
		l.logger.Debug("query",
			zap.Duration("elapsed", elapsed),
			zap.Int64("rows", rows),
			zap.String("sql", sql),
		)
	}
}
