package logger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DefaultSlowThreshold marks a query as slow in the SQL log
const DefaultSlowThreshold = 200 * time.Millisecond

// GormLogger writes GORM output to the zap logger carried by the query
// context, so SQL lines share the request_id of the request that ran them.
type GormLogger struct {
	Level         gormlogger.LogLevel
	SlowThreshold time.Duration
}

// NewGormLogger returns a GORM logger at level
func NewGormLogger(level gormlogger.LogLevel) *GormLogger {
	return &GormLogger{
		Level:         level,
		SlowThreshold: DefaultSlowThreshold,
	}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	next := *l
	next.Level = level
	return &next
}

func (l *GormLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.Level >= gormlogger.Info {
		sqlLogger(ctx).Info(fmt.Sprintf(msg, args...))
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.Level >= gormlogger.Warn {
		sqlLogger(ctx).Warn(fmt.Sprintf(msg, args...))
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.Level >= gormlogger.Error {
		sqlLogger(ctx).Error(fmt.Sprintf(msg, args...))
	}
}

// Trace logs failed statements at error, slow ones at warn and, at the info
// level, every statement. Record-not-found is an expected lookup result and
// is not treated as a failure.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.Level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	statement := func() []zap.Field {
		sql, rows := fc()
		return []zap.Field{
			zap.String("sql", sql),
			zap.Int64("rows", rows),
			zap.Duration("elapsed", elapsed),
		}
	}

	switch {
	case err != nil && l.Level >= gormlogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sqlLogger(ctx).Error("SQL error", append(statement(), zap.Error(err))...)
	case l.SlowThreshold > 0 && elapsed > l.SlowThreshold && l.Level >= gormlogger.Warn:
		sqlLogger(ctx).Warn("Slow SQL", append(statement(), zap.Duration("threshold", l.SlowThreshold))...)
	case l.Level >= gormlogger.Info:
		sqlLogger(ctx).Info("SQL", statement()...)
	}
}

func sqlLogger(ctx context.Context) *zap.Logger {
	return FromContext(ctx).Named("gorm")
}
