package driver

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// gormLogger sends gorm's output to logrus at the matching level.
type gormLogger struct {
	entry         *log.Entry
	level         logger.LogLevel
	slowThreshold time.Duration
}

func newGormLogger(l *log.Logger, level logger.LogLevel, slow time.Duration) *gormLogger {
	return &gormLogger{entry: log.NewEntry(l).WithField("component", "gorm"), level: level, slowThreshold: slow}
}

func (g *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	clone := *g
	clone.level = level
	return &clone
}

func (g *gormLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if g.level >= logger.Info {
		g.entry.WithContext(ctx).Infof(msg, args...)
	}
}

func (g *gormLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if g.level >= logger.Warn {
		g.entry.WithContext(ctx).Warnf(msg, args...)
	}
}

func (g *gormLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if g.level >= logger.Error {
		g.entry.WithContext(ctx).Errorf(msg, args...)
	}
}

// Trace logs failed queries as errors, slow ones as warnings and the rest at
// info when SQL logging is on. Missing records are not errors.
func (g *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if g.level <= logger.Silent {
		return
	}
	elapsed := time.Since(begin)
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && g.level >= logger.Error:
		sql, rows := fc()
		g.entry.WithContext(ctx).WithFields(log.Fields{"sql": sql, "rows": rows, "elapsed": elapsed, "error": err}).Error("Query failed")
	case g.slowThreshold > 0 && elapsed > g.slowThreshold && g.level >= logger.Warn:
		sql, rows := fc()
		g.entry.WithContext(ctx).WithFields(log.Fields{"sql": sql, "rows": rows, "elapsed": elapsed}).Warn("Slow query")
	case g.level >= logger.Info:
		sql, rows := fc()
		g.entry.WithContext(ctx).WithFields(log.Fields{"sql": sql, "rows": rows, "elapsed": elapsed}).Info("Query")
	}
}
