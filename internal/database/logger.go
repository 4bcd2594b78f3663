package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"commerce/utils"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Logger routes gorm's query logging through logrus
type Logger struct {
	level         logger.LogLevel
	slowThreshold time.Duration
}

// NewLogger creates a gorm logger that reports errors and slow queries
func NewLogger(slowThreshold time.Duration) *Logger {
	return &Logger{level: logger.Warn, slowThreshold: slowThreshold}
}

// LogMode sets the logging level and returns a new interface instance.
func (l *Logger) LogMode(level logger.LogLevel) logger.Interface {
	newLogger := *l
	newLogger.level = level
	return &newLogger
}

func (l *Logger) Info(_ context.Context, msg string, data ...interface{}) {
	if l.level >= logger.Info {
		utils.Info(fmt.Sprintf(msg, data...), nil)
	}
}

func (l *Logger) Warn(_ context.Context, msg string, data ...interface{}) {
	if l.level >= logger.Warn {
		utils.Warn(fmt.Sprintf(msg, data...), nil)
	}
}

func (l *Logger) Error(_ context.Context, msg string, data ...interface{}) {
	if l.level >= logger.Error {
		utils.Error(fmt.Sprintf(msg, data...), nil)
	}
}

// Trace logs the SQL of failed, slow, or (at info level) all queries.
func (l *Logger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	fields := log.Fields{
		"sql":     sql,
		"rows":    rows,
		"elapsed": elapsed.String(),
	}

	switch {
	case err != nil && l.level >= logger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		fields["error"] = err.Error()
		utils.Logger().WithFields(fields).Error("gorm query error")
	case l.slowThreshold != 0 && elapsed > l.slowThreshold && l.level >= logger.Warn:
		utils.Logger().WithFields(fields).Warn("gorm slow query")
	case l.level >= logger.Info:
		utils.Logger().WithFields(fields).Debug("gorm query")
	}
}
