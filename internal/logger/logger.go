package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log = zap.NewNop()

// ParseLevel maps a LOG_LEVEL value to a zap level, defaulting to info
func ParseLevel(levelStr string) zapcore.Level {
	switch levelStr {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// New builds a zap logger. format "json" gives production output,
// anything else the human friendly console encoder.
func New(levelStr, format, version string) (*zap.Logger, error) {
	var cfg zap.Config
	if format == "json" {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(ParseLevel(levelStr))
	cfg.OutputPaths = []string{"stdout"}

	return cfg.Build(zap.Fields(
		zap.String("service", "franchisedb"),
		zap.String("version", version),
	))
}

// InitLogger builds the logger and makes it the package and zap global
func InitLogger(levelStr, format, version string) error {
	l, err := New(levelStr, format, version)
	if err != nil {
		return err
	}
	log = l
	zap.ReplaceGlobals(l)
	return nil
}

// GetLogger returns the global logger instance. It is a no-op logger until
// InitLogger is called.
func GetLogger() *zap.Logger {
	return log
}
