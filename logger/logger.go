package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var Zap *zap.Logger

// Config describes where and how log entries are written.
// An empty File logs to stdout.
type Config struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"maxSizeMB"`
	MaxBackups int    `mapstructure:"maxBackups"`
	MaxAgeDays int    `mapstructure:"maxAgeDays"`
}

func New(logLevel string) *zap.Logger {
	if Zap != nil {
		return Zap
	}

	Zap = NewWithConfig(Config{Level: logLevel})
	return Zap
}

// NewWithConfig builds a logger from cfg without touching the global logger.
func NewWithConfig(cfg Config) *zap.Logger {
	var w io.Writer = os.Stdout
	if cfg.File != "" {
		w = rotatingWriter(cfg)
	}

	core := zapcore.NewCore(
		newEncoder(cfg.Format),
		zapcore.AddSync(w),
		ToZapLogLevel(cfg.Level),
	)

	return zap.New(core)
}

func newEncoder(format string) zapcore.Encoder {
	if format == "console" {
		return zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	}
	return zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
}

func rotatingWriter(cfg Config) *lumberjack.Logger {
	w := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     7, // days
		Compress:   false,
	}

	if cfg.MaxSizeMB > 0 {
		w.MaxSize = cfg.MaxSizeMB
	}
	if cfg.MaxBackups > 0 {
		w.MaxBackups = cfg.MaxBackups
	}
	if cfg.MaxAgeDays > 0 {
		w.MaxAge = cfg.MaxAgeDays
	}

	return w
}

func ToZapLogLevel(logLevel string) zapcore.Level {
	switch logLevel {
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
