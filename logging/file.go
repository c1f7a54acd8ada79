package logging

import (
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileConfig describes a rotating log file.
type FileConfig struct {
	Path       string `json:"path"`
	MaxSizeMB  int    `json:"max_size_mb,omitempty"`
	MaxBackups int    `json:"max_backups,omitempty"`
	MaxAgeDays int    `json:"max_age_days,omitempty"`
	Compress   bool   `json:"compress,omitempty"`
}

const defaultMaxSizeMB = 10

// NewRotatingFileLogger returns a logger at the given level that writes to stdout and to a
// size-rotated file. The returned close function flushes and closes the file.
func NewRotatingFileLogger(name string, level Level, cfg FileConfig) (Logger, func() error) {
	maxSize := cfg.MaxSizeMB
	if maxSize <= 0 {
		maxSize = defaultMaxSizeMB
	}
	rotator := &lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    maxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}

	encoderCfg := NewEncoderConfig()
	// no color codes in files.
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	fileCore := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(rotator), zapcore.DebugLevel)

	logger := newImpl(name, level, zapcore.NewTee(newStdoutCore(), fileCore))
	return logger, func() error {
		//nolint:errcheck
		logger.Sync()
		return rotator.Close()
	}
}
