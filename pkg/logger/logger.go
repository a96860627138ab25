// Package logger builds the process logger from config.Log.
//
// Library packages log through zap.S() and never construct loggers; the
// command line installs the one built here with zap.ReplaceGlobals.
package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/go-drift/elements/pkg/config"
)

// New returns a logger writing to stderr, teed to a rotated file when
// cfg.File is set, and installs it as the global logger.
func New(cfg config.Log) (*zap.SugaredLogger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	encCfg := zapcore.EncoderConfig{
		TimeKey:      "ts",
		LevelKey:     "level",
		MessageKey:   "msg",
		CallerKey:    "caller",
		EncodeTime:   zapcore.ISO8601TimeEncoder,
		EncodeLevel:  zapcore.LowercaseLevelEncoder,
		EncodeCaller: zapcore.ShortCallerEncoder,
	}
	encoder := zapcore.NewConsoleEncoder(encCfg)
	if cfg.Format == "json" {
		encoder = zapcore.NewJSONEncoder(encCfg)
	}

	cores := []zapcore.Core{zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), level)}
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, fmt.Errorf("logger: %w", err)
		}
		sink := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    50, // MB
			MaxBackups: 7,
			MaxAge:     14, // days
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(sink), level))
	}

	z := zap.New(zapcore.NewTee(cores...), zap.AddCaller()).Sugar()
	zap.ReplaceGlobals(z.Desugar())
	z.Debugw("logger online", "level", level.String(), "format", cfg.Format, "file", cfg.File)
	return z, nil
}
