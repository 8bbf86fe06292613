package main

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"cardiod/internal/config"
)

const (
	logMaxBackups = 5
	logMaxAgeDays = 28
)

// nopCloser is returned when no log file needs closing.
type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// newLogger builds the process logger writing to out and, when configured, to
// a size-rotated log file. The closer flushes the file.
func newLogger(cfg config.Config, out io.Writer) (zerolog.Logger, io.Closer, error) {
	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return zerolog.Nop(), nil, err
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	var w io.Writer = out
	if cfg.LogFormat != "json" {
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	var closer io.Closer = nopCloser{}
	if cfg.LogFile != "" {
		lj := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    cfg.LogMaxSizeMB,
			MaxBackups: logMaxBackups,
			MaxAge:     logMaxAgeDays,
			Compress:   true,
		}
		// The file always receives JSON so it can be shipped as is.
		w = zerolog.MultiLevelWriter(w, lj)
		closer = lj
	}
	l := zerolog.New(w).Level(lvl).With().Timestamp().Str("service", "cardiod").Logger()
	return l, closer, nil
}

func stderrLogger(cfg config.Config) (zerolog.Logger, io.Closer, error) {
	return newLogger(cfg, os.Stderr)
}
