// Package logging configures the application-wide zerolog logger and
// propagates it through context.Context so any layer can emit structured,
// correlated log events.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Output and format selector values accepted by Config.
const (
	FormatConsole = "console"
	FormatJSON    = "json"

	OutputStderr = "stderr"
	OutputStdout = "stdout"
	OutputFile   = "file"
)

// logFileMode keeps log files private to the owner.
const logFileMode = 0o600

// Config selects the level, format, and destination of log output.
type Config struct {
	// Level is a zerolog level name ("debug", "info", ...). Unparseable
	// values fall back to info.
	Level string `yaml:"level"`
	// Format is "console" for human-readable output or "json".
	Format string `yaml:"format"`
	// Output is "stderr", "stdout", or "file".
	Output string `yaml:"output"`
	// File is the log file path, used when Output is "file".
	File string `yaml:"file"`
	// Caller adds the calling file:line to every event.
	Caller bool `yaml:"caller"`
}

// DefaultConfig returns console output on stderr at info level.
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: FormatConsole,
		Output: OutputStderr,
	}
}

// New builds a zerolog.Logger from the config. For file output the parent
// directory is created if needed; the returned closer releases the file
// handle and is a no-op for stream outputs.
func New(cfg Config) (zerolog.Logger, io.Closer, error) {
	lvl, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		lvl = zerolog.InfoLevel
	}

	var (
		out    io.Writer
		closer io.Closer = nopCloser{}
	)
	switch cfg.Output {
	case OutputStdout:
		out = os.Stdout
	case OutputFile:
		if cfg.File == "" {
			return zerolog.Nop(), nil, fmt.Errorf("logging output %q requires a file path", OutputFile)
		}
		if mkErr := os.MkdirAll(filepath.Dir(cfg.File), 0o750); mkErr != nil {
			return zerolog.Nop(), nil, fmt.Errorf("creating log directory: %w", mkErr)
		}
		f, openErr := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, logFileMode)
		if openErr != nil {
			return zerolog.Nop(), nil, fmt.Errorf("opening log file: %w", openErr)
		}
		out = f
		closer = f
	default:
		out = os.Stderr
	}

	if cfg.Format != FormatJSON {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	logCtx := zerolog.New(out).Level(lvl).With().Timestamp()
	if cfg.Caller {
		logCtx = logCtx.Caller()
	}
	return logCtx.Logger(), closer, nil
}

// WithContext returns a child context carrying the logger.
func WithContext(ctx context.Context, log zerolog.Logger) context.Context {
	return log.WithContext(ctx)
}

// FromContext returns the logger carried by ctx, or a disabled logger when
// none was attached.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
