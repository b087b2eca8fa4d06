package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/wire"
	"github.com/trebuchet-org/counter-harness/internal/domain/config"
)

// LevelEnv overrides the default warn level when --debug is not set
const LevelEnv = "COUNTER_LOG_LEVEL"

var LoggingSet = wire.NewSet(
	NewLogger,
)

// NewLogger writes text logs to stderr so stdout stays clean for --json
func NewLogger(cfg *config.RuntimeConfig) *slog.Logger {
	return newLogger(cfg, os.Stderr)
}

func newLogger(cfg *config.RuntimeConfig, w io.Writer) *slog.Logger {
	debug := cfg != nil && cfg.Debug

	opts := &slog.HandlerOptions{
		Level:     ParseLevel(os.Getenv(LevelEnv), slog.LevelWarn),
		AddSource: debug,
	}
	if debug {
		opts.Level = slog.LevelDebug
	}
	opts.ReplaceAttr = func(_ []string, a slog.Attr) slog.Attr {
		switch a.Key {
		case slog.TimeKey:
			if !debug {
				return slog.Attr{}
			}
		case slog.SourceKey:
			if src, ok := a.Value.Any().(*slog.Source); ok {
				src.File = shortPath(src.File)
			}
		}
		return a
	}

	return slog.New(slog.NewTextHandler(w, opts))
}

// ParseLevel maps a level name to a slog level, falling back to def
func ParseLevel(val string, def slog.Level) slog.Level {
	levels := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	if level, ok := levels[strings.ToLower(strings.TrimSpace(val))]; ok {
		return level
	}
	return def
}

// shortPath trims a source path to the module-relative part, or the file name
func shortPath(file string) string {
	const module = "counter-harness/"
	if _, rel, ok := strings.Cut(file, module); ok {
		return rel
	}
	return filepath.Base(file)
}
