// Package logging is a small abstraction over slog. Library packages depend
// on the Logger interface and default to Nop; the CLI builds a real logger
// from configuration.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel accepts level names in any case.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return LevelDebug, nil
	case "INFO", "":
		return LevelInfo, nil
	case "WARN", "WARNING":
		return LevelWarn, nil
	case "ERROR":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

func (l Level) slog() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Logger takes a message and alternating key/value pairs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
}

type Config struct {
	Level  Level
	Format string // "json" or "text"
	Output io.Writer
}

func DefaultConfig() *Config {
	return &Config{Level: LevelInfo, Format: "text", Output: os.Stderr}
}

type slogLogger struct {
	*slog.Logger
}

func (l slogLogger) With(args ...any) Logger {
	return slogLogger{l.Logger.With(args...)}
}

// New wraps an existing *slog.Logger.
func New(l *slog.Logger) Logger {
	return slogLogger{l}
}

// NewLogger builds a Logger from cfg, or from DefaultConfig if cfg is nil.
func NewLogger(cfg *Config) Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: cfg.Level.slog()}
	var h slog.Handler
	if cfg.Format == "json" {
		h = slog.NewJSONHandler(out, opts)
	} else {
		h = slog.NewTextHandler(out, opts)
	}
	return slogLogger{slog.New(h)}
}

type nop struct{}

func (nop) Debug(string, ...any) {}
func (nop) Info(string, ...any)  {}
func (nop) Warn(string, ...any)  {}
func (nop) Error(string, ...any) {}
func (n nop) With(...any) Logger { return n }

// Nop discards everything.
func Nop() Logger { return nop{} }
