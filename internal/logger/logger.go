package logger

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/baikal-tours/signup-bot/internal/buildinfo"
)

var (
	initOnce   sync.Once
	shutdownMu sync.Mutex
	closed     bool

	out      *asyncWriter
	levelVar slog.LevelVar

	debugSampler  = newRatioSampler(1, 50)
	traceOverride bool

	// L is the base structured logger shared by all components.
	L *slog.Logger
)

// Options selects output level, format and sampling for Init.
type Options struct {
	// Level is one of debug, info, warn, error. Empty means info.
	Level string
	// Format is kv or json. Empty falls back by profile: kv for
	// debug/dev, json otherwise.
	Format string
	// Profile names the environment, e.g. "debug" or "prod".
	Profile string
	// DebugSample is a "n/m" or "m" ratio for high-volume debug events.
	DebugSample string
}

// Init configures the process-wide structured logger. Subsequent calls
// are no-ops.
func Init(opts Options) error {
	initOnce.Do(func() {
		levelVar.Set(parseLevel(opts.Level))
		if num, den := parseRatioSpec(opts.DebugSample); den > 0 {
			debugSampler.Set(num, den)
		}
		traceOverride = isTruthy(os.Getenv("TRACE")) || isTruthy(os.Getenv("LOG_TRACE"))

		out = newAsyncWriter([]io.Writer{os.Stdout}, 64*1024)
		handler := newStructuredHandler(handlerConfig{
			level:    &levelVar,
			writer:   out,
			format:   parseFormat(opts.Format, opts.Profile),
			keyOrder: append([]string(nil), defaultKeyOrder...),
		})

		L = slog.New(handler)
		slog.SetDefault(L)

		L.LogAttrs(context.Background(), slog.LevelInfo, "startup",
			slog.String("component", "app"),
			slog.String("event", "startup"),
			slog.String("go_version", runtime.Version()),
			slog.String("build_commit", buildinfo.Commit),
			slog.String("build_time", buildinfo.Date),
			slog.String("cfg_profile", profileOrDefault(opts.Profile)),
		)
	})
	return nil
}

// Shutdown flushes buffered output. Safe to call more than once.
func Shutdown() error {
	shutdownMu.Lock()
	defer shutdownMu.Unlock()
	if closed {
		return nil
	}
	closed = true
	if out == nil {
		return nil
	}
	return errors.Join(out.Flush(), out.Close())
}

// Component returns a logger scoped with the given component attribute.
func Component(name string) *slog.Logger {
	if L == nil {
		return nil
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return L
	}
	return L.With("component", name)
}

// Event logs an event for a component, preferring a context-carried logger.
func Event(ctx context.Context, component string, level slog.Level, event string, attrs ...slog.Attr) {
	logg := Component(component)
	if logg == nil {
		logg = FromContext(ctx)
		if logg != nil && strings.TrimSpace(component) != "" {
			logg = logg.With("component", strings.TrimSpace(component))
		}
	}
	if logg == nil {
		return
	}
	if event != "" {
		attrs = append([]slog.Attr{slog.String("event", event)}, attrs...)
	}
	logg.LogAttrs(ctx, level, "", attrs...)
}

// Debug logs a debug-level event for the given component.
func Debug(ctx context.Context, component, event string, attrs ...slog.Attr) {
	Event(ctx, component, slog.LevelDebug, event, attrs...)
}

// Info logs an info-level event for the given component.
func Info(ctx context.Context, component, event string, attrs ...slog.Attr) {
	Event(ctx, component, slog.LevelInfo, event, attrs...)
}

// Warn logs a warn-level event for the given component.
func Warn(ctx context.Context, component, event string, attrs ...slog.Attr) {
	Event(ctx, component, slog.LevelWarn, event, attrs...)
}

// Error logs an error-level event for the given component.
func Error(ctx context.Context, component, event string, attrs ...slog.Attr) {
	Event(ctx, component, slog.LevelError, event, attrs...)
}

// ShouldSampleDebug reports whether high-volume debug details should be
// emitted for the current event.
func ShouldSampleDebug() bool {
	if traceOverride {
		return true
	}
	return debugSampler.Allow()
}

func parseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func parseFormat(raw, profile string) logFormat {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "kv", "text", "pretty":
		return formatKV
	case "json":
		return formatJSON
	}
	if strings.EqualFold(profile, "debug") || strings.EqualFold(profile, "dev") {
		return formatKV
	}
	return formatJSON
}

func profileOrDefault(profile string) string {
	if p := strings.TrimSpace(profile); p != "" {
		return strings.ToLower(p)
	}
	return "prod"
}

func isTruthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}
