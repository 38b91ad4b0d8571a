// Package logger is the process-wide diagnostics facade for memkit.
//
// L is installed at package init with a default handler that writes text to
// stderr, tagged with the "memkit" prefix. It may be replaced wholesale with
// Set or Init. Replacement is not synchronized: do it during single-threaded
// startup, before any allocator or tree is in use.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"
)

// Severity levels beyond the four slog provides.
const (
	LevelTrace slog.Level = slog.LevelDebug - 4
	LevelFatal slog.Level = slog.LevelError + 4
)

// DefaultPrefix tags every record written by the default handler.
const DefaultPrefix = "memkit"

// L is the global logger instance.
var L = New(Options{})

// Options configures a logger built by New or Init.
type Options struct {
	Writer io.Writer  // Destination. Default: os.Stderr
	Level  slog.Level // Minimum level. Default: LevelInfo
	JSON   bool       // Emit JSON instead of text
	Prefix string     // Value of the "prefix" attribute. Default: DefaultPrefix
}

// New builds a logger that reports the caller's file:line and renders the
// trace and fatal levels by name.
func New(opts Options) *slog.Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	prefix := opts.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}

	hopts := &slog.HandlerOptions{
		AddSource:   true,
		Level:       opts.Level,
		ReplaceAttr: replaceAttr,
	}

	var h slog.Handler
	if opts.JSON {
		h = slog.NewJSONHandler(w, hopts)
	} else {
		h = slog.NewTextHandler(w, hopts)
	}
	return slog.New(h).With("prefix", prefix)
}

// Init replaces L with a logger built from opts.
func Init(opts Options) {
	L = New(opts)
}

// Set replaces L. A nil logger discards all output.
func Set(l *slog.Logger) {
	if l == nil {
		l = Discard()
	}
	L = l
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Trace logs at LevelTrace with optional key-value pairs.
func Trace(msg string, args ...any) { Log(L, LevelTrace, 1, msg, args...) }

// Debug logs a debug message with optional key-value pairs.
func Debug(msg string, args ...any) { Log(L, slog.LevelDebug, 1, msg, args...) }

// Info logs an info message with optional key-value pairs.
func Info(msg string, args ...any) { Log(L, slog.LevelInfo, 1, msg, args...) }

// Error logs an error message with optional key-value pairs.
func Error(msg string, args ...any) { Log(L, slog.LevelError, 1, msg, args...) }

// Fatal logs at LevelFatal. It does not exit; callers that must stop use
// internal/invariant.
func Fatal(msg string, args ...any) { Log(L, LevelFatal, 1, msg, args...) }

// Log emits a record on l attributed to the caller skip frames above Log's
// caller. skip=0 attributes the record to the function calling Log.
func Log(l *slog.Logger, level slog.Level, skip int, msg string, args ...any) {
	if l == nil {
		l = L
	}
	ctx := context.Background()
	if !l.Enabled(ctx, level) {
		return
	}
	var pcs [1]uintptr
	runtime.Callers(skip+2, pcs[:]) // skip runtime.Callers and Log
	r := slog.NewRecord(time.Now(), level, msg, pcs[0])
	r.Add(args...)
	_ = l.Handler().Handle(ctx, r)
}

func replaceAttr(_ []string, a slog.Attr) slog.Attr {
	switch a.Key {
	case slog.LevelKey:
		level, ok := a.Value.Any().(slog.Level)
		if !ok {
			return a
		}
		switch {
		case level <= LevelTrace:
			a.Value = slog.StringValue("TRACE")
		case level >= LevelFatal:
			a.Value = slog.StringValue("FATAL")
		}
	case slog.SourceKey:
		src, ok := a.Value.Any().(*slog.Source)
		if !ok || src == nil {
			return a
		}
		a.Value = slog.StringValue(filepath.Base(src.File) + ":" + strconv.Itoa(src.Line))
	}
	return a
}
