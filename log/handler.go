package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// formatterHandler adapts a LogFormatter to slog.Handler, letting New's
// callers pick one of TextFormatter/JSONFormatter/ColorFormatter as an
// alternative to the default slog.JSONHandler New uses.
type formatterHandler struct {
	w         io.Writer
	formatter LogFormatter
	level     slog.Level
	attrs     []slog.Attr
	group     string
}

// NewWithFormatter creates a Logger that renders each record through
// formatter instead of slog's built-in JSON encoding — e.g. for a
// human-readable CLI demo (-log-format=text or -log-format=color).
func NewWithFormatter(w io.Writer, formatter LogFormatter, level slog.Level) *Logger {
	return &Logger{inner: slog.New(&formatterHandler{w: w, formatter: formatter, level: level})}
}

func (h *formatterHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *formatterHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make(map[string]interface{}, r.NumAttrs()+len(h.attrs))
	for _, a := range h.attrs {
		fields[h.qualify(a.Key)] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		fields[h.qualify(a.Key)] = a.Value.Any()
		return true
	})

	entry := LogEntry{
		Timestamp: r.Time,
		Level:     levelFromSlog(r.Level),
		Message:   r.Message,
		Fields:    fields,
	}
	_, err := fmt.Fprintln(h.w, h.formatter.Format(entry))
	return err
}

func (h *formatterHandler) qualify(key string) string {
	if h.group == "" {
		return key
	}
	return h.group + "." + key
}

func (h *formatterHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &next
}

func (h *formatterHandler) WithGroup(name string) slog.Handler {
	next := *h
	if h.group == "" {
		next.group = name
	} else {
		next.group = h.group + "." + name
	}
	return &next
}

func levelFromSlog(l slog.Level) LogLevel {
	switch {
	case l < slog.LevelInfo:
		return DEBUG
	case l < slog.LevelWarn:
		return INFO
	case l < slog.LevelError:
		return WARN
	default:
		return ERROR
	}
}
