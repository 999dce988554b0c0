package log

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
)

// HostHandler is a slog.Handler that encodes each record as LogMessageWire
// JSON and hands it to a sink, typically a host import.
type HostHandler struct {
	sink   func([]byte)
	attrs  []LogAttrWire
	groups []string
	level  slog.Leveler
}

// NewHostHandler returns a handler delivering records at or above level to
// sink.
func NewHostHandler(level slog.Leveler, sink func([]byte)) *HostHandler {
	if level == nil {
		level = slog.LevelInfo
	}
	return &HostHandler{sink: sink, level: level}
}

// Enabled reports whether level is at or above the handler's level.
func (h *HostHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle encodes record and passes it to the sink.
func (h *HostHandler) Handle(_ context.Context, record slog.Record) error {
	msg := LogMessageWire{
		Timestamp: record.Time,
		Level:     record.Level.String(),
		Message:   record.Message,
		Attrs:     append([]LogAttrWire(nil), h.attrs...),
	}
	prefix := strings.Join(h.groups, ".")
	record.Attrs(func(a slog.Attr) bool {
		msg.Attrs = append(msg.Attrs, ToLogAttrWire(prefix, a)...)
		return true
	})

	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	h.sink(data)
	return nil
}

// WithAttrs returns a handler that adds attrs to every record.
func (h *HostHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	clone := *h
	clone.attrs = append([]LogAttrWire(nil), h.attrs...)
	prefix := strings.Join(h.groups, ".")
	for _, a := range attrs {
		clone.attrs = append(clone.attrs, ToLogAttrWire(prefix, a)...)
	}
	return &clone
}

// WithGroup returns a handler that qualifies later attribute keys with name.
func (h *HostHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(append([]string(nil), h.groups...), name)
	return &clone
}
