package log

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"
)

// LogMessageWire is the JSON form of a log record sent from guest to host.
type LogMessageWire struct {
	Timestamp time.Time     `json:"timestamp"`
	Attrs     []LogAttrWire `json:"attrs,omitempty"`
	Level     string        `json:"level"`
	Message   string        `json:"message"`
}

// LogAttrWire is a single attribute. Value is the string rendering of a
// value of the named Type.
type LogAttrWire struct {
	Key   string `json:"key"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

// ToLogAttrWire converts attr, prefixing its key with prefix when non-empty.
// Group values are flattened with dotted keys.
func ToLogAttrWire(prefix string, attr slog.Attr) []LogAttrWire {
	attr.Value = attr.Value.Resolve()
	key := attr.Key
	if prefix != "" {
		key = prefix + "." + key
	}

	v := attr.Value
	switch v.Kind() {
	case slog.KindGroup:
		var out []LogAttrWire
		for _, a := range v.Group() {
			out = append(out, ToLogAttrWire(key, a)...)
		}
		return out
	case slog.KindString:
		return []LogAttrWire{{Key: key, Type: "string", Value: v.String()}}
	case slog.KindInt64:
		return []LogAttrWire{{Key: key, Type: "int64", Value: strconv.FormatInt(v.Int64(), 10)}}
	case slog.KindUint64:
		return []LogAttrWire{{Key: key, Type: "uint64", Value: strconv.FormatUint(v.Uint64(), 10)}}
	case slog.KindBool:
		return []LogAttrWire{{Key: key, Type: "bool", Value: strconv.FormatBool(v.Bool())}}
	case slog.KindFloat64:
		return []LogAttrWire{{Key: key, Type: "float64", Value: strconv.FormatFloat(v.Float64(), 'g', -1, 64)}}
	case slog.KindTime:
		return []LogAttrWire{{Key: key, Type: "time", Value: v.Time().Format(time.RFC3339Nano)}}
	case slog.KindDuration:
		return []LogAttrWire{{Key: key, Type: "duration", Value: v.Duration().String()}}
	}

	switch a := v.Any().(type) {
	case nil:
		return []LogAttrWire{{Key: key, Type: "any", Value: "<nil>"}}
	case error:
		return []LogAttrWire{{Key: key, Type: "error", Value: a.Error()}}
	default:
		if data, err := json.Marshal(a); err == nil {
			return []LogAttrWire{{Key: key, Type: "json", Value: string(data)}}
		}
		return []LogAttrWire{{Key: key, Type: "any", Value: fmt.Sprintf("%v", a)}}
	}
}

// Attr converts the wire attribute back to a slog.Attr. Values that fail to
// parse are kept as strings.
func (w LogAttrWire) Attr() slog.Attr {
	switch w.Type {
	case "int64":
		if n, err := strconv.ParseInt(w.Value, 10, 64); err == nil {
			return slog.Int64(w.Key, n)
		}
	case "uint64":
		if n, err := strconv.ParseUint(w.Value, 10, 64); err == nil {
			return slog.Uint64(w.Key, n)
		}
	case "bool":
		if b, err := strconv.ParseBool(w.Value); err == nil {
			return slog.Bool(w.Key, b)
		}
	case "float64":
		if f, err := strconv.ParseFloat(w.Value, 64); err == nil {
			return slog.Float64(w.Key, f)
		}
	case "time":
		if ts, err := time.Parse(time.RFC3339Nano, w.Value); err == nil {
			return slog.Time(w.Key, ts)
		}
	case "duration":
		if d, err := time.ParseDuration(w.Value); err == nil {
			return slog.Duration(w.Key, d)
		}
	case "json":
		return slog.Any(w.Key, json.RawMessage(w.Value))
	}
	return slog.String(w.Key, w.Value)
}

// Replay emits the wire record through logger, keeping its timestamp, level
// and attributes. Extra attrs are appended.
func (m LogMessageWire) Replay(ctx context.Context, logger *slog.Logger, extra ...slog.Attr) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(m.Level)); err != nil {
		level = slog.LevelInfo
	}
	if !logger.Enabled(ctx, level) {
		return
	}

	ts := m.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	record := slog.NewRecord(ts, level, m.Message, 0)
	for _, a := range m.Attrs {
		record.AddAttrs(a.Attr())
	}
	record.AddAttrs(extra...)
	_ = logger.Handler().Handle(ctx, record)
}
