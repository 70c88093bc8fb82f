package dashboard

import (
	"context"
	"log/slog"
)

// Telemetry records dashboard events for observability.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return noopTelemetry{}
	}
	return t
}

// MultiTelemetry fans every record out to each non-nil sink.
func MultiTelemetry(sinks ...Telemetry) Telemetry {
	out := make(multiTelemetry, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	switch len(out) {
	case 0:
		return noopTelemetry{}
	case 1:
		return out[0]
	}
	return out
}

type multiTelemetry []Telemetry

func (m multiTelemetry) Record(ctx context.Context, event string, payload map[string]any) {
	for _, t := range m {
		t.Record(ctx, event, payload)
	}
}

// SlogTelemetry writes telemetry records as structured log lines.
type SlogTelemetry struct {
	Logger *slog.Logger
	Level  slog.Level
}

// NewSlogTelemetry logs at debug level through logger (slog.Default when nil).
func NewSlogTelemetry(logger *slog.Logger) *SlogTelemetry {
	return &SlogTelemetry{Logger: logger, Level: slog.LevelDebug}
}

// Record emits one log line per event.
func (t *SlogTelemetry) Record(ctx context.Context, event string, payload map[string]any) {
	logger := t.Logger
	if logger == nil {
		logger = slog.Default()
	}
	attrs := make([]slog.Attr, 0, len(payload)+1)
	attrs = append(attrs, slog.String("event", event))
	for k, v := range payload {
		attrs = append(attrs, slog.Any(k, v))
	}
	logger.LogAttrs(ctx, t.Level, "dashboard telemetry", attrs...)
}
