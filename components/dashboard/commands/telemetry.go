package commands

import (
	"context"

	dashboard "github.com/goliatone/go-campaign-dashboard/components/dashboard"
)

// Telemetry allows commands to emit structured events. It matches
// dashboard.Telemetry so one sink serves both.
type Telemetry = dashboard.Telemetry

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return noopTelemetry{}
	}
	return t
}
