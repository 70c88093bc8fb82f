package commands

import (
	"context"
	"errors"
	"io"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-campaign-dashboard/components/dashboard"
)

// ExportCampaignsInput names the destination of the CSV export.
type ExportCampaignsInput struct {
	Writer io.Writer
}

type exportSource interface {
	Dispatcher
	Snapshot() dashboard.AppState
}

// ExportCampaignsCommand writes the full campaign dataset as CSV and records
// the export in the state (which queues the export toast).
type ExportCampaignsCommand struct {
	source    exportSource
	telemetry Telemetry
}

// NewExportCampaignsCommand creates the command.
func NewExportCampaignsCommand(source exportSource, telemetry Telemetry) *ExportCampaignsCommand {
	return &ExportCampaignsCommand{source: source, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ExportCampaignsInput] = (*ExportCampaignsCommand)(nil)

// Execute exports the unfiltered campaign list.
func (c *ExportCampaignsCommand) Execute(ctx context.Context, msg ExportCampaignsInput) error {
	if c.source == nil {
		return errMissingDispatcher
	}
	if msg.Writer == nil {
		return errors.New("export command requires a writer")
	}
	campaigns := c.source.Snapshot().Campaigns
	if err := dashboard.WriteCampaignsCSV(msg.Writer, campaigns); err != nil {
		return err
	}
	if _, err := c.source.Dispatch(ctx, dashboard.ExportStarted{}); dashboard.Committed(err) != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.command.export", map[string]any{"rows": len(campaigns)})
	return nil
}
