package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// RefreshDataInput requests one refresh step outside the timer.
type RefreshDataInput struct{}

type refresher interface {
	Tick(ctx context.Context) (bool, error)
}

// RefreshDataCommand runs a scheduler tick. It honours the same gates as the
// timer, so nothing happens while loading or with auto refresh off.
type RefreshDataCommand struct {
	scheduler refresher
	telemetry Telemetry
}

// NewRefreshDataCommand creates the command.
func NewRefreshDataCommand(scheduler refresher, telemetry Telemetry) *RefreshDataCommand {
	return &RefreshDataCommand{scheduler: scheduler, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[RefreshDataInput] = (*RefreshDataCommand)(nil)

// Execute runs the tick.
func (c *RefreshDataCommand) Execute(ctx context.Context, _ RefreshDataInput) error {
	if c.scheduler == nil {
		return errors.New("refresh command requires scheduler")
	}
	refreshed, err := c.scheduler.Tick(ctx)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.command.refresh", map[string]any{"refreshed": refreshed})
	return nil
}
