package commands

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-campaign-dashboard/components/dashboard"
)

// SetThemeInput selects a theme. An empty Theme toggles the current one.
type SetThemeInput struct {
	Theme string `json:"theme"`
}

// SetThemeCommand changes the dashboard theme; the controller persists it.
type SetThemeCommand struct {
	dispatcher Dispatcher
	telemetry  Telemetry
}

// NewSetThemeCommand creates the command.
func NewSetThemeCommand(dispatcher Dispatcher, telemetry Telemetry) *SetThemeCommand {
	return &SetThemeCommand{dispatcher: dispatcher, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SetThemeInput] = (*SetThemeCommand)(nil)

// Execute dispatches SetTheme or ToggleTheme.
func (c *SetThemeCommand) Execute(ctx context.Context, msg SetThemeInput) error {
	if c.dispatcher == nil {
		return errMissingDispatcher
	}
	var event dashboard.Event = dashboard.ToggleTheme{}
	if msg.Theme != "" {
		theme, err := dashboard.ParseTheme(msg.Theme)
		if err != nil {
			return err
		}
		event = dashboard.SetTheme{Theme: theme}
	}
	state, err := c.dispatcher.Dispatch(ctx, event)
	c.telemetry.Record(ctx, "dashboard.command.theme", map[string]any{"theme": string(state.Theme)})
	return dashboard.Committed(err)
}
