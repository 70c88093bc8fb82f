package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-campaign-dashboard/components/dashboard"
)

var errMissingDispatcher = errors.New("commands: dispatcher is required")

// Dispatcher applies events to the dashboard state. *dashboard.Controller
// satisfies it.
type Dispatcher interface {
	Dispatch(ctx context.Context, event dashboard.Event) (dashboard.AppState, error)
}

// DispatchEventInput carries a named event as received from a transport.
type DispatchEventInput struct {
	Envelope dashboard.EventEnvelope
}

// DispatchEventCommand decodes an event envelope and applies it.
type DispatchEventCommand struct {
	dispatcher Dispatcher
	telemetry  Telemetry
}

// NewDispatchEventCommand creates the command.
func NewDispatchEventCommand(dispatcher Dispatcher, telemetry Telemetry) *DispatchEventCommand {
	return &DispatchEventCommand{dispatcher: dispatcher, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[DispatchEventInput] = (*DispatchEventCommand)(nil)

// Execute rejects unknown or malformed events with an error matching
// dashboard.ErrInvalidEvent.
func (c *DispatchEventCommand) Execute(ctx context.Context, msg DispatchEventInput) error {
	if c.dispatcher == nil {
		return errMissingDispatcher
	}
	event, err := dashboard.DecodeEvent(msg.Envelope)
	if err != nil {
		return err
	}
	state, err := c.dispatcher.Dispatch(ctx, event)
	c.telemetry.Record(ctx, "dashboard.command.dispatch", map[string]any{
		"event":   event.EventName(),
		"version": state.Version,
	})
	return dashboard.Committed(err)
}
