package commands

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	dashboard "github.com/goliatone/go-campaign-dashboard/components/dashboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTelemetry struct {
	mu     sync.Mutex
	events []string
}

func (r *recordingTelemetry) Record(_ context.Context, event string, _ map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func newController(t *testing.T, loading bool) *dashboard.Controller {
	t.Helper()
	gen := dashboard.NewGenerator(dashboard.WithSeed(11))
	state := dashboard.InitialState(gen.GenerateCampaigns(), gen.GenerateChartData(), dashboard.ThemeLight)
	state.Loading = loading
	return dashboard.NewController(dashboard.ControllerOptions{Initial: state})
}

func TestDispatchEventCommandAppliesDecodedEvent(t *testing.T) {
	ctrl := newController(t, false)
	telemetry := &recordingTelemetry{}
	cmd := NewDispatchEventCommand(ctrl, telemetry)

	err := cmd.Execute(context.Background(), DispatchEventInput{Envelope: dashboard.EventEnvelope{
		Name:    "tab.set",
		Payload: json.RawMessage(`{"tab":"reports"}`),
	}})
	require.NoError(t, err)
	assert.Equal(t, dashboard.TabReports, ctrl.Snapshot().ActiveTab)
	assert.Equal(t, []string{"dashboard.command.dispatch"}, telemetry.events)
}

func TestDispatchEventCommandRejectsInvalidEvents(t *testing.T) {
	ctrl := newController(t, false)
	cmd := NewDispatchEventCommand(ctrl, nil)

	err := cmd.Execute(context.Background(), DispatchEventInput{Envelope: dashboard.EventEnvelope{Name: "nope"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, dashboard.ErrInvalidEvent))
	assert.Zero(t, ctrl.Snapshot().Version)
}

func TestDispatchEventCommandRequiresDispatcher(t *testing.T) {
	err := NewDispatchEventCommand(nil, nil).Execute(context.Background(), DispatchEventInput{})
	assert.ErrorIs(t, err, errMissingDispatcher)
}

func TestSetThemeCommand(t *testing.T) {
	ctrl := newController(t, false)
	cmd := NewSetThemeCommand(ctrl, nil)

	require.NoError(t, cmd.Execute(context.Background(), SetThemeInput{Theme: "Dark"}))
	assert.Equal(t, dashboard.ThemeDark, ctrl.Snapshot().Theme)

	require.NoError(t, cmd.Execute(context.Background(), SetThemeInput{}))
	assert.Equal(t, dashboard.ThemeLight, ctrl.Snapshot().Theme)

	assert.Error(t, cmd.Execute(context.Background(), SetThemeInput{Theme: "sepia"}))
	assert.Equal(t, dashboard.ThemeLight, ctrl.Snapshot().Theme)
}

func TestRefreshDataCommandSkipsWhileLoading(t *testing.T) {
	ctrl := newController(t, true)
	scheduler := dashboard.NewRefreshScheduler(ctrl, dashboard.RefreshOptions{
		Source: dashboard.NewGenerator(dashboard.WithSeed(3)),
	})
	telemetry := &recordingTelemetry{}
	cmd := NewRefreshDataCommand(scheduler, telemetry)

	require.NoError(t, cmd.Execute(context.Background(), RefreshDataInput{}))
	assert.Zero(t, ctrl.Snapshot().Version)
	assert.Equal(t, []string{"dashboard.command.refresh"}, telemetry.events)
}

func TestRefreshDataCommandReplacesChartData(t *testing.T) {
	ctrl := newController(t, false)
	scheduler := dashboard.NewRefreshScheduler(ctrl, dashboard.RefreshOptions{
		Source: dashboard.NewGenerator(dashboard.WithSeed(3)),
	})
	cmd := NewRefreshDataCommand(scheduler, nil)

	require.NoError(t, cmd.Execute(context.Background(), RefreshDataInput{}))
	state := ctrl.Snapshot()
	assert.Equal(t, uint64(1), state.Version)
	assert.Len(t, state.ChartData, dashboard.ChartDays)
}

func TestExportCampaignsCommandWritesCSVAndQueuesToast(t *testing.T) {
	ctrl := newController(t, false)
	cmd := NewExportCampaignsCommand(ctrl, nil)

	var buf bytes.Buffer
	require.NoError(t, cmd.Execute(context.Background(), ExportCampaignsInput{Writer: &buf}))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, dashboard.CampaignCount+1)
	assert.Equal(t, dashboard.ExportHeader(), records[0])

	toasts := ctrl.Snapshot().Toasts
	require.Len(t, toasts, 1)
	assert.Equal(t, dashboard.ToastSuccess, toasts[0].Type)
}

func TestExportCampaignsCommandRequiresWriter(t *testing.T) {
	ctrl := newController(t, false)
	err := NewExportCampaignsCommand(ctrl, nil).Execute(context.Background(), ExportCampaignsInput{})
	assert.Error(t, err)
	assert.Empty(t, ctrl.Snapshot().Toasts)
}
