package dashboard

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	core "github.com/goliatone/go-campaign-dashboard/components/dashboard"
	"github.com/goliatone/go-campaign-dashboard/components/dashboard/commands"
	"github.com/goliatone/go-campaign-dashboard/pkg/activity"
)

type capturingNotifications struct {
	sent []core.Notification
}

func (c *capturingNotifications) Publish(_ context.Context, n core.Notification) error {
	c.sent = append(c.sent, n)
	return nil
}

func TestNewWiresApp(t *testing.T) {
	store := core.NewInMemoryPreferenceStore()
	require.NoError(t, store.SaveTheme(context.Background(), core.ThemePreferenceKey, core.ThemeDark))

	app, err := New(context.Background(), Config{
		Source:     core.NewGenerator(core.WithSeed(9)),
		ThemeStore: store,
	})
	require.NoError(t, err)

	state := app.Controller.Snapshot()
	assert.True(t, state.Loading)
	assert.Equal(t, core.ThemeDark, state.Theme)
	assert.Len(t, state.Campaigns, core.CampaignCount)
	assert.Len(t, state.ChartData, core.ChartDays)
	assert.NotNil(t, app.Handlers.Export)
	assert.Same(t, app.Broadcast, app.Handlers.Broadcast)
}

func TestAppRendersLoadingDashboard(t *testing.T) {
	app, err := New(context.Background(), Config{Source: core.NewGenerator(core.WithSeed(9))})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, app.Service.RenderTab(context.Background(), core.ViewerContext{}, "", &buf))
	html := buf.String()
	assert.Contains(t, html, `data-widget="campaign.widget.metric_cards"`)
	assert.Contains(t, html, `aria-busy="true"`)
}

func TestAppBroadcastsAndNotifies(t *testing.T) {
	notifications := &capturingNotifications{}
	app, err := New(context.Background(), Config{
		Source:        core.NewGenerator(core.WithSeed(4)),
		Notifications: notifications,
		LoadDelay:     time.Millisecond,
	})
	require.NoError(t, err)

	events, cancel := app.Broadcast.Subscribe()
	defer cancel()

	_, err = app.Controller.Dispatch(context.Background(), core.ToggleNotifications{})
	require.NoError(t, err)
	_, err = app.Controller.Dispatch(context.Background(), core.LoadingFinished{})
	require.NoError(t, err)

	first := <-events
	assert.Equal(t, core.ToggleNotifications{}.EventName(), first.Event)
	second := <-events
	assert.Equal(t, core.LoadingFinished{}.EventName(), second.Event)

	require.Len(t, notifications.sent, 2)
	assert.Equal(t, "Notifications enabled", notifications.sent[0].Toast.Message)
	assert.Equal(t, "Dashboard loaded successfully!", notifications.sent[1].Toast.Message)
}

func TestNewRejectsLayoutWithUnknownWidgets(t *testing.T) {
	doc := &core.LayoutManifest{
		Version: core.ManifestVersion,
		Tabs: []core.ManifestTab{{
			Code:  core.TabDashboard,
			Title: "Dashboard",
			Slots: []core.ManifestSlot{{ID: "x", Widget: "campaign.widget.unknown", Span: 12}},
		}},
	}
	layout, err := core.NewLayout(doc)
	require.NoError(t, err)

	_, err = New(context.Background(), Config{Source: core.NewGenerator(core.WithSeed(1)), Layout: &layout})
	assert.Error(t, err)
}

func TestAppAuditsViewerActions(t *testing.T) {
	capture := &activity.CaptureHook{}
	app, err := New(context.Background(), Config{
		Source:   core.NewGenerator(core.WithSeed(6)),
		Activity: activity.Hooks{capture},
	})
	require.NoError(t, err)

	ctx := core.WithViewerActivity(context.Background(), core.ViewerContext{UserID: "analyst-1"})
	require.NoError(t, app.Handlers.Theme.Execute(ctx, commands.SetThemeInput{}))

	require.Len(t, capture.Events, 1)
	evt := capture.Events[0]
	assert.Equal(t, "theme.toggle", evt.Verb)
	assert.Equal(t, "analyst-1", evt.ActorID)
	assert.Equal(t, activity.DefaultChannel, evt.Channel)
	assert.Equal(t, "dark", evt.Metadata["theme"])
}

func TestAppChartCacheFollowsDatasetAndMetrics(t *testing.T) {
	metrics := core.NewMetrics()
	gen := core.NewGenerator(core.WithSeed(8))
	app, err := New(context.Background(), Config{Source: gen, Metrics: metrics, ChartCacheTTL: time.Minute})
	require.NoError(t, err)
	ctx := context.Background()

	_, err = app.Controller.Dispatch(ctx, core.LoadingFinished{})
	require.NoError(t, err)
	require.NoError(t, app.Service.RenderTab(ctx, core.ViewerContext{}, "", io.Discard))
	require.Positive(t, app.ChartCache.Len())

	_, err = app.Controller.Dispatch(ctx, core.ReplaceChartData{Points: gen.GenerateChartData()})
	require.NoError(t, err)
	assert.Zero(t, app.ChartCache.Len())

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	assert.Contains(t, body, `campaign_dashboard_chart_cache_lookups_total{result="miss"}`)
	assert.Contains(t, body, `campaign_dashboard_events_total{event="dashboard.state.chart.replace"} 1`)
	assert.Contains(t, body, "campaign_dashboard_chart_cache_entries 0")
}
