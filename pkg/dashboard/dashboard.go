// Package dashboard assembles the campaign dashboard: state controller, tab
// service, refresh scheduler, broadcast hook and the command/query handlers
// served by the HTTP transports.
package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"time"

	core "github.com/goliatone/go-campaign-dashboard/components/dashboard"
	"github.com/goliatone/go-campaign-dashboard/components/dashboard/commands"
	"github.com/goliatone/go-campaign-dashboard/components/dashboard/httpapi"
	"github.com/goliatone/go-campaign-dashboard/components/dashboard/queries"
	"github.com/goliatone/go-campaign-dashboard/pkg/activity"
)

// Service exposes the underlying components/dashboard.Service type.
type Service = core.Service

// Options re-export for convenience.
type Options = core.Options

// NewService proxies to the internal constructor.
func NewService(opts Options) (*Service, error) {
	return core.NewService(opts)
}

// Config collects the collaborators of an App. Everything is optional: the
// zero value serves generated data with the embedded layout and templates.
type Config struct {
	Source            core.DatasetSource
	Reports           core.SourceReportRepository
	ThemeStore        core.ThemeStore
	Layout            *core.Layout
	Renderer          core.Renderer
	ChartCacheTTL     time.Duration
	ChartAssetsHost   string
	Notifications     core.NotificationsClient
	Activity          activity.Hooks
	Telemetry         core.Telemetry
	Metrics           *core.Metrics
	LoadDelay         time.Duration
	RefreshInterval   time.Duration
	RefreshCampaigns  bool
	SystemPrefersDark bool
	Logger            *slog.Logger
}

// App is a fully wired dashboard.
type App struct {
	Controller *core.Controller
	Service    *core.Service
	Scheduler  *core.RefreshScheduler
	Broadcast  *core.BroadcastHook
	ChartCache *core.ChartCache
	Handlers   *httpapi.Handlers
}

// New loads the initial dataset, resolves the stored theme and wires every
// component. The scheduler is not started.
func New(ctx context.Context, cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	source := cfg.Source
	if source == nil {
		source = core.NewGenerator()
	}
	campaigns, err := source.FetchCampaigns(ctx)
	if err != nil {
		return nil, err
	}
	chart, err := source.FetchChartData(ctx)
	if err != nil {
		return nil, err
	}

	telemetry := cfg.Telemetry
	var cacheOpts []core.ChartCacheOption
	if cfg.Metrics != nil {
		telemetry = core.MultiTelemetry(cfg.Telemetry, cfg.Metrics)
		cacheOpts = append(cacheOpts, core.WithCacheObserver(cfg.Metrics))
	}
	ttl := cfg.ChartCacheTTL
	if ttl <= 0 {
		ttl = core.DefaultRefreshInterval
	}
	chartCache := core.NewChartCache(ttl, cacheOpts...)
	if err := cfg.Metrics.TrackChartCache(chartCache); err != nil {
		return nil, err
	}

	broadcast := core.NewBroadcastHook()
	listeners := []core.StateListener{broadcast, chartCache}
	if cfg.Notifications != nil {
		listeners = append(listeners, &core.NotificationsHook{Client: cfg.Notifications})
	}
	controller := core.NewController(core.ControllerOptions{
		Initial:        core.InitialState(campaigns, chart, core.ThemeLight),
		ThemeStore:     cfg.ThemeStore,
		Telemetry:      telemetry,
		ActivityHooks:  cfg.Activity,
		ActivityConfig: activity.Config{Enabled: len(cfg.Activity) > 0, Channel: activity.DefaultChannel},
		Listeners:      listeners,
		Logger:         logger,
	})
	if _, err := controller.LoadTheme(ctx, cfg.SystemPrefersDark); err != nil {
		logger.WarnContext(ctx, "dashboard: load theme preference", slog.Any("error", err))
	}

	renderer := cfg.Renderer
	if renderer == nil {
		if renderer, err = core.NewTemplateRenderer(); err != nil {
			return nil, err
		}
	}
	chartOpts := []core.EChartsProviderOption{core.WithChartCache(chartCache)}
	if cfg.ChartAssetsHost != "" {
		chartOpts = append(chartOpts, core.WithChartAssetsHost(cfg.ChartAssetsHost))
	}
	registry := core.NewRegistryWith(core.ProviderSetOptions{Reports: cfg.Reports, ChartOptions: chartOpts})
	if cfg.Layout != nil {
		if err := registry.LoadManifestDocument(cfg.Layout.Manifest()); err != nil {
			return nil, err
		}
	}

	service, err := core.NewService(core.Options{
		State:     controller,
		Providers: registry,
		Layout:    cfg.Layout,
		Renderer:  renderer,
		Telemetry: telemetry,
		Logger:    logger,
	})
	if err != nil {
		return nil, err
	}
	if err := service.Layout().Manifest().Check(registry, core.NewJSONSchemaValidator()); err != nil {
		return nil, errors.Join(errors.New("dashboard: layout does not match the widget registry"), err)
	}

	scheduler := core.NewRefreshScheduler(controller, core.RefreshOptions{
		Source:           source,
		LoadDelay:        cfg.LoadDelay,
		Interval:         cfg.RefreshInterval,
		RefreshCampaigns: cfg.RefreshCampaigns,
		Logger:           logger,
	})

	return &App{
		Controller: controller,
		Service:    service,
		Scheduler:  scheduler,
		Broadcast:  broadcast,
		ChartCache: chartCache,
		Handlers: &httpapi.Handlers{
			Pages:     service,
			Tab:       queries.NewTabQuery(service),
			State:     queries.NewStateQuery(controller),
			Campaigns: queries.NewCampaignPageQuery(controller, nil),
			Dispatch:  commands.NewDispatchEventCommand(controller, telemetry),
			Theme:     commands.NewSetThemeCommand(controller, telemetry),
			Refresh:   commands.NewRefreshDataCommand(scheduler, telemetry),
			Export:    commands.NewExportCampaignsCommand(controller, telemetry),
			Broadcast: broadcast,
			Logger:    logger,
		},
	}, nil
}
