package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	router "github.com/goliatone/go-router"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-campaign-dashboard/components/dashboard"
	"github.com/goliatone/go-campaign-dashboard/components/dashboard/gorouter"
	"github.com/goliatone/go-campaign-dashboard/components/dashboard/httpapi"
	"github.com/goliatone/go-campaign-dashboard/internal/config"
	"github.com/goliatone/go-campaign-dashboard/pkg/activity"
	"github.com/goliatone/go-campaign-dashboard/pkg/activity/usersink"
	"github.com/goliatone/go-campaign-dashboard/pkg/analytics"
	pkgdashboard "github.com/goliatone/go-campaign-dashboard/pkg/dashboard"
)

type serveCmd struct {
	Env string `help:"Dotenv file loaded before the environment." default:".env" type:"path"`
}

func (c *serveCmd) Run(ctx context.Context) error {
	cfg, err := config.Load(c.Env)
	if err != nil {
		return err
	}
	logger := cfg.Log.NewLogger(os.Stderr)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	appCfg, cleanup, err := appConfig(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	app, err := pkgdashboard.New(ctx, appCfg)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	serve, shutdown, err := newServer(cfg, app.Handlers, appCfg.Metrics, addr)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.Scheduler.Start(gctx)
	})
	g.Go(func() error {
		logger.Info("dashboard listening",
			slog.String("addr", addr),
			slog.String("transport", cfg.HTTP.Transport),
			slog.String("path", cfg.HTTP.BasePath+"/dashboard"),
		)
		if err := serve(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		app.Scheduler.Stop()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		return shutdown(shutdownCtx)
	})
	return g.Wait()
}

// appConfig resolves the data source, theme store and notifications from cfg.
func appConfig(ctx context.Context, cfg config.Config, logger *slog.Logger) (pkgdashboard.Config, func(), error) {
	cleanup := func() {}
	dash := cfg.Dashboard
	appCfg := pkgdashboard.Config{
		ChartCacheTTL:     dash.ChartCacheTTL,
		ChartAssetsHost:   dash.ChartAssetsHost,
		Telemetry:         dashboard.NewSlogTelemetry(logger),
		LoadDelay:         dash.LoadDelay,
		RefreshInterval:   dash.RefreshInterval,
		RefreshCampaigns:  dash.RefreshCampaigns,
		SystemPrefersDark: dash.PrefersDark,
		Logger:            logger,
	}
	if cfg.HTTP.Metrics {
		appCfg.Metrics = dashboard.NewMetrics()
	}
	if dash.Notifications {
		appCfg.Notifications = dashboard.LogNotifications{Logger: logger}
	}
	if dash.AuditLog {
		appCfg.Activity = activity.Hooks{usersink.Hook{Sink: usersink.LogSink{Logger: logger}}}
	}

	switch {
	case dash.AnalyticsURL != "":
		client, err := analytics.NewHTTPClient(analytics.HTTPConfig{BaseURL: dash.AnalyticsURL, APIKey: dash.AnalyticsAPIKey})
		if err != nil {
			return appCfg, cleanup, err
		}
		appCfg.Source = analytics.NewDatasetSource(client, dashboard.ChartDays)
		appCfg.Reports = analytics.NewSourceReportRepository(client)
	case dash.Seed != 0:
		appCfg.Source = dashboard.NewGenerator(dashboard.WithSeed(dash.Seed))
	}

	if dash.LayoutPath != "" {
		doc, err := dashboard.ReadManifest(dash.LayoutPath)
		if err != nil {
			return appCfg, cleanup, err
		}
		layout, err := dashboard.NewLayout(doc)
		if err != nil {
			return appCfg, cleanup, err
		}
		appCfg.Layout = &layout
	}

	if !cfg.Redis.Enabled() {
		appCfg.ThemeStore = dashboard.NewInMemoryPreferenceStore()
		return appCfg, cleanup, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return appCfg, cleanup, fmt.Errorf("dashboardctl: redis ping: %w", err)
	}
	appCfg.ThemeStore = dashboard.NewRedisPreferenceStore(client, cfg.Redis.KeyPrefix, cfg.Redis.TTL)
	return appCfg, func() { _ = client.Close() }, nil
}

// newServer builds the configured transport and returns its blocking serve
// function plus a graceful shutdown.
func newServer(cfg config.Config, handlers *httpapi.Handlers, metrics *dashboard.Metrics, addr string) (func() error, func(context.Context) error, error) {
	if cfg.HTTP.Transport == "chi" {
		srv := &http.Server{
			Addr: addr,
			Handler: httpapi.NewRouter(handlers, httpapi.RouterOptions{
				BasePath:    cfg.HTTP.BasePath,
				ExportLimit: cfg.HTTP.ExportLimit,
				EventLimit:  cfg.HTTP.EventLimit,
				Production:  cfg.IsProduction(),
				Metrics:     metrics,
			}),
			ReadHeaderTimeout: readHeaderTimeout,
		}
		return srv.ListenAndServe, srv.Shutdown, nil
	}

	server := router.NewFiberAdapter()
	if metrics != nil {
		server.WrappedRouter().Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))
	}
	if err := gorouter.Register(gorouter.Config[*fiber.App]{
		Router:   server.Router(),
		API:      handlers,
		BasePath: cfg.HTTP.BasePath,
	}); err != nil {
		return nil, nil, err
	}
	return func() error { return server.Serve(addr) }, server.Shutdown, nil
}
