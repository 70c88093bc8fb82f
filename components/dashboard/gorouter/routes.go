package gorouter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	router "github.com/goliatone/go-router"

	"github.com/goliatone/go-campaign-dashboard/components/dashboard"
	"github.com/goliatone/go-campaign-dashboard/components/dashboard/commands"
	"github.com/goliatone/go-campaign-dashboard/components/dashboard/httpapi"
	"github.com/goliatone/go-campaign-dashboard/components/dashboard/queries"
)

// ViewerResolver converts a router.Context into a dashboard.ViewerContext.
type ViewerResolver func(router.Context) dashboard.ViewerContext

// Config wires go-router with the dashboard commands, queries and broadcast
// hook. API is the same bundle the net/http transport serves.
type Config[T any] struct {
	Router         router.Router[T]
	API            *httpapi.Handlers
	ViewerResolver ViewerResolver
	BasePath       string
	Routes         RouteConfig
}

// RouteConfig customizes the relative paths used for dashboard endpoints.
type RouteConfig struct {
	HTML      string
	Tab       string
	State     string
	Campaigns string
	Export    string
	Events    string
	Theme     string
	Refresh   string
	WebSocket string
}

// registrar is the part of router.Router the dashboard routes use.
type registrar interface {
	Get(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	Post(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	WebSocket(path string, cfg router.WebSocketConfig, handler func(router.WebSocketContext) error) router.RouteInfo
}

// Register mounts dashboard routes (HTML, JSON, CSV, WebSocket) on a go-router router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.API == nil {
		return errors.New("gorouter: api handlers are required")
	}
	base := cfg.BasePath
	if base == "" {
		base = "/admin"
	}
	mount(cfg.Router.Group(base), newRoutes(cfg.API, cfg.ViewerResolver), defaultRouteConfig(cfg.Routes))
	return nil
}

type routes struct {
	api      *httpapi.Handlers
	resolver ViewerResolver
}

func newRoutes(api *httpapi.Handlers, resolver ViewerResolver) *routes {
	if resolver == nil {
		resolver = defaultViewerResolver
	}
	return &routes{api: api, resolver: resolver}
}

func mount(r registrar, rt *routes, paths RouteConfig) {
	api := rt.api
	if api.Pages != nil {
		r.Get(paths.HTML, rt.wrap(rt.page))
	}
	if api.Tab != nil {
		r.Get(paths.Tab, rt.wrap(rt.tab))
	}
	if api.State != nil {
		r.Get(paths.State, rt.wrap(rt.state))
	}
	if api.Campaigns != nil {
		r.Get(paths.Campaigns, rt.wrap(rt.campaigns))
	}
	if api.Export != nil {
		r.Get(paths.Export, rt.wrap(rt.export))
	}
	if api.Dispatch != nil {
		r.Post(paths.Events, rt.wrap(rt.event))
	}
	if api.Theme != nil {
		r.Post(paths.Theme, rt.wrap(rt.theme))
	}
	if api.Refresh != nil {
		r.Post(paths.Refresh, rt.wrap(rt.refresh))
	}
	if api.Broadcast != nil {
		registerWebSocket(r, api.Broadcast, paths.WebSocket)
	}
}

type handler func(x exchange, viewer dashboard.ViewerContext) error

func (rt *routes) wrap(h handler) router.HandlerFunc {
	return router.WrapHandler(func(ctx router.Context) error {
		return h(routerExchange{ctx: ctx}, rt.resolver(ctx))
	})
}

func (rt *routes) page(x exchange, viewer dashboard.ViewerContext) error {
	var buf bytes.Buffer
	if err := rt.api.Pages.RenderTab(x.Context(), viewer, dashboard.Tab(x.Query("tab")), &buf); err != nil {
		return respondError(x, err)
	}
	x.SetHeader("Content-Type", "text/html; charset=utf-8")
	return x.Send(buf.Bytes())
}

func (rt *routes) tab(x exchange, viewer dashboard.ViewerContext) error {
	view, err := rt.api.Tab.Query(x.Context(), queries.TabInput{Viewer: viewer, Tab: dashboard.Tab(x.Query("tab"))})
	if err != nil {
		return respondError(x, err)
	}
	return x.JSON(http.StatusOK, view)
}

func (rt *routes) state(x exchange, _ dashboard.ViewerContext) error {
	state, err := rt.api.State.Query(x.Context(), queries.StateInput{})
	if err != nil {
		return respondError(x, err)
	}
	return x.JSON(http.StatusOK, state)
}

func (rt *routes) campaigns(x exchange, _ dashboard.ViewerContext) error {
	values := url.Values{}
	for _, key := range []string{"search", "status", "sort", "direction", "page"} {
		if v := x.Query(key); v != "" {
			values.Set(key, v)
		}
	}
	query, err := dashboard.ParseTableQuery(values)
	if err != nil {
		return respondError(x, err)
	}
	page, err := rt.api.Campaigns.Query(x.Context(), query)
	if err != nil {
		return respondError(x, err)
	}
	return x.JSON(http.StatusOK, page)
}

func (rt *routes) export(x exchange, viewer dashboard.ViewerContext) error {
	var buf bytes.Buffer
	if err := rt.api.Export.Execute(dashboard.WithViewerActivity(x.Context(), viewer), commands.ExportCampaignsInput{Writer: &buf}); err != nil {
		return respondError(x, err)
	}
	x.SetHeader("Content-Type", dashboard.ExportContentType)
	x.SetHeader("Content-Disposition", `attachment; filename="`+dashboard.ExportFileName+`"`)
	return x.Send(buf.Bytes())
}

func (rt *routes) event(x exchange, viewer dashboard.ViewerContext) error {
	var env dashboard.EventEnvelope
	if err := json.Unmarshal(x.Body(), &env); err != nil {
		return x.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if err := rt.api.Dispatch.Execute(dashboard.WithViewerActivity(x.Context(), viewer), commands.DispatchEventInput{Envelope: env}); err != nil {
		return respondError(x, err)
	}
	return rt.stateOrAck(x, viewer)
}

func (rt *routes) theme(x exchange, viewer dashboard.ViewerContext) error {
	var payload commands.SetThemeInput
	if body := x.Body(); len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &payload); err != nil {
			return x.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
	}
	if err := rt.api.Theme.Execute(dashboard.WithViewerActivity(x.Context(), viewer), payload); err != nil {
		return respondError(x, err)
	}
	return rt.stateOrAck(x, viewer)
}

func (rt *routes) refresh(x exchange, _ dashboard.ViewerContext) error {
	if err := rt.api.Refresh.Execute(x.Context(), commands.RefreshDataInput{}); err != nil {
		return respondError(x, err)
	}
	return x.JSON(http.StatusAccepted, map[string]string{"status": "queued"})
}

func (rt *routes) stateOrAck(x exchange, viewer dashboard.ViewerContext) error {
	if rt.api.State == nil {
		return x.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}
	return rt.state(x, viewer)
}

func registerWebSocket(r registrar, hook *dashboard.BroadcastHook, path string) {
	cfg := router.DefaultWebSocketConfig()
	r.WebSocket(path, cfg, func(ws router.WebSocketContext) error {
		events, cancel := hook.Subscribe()
		defer cancel()
		for {
			select {
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := ws.WriteJSON(event); err != nil {
					return err
				}
			case <-ws.Context().Done():
				return ws.Close()
			}
		}
	})
}

func defaultViewerResolver(ctx router.Context) dashboard.ViewerContext {
	return resolveViewer(routerExchange{ctx: ctx})
}

// resolveViewer reads the viewer from the request headers. Values stored in
// locals by upstream middleware (user_id, roles, prefers_dark, locale) win.
func resolveViewer(x exchange) dashboard.ViewerContext {
	viewer := dashboard.ViewerFromHeaders(x.Header, localeOverride(x))
	if v, ok := x.Local("user_id").(string); ok && v != "" {
		viewer.UserID = v
	}
	if roles, ok := x.Local("roles").([]string); ok {
		viewer.Roles = roles
	}
	if dark, ok := x.Local("prefers_dark").(bool); ok {
		viewer.PrefersDarkScheme = dark
	}
	return viewer
}

func localeOverride(x exchange) string {
	if locale, ok := x.Local("locale").(string); ok && locale != "" {
		return locale
	}
	if locale := strings.TrimSpace(x.Param("locale")); locale != "" {
		return locale
	}
	return strings.TrimSpace(x.Query("locale"))
}

func respondError(x exchange, err error) error {
	return x.JSON(statusFor(err), map[string]string{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, dashboard.ErrUnknownTab):
		return http.StatusNotFound
	case errors.Is(err, dashboard.ErrInvalidEvent),
		errors.Is(err, dashboard.ErrInvalidQuery),
		errors.Is(err, dashboard.ErrInvalidTheme):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.HTML == "" {
		routes.HTML = "/dashboard"
	}
	if routes.Tab == "" {
		routes.Tab = "/dashboard/_tab"
	}
	if routes.State == "" {
		routes.State = "/dashboard/_state"
	}
	if routes.Campaigns == "" {
		routes.Campaigns = "/dashboard/campaigns"
	}
	if routes.Export == "" {
		routes.Export = "/dashboard/campaigns/export"
	}
	if routes.Events == "" {
		routes.Events = "/dashboard/events"
	}
	if routes.Theme == "" {
		routes.Theme = "/dashboard/preferences/theme"
	}
	if routes.Refresh == "" {
		routes.Refresh = "/dashboard/refresh"
	}
	if routes.WebSocket == "" {
		routes.WebSocket = "/dashboard/ws"
	}
	return routes
}
