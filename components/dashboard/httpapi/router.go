package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"

	"github.com/goliatone/go-campaign-dashboard/components/dashboard"
)

// RouterOptions tunes the chi router built by NewRouter.
type RouterOptions struct {
	// BasePath prefixes every route; "/admin" serves /admin/dashboard.
	BasePath string
	// ExportLimit caps CSV exports per client per minute. Zero uses 10.
	ExportLimit int
	// EventLimit caps event submissions per client per minute. Zero uses 120.
	EventLimit int
	// Production enables SSL redirects and HSTS.
	Production bool
	// Metrics, when set, records every request and serves /metrics.
	Metrics *dashboard.Metrics
}

// NewRouter mounts the handlers on a chi router with the standard
// middleware chain.
func NewRouter(h *Handlers, opts RouterOptions) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP, middleware.RequestID, middleware.Recoverer)
	r.Use(secureMiddleware(opts.Production).Handler)
	if opts.Metrics != nil {
		r.Use(requestMetrics(opts.Metrics))
		r.Handle("/metrics", opts.Metrics.Handler())
	}

	base := "/" + strings.Trim(opts.BasePath, "/")
	if base == "/" {
		base = ""
	}
	r.Route(base+"/dashboard", func(r chi.Router) {
		h.MountRoutes(r, opts)
	})
	return r
}

// MountRoutes registers the dashboard endpoints relative to r.
func (h *Handlers) MountRoutes(r chi.Router, opts RouterOptions) {
	exportLimit := opts.ExportLimit
	if exportLimit <= 0 {
		exportLimit = 10
	}
	eventLimit := opts.EventLimit
	if eventLimit <= 0 {
		eventLimit = 120
	}

	r.Get("/", h.HandleDashboard)
	r.Get("/_tab", h.HandleTab)
	r.Get("/_state", h.HandleState)
	r.Get("/campaigns", h.HandleCampaigns)
	r.Get("/events/stream", h.HandleStream)
	r.Get("/ws", h.HandleWebSocket)

	r.Group(func(gr chi.Router) {
		gr.Use(limiter(exportLimit))
		gr.Get("/campaigns/export", h.HandleExport)
	})
	r.Group(func(gr chi.Router) {
		gr.Use(limiter(eventLimit))
		gr.Post("/events", h.HandleEvent)
		gr.Post("/preferences/theme", h.HandleTheme)
		gr.Post("/refresh", h.HandleRefresh)
	})
}

func requestMetrics(m *dashboard.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			m.ObserveRequest(routePattern(r), status, time.Since(start))
		})
	}
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unknown"
}

func limiter(perMinute int) func(http.Handler) http.Handler {
	return httprate.Limit(perMinute, time.Minute,
		httprate.WithKeyFuncs(rateLimitKey),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		}),
	)
}

func rateLimitKey(r *http.Request) (string, error) {
	if user := strings.TrimSpace(r.Header.Get(dashboard.HeaderUserID)); user != "" {
		return "user:" + user, nil
	}
	key, err := httprate.KeyByIP(r)
	if err != nil {
		return "", err
	}
	return "ip:" + key, nil
}

// secureMiddleware allows the inline scripts emitted by chart widgets and the
// ECharts CDN.
func secureMiddleware(production bool) *secure.Secure {
	return secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'self'; script-src 'self' 'unsafe-inline' https://go-echarts.github.io; style-src 'self' 'unsafe-inline'",
		SSLRedirect:           production,
		STSSeconds:            stsSeconds(production),
		SSLProxyHeaders:       map[string]string{"X-Forwarded-Proto": "https"},
		IsDevelopment:         !production,
	})
}

func stsSeconds(production bool) int64 {
	if production {
		return 31536000
	}
	return 0
}
