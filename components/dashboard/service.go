package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// DashboardTemplate is the go-template name used by RenderTab.
const DashboardTemplate = "dashboard"

// providerConcurrency bounds the widgets resolved in parallel for one tab.
const providerConcurrency = 4

var (
	errMissingState    = errors.New("dashboard: state source not configured")
	errMissingRenderer = errors.New("dashboard: renderer not configured")
	// ErrUnknownTab is returned for tabs the layout does not declare.
	ErrUnknownTab = errors.New("dashboard: unknown tab")
)

// StateSource exposes the state snapshot a tab is rendered from. *Controller
// satisfies it.
type StateSource interface {
	Snapshot() AppState
}

// Options configures the dashboard Service. Every collaborator is provided via
// interface so applications can swap implementations.
type Options struct {
	State           StateSource
	Providers       ProviderRegistry
	Layout          *Layout
	Renderer        Renderer
	ConfigValidator ConfigValidator
	Telemetry       Telemetry
	Logger          *slog.Logger
}

// Service resolves tab layouts into widget data and renders them.
type Service struct {
	opts   Options
	layout Layout
}

// NewService builds a Service instance with safe defaults. The embedded layout
// is used when opts.Layout is nil.
func NewService(opts Options) (*Service, error) {
	if opts.State == nil {
		return nil, errMissingState
	}
	if opts.Providers == nil {
		opts.Providers = NewRegistry()
	}
	if opts.ConfigValidator == nil {
		opts.ConfigValidator = NewJSONSchemaValidator()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)

	var layout Layout
	if opts.Layout != nil {
		layout = *opts.Layout
	} else {
		var err error
		if layout, err = DefaultLayout(); err != nil {
			return nil, err
		}
	}
	return &Service{opts: opts, layout: layout}, nil
}

// Layout returns the tab layout the service renders.
func (s *Service) Layout() Layout {
	return s.layout
}

// NavItem is one entry of the tab navigation.
type NavItem struct {
	Tab    Tab    `json:"tab"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

// TabView is everything the dashboard template needs for one tab.
type TabView struct {
	Tab              Tab              `json:"tab"`
	Title            string           `json:"title"`
	Subtitle         string           `json:"subtitle,omitempty"`
	Widgets          []WidgetInstance `json:"widgets"`
	Navigation       []NavItem        `json:"navigation"`
	Theme            Theme            `json:"theme"`
	ChartTheme       string           `json:"chartTheme"`
	Loading          bool             `json:"loading"`
	SidebarCollapsed bool             `json:"sidebarCollapsed"`
	Notifications    bool             `json:"notifications"`
	Toasts           []Toast          `json:"toasts"`
	Profile          Profile          `json:"profile"`
	Version          uint64           `json:"version"`
}

// ConfigureTab resolves the widgets of tab against the current state. An
// empty tab means the state's active tab. While the state is loading,
// providers are not called and each widget only reports loading.
func (s *Service) ConfigureTab(ctx context.Context, viewer ViewerContext, tab Tab) (TabView, error) {
	state := s.opts.State.Snapshot()
	if tab == "" {
		tab = state.ActiveTab
	}
	resolved, ok := s.layout.Tab(tab, viewer.Locale)
	if !ok {
		return TabView{}, fmt.Errorf("%w %q", ErrUnknownTab, tab)
	}

	widgets := resolved.Widgets
	if state.Loading {
		for i := range widgets {
			widgets[i].Data = WidgetData{"loading": true}
		}
	} else if err := s.attachProviderData(ctx, viewer, state, widgets); err != nil {
		return TabView{}, err
	}

	view := TabView{
		Tab:              tab,
		Title:            resolved.Title,
		Subtitle:         resolved.Subtitle,
		Widgets:          widgets,
		Navigation:       s.navigation(tab),
		Theme:            state.Theme,
		ChartTheme:       ChartThemeFor(state.Theme),
		Loading:          state.Loading,
		SidebarCollapsed: state.SidebarCollapsed,
		Notifications:    state.Notifications,
		Toasts:           state.Toasts,
		Profile:          state.Profile,
		Version:          state.Version,
	}
	s.recordTelemetry(ctx, "dashboard.tab.resolve", map[string]any{
		"viewer":  viewer.UserID,
		"tab":     string(tab),
		"widgets": len(widgets),
		"loading": state.Loading,
	})
	return view, nil
}

// RenderTab renders the resolved tab through the configured renderer.
func (s *Service) RenderTab(ctx context.Context, viewer ViewerContext, tab Tab, out io.Writer) error {
	if s.opts.Renderer == nil {
		return errMissingRenderer
	}
	view, err := s.ConfigureTab(ctx, viewer, tab)
	if err != nil {
		return err
	}
	if _, err := s.opts.Renderer.Render(DashboardTemplate, view.TemplateData(), out); err != nil {
		return fmt.Errorf("dashboard: render tab %s: %w", view.Tab, err)
	}
	return nil
}

// attachProviderData fills Data or Error on every widget. Widget failures are
// reported on the widget, only context cancellation fails the tab.
func (s *Service) attachProviderData(ctx context.Context, viewer ViewerContext, state AppState, widgets []WidgetInstance) error {
	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(providerConcurrency)
	for i := range widgets {
		group.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := s.fetchWidget(gctx, viewer, state, widgets[i])
			if err != nil {
				widgets[i].Error = err.Error()
				s.opts.Logger.WarnContext(gctx, "dashboard widget failed",
					slog.String("widget", widgets[i].ID),
					slog.String("definition", widgets[i].DefinitionID),
					slog.Any("error", err),
				)
				s.recordTelemetry(gctx, "dashboard.widget.provider_error", map[string]any{
					"definition_id": widgets[i].DefinitionID,
					"widget_id":     widgets[i].ID,
					"error":         err.Error(),
				})
				return nil
			}
			widgets[i].Data = data
			return nil
		})
	}
	return group.Wait()
}

func (s *Service) fetchWidget(ctx context.Context, viewer ViewerContext, state AppState, inst WidgetInstance) (WidgetData, error) {
	def, ok := s.opts.Providers.Definition(inst.DefinitionID)
	if !ok {
		return nil, fmt.Errorf("dashboard: widget definition %s not found", inst.DefinitionID)
	}
	if err := s.opts.ConfigValidator.Validate(def, inst.Configuration); err != nil {
		return nil, err
	}
	provider, ok := s.opts.Providers.Provider(inst.DefinitionID)
	if !ok || provider == nil {
		return nil, fmt.Errorf("dashboard: no provider registered for %s", inst.DefinitionID)
	}
	return provider.Fetch(ctx, WidgetContext{
		Instance: inst,
		Viewer:   viewer,
		State:    state,
	})
}

func (s *Service) navigation(active Tab) []NavItem {
	tabs := s.layout.Tabs()
	items := make([]NavItem, 0, len(tabs))
	for _, tab := range tabs {
		items = append(items, NavItem{Tab: tab, Label: titleize(string(tab)), Active: tab == active})
	}
	return items
}

func (s *Service) recordTelemetry(ctx context.Context, event string, payload map[string]any) {
	s.opts.Telemetry.Record(ctx, event, payload)
}

// TemplateData flattens the view into the map handed to the template.
func (v TabView) TemplateData() map[string]any {
	widgets := make([]map[string]any, 0, len(v.Widgets))
	for _, w := range v.Widgets {
		widgets = append(widgets, map[string]any{
			"id":         w.ID,
			"definition": w.DefinitionID,
			"title":      w.Title,
			"span":       w.Span,
			"config":     w.Configuration,
			"data":       w.Data,
			"error":      w.Error,
		})
	}
	return map[string]any{
		"tab":               string(v.Tab),
		"title":             v.Title,
		"subtitle":          v.Subtitle,
		"widgets":           widgets,
		"navigation":        v.Navigation,
		"theme":             string(v.Theme),
		"dark":              v.Theme.IsDark(),
		"chart_theme":       v.ChartTheme,
		"loading":           v.Loading,
		"sidebar_collapsed": v.SidebarCollapsed,
		"notifications":     v.Notifications,
		"toasts":            v.Toasts,
		"profile":           v.Profile,
		"version":           v.Version,
	}
}
