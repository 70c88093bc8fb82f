package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/goliatone/go-campaign-dashboard/pkg/activity"
)

var errNilEvent = errors.New("dashboard: event is required")

// ErrSideEffect marks failures of the work that runs after a transition is
// committed: theme persistence, activity and listeners. The new state stands.
var ErrSideEffect = errors.New("dashboard: side effect failed")

// Committed drops side effect failures, which the controller already logged,
// and returns any other error unchanged.
func Committed(err error) error {
	if errors.Is(err, ErrSideEffect) {
		return nil
	}
	return err
}

// ControllerOptions configures the state controller. Every collaborator is
// optional.
type ControllerOptions struct {
	Initial        AppState
	ThemeStore     ThemeStore
	ThemeKey       string
	Telemetry      Telemetry
	ActivityHooks  activity.Hooks
	ActivityConfig activity.Config
	Listeners      []StateListener
	Logger         *slog.Logger
}

// Controller owns the application state. All transitions go through
// Dispatch, which serialises them and fans the result out to listeners.
type Controller struct {
	dispatchMu sync.Mutex

	mu        sync.RWMutex
	state     AppState
	listeners []StateListener

	themes    ThemeStore
	themeKey  string
	telemetry Telemetry
	activity  *activity.Emitter
	logger    *slog.Logger
}

// NewController builds a controller around opts.Initial.
func NewController(opts ControllerOptions) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	key := opts.ThemeKey
	if key == "" {
		key = ThemePreferenceKey
	}
	state := opts.Initial.Clone()
	if state.ActiveTab == "" {
		state.ActiveTab = TabDashboard
	}
	if state.Table == (TableControls{}) {
		state.Table = DefaultTableControls()
	}
	state.Theme = state.Theme.Normalize()
	if state.Toasts == nil {
		state.Toasts = []Toast{}
	}
	return &Controller{
		state:     state,
		listeners: append([]StateListener(nil), opts.Listeners...),
		themes:    opts.ThemeStore,
		themeKey:  key,
		telemetry: normalizeTelemetry(opts.Telemetry),
		activity:  activity.NewEmitter(opts.ActivityHooks, opts.ActivityConfig),
		logger:    logger,
	}
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() AppState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.Clone()
}

// AddListener registers l for every later state change. Listeners must not
// call Dispatch synchronously.
func (c *Controller) AddListener(l StateListener) {
	if l == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, l)
}

// Dispatch applies event and returns the resulting state. Side effects run
// after the state is committed: theme persistence, telemetry, activity and
// listeners. Their failures are logged and returned wrapped in ErrSideEffect;
// they never roll the state back.
func (c *Controller) Dispatch(ctx context.Context, event Event) (AppState, error) {
	if event == nil {
		return c.Snapshot(), errNilEvent
	}
	c.dispatchMu.Lock()
	defer c.dispatchMu.Unlock()

	c.mu.Lock()
	prev := c.state
	next := Reduce(prev, event)
	if next.Version == prev.Version {
		c.mu.Unlock()
		return prev.Clone(), nil
	}
	c.state = next
	listeners := append([]StateListener(nil), c.listeners...)
	c.mu.Unlock()

	var errs []error
	if isThemeEvent(event) && c.themes != nil {
		if err := c.themes.SaveTheme(ctx, c.themeKey, next.Theme); err != nil {
			c.logger.Warn("dashboard: persist theme", "theme", next.Theme, "error", err)
			errs = append(errs, err)
		}
	}

	c.telemetry.Record(ctx, "dashboard.state."+event.EventName(), map[string]any{
		"version":    next.Version,
		"active_tab": string(next.ActiveTab),
	})

	if c.activity.Enabled() {
		if err := c.activity.Emit(ctx, activityEventFor(ctx, event, next)); err != nil {
			c.logger.Warn("dashboard: emit activity", "event", event.EventName(), "error", err)
			errs = append(errs, err)
		}
	}

	change := StateChange{
		Event:   event.EventName(),
		Version: next.Version,
		State:   next.Clone(),
	}
	if toast, ok := LatestToast(prev, next); ok {
		change.Toast = &toast
	}
	for _, l := range listeners {
		if err := l.StateChanged(ctx, change); err != nil {
			c.logger.Warn("dashboard: state listener", "event", change.Event, "error", err)
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return next.Clone(), fmt.Errorf("%w: %s: %w", ErrSideEffect, event.EventName(), errors.Join(errs...))
	}
	return next.Clone(), nil
}

// LoadTheme resolves the persisted theme, applies it and writes the resolved
// value back to the store. Call it once at startup. A failed write keeps the
// applied theme and is returned wrapped in ErrSideEffect.
func (c *Controller) LoadTheme(ctx context.Context, systemPrefersDark bool) (Theme, error) {
	var (
		stored Theme
		ok     bool
	)
	if c.themes != nil {
		var err error
		stored, ok, err = c.themes.LoadTheme(ctx, c.themeKey)
		if err != nil {
			return c.Snapshot().Theme, err
		}
	}
	theme := ResolveTheme(stored, ok, systemPrefersDark)
	c.mu.Lock()
	c.state.Theme = theme
	c.mu.Unlock()

	if c.themes != nil {
		if err := c.themes.SaveTheme(ctx, c.themeKey, theme); err != nil {
			c.logger.Warn("dashboard: persist resolved theme", "theme", theme, "error", err)
			return theme, fmt.Errorf("%w: theme.load: %w", ErrSideEffect, err)
		}
	}
	return theme, nil
}

func isThemeEvent(event Event) bool {
	switch event.(type) {
	case ToggleTheme, SetTheme:
		return true
	}
	return false
}
