package dashboard

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Event is a discrete state transition request.
type Event interface {
	EventName() string
}

type (
	SetActiveTab        struct{ Tab Tab }
	ToggleSidebar       struct{}
	ToggleTheme         struct{}
	SetTheme            struct{ Theme Theme }
	LoadingFinished     struct{}
	ReplaceCampaigns    struct{ Campaigns []Campaign }
	ToggleAutoRefresh   struct{}
	ToggleNotifications struct{}
	UpdateProfile       struct{ Profile Profile }
	ChangePassword      struct{}
	PushToast           struct{ Toast Toast }
	DismissToast        struct{ ID string }
	SetSearchTerm       struct{ Term string }
	SetStatusFilter     struct{ Filter string }
	ToggleSortField     struct{ Field string }
	SetPage             struct{ Page int }
	ExportStarted       struct{}
)

// ReplaceChartData swaps the time series wholesale. Announce queues the
// real-time update toast.
type ReplaceChartData struct {
	Points   []TimeSeriesPoint
	Announce bool
}

func (SetActiveTab) EventName() string        { return "tab.set" }
func (ToggleSidebar) EventName() string       { return "sidebar.toggle" }
func (ToggleTheme) EventName() string         { return "theme.toggle" }
func (SetTheme) EventName() string            { return "theme.set" }
func (LoadingFinished) EventName() string     { return "loading.finished" }
func (ReplaceCampaigns) EventName() string    { return "campaigns.replace" }
func (ReplaceChartData) EventName() string    { return "chart.replace" }
func (ToggleAutoRefresh) EventName() string   { return "auto_refresh.toggle" }
func (ToggleNotifications) EventName() string { return "notifications.toggle" }
func (UpdateProfile) EventName() string       { return "profile.update" }
func (ChangePassword) EventName() string      { return "password.change" }
func (PushToast) EventName() string           { return "toast.push" }
func (DismissToast) EventName() string        { return "toast.dismiss" }
func (SetSearchTerm) EventName() string       { return "table.search" }
func (SetStatusFilter) EventName() string     { return "table.status" }
func (ToggleSortField) EventName() string     { return "table.sort" }
func (SetPage) EventName() string             { return "table.page" }
func (ExportStarted) EventName() string       { return "export.started" }

// EventEnvelope is the wire form of an externally dispatched event.
type EventEnvelope struct {
	Name    string          `json:"name"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ErrInvalidEvent matches every error returned by DecodeEvent.
var ErrInvalidEvent = errors.New("dashboard: invalid event")

type invalidEventError struct{ err error }

func (e invalidEventError) Error() string   { return e.err.Error() }
func (e invalidEventError) Unwrap() []error { return []error{ErrInvalidEvent, e.err} }

// DecodeEvent converts an envelope into an Event. Dataset replacement events
// are internal and cannot be decoded.
func DecodeEvent(env EventEnvelope) (Event, error) {
	event, err := decodeEvent(env)
	if err != nil {
		return nil, invalidEventError{err: err}
	}
	return event, nil
}

func decodeEvent(env EventEnvelope) (Event, error) {
	name := strings.ToLower(strings.TrimSpace(env.Name))
	var payload struct {
		Tab     string  `json:"tab"`
		Theme   string  `json:"theme"`
		Profile Profile `json:"profile"`
		Toast   Toast   `json:"toast"`
		ID      string  `json:"id"`
		Term    string  `json:"term"`
		Filter  string  `json:"filter"`
		Field   string  `json:"field"`
		Page    int     `json:"page"`
	}
	if len(env.Payload) > 0 {
		if err := json.Unmarshal(env.Payload, &payload); err != nil {
			return nil, fmt.Errorf("dashboard: decode %s payload: %w", name, err)
		}
	}

	switch name {
	case "tab.set":
		tab := Tab(payload.Tab)
		if !tab.Valid() {
			return nil, fmt.Errorf("dashboard: unknown tab %q", payload.Tab)
		}
		return SetActiveTab{Tab: tab}, nil
	case "sidebar.toggle":
		return ToggleSidebar{}, nil
	case "theme.toggle":
		return ToggleTheme{}, nil
	case "theme.set":
		theme, err := ParseTheme(payload.Theme)
		if err != nil {
			return nil, err
		}
		return SetTheme{Theme: theme}, nil
	case "loading.finished":
		return LoadingFinished{}, nil
	case "auto_refresh.toggle":
		return ToggleAutoRefresh{}, nil
	case "notifications.toggle":
		return ToggleNotifications{}, nil
	case "profile.update":
		if payload.Profile.Role != "" && !slices.Contains(ProfileRoles(), payload.Profile.Role) {
			return nil, fmt.Errorf("dashboard: unknown profile role %q", payload.Profile.Role)
		}
		return UpdateProfile{Profile: payload.Profile}, nil
	case "password.change":
		return ChangePassword{}, nil
	case "toast.push":
		if payload.Toast.Message == "" {
			return nil, fmt.Errorf("dashboard: toast message is required")
		}
		return PushToast{Toast: payload.Toast}, nil
	case "toast.dismiss":
		return DismissToast{ID: payload.ID}, nil
	case "table.search":
		return SetSearchTerm{Term: payload.Term}, nil
	case "table.status":
		if !validStatusFilter(payload.Filter) {
			return nil, fmt.Errorf("dashboard: unknown status filter %q", payload.Filter)
		}
		return SetStatusFilter{Filter: payload.Filter}, nil
	case "table.sort":
		field, ok := NormalizeSortField(payload.Field)
		if !ok {
			return nil, fmt.Errorf("dashboard: unknown sort field %q", payload.Field)
		}
		return ToggleSortField{Field: field}, nil
	case "table.page":
		if payload.Page < 1 {
			return nil, fmt.Errorf("dashboard: page must be >= 1, got %d", payload.Page)
		}
		return SetPage{Page: payload.Page}, nil
	case "export.started":
		return ExportStarted{}, nil
	default:
		return nil, fmt.Errorf("dashboard: unknown event %q", env.Name)
	}
}

func validStatusFilter(filter string) bool {
	if filter == "" || filter == StatusAll {
		return true
	}
	for _, s := range CampaignStatuses() {
		if string(s) == filter {
			return true
		}
	}
	return false
}
