package dashboard

import (
	"context"

	"github.com/goliatone/go-campaign-dashboard/pkg/activity"
)

// ActivityContext captures actor/user/tenant identifiers for activity events.
type ActivityContext struct {
	ActorID  string
	UserID   string
	TenantID string
}

type activityContextKey struct{}

// ContextWithActivity stores activity context on the provided context.
func ContextWithActivity(ctx context.Context, meta ActivityContext) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, activityContextKey{}, meta)
}

// activityContextFrom extracts the activity context from the context, if present.
func activityContextFrom(ctx context.Context) ActivityContext {
	if ctx == nil {
		return ActivityContext{}
	}
	if meta, ok := ctx.Value(activityContextKey{}).(ActivityContext); ok {
		return meta
	}
	return ActivityContext{}
}

// activityEventFor describes an applied state transition for audit sinks.
func activityEventFor(ctx context.Context, event Event, next AppState) activity.Event {
	meta := activityContextFrom(ctx)
	evt := activity.Event{
		Verb:           event.EventName(),
		ActorID:        meta.ActorID,
		UserID:         meta.UserID,
		TenantID:       meta.TenantID,
		ObjectType:     "dashboard_state",
		ObjectID:       string(next.ActiveTab),
		DefinitionCode: "dashboard:" + event.EventName(),
		Metadata: map[string]any{
			"version": next.Version,
		},
	}
	switch e := event.(type) {
	case SetTheme, ToggleTheme:
		evt.ObjectType = "preference"
		evt.ObjectID = ThemePreferenceKey
		evt.Metadata["theme"] = string(next.Theme)
	case UpdateProfile:
		evt.ObjectType = "profile"
		evt.ObjectID = e.Profile.Email
	case ChangePassword:
		evt.ObjectType = "profile"
		evt.ObjectID = next.Profile.Email
	case ExportStarted:
		evt.ObjectType = "campaign_export"
		evt.ObjectID = ExportFileName
		evt.Metadata["rows"] = len(next.Campaigns)
	case ToggleSortField, SetSearchTerm, SetStatusFilter, SetPage:
		evt.ObjectType = "campaign_table"
		evt.ObjectID = string(TabCampaigns)
		evt.Metadata["controls"] = next.Table
	}
	return evt
}

// WithViewerActivity attributes actions on ctx to the viewer. An activity
// context already present on ctx wins.
func WithViewerActivity(ctx context.Context, viewer ViewerContext) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, ok := ctx.Value(activityContextKey{}).(ActivityContext); ok || viewer.UserID == "" {
		return ctx
	}
	return ContextWithActivity(ctx, ActivityContext{ActorID: viewer.UserID, UserID: viewer.UserID})
}
