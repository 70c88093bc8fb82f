package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-campaign-dashboard/components/dashboard"
)

type tabService interface {
	ConfigureTab(ctx context.Context, viewer dashboard.ViewerContext, tab dashboard.Tab) (dashboard.TabView, error)
}

// TabInput selects the tab to resolve. An empty Tab means the active one.
type TabInput struct {
	Viewer dashboard.ViewerContext
	Tab    dashboard.Tab
}

// TabQuery resolves a tab and its widget data.
type TabQuery struct {
	service tabService
}

// NewTabQuery builds the query.
func NewTabQuery(service tabService) *TabQuery {
	return &TabQuery{service: service}
}

var _ gocommand.Querier[TabInput, dashboard.TabView] = (*TabQuery)(nil)

// Query resolves the tab for the viewer.
func (q *TabQuery) Query(ctx context.Context, input TabInput) (dashboard.TabView, error) {
	return q.service.ConfigureTab(ctx, input.Viewer, input.Tab)
}
