package dashboard

import (
	"context"
	"fmt"
)

// ProviderSetOptions configures the built-in widget providers.
type ProviderSetOptions struct {
	Reports      SourceReportRepository
	ChartOptions []EChartsProviderOption
}

// DefaultProviders maps every built-in widget code to its provider.
func DefaultProviders(opts ProviderSetOptions) map[string]Provider {
	reports := normalizeReports(opts.Reports)
	chart := func(chartType string, source ChartSource) Provider {
		return NewEChartsProvider(chartType, source, opts.ChartOptions...)
	}
	return map[string]Provider{
		WidgetMetricCards:      MetricCardsProvider(),
		WidgetTrendChart:       chart(ChartLine, TrendChartSource()),
		WidgetAcquisitionChart: chart(ChartBar, AcquisitionChartSource(reports)),
		WidgetTrafficChart:     newTrafficProvider(reports, opts.ChartOptions),
		WidgetFunnelChart:      chart(ChartFunnel, FunnelChartSource(reports)),
		WidgetCampaignTable:    CampaignTableProvider(),
		WidgetChannelBreakdown: chart(ChartPie, ChannelBreakdownSource()),
		WidgetSettings:         SettingsProvider(),
	}
}

// newTrafficProvider draws a donut unless the widget turns it off.
func newTrafficProvider(reports SourceReportRepository, chartOpts []EChartsProviderOption) Provider {
	donut := NewEChartsProvider(ChartDonut, TrafficChartSource(reports), chartOpts...)
	pie := NewEChartsProvider(ChartPie, TrafficChartSource(reports), chartOpts...)
	return ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
		if boolValue(meta.Instance.Configuration["donut"], true) {
			return donut.Fetch(ctx, meta)
		}
		return pie.Fetch(ctx, meta)
	})
}

// CampaignTableProvider computes the visible table page from the state's
// campaigns and table controls.
func CampaignTableProvider() Provider {
	return ProviderFunc(func(_ context.Context, meta WidgetContext) (WidgetData, error) {
		page := meta.State.Page()
		return WidgetData{
			"title":         stringValue(meta.Instance.Title, "Campaign Performance"),
			"page":          page,
			"columns":       tableColumns,
			"statuses":      CampaignStatuses(),
			"exportable":    boolValue(meta.Instance.Configuration["exportable"], true),
			"export_name":   ExportFileName,
			"total_records": len(meta.State.Campaigns),
		}, nil
	})
}

// TableColumn describes a campaign table header.
type TableColumn struct {
	Field string `json:"field"`
	Label string `json:"label"`
}

var tableColumns = []TableColumn{
	{Field: "name", Label: "Campaign"},
	{Field: "status", Label: "Status"},
	{Field: "budget", Label: "Budget"},
	{Field: "spend", Label: "Spend"},
	{Field: "impressions", Label: "Impressions"},
	{Field: "clicks", Label: "Clicks"},
	{Field: "ctr", Label: "CTR"},
	{Field: "conversions", Label: "Conversions"},
	{Field: "roas", Label: "ROAS"},
}

var settingsTitles = map[string]string{
	SettingsProfile:     "Profile Settings",
	SettingsPreferences: "Dashboard Preferences",
	SettingsExport:      "Data Export",
	SettingsSecurity:    "Security",
}

// SettingsProvider exposes the state behind one settings panel.
func SettingsProvider() Provider {
	return ProviderFunc(func(_ context.Context, meta WidgetContext) (WidgetData, error) {
		section := stringValue(meta.Instance.Configuration["section"], "")
		title, ok := settingsTitles[section]
		if !ok {
			return nil, fmt.Errorf("dashboard: unknown settings section %q", section)
		}
		data := WidgetData{
			"section": section,
			"title":   stringValue(meta.Instance.Title, title),
		}
		state := meta.State
		switch section {
		case SettingsProfile:
			data["profile"] = state.Profile
			data["roles"] = ProfileRoles()
		case SettingsPreferences:
			data["dark_mode"] = state.Theme.IsDark()
			data["auto_refresh"] = state.AutoRefresh
			data["notifications"] = state.Notifications
		case SettingsExport:
			data["export_name"] = ExportFileName
			data["total_records"] = len(state.Campaigns)
		case SettingsSecurity:
			data["event"] = ChangePassword{}.EventName()
		}
		return data, nil
	})
}
