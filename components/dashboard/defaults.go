package dashboard

// Widget codes shipped with the campaign dashboard.
const (
	WidgetMetricCards      = "campaign.widget.metric_cards"
	WidgetTrendChart       = "campaign.widget.trend_chart"
	WidgetAcquisitionChart = "campaign.widget.acquisition_chart"
	WidgetTrafficChart     = "campaign.widget.traffic_chart"
	WidgetFunnelChart      = "campaign.widget.funnel_chart"
	WidgetCampaignTable    = "campaign.widget.campaign_table"
	WidgetChannelBreakdown = "campaign.widget.channel_breakdown"
	WidgetSettings         = "campaign.widget.settings"
)

// Settings panel sections.
const (
	SettingsProfile     = "profile"
	SettingsPreferences = "preferences"
	SettingsExport      = "export"
	SettingsSecurity    = "security"
)

// SettingsSections lists the settings panels in display order.
func SettingsSections() []string {
	return []string{SettingsProfile, SettingsPreferences, SettingsExport, SettingsSecurity}
}

var hexColor = map[string]any{"type": "string", "pattern": "^#[0-9A-Fa-f]{6}$"}

var titleProperty = map[string]any{"type": "string", "minLength": 1}

var defaultWidgetDefinitions = []WidgetDefinition{
	{
		Code:        WidgetMetricCards,
		Name:        "Metric Cards",
		Description: "Revenue, users, conversions and growth compared with the previous period.",
		Category:    "stats",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"window_days": map[string]any{"type": "integer", "minimum": 1, "maximum": 15, "default": 15},
			},
			"additionalProperties": false,
		},
	},
	{
		Code:        WidgetTrendChart,
		Name:        "Trend Chart",
		Description: "Daily trend of one time-series metric.",
		Category:    "charts",
		Schema: map[string]any{
			"type":     "object",
			"required": []string{"metric"},
			"properties": map[string]any{
				"title":  titleProperty,
				"metric": map[string]any{"type": "string", "enum": TrendMetrics()},
				"chart":  map[string]any{"type": "string", "enum": []string{"line", "area", "bar"}, "default": "line"},
				"color":  hexColor,
			},
			"additionalProperties": false,
		},
	},
	{
		Code:        WidgetAcquisitionChart,
		Name:        "User Acquisition",
		Description: "Users acquired per channel.",
		Category:    "charts",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"title": titleProperty,
			},
			"additionalProperties": false,
		},
	},
	{
		Code:        WidgetTrafficChart,
		Name:        "Traffic Sources",
		Description: "Share of traffic per source.",
		Category:    "charts",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"title": titleProperty,
				"donut": map[string]any{"type": "boolean", "default": true},
			},
			"additionalProperties": false,
		},
	},
	{
		Code:        WidgetFunnelChart,
		Name:        "Conversion Funnel",
		Description: "Visitors to customers drop-off.",
		Category:    "analytics",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"title": titleProperty,
			},
			"additionalProperties": false,
		},
	},
	{
		Code:        WidgetCampaignTable,
		Name:        "Campaign Performance",
		Description: "Searchable, sortable and paginated campaign table.",
		Category:    "tables",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"title":      titleProperty,
				"exportable": map[string]any{"type": "boolean", "default": true},
			},
			"additionalProperties": false,
		},
	},
	{
		Code:        WidgetChannelBreakdown,
		Name:        "Channel Breakdown",
		Description: "Campaign totals grouped by source channel.",
		Category:    "analytics",
		Schema: map[string]any{
			"type":     "object",
			"required": []string{"metric"},
			"properties": map[string]any{
				"title":  titleProperty,
				"metric": map[string]any{"type": "string", "enum": BreakdownMetrics()},
				"chart":  map[string]any{"type": "string", "enum": []string{"pie", "bar"}, "default": "pie"},
			},
			"additionalProperties": false,
		},
	},
}

// DefaultWidgetDefinitions returns the built-in widget definitions.
func DefaultWidgetDefinitions() []WidgetDefinition {
	return append([]WidgetDefinition(nil), defaultWidgetDefinitions...)
}
