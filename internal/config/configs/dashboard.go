package configs

import "time"

// Dashboard configures data loading and the refresh timers.
type Dashboard struct {
	LoadDelay        time.Duration `env:"LOAD_DELAY" envDefault:"2s" validate:"gte=0"`
	RefreshInterval  time.Duration `env:"REFRESH_INTERVAL" envDefault:"30s" validate:"gt=0"`
	RefreshCampaigns bool          `env:"REFRESH_CAMPAIGNS" envDefault:"false"`
	// Seed pins the mock data generator; zero keeps it unseeded.
	Seed uint64 `env:"SEED" envDefault:"0"`
	// LayoutPath overrides the embedded tab layout.
	LayoutPath      string        `env:"LAYOUT_PATH"`
	ChartCacheTTL   time.Duration `env:"CHART_CACHE_TTL" envDefault:"30s" validate:"gt=0"`
	ChartAssetsHost string        `env:"CHART_ASSETS_HOST" validate:"omitempty,url"`
	// AnalyticsURL switches the data source from the generator to a remote
	// analytics API.
	AnalyticsURL    string `env:"ANALYTICS_URL" validate:"omitempty,url"`
	AnalyticsAPIKey string `env:"ANALYTICS_API_KEY"`
	PrefersDark     bool   `env:"PREFERS_DARK" envDefault:"false"`
	Notifications   bool   `env:"LOG_NOTIFICATIONS" envDefault:"true"`
	// AuditLog records state transitions as go-users activity records.
	AuditLog bool `env:"AUDIT_LOG" envDefault:"false"`
}
