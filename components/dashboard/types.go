package dashboard

import (
	"context"
	"time"
)

// DateLayout is the calendar-day format used by campaign and chart dates.
const DateLayout = "2006-01-02"

// CampaignStatus is the lifecycle state of a campaign.
type CampaignStatus string

const (
	StatusActive    CampaignStatus = "active"
	StatusPaused    CampaignStatus = "paused"
	StatusCompleted CampaignStatus = "completed"
)

// StatusAll disables status filtering in the campaign table.
const StatusAll = "all"

// CampaignStatuses lists every known status in display order.
func CampaignStatuses() []CampaignStatus {
	return []CampaignStatus{StatusActive, StatusPaused, StatusCompleted}
}

// Campaign is one marketing campaign with its spend and performance metrics.
// Records are treated as immutable once generated.
type Campaign struct {
	ID          string         `json:"id" yaml:"id"`
	Name        string         `json:"name" yaml:"name"`
	Status      CampaignStatus `json:"status" yaml:"status"`
	Budget      float64        `json:"budget" yaml:"budget"`
	Spend       float64        `json:"spend" yaml:"spend"`
	Impressions int64          `json:"impressions" yaml:"impressions"`
	Clicks      int64          `json:"clicks" yaml:"clicks"`
	CTR         float64        `json:"ctr" yaml:"ctr"`
	CPC         float64        `json:"cpc" yaml:"cpc"`
	Conversions int64          `json:"conversions" yaml:"conversions"`
	ROAS        float64        `json:"roas" yaml:"roas"`
	Source      string         `json:"source" yaml:"source"`
	StartDate   string         `json:"startDate" yaml:"start_date"`
	EndDate     string         `json:"endDate" yaml:"end_date"`
}

// TimeSeriesPoint aggregates one day of dashboard metrics.
type TimeSeriesPoint struct {
	Date        string `json:"date" yaml:"date"`
	Revenue     int64  `json:"revenue" yaml:"revenue"`
	Users       int64  `json:"users" yaml:"users"`
	Conversions int64  `json:"conversions" yaml:"conversions"`
	Impressions int64  `json:"impressions" yaml:"impressions"`
}

// Label returns the short MM/dd axis label for the point.
func (p TimeSeriesPoint) Label() string {
	day, err := time.Parse(DateLayout, p.Date)
	if err != nil {
		return p.Date
	}
	return day.Format("01/02")
}

// TrafficSource is one slice of the traffic distribution chart.
type TrafficSource struct {
	Name  string  `json:"name" yaml:"name"`
	Value float64 `json:"value" yaml:"value"`
	Color string  `json:"color" yaml:"color"`
}

// AcquisitionSource is the number of users acquired through a channel.
type AcquisitionSource struct {
	Source string `json:"source" yaml:"source"`
	Users  int64  `json:"users" yaml:"users"`
	Color  string `json:"color" yaml:"color"`
}

// FunnelStage is one step of the conversion funnel.
type FunnelStage struct {
	Stage string  `json:"stage" yaml:"stage"`
	Value float64 `json:"value" yaml:"value"`
	Color string  `json:"color" yaml:"color"`
}

// DatasetSource provides the campaign list and the trailing time series.
type DatasetSource interface {
	FetchCampaigns(ctx context.Context) ([]Campaign, error)
	FetchChartData(ctx context.Context) ([]TimeSeriesPoint, error)
}

// ViewerContext captures the active user information needed to render dashboards.
type ViewerContext struct {
	UserID            string
	Roles             []string
	Locale            string
	PrefersDarkScheme bool
}

// StateListener is notified after every applied state transition.
type StateListener interface {
	StateChanged(ctx context.Context, change StateChange) error
}

// StateListenerFunc adapts a function into a StateListener.
type StateListenerFunc func(ctx context.Context, change StateChange) error

// StateChanged calls f(ctx, change).
func (f StateListenerFunc) StateChanged(ctx context.Context, change StateChange) error {
	return f(ctx, change)
}

// StateChange describes a transition that transports might care about.
type StateChange struct {
	Event   string   `json:"event"`
	Version uint64   `json:"version"`
	State   AppState `json:"-"`
	Toast   *Toast   `json:"toast,omitempty"`
}
