package analytics

import (
	"context"

	dashboard "github.com/goliatone/go-campaign-dashboard/components/dashboard"
)

// CampaignClient fetches campaign performance rows and the daily trend from
// an upstream analytics service.
type CampaignClient interface {
	FetchCampaigns(ctx context.Context) ([]dashboard.Campaign, error)
	FetchTimeSeries(ctx context.Context, days int) ([]dashboard.TimeSeriesPoint, error)
}

// SourcesClient fetches the channel breakdowns.
type SourcesClient interface {
	FetchTraffic(ctx context.Context) ([]dashboard.TrafficSource, error)
	FetchAcquisition(ctx context.Context) ([]dashboard.AcquisitionSource, error)
	FetchFunnel(ctx context.Context) ([]dashboard.FunnelStage, error)
}

// Client is a convenience union for services that implement all analytics calls.
type Client interface {
	CampaignClient
	SourcesClient
}
