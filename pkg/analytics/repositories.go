package analytics

import (
	"context"

	dashboard "github.com/goliatone/go-campaign-dashboard/components/dashboard"
)

// NewDatasetSource adapts a campaign client into the dataset the refresh
// scheduler reloads. days <= 0 uses dashboard.ChartDays.
func NewDatasetSource(client CampaignClient, days int) dashboard.DatasetSource {
	if days <= 0 {
		days = dashboard.ChartDays
	}
	return &datasetSource{client: client, days: days}
}

type datasetSource struct {
	client CampaignClient
	days   int
}

func (s *datasetSource) FetchCampaigns(ctx context.Context) ([]dashboard.Campaign, error) {
	return s.client.FetchCampaigns(ctx)
}

func (s *datasetSource) FetchChartData(ctx context.Context) ([]dashboard.TimeSeriesPoint, error) {
	return s.client.FetchTimeSeries(ctx, s.days)
}

// NewSourceReportRepository adapts the sources client for the breakdown charts.
func NewSourceReportRepository(client SourcesClient) dashboard.SourceReportRepository {
	return &sourceReports{client: client}
}

type sourceReports struct {
	client SourcesClient
}

func (r *sourceReports) FetchTrafficSources(ctx context.Context) ([]dashboard.TrafficSource, error) {
	return r.client.FetchTraffic(ctx)
}

func (r *sourceReports) FetchAcquisitionSources(ctx context.Context) ([]dashboard.AcquisitionSource, error) {
	return r.client.FetchAcquisition(ctx)
}

func (r *sourceReports) FetchFunnelStages(ctx context.Context) ([]dashboard.FunnelStage, error) {
	return r.client.FetchFunnel(ctx)
}
