package analytics

import (
	"context"
	"slices"
	"sync"

	dashboard "github.com/goliatone/go-campaign-dashboard/components/dashboard"
)

// MockData seeds deterministic analytics responses for tests or local demos.
type MockData struct {
	Campaigns   []dashboard.Campaign
	Series      []dashboard.TimeSeriesPoint
	Traffic     []dashboard.TrafficSource
	Acquisition []dashboard.AcquisitionSource
	Funnel      []dashboard.FunnelStage
}

// DemoData fills MockData from the generator and the built-in breakdowns.
func DemoData(gen *dashboard.Generator) MockData {
	if gen == nil {
		gen = dashboard.NewGenerator()
	}
	return MockData{
		Campaigns:   gen.GenerateCampaigns(),
		Series:      gen.GenerateChartData(),
		Traffic:     dashboard.DefaultTrafficSources(),
		Acquisition: dashboard.DefaultAcquisitionSources(),
		Funnel:      dashboard.DefaultFunnelStages(),
	}
}

// MockClient implements Client using in-memory fixtures.
type MockClient struct {
	data MockData
	mu   sync.RWMutex
}

// NewMockClient builds a mock analytics client from the provided fixtures.
func NewMockClient(data MockData) *MockClient {
	return &MockClient{data: data}
}

// Replace swaps the fixtures returned by subsequent calls.
func (c *MockClient) Replace(data MockData) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = data
}

func (c *MockClient) FetchCampaigns(context.Context) ([]dashboard.Campaign, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.data.Campaigns), nil
}

// FetchTimeSeries returns at most the last days points of the fixture.
func (c *MockClient) FetchTimeSeries(_ context.Context, days int) ([]dashboard.TimeSeriesPoint, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	series := c.data.Series
	if days > 0 && days < len(series) {
		series = series[len(series)-days:]
	}
	return slices.Clone(series), nil
}

func (c *MockClient) FetchTraffic(context.Context) ([]dashboard.TrafficSource, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.data.Traffic), nil
}

func (c *MockClient) FetchAcquisition(context.Context) ([]dashboard.AcquisitionSource, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.data.Acquisition), nil
}

func (c *MockClient) FetchFunnel(context.Context) ([]dashboard.FunnelStage, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.data.Funnel), nil
}
