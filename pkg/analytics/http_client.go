package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	dashboard "github.com/goliatone/go-campaign-dashboard/components/dashboard"
)

// HTTPConfig configures the HTTP analytics client.
type HTTPConfig struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// HTTPClient talks to a campaign analytics API via REST endpoints.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient builds a client capable of hitting live analytics APIs.
func NewHTTPClient(cfg HTTPConfig) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("analytics: base url is required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("analytics: parse base url: %w", err)
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		client:  httpClient,
	}, nil
}

// FetchCampaigns implements CampaignClient via GET /campaigns.
func (c *HTTPClient) FetchCampaigns(ctx context.Context) ([]dashboard.Campaign, error) {
	var resp campaignsResponse
	if err := c.get(ctx, "/campaigns", nil, &resp); err != nil {
		return nil, err
	}
	return resp.toCampaigns()
}

// FetchTimeSeries implements CampaignClient via GET /timeseries?days=N.
func (c *HTTPClient) FetchTimeSeries(ctx context.Context, days int) ([]dashboard.TimeSeriesPoint, error) {
	query := url.Values{}
	if days > 0 {
		query.Set("days", strconv.Itoa(days))
	}
	var resp timeSeriesResponse
	if err := c.get(ctx, "/timeseries", query, &resp); err != nil {
		return nil, err
	}
	return resp.toPoints()
}

func (c *HTTPClient) FetchTraffic(ctx context.Context) ([]dashboard.TrafficSource, error) {
	var resp struct {
		Sources []dashboard.TrafficSource `json:"sources"`
	}
	if err := c.get(ctx, "/sources/traffic", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Sources, nil
}

func (c *HTTPClient) FetchAcquisition(ctx context.Context) ([]dashboard.AcquisitionSource, error) {
	var resp struct {
		Sources []dashboard.AcquisitionSource `json:"sources"`
	}
	if err := c.get(ctx, "/sources/acquisition", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Sources, nil
}

func (c *HTTPClient) FetchFunnel(ctx context.Context) ([]dashboard.FunnelStage, error) {
	var resp struct {
		Stages []dashboard.FunnelStage `json:"stages"`
	}
	if err := c.get(ctx, "/funnel", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Stages, nil
}

func (c *HTTPClient) get(ctx context.Context, path string, query url.Values, target any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("analytics: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("analytics: http request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		return fmt.Errorf("analytics: remote error %d: %s", resp.StatusCode, strings.TrimSpace(buf.String()))
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("analytics: decode response: %w", err)
	}
	return nil
}

type campaignRow struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Status      string  `json:"status"`
	Budget      float64 `json:"budget"`
	Spend       float64 `json:"spend"`
	Impressions int64   `json:"impressions"`
	Clicks      int64   `json:"clicks"`
	Conversions int64   `json:"conversions"`
	Source      string  `json:"source"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
}

type campaignsResponse struct {
	Campaigns []campaignRow `json:"campaigns"`
}

// toCampaigns derives ctr, cpc and roas the same way the generator does so
// remote rows and generated rows are comparable.
func (r campaignsResponse) toCampaigns() ([]dashboard.Campaign, error) {
	out := make([]dashboard.Campaign, len(r.Campaigns))
	for i, row := range r.Campaigns {
		status := dashboard.CampaignStatus(strings.ToLower(row.Status))
		if !slices.Contains(dashboard.CampaignStatuses(), status) {
			return nil, fmt.Errorf("analytics: campaign %s has unknown status %q", row.ID, row.Status)
		}
		out[i] = dashboard.Campaign{
			ID:          row.ID,
			Name:        row.Name,
			Status:      status,
			Budget:      row.Budget,
			Spend:       row.Spend,
			Impressions: row.Impressions,
			Clicks:      row.Clicks,
			CTR:         round2(ratio(float64(row.Clicks), float64(row.Impressions)) * 100),
			CPC:         round2(ratio(row.Spend, float64(row.Clicks))),
			Conversions: row.Conversions,
			ROAS:        round2(ratio(float64(row.Conversions)*dashboard.RevenuePerConversion, row.Spend)),
			Source:      row.Source,
			StartDate:   row.StartDate,
			EndDate:     row.EndDate,
		}
	}
	return out, nil
}

type timeSeriesResponse struct {
	Points []dashboard.TimeSeriesPoint `json:"points"`
}

func (r timeSeriesResponse) toPoints() ([]dashboard.TimeSeriesPoint, error) {
	for _, p := range r.Points {
		if _, err := time.Parse(dashboard.DateLayout, p.Date); err != nil {
			return nil, fmt.Errorf("analytics: parse series day %q: %w", p.Date, err)
		}
	}
	return r.Points, nil
}

func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
