package analytics

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	dashboard "github.com/goliatone/go-campaign-dashboard/components/dashboard"
)

func TestHTTPClientFetchCampaigns(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/campaigns" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Fatalf("expected auth header, got %s", got)
		}
		_ = json.NewEncoder(w).Encode(campaignsResponse{Campaigns: []campaignRow{{
			ID:          "campaign-1",
			Name:        "Campaign 1 - Facebook",
			Status:      "Active",
			Budget:      10000,
			Spend:       5000,
			Impressions: 100000,
			Clicks:      2500,
			Conversions: 100,
			Source:      "Facebook",
			StartDate:   "2024-03-01",
			EndDate:     "2024-03-30",
		}}})
	}))
	t.Cleanup(server.Close)

	client, err := NewHTTPClient(HTTPConfig{BaseURL: server.URL + "/", APIKey: "secret"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	campaigns, err := client.FetchCampaigns(context.Background())
	if err != nil {
		t.Fatalf("fetch campaigns: %v", err)
	}
	if len(campaigns) != 1 {
		t.Fatalf("expected one campaign, got %d", len(campaigns))
	}
	got := campaigns[0]
	if got.Status != dashboard.StatusActive {
		t.Fatalf("expected active status, got %s", got.Status)
	}
	if got.CTR != 2.5 || got.CPC != 2 || got.ROAS != 1.5 {
		t.Fatalf("unexpected derived metrics: ctr=%v cpc=%v roas=%v", got.CTR, got.CPC, got.ROAS)
	}
}

func TestHTTPClientRejectsUnknownStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(campaignsResponse{Campaigns: []campaignRow{{ID: "c", Status: "archived"}}})
	}))
	t.Cleanup(server.Close)

	client, _ := NewHTTPClient(HTTPConfig{BaseURL: server.URL})
	if _, err := client.FetchCampaigns(context.Background()); err == nil {
		t.Fatalf("expected status error")
	}
}

func TestHTTPClientFetchTimeSeries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/timeseries" || r.URL.Query().Get("days") != "7" {
			t.Fatalf("unexpected request %s", r.URL.String())
		}
		_ = json.NewEncoder(w).Encode(timeSeriesResponse{Points: []dashboard.TimeSeriesPoint{
			{Date: "2024-03-29", Revenue: 5000, Users: 900},
			{Date: "2024-03-30", Revenue: 5100, Users: 950},
		}})
	}))
	t.Cleanup(server.Close)

	client, _ := NewHTTPClient(HTTPConfig{BaseURL: server.URL})
	points, err := client.FetchTimeSeries(context.Background(), 7)
	if err != nil {
		t.Fatalf("fetch series: %v", err)
	}
	if len(points) != 2 || points[1].Label() != "03/30" {
		t.Fatalf("unexpected points: %#v", points)
	}
}

func TestHTTPClientReportsRemoteErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)

	client, _ := NewHTTPClient(HTTPConfig{BaseURL: server.URL})
	_, err := client.FetchFunnel(context.Background())
	if err == nil {
		t.Fatalf("expected remote error")
	}
	if want := "analytics: remote error 502: upstream down"; err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}

func TestNewHTTPClientRequiresBaseURL(t *testing.T) {
	if _, err := NewHTTPClient(HTTPConfig{}); err == nil {
		t.Fatalf("expected error")
	}
}
