package dashboard

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"time"
)

const (
	// CampaignCount is the number of campaigns produced per generated dataset.
	CampaignCount = 25
	// ChartDays is the length of the generated trailing time series.
	ChartDays = 30
	// RevenuePerConversion is the flat value assumed when deriving ROAS.
	RevenuePerConversion = 75
)

var campaignChannels = []string{
	"Google Ads",
	"Facebook",
	"Instagram",
	"Email Marketing",
	"Organic Search",
	"LinkedIn",
	"Twitter",
	"YouTube",
}

// CampaignChannels returns the channel names the generator draws from.
func CampaignChannels() []string {
	return append([]string(nil), campaignChannels...)
}

// Generator produces synthetic campaign datasets. The zero value is not
// usable; build one with NewGenerator.
type Generator struct {
	mu   sync.Mutex
	rng  *rand.Rand
	now  func() time.Time
	days int
}

// GeneratorOption customizes a Generator.
type GeneratorOption func(*Generator)

// WithRand pins the random source, making output reproducible.
func WithRand(rng *rand.Rand) GeneratorOption {
	return func(g *Generator) {
		g.rng = rng
	}
}

// WithSeed is shorthand for WithRand backed by a PCG source.
func WithSeed(seed uint64) GeneratorOption {
	return WithRand(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// WithClock overrides the wall clock used to anchor generated dates.
func WithClock(now func() time.Time) GeneratorOption {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// NewGenerator builds a generator. Without WithRand every call draws a fresh
// random sample.
func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{now: time.Now, days: ChartDays}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

var defaultGenerator = NewGenerator()

// GenerateCampaigns returns a fresh random campaign dataset.
func GenerateCampaigns() []Campaign {
	return defaultGenerator.GenerateCampaigns()
}

// GenerateChartData returns a fresh random 30 day series ending today.
func GenerateChartData() []TimeSeriesPoint {
	return defaultGenerator.GenerateChartData()
}

// GenerateCampaigns builds CampaignCount campaigns. Each record draws a single
// channel that is used for both its name and its source.
func (g *Generator) GenerateCampaigns() []Campaign {
	g.mu.Lock()
	defer g.mu.Unlock()

	today := g.now()
	statuses := CampaignStatuses()
	campaigns := make([]Campaign, 0, CampaignCount)
	for i := range CampaignCount {
		budget := float64(g.intN(50000) + 5000)
		spend := math.Floor(budget * (0.3 + g.float()*0.7))
		impressions := int64(g.intN(500000) + 10000)
		clicks := int64(math.Floor(float64(impressions) * (0.01 + g.float()*0.05)))
		conversions := int64(math.Floor(float64(clicks) * (0.02 + g.float()*0.08)))

		channel := campaignChannels[g.intN(len(campaignChannels))]
		status := statuses[g.intN(len(statuses))]
		start := today.AddDate(0, 0, -g.intN(30))

		campaigns = append(campaigns, Campaign{
			ID:          fmt.Sprintf("campaign-%d", i+1),
			Name:        fmt.Sprintf("Campaign %d - %s", i+1, channel),
			Status:      status,
			Budget:      budget,
			Spend:       spend,
			Impressions: impressions,
			Clicks:      clicks,
			CTR:         round2(ratio(float64(clicks), float64(impressions)) * 100),
			CPC:         round2(ratio(spend, float64(clicks))),
			Conversions: conversions,
			ROAS:        round2(ratio(float64(conversions*RevenuePerConversion), spend)),
			Source:      channel,
			StartDate:   start.Format(DateLayout),
			EndDate:     today.Format(DateLayout),
		})
	}
	return campaigns
}

// GenerateChartData builds one point per day from 29 days ago through today,
// oldest first.
func (g *Generator) GenerateChartData() []TimeSeriesPoint {
	g.mu.Lock()
	defer g.mu.Unlock()

	today := g.now()
	points := make([]TimeSeriesPoint, 0, g.days)
	for i := g.days - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		points = append(points, TimeSeriesPoint{
			Date:        day.Format(DateLayout),
			Revenue:     int64(4000 + g.float()*2000),
			Users:       int64(800 + g.float()*400),
			Conversions: int64(30 + g.float()*20),
			Impressions: int64(15000 + g.float()*5000),
		})
	}
	return points
}

// FetchCampaigns satisfies DatasetSource.
func (g *Generator) FetchCampaigns(context.Context) ([]Campaign, error) {
	return g.GenerateCampaigns(), nil
}

// FetchChartData satisfies DatasetSource.
func (g *Generator) FetchChartData(context.Context) ([]TimeSeriesPoint, error) {
	return g.GenerateChartData(), nil
}

func (g *Generator) float() float64 {
	if g.rng != nil {
		return g.rng.Float64()
	}
	return rand.Float64()
}

func (g *Generator) intN(n int) int {
	if g.rng != nil {
		return g.rng.IntN(n)
	}
	return rand.IntN(n)
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

// DefaultTrafficSources is the traffic distribution shown on the dashboard.
func DefaultTrafficSources() []TrafficSource {
	return []TrafficSource{
		{Name: "Google Ads", Value: 35, Color: "#3B82F6"},
		{Name: "Facebook", Value: 25, Color: "#10B981"},
		{Name: "Instagram", Value: 20, Color: "#F59E0B"},
		{Name: "Email Marketing", Value: 12, Color: "#EF4444"},
		{Name: "Organic Search", Value: 8, Color: "#8B5CF6"},
	}
}

// DefaultAcquisitionSources is the user acquisition breakdown by channel.
func DefaultAcquisitionSources() []AcquisitionSource {
	return []AcquisitionSource{
		{Source: "Google Ads", Users: 12500, Color: "#3B82F6"},
		{Source: "Facebook", Users: 8900, Color: "#10B981"},
		{Source: "Instagram", Users: 6700, Color: "#F59E0B"},
		{Source: "Email", Users: 4200, Color: "#EF4444"},
		{Source: "Organic", Users: 3800, Color: "#8B5CF6"},
		{Source: "LinkedIn", Users: 2100, Color: "#06B6D4"},
	}
}

// DefaultFunnelStages is the visitors to customers conversion funnel.
func DefaultFunnelStages() []FunnelStage {
	return []FunnelStage{
		{Stage: "Visitors", Value: 28439, Color: "#3B82F6"},
		{Stage: "Leads", Value: 8532, Color: "#10B981"},
		{Stage: "Qualified", Value: 3421, Color: "#F59E0B"},
		{Stage: "Customers", Value: 1247, Color: "#EF4444"},
	}
}
