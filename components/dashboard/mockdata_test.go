package dashboard

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

func TestGenerateCampaignsInvariants(t *testing.T) {
	gen := NewGenerator(WithSeed(42), WithClock(func() time.Time { return fixedNow }))
	campaigns := gen.GenerateCampaigns()
	require.Len(t, campaigns, CampaignCount)

	seen := map[string]bool{}
	for i, c := range campaigns {
		assert.Equal(t, fmt.Sprintf("campaign-%d", i+1), c.ID)
		assert.False(t, seen[c.ID], "duplicate id %s", c.ID)
		seen[c.ID] = true

		assert.Contains(t, CampaignStatuses(), c.Status)
		assert.True(t, slices.Contains(CampaignChannels(), c.Source), c.Source)
		assert.Equal(t, fmt.Sprintf("Campaign %d - %s", i+1, c.Source), c.Name)

		assert.GreaterOrEqual(t, c.Budget, 5000.0)
		assert.Less(t, c.Budget, 55000.0)
		assert.Equal(t, math.Floor(c.Budget), c.Budget)
		assert.LessOrEqual(t, c.Spend, c.Budget)
		assert.GreaterOrEqual(t, c.Impressions, int64(10000))
		assert.Less(t, c.Impressions, int64(510000))
		assert.LessOrEqual(t, c.Clicks, c.Impressions)
		assert.LessOrEqual(t, c.Conversions, c.Clicks)

		assert.Equal(t, round2(float64(c.Clicks)/float64(c.Impressions)*100), c.CTR)
		assert.Equal(t, round2(ratio(c.Spend, float64(c.Clicks))), c.CPC)
		assert.Equal(t, round2(ratio(float64(c.Conversions*RevenuePerConversion), c.Spend)), c.ROAS)

		assert.Equal(t, "2024-03-15", c.EndDate)
		start, err := time.Parse(DateLayout, c.StartDate)
		require.NoError(t, err)
		days := fixedNow.Truncate(24*time.Hour).Sub(start).Hours() / 24
		assert.GreaterOrEqual(t, days, 0.0)
		assert.Less(t, days, 30.0)
	}
}

func TestGenerateCampaignsIsReproducibleWithSeed(t *testing.T) {
	clock := WithClock(func() time.Time { return fixedNow })
	a := NewGenerator(WithSeed(9), clock).GenerateCampaigns()
	b := NewGenerator(WithSeed(9), clock).GenerateCampaigns()
	assert.Equal(t, a, b)
}

func TestGenerateChartDataCoversThirtyDaysOldestFirst(t *testing.T) {
	gen := NewGenerator(WithSeed(1), WithClock(func() time.Time { return fixedNow }))
	points := gen.GenerateChartData()
	require.Len(t, points, ChartDays)

	assert.Equal(t, "2024-02-15", points[0].Date)
	assert.Equal(t, "2024-03-15", points[len(points)-1].Date)
	for i, p := range points {
		if i > 0 {
			prev, _ := time.Parse(DateLayout, points[i-1].Date)
			cur, _ := time.Parse(DateLayout, p.Date)
			assert.Equal(t, 24*time.Hour, cur.Sub(prev))
		}
		assert.True(t, p.Revenue >= 4000 && p.Revenue < 6000, "revenue %d", p.Revenue)
		assert.True(t, p.Users >= 800 && p.Users < 1200, "users %d", p.Users)
		assert.True(t, p.Conversions >= 30 && p.Conversions < 50, "conversions %d", p.Conversions)
		assert.True(t, p.Impressions >= 15000 && p.Impressions < 20000, "impressions %d", p.Impressions)
	}
	assert.Equal(t, "03/15", points[len(points)-1].Label())
}

func TestPackageGeneratorsProduceFullDatasets(t *testing.T) {
	assert.Len(t, GenerateCampaigns(), CampaignCount)
	assert.Len(t, GenerateChartData(), ChartDays)
}

func TestRatioGuardsZeroDenominator(t *testing.T) {
	assert.Zero(t, ratio(10, 0))
	assert.Equal(t, 2.5, ratio(5, 2))
}

func TestStaticDatasets(t *testing.T) {
	var share float64
	for _, s := range DefaultTrafficSources() {
		share += s.Value
	}
	assert.Equal(t, 100.0, share)

	stages := DefaultFunnelStages()
	require.Len(t, stages, 4)
	for i := 1; i < len(stages); i++ {
		assert.Less(t, stages[i].Value, stages[i-1].Value)
	}
	assert.True(t, strings.HasPrefix(DefaultAcquisitionSources()[0].Color, "#"))
}
