package dashboard

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
)

// TrendMetrics lists the time-series metrics a trend chart can plot.
func TrendMetrics() []string {
	return []string{"revenue", "users", "conversions", "impressions"}
}

var trendTitles = map[string]string{
	"revenue":     "Revenue Trends",
	"users":       "User Engagement Trends",
	"conversions": "Conversion Trends",
	"impressions": "Impression Trends",
}

// TrendValue extracts metric from a time-series point.
func TrendValue(p TimeSeriesPoint, metric string) (float64, bool) {
	switch metric {
	case "revenue":
		return float64(p.Revenue), true
	case "users":
		return float64(p.Users), true
	case "conversions":
		return float64(p.Conversions), true
	case "impressions":
		return float64(p.Impressions), true
	}
	return 0, false
}

// TrendChartSource plots one metric of the state's time series, labelled by
// MM/dd day.
func TrendChartSource() ChartSource {
	return ChartSourceFunc(func(_ context.Context, meta WidgetContext) (ChartSpec, error) {
		cfg := meta.Instance.Configuration
		metric := strings.ToLower(stringValue(cfg["metric"], "revenue"))
		if _, ok := trendTitles[metric]; !ok {
			return ChartSpec{}, fmt.Errorf("dashboard: unknown trend metric %q", metric)
		}
		points := meta.State.ChartData
		labels := make([]string, len(points))
		values := make([]ChartPoint, len(points))
		for i, p := range points {
			v, _ := TrendValue(p, metric)
			labels[i] = p.Label()
			values[i] = ChartPoint{Label: labels[i], Value: v}
		}
		spec := ChartSpec{
			Title:  trendTitles[metric],
			XAxis:  labels,
			Series: []ChartSeries{{Name: titleize(metric), Points: values}},
		}
		if color := stringValue(cfg["color"], ""); color != "" {
			spec.Colors = []string{color}
		}
		return spec, nil
	})
}

// BreakdownMetrics lists the campaign fields a channel breakdown can total.
func BreakdownMetrics() []string {
	return []string{"budget", "spend", "impressions", "clicks", "conversions"}
}

// ChannelTotal is a campaign metric summed over one source channel.
type ChannelTotal struct {
	Source string  `json:"source"`
	Value  float64 `json:"value"`
	Count  int     `json:"count"`
}

// ChannelBreakdown sums metric per campaign source, largest first. Ties keep
// channel name order.
func ChannelBreakdown(campaigns []Campaign, metric string) ([]ChannelTotal, error) {
	if !slices.Contains(BreakdownMetrics(), metric) {
		return nil, fmt.Errorf("dashboard: unknown breakdown metric %q", metric)
	}
	field := sortFields[metric]
	index := map[string]int{}
	var totals []ChannelTotal
	for _, c := range campaigns {
		i, ok := index[c.Source]
		if !ok {
			i = len(totals)
			index[c.Source] = i
			totals = append(totals, ChannelTotal{Source: c.Source})
		}
		totals[i].Value += field.number(c)
		totals[i].Count++
	}
	slices.SortFunc(totals, func(a, b ChannelTotal) int {
		if c := cmp.Compare(b.Value, a.Value); c != 0 {
			return c
		}
		return strings.Compare(a.Source, b.Source)
	})
	return totals, nil
}

// ChannelBreakdownSource charts ChannelBreakdown over the state's campaigns.
func ChannelBreakdownSource() ChartSource {
	return ChartSourceFunc(func(_ context.Context, meta WidgetContext) (ChartSpec, error) {
		metric := strings.ToLower(stringValue(meta.Instance.Configuration["metric"], "spend"))
		totals, err := ChannelBreakdown(meta.State.Campaigns, metric)
		if err != nil {
			return ChartSpec{}, err
		}
		points := make([]ChartPoint, len(totals))
		labels := make([]string, len(totals))
		for i, t := range totals {
			points[i] = ChartPoint{Label: t.Source, Value: t.Value}
			labels[i] = t.Source
		}
		return ChartSpec{
			Title:  "Performance by Channel",
			XAxis:  labels,
			Series: []ChartSeries{{Name: titleize(metric), Points: points}},
		}, nil
	})
}

func titleize(value string) string {
	if value == "" {
		return value
	}
	lower := strings.ToLower(value)
	return strings.ToUpper(string(lower[0])) + lower[1:]
}
