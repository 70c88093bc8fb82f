package dashboard

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultMetricWindow is the number of days compared against the days before.
const DefaultMetricWindow = 15

// MetricCard is one headline number on the dashboard.
type MetricCard struct {
	Title       string  `json:"title"`
	Value       float64 `json:"value"`
	Display     string  `json:"display"`
	Change      float64 `json:"change"`
	ChangeLabel string  `json:"changeLabel"`
	Positive    bool    `json:"positive"`
	Icon        string  `json:"icon"`
}

// ComputeMetricCards summarises the last window days of points against the
// window days before them, plus the campaign average ROAS. A short series is
// split in half instead.
func ComputeMetricCards(points []TimeSeriesPoint, campaigns []Campaign, window int) []MetricCard {
	if window <= 0 {
		window = DefaultMetricWindow
	}
	window = min(window, len(points)/2)
	current := points[len(points)-window:]
	previous := points[len(points)-2*window : len(points)-window]

	printer := message.NewPrinter(language.English)
	label := fmt.Sprintf("vs previous %d days", window)

	revenue, prevRevenue := sumTrend(current, "revenue"), sumTrend(previous, "revenue")
	users, prevUsers := sumTrend(current, "users"), sumTrend(previous, "users")
	conversions, prevConversions := sumTrend(current, "conversions"), sumTrend(previous, "conversions")
	growth := percentChange(revenue, prevRevenue)

	cards := []MetricCard{
		newMetricCard("TOTAL REVENUE", revenue, compactCurrency(revenue), percentChange(revenue, prevRevenue), label, "dollar-sign"),
		newMetricCard("ACTIVE USERS", users, printer.Sprintf("%d", int64(users)), percentChange(users, prevUsers), label, "users"),
		newMetricCard("CONVERSIONS", conversions, printer.Sprintf("%d", int64(conversions)), percentChange(conversions, prevConversions), label, "target"),
		newMetricCard("GROWTH RATE", growth, formatSignedPercent(growth), growth-percentChange(users, prevUsers), "vs user growth", "activity"),
	}

	roas := averageROAS(campaigns)
	cards = append(cards, MetricCard{
		Title:       "AVERAGE ROAS",
		Value:       roas,
		Display:     fmt.Sprintf("%.2fx", roas),
		ChangeLabel: printer.Sprintf("across %d campaigns", len(campaigns)),
		Positive:    roas >= 1,
		Icon:        "trending-up",
	})
	return cards
}

func newMetricCard(title string, value float64, display string, change float64, label, icon string) MetricCard {
	return MetricCard{
		Title:       title,
		Value:       value,
		Display:     display,
		Change:      round2(change),
		ChangeLabel: formatSignedPercent(change) + " " + label,
		Positive:    change >= 0,
		Icon:        icon,
	}
}

// MetricCardsProvider renders ComputeMetricCards for the state snapshot.
func MetricCardsProvider() Provider {
	return ProviderFunc(func(_ context.Context, meta WidgetContext) (WidgetData, error) {
		window := intValue(meta.Instance.Configuration["window_days"], DefaultMetricWindow)
		return WidgetData{
			"cards": ComputeMetricCards(meta.State.ChartData, meta.State.Campaigns, window),
		}, nil
	})
}

func sumTrend(points []TimeSeriesPoint, metric string) float64 {
	var total float64
	for _, p := range points {
		v, _ := TrendValue(p, metric)
		total += v
	}
	return total
}

func averageROAS(campaigns []Campaign) float64 {
	if len(campaigns) == 0 {
		return 0
	}
	var total float64
	for _, c := range campaigns {
		total += c.ROAS
	}
	return round2(total / float64(len(campaigns)))
}

// percentChange is 0 when there is nothing to compare against.
func percentChange(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}

func compactCurrency(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1_000_000:
		return fmt.Sprintf("$%.1fM", v/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("$%.1fK", v/1_000)
	default:
		return fmt.Sprintf("$%.0f", v)
	}
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

func formatSignedPercent(v float64) string {
	return fmt.Sprintf("%+.1f%%", v)
}
