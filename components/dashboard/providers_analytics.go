package dashboard

import (
	"context"
	"slices"
)

// SourceReportRepository loads the channel breakdowns shown next to the
// campaign data.
type SourceReportRepository interface {
	FetchTrafficSources(ctx context.Context) ([]TrafficSource, error)
	FetchAcquisitionSources(ctx context.Context) ([]AcquisitionSource, error)
	FetchFunnelStages(ctx context.Context) ([]FunnelStage, error)
}

// StaticSourceReports serves the built-in demo breakdowns.
type StaticSourceReports struct{}

// FetchTrafficSources returns DefaultTrafficSources.
func (StaticSourceReports) FetchTrafficSources(context.Context) ([]TrafficSource, error) {
	return DefaultTrafficSources(), nil
}

// FetchAcquisitionSources returns DefaultAcquisitionSources.
func (StaticSourceReports) FetchAcquisitionSources(context.Context) ([]AcquisitionSource, error) {
	return DefaultAcquisitionSources(), nil
}

// FetchFunnelStages returns DefaultFunnelStages.
func (StaticSourceReports) FetchFunnelStages(context.Context) ([]FunnelStage, error) {
	return DefaultFunnelStages(), nil
}

func normalizeReports(repo SourceReportRepository) SourceReportRepository {
	if repo == nil {
		return StaticSourceReports{}
	}
	return repo
}

// AcquisitionChartSource charts users acquired per channel.
func AcquisitionChartSource(repo SourceReportRepository) ChartSource {
	repo = normalizeReports(repo)
	return ChartSourceFunc(func(ctx context.Context, _ WidgetContext) (ChartSpec, error) {
		sources, err := repo.FetchAcquisitionSources(ctx)
		if err != nil {
			return ChartSpec{}, err
		}
		points := make([]ChartPoint, len(sources))
		labels := make([]string, len(sources))
		colors := make([]string, 0, 1)
		for i, s := range sources {
			points[i] = ChartPoint{Label: s.Source, Value: float64(s.Users)}
			labels[i] = s.Source
		}
		if len(sources) > 0 && sources[0].Color != "" {
			colors = append(colors, sources[0].Color)
		}
		return ChartSpec{
			Title:  "User Acquisition by Source",
			XAxis:  labels,
			Series: []ChartSeries{{Name: "Users", Points: points}},
			Colors: colors,
		}, nil
	})
}

// TrafficChartSource charts the traffic share per source.
func TrafficChartSource(repo SourceReportRepository) ChartSource {
	repo = normalizeReports(repo)
	return ChartSourceFunc(func(ctx context.Context, _ WidgetContext) (ChartSpec, error) {
		sources, err := repo.FetchTrafficSources(ctx)
		if err != nil {
			return ChartSpec{}, err
		}
		points := make([]ChartPoint, len(sources))
		colors := make([]string, len(sources))
		for i, s := range sources {
			points[i] = ChartPoint{Label: s.Name, Value: s.Value}
			colors[i] = s.Color
		}
		return ChartSpec{
			Title:  "Traffic Source Distribution",
			Series: []ChartSeries{{Name: "Traffic", Points: points}},
			Colors: compactColors(colors),
		}, nil
	})
}

// FunnelChartSource charts the conversion funnel stages.
func FunnelChartSource(repo SourceReportRepository) ChartSource {
	repo = normalizeReports(repo)
	return ChartSourceFunc(func(ctx context.Context, _ WidgetContext) (ChartSpec, error) {
		stages, err := repo.FetchFunnelStages(ctx)
		if err != nil {
			return ChartSpec{}, err
		}
		points := make([]ChartPoint, len(stages))
		colors := make([]string, len(stages))
		for i, s := range stages {
			points[i] = ChartPoint{Label: s.Stage, Value: s.Value}
			colors[i] = s.Color
		}
		spec := ChartSpec{
			Title:  "Conversion Funnel",
			Series: []ChartSeries{{Name: "Funnel", Points: points}},
			Colors: compactColors(colors),
		}
		if rate, ok := funnelConversionRate(stages); ok {
			spec.Subtitle = formatPercent(rate) + " visitor to customer"
		}
		return spec, nil
	})
}

// funnelConversionRate is the last stage as a percentage of the first.
func funnelConversionRate(stages []FunnelStage) (float64, bool) {
	if len(stages) < 2 || stages[0].Value == 0 {
		return 0, false
	}
	return stages[len(stages)-1].Value / stages[0].Value * 100, true
}

func compactColors(colors []string) []string {
	return slices.DeleteFunc(colors, func(c string) bool { return c == "" })
}
