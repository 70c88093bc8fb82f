package dashboard

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const defaultChartHeight = "360px"

// DefaultEChartsAssetsHost serves the ECharts runtime and themes from the
// go-echarts CDN.
const DefaultEChartsAssetsHost = "https://go-echarts.github.io/go-echarts-assets/assets/"

var sharedChartCache = NewChartCache(5 * time.Minute)

// Chart types understood by EChartsProvider.
const (
	ChartLine   = "line"
	ChartArea   = "area"
	ChartBar    = "bar"
	ChartPie    = "pie"
	ChartDonut  = "donut"
	ChartFunnel = "funnel"
)

// ChartSeries represents a set of values plotted for a given legend entry.
type ChartSeries struct {
	Name   string       `json:"name"`
	Points []ChartPoint `json:"points"`
}

// ChartPoint represents an individual value (optionally labeled).
type ChartPoint struct {
	Label string  `json:"label,omitempty"`
	Value float64 `json:"value"`
}

// ChartSpec is everything needed to draw one chart.
type ChartSpec struct {
	Title    string        `json:"title"`
	Subtitle string        `json:"subtitle,omitempty"`
	XAxis    []string      `json:"x_axis,omitempty"`
	Series   []ChartSeries `json:"series"`
	Colors   []string      `json:"colors,omitempty"`
}

// ChartSource builds the chart spec for a widget from the current state or a
// repository.
type ChartSource interface {
	ChartSpec(ctx context.Context, meta WidgetContext) (ChartSpec, error)
}

// ChartSourceFunc adapts a function into a ChartSource.
type ChartSourceFunc func(ctx context.Context, meta WidgetContext) (ChartSpec, error)

// ChartSpec calls f(ctx, meta).
func (f ChartSourceFunc) ChartSpec(ctx context.Context, meta WidgetContext) (ChartSpec, error) {
	return f(ctx, meta)
}

type chartRenderContext struct {
	Viewer ViewerContext
	Theme  string
}

// ThemeResolver selects a chart theme per viewer and dashboard theme.
type ThemeResolver func(viewer ViewerContext, theme Theme) string

// EChartsProvider renders server-side chart HTML for the given chart type.
type EChartsProvider struct {
	chartType     string
	source        ChartSource
	cache         RenderCache
	themeResolver ThemeResolver
	assetsHost    string
}

// EChartsProviderOption customizes provider behavior.
type EChartsProviderOption func(*EChartsProvider)

// WithChartCache injects a render cache. Nil disables caching.
func WithChartCache(cache RenderCache) EChartsProviderOption {
	return func(p *EChartsProvider) {
		p.cache = cache
	}
}

// WithChartThemeResolver resolves themes dynamically per viewer.
func WithChartThemeResolver(resolver ThemeResolver) EChartsProviderOption {
	return func(p *EChartsProvider) {
		p.themeResolver = resolver
	}
}

// WithChartAssetsHost rewrites the assets host so ECharts JS loads from a CDN
// or a self-hosted bucket.
func WithChartAssetsHost(host string) EChartsProviderOption {
	return func(p *EChartsProvider) {
		p.assetsHost = host
	}
}

// NewEChartsProvider builds a provider for a specific chart type fed by source.
func NewEChartsProvider(chartType string, source ChartSource, opts ...EChartsProviderOption) *EChartsProvider {
	p := &EChartsProvider{
		chartType:  strings.ToLower(chartType),
		source:     source,
		cache:      sharedChartCache,
		assetsHost: DefaultEChartsAssetsHost,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ChartThemeFor maps the dashboard theme onto an ECharts theme.
func ChartThemeFor(theme Theme) string {
	if theme.IsDark() {
		return types.ThemeChalk
	}
	return types.ThemeWesteros
}

// Fetch converts the source spec into go-echarts markup.
func (p *EChartsProvider) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	if p.source == nil {
		return nil, fmt.Errorf("dashboard: chart %s has no data source", meta.Instance.DefinitionID)
	}
	spec, err := p.source.ChartSpec(ctx, meta)
	if err != nil {
		return nil, err
	}
	if meta.Instance.Title != "" {
		spec.Title = meta.Instance.Title
	}
	chartType := p.chartType
	if override := stringValue(meta.Instance.Configuration["chart"], ""); override != "" {
		chartType = strings.ToLower(override)
	}

	renderCtx := chartRenderContext{
		Viewer: meta.Viewer,
		Theme:  p.resolveTheme(meta.Viewer, meta.State.Theme),
	}
	renderFn := func() (string, error) {
		return p.render(chartType, spec, renderCtx)
	}

	var html string
	if p.cache != nil {
		key := fmt.Sprintf("%s:%s:%s:%s:%s", meta.Instance.DefinitionID, meta.Instance.ID, chartType, renderCtx.Theme, contentHash(spec))
		html, err = p.cache.GetOrRender(key, renderFn)
	} else {
		html, err = renderFn()
	}
	if err != nil {
		return nil, err
	}

	return WidgetData{
		"chart_html": html,
		"chart_type": chartType,
		"title":      spec.Title,
		"subtitle":   spec.Subtitle,
		"theme":      renderCtx.Theme,
		"series":     spec.Series,
	}, nil
}

// RenderSpec renders spec directly, bypassing the cache. The CLI uses it to
// write standalone chart pages.
func (p *EChartsProvider) RenderSpec(spec ChartSpec, theme Theme) (string, error) {
	return p.render(p.chartType, spec, chartRenderContext{Theme: p.resolveTheme(ViewerContext{}, theme)})
}

func (p *EChartsProvider) render(chartType string, spec ChartSpec, ctx chartRenderContext) (string, error) {
	if len(spec.Series) == 0 {
		return "", fmt.Errorf("dashboard: chart series is required")
	}
	switch chartType {
	case ChartBar:
		return p.renderBarChart(spec, ctx)
	case ChartLine:
		return p.renderLineChart(spec, ctx, false)
	case ChartArea:
		return p.renderLineChart(spec, ctx, true)
	case ChartPie:
		return p.renderPieChart(spec, ctx, false)
	case ChartDonut:
		return p.renderPieChart(spec, ctx, true)
	case ChartFunnel:
		return p.renderFunnelChart(spec, ctx)
	default:
		return "", fmt.Errorf("dashboard: unsupported chart type: %s", chartType)
	}
}

func (p *EChartsProvider) renderBarChart(spec ChartSpec, ctx chartRenderContext) (string, error) {
	bar := charts.NewBar()
	bar.SetGlobalOptions(p.globalChartOptions(spec, ctx)...)
	bar.SetXAxis(axisFor(spec))
	for _, s := range spec.Series {
		bar.AddSeries(s.Name, toBarData(s.Points))
	}
	return renderChart(bar)
}

func (p *EChartsProvider) renderLineChart(spec ChartSpec, ctx chartRenderContext, area bool) (string, error) {
	line := charts.NewLine()
	line.SetGlobalOptions(p.globalChartOptions(spec, ctx)...)
	line.SetXAxis(axisFor(spec))
	for _, s := range spec.Series {
		line.AddSeries(s.Name, toLineData(s.Points))
	}
	seriesOpts := []charts.SeriesOpts{charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)})}
	if area {
		seriesOpts = append(seriesOpts, charts.WithAreaStyleOpts(opts.AreaStyle{Color: firstColor(spec.Colors)}))
	}
	line.SetSeriesOptions(seriesOpts...)
	return renderChart(line)
}

func (p *EChartsProvider) renderPieChart(spec ChartSpec, ctx chartRenderContext, donut bool) (string, error) {
	pie := charts.NewPie()
	pie.SetGlobalOptions(p.globalChartOptions(spec, ctx)...)
	for _, s := range spec.Series {
		pie.AddSeries(s.Name, toPieData(s.Points))
	}
	if donut {
		pie.SetSeriesOptions(charts.WithPieChartOpts(opts.PieChart{Radius: []string{"45%", "75%"}}))
	}
	return renderChart(pie)
}

func (p *EChartsProvider) renderFunnelChart(spec ChartSpec, ctx chartRenderContext) (string, error) {
	funnel := charts.NewFunnel()
	funnel.SetGlobalOptions(p.globalChartOptions(spec, ctx)...)
	for _, s := range spec.Series {
		funnel.AddSeries(s.Name, toFunnelData(s.Points))
	}
	return renderChart(funnel)
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (p *EChartsProvider) globalChartOptions(spec ChartSpec, ctx chartRenderContext) []charts.GlobalOpts {
	initOpts := opts.Initialization{
		Theme:  ctx.Theme,
		Width:  "100%",
		Height: defaultChartHeight,
	}
	if p.assetsHost != "" {
		initOpts.AssetsHost = p.assetsHost
	}
	global := []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: spec.Title, Subtitle: spec.Subtitle}),
		charts.WithInitializationOpts(initOpts),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
	if len(spec.Colors) > 0 {
		global = append(global, charts.WithColorsOpts(opts.Colors(spec.Colors)))
	}
	return global
}

func (p *EChartsProvider) resolveTheme(viewer ViewerContext, theme Theme) string {
	if p.themeResolver != nil {
		if resolved := p.themeResolver(viewer, theme); resolved != "" {
			return resolved
		}
	}
	return ChartThemeFor(theme)
}

func toBarData(points []ChartPoint) []opts.BarData {
	data := make([]opts.BarData, len(points))
	for i, point := range points {
		data[i] = opts.BarData{
			Name:  point.Label,
			Value: point.Value,
		}
	}
	return data
}

func toLineData(points []ChartPoint) []opts.LineData {
	data := make([]opts.LineData, len(points))
	for i, point := range points {
		data[i] = opts.LineData{
			Name:  point.Label,
			Value: point.Value,
		}
	}
	return data
}

func toPieData(points []ChartPoint) []opts.PieData {
	data := make([]opts.PieData, len(points))
	for i, point := range points {
		name := point.Label
		if name == "" {
			name = fmt.Sprintf("Slice %d", i+1)
		}
		data[i] = opts.PieData{
			Name:  name,
			Value: point.Value,
		}
	}
	return data
}

func toFunnelData(points []ChartPoint) []opts.FunnelData {
	data := make([]opts.FunnelData, len(points))
	for i, point := range points {
		data[i] = opts.FunnelData{
			Name:  point.Label,
			Value: point.Value,
		}
	}
	return data
}

func axisFor(spec ChartSpec) []string {
	if len(spec.XAxis) > 0 {
		return spec.XAxis
	}
	return inferredAxisLabels(spec.Series)
}

func inferredAxisLabels(series []ChartSeries) []string {
	var candidate []string
	longest := 0
	for _, s := range series {
		if len(s.Points) <= longest {
			continue
		}
		longest = len(s.Points)
		candidate = make([]string, len(s.Points))
		for i, point := range s.Points {
			if point.Label != "" {
				candidate[i] = point.Label
			} else {
				candidate[i] = fmt.Sprintf("Item %d", i+1)
			}
		}
	}
	return candidate
}

func firstColor(colors []string) string {
	if len(colors) == 0 {
		return ""
	}
	return colors[0]
}

func stringValue(v any, fallback string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return fallback
}

func boolValue(v any, fallback bool) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		return strings.EqualFold(val, "true")
	default:
		return fallback
	}
}

func intValue(v any, fallback int) int {
	switch val := v.(type) {
	case int:
		return val
	case int64:
		return int(val)
	case float64:
		return int(val)
	default:
		return fallback
	}
}
