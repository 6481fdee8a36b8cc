// Package figure builds the chart panels of a dashboard on top of
// go-echarts. One Figure is one visual panel: a master plottable plus the
// slave series overlaid on it, bound to the session's shared time axis.
package figure

import (
	"math"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/google/uuid"

	"github.com/quantlab/backplot/internal/core"
	"github.com/quantlab/backplot/internal/scheme"
	"github.com/quantlab/backplot/internal/timeline"
)

// Config binds a panel to the shared session state
type Config struct {
	Timeline *timeline.Timeline
	Hover    *HoverRegistry
	Start    int
	End      int
	Scheme   *scheme.Scheme
}

// Figure is one chart panel. It lives for the duration of one render and
// is mutated while the panel factory plots the master and its slaves.
type Figure struct {
	id        string
	master    core.Plottable
	plotAbove bool
	cfg       Config

	kline *charts.Kline
	line  *charts.Line
	bar   *charts.Bar
}

// ID returns the panel's session-unique id
func (f *Figure) ID() string { return f.id }

// MasterKind returns the category of the panel's master
func (f *Figure) MasterKind() core.Kind { return f.master.ObjectKind() }

// PlotAbove reports whether the panel is flagged to sit above the price
// panel in single-column layout
func (f *Figure) PlotAbove() bool { return f.plotAbove }

// Title returns the panel headline
func (f *Figure) Title() string { return f.master.DisplayName() }

// Chart returns the underlying chart for rendering
func (f *Figure) Chart() components.Charter {
	switch {
	case f.kline != nil:
		return f.kline
	case f.bar != nil:
		return f.bar
	default:
		return f.line
	}
}

// ChartID returns the charting library's element id, available once the
// chart exists
func (f *Figure) ChartID() string {
	switch {
	case f.kline != nil:
		return f.kline.ChartID
	case f.bar != nil:
		return f.bar.ChartID
	default:
		return f.line.ChartID
	}
}

// EnsureChartID assigns a stable element id when the charting library
// has not set one yet. Rendering and axis linking depend on it.
func (f *Figure) EnsureChartID() string {
	if f.ChartID() == "" {
		id := "bp" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
		switch {
		case f.kline != nil:
			f.kline.ChartID = id
		case f.bar != nil:
			f.bar.ChartID = id
		default:
			f.line.ChartID = id
		}
	}
	return f.ChartID()
}

// NewPanel constructs a panel for a master/slave group and plots the
// master series. Slaves are added afterwards with PlotSlave.
func NewPanel(master core.Plottable, cfg Config) *Figure {
	f := &Figure{
		id:        uuid.NewString(),
		master:    master,
		plotAbove: master.Info().PlotAbove,
		cfg:       cfg,
	}

	if feed, ok := master.(*core.Feed); ok {
		f.kline = charts.NewKLine()
		f.applyGlobal(f.kline.SetGlobalOptions)
		f.plotFeed(feed, true)
	} else {
		f.line = charts.NewLine()
		f.applyGlobal(f.line.SetGlobalOptions)
		f.plotLines(master, true)
	}

	return f
}

// PlotSlave overlays a slave plottable's series onto the panel
func (f *Figure) PlotSlave(s core.Plottable) {
	if feed, ok := s.(*core.Feed); ok {
		f.plotFeed(feed, false)
		return
	}
	f.plotLines(s, false)
}

// NewVolumePanel constructs a dedicated volume panel for a feed, the
// volume bars scaled to the panel's full height.
func NewVolumePanel(feed *core.Feed, cfg Config) *Figure {
	f := &Figure{
		id:     uuid.NewString(),
		master: feed,
		cfg:    cfg,
	}

	f.bar = charts.NewBar()
	f.applyGlobal(f.bar.SetGlobalOptions, withHeight(cfg.Scheme.VolPanelHeight))

	start, end := f.window(len(feed.Volume))
	data := make([]opts.BarData, 0, end-start)
	for _, v := range feed.Volume[start:end] {
		data = append(data, opts.BarData{Value: v})
	}

	name := feed.DisplayName() + " Volume"
	f.bar.SetXAxis(f.labels()).AddSeries(name, data)
	f.cfg.Hover.Add(f.id, "Volume", name)

	return f
}

type globalSetter func(...charts.GlobalOpts) *charts.RectChart

func withHeight(h string) charts.GlobalOpts {
	return func(bc *charts.BaseConfiguration) {
		bc.Initialization.Height = h
	}
}

// applyGlobal applies the session theme to a freshly created chart
func (f *Figure) applyGlobal(set globalSetter, extra ...charts.GlobalOpts) {
	sch := f.cfg.Scheme

	base := []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			Theme:  sch.EChartsTheme,
			Width:  sch.PanelWidth,
			Height: sch.PanelHeight,
		}),
		charts.WithTitleOpts(opts.Title{
			Title: f.master.DisplayName(),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show:         opts.Bool(true),
			SelectedMode: sch.LegendClick,
			TextStyle:    &opts.TextStyle{Color: sch.LegendTextColor},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Scale: opts.Bool(true),
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:  "inside",
			Start: 0,
			End:   100,
		}),
	}

	set(append(base, extra...)...)
}

// ApplyHoverTips folds the panel's registered hover bindings into its
// tooltip formatter. Must run after the master and every slave have been
// plotted so the formatter covers all series of the panel.
func (f *Figure) ApplyHoverTips() {
	fn := f.cfg.Hover.Formatter(f.id)
	if fn == "" {
		return
	}
	f.applySingle(charts.WithTooltipOpts(opts.Tooltip{
		Show:      opts.Bool(true),
		Trigger:   "axis",
		Formatter: opts.FuncOpts(fn),
	}))
}

// HideXAxisLabels hides the panel's x tick labels. Used by the layout
// composer on every panel except the designated bottom one.
func (f *Figure) HideXAxisLabels() {
	opt := charts.WithXAxisOpts(opts.XAxis{
		AxisLabel: &opts.AxisLabel{Show: opts.Bool(false)},
	})
	f.applySingle(opt)
}

// EnableZoomSlider adds a visible data zoom slider to the panel. The
// composer puts it on the bottom panel only; the other panels follow via
// linked axes.
func (f *Figure) EnableZoomSlider() {
	opt := charts.WithDataZoomOpts(
		opts.DataZoom{Type: "inside", Start: 0, End: 100},
		opts.DataZoom{Type: "slider", Start: 0, End: 100},
	)
	f.applySingle(opt)
}

func (f *Figure) applySingle(opt charts.GlobalOpts) {
	switch {
	case f.kline != nil:
		f.kline.SetGlobalOptions(opt)
	case f.bar != nil:
		f.bar.SetGlobalOptions(opt)
	default:
		f.line.SetGlobalOptions(opt)
	}
}

func (f *Figure) window(seriesLen int) (int, int) {
	start, end := f.cfg.Start, f.cfg.End
	if start < 0 {
		start = 0
	}
	if end > seriesLen {
		end = seriesLen
	}
	if start > end {
		start = end
	}
	return start, end
}

func (f *Figure) labels() []string {
	return f.cfg.Timeline.Labels(f.cfg.Start, f.cfg.End, "")
}

// plotFeed adds a feed's candlestick series, as the panel base when the
// feed is the master or as an overlay otherwise
func (f *Figure) plotFeed(feed *core.Feed, isMaster bool) {
	sch := f.cfg.Scheme
	start, end := f.window(feed.Len())

	data := make([]opts.KlineData, 0, end-start)
	for i := start; i < end; i++ {
		data = append(data, opts.KlineData{
			Value: [4]float64{feed.Open[i], feed.Close[i], feed.Low[i], feed.High[i]},
		})
	}

	name := feed.DisplayName()
	itemStyle := charts.WithItemStyleOpts(opts.ItemStyle{
		Color:        sch.BarUpColor,
		Color0:       sch.BarDownColor,
		BorderColor:  sch.BarUpColor,
		BorderColor0: sch.BarDownColor,
	})

	if isMaster && f.kline != nil {
		f.kline.SetXAxis(f.labels()).AddSeries(name, data, itemStyle)
	} else {
		overlay := charts.NewKLine()
		overlay.SetXAxis(f.labels()).AddSeries(name, data, itemStyle)
		f.overlap(overlay)
	}
	f.cfg.Hover.Add(f.id, "OHLC", name)

	// volume overlaid onto the price panel when so configured
	if isMaster && sch.Volume && (sch.VolumeOverlay || feed.VolumeOverlay) && len(feed.Volume) > 0 {
		vstart, vend := f.window(len(feed.Volume))
		vols := make([]opts.BarData, 0, vend-vstart)
		for _, v := range feed.Volume[vstart:vend] {
			vols = append(vols, opts.BarData{Value: v})
		}
		volName := name + " Volume"
		bar := charts.NewBar()
		bar.SetXAxis(f.labels()).AddSeries(volName, vols)
		f.overlap(bar)
		f.cfg.Hover.Add(f.id, "Volume", volName)
	}
}

// plotLines adds every line of an indicator or observer
func (f *Figure) plotLines(p core.Plottable, isMaster bool) {
	var lines []core.Series
	switch v := p.(type) {
	case *core.Indicator:
		lines = v.Lines
	case *core.Observer:
		lines = v.Lines
	}

	for _, s := range lines {
		name := seriesName(p, s.Name)
		start, end := f.window(len(s.Values))

		data := make([]opts.LineData, 0, end-start)
		for _, v := range s.Values[start:end] {
			if math.IsNaN(v) {
				data = append(data, opts.LineData{Value: nil})
			} else {
				data = append(data, opts.LineData{Value: v})
			}
		}

		if isMaster && f.line != nil && len(f.line.MultiSeries) == 0 {
			f.line.SetXAxis(f.labels()).AddSeries(name, data)
		} else if isMaster && f.line != nil {
			f.line.AddSeries(name, data)
		} else {
			overlay := charts.NewLine()
			overlay.SetXAxis(f.labels()).AddSeries(name, data)
			f.overlap(overlay)
		}
		f.cfg.Hover.Add(f.id, s.Name, name)
	}
}

func seriesName(p core.Plottable, line string) string {
	if line == "" || line == p.DisplayName() {
		return p.DisplayName()
	}
	return p.DisplayName() + " " + line
}

func (f *Figure) overlap(overlay interface{}) {
	switch base := f.Chart().(type) {
	case *charts.Kline:
		switch o := overlay.(type) {
		case *charts.Kline:
			base.Overlap(o)
		case *charts.Line:
			base.Overlap(o)
		case *charts.Bar:
			base.Overlap(o)
		}
	case *charts.Line:
		switch o := overlay.(type) {
		case *charts.Kline:
			base.Overlap(o)
		case *charts.Line:
			base.Overlap(o)
		case *charts.Bar:
			base.Overlap(o)
		}
	case *charts.Bar:
		switch o := overlay.(type) {
		case *charts.Kline:
			base.Overlap(o)
		case *charts.Line:
			base.Overlap(o)
		case *charts.Bar:
			base.Overlap(o)
		}
	}
}
