package core

import "time"

// Kind classifies a plottable object
type Kind string

const (
	KindFeed      Kind = "feed"
	KindIndicator Kind = "indicator"
	KindObserver  Kind = "observer"
)

// PlotInfo carries the plotting metadata attached to a plottable object
type PlotInfo struct {
	Plot       bool   `json:"plot"`               // enabled for plotting at all
	Skip       bool   `json:"skip,omitempty"`     // explicitly skipped even if enabled
	Subplot    bool   `json:"subplot,omitempty"`  // rendered in its own panel instead of overlaid
	PlotMaster string `json:"plotmaster,omitempty"` // id of the object this one is overlaid on
	PlotAbove  bool   `json:"plotabove,omitempty"` // panel placed above the price panel in single layout
	PlotName   string `json:"plotname,omitempty"`  // display label override
}

// Plottable is any object that can be placed on a chart panel:
// a data feed, an indicator, or an observer.
type Plottable interface {
	PlotID() string
	DisplayName() string
	ObjectKind() Kind
	Info() PlotInfo
}

// Series is one named line of values aligned to the feed time axis.
// Warmup gaps are NaN.
type Series struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// Feed is one OHLCV data feed of a strategy run
type Feed struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Times         []time.Time `json:"times"`
	Open          []float64   `json:"open"`
	High          []float64   `json:"high"`
	Low           []float64   `json:"low"`
	Close         []float64   `json:"close"`
	Volume        []float64   `json:"volume"`
	Timezone      string      `json:"timezone,omitempty"`
	VolumeOverlay bool        `json:"volume_overlay,omitempty"` // overlay volume on the price panel instead of a separate one
	Plot          PlotInfo    `json:"plotinfo"`
}

func (f *Feed) PlotID() string   { return f.ID }
func (f *Feed) ObjectKind() Kind { return KindFeed }
func (f *Feed) Info() PlotInfo   { return f.Plot }

func (f *Feed) DisplayName() string {
	if f.Plot.PlotName != "" {
		return f.Plot.PlotName
	}
	return f.Name
}

// Len returns the number of bars in the feed
func (f *Feed) Len() int { return len(f.Times) }

// Indicator is a computed indicator bound to a feed.
// Plot is nil when the indicator has no plotting support.
type Indicator struct {
	ID     string    `json:"id"`
	Name   string    `json:"name"`
	FeedID string    `json:"feed_id"`
	Lines  []Series  `json:"lines"`
	Plot   *PlotInfo `json:"plotinfo,omitempty"`
}

func (i *Indicator) PlotID() string   { return i.ID }
func (i *Indicator) ObjectKind() Kind { return KindIndicator }

func (i *Indicator) Info() PlotInfo {
	if i.Plot == nil {
		return PlotInfo{}
	}
	return *i.Plot
}

func (i *Indicator) DisplayName() string {
	if i.Plot != nil && i.Plot.PlotName != "" {
		return i.Plot.PlotName
	}
	return i.Name
}

// Observer is an engine-side observer series (cash, value, trades, ...).
// Plot is nil when the observer has no plotting support.
type Observer struct {
	ID     string    `json:"id"`
	Name   string    `json:"name"`
	FeedID string    `json:"feed_id"`
	Lines  []Series  `json:"lines"`
	Plot   *PlotInfo `json:"plotinfo,omitempty"`
}

func (o *Observer) PlotID() string   { return o.ID }
func (o *Observer) ObjectKind() Kind { return KindObserver }

func (o *Observer) Info() PlotInfo {
	if o.Plot == nil {
		return PlotInfo{}
	}
	return *o.Plot
}

func (o *Observer) DisplayName() string {
	if o.Plot != nil && o.Plot.PlotName != "" {
		return o.Plot.PlotName
	}
	return o.Name
}

// AnalyzerRow is one key/value line of an analyzer table
type AnalyzerRow struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// AnalyzerSection groups related rows of an analyzer under a sub-header.
// Sections nest one level deep: a section holds rows, never sections.
type AnalyzerSection struct {
	Title string        `json:"title"`
	Rows  []AnalyzerRow `json:"rows"`
}

// AnalyzerResult is one named analyzer output rendered as a table: flat
// top-level rows first, then the titled sections.
type AnalyzerResult struct {
	Name     string            `json:"name"`
	Rows     []AnalyzerRow     `json:"rows,omitempty"`
	Sections []AnalyzerSection `json:"sections,omitempty"`
}

// StrategyResult is the in-memory strategy run handed over by the
// backtesting engine: everything the dashboard can possibly render.
type StrategyResult struct {
	Strategy   string           `json:"strategy"`
	Feeds      []*Feed          `json:"feeds"`
	Indicators []*Indicator     `json:"indicators,omitempty"`
	Observers  []*Observer      `json:"observers,omitempty"`
	Analyzers  []AnalyzerResult `json:"analyzers,omitempty"`
}

// Bars returns the number of elapsed bars of the run, taken from the
// first data feed. Zero when the strategy has no feeds.
func (r *StrategyResult) Bars() int {
	if len(r.Feeds) == 0 {
		return 0
	}
	return r.Feeds[0].Len()
}

// Plottables returns feeds, observers and indicators as one flat list
func (r *StrategyResult) Plottables() []Plottable {
	out := make([]Plottable, 0, len(r.Feeds)+len(r.Indicators)+len(r.Observers))
	for _, f := range r.Feeds {
		out = append(out, f)
	}
	for _, o := range r.Observers {
		out = append(out, o)
	}
	for _, i := range r.Indicators {
		out = append(out, i)
	}
	return out
}
