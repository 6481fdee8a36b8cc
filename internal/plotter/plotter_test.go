package plotter

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/quantlab/backplot/internal/archive"
	"github.com/quantlab/backplot/internal/core"
	"github.com/quantlab/backplot/internal/scheme"
	"github.com/quantlab/backplot/internal/timeline"
)

func sampleResult(bars int) *core.StrategyResult {
	times := make([]time.Time, bars)
	open := make([]float64, bars)
	high := make([]float64, bars)
	low := make([]float64, bars)
	closes := make([]float64, bars)
	vol := make([]float64, bars)
	sma := make([]float64, bars)

	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < bars; i++ {
		times[i] = base.AddDate(0, 0, i)
		open[i] = 100 + float64(i)
		closes[i] = open[i] + 0.5
		high[i] = open[i] + 1
		low[i] = open[i] - 1
		vol[i] = 1000
		if i < 3 {
			sma[i] = math.NaN()
		} else {
			sma[i] = closes[i]
		}
	}

	return &core.StrategyResult{
		Strategy: "demo",
		Feeds: []*core.Feed{{
			ID:     "d0",
			Name:   "EURUSD",
			Times:  times,
			Open:   open,
			High:   high,
			Low:    low,
			Close:  closes,
			Volume: vol,
			Plot:   core.PlotInfo{Plot: true},
		}},
		Indicators: []*core.Indicator{
			{
				ID:     "sma",
				Name:   "SMA",
				FeedID: "d0",
				Lines:  []core.Series{{Name: "sma", Values: sma}},
				Plot:   &core.PlotInfo{Plot: true},
			},
			{
				ID:     "rsi",
				Name:   "RSI",
				FeedID: "d0",
				Lines:  []core.Series{{Name: "rsi", Values: sma}},
				Plot:   &core.PlotInfo{Plot: true, Subplot: true},
			},
		},
		Observers: []*core.Observer{{
			ID:     "cash",
			Name:   "Cash",
			FeedID: "d0",
			Lines:  []core.Series{{Name: "cash", Values: closes}},
			Plot:   &core.PlotInfo{Plot: true, Subplot: true},
		}},
		Analyzers: []core.AnalyzerResult{{
			Name: "Sharpe",
			Rows: []core.AnalyzerRow{{Key: "ratio", Value: "1.2"}},
		}},
	}
}

func newPlotter(t *testing.T, opts ...Option) *Plotter {
	t.Helper()
	p, err := New(scheme.Blackly(), nil, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return p
}

func TestPlot_RejectsMultiFigure(t *testing.T) {
	p := newPlotter(t)

	err := p.Plot(sampleResult(10), Request{NumFigs: 2})
	if !errors.Is(err, core.ErrMultiFigure) {
		t.Fatalf("expected ErrMultiFigure, got %v", err)
	}
}

func TestPlot_RejectsBackendOverride(t *testing.T) {
	p := newPlotter(t)

	err := p.Plot(sampleResult(10), Request{Backend: "matplotlib"})
	if !errors.Is(err, core.ErrBackendOverride) {
		t.Fatalf("expected ErrBackendOverride, got %v", err)
	}
}

func TestPlot_NoFeedsIsSilentNoop(t *testing.T) {
	p := newPlotter(t)

	err := p.Plot(&core.StrategyResult{Strategy: "empty"}, Request{})
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if len(p.Figures()) != 0 {
		t.Errorf("expected no figures, got %d", len(p.Figures()))
	}
	if p.tl != nil {
		t.Error("time axis must stay unbuilt on a no-op call")
	}
}

func TestPlot_ZeroBarsIsSilentNoop(t *testing.T) {
	p := newPlotter(t)

	err := p.Plot(sampleResult(0), Request{})
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if len(p.Figures()) != 0 {
		t.Errorf("expected no figures, got %d", len(p.Figures()))
	}
	if p.tl != nil {
		t.Error("time axis must stay unbuilt on a no-op call")
	}
}

func TestPlot_BuildsPanelsPerGroup(t *testing.T) {
	p := newPlotter(t)

	if err := p.Plot(sampleResult(10), Request{}); err != nil {
		t.Fatalf("Plot: %v", err)
	}

	// feed panel (SMA and volume overlaid), RSI subplot, cash subplot
	if got := len(p.Figures()); got != 3 {
		t.Fatalf("expected 3 panels, got %d", got)
	}
}

func TestPlot_SeparateVolumePanel(t *testing.T) {
	sch := scheme.Blackly()
	sch.VolumeOverlay = false
	p, err := New(sch, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := p.Plot(sampleResult(10), Request{}); err != nil {
		t.Fatalf("Plot: %v", err)
	}

	// the volume panel joins the three chart groups
	if got := len(p.Figures()); got != 4 {
		t.Fatalf("expected 4 panels, got %d", got)
	}
}

func TestPlot_AccumulatesAcrossCalls(t *testing.T) {
	p := newPlotter(t)

	if err := p.Plot(sampleResult(10), Request{}); err != nil {
		t.Fatalf("first Plot: %v", err)
	}
	first := len(p.Figures())

	if err := p.Plot(sampleResult(10), Request{}); err != nil {
		t.Fatalf("second Plot: %v", err)
	}
	if got := len(p.Figures()); got != 2*first {
		t.Errorf("expected %d panels after second call, got %d", 2*first, got)
	}
}

func TestPlot_TimeAxisBuiltOnce(t *testing.T) {
	p := newPlotter(t)

	if err := p.Plot(sampleResult(10), Request{}); err != nil {
		t.Fatalf("first Plot: %v", err)
	}
	tl := p.tl

	if err := p.Plot(sampleResult(20), Request{}); err != nil {
		t.Fatalf("second Plot: %v", err)
	}
	if p.tl != tl {
		t.Error("shared time axis must be built exactly once per session")
	}
	if p.tl.Len() != 10 {
		t.Errorf("axis length changed: got %d, want 10", p.tl.Len())
	}
}

func TestPlot_RangeBounds(t *testing.T) {
	p := newPlotter(t)

	req := Request{
		Start: timeline.Index(2),
		End:   timeline.Index(-1),
	}
	if err := p.Plot(sampleResult(10), req); err != nil {
		t.Fatalf("Plot: %v", err)
	}
	if len(p.Figures()) == 0 {
		t.Fatal("expected panels")
	}
}

func TestShow_WritesDocument(t *testing.T) {
	out := filepath.Join(t.TempDir(), "dash.html")
	p := newPlotter(t, WithFilename(out), WithTitle("Demo Run"))

	if err := p.Plot(sampleResult(10), Request{}); err != nil {
		t.Fatalf("Plot: %v", err)
	}
	if err := p.Show(); err != nil {
		t.Fatalf("Show: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	html := string(data)

	if !strings.Contains(html, "Demo Run") {
		t.Error("document missing title")
	}
	if !strings.Contains(html, "Sharpe") {
		t.Error("document missing analyzer table")
	}
	if !strings.Contains(html, p.SessionID()) {
		t.Error("document missing session id")
	}

	// panels survive Show for repeated rendering
	if len(p.Figures()) != 3 {
		t.Errorf("expected panels to survive Show, got %d", len(p.Figures()))
	}
}

func TestShow_ArchivesCopy(t *testing.T) {
	store, err := archive.NewLocalDir(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalDir: %v", err)
	}

	out := filepath.Join(t.TempDir(), "dash.html")
	p := newPlotter(t, WithFilename(out), WithArchive(store, "reports"))

	if err := p.Plot(sampleResult(10), Request{}); err != nil {
		t.Fatalf("Plot: %v", err)
	}
	if err := p.Show(); err != nil {
		t.Fatalf("Show: %v", err)
	}

	keys, err := store.List(context.Background(), "reports/")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(keys) != 1 {
		t.Fatalf("expected 1 archived document, got %d", len(keys))
	}
	if !strings.Contains(keys[0], p.SessionID()) {
		t.Errorf("archive key %q missing session id", keys[0])
	}
}

func TestRender_InMemory(t *testing.T) {
	p := newPlotter(t)

	if err := p.Plot(sampleResult(10), Request{}); err != nil {
		t.Fatalf("Plot: %v", err)
	}

	html, err := p.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(html), "echarts.init") {
		t.Error("rendered document missing chart bootstrap")
	}
}

func TestShow_UnknownModeFails(t *testing.T) {
	sch := scheme.Blackly()
	p, err := New(sch, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := p.Plot(sampleResult(10), Request{}); err != nil {
		t.Fatalf("Plot: %v", err)
	}

	sch.PlotMode = "grid"
	if err := p.Show(); !errors.Is(err, core.ErrPlotMode) {
		t.Fatalf("expected ErrPlotMode, got %v", err)
	}
}

func TestNew_RejectsInvalidScheme(t *testing.T) {
	sch := scheme.Blackly()
	sch.PlotMode = "bogus"

	if _, err := New(sch, nil); !errors.Is(err, core.ErrSchemeInvalid) {
		t.Fatalf("expected ErrSchemeInvalid, got %v", err)
	}
}

func TestSaveFig_IsNoop(t *testing.T) {
	p := newPlotter(t)
	p.SaveFig(nil, "chart.png", 800, 600, 90)
}
