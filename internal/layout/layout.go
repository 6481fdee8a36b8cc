// Package layout arranges built chart panels and analyzer tables into
// the tab/column structure of the output document.
package layout

import (
	"fmt"
	"html/template"

	"github.com/quantlab/backplot/internal/core"
	"github.com/quantlab/backplot/internal/figure"
	"github.com/quantlab/backplot/internal/scheme"
	"github.com/quantlab/backplot/internal/table"
)

// Tab is one tab of the dashboard: either a column of chart panels or
// the analyzer table columns.
type Tab struct {
	Title   string
	Figures []*figure.Figure
	Columns [][]template.HTML
}

// Layout is the composed document structure
type Layout struct {
	Tabs []Tab
}

// Compose arranges the session's figures per the scheme's plot mode and
// appends the analyzer tab when analyzer results exist. Panels after the
// first share the first panel's x-axis window; x tick labels are hidden
// on all but the bottom panel of each chart column when the axis
// position is "bottom".
func Compose(figs []*figure.Figure, analyzers []core.AnalyzerResult, sch *scheme.Scheme) (*Layout, error) {
	var tabs []Tab

	switch sch.PlotMode {
	case scheme.ModeSingle:
		tabs = append(tabs, Tab{Title: "Charts", Figures: orderSingle(figs)})
	case scheme.ModeTabs:
		for _, group := range []struct {
			title string
			kind  core.Kind
		}{
			{"Datas", core.KindFeed},
			{"Indicators", core.KindIndicator},
			{"Observers", core.KindObserver},
		} {
			sel := selectKind(figs, group.kind)
			if len(sel) == 0 {
				continue
			}
			tabs = append(tabs, Tab{Title: group.title, Figures: sel})
		}
	default:
		return nil, core.WrapError(core.ErrPlotMode, fmt.Errorf("%q", sch.PlotMode))
	}

	for i := range tabs {
		linkColumn(tabs[i].Figures, sch)
	}

	if len(analyzers) > 0 {
		at, err := analyzerTab(analyzers, sch)
		if err != nil {
			return nil, err
		}
		tabs = append(tabs, at)
	}

	return &Layout{Tabs: tabs}, nil
}

// orderSingle orders panels for single-column mode: observers first, then
// panels flagged plot-above, then the remainder in insertion order.
func orderSingle(figs []*figure.Figure) []*figure.Figure {
	var observers, aboves, rest []*figure.Figure
	for _, f := range figs {
		switch {
		case f.MasterKind() == core.KindObserver:
			observers = append(observers, f)
		case f.PlotAbove():
			aboves = append(aboves, f)
		default:
			rest = append(rest, f)
		}
	}

	out := make([]*figure.Figure, 0, len(figs))
	out = append(out, observers...)
	out = append(out, aboves...)
	return append(out, rest...)
}

func selectKind(figs []*figure.Figure, kind core.Kind) []*figure.Figure {
	var out []*figure.Figure
	for _, f := range figs {
		if f.MasterKind() == kind {
			out = append(out, f)
		}
	}
	return out
}

// linkColumn wires a chart column for synchronized pan/zoom: the bottom
// panel carries the zoom slider and the x tick labels, every other panel
// hides its labels when the axis position is "bottom".
func linkColumn(figs []*figure.Figure, sch *scheme.Scheme) {
	if len(figs) == 0 {
		return
	}

	bottom := len(figs) - 1
	for i, f := range figs {
		if i == bottom {
			f.EnableZoomSlider()
			continue
		}
		if sch.XAxisPos == "bottom" {
			f.HideXAxisLabels()
		}
	}
}

// analyzerTab lays the analyzer tables out into two columns, balancing
// cumulative block height greedily: each table goes into whichever
// column currently has less total height.
func analyzerTab(analyzers []core.AnalyzerResult, sch *scheme.Scheme) (Tab, error) {
	tables := make([]*table.Table, 0, len(analyzers))
	for _, a := range analyzers {
		tables = append(tables, table.FromAnalyzer(a))
	}

	cols := Balance(tables)
	gen := table.NewGenerator(sch)

	var rendered [][]template.HTML
	for _, col := range cols {
		if len(col) == 0 {
			continue
		}
		blocks := make([]template.HTML, 0, len(col))
		for _, t := range col {
			html, err := gen.Render(t)
			if err != nil {
				return Tab{}, err
			}
			blocks = append(blocks, html)
		}
		rendered = append(rendered, blocks)
	}

	return Tab{Title: "Analyzers", Columns: rendered}, nil
}

// Balance distributes tables over two columns by greedy min-height
// selection; ties go to the first column. Not a bin-packing optimum.
func Balance(tables []*table.Table) [2][]*table.Table {
	var cols [2][]*table.Table
	var heights [2]int

	for _, t := range tables {
		idx := 0
		if heights[1] < heights[0] {
			idx = 1
		}
		cols[idx] = append(cols[idx], t)
		heights[idx] += t.Height()
	}

	return cols
}
