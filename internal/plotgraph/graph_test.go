package plotgraph

import (
	"errors"
	"testing"

	"github.com/quantlab/backplot/internal/core"
)

func plotInfo(mutate func(*core.PlotInfo)) *core.PlotInfo {
	info := &core.PlotInfo{Plot: true}
	if mutate != nil {
		mutate(info)
	}
	return info
}

func TestBuild_FeedAndSubplotIndicator(t *testing.T) {
	// One feed (its own master) plus one subplot indicator on it:
	// two groups, both with empty slave lists.
	result := &core.StrategyResult{
		Feeds: []*core.Feed{feed("d0", "")},
		Indicators: []*core.Indicator{{
			ID:     "i0",
			Name:   "rsi",
			FeedID: "d0",
			Plot:   plotInfo(func(p *core.PlotInfo) { p.Subplot = true }),
		}},
	}

	g, err := Build(result, Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	masters := g.Masters()
	if len(masters) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(masters))
	}
	if masters[0].PlotID() != "d0" || masters[1].PlotID() != "i0" {
		t.Errorf("unexpected master order: %s, %s", masters[0].PlotID(), masters[1].PlotID())
	}
	for _, m := range masters {
		if len(g.Slaves(m)) != 0 {
			t.Errorf("group %s should have no slaves", m.PlotID())
		}
	}
}

func TestBuild_OverlayIndicatorBecomesSlave(t *testing.T) {
	result := &core.StrategyResult{
		Feeds: []*core.Feed{feed("d0", "")},
		Indicators: []*core.Indicator{{
			ID:     "i0",
			Name:   "sma",
			FeedID: "d0",
			Plot:   plotInfo(nil),
		}},
	}

	g, err := Build(result, Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	masters := g.Masters()
	if len(masters) != 1 {
		t.Fatalf("expected 1 group, got %d", len(masters))
	}
	slaves := g.Slaves(masters[0])
	if len(slaves) != 1 || slaves[0].PlotID() != "i0" {
		t.Errorf("indicator should be a slave of its owning feed")
	}
}

func TestBuild_EveryEnabledPlottableInExactlyOneGroup(t *testing.T) {
	result := &core.StrategyResult{
		Feeds: []*core.Feed{feed("d0", ""), feed("d1", "d0")},
		Indicators: []*core.Indicator{
			{ID: "i0", FeedID: "d0", Plot: plotInfo(nil)},
			{ID: "i1", FeedID: "d0", Plot: plotInfo(func(p *core.PlotInfo) { p.Subplot = true })},
			{ID: "i2", FeedID: "d0"}, // no plotting metadata: skipped
			{ID: "i3", FeedID: "d0", Plot: plotInfo(func(p *core.PlotInfo) { p.Skip = true })},
		},
		Observers: []*core.Observer{
			{ID: "o0", FeedID: "d0", Plot: plotInfo(func(p *core.PlotInfo) { p.Subplot = true })},
			{ID: "o1", FeedID: "d0", Plot: plotInfo(func(p *core.PlotInfo) { p.Plot = false })},
		},
	}

	g, err := Build(result, Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	seen := map[string]int{}
	for _, m := range g.Masters() {
		seen[m.PlotID()]++
		for _, s := range g.Slaves(m) {
			seen[s.PlotID()]++
		}
	}

	for _, want := range []string{"d0", "d1", "i0", "i1", "o0"} {
		if seen[want] != 1 {
			t.Errorf("%s appears %d times, want exactly 1", want, seen[want])
		}
	}
	for _, skipped := range []string{"i2", "i3", "o1"} {
		if seen[skipped] != 0 {
			t.Errorf("%s should not appear in any group", skipped)
		}
	}
}

func TestBuild_FeedWithMasterJoinsMasterGroup(t *testing.T) {
	result := &core.StrategyResult{
		Feeds: []*core.Feed{feed("d0", ""), feed("d1", "d0")},
	}

	g, err := Build(result, Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	masters := g.Masters()
	if len(masters) != 1 {
		t.Fatalf("expected 1 group, got %d", len(masters))
	}
	slaves := g.Slaves(masters[0])
	if len(slaves) != 1 || slaves[0].PlotID() != "d1" {
		t.Error("d1 should be overlaid on d0")
	}
}

func TestBuild_VolumePanels(t *testing.T) {
	withVol := feed("d0", "")
	withVol.Volume = []float64{1, 2, 3}
	overlayVol := feed("d1", "")
	overlayVol.Volume = []float64{1, 2, 3}
	overlayVol.VolumeOverlay = true
	noVol := feed("d2", "")

	result := &core.StrategyResult{Feeds: []*core.Feed{withVol, overlayVol, noVol}}

	g, err := Build(result, Options{Volume: true})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	vols := g.Volumes()
	if len(vols) != 1 || vols[0].ID != "d0" {
		t.Fatalf("expected only d0 in volume list, got %d entries", len(vols))
	}

	// scheme-wide overlay disables separate volume panels entirely
	g, err = Build(result, Options{Volume: true, VolumeOverlay: true})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(g.Volumes()) != 0 {
		t.Error("overlay mode should produce no volume panels")
	}
}

func TestBuild_ObserverGoesToResolvedMasterRoot(t *testing.T) {
	// o0 overlays d1, whose master chain ends at d0 — the observer must
	// land in d0's group.
	result := &core.StrategyResult{
		Feeds: []*core.Feed{feed("d0", ""), feed("d1", "d0")},
		Observers: []*core.Observer{{
			ID:     "o0",
			FeedID: "d1",
			Plot:   plotInfo(nil),
		}},
	}

	g, err := Build(result, Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	masters := g.Masters()
	if len(masters) != 1 || masters[0].PlotID() != "d0" {
		t.Fatalf("expected single group mastered by d0")
	}
	ids := map[string]bool{}
	for _, s := range g.Slaves(masters[0]) {
		ids[s.PlotID()] = true
	}
	if !ids["o0"] || !ids["d1"] {
		t.Error("both d1 and o0 should be slaves of d0")
	}
}

func TestBuild_CyclePropagates(t *testing.T) {
	a := feed("a", "b")
	b := feed("b", "a")
	result := &core.StrategyResult{Feeds: []*core.Feed{a, b}}

	_, err := Build(result, Options{})
	if !errors.Is(err, core.ErrMasterCycle) {
		t.Errorf("expected ErrMasterCycle, got %v", err)
	}
}
