package plotgraph

import "github.com/quantlab/backplot/internal/core"

// Options steer which volume panels the builder emits
type Options struct {
	Volume        bool // volume rendering enabled at all
	VolumeOverlay bool // volume overlaid on price panels instead of separate ones
}

// Graph maps each master plottable to the ordered slaves sharing its
// panel, keeping master insertion order, plus the list of feeds that get
// a dedicated volume panel. A feed in the volume list still owns its
// price panel; the volume panel is a separate figure.
type Graph struct {
	order   []string
	masters map[string]core.Plottable
	slaves  map[string][]core.Plottable
	volumes []*core.Feed
}

func newGraph() *Graph {
	return &Graph{
		masters: make(map[string]core.Plottable),
		slaves:  make(map[string][]core.Plottable),
	}
}

// Masters returns the group masters in insertion order
func (g *Graph) Masters() []core.Plottable {
	out := make([]core.Plottable, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.masters[id])
	}
	return out
}

// Slaves returns the ordered slave list of a master
func (g *Graph) Slaves(master core.Plottable) []core.Plottable {
	return g.slaves[master.PlotID()]
}

// Volumes returns the feeds that get a dedicated volume panel
func (g *Graph) Volumes() []*core.Feed {
	return g.volumes
}

func (g *Graph) addMaster(p core.Plottable) {
	id := p.PlotID()
	if _, ok := g.masters[id]; ok {
		return
	}
	g.masters[id] = p
	g.order = append(g.order, id)
}

func (g *Graph) addSlave(master, slave core.Plottable) {
	g.addMaster(master)
	id := master.PlotID()
	g.slaves[id] = append(g.slaves[id], slave)
}

func skipped(info core.PlotInfo) bool {
	return !info.Plot || info.Skip
}

// Build partitions the run's feeds, observers and indicators into panel
// groups. Feeds are placed first, then observers, then indicators, so
// panel insertion order follows that category order.
func Build(result *core.StrategyResult, opts Options) (*Graph, error) {
	idx := NewIndex(result)
	g := newGraph()

	for _, d := range result.Feeds {
		if skipped(d.Plot) {
			continue
		}

		if ref := d.Plot.PlotMaster; ref == "" {
			g.addMaster(d)
		} else {
			master, err := resolveRef(idx, d, ref)
			if err != nil {
				return nil, err
			}
			g.addSlave(master, d)
		}

		if opts.Volume && !opts.VolumeOverlay && !d.VolumeOverlay && len(d.Volume) > 0 {
			g.volumes = append(g.volumes, d)
		}
	}

	for _, o := range result.Observers {
		if o.Plot == nil || skipped(*o.Plot) {
			continue
		}
		if err := place(idx, g, o, o.Plot.PlotMaster, o.FeedID, o.Plot.Subplot); err != nil {
			return nil, err
		}
	}

	for _, i := range result.Indicators {
		if i.Plot == nil || skipped(*i.Plot) {
			continue
		}
		if err := place(idx, g, i, i.Plot.PlotMaster, i.FeedID, i.Plot.Subplot); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// place puts an indicator or observer into the graph: its own group when
// subplot is set, otherwise as a slave of its resolved master (explicit
// master reference, else the owning feed).
func place(idx *Index, g *Graph, p core.Plottable, masterRef, feedID string, subplot bool) error {
	if subplot {
		g.addMaster(p)
		return nil
	}

	ref := masterRef
	if ref == "" {
		ref = feedID
	}
	master, err := resolveRef(idx, p, ref)
	if err != nil {
		return err
	}
	g.addSlave(master, p)
	return nil
}

func resolveRef(idx *Index, from core.Plottable, ref string) (core.Plottable, error) {
	target, ok := idx.Lookup(ref)
	if !ok {
		return nil, core.WrapError(core.ErrMasterUnknown,
			refError{from: from.PlotID(), ref: ref})
	}
	return idx.ResolveMaster(target)
}

type refError struct {
	from, ref string
}

func (e refError) Error() string {
	return e.from + " references " + e.ref
}
