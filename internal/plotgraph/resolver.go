// Package plotgraph partitions a strategy run's plottable objects into
// chart panel groups: one master per panel, overlaid slaves on it.
package plotgraph

import (
	"fmt"

	"github.com/quantlab/backplot/internal/core"
)

// maxMasterDepth bounds the plot master chain walk. A chain deeper than
// this is treated as a configuration cycle.
const maxMasterDepth = 64

// Index is the ownership tree over a strategy run's plottables: lookup by
// id plus the parent (plot master) relation.
type Index struct {
	byID map[string]core.Plottable
}

// NewIndex builds a lookup index over every plottable of the run
func NewIndex(result *core.StrategyResult) *Index {
	idx := &Index{byID: make(map[string]core.Plottable)}
	for _, p := range result.Plottables() {
		idx.byID[p.PlotID()] = p
	}
	return idx
}

// Lookup returns the plottable with the given id
func (ix *Index) Lookup(id string) (core.Plottable, bool) {
	p, ok := ix.byID[id]
	return p, ok
}

// ResolveMaster follows the plot master chain from obj to its root and
// returns the root. An object without a master resolves to itself. A nil
// input resolves to nil. Chains deeper than maxMasterDepth fail with
// ErrMasterCycle, dangling references with ErrMasterUnknown.
func (ix *Index) ResolveMaster(obj core.Plottable) (core.Plottable, error) {
	if obj == nil {
		return nil, nil
	}

	cur := obj
	for depth := 0; depth < maxMasterDepth; depth++ {
		ref := cur.Info().PlotMaster
		if ref == "" {
			return cur, nil
		}
		next, ok := ix.Lookup(ref)
		if !ok {
			return nil, core.WrapError(core.ErrMasterUnknown,
				fmt.Errorf("%s references %s", cur.PlotID(), ref))
		}
		cur = next
	}

	return nil, core.WrapError(core.ErrMasterCycle,
		fmt.Errorf("starting from %s", obj.PlotID()))
}
