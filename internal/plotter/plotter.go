// Package plotter is the render session orchestrator. It accepts strategy
// results through Plot, accumulates chart panels across calls, and writes
// the finished dashboard document in Show.
package plotter

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/quantlab/backplot/internal/archive"
	"github.com/quantlab/backplot/internal/core"
	"github.com/quantlab/backplot/internal/document"
	"github.com/quantlab/backplot/internal/figure"
	"github.com/quantlab/backplot/internal/layout"
	"github.com/quantlab/backplot/internal/plotgraph"
	"github.com/quantlab/backplot/internal/scheme"
	"github.com/quantlab/backplot/internal/timeline"
)

// Request carries the per-call options of a render call. The zero value
// asks for a single figure over the full range.
type Request struct {
	FigID       int            // caller-chosen figure tag, carried into logs
	NumFigs     int            // 0 means 1; any other value than 1 is rejected
	Interactive bool           // open the document in a browser after Show
	Start       timeline.Bound // left edge, absent | index | date
	End         timeline.Bound // right edge, absent | index | date
	Backend     string         // must stay empty, alternate backends are rejected
}

// Plotter accumulates panels across Plot calls and renders them as one
// document. The shared time axis is built from the first feed of the
// first non-empty result and reused for every later call.
type Plotter struct {
	scheme *scheme.Scheme
	log    *zap.Logger

	sessionID   string
	title       string
	filename    string
	openBrowser bool
	interactive bool

	store         archive.Store
	archivePrefix string

	tl        *timeline.Timeline
	figures   []*figure.Figure
	analyzers []core.AnalyzerResult
}

// Option configures a Plotter
type Option func(*Plotter)

// WithTitle sets the document headline and browser title
func WithTitle(title string) Option {
	return func(p *Plotter) { p.title = title }
}

// WithFilename sets the output file written by Show
func WithFilename(name string) Option {
	return func(p *Plotter) { p.filename = name }
}

// WithBrowserOpen controls whether Show opens the written document in the
// default browser. The last Plot call's Interactive flag must also be set.
func WithBrowserOpen(open bool) Option {
	return func(p *Plotter) { p.openBrowser = open }
}

// WithArchive stores a copy of every rendered document under the store,
// keyed by date and session id below the prefix.
func WithArchive(store archive.Store, prefix string) Option {
	return func(p *Plotter) {
		p.store = store
		p.archivePrefix = prefix
	}
}

// New builds a Plotter for one render session. A nil scheme defaults to
// the dark theme, a nil logger to a no-op one.
func New(sch *scheme.Scheme, log *zap.Logger, opts ...Option) (*Plotter, error) {
	if sch == nil {
		sch = scheme.Blackly()
	}
	if log == nil {
		log = zap.NewNop()
	}
	if err := sch.Validate(); err != nil {
		return nil, err
	}

	p := &Plotter{
		scheme:    sch,
		log:       log,
		sessionID: uuid.NewString(),
		title:     "backplot",
	}
	for _, o := range opts {
		o(p)
	}
	return p, nil
}

// SessionID returns the session's unique id
func (p *Plotter) SessionID() string { return p.sessionID }

// Figures returns the panels accumulated so far
func (p *Plotter) Figures() []*figure.Figure { return p.figures }

// Plot builds panels for one strategy result and adds them to the
// session. A result without feeds, or with zero bars, is a silent no-op
// that leaves the session untouched. The shared time axis is taken from
// the first feed of the first result plotted.
func (p *Plotter) Plot(result *core.StrategyResult, req Request) error {
	if req.NumFigs == 0 {
		req.NumFigs = 1
	}
	if req.NumFigs != 1 {
		return core.WrapError(core.ErrMultiFigure, fmt.Errorf("numfigs=%d", req.NumFigs))
	}
	if req.Backend != "" {
		return core.WrapError(core.ErrBackendOverride, fmt.Errorf("backend=%q", req.Backend))
	}

	if len(result.Feeds) == 0 || result.Bars() == 0 {
		p.log.Info("nothing to plot",
			zap.String("strategy", result.Strategy),
			zap.Int("feeds", len(result.Feeds)),
		)
		return nil
	}

	p.interactive = req.Interactive

	if p.tl == nil {
		first := result.Feeds[0]
		p.tl = timeline.New(first.Times, first.Timezone)
	}
	start, end := p.tl.Range(req.Start, req.End)

	graph, err := plotgraph.Build(result, plotgraph.Options{
		Volume:        p.scheme.Volume,
		VolumeOverlay: p.scheme.VolumeOverlay,
	})
	if err != nil {
		return err
	}

	cfg := figure.Config{
		Timeline: p.tl,
		Hover:    figure.NewHoverRegistry(),
		Start:    start,
		End:      end,
		Scheme:   p.scheme,
	}

	before := len(p.figures)
	for _, master := range graph.Masters() {
		fig := figure.NewPanel(master, cfg)
		for _, slave := range graph.Slaves(master) {
			fig.PlotSlave(slave)
		}
		fig.ApplyHoverTips()
		p.figures = append(p.figures, fig)
	}
	for _, feed := range graph.Volumes() {
		vol := figure.NewVolumePanel(feed, cfg)
		vol.ApplyHoverTips()
		p.figures = append(p.figures, vol)
	}

	p.analyzers = append(p.analyzers, result.Analyzers...)

	p.log.Debug("panels built",
		zap.String("strategy", result.Strategy),
		zap.Int("figid", req.FigID),
		zap.Int("panels", len(p.figures)-before),
		zap.Int("start", start),
		zap.Int("end", end),
	)

	return nil
}

// Render composes the accumulated panels into a document without writing
// it anywhere. Show and the serve mode both build on it.
func (p *Plotter) Render() ([]byte, error) {
	lay, err := layout.Compose(p.figures, p.analyzers, p.scheme)
	if err != nil {
		return nil, err
	}

	w := document.NewWriter(p.scheme, p.log, false)
	return w.Render(lay, document.Meta{
		Title:       p.title,
		SessionID:   p.sessionID,
		GeneratedAt: time.Now(),
	})
}

// Show writes the accumulated panels to the output document, opens it in
// the browser when configured, and archives a copy when an archive store
// is attached. The panels stay in the session afterwards.
func (p *Plotter) Show() error {
	lay, err := layout.Compose(p.figures, p.analyzers, p.scheme)
	if err != nil {
		return err
	}

	meta := document.Meta{
		Title:       p.title,
		SessionID:   p.sessionID,
		GeneratedAt: time.Now(),
	}

	w := document.NewWriter(p.scheme, p.log, p.openBrowser && p.interactive)
	html, err := w.Render(lay, meta)
	if err != nil {
		return err
	}
	if err := w.Commit(html, p.filename); err != nil {
		return err
	}

	if p.store != nil {
		key := p.archiveKey(meta.GeneratedAt)
		if err := p.store.Put(context.Background(), key, html); err != nil {
			return core.WrapError(core.ErrArchiveFailed, err)
		}
		p.log.Info("dashboard archived", zap.String("key", key))
	}

	return nil
}

// SaveFig is a static export hook kept for call-site compatibility with
// image-producing render surfaces. HTML dashboards have no raster
// export, so it does nothing.
func (p *Plotter) SaveFig(fig *figure.Figure, filename string, width, height, dpi int) {
}

func (p *Plotter) archiveKey(at time.Time) string {
	key := fmt.Sprintf("%s/%s.html", at.UTC().Format("2006-01-02"), p.sessionID)
	if p.archivePrefix != "" {
		key = p.archivePrefix + "/" + key
	}
	return key
}
