// Package document serializes a composed dashboard layout into one
// standalone HTML file and opens it in the default browser.
package document

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-echarts/go-echarts/v2/components"
	tpls "github.com/go-echarts/go-echarts/v2/templates"
	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/pkg/browser"
	"go.uber.org/zap"

	"github.com/quantlab/backplot/internal/core"
	"github.com/quantlab/backplot/internal/layout"
	"github.com/quantlab/backplot/internal/scheme"
)

// DefaultFilename is the fixed output name used when the caller gives none
const DefaultFilename = "backplot.html"

// Meta identifies one rendered document
type Meta struct {
	Title       string
	SessionID   string
	GeneratedAt time.Time
}

// Writer renders layouts to HTML documents
type Writer struct {
	scheme      *scheme.Scheme
	log         *zap.Logger
	openBrowser bool
}

// NewWriter creates a document writer. When openBrowser is set, written
// files are opened in the default viewer.
func NewWriter(sch *scheme.Scheme, log *zap.Logger, openBrowser bool) *Writer {
	return &Writer{scheme: sch, log: log, openBrowser: openBrowser}
}

type tabView struct {
	Title   string
	Charts  []components.Charter
	Columns [][]template.HTML
}

type pageView struct {
	Title        string
	SessionID    string
	GeneratedAt  string
	Scheme       *scheme.Scheme
	ShowHeadline bool
	Tabs         []tabView
	JSAssets     []string
	CSSAssets    []string
	Connect      template.JS
}

var docTpl = template.Must(template.Must(template.New("document").
	Funcs(template.FuncMap{
		"safeJS": func(s interface{}) template.JS { return template.JS(fmt.Sprint(s)) },
		"isSet":  isSet,
		"injectInstance": func(funcStr types.FuncStr, placeholder string, chartID string) string {
			return strings.Replace(string(funcStr), placeholder, "goecharts_"+chartID, -1)
		},
	}).
	Parse(tpls.BaseTpl)).
	Parse(pageTpl))

// jsFnPat matches the markers the charting library wraps around JS
// function strings so they survive JSON encoding. The surrounding quotes
// go with them, turning the encoded string back into a function literal.
var jsFnPat = regexp.MustCompile(`(__f__")|("__f__)|(__f__)`)

// isSet reports whether a named field of the template data is non-zero,
// mirroring the charting library's own template helper.
func isSet(name string, data interface{}) bool {
	v := reflect.Indirect(reflect.ValueOf(data)).FieldByName(name)
	if !v.IsValid() {
		return false
	}
	return !v.IsZero()
}

// Render serializes the layout into the final HTML document
func (w *Writer) Render(l *layout.Layout, meta Meta) ([]byte, error) {
	page := pageView{
		Title:        meta.Title,
		SessionID:    meta.SessionID,
		GeneratedAt:  meta.GeneratedAt.Format("2006-01-02 15:04:05"),
		Scheme:       w.scheme,
		ShowHeadline: w.scheme.ShowHeadline,
	}

	var instances []string
	seenJS := map[string]bool{}
	seenCSS := map[string]bool{}

	for _, tab := range l.Tabs {
		tv := tabView{Title: tab.Title, Columns: tab.Columns}
		for _, f := range tab.Figures {
			c := f.Chart()
			c.Validate()
			id := f.EnsureChartID()
			instances = append(instances, "goecharts_"+id)

			assets := c.GetAssets()
			for _, a := range assets.JSAssets.Values {
				if !seenJS[a] {
					seenJS[a] = true
					page.JSAssets = append(page.JSAssets, a)
				}
			}
			for _, a := range assets.CSSAssets.Values {
				if !seenCSS[a] {
					seenCSS[a] = true
					page.CSSAssets = append(page.CSSAssets, a)
				}
			}

			tv.Charts = append(tv.Charts, c)
		}
		page.Tabs = append(page.Tabs, tv)
	}

	// all panels share the first panel's axis window
	if len(instances) > 1 {
		page.Connect = template.JS(joinInstances(instances))
	}

	var buf bytes.Buffer
	if err := docTpl.ExecuteTemplate(&buf, "document", page); err != nil {
		return nil, core.WrapError(core.ErrDocumentWrite, err)
	}
	return jsFnPat.ReplaceAll(buf.Bytes(), nil), nil
}

func joinInstances(names []string) string {
	var buf bytes.Buffer
	for i, n := range names {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(n)
	}
	return buf.String()
}

// WriteFile renders the layout, writes it to filename (DefaultFilename
// when empty) and opens it in the default viewer when configured.
func (w *Writer) WriteFile(l *layout.Layout, meta Meta, filename string) error {
	html, err := w.Render(l, meta)
	if err != nil {
		return err
	}
	return w.Commit(html, filename)
}

// Commit writes a rendered document to disk and opens it in the default
// viewer when configured. The write is plain and unguarded: no
// atomicity, no collision handling.
func (w *Writer) Commit(html []byte, filename string) error {
	if filename == "" {
		filename = DefaultFilename
	}

	if err := os.WriteFile(filename, html, 0644); err != nil {
		return core.WrapError(core.ErrDocumentWrite, err)
	}

	w.log.Info("dashboard written",
		zap.String("file", filename),
		zap.Int("bytes", len(html)),
	)

	if w.openBrowser {
		if err := browser.OpenFile(filename); err != nil {
			w.log.Warn("opening browser failed", zap.Error(err))
		}
	}

	return nil
}
