// Package table renders analyzer results as HTML table blocks for the
// analyzer tab of the dashboard.
package table

import (
	"bytes"
	"html/template"

	"github.com/quantlab/backplot/internal/core"
	"github.com/quantlab/backplot/internal/scheme"
)

// Table is one analyzer rendered as a header block plus key/value rows.
// Sections add a sub-header line each and nest one level deep only.
type Table struct {
	Title    string
	Rows     []core.AnalyzerRow
	Sections []core.AnalyzerSection
}

// FromAnalyzer builds the table model for one analyzer result
func FromAnalyzer(a core.AnalyzerResult) *Table {
	return &Table{Title: a.Name, Rows: a.Rows, Sections: a.Sections}
}

// Height is the block height used by the layout balancer: the header
// line, one line per row, and a sub-header line per section.
func (t *Table) Height() int {
	h := 1 + len(t.Rows)
	for _, s := range t.Sections {
		h += 1 + len(s.Rows)
	}
	return h
}

var blockTpl = template.Must(template.New("analyzer-table").Parse(`<div class="analyzer-block">
<h3 class="analyzer-title">{{ .Title }}</h3>
<table class="analyzer-table">
{{- range .Rows }}
<tr><td class="analyzer-key">{{ .Key }}</td><td class="analyzer-value">{{ .Value }}</td></tr>
{{- end }}
{{- range .Sections }}
<tr class="analyzer-section"><td colspan="2">{{ .Title }}</td></tr>
{{- range .Rows }}
<tr><td class="analyzer-key">{{ .Key }}</td><td class="analyzer-value">{{ .Value }}</td></tr>
{{- end }}
{{- end }}
</table>
</div>`))

// Generator renders table models into themed HTML blocks
type Generator struct {
	scheme *scheme.Scheme
}

// NewGenerator creates a generator bound to a scheme. The scheme's table
// colors are emitted as page CSS, so the generator only tags classes.
func NewGenerator(s *scheme.Scheme) *Generator {
	return &Generator{scheme: s}
}

// Render produces the HTML block for one table
func (g *Generator) Render(t *Table) (template.HTML, error) {
	var buf bytes.Buffer
	if err := blockTpl.Execute(&buf, t); err != nil {
		return "", core.WrapError(core.ErrDocumentWrite, err)
	}
	return template.HTML(buf.String()), nil
}
