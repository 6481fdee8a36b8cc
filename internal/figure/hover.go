package figure

import (
	"fmt"
	"strings"
)

// HoverEntry is one tooltip binding of a panel
type HoverEntry struct {
	Label  string
	Series string
}

// HoverRegistry collects the tooltip bindings of every panel of one
// render session. A fresh registry is created per session so hovers from
// different strategies do not mix.
type HoverRegistry struct {
	entries map[string][]HoverEntry
}

// NewHoverRegistry creates an empty registry
func NewHoverRegistry() *HoverRegistry {
	return &HoverRegistry{entries: make(map[string][]HoverEntry)}
}

// Add registers a tooltip binding for the given figure
func (h *HoverRegistry) Add(figureID, label, series string) {
	h.entries[figureID] = append(h.entries[figureID], HoverEntry{Label: label, Series: series})
}

// Entries returns the tooltip bindings of a figure in registration order
func (h *HoverRegistry) Entries(figureID string) []HoverEntry {
	return h.entries[figureID]
}

// Len returns the number of figures with at least one binding
func (h *HoverRegistry) Len() int {
	return len(h.entries)
}

// Formatter builds the JS tooltip formatter of a figure from its
// registered bindings. Each hovered series is shown under its registered
// label; series nobody registered fall back to their own name.
func (h *HoverRegistry) Formatter(figureID string) string {
	entries := h.entries[figureID]
	if len(entries) == 0 {
		return ""
	}

	// single quotes only: double quotes would survive JSON-escaped in
	// the serialized chart options
	var b strings.Builder
	b.WriteString("function (params) { var labels = {")
	for i, e := range entries {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "'%s': '%s'", jsEscape(e.Series), jsEscape(e.Label))
	}
	b.WriteString("}; var out = params[0].axisValueLabel;")
	b.WriteString(" for (var i = 0; i < params.length; i++) {")
	b.WriteString(" var p = params[i]; var tag = labels[p.seriesName] || p.seriesName;")
	b.WriteString(" out += '<br/>' + p.marker + tag + ': ' + p.value; }")
	b.WriteString(" return out; }")
	return b.String()
}

func jsEscape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, "'", `\'`)
}
