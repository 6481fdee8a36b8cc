// Package scheme holds the visual configuration of a rendered dashboard.
// Every recognized option is an explicit struct field; caller overrides go
// through Overrides so unknown options are a compile- or decode-time error
// instead of being silently absorbed.
package scheme

import (
	"fmt"

	"github.com/quantlab/backplot/internal/core"
)

// PlotMode selects how panels are arranged in the output document
type PlotMode string

const (
	// ModeSingle puts all panels into one scrollable column
	ModeSingle PlotMode = "single"
	// ModeTabs groups panels into tabs by category
	ModeTabs PlotMode = "tabs"
)

// Legend click policies
const (
	LegendClickHide   = "multiple" // clicking a legend entry toggles that series
	LegendClickSolo   = "single"   // clicking a legend entry shows only that series
	LegendClickFrozen = "none"     // legend clicks do nothing
)

// Scheme enumerates every theme option the dashboard recognizes
type Scheme struct {
	PlotMode PlotMode

	// Volume panels
	Volume        bool // render volume at all
	VolumeOverlay bool // overlay volume on the price panel instead of a separate one

	// Legend
	LegendClick     string
	LegendTextColor string

	// Axes
	XAxisPos string // "bottom" or "all"

	// Table colors
	TableColorEven   string
	TableColorOdd    string
	TableHeaderColor string

	// Tab colors
	TabActiveBackgroundColor string
	TabActiveColor           string

	// Tooltip colors
	TooltipBackgroundColor string
	TooltipLabelColor      string
	TooltipValueColor      string

	// Page
	BodyFill       string
	TextColor      string
	ShowHeadline   bool
	HeadlineColor  string
	EChartsTheme   string // named theme of the charting library
	PanelWidth     string
	PanelHeight    string
	VolPanelHeight string

	// Candles
	BarUpColor   string
	BarDownColor string
}

// Blackly is the dark default scheme
func Blackly() *Scheme {
	return &Scheme{
		PlotMode:      ModeSingle,
		Volume:        true,
		VolumeOverlay: true,

		LegendClick:     LegendClickHide,
		LegendTextColor: "#d8d8d8",

		XAxisPos: "bottom",

		TableColorEven:   "#404040",
		TableColorOdd:    "#333333",
		TableHeaderColor: "#7a7a7a",

		TabActiveBackgroundColor: "#333333",
		TabActiveColor:           "#4ba6ff",

		TooltipBackgroundColor: "#4C4F51",
		TooltipLabelColor:      "#848EFF",
		TooltipValueColor:      "#aaaaaa",

		BodyFill:       "#1e1e1e",
		TextColor:      "#d8d8d8",
		ShowHeadline:   true,
		HeadlineColor:  "#d8d8d8",
		EChartsTheme:   "chalk",
		PanelWidth:     "1400px",
		PanelHeight:    "400px",
		VolPanelHeight: "200px",

		BarUpColor:   "#26a69a",
		BarDownColor: "#ef5350",
	}
}

// Tradimo is the light scheme
func Tradimo() *Scheme {
	return &Scheme{
		PlotMode:      ModeSingle,
		Volume:        true,
		VolumeOverlay: true,

		LegendClick:     LegendClickHide,
		LegendTextColor: "#333333",

		XAxisPos: "bottom",

		TableColorEven:   "#ffffff",
		TableColorOdd:    "#f2f2f2",
		TableHeaderColor: "#dddddd",

		TabActiveBackgroundColor: "#e8e8e8",
		TabActiveColor:           "#205080",

		TooltipBackgroundColor: "#ffffff",
		TooltipLabelColor:      "#205080",
		TooltipValueColor:      "#555555",

		BodyFill:       "#ffffff",
		TextColor:      "#333333",
		ShowHeadline:   true,
		HeadlineColor:  "#205080",
		EChartsTheme:   "white",
		PanelWidth:     "1400px",
		PanelHeight:    "400px",
		VolPanelHeight: "200px",

		BarUpColor:   "#089981",
		BarDownColor: "#f23645",
	}
}

// Validate checks the scheme for unsupported values
func (s *Scheme) Validate() error {
	switch s.PlotMode {
	case ModeSingle, ModeTabs:
	default:
		return core.WrapError(core.ErrSchemeInvalid, fmt.Errorf("plot mode %q", s.PlotMode))
	}

	switch s.LegendClick {
	case LegendClickHide, LegendClickSolo, LegendClickFrozen:
	default:
		return core.WrapError(core.ErrSchemeInvalid, fmt.Errorf("legend click policy %q", s.LegendClick))
	}

	switch s.XAxisPos {
	case "bottom", "all":
	default:
		return core.WrapError(core.ErrSchemeInvalid, fmt.Errorf("xaxis position %q", s.XAxisPos))
	}

	for name, c := range map[string]string{
		"body_fill":  s.BodyFill,
		"text_color": s.TextColor,
	} {
		if c == "" {
			return core.WrapError(core.ErrSchemeInvalid, fmt.Errorf("%s must not be empty", name))
		}
	}

	return nil
}
