package scheme

// Overrides carries caller-supplied theme overrides. Only listed options
// exist; decoding config input into this struct with strict field matching
// rejects unknown keys.
type Overrides struct {
	PlotMode *string `mapstructure:"plot_mode"`

	Volume        *bool `mapstructure:"volume"`
	VolumeOverlay *bool `mapstructure:"volume_overlay"`

	LegendClick     *string `mapstructure:"legend_click"`
	LegendTextColor *string `mapstructure:"legend_text_color"`

	XAxisPos *string `mapstructure:"xaxis_pos"`

	TableColorEven   *string `mapstructure:"table_color_even"`
	TableColorOdd    *string `mapstructure:"table_color_odd"`
	TableHeaderColor *string `mapstructure:"table_header_color"`

	TabActiveBackgroundColor *string `mapstructure:"tab_active_background_color"`
	TabActiveColor           *string `mapstructure:"tab_active_color"`

	TooltipBackgroundColor *string `mapstructure:"tooltip_background_color"`
	TooltipLabelColor      *string `mapstructure:"tooltip_label_color"`
	TooltipValueColor      *string `mapstructure:"tooltip_value_color"`

	BodyFill       *string `mapstructure:"body_fill"`
	TextColor      *string `mapstructure:"text_color"`
	ShowHeadline   *bool   `mapstructure:"show_headline"`
	HeadlineColor  *string `mapstructure:"headline_color"`
	EChartsTheme   *string `mapstructure:"echarts_theme"`
	PanelWidth     *string `mapstructure:"panel_width"`
	PanelHeight    *string `mapstructure:"panel_height"`
	VolPanelHeight *string `mapstructure:"vol_panel_height"`

	BarUpColor   *string `mapstructure:"bar_up_color"`
	BarDownColor *string `mapstructure:"bar_down_color"`
}

// Apply copies every set override onto the scheme
func (o *Overrides) Apply(s *Scheme) {
	if o == nil {
		return
	}

	setStr := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setBool := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}

	if o.PlotMode != nil {
		s.PlotMode = PlotMode(*o.PlotMode)
	}

	setBool(&s.Volume, o.Volume)
	setBool(&s.VolumeOverlay, o.VolumeOverlay)

	setStr(&s.LegendClick, o.LegendClick)
	setStr(&s.LegendTextColor, o.LegendTextColor)

	setStr(&s.XAxisPos, o.XAxisPos)

	setStr(&s.TableColorEven, o.TableColorEven)
	setStr(&s.TableColorOdd, o.TableColorOdd)
	setStr(&s.TableHeaderColor, o.TableHeaderColor)

	setStr(&s.TabActiveBackgroundColor, o.TabActiveBackgroundColor)
	setStr(&s.TabActiveColor, o.TabActiveColor)

	setStr(&s.TooltipBackgroundColor, o.TooltipBackgroundColor)
	setStr(&s.TooltipLabelColor, o.TooltipLabelColor)
	setStr(&s.TooltipValueColor, o.TooltipValueColor)

	setStr(&s.BodyFill, o.BodyFill)
	setStr(&s.TextColor, o.TextColor)
	setBool(&s.ShowHeadline, o.ShowHeadline)
	setStr(&s.HeadlineColor, o.HeadlineColor)
	setStr(&s.EChartsTheme, o.EChartsTheme)
	setStr(&s.PanelWidth, o.PanelWidth)
	setStr(&s.PanelHeight, o.PanelHeight)
	setStr(&s.VolPanelHeight, o.VolPanelHeight)

	setStr(&s.BarUpColor, o.BarUpColor)
	setStr(&s.BarDownColor, o.BarDownColor)
}
