package document

// pageTpl wraps the charting library's "base" chart block template with
// the dashboard page: headline, tab bar, chart columns, analyzer table
// columns and the axis-link script. Theme colors are emitted as page CSS.
const pageTpl = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{ .Title }}</title>
{{- range .JSAssets }}
<script src="{{ . }}"></script>
{{- end }}
{{- range .CSSAssets }}
<link href="{{ . }}" rel="stylesheet">
{{- end }}
<style>
body {
    background-color: {{ .Scheme.BodyFill }};
    color: {{ .Scheme.TextColor }};
    font-family: "Helvetica Neue", Helvetica, Arial, sans-serif;
    margin: 0;
    padding: 0 16px 24px;
}
h1.headline {
    color: {{ .Scheme.HeadlineColor }};
    font-size: 20px;
    font-weight: 400;
    padding-top: 12px;
}
.tab-bar { border-bottom: 1px solid {{ .Scheme.TableHeaderColor }}; margin-bottom: 12px; }
.tab-button {
    background: none;
    border: none;
    color: {{ .Scheme.TextColor }};
    cursor: pointer;
    font-size: 14px;
    padding: 10px 18px;
}
.tab-button.active {
    background-color: {{ .Scheme.TabActiveBackgroundColor }};
    color: {{ .Scheme.TabActiveColor }};
}
.tab-content { display: none; }
.tab-content.active { display: block; }
.analyzer-row { display: flex; gap: 24px; align-items: flex-start; }
.analyzer-column { flex: 1; max-width: 640px; }
.analyzer-block { margin-bottom: 18px; }
.analyzer-title { color: {{ .Scheme.HeadlineColor }}; font-size: 15px; margin: 4px 0; }
.analyzer-table { border-collapse: collapse; width: 100%; }
.analyzer-table tr:nth-child(even) { background-color: {{ .Scheme.TableColorEven }}; }
.analyzer-table tr:nth-child(odd) { background-color: {{ .Scheme.TableColorOdd }}; }
.analyzer-table td { border: 1px solid {{ .Scheme.TableHeaderColor }}; padding: 4px 10px; font-size: 13px; }
.analyzer-table tr.analyzer-section td { background-color: {{ .Scheme.TableHeaderColor }}; font-weight: bold; }
.bp-tooltip { background-color: {{ .Scheme.TooltipBackgroundColor }}; }
.bp-tooltip .label { color: {{ .Scheme.TooltipLabelColor }}; }
.bp-tooltip .value { color: {{ .Scheme.TooltipValueColor }}; }
footer { color: {{ .Scheme.TableHeaderColor }}; font-size: 11px; margin-top: 24px; }
</style>
</head>
<body>
{{- if .ShowHeadline }}
<h1 class="headline">{{ .Title }}</h1>
{{- end }}
<div class="tab-bar">
{{- range $i, $t := .Tabs }}
<button class="tab-button{{ if eq $i 0 }} active{{ end }}" data-tab="tab-{{ $i }}" onclick="bpShowTab(this)">{{ $t.Title }}</button>
{{- end }}
</div>
{{- range $i, $t := .Tabs }}
<div class="tab-content{{ if eq $i 0 }} active{{ end }}" id="tab-{{ $i }}">
{{- range $t.Charts }}
{{ template "base" . }}
{{- end }}
{{- if $t.Columns }}
<div class="analyzer-row">
{{- range $t.Columns }}
<div class="analyzer-column">
{{- range . }}
{{ . }}
{{- end }}
</div>
{{- end }}
</div>
{{- end }}
</div>
{{- end }}
<script type="text/javascript">
function bpShowTab(btn) {
    document.querySelectorAll('.tab-content').forEach(function(el) { el.classList.remove('active'); });
    document.querySelectorAll('.tab-button').forEach(function(el) { el.classList.remove('active'); });
    document.getElementById(btn.dataset.tab).classList.add('active');
    btn.classList.add('active');
    window.dispatchEvent(new Event('resize'));
}
{{- if .Connect }}
echarts.connect([{{ .Connect }}]);
{{- end }}
</script>
<footer>generated {{ .GeneratedAt }} &middot; session {{ .SessionID }}</footer>
</body>
</html>
`
