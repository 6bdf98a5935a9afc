package render

import (
	"html/template"
	"io"

	"github.com/yumyai/protview/pkg/export"
	"github.com/yumyai/protview/pkg/model"
)

var chartPageTemplate *template.Template

// ChartPageData describes the p-value analysis of one sequence.
type ChartPageData struct {
	Record     model.Record
	Side       model.Side
	WindowSize int
	MinWindow  int
	MaxWindow  int
	Points     []model.SignalPoint
	ChartSVG   template.HTML // empty when the chart could not be drawn
	ChartError string
	Formats    []export.Format
	PValues    []model.PValueEntry
}

func init() {
	mainTmpl := `
	<!DOCTYPE html>
	<html>
	<head>
	    <link href="/static/style.css" rel="stylesheet"></link>
		<title>{{.Side.Title}} P-Value Analysis</title>
	</head>
	<body>
		<h1>{{.Side.Title}} P-Value Analysis</h1>
		<p>{{.Record.HostGeneName}} &harr; {{.Record.TargetGeneName}}</p>

		<form id="settingsForm" method="GET">
			<input type="hidden" name="side" value="{{.Side}}"></input>
			<label>Rolling Mean Window Size:
				<input type="range" name="window" min="{{.MinWindow}}" max="{{.MaxWindow}}" value="{{.WindowSize}}" onchange="this.form.submit()"></input>
			</label>
			<span class="mono">{{.WindowSize}}</span>
			<p class="hint">
				Larger window sizes result in smoother curves but may lose local details.
				Current window includes {{.WindowSize}} points.
			</p>
		</form>

		<div class="export-menu">
			Export:
			{{range .Formats}}
				[<a href="/records/{{$.Record.ID.OID}}/export?side={{$.Side}}&window={{$.WindowSize}}&format={{.}}">{{.Label}}</a>]
			{{end}}
		</div>

		<div class="chart">
		{{if .ChartSVG}}
			{{.ChartSVG}}
		{{else}}
			<p class="empty">{{.ChartError}}</p>
		{{end}}
		</div>

		<h4>P-Values by Amino Acid</h4>
		<div class="legend">
		{{range .PValues}}
			<span class="legend-item">{{.Symbol}}: {{.Value}}</span>
		{{end}}
		</div>

		<table class="signal" border="1">
			<tr><th>Position</th><th>Amino Acid</th><th>Raw P-Value</th><th>Rolling Mean</th></tr>
			{{range .Points}}
			<tr>
				<td>{{.Position}}</td>
				<td>{{.Symbol}}</td>
				<td>{{printf "%.2f" .RawValue}}</td>
				<td>{{if .Smoothed}}{{.Smoothed | deref}}{{else}}N/A{{end}}</td>
			</tr>
			{{end}}
		</table>
	</body>
	</html>`

	chartPageTemplate = template.New("chart").Funcs(template.FuncMap{
		"deref": func(v *float64) float64 { return *v },
	})
	chartPageTemplate = template.Must(chartPageTemplate.Parse(mainTmpl))
}

// RenderChartPage renders the chart overlay as a standalone page.
func RenderChartPage(w io.Writer, data ChartPageData) error {
	if data.MinWindow == 0 {
		data.MinWindow = model.MIN_WINDOW_SIZE
	}
	if data.MaxWindow == 0 {
		data.MaxWindow = model.MAX_WINDOW_SIZE
	}
	if data.Formats == nil {
		data.Formats = export.Formats
	}
	if data.PValues == nil {
		data.PValues = model.PValueTable()
	}
	return chartPageTemplate.Execute(w, data)
}
