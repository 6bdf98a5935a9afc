package render

import (
	"html/template"
	"io"

	"github.com/yumyai/protview/logger"
	"go.uber.org/zap"
)

var exportPageTemplate *template.Template

// ExportPageData describes the state of an export job for rendering.
type ExportPageData struct {
	JobID                  string
	Format                 string
	Status                 string
	Filename               string
	ErrorMessage           string
	ShouldRefresh          bool
	RefreshIntervalSeconds int
}

func init() {
	mainTmpl := `
	<!DOCTYPE html>
	<html>
	<head>
	    <title>Export {{ .Filename }}</title>
		{{ if .ShouldRefresh }}
        <script>
	        setTimeout(function () { window.location.reload(); }, {{ mul .RefreshIntervalSeconds 1000 }});
        </script>
		{{ end }}
	</head>
	<body>
		<h1>Protein Analysis Export</h1>
		<p><strong>Job ID:</strong> {{ .JobID }}</p>
		<p><strong>Format:</strong> {{ .Format }}</p>
		<p><strong>Status:</strong> {{ .Status }}</p>
		{{ if .ErrorMessage }}
			<p style="color: red;">Export failed: {{ .ErrorMessage }}</p>
		{{ else if .Filename }}
			<p><a href="/exports/{{ .JobID }}/download">Download {{ .Filename }}</a></p>
		{{ else }}
			<p>Your export is still running. This page refreshes every {{ .RefreshIntervalSeconds }} seconds.</p>
		{{ end }}
	</body>
	</html>`

	exportPageTemplate = template.New("export_page").Funcs(template.FuncMap{
		"mul": func(a, b int) int { return a * b },
	})
	exportPageTemplate = template.Must(exportPageTemplate.Parse(mainTmpl))
}

// RenderExportPage shows a job's progress and, once done, its download link.
func RenderExportPage(w io.Writer, data ExportPageData) error {
	logger.Debug("Rendering export page", zap.String("job_id", data.JobID), zap.String("status", data.Status))
	return exportPageTemplate.Execute(w, data)
}
