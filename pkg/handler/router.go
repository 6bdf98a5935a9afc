package handler

import (
	"mime"
	"net/http"

	"github.com/yumyai/protview/internal/util"
	"github.com/yumyai/protview/logger"
	"github.com/yumyai/protview/pkg/middle"
	"go.uber.org/zap"
)

const staticDir = "./static/"

func NewRouter(app *AppContext) http.Handler {
	mux := http.NewServeMux()

	// Error route
	mux.HandleFunc("GET /favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Not Found", http.StatusNotFound)
	})

	// Pages
	mux.HandleFunc("GET /{$}", app.MainPage)
	mux.HandleFunc("GET /records/{id}/csv", app.RecordCSVHandler)
	mux.HandleFunc("GET /records/{id}/chart", app.ChartPage)
	mux.HandleFunc("GET /records/{id}/export", app.ExportHandler)
	mux.HandleFunc("GET /records/{id}/blastp", app.BlastPRedirectPage)
	mux.HandleFunc("GET /exports/{job_id}", app.ExportJobPage)
	mux.HandleFunc("GET /exports/{job_id}/download", app.DownloadExportJob)

	// API routes
	mux.HandleFunc("GET /api/v1/health", app.HealthCheck)
	mux.HandleFunc("GET /api/v1/records", app.RecordsAPI)
	mux.HandleFunc("GET /api/v1/records/{id}", app.RecordAPI)
	mux.HandleFunc("GET /api/v1/records/{id}/signal", app.SignalAPI)
	mux.HandleFunc("POST /api/v1/exports", app.SubmitExportJob)
	mux.HandleFunc("GET /api/v1/exports/{job_id}", app.ExportJobStatusAPI)

	setupStaticFiles(mux)

	l := logger.L()
	return middle.RequestIDMiddleware(l)(middle.LoggingMiddleware(l)(mux))
}

// Manually add static for all route that use this
func setupStaticFiles(mux *http.ServeMux) {
	if !util.DirExists(staticDir) {
		logger.Warn("No static directory, serving pages unstyled", zap.String("dir", staticDir))
		return
	}
	_ = mime.AddExtensionType(".css", "text/css")
	fs := http.FileServer(http.Dir(staticDir))
	mux.Handle("GET /static/", http.StripPrefix("/static/", fs))
}
