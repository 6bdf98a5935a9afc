package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/yumyai/protview/internal/util"
	"github.com/yumyai/protview/logger"
	"github.com/yumyai/protview/pkg/export"
	"github.com/yumyai/protview/pkg/handler/request"
	"github.com/yumyai/protview/pkg/render"
	"go.uber.org/zap"
)

const exportRefreshSeconds = 2

type SubmitExportResponse struct {
	JobID  string          `json:"job_id"`
	Status ExportJobStatus `json:"status"`
}

func writePayload(w http.ResponseWriter, payload export.Payload) {
	w.Header().Set("Content-Type", payload.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", util.SafeFilename(payload.Filename)))
	w.Header().Set("Content-Length", strconv.Itoa(len(payload.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(payload.Data); err != nil {
		logger.Warn("Failed to write download", zap.String("filename", payload.Filename), zap.Error(err))
	}
}

// RecordCSVHandler downloads the single-record CSV.
func (app *AppContext) RecordCSVHandler(w http.ResponseWriter, r *http.Request) {
	rec, err := app.Dataset.Get(r.PathValue("id"))
	if err != nil {
		writeHTTPError(w, r, err)
		return
	}
	writePayload(w, export.RecordCSV(rec))
}

// ExportHandler renders the requested export inside the request.
func (app *AppContext) ExportHandler(w http.ResponseWriter, r *http.Request) {
	req, err := request.ParseExport(r.PathValue("id"), r.URL.Query(), app.DefaultWindow)
	if err != nil {
		writeHTTPError(w, r, err)
		return
	}

	rec, err := app.Dataset.Get(req.Record_ID)
	if err != nil {
		writeHTTPError(w, r, err)
		return
	}

	logger.Info("Running export",
		zap.String("id", req.Record_ID),
		zap.Stringer("side", req.Side),
		zap.Int("window", req.Window_Size),
		zap.String("format", string(req.Format)),
	)

	payload, err := export.Export(r.Context(), rec, req.Side, req.Window_Size, req.Format)
	if err != nil {
		writeHTTPError(w, r, err)
		return
	}
	writePayload(w, payload)
}

// SubmitExportJob queues an export and answers 202 with the job id.
func (app *AppContext) SubmitExportJob(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Error parsing form", http.StatusBadRequest)
		return
	}

	req, err := request.ParseExport(r.Form.Get(request.FieldID), r.Form, app.DefaultWindow)
	if err != nil {
		writeJSONError(w, r, err)
		return
	}

	rec, err := app.Dataset.Get(req.Record_ID)
	if err != nil {
		writeJSONError(w, r, err)
		return
	}

	// The job outlives the request.
	ctx := context.WithoutCancel(r.Context())
	job := app.Exports.Submit(ctx, req.Format, func(ctx context.Context) (export.Payload, error) {
		return export.Export(ctx, rec, req.Side, req.Window_Size, req.Format)
	})

	logger.Info("Export job submitted",
		zap.String("job_id", job.ID),
		zap.String("id", req.Record_ID),
		zap.String("format", string(req.Format)),
	)

	w.Header().Set("Location", "/api/v1/exports/"+job.ID)
	writeJSON(w, http.StatusAccepted, SubmitExportResponse{JobID: job.ID, Status: job.Status})
}

func (app *AppContext) ExportJobStatusAPI(w http.ResponseWriter, r *http.Request) {
	job, ok := app.Exports.GetJob(r.PathValue("job_id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Success: false, Error: "job not found"})
		return
	}
	writeJSON(w, http.StatusOK, job)
}

// ExportJobPage shows the job state and refreshes until it is done.
func (app *AppContext) ExportJobPage(w http.ResponseWriter, r *http.Request) {
	job, ok := app.Exports.GetJob(r.PathValue("job_id"))
	if !ok {
		http.Error(w, "Job not found", http.StatusNotFound)
		return
	}

	data := render.ExportPageData{
		JobID:                  job.ID,
		Format:                 job.Format.Label(),
		Status:                 string(job.Status),
		Filename:               job.Filename,
		ErrorMessage:           job.Error,
		ShouldRefresh:          !job.Done(),
		RefreshIntervalSeconds: exportRefreshSeconds,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.RenderExportPage(w, data); err != nil {
		logger.Error("Failed to render export page", zap.Error(err))
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}

func (app *AppContext) DownloadExportJob(w http.ResponseWriter, r *http.Request) {
	job, ok := app.Exports.GetJob(r.PathValue("job_id"))
	if !ok {
		http.Error(w, "Job not found", http.StatusNotFound)
		return
	}
	if job.Status != ExportJobCompleted {
		http.Error(w, "Export is "+string(job.Status), http.StatusConflict)
		return
	}
	writePayload(w, job.Payload())
}
